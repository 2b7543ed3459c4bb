package theme

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for error type checking
var (
	// ErrInvalidTheme indicates a theme file that cannot be used
	ErrInvalidTheme = errors.New("invalid theme")

	// ErrCircularReference indicates theme values that reference each other
	ErrCircularReference = errors.New("circular reference detected")

	// ErrUnknownReference indicates a reference to a theme value that does not exist
	ErrUnknownReference = errors.New("unknown theme reference")
)

// InvalidThemeError represents a theme file with the wrong structure
type InvalidThemeError struct {
	FilePath string
	Reason   string
}

func (e *InvalidThemeError) Error() string {
	return fmt.Sprintf("invalid theme %s: %s\nSuggestion: The theme must map namespace names to nested maps of values", e.FilePath, e.Reason)
}

func (e *InvalidThemeError) Unwrap() error {
	return ErrInvalidTheme
}

// NewInvalidThemeError creates a new invalid theme error
func NewInvalidThemeError(filePath, reason string) error {
	return &InvalidThemeError{
		FilePath: filePath,
		Reason:   reason,
	}
}

// CircularReferenceError represents a reference cycle between theme values
type CircularReferenceError struct {
	FilePath       string
	ReferenceChain []string
}

func (e *CircularReferenceError) Error() string {
	chain := strings.Join(e.ReferenceChain, " → ")
	return fmt.Sprintf("circular reference detected in %s: %s\nSuggestion: Break the circular dependency chain",
		e.FilePath, chain)
}

func (e *CircularReferenceError) Unwrap() error {
	return ErrCircularReference
}

// NewCircularReferenceError creates a new circular reference error
func NewCircularReferenceError(filePath string, chain []string) error {
	return &CircularReferenceError{
		FilePath:       filePath,
		ReferenceChain: chain,
	}
}

// UnknownReferenceError represents a reference to a missing theme value
type UnknownReferenceError struct {
	FilePath  string
	Entry     string
	Reference string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("%s in %s references unknown value {%s}\nSuggestion: Check the namespace and key, e.g. {colors.red.500}",
		e.Entry, e.FilePath, e.Reference)
}

func (e *UnknownReferenceError) Unwrap() error {
	return ErrUnknownReference
}

// NewUnknownReferenceError creates a new unknown reference error
func NewUnknownReferenceError(filePath, entry, reference string) error {
	return &UnknownReferenceError{
		FilePath:  filePath,
		Entry:     entry,
		Reference: reference,
	}
}
