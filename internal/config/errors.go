package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a configuration file that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// InvalidConfigError names the offending file and field.
type InvalidConfigError struct {
	FilePath string
	Field    string
	Reason   string
}

func (e *InvalidConfigError) Error() string {
	where := e.FilePath
	if where == "" {
		where = "configuration"
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s in %s: %s\nSuggestion: %s", e.Field, where, e.Reason, suggestion(e.Field))
	}
	return fmt.Sprintf("invalid %s: %s\nSuggestion: %s", where, e.Reason, suggestion(e.Field))
}

func (e *InvalidConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// NewInvalidConfigError creates a new invalid configuration error
func NewInvalidConfigError(filePath, field, reason string) error {
	return &InvalidConfigError{
		FilePath: filePath,
		Field:    field,
		Reason:   reason,
	}
}

func suggestion(field string) string {
	switch field {
	case "content", "exclude":
		return "Use a list of doublestar globs, e.g. [\"src/**/*.{html,tsx}\"]"
	case "tokens":
		return "List token files as paths or as {path, prefix, namespace} objects"
	case "darkMode":
		return "Use \"media\" or \"class\""
	case "mode":
		return "Use \"generic\" or \"regions\""
	case "workers":
		return "Use a positive number, or 0 for one worker per CPU"
	case "shortcuts":
		return "Map each shortcut class to a list of utility classes"
	}
	return "Check the file against the documented configuration fields"
}
