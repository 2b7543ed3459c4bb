// Package log is the leveled logger shared by the CLI, the build orchestrator
// and the language server. Output goes to stderr so that generated CSS on
// stdout and the LSP stdio transport stay clean.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Level represents the severity of a log message
type Level int

const (
	// LevelDebug is for verbose debugging information, including rejected candidates
	LevelDebug Level = iota
	// LevelInfo is for build progress and other operational events
	LevelInfo
	// LevelWarn is for recovered configuration problems
	LevelWarn
	// LevelError is for failures that abort a build or request
	LevelError
)

// String returns the lowercase name of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel converts a level name (debug, info, warn, error) into a Level
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", name)
}

var (
	mu       sync.Mutex
	output   io.Writer = os.Stderr
	minLevel           = LevelInfo
	prefix             = "[utilgen]"
)

// SetOutput sets the output destination (primarily for testing)
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetLevel sets the minimum log level to display
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = level
}

// GetLevel returns the current minimum log level
func GetLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return minLevel
}

// Enabled reports whether messages at level would be written.
// Hot loops use it to skip formatting arguments nobody will read.
func Enabled(level Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return level >= minLevel && output != nil
}

// Debug logs a debug message
func Debug(format string, args ...any) {
	write(LevelDebug, format, args...)
}

// Info logs an info message
func Info(format string, args ...any) {
	write(LevelInfo, format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...any) {
	write(LevelWarn, format, args...)
}

// Error logs an error message
func Error(format string, args ...any) {
	write(LevelError, format, args...)
}

func write(level Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if level < minLevel {
		return
	}

	// Skip logging if output is nil (e.g., during test cleanup)
	if output == nil {
		return
	}

	fmt.Fprintf(output, prefix+" "+format+"\n", args...)
}
