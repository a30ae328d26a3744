package logging

import (
	"fmt"
	"io"
	"os"
)

// Level represents the console verbosity level
type Level int

const (
	// LevelQuiet shows only warnings, errors, and the final result
	LevelQuiet Level = iota
	// LevelNormal shows standard verification progress (default)
	LevelNormal
	// LevelVerbose shows detailed step information
	LevelVerbose
	// LevelDebug shows all internal details for debugging
	LevelDebug
)

// ParseLevel converts a verbosity string to a Level.
func ParseLevel(verbosity string) (Level, error) {
	switch verbosity {
	case "quiet":
		return LevelQuiet, nil
	case "", "normal":
		return LevelNormal, nil
	case "verbose":
		return LevelVerbose, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelNormal, fmt.Errorf("invalid verbosity: %s (must be 'quiet', 'normal', 'verbose', or 'debug')", verbosity)
	}
}

// Console prints human-readable verification progress to stdout.
type Console struct {
	level  Level
	writer io.Writer

	// ANSI color codes
	colorReset     string
	colorCyan      string
	colorYellow    string
	colorGray      string
	colorBoldGreen string
	colorBoldRed   string

	stepCount int
}

// NewConsole creates a console logger with the specified level.
func NewConsole(level Level) *Console {
	return &Console{
		level:          level,
		writer:         os.Stdout,
		colorReset:     "\033[0m",
		colorCyan:      "\033[36m",
		colorYellow:    "\033[33m",
		colorGray:      "\033[90m",
		colorBoldGreen: "\033[1;32m",
		colorBoldRed:   "\033[1;31m",
	}
}

// SetWriter redirects console output, primarily for tests.
func (c *Console) SetWriter(w io.Writer) {
	c.writer = w
}

// Step prints a numbered step in the verification sequence
func (c *Console) Step(format string, args ...interface{}) {
	if c.level >= LevelNormal {
		c.stepCount++
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(c.writer, "%s[%d] %s%s\n", c.colorCyan, c.stepCount, msg, c.colorReset)
	}
}

// Successf prints a success message with checkmark
func (c *Console) Successf(format string, args ...interface{}) {
	if c.level >= LevelNormal {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(c.writer, "%s✓ %s%s\n", c.colorBoldGreen, msg, c.colorReset)
	}
}

// Infof prints an informational message
func (c *Console) Infof(format string, args ...interface{}) {
	if c.level >= LevelNormal {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(c.writer, "%s%s%s\n", c.colorGray, msg, c.colorReset)
	}
}

// Warningf prints a warning message
func (c *Console) Warningf(format string, args ...interface{}) {
	if c.level >= LevelQuiet {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(c.writer, "%s⚠ Warning: %s%s\n", c.colorYellow, msg, c.colorReset)
	}
}

// Errorf prints an error message
func (c *Console) Errorf(format string, args ...interface{}) {
	if c.level >= LevelQuiet {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(c.writer, "%s✗ %s%s\n", c.colorBoldRed, msg, c.colorReset)
	}
}

// Verbosef prints detailed information (only in verbose mode)
func (c *Console) Verbosef(format string, args ...interface{}) {
	if c.level >= LevelVerbose {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(c.writer, "%s→ %s%s\n", c.colorGray, msg, c.colorReset)
	}
}

// Debugf prints debug information (only in debug mode)
func (c *Console) Debugf(format string, args ...interface{}) {
	if c.level >= LevelDebug {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(c.writer, "%s[DEBUG] %s%s\n", c.colorGray, msg, c.colorReset)
	}
}
