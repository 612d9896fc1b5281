// Package logger provides verbose logging for the text preparer.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users follow the preparation pipeline.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type level string

const (
	levelDebug level = "DEBUG"
	levelInfo  level = "INFO"
	levelWarn  level = "WARN"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// write prints one log line. Warnings bypass the verbose gate; a
// skipped replacement rule or a failed session save should not pass
// silently.
func write(lvl level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose && lvl != levelWarn {
		return
	}
	fmt.Fprintf(output, "["+string(lvl)+"] "+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	write(levelDebug, format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	write(levelInfo, format, args...)
}

// Warn prints a warning message regardless of verbose mode.
func Warn(format string, args ...any) {
	write(levelWarn, format, args...)
}

// Section prints a section header if verbose mode is enabled. Used to
// group the per-chunk output of a preparation run.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
