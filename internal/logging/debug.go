package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
)

// DebugEnabled returns true if debug mode is enabled via POMO_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("POMO_DEBUG") != ""
}

// SetOutput redirects debug output. The TUI points it at a file so debug lines
// do not tear the countdown display.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = io.Discard
	}
	output = w
}

// Output returns the current debug writer
func Output() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return output
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(output, format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(output, args...)
	}
}

// OpenDebugFile opens path for appending when debug mode is enabled and makes it the
// debug output. The returned close func restores stderr.
func OpenDebugFile(path string) (func() error, error) {
	if !DebugEnabled() {
		return func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	SetOutput(f)
	return func() error {
		SetOutput(os.Stderr)
		return f.Close()
	}, nil
}
