// Package applog is a small leveled logger for javart. Debug output is
// silent by default and only appears once verbose mode is enabled; warnings
// and errors are always printed, colorized when attached to a terminal.
package applog

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
)

var (
	mu      sync.Mutex
	verbose bool
)

// SetVerbose toggles debug-level output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

func isVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// Debugf logs a debug message; suppressed unless verbose mode is enabled.
func Debugf(format string, args ...interface{}) {
	if !isVerbose() {
		return
	}
	color.New(color.FgHiBlack).Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
}

// Infof logs an informational message.
func Infof(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// Warnf logs a warning, used for recoverable conditions such as a corrupt
// cache or config file falling back to defaults.
func Warnf(format string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(os.Stderr, "[warn] "+format+"\n", args...)
}

// Errorf logs an error.
func Errorf(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(os.Stderr, "[error] "+format+"\n", args...)
}
