// Package logger provides verbose logging for sercha-hub.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users follow a search from query
// compilation through enrichment. Errors are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	log               = newLogger(os.Stderr)
)

func newLogger(w io.Writer) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
		FormatLevel: func(i any) string {
			return "[" + strings.ToUpper(fmt.Sprint(i)) + "]"
		},
	}
	return zerolog.New(cw).Level(zerolog.DebugLevel)
}

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

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	log = newLogger(w)
}

// ResetOutput restores logging to os.Stderr.
func ResetOutput() {
	SetOutput(os.Stderr)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	emit(zerolog.DebugLevel, false, format, args)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	emit(zerolog.InfoLevel, false, format, args)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	emit(zerolog.WarnLevel, false, format, args)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	emit(zerolog.ErrorLevel, true, format, args)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Fields logs msg with structured key/value fields at info level if verbose
// mode is enabled.
func Fields(msg string, fields map[string]any) {
	mu.Lock()
	defer mu.Unlock()
	if !verbose {
		return
	}
	log.Info().Fields(fields).Msg(msg)
}

// emit holds the write lock so concurrent lines never interleave.
func emit(level zerolog.Level, always bool, format string, args []any) {
	mu.Lock()
	defer mu.Unlock()
	if !verbose && !always {
		return
	}
	log.WithLevel(level).Msgf(format, args...)
}
