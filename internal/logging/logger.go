// Package logging builds the structured logger shared by the commands and
// the conversion pipeline.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", "error").
func New(level string, w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	if w == nil {
		w = os.Stderr
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "rtsys2chirp",
	})
	return logger, nil
}

// Discard returns a logger that drops everything. Used when a caller does
// not supply one.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// WithFile returns a sub-logger tagged with the file being converted.
func WithFile(logger *log.Logger, path string) *log.Logger {
	if logger == nil {
		logger = Discard()
	}
	return logger.With("file", path)
}
