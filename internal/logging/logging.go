// Package logging sets up the process logger. The TUI owns the terminal,
// so logs go to a file; when the file cannot be opened the logger is
// disabled rather than failing startup.
package logging

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to the given file, creating parent
// directories as needed.
func New(path string) zerolog.Logger {
	if path == "" {
		return zerolog.Nop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop()
	}
	return zerolog.New(f).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
