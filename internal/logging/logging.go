// Package logging routes all diagnostics to a log file. The TUI owns
// the terminal, so nothing may write to stdout once it is up.
package logging

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

const fileName = "tablero.log"

// Logger is the process-wide slog instance, also installed as the slog
// default
var Logger *slog.Logger

// Init opens the log file under dir in append mode and points both slog
// and the standard log package at it.
func Init(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(filepath.Join(dir, fileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	Logger = slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(Logger)

	// Third-party code using the standard log package lands in the same
	// file instead of the terminal
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags)

	return nil
}
