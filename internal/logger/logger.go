// Package logger sets up structured JSON logging for the client layer.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup returns a JSON slog.Logger writing to w.
func Setup(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

// SetupDefault installs the JSON logger as the process default. Pass
// os.Stderr in CLI builds so toast output stays readable on stdout.
func SetupDefault(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	slog.SetDefault(Setup(w))
}
