package logger

import (
	"io"
	"log/slog"
)

// New - JSON логгер с заданным уровнем
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
