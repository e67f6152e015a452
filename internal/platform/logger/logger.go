package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. Services and handlers receive it by
// injection so tests can pass slog.New(slog.DiscardHandler) or a recorder.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
