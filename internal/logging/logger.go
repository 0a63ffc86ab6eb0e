package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates the application logger writing to Stderr, so stdout only
// carries reports.
func New(level slog.Level) *slog.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a text logger on w. The "error" key is written as
// "err" to keep lines short.
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// ForDevice returns a child logger tagged with the device name.
func ForDevice(logger *slog.Logger, device string) *slog.Logger {
	return logger.With("device", device)
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
