package core

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger creates the logger for a cookiejson run. When w is a
// terminal it uses slog.TextHandler for human-readable output; when it
// is piped or redirected it uses slog.JSONHandler so failures can be
// consumed by scripts. verbose lowers the level to Debug.
func NewLogger(w *os.File, verbose bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		options.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if term.IsTerminal(int(w.Fd())) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}
