package internal

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds the application logger from a level string; unknown
// levels fall back to info.
func NewLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

// MaskedRune extracts the single masking character from configuration.
func MaskedRune(str string) rune {
	r := []rune(str)
	if len(r) != 1 {
		return '*'
	}
	return r[0]
}
