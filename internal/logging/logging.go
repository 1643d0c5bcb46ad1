// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Supported handler formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// CheckFormat reports whether format names a supported handler.
func CheckFormat(format string) error {
	switch format {
	case FormatText, FormatJSON:
		return nil
	}
	return fmt.Errorf("log format must be %s or %s, got %q", FormatText, FormatJSON, format)
}

// Init configures the global slog default with the given level and format.
// If w is nil, os.Stderr is used. Unknown formats fall back to text.
func Init(level slog.Level, format string, w ...io.Writer) {
	var writer io.Writer = os.Stderr
	if len(w) > 0 && w[0] != nil {
		writer = w[0]
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, opts)
	default:
		handler = slog.NewTextHandler(writer, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// New returns a logger with a "component" attribute for module-scoped logging.
func New(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}

// ForRecord scopes l to a single input record.
func ForRecord(l *slog.Logger, leadCode, input string) *slog.Logger {
	return l.With(slog.String("lead_code", leadCode), slog.String("input", input))
}

// Err wraps err as a structured "error" attribute.
func Err(err error) slog.Attr {
	return slog.Any("error", err)
}
