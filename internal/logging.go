package internal

import (
	"io"
	"log/slog"
)

// Shared log level for all loggers created by [NewLogger].
var logLevel slog.LevelVar

// Sets the level of the shared logger.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

// Returns the level of the shared logger.
func LogLevel() slog.Level {
	return logLevel.Level()
}

// Creates a text logger writing to w, grouped under the program name.
//
// All loggers share one level, so changing it with [SetLogLevel] affects
// loggers that were created earlier. Verbose loggers include the source
// location of each record.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     &logLevel,
		AddSource: verbose,
	})
	return slog.New(handler.WithGroup(Name))
}
