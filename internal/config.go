package internal

import (
	"log/slog"
	"strconv"
)

// Link-time mode defaults, parsed from the raw ldflags strings.
var (
	quietMode   = parseFlag(rawQuiet)
	debugMode   = parseFlag(rawDebug)
	verboseMode = parseFlag(rawVerbose)
)

// Parses a boolean ldflag, treating anything unparsable as false.
func parseFlag(raw string) bool {
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}

// Returns true if the binary was built with quiet mode on.
func IsQuiet() bool {
	return quietMode
}

// Returns true if the binary was built with debug logging on.
func IsDebug() bool {
	return debugMode
}

// Returns true if the binary was built with verbose logging on.
func IsVerbose() bool {
	return verboseMode
}

// Returns the log level for the given command-line flags.
//
// Either source can raise the level: a debug flag or debug build wins over
// quiet, and quiet wins over the informational default.
func Level(quiet, debug bool) slog.Level {
	switch {
	case debug || IsDebug():
		return slog.LevelDebug
	case quiet || IsQuiet():
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
