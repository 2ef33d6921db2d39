package logger

import (
	"strings"

	"github.com/interlaced/corelog/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	TraceLevel   = core.TraceLevel
	DebugLevel   = core.DebugLevel
	InfoLevel    = core.InfoLevel
	WarningLevel = core.WarningLevel
	ErrorLevel   = core.ErrorLevel
	FatalLevel   = core.FatalLevel
)

// ParseLevel converts a string to a Level. Unknown strings map to
// InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "TRACE":
		return TraceLevel
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARN", "WARNING":
		return WarningLevel
	case "ERROR":
		return ErrorLevel
	case "FATAL":
		return FatalLevel
	default:
		return InfoLevel
	}
}
