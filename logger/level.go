package logger

import (
	"github.com/philipp01105/streamlog/core"
	"github.com/philipp01105/streamlog/handler"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	OffLevel   = core.OffLevel
	FatalLevel = core.FatalLevel
	ErrorLevel = core.ErrorLevel
	WarnLevel  = core.WarnLevel
	InfoLevel  = core.InfoLevel
	DebugLevel = core.DebugLevel
	TraceLevel = core.TraceLevel
)

// ParseLevel converts a level name to a Level
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}

// IsLevelEnabled reports whether statements at level are currently built.
func IsLevelEnabled(level Level) bool {
	return handler.IsLevelEnabled(level)
}
