package core

import (
	"fmt"
	"strings"
)

// Level represents the severity of a log record. Severity decreases as
// the value increases: Off is the strictest threshold and Trace the most
// verbose one.
type Level int8

const (
	// OffLevel disables all output when used as a threshold
	OffLevel Level = iota
	// FatalLevel for unrecoverable failures (does not exit the process)
	FatalLevel
	// ErrorLevel for error messages
	ErrorLevel
	// WarnLevel for warning messages
	WarnLevel
	// InfoLevel for general informational messages
	InfoLevel
	// DebugLevel for detailed debugging information
	DebugLevel
	// TraceLevel for the most verbose diagnostics
	TraceLevel
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case OffLevel:
		return "OFF"
	case FatalLevel:
		return "FATAL"
	case ErrorLevel:
		return "ERROR"
	case WarnLevel:
		return "WARN"
	case InfoLevel:
		return "INFO"
	case DebugLevel:
		return "DEBUG"
	case TraceLevel:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

// Enables reports whether a record at level passes when l is the active
// threshold.
func (l Level) Enables(level Level) bool {
	return l >= level
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return l >= OffLevel && l <= TraceLevel
}

// ParseLevel converts a level name to a Level. Matching is case-insensitive.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OFF":
		return OffLevel, nil
	case "FATAL", "CRIT", "CRITICAL":
		return FatalLevel, nil
	case "ERROR", "ERR":
		return ErrorLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "TRACE":
		return TraceLevel, nil
	default:
		return OffLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// ParseSyslogLevel converts the syslog-style names accepted in the
// environment (LOG_TRACE, LOG_DEBUG, LOG_INFO, LOG_WARNING, LOG_ERR,
// LOG_CRIT, LOG_OFF). Any other value, including the empty string,
// reports ok=false.
func ParseSyslogLevel(s string) (level Level, ok bool) {
	switch s {
	case "LOG_TRACE":
		return TraceLevel, true
	case "LOG_DEBUG":
		return DebugLevel, true
	case "LOG_INFO":
		return InfoLevel, true
	case "LOG_WARNING":
		return WarnLevel, true
	case "LOG_ERR":
		return ErrorLevel, true
	case "LOG_CRIT":
		return FatalLevel, true
	case "LOG_OFF":
		return OffLevel, true
	default:
		return OffLevel, false
	}
}

// UnmarshalText lets levels be decoded from config files and env vars.
func (l *Level) UnmarshalText(text []byte) error {
	if lvl, ok := ParseSyslogLevel(string(text)); ok {
		*l = lvl
		return nil
	}
	lvl, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = lvl
	return nil
}

// MarshalText encodes the level by name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(l.String())), nil
}
