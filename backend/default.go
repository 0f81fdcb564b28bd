package backend

import (
	"sync"
	"sync/atomic"
)

// Name and config file of the default logger.
const (
	DefaultName       = "streamlog"
	DefaultConfigFile = "/etc/streamlog/streamlog.yaml"
)

var (
	defaultLogger atomic.Pointer[Logger]
	// serializes creation of the default logger
	defaultMu sync.Mutex
)

// Default returns the process-wide logger, creating it on first use with
// DefaultName and DefaultConfigFile. Once created it costs one atomic
// load.
func Default() *Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := New(DefaultName, DefaultConfigFile)
	defaultLogger.Store(l)
	return l
}

// SetDefault reinitializes the default logger in place under a new name
// and config file.
func SetDefault(name, configFile string) error {
	return Default().Change(name, configFile)
}

// ReplaceDefault installs l as the default logger and returns the
// previous one, which may be nil if none was created yet. A nil l makes
// the next Default call create a new logger.
func ReplaceDefault(l *Logger) *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultLogger.Swap(l)
}
