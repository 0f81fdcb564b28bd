package logger

import (
	"github.com/philipp01105/streamlog/backend"
	"github.com/philipp01105/streamlog/core"
	"github.com/philipp01105/streamlog/handler"
)

// Callback receives every finished record.
type Callback = handler.Callback

// SetCallback replaces the process-wide callback. A nil cb reinstalls
// the default forwarder to the backend.
func SetCallback(cb Callback) {
	handler.SetCallback(cb)
}

// Instance returns the default backend logger
func Instance() *backend.Logger {
	return backend.Default()
}

// SetInstance reinitializes the default backend logger under a new
// agent name and config file
func SetInstance(name, configFile string) error {
	return backend.SetDefault(name, configFile)
}

// SetLevel sets the level of the default backend logger
func SetLevel(level Level) {
	backend.Default().SetLevel(level)
}

// SetVerboseMode switches the default backend logger to verbose mode
func SetVerboseMode() {
	backend.Default().SetVerboseMode()
}

// SetConfigFile loads a config file into the default backend logger
func SetConfigFile(path string) error {
	return backend.Default().SetConfigFile(path)
}

// SetContext replaces the mapped diagnostic context
func SetContext(ctx map[string]string) {
	backend.SetContext(ctx)
}

// ClearContext empties the mapped diagnostic context
func ClearContext() {
	backend.ClearContext()
}

// Context returns the mapped diagnostic context
func Context() []core.Field {
	return backend.Context()
}
