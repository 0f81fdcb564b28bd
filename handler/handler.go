package handler

import (
	"github.com/philipp01105/streamlog/core"
)

// Backend is where the default callback sends records.
type Backend interface {
	// IsLevelEnabled reports whether records at level should be built
	IsLevelEnabled(level core.Level) bool

	// Write outputs a finished record
	Write(rec core.Record)
}

// Callback receives every finished record. It runs synchronously on the
// goroutine that produced the record.
type Callback func(rec core.Record)
