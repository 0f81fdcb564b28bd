package handler

import (
	"sync/atomic"

	"github.com/philipp01105/streamlog/backend"
	"github.com/philipp01105/streamlog/core"
)

type backendRef struct {
	b Backend
}

var (
	// callback is nil while the default forwarder is installed
	callback atomic.Pointer[Callback]
	target   atomic.Pointer[backendRef]
	stats    = NewStats()
)

// currentBackend returns the backend set with SetBackend, or the default
// backend logger.
func currentBackend() Backend {
	if ref := target.Load(); ref != nil {
		return ref.b
	}
	return backend.Default()
}

// SetBackend redirects the default callback and level queries to b. A
// nil b restores the default backend logger.
func SetBackend(b Backend) {
	if b == nil {
		target.Store(nil)
		return
	}
	target.Store(&backendRef{b: b})
}

// DefaultCallback forwards rec unchanged to the current backend.
func DefaultCallback(rec core.Record) {
	currentBackend().Write(rec)
}

// SetCallback replaces the process-wide callback. Records dispatched
// afterwards go to cb; records already dispatched are unaffected. A nil
// cb reinstalls DefaultCallback.
func SetCallback(cb Callback) {
	stats.IncrementReplaced()
	if cb == nil {
		callback.Store(nil)
		return
	}
	callback.Store(&cb)
}

// GetCallback returns the installed callback.
func GetCallback() Callback {
	if cb := callback.Load(); cb != nil {
		return *cb
	}
	return DefaultCallback
}

// IsLevelEnabled reports whether the current backend accepts level.
func IsLevelEnabled(level core.Level) bool {
	return currentBackend().IsLevelEnabled(level)
}

// Dispatch hands rec to the installed callback.
func Dispatch(rec core.Record) {
	stats.IncrementDispatched(rec.Level)
	if cb := callback.Load(); cb != nil {
		(*cb)(rec)
		return
	}
	DefaultCallback(rec)
}

// GetStats returns a snapshot of the dispatch counters.
func GetStats() Snapshot {
	return stats.GetSnapshot()
}

// ResetStats sets the dispatch counters back to zero.
func ResetStats() {
	stats.Reset()
}
