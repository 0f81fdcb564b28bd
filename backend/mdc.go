package backend

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/philipp01105/streamlog/core"
)

// The mapped diagnostic context is shared by every Logger in the process.
// Go has no goroutine-local storage, so one context applies to all
// goroutines; SetContext replaces it for all of them.
var mdc struct {
	mu     sync.RWMutex
	fields []core.Field
	zap    []zap.Field
}

// SetContext replaces the mapped diagnostic context. Later writes carry
// the pairs ordered by key.
func SetContext(ctx map[string]string) {
	fields := core.FieldsFromMap(ctx)
	zf := make([]zap.Field, len(fields))
	for i, f := range fields {
		zf[i] = zap.String(f.Key, f.Value)
	}

	mdc.mu.Lock()
	mdc.fields = fields
	mdc.zap = zf
	mdc.mu.Unlock()
}

// ClearContext removes every pair from the mapped diagnostic context.
func ClearContext() {
	mdc.mu.Lock()
	mdc.fields = nil
	mdc.zap = nil
	mdc.mu.Unlock()
}

// Context returns a copy of the mapped diagnostic context.
func Context() []core.Field {
	mdc.mu.RLock()
	defer mdc.mu.RUnlock()
	return slices.Clone(mdc.fields)
}

// contextFields returns the zap fields of the current context. The slice
// is replaced, never modified, so callers may keep it.
func contextFields() []zap.Field {
	mdc.mu.RLock()
	defer mdc.mu.RUnlock()
	return mdc.zap
}
