package benchmark

import (
	"github.com/philipp01105/streamlog/core"
)

// noopBackend accepts every level and drops the records, isolating the
// cost of the gate and the builder.
type noopBackend struct {
	level core.Level
}

func newNoopBackend(level core.Level) *noopBackend {
	return &noopBackend{level: level}
}

func (n *noopBackend) IsLevelEnabled(level core.Level) bool {
	return level != core.OffLevel && n.level.Enables(level)
}

func (n *noopBackend) Write(rec core.Record) {
	_ = len(rec.Content)
}
