// Package handler is the dispatch sink between log statements and the
// backend.
//
// Every finished record goes through Dispatch to a single process-wide
// Callback. Until SetCallback installs another one, DefaultCallback
// forwards records unchanged to the backend: backend.Default(), or the
// Backend passed to SetBackend. Replacing the callback is atomic and
// affects only records dispatched afterwards, since records are values.
// SetCallback(nil) puts the default forwarder back, so a callback is
// always installed.
//
// IsLevelEnabled asks the same backend whether a level is enabled. Log
// statements call it before building anything.
//
// Dispatch counts records per level in a Stats value; GetStats returns
// a Snapshot for monitoring.
//
// SlogHandler adapts the sink to log/slog.Handler. The slog message and
// attributes become the content of the record, groups are flattened into
// dotted keys, and the call site is taken from the slog record.
package handler
