package handler

import (
	"context"
	"log/slog"

	"github.com/philipp01105/streamlog/core"
	"github.com/philipp01105/streamlog/formatter"
)

// SlogHandler is an adapter that implements slog.Handler on top of the
// dispatch sink, so code written against log/slog ends up in the same
// callback as everything else. The message becomes the first token of
// the content and each attribute a key=value token.
type SlogHandler struct {
	attrs []string
	group string
}

// NewSlogHandler creates a new slog.Handler adapter.
func NewSlogHandler() *SlogHandler {
	return &SlogHandler{}
}

// Enabled reports whether the current backend accepts the level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return IsLevelEnabled(slogLevelToCore(level))
}

// Handle converts the slog record and dispatches it.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	b := formatter.GetBuilder()
	b.Str(record.Message)

	for _, a := range s.attrs {
		b.Str(a)
	}
	record.Attrs(func(a slog.Attr) bool {
		for _, tok := range slogAttrTokens(s.group, a, nil) {
			b.Str(tok)
		}
		return true
	})

	rec := b.Finish(slogLevelToCore(record.Level), core.CallerFromPC(record.PC))
	formatter.PutBuilder(b)

	Dispatch(rec)
	return nil
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]string, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = slogAttrTokens(s.group, a, newAttrs)
	}
	return &SlogHandler{
		attrs: newAttrs,
		group: s.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	return &SlogHandler{
		attrs: s.attrs,
		group: newGroup,
	}
}

// slogLevelToCore converts a slog.Level to a core.Level.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// slogAttrTokens appends the key=value tokens of a to dst, prefixing
// keys with the group. Groups are flattened with dotted keys.
func slogAttrTokens(group string, a slog.Attr, dst []string) []string {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}

	key := a.Key
	if group != "" && key != "" {
		key = group + "." + key
	} else if key == "" {
		key = group
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			dst = slogAttrTokens(key, ga, dst)
		}
		return dst
	}
	return append(dst, key+"="+a.Value.String())
}
