package formatter

import (
	"fmt"
	"strconv"

	"github.com/philipp01105/streamlog/core"
)

// Builder accumulates the tokens of one log statement into its content.
//
// A single space separates a new token from the content already present
// unless whitespace insertion was switched off with NoWhitespace, which
// lasts for the rest of the record. Tokens are kept in call order and
// never trimmed.
//
// A Builder is owned by the goroutine running the statement and is not
// safe for concurrent use. The zero value is an empty builder with
// whitespace insertion on.
type Builder struct {
	buf          []byte
	noWhitespace bool
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Reset empties the builder and switches whitespace insertion back on.
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
	b.noWhitespace = false
}

// sep writes the separating space required before the next token.
func (b *Builder) sep() {
	if !b.noWhitespace && len(b.buf) > 0 {
		b.buf = append(b.buf, ' ')
	}
}

// Append adds token verbatim, preceded by a space when required.
func (b *Builder) Append(token string) *Builder {
	b.sep()
	b.buf = append(b.buf, token...)
	return b
}

// Str appends a string token.
func (b *Builder) Str(s string) *Builder {
	return b.Append(s)
}

// Bytes appends p as a string token.
func (b *Builder) Bytes(p []byte) *Builder {
	b.sep()
	b.buf = append(b.buf, p...)
	return b
}

// Bool appends "true" or "false".
func (b *Builder) Bool(v bool) *Builder {
	b.sep()
	b.buf = strconv.AppendBool(b.buf, v)
	return b
}

// Int appends the decimal form of v.
func (b *Builder) Int(v int) *Builder {
	return b.Int64(int64(v))
}

// Int64 appends the decimal form of v.
func (b *Builder) Int64(v int64) *Builder {
	b.sep()
	b.buf = strconv.AppendInt(b.buf, v, 10)
	return b
}

// Uint64 appends the decimal form of v.
func (b *Builder) Uint64(v uint64) *Builder {
	b.sep()
	b.buf = strconv.AppendUint(b.buf, v, 10)
	return b
}

// Float64 appends the shortest decimal form that reads back as v.
func (b *Builder) Float64(v float64) *Builder {
	b.sep()
	b.buf = appendFloat(b.buf, v, 64)
	return b
}

// Val hands the builder to v, which appends its own tokens. A nil v, or
// a nil pointer whose AppendLog panics, appends "<nil>".
func (b *Builder) Val(v Value) *Builder {
	if v == nil {
		return b.Append(nilToken)
	}
	b.appendLog(v)
	return b
}

func (b *Builder) appendLog(v Value) {
	mark := len(b.buf)
	defer func() {
		if r := recover(); r != nil {
			if !isNilPointer(v) {
				panic(r)
			}
			b.buf = b.buf[:mark]
			b.Append(nilToken)
		}
	}()
	v.AppendLog(b)
}

// Vals is Val for each value in order.
func (b *Builder) Vals(vs ...Value) *Builder {
	for _, v := range vs {
		b.Val(v)
	}
	return b
}

// Stringer appends the result of v.String(), or "<nil>" for a nil v or
// a nil pointer whose String panics.
func (b *Builder) Stringer(v fmt.Stringer) *Builder {
	if v == nil {
		return b.Append(nilToken)
	}
	return b.Append(safeString(v, v.String))
}

// Err appends the error message, or "<nil>" for a nil error or a nil
// pointer whose Error panics.
func (b *Builder) Err(err error) *Builder {
	if err == nil {
		return b.Append(nilToken)
	}
	return b.Append(safeString(err, err.Error))
}

// safeString calls fn, turning a panic caused by v being a nil pointer
// into "<nil>". Other panics propagate.
func safeString(v any, fn func() string) (s string) {
	defer func() {
		if r := recover(); r != nil {
			if !isNilPointer(v) {
				panic(r)
			}
			s = nilToken
		}
	}()
	return fn()
}

// NoWhitespace stops space insertion for the rest of the record.
func (b *Builder) NoWhitespace() *Builder {
	b.noWhitespace = true
	return b
}

// Whitespace reports whether spaces are still inserted between tokens.
func (b *Builder) Whitespace() bool {
	return !b.noWhitespace
}

// Len returns the content length in bytes.
func (b *Builder) Len() int {
	return len(b.buf)
}

// Content returns the content accumulated so far.
func (b *Builder) Content() string {
	return string(b.buf)
}

// Finish produces the record for level and caller with the accumulated
// content. The builder may be reused or pooled afterwards without
// affecting the returned record.
func (b *Builder) Finish(level core.Level, caller core.CallerInfo) core.Record {
	rec := core.NewRecord(level, caller)
	rec.Content = string(b.buf)
	return rec
}
