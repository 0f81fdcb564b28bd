package logger

import (
	"cmp"
	"fmt"
	"iter"

	"github.com/philipp01105/streamlog/core"
	"github.com/philipp01105/streamlog/formatter"
)

// Builder, Record and Value re-exported so that most programs only
// import this package.
type (
	Builder = formatter.Builder
	Record  = core.Record
	Value   = formatter.Value
)

// NoWhitespace stops space insertion for the rest of the record.
var NoWhitespace = formatter.NoWhitespace

// Value helper functions for convenience

// Text wraps a string-like value
func Text[T ~string | ~[]byte](v T) Value {
	return formatter.Text(v)
}

// Bool wraps a boolean
func Bool(v bool) Value {
	return formatter.Bool(v)
}

// Int wraps an integer of any width
func Int[T formatter.Integer](v T) Value {
	return formatter.Int(v)
}

// Float wraps a float
func Float[T formatter.Floating](v T) Value {
	return formatter.Float(v)
}

// Ptr wraps the address held by p
func Ptr[T any](p *T) Value {
	return formatter.Ptr(p)
}

// Err wraps an error
func Err(err error) Value {
	return formatter.Error(err)
}

// Stringer wraps a fmt.Stringer
func Stringer(s fmt.Stringer) Value {
	return formatter.Stringer(s)
}

// List wraps a slice of scalars
func List[T formatter.Scalar](s []T) Value {
	return formatter.List(s)
}

// Seq wraps a slice of values
func Seq[T Value](s []T) Value {
	return formatter.Seq(s)
}

// Map wraps a map of scalars, rendered with ascending keys
func Map[K cmp.Ordered, V formatter.Scalar](m map[K]V) Value {
	return formatter.Map(m)
}

// MapOf wraps a map of values, rendered with ascending keys
func MapOf[K cmp.Ordered, V Value](m map[K]V) Value {
	return formatter.MapOf(m)
}

// Items wraps an iterator of scalars, rendered in iteration order
func Items[T formatter.Scalar](seq iter.Seq[T]) Value {
	return formatter.Items(seq)
}

// Pairs wraps an iterator of key/value pairs, rendered in iteration order
func Pairs[K, V formatter.Scalar](seq iter.Seq2[K, V]) Value {
	return formatter.Pairs(seq)
}
