package formatter

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// Sequences render as "[a, b, c]" and maps as "{{k1 : v1}, {k2 : v2}}".
// Elements are rendered on their own, so whitespace inside an element
// follows the element and not the enclosing record.

type scalarList[T Scalar] []T

func (l scalarList[T]) AppendLog(b *Builder) {
	b.sep()
	b.buf = append(b.buf, '[')
	for i, v := range l {
		if i > 0 {
			b.buf = append(b.buf, ", "...)
		}
		b.buf = appendScalar(b.buf, v)
	}
	b.buf = append(b.buf, ']')
}

// List renders a slice of scalars.
func List[T Scalar](s []T) Value {
	return scalarList[T](s)
}

type valueList[T Value] []T

func (l valueList[T]) AppendLog(b *Builder) {
	b.sep()
	b.buf = append(b.buf, '[')
	for i, v := range l {
		if i > 0 {
			b.buf = append(b.buf, ", "...)
		}
		b.buf = appendValue(b.buf, v)
	}
	b.buf = append(b.buf, ']')
}

// Seq renders a slice of values, each through its own AppendLog.
func Seq[T Value](s []T) Value {
	return valueList[T](s)
}

type itemSeq[T Scalar] iter.Seq[T]

func (s itemSeq[T]) AppendLog(b *Builder) {
	b.sep()
	b.buf = append(b.buf, '[')
	first := true
	for v := range s {
		if !first {
			b.buf = append(b.buf, ", "...)
		}
		first = false
		b.buf = appendScalar(b.buf, v)
	}
	b.buf = append(b.buf, ']')
}

// Items renders the elements of an iterator in iteration order. The
// iterator is consumed when the record is built.
func Items[T Scalar](seq iter.Seq[T]) Value {
	if seq == nil {
		return scalarList[T](nil)
	}
	return itemSeq[T](seq)
}

type scalarMap[K cmp.Ordered, V Scalar] map[K]V

func (m scalarMap[K, V]) AppendLog(b *Builder) {
	b.sep()
	b.buf = append(b.buf, '{')
	for i, k := range slices.Sorted(maps.Keys(m)) {
		if i > 0 {
			b.buf = append(b.buf, ", "...)
		}
		b.buf = append(b.buf, '{')
		b.buf = appendScalar(b.buf, k)
		b.buf = append(b.buf, " : "...)
		b.buf = appendScalar(b.buf, m[k])
		b.buf = append(b.buf, '}')
	}
	b.buf = append(b.buf, '}')
}

// Map renders a map of scalars with its keys in ascending order.
func Map[K cmp.Ordered, V Scalar](m map[K]V) Value {
	return scalarMap[K, V](m)
}

type valueMap[K cmp.Ordered, V Value] map[K]V

func (m valueMap[K, V]) AppendLog(b *Builder) {
	b.sep()
	b.buf = append(b.buf, '{')
	for i, k := range slices.Sorted(maps.Keys(m)) {
		if i > 0 {
			b.buf = append(b.buf, ", "...)
		}
		b.buf = append(b.buf, '{')
		b.buf = appendScalar(b.buf, k)
		b.buf = append(b.buf, " : "...)
		b.buf = appendValue(b.buf, m[k])
		b.buf = append(b.buf, '}')
	}
	b.buf = append(b.buf, '}')
}

// MapOf renders a map whose values are themselves Values, keys ascending.
func MapOf[K cmp.Ordered, V Value](m map[K]V) Value {
	return valueMap[K, V](m)
}

type pairSeq[K, V Scalar] iter.Seq2[K, V]

func (s pairSeq[K, V]) AppendLog(b *Builder) {
	b.sep()
	b.buf = append(b.buf, '{')
	first := true
	for k, v := range s {
		if !first {
			b.buf = append(b.buf, ", "...)
		}
		first = false
		b.buf = append(b.buf, '{')
		b.buf = appendScalar(b.buf, k)
		b.buf = append(b.buf, " : "...)
		b.buf = appendScalar(b.buf, v)
		b.buf = append(b.buf, '}')
	}
	b.buf = append(b.buf, '}')
}

// Pairs renders key-value pairs in iteration order, for maps that keep
// their own ordering.
func Pairs[K, V Scalar](seq iter.Seq2[K, V]) Value {
	if seq == nil {
		return scalarMap[string, string](nil)
	}
	return pairSeq[K, V](seq)
}
