package formatter

import (
	"fmt"
	"reflect"
	"strconv"
	"unsafe"
)

const nilToken = "<nil>"

// Value is implemented by anything that knows how to write itself into a
// log record. The built-in constructors below cover strings, booleans,
// numbers, pointers and containers; other types implement AppendLog
// directly and may append any number of tokens, or switch whitespace off.
type Value interface {
	AppendLog(b *Builder)
}

// Integer is the set of integral types with a decimal token form.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Floating is the set of floating-point types.
type Floating interface {
	~float32 | ~float64
}

// Scalar is the set of types with a built-in token form. Container
// elements, keys and values of these types need no wrapping.
type Scalar interface {
	~string | ~bool | Integer | Floating
}

type scalarValue[T Scalar] struct{ v T }

func (s scalarValue[T]) AppendLog(b *Builder) {
	b.sep()
	b.buf = appendScalar(b.buf, s.v)
}

// Of wraps any scalar as a Value.
func Of[T Scalar](v T) Value {
	return scalarValue[T]{v}
}

// Text wraps a string-like value; it is used verbatim.
func Text[T ~string | ~[]byte](v T) Value {
	return scalarValue[string]{string(v)}
}

// Bool wraps a boolean; it renders as "true" or "false".
func Bool(v bool) Value {
	return scalarValue[bool]{v}
}

// Int wraps an integer of any width; it renders in decimal with its sign.
func Int[T Integer](v T) Value {
	return scalarValue[T]{v}
}

// Float wraps a float; it renders in the shortest form that reads back
// as the same value.
func Float[T Floating](v T) Value {
	return scalarValue[T]{v}
}

type ptrValue uintptr

func (p ptrValue) AppendLog(b *Builder) {
	b.sep()
	b.buf = appendPointer(b.buf, uintptr(p))
}

// Ptr renders the address held by p in lowercase hexadecimal, exactly as
// fmt's %p verb does.
func Ptr[T any](p *T) Value {
	return ptrValue(uintptr(unsafe.Pointer(p)))
}

type stringerValue struct{ s fmt.Stringer }

func (v stringerValue) AppendLog(b *Builder) {
	b.Stringer(v.s)
}

// Stringer wraps a fmt.Stringer; the token is its String result.
func Stringer(s fmt.Stringer) Value {
	return stringerValue{s}
}

type errorValue struct{ err error }

func (v errorValue) AppendLog(b *Builder) {
	b.Err(v.err)
}

// Error wraps an error; the token is its message, or "<nil>".
func Error(err error) Value {
	return errorValue{err}
}

type noWhitespace struct{}

func (noWhitespace) AppendLog(b *Builder) {
	b.NoWhitespace()
}

// NoWhitespace produces no token. Tokens appended after it are joined
// without separating spaces until the record ends.
var NoWhitespace Value = noWhitespace{}

// Token renders v on its own, as it would appear as a single container
// element.
func Token(v Value) string {
	return string(appendValue(nil, v))
}

func appendValue(dst []byte, v Value) []byte {
	if v == nil {
		return append(dst, nilToken...)
	}
	sb := GetBuilder()
	sb.appendLog(v)
	dst = append(dst, sb.buf...)
	PutBuilder(sb)
	return dst
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func appendFloat(dst []byte, v float64, bitSize int) []byte {
	return strconv.AppendFloat(dst, v, 'g', -1, bitSize)
}

func appendPointer(dst []byte, p uintptr) []byte {
	dst = append(dst, '0', 'x')
	return strconv.AppendUint(dst, uint64(p), 16)
}

// appendScalar writes the token form of v. The common builtin types are
// matched directly; named types fall through to their reflect kind.
func appendScalar[T Scalar](dst []byte, v T) []byte {
	switch x := any(v).(type) {
	case string:
		return append(dst, x...)
	case bool:
		return strconv.AppendBool(dst, x)
	case int:
		return strconv.AppendInt(dst, int64(x), 10)
	case int64:
		return strconv.AppendInt(dst, x, 10)
	case uint64:
		return strconv.AppendUint(dst, x, 10)
	case float64:
		return appendFloat(dst, x, 64)
	case float32:
		return appendFloat(dst, float64(x), 32)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return append(dst, rv.String()...)
	case reflect.Bool:
		return strconv.AppendBool(dst, rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.AppendInt(dst, rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.AppendUint(dst, rv.Uint(), 10)
	case reflect.Float32:
		return appendFloat(dst, rv.Float(), 32)
	default:
		return appendFloat(dst, rv.Float(), 64)
	}
}
