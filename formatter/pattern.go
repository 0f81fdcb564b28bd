package formatter

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/philipp01105/streamlog/core"
)

// DefaultPattern is used when no pattern is configured.
const DefaultPattern = "%c [%t] -%-5p- %M (%l) %m%n"

// DefaultTimeLayout is the layout of %d and %D without an argument.
const DefaultTimeLayout = "2006-01-02 15:04:05,000"

var pid = strconv.Itoa(os.Getpid())

// PatternLayout renders entries through a conversion pattern.
//
// Each directive starts with '%', followed by optional format modifiers
// and a conversion character:
//
//	%c  logger name          %p  level name
//	%t  thread (process id)  %i  process id
//	%m  content              %n  newline
//	%l  file:line            %L  line
//	%F  file path            %b  file base name
//	%M  function             %%  literal percent
//	%d  UTC time             %D  local time
//	%X  whole context        %X{key}  one context value
//
// %d and %D take an optional {layout} in Go reference-time notation.
// Modifiers: '-' aligns left, a decimal minimum width pads with spaces,
// and '.max' truncates longer output from the left. Unknown conversion
// characters are copied through unchanged.
type PatternLayout struct {
	pattern  string
	segments []segment
}

type segment struct {
	verb    byte // 0 for literal text
	literal string
	arg     string
	left    bool
	min     int
	max     int
}

// NewPatternLayout compiles pattern. An empty pattern selects
// DefaultPattern.
func NewPatternLayout(pattern string) *PatternLayout {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &PatternLayout{pattern: pattern, segments: compile(pattern)}
}

// Pattern returns the conversion pattern the layout was compiled from.
func (l *PatternLayout) Pattern() string {
	return l.pattern
}

func compile(pattern string) []segment {
	var segs []segment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' || i+1 >= len(pattern) {
			lit.WriteByte(c)
			continue
		}

		start := i
		i++
		if pattern[i] == '%' {
			lit.WriteByte('%')
			continue
		}

		var seg segment
		if pattern[i] == '-' {
			seg.left = true
			i++
		}
		seg.min, i = readInt(pattern, i)
		if i < len(pattern) && pattern[i] == '.' {
			seg.max, i = readInt(pattern, i+1)
		}
		if i >= len(pattern) {
			lit.WriteString(pattern[start:])
			break
		}

		seg.verb = pattern[i]
		if !knownVerb(seg.verb) {
			lit.WriteString(pattern[start : i+1])
			continue
		}
		if i+1 < len(pattern) && pattern[i+1] == '{' {
			if end := strings.IndexByte(pattern[i+2:], '}'); end >= 0 {
				seg.arg = pattern[i+2 : i+2+end]
				i += 2 + end
			}
		}

		flush()
		segs = append(segs, seg)
	}
	flush()
	return segs
}

func readInt(s string, i int) (int, int) {
	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	return n, i
}

func knownVerb(c byte) bool {
	switch c {
	case 'c', 't', 'i', 'p', 'm', 'n', 'l', 'L', 'F', 'b', 'M', 'd', 'D', 'X':
		return true
	}
	return false
}

// AppendEntry renders e and appends the result to dst.
func (l *PatternLayout) AppendEntry(dst []byte, e *core.Entry) []byte {
	for i := range l.segments {
		seg := &l.segments[i]
		if seg.verb == 0 {
			dst = append(dst, seg.literal...)
			continue
		}
		start := len(dst)
		dst = seg.appendVerb(dst, e)
		if seg.min > 0 || seg.max > 0 {
			dst = seg.adjust(dst, start)
		}
	}
	return dst
}

func (s *segment) appendVerb(dst []byte, e *core.Entry) []byte {
	rec := &e.Record
	switch s.verb {
	case 'c':
		return append(dst, e.Logger...)
	case 't', 'i':
		return append(dst, pid...)
	case 'p':
		return append(dst, rec.Level.String()...)
	case 'm':
		return append(dst, rec.Content...)
	case 'n':
		return append(dst, '\n')
	case 'l':
		dst = append(dst, filepath.Base(rec.File)...)
		dst = append(dst, ':')
		return strconv.AppendInt(dst, int64(rec.Line), 10)
	case 'L':
		return strconv.AppendInt(dst, int64(rec.Line), 10)
	case 'F':
		return append(dst, rec.File...)
	case 'b':
		return append(dst, filepath.Base(rec.File)...)
	case 'M':
		return append(dst, shortFunction(rec.Function)...)
	case 'd':
		return e.Time.UTC().AppendFormat(dst, s.timeLayout())
	case 'D':
		return e.Time.Local().AppendFormat(dst, s.timeLayout())
	case 'X':
		if s.arg == "" {
			return append(dst, core.JoinFields(e.Context)...)
		}
		v, _ := e.ContextValue(s.arg)
		return append(dst, v...)
	}
	return dst
}

func (s *segment) timeLayout() string {
	if s.arg != "" {
		return s.arg
	}
	return DefaultTimeLayout
}

// adjust applies the width modifiers to dst[start:].
func (s *segment) adjust(dst []byte, start int) []byte {
	n := len(dst) - start
	if s.max > 0 && n > s.max {
		copy(dst[start:], dst[len(dst)-s.max:])
		dst = dst[:start+s.max]
		n = s.max
	}
	if n >= s.min {
		return dst
	}
	pad := s.min - n
	if s.left {
		for range pad {
			dst = append(dst, ' ')
		}
		return dst
	}
	for range pad {
		dst = append(dst, ' ')
	}
	copy(dst[start+pad:], dst[start:start+n])
	for i := start; i < start+pad; i++ {
		dst[i] = ' '
	}
	return dst
}

func shortFunction(fn string) string {
	if i := strings.LastIndexByte(fn, '/'); i >= 0 {
		return fn[i+1:]
	}
	return fn
}

// Format renders e into a new byte slice.
func (l *PatternLayout) Format(e *core.Entry) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	buf.Write(l.AppendEntry(buf.AvailableBuffer(), e))

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo renders e and writes it to w.
func (l *PatternLayout) FormatTo(e *core.Entry, w io.Writer) error {
	buf := getBuffer()

	buf.Write(l.AppendEntry(buf.AvailableBuffer(), e))

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}
