package core

import (
	"path/filepath"
	"runtime"
	"time"
)

// Record is one finished log statement: the level and call site bound
// when the statement started and the content accumulated while it ran.
// Records are passed by value and never modified after dispatch.
type Record struct {
	Level    Level
	File     string
	Line     int
	Function string
	Content  string
}

// Entry is a Record as an appender sees it, stamped with the time, the
// name of the logger that wrote it and the mapped diagnostic context in
// effect at that moment.
type Entry struct {
	Time    time.Time
	Logger  string
	Record  Record
	Context []Field
}

// ContextValue returns the context value stored under key.
func (e *Entry) ContextValue(key string) (string, bool) {
	for _, f := range e.Context {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// CallerInfo contains information about the caller
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// GetCaller retrieves caller information
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return CallerInfo{}
	}

	fn := runtime.FuncForPC(pc)
	var funcName string
	if fn != nil {
		funcName = fn.Name()
	}

	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  funcName,
		Defined:   true,
	}
}

// CallerFromPC resolves caller information from a program counter, as
// carried by slog records.
func CallerFromPC(pc uintptr) CallerInfo {
	if pc == 0 {
		return CallerInfo{}
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.File == "" {
		return CallerInfo{}
	}
	return CallerInfo{
		File:      frame.File,
		ShortFile: filepath.Base(frame.File),
		Line:      frame.Line,
		Function:  frame.Function,
		Defined:   true,
	}
}

// NewRecord binds level and call site into an empty record.
func NewRecord(level Level, caller CallerInfo) Record {
	return Record{
		Level:    level,
		File:     caller.File,
		Line:     caller.Line,
		Function: caller.Function,
	}
}
