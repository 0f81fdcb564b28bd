package logger

import (
	"fmt"

	"github.com/philipp01105/streamlog/core"
	"github.com/philipp01105/streamlog/formatter"
	"github.com/philipp01105/streamlog/handler"
)

// callerSkip is the runtime.Caller depth of the user's call site as seen
// from core.GetCaller inside emit: GetCaller, emit, the exported
// function, then its caller. Every exported function must call emit or
// emitf directly.
const callerSkip = 3

// emit is the gate shared by every log statement. The level is checked
// first, cond runs only for an enabled level and fn only when cond
// passed. The record is dispatched from a deferred call so that whatever
// fn built before a panic is still delivered.
func emit(level Level, cond func() bool, fn func(*Builder)) {
	if !handler.IsLevelEnabled(level) {
		return
	}
	if cond != nil && !cond() {
		return
	}

	caller := core.GetCaller(callerSkip)
	b := formatter.GetBuilder()
	defer func() {
		rec := b.Finish(level, caller)
		formatter.PutBuilder(b)
		handler.Dispatch(rec)
	}()

	if fn != nil {
		fn(b)
	}
}

func emitf(level Level, format string, args []any) {
	if !handler.IsLevelEnabled(level) {
		return
	}

	rec := core.NewRecord(level, core.GetCaller(callerSkip))
	rec.Content = fmt.Sprintf(format, args...)
	handler.Dispatch(rec)
}

// Log builds a record at level with fn and dispatches it. fn is not
// called when the level is disabled.
func Log(level Level, fn func(b *Builder)) {
	emit(level, nil, fn)
}

// LogIf is Log guarded by cond. cond is only evaluated when the level is
// enabled, and fn only when cond returns true.
func LogIf(level Level, cond func() bool, fn func(b *Builder)) {
	emit(level, cond, fn)
}

// Trace logs at TraceLevel.
func Trace(fn func(b *Builder)) {
	emit(TraceLevel, nil, fn)
}

// TraceIf logs at TraceLevel when cond returns true.
func TraceIf(cond func() bool, fn func(b *Builder)) {
	emit(TraceLevel, cond, fn)
}

// Debug logs at DebugLevel.
func Debug(fn func(b *Builder)) {
	emit(DebugLevel, nil, fn)
}

// DebugIf logs at DebugLevel when cond returns true.
func DebugIf(cond func() bool, fn func(b *Builder)) {
	emit(DebugLevel, cond, fn)
}

// Info logs at InfoLevel.
func Info(fn func(b *Builder)) {
	emit(InfoLevel, nil, fn)
}

// InfoIf logs at InfoLevel when cond returns true.
func InfoIf(cond func() bool, fn func(b *Builder)) {
	emit(InfoLevel, cond, fn)
}

// Warn logs at WarnLevel.
func Warn(fn func(b *Builder)) {
	emit(WarnLevel, nil, fn)
}

// WarnIf logs at WarnLevel when cond returns true.
func WarnIf(cond func() bool, fn func(b *Builder)) {
	emit(WarnLevel, cond, fn)
}

// Error logs at ErrorLevel.
func Error(fn func(b *Builder)) {
	emit(ErrorLevel, nil, fn)
}

// ErrorIf logs at ErrorLevel when cond returns true.
func ErrorIf(cond func() bool, fn func(b *Builder)) {
	emit(ErrorLevel, cond, fn)
}

// Fatal logs at FatalLevel. The process keeps running.
func Fatal(fn func(b *Builder)) {
	emit(FatalLevel, nil, fn)
}

// FatalIf logs at FatalLevel when cond returns true.
func FatalIf(cond func() bool, fn func(b *Builder)) {
	emit(FatalLevel, cond, fn)
}

// Tracef logs a formatted message at TraceLevel
func Tracef(format string, args ...any) {
	emitf(TraceLevel, format, args)
}

// Debugf logs a formatted message at DebugLevel
func Debugf(format string, args ...any) {
	emitf(DebugLevel, format, args)
}

// Infof logs a formatted message at InfoLevel
func Infof(format string, args ...any) {
	emitf(InfoLevel, format, args)
}

// Warnf logs a formatted message at WarnLevel
func Warnf(format string, args ...any) {
	emitf(WarnLevel, format, args)
}

// Errorf logs a formatted message at ErrorLevel
func Errorf(format string, args ...any) {
	emitf(ErrorLevel, format, args)
}

// Fatalf logs a formatted message at FatalLevel. The process keeps running.
func Fatalf(format string, args ...any) {
	emitf(FatalLevel, format, args)
}
