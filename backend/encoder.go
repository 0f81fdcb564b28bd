package backend

import (
	"fmt"
	"slices"
	"strings"
	"time"

	zaplogfmt "github.com/jsternberg/zap-logfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/streamlog/core"
	"github.com/philipp01105/streamlog/formatter"
)

// Layout names accepted in BIOS_LOG_FORMAT and in the config file.
const (
	LayoutPattern = "pattern"
	LayoutConsole = "console"
	LayoutJSON    = "json"
	LayoutLogfmt  = "logfmt"
)

func validLayout(name string) bool {
	switch name {
	case LayoutPattern, LayoutConsole, LayoutJSON, LayoutLogfmt:
		return true
	}
	return false
}

func encoderConfig(color bool) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.NameKey = "logger"
	cfg.FunctionKey = "func"
	cfg.StacktraceKey = ""
	cfg.EncodeTime = func(ts time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(ts.UTC().Format(time.RFC3339Nano))
	}
	cfg.EncodeLevel = encodeLevel
	if color {
		cfg.EncodeLevel = encodeColorLevel
	}
	return cfg
}

// newEncoder builds the encoder for a layout. pattern is only used by the
// pattern layout.
func newEncoder(layout, pattern string, color bool) zapcore.Encoder {
	switch layout {
	case LayoutConsole:
		return zapcore.NewConsoleEncoder(encoderConfig(color))
	case LayoutJSON:
		return zapcore.NewJSONEncoder(encoderConfig(false))
	case LayoutLogfmt:
		return zaplogfmt.NewEncoder(encoderConfig(false))
	default:
		return newPatternEncoder(pattern)
	}
}

var bufferPool = buffer.NewPool()

// patternEncoder renders entries through a formatter.PatternLayout. Fields
// become the mapped diagnostic context of the entry.
type patternEncoder struct {
	*zapcore.MapObjectEncoder
	layout *formatter.PatternLayout
}

func newPatternEncoder(pattern string) *patternEncoder {
	return &patternEncoder{
		MapObjectEncoder: zapcore.NewMapObjectEncoder(),
		layout:           formatter.NewPatternLayout(pattern),
	}
}

func (e *patternEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range e.Fields {
		clone.Fields[k] = v
	}
	return &patternEncoder{MapObjectEncoder: clone, layout: e.layout}
}

func (e *patternEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	entry := core.Entry{
		Time:   ent.Time,
		Logger: ent.LoggerName,
		Record: core.Record{
			Level:    fromZapLevel(ent.Level),
			File:     ent.Caller.File,
			Line:     ent.Caller.Line,
			Function: ent.Caller.Function,
			Content:  ent.Message,
		},
		Context: e.context(fields),
	}

	buf := bufferPool.Get()
	if err := e.layout.FormatTo(&entry, buf); err != nil {
		buf.Free()
		return nil, err
	}
	return buf, nil
}

func (e *patternEncoder) context(fields []zapcore.Field) []core.Field {
	if len(fields) == 0 && len(e.Fields) == 0 {
		return nil
	}

	ctx := make([]core.Field, 0, len(fields)+len(e.Fields))
	for k, v := range e.Fields {
		ctx = append(ctx, core.Field{Key: k, Value: fmt.Sprint(v)})
	}
	for _, f := range fields {
		if f.Type == zapcore.StringType {
			ctx = append(ctx, core.Field{Key: f.Key, Value: f.String})
			continue
		}
		m := zapcore.NewMapObjectEncoder()
		f.AddTo(m)
		ctx = append(ctx, core.Field{Key: f.Key, Value: fmt.Sprint(m.Fields[f.Key])})
	}
	slices.SortStableFunc(ctx, func(a, b core.Field) int { return strings.Compare(a.Key, b.Key) })
	return ctx
}
