package backend

import (
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/streamlog/core"
)

// traceLevel sits below zap's debug level. zap has no name for it, so the
// level encoders below print it themselves.
const traceLevel = zapcore.DebugLevel - 1

func toZapLevel(l core.Level) zapcore.Level {
	switch l {
	case core.FatalLevel:
		return zapcore.FatalLevel
	case core.ErrorLevel:
		return zapcore.ErrorLevel
	case core.WarnLevel:
		return zapcore.WarnLevel
	case core.InfoLevel:
		return zapcore.InfoLevel
	case core.DebugLevel:
		return zapcore.DebugLevel
	default:
		return traceLevel
	}
}

func fromZapLevel(l zapcore.Level) core.Level {
	switch {
	case l >= zapcore.FatalLevel:
		return core.FatalLevel
	case l >= zapcore.ErrorLevel:
		return core.ErrorLevel
	case l == zapcore.WarnLevel:
		return core.WarnLevel
	case l == zapcore.InfoLevel:
		return core.InfoLevel
	case l == zapcore.DebugLevel:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

func encodeLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l == traceLevel {
		enc.AppendString("TRACE")
		return
	}
	zapcore.CapitalLevelEncoder(l, enc)
}

func encodeColorLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l == traceLevel {
		enc.AppendString("\x1b[35mTRACE\x1b[0m")
		return
	}
	zapcore.CapitalColorLevelEncoder(l, enc)
}

// threshold is an appender's own level filter. notSet admits everything.
type threshold int32

const notSet threshold = -1

func (t threshold) admits(l core.Level) bool {
	return t == notSet || core.Level(t).Enables(l)
}
