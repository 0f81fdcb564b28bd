package handler

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/streamlog/core"
)

func TestSlogHandler_Enabled(t *testing.T) {
	useFakeBackend(t, core.InfoLevel)
	logger := slog.New(NewSlogHandler())

	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestSlogHandler_Handle(t *testing.T) {
	fb := useFakeBackend(t, core.TraceLevel)
	logger := slog.New(NewSlogHandler())

	logger.Info("test message", "key", "value", "count", 42)

	recs := fb.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, core.InfoLevel, recs[0].Level)
	assert.Equal(t, "test message key=value count=42", recs[0].Content)
	assert.True(t, strings.HasSuffix(recs[0].File, "slog_handler_test.go"), recs[0].File)
	assert.True(t, strings.HasSuffix(recs[0].Function, "TestSlogHandler_Handle"), recs[0].Function)
}

func TestSlogHandler_AttrsAndGroups(t *testing.T) {
	fb := useFakeBackend(t, core.TraceLevel)
	logger := slog.New(NewSlogHandler()).
		With("agent", "nut").
		WithGroup("req").
		With("id", 7)

	logger.Warn("done", slog.Group("http", "status", 200, "method", "GET"), "ok", true)

	recs := fb.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, core.WarnLevel, recs[0].Level)
	assert.Equal(t, "done agent=nut req.id=7 req.http.status=200 req.http.method=GET req.ok=true", recs[0].Content)
}

func TestSlogLevelToCore(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want core.Level
	}{
		{slog.LevelError + 4, core.ErrorLevel},
		{slog.LevelError, core.ErrorLevel},
		{slog.LevelWarn, core.WarnLevel},
		{slog.LevelInfo, core.InfoLevel},
		{slog.LevelDebug, core.DebugLevel},
		{slog.LevelDebug - 4, core.TraceLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slogLevelToCore(tt.in), tt.in.String())
	}
}
