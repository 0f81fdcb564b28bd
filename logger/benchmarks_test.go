package logger

import (
	"io"
	"testing"

	"github.com/philipp01105/streamlog/backend"
	"github.com/philipp01105/streamlog/handler"
)

func useDiscardBackend(b *testing.B, level Level) {
	b.Helper()
	bk := backend.New("bench", "", backend.WithStderr(io.Discard))
	bk.SetLevel(level)
	handler.SetBackend(bk)
	SetCallback(nil)
	b.Cleanup(func() {
		handler.SetBackend(nil)
		_ = bk.Close()
	})
}

// BenchmarkInfoNoFields benchmarks a plain message through the pattern layout.
func BenchmarkInfoNoFields(b *testing.B) {
	useDiscardBackend(b, InfoLevel)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Info(func(b *Builder) { b.Str("test message") })
	}
}

// BenchmarkInfoWithValues benchmarks a message with a few scalar tokens.
func BenchmarkInfoWithValues(b *testing.B) {
	useDiscardBackend(b, InfoLevel)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Info(func(b *Builder) { b.Str("request").Int(i).Bool(true).Float64(0.25) })
	}
}

// BenchmarkFilteredDebug benchmarks Debug() when level is Info.
// Target: <10 ns/op, 0 allocs/op
func BenchmarkFilteredDebug(b *testing.B) {
	useDiscardBackend(b, InfoLevel)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Debug(func(b *Builder) { b.Str("filtered") })
	}
}

// BenchmarkCallback benchmarks building and dispatching to a no-op callback.
func BenchmarkCallback(b *testing.B) {
	useDiscardBackend(b, TraceLevel)
	SetCallback(func(Record) {})
	b.Cleanup(func() { SetCallback(nil) })

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Trace(func(b *Builder) { b.Str("parrot").Int(42) })
	}
}

// BenchmarkInfofParallel benchmarks the printf path from many goroutines.
func BenchmarkInfofParallel(b *testing.B) {
	useDiscardBackend(b, InfoLevel)

	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			Infof("user %s logged in", "alice")
		}
	})
}
