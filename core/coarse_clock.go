package core

import (
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"go.uber.org/zap/zapcore"
)

var (
	coarseClockOnce sync.Once
	coarseNow       unsafe.Pointer // *time.Time
)

// StartCoarseClock starts the background goroutine that caches
// time.Now() every 500µs. It is safe to call multiple times; the
// goroutine is started exactly once and runs for the lifetime of the
// process.
func StartCoarseClock() {
	coarseClockOnce.Do(func() {
		t := time.Now()
		atomic.StorePointer(&coarseNow, unsafe.Pointer(&t))
		go func() {
			ticker := time.NewTicker(500 * time.Microsecond)
			for range ticker.C {
				t := time.Now()
				atomic.StorePointer(&coarseNow, unsafe.Pointer(&t))
			}
		}()
	})
}

// CoarseNow returns the most recently cached time.Time value.
// StartCoarseClock must have been called before using CoarseNow.
func CoarseNow() time.Time {
	return *(*time.Time)(atomic.LoadPointer(&coarseNow))
}

// CoarseClock is a zapcore.Clock that stamps entries from the cached
// coarse time instead of calling time.Now for every record.
type CoarseClock struct{}

var _ zapcore.Clock = CoarseClock{}

// NewCoarseClock starts the coarse clock goroutine and returns a clock
// reading from it.
func NewCoarseClock() CoarseClock {
	StartCoarseClock()
	return CoarseClock{}
}

// Now returns the cached time.
func (CoarseClock) Now() time.Time {
	return CoarseNow()
}

// NewTicker returns a regular ticker; tickers are not on the hot path.
func (CoarseClock) NewTicker(d time.Duration) *time.Ticker {
	return time.NewTicker(d)
}
