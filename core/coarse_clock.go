package core

import (
	"sync"
	"sync/atomic"
	"time"
)

var (
	coarseOnce sync.Once
	coarseTime atomic.Pointer[time.Time]
)

// StartCoarseClock starts a background goroutine refreshing a cached
// timestamp every 500µs. Configs built with coarse timestamps enabled
// stamp entries from this cache instead of calling time.Now() per
// event, trading sub-millisecond precision for throughput.
//
// The first call starts the goroutine; later calls are no-ops. The
// goroutine runs until the process exits, since logging usually spans
// the whole application lifetime.
func StartCoarseClock() {
	coarseOnce.Do(func() {
		now := time.Now()
		coarseTime.Store(&now)
		go func() {
			tick := time.NewTicker(500 * time.Microsecond)
			for range tick.C {
				now := time.Now()
				coarseTime.Store(&now)
			}
		}()
	})
}

// CoarseNow returns the cached timestamp. Only valid after
// StartCoarseClock.
func CoarseNow() time.Time {
	return *coarseTime.Load()
}
