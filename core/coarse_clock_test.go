package core

import (
	"testing"
	"time"
)

func TestCoarseNowTracksWallClock(t *testing.T) {
	StartCoarseClock()
	time.Sleep(2 * time.Millisecond)

	for i := 0; i < 3; i++ {
		drift := time.Since(CoarseNow())
		if drift < 0 {
			drift = -drift
		}
		if drift > 10*time.Millisecond {
			t.Fatalf("cached time drifted %v from the wall clock", drift)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestStartCoarseClockRepeatedCalls(t *testing.T) {
	StartCoarseClock()
	first := CoarseNow()

	// Only the first call starts the refresher; the rest are no-ops
	// and must not reset the cache to zero.
	StartCoarseClock()
	StartCoarseClock()

	if CoarseNow().Before(first) {
		t.Error("cached time went backwards after repeated starts")
	}
	if CoarseNow().IsZero() {
		t.Error("cached time is zero after repeated starts")
	}
}
