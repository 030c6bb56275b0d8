// Package sched implements the wall-clock scheduler behind api.Scheduler.
package sched

import "time"

// DefaultTick is the wall-clock duration of one scheduling tick. Ticks are
// real elapsed time, not simulation steps: Delay(n, s, 10) fires roughly
// 500ms after the call with the default tick.
const DefaultTick = 50 * time.Millisecond

// Clock abstracts time for the scheduler so tests can substitute a fake.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// WallClock is the real-time Clock used outside tests.
type WallClock struct{}

func (WallClock) Now() time.Time {
	return time.Now()
}

func (WallClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
