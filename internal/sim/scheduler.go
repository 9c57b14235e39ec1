package sim

import "time"

// Scheduler defers a function by a fixed delay. The production scheduler uses
// real timers; tests substitute a manual one, and the MCP server an inline
// one so tool responses contain the completed result.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// TimerScheduler runs deferred functions on real timers.
type TimerScheduler struct{}

func (TimerScheduler) After(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// InlineScheduler runs deferred functions immediately on the calling
// goroutine, collapsing the simulated latency.
type InlineScheduler struct{}

func (InlineScheduler) After(_ time.Duration, fn func()) {
	fn()
}
