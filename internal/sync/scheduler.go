package sync

import "time"

// Scheduler runs a function once after a delay. The debounce logic cancels
// any previously scheduled task before scheduling the next one, so injecting
// a manual implementation makes the reconciler fully deterministic in tests.
type Scheduler interface {
	// Schedule arranges for fn to run once after d. The returned function
	// cancels the pending run; cancelling after the run is a no-op.
	Schedule(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler implements Scheduler with real timers
type TimerScheduler struct{}

// NewTimerScheduler creates a scheduler backed by time.AfterFunc
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

// Schedule runs fn after d on a timer goroutine
func (ts *TimerScheduler) Schedule(d time.Duration, fn func()) func() {
	timer := time.AfterFunc(d, fn)
	return func() { timer.Stop() }
}

var _ Scheduler = (*TimerScheduler)(nil)
