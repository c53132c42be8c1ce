package ports

import "time"

// TimerHandle identifies a scheduled callback.
type TimerHandle uint64

// Timer schedules one-shot callbacks.
type Timer interface {
	// Schedule arranges for fn to run once after delay.
	// A zero delay runs fn on the next tick, never synchronously.
	Schedule(fn func(), delay time.Duration) TimerHandle

	// Cancel prevents a pending callback from running.
	// Cancelling a fired or unknown handle is a no-op.
	Cancel(h TimerHandle)
}
