package timer

import (
	"sync"
	"time"

	"github.com/aretw0/javelin/pkg/ports"
)

// Real schedules callbacks on goroutines via time.AfterFunc.
// Safe for concurrent use.
type Real struct {
	mu      sync.Mutex
	next    ports.TimerHandle
	pending map[ports.TimerHandle]*time.Timer
}

// NewReal creates a Real timer.
func NewReal() *Real {
	return &Real{
		pending: make(map[ports.TimerHandle]*time.Timer),
	}
}

// Schedule runs fn once after delay on its own goroutine.
func (r *Real) Schedule(fn func(), delay time.Duration) ports.TimerHandle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	h := r.next
	r.pending[h] = time.AfterFunc(delay, func() {
		r.mu.Lock()
		_, live := r.pending[h]
		delete(r.pending, h)
		r.mu.Unlock()

		if live {
			fn()
		}
	})
	return h
}

// Cancel stops a pending callback.
func (r *Real) Cancel(h ports.TimerHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.pending[h]; ok {
		t.Stop()
		delete(r.pending, h)
	}
}

// Pending returns the number of callbacks that have not fired or been cancelled.
func (r *Real) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
