package timer

import (
	"sort"
	"sync"
	"time"

	"github.com/aretw0/javelin/pkg/ports"
)

type entry struct {
	handle ports.TimerHandle
	due    time.Duration
	fn     func()
}

// Manual is a virtual clock. Callbacks only run when Advance or RunPending
// is called, in due order (ties broken by scheduling order).
// Safe for concurrent use; callbacks run on the caller's goroutine without
// the internal lock held.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	next    ports.TimerHandle
	pending []entry
}

// NewManual creates a Manual clock at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Schedule registers fn to run once the clock has advanced by delay.
func (m *Manual) Schedule(fn func(), delay time.Duration) ports.TimerHandle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.next++
	m.pending = append(m.pending, entry{handle: m.next, due: m.now + delay, fn: fn})
	return m.next
}

// Cancel removes a pending callback.
func (m *Manual) Cancel(h ports.TimerHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.pending {
		if e.handle == h {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

// Advance moves the clock forward by d and runs every callback that became due.
// Callbacks scheduled by a running callback run too if they fall within the window.
func (m *Manual) Advance(d time.Duration) int {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	fired := 0
	for {
		e, ok := m.popDue(target)
		if !ok {
			break
		}
		e.fn()
		fired++
	}

	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
	return fired
}

// RunPending runs the callbacks that are due now, such as zero-delay ticks.
func (m *Manual) RunPending() int {
	return m.Advance(0)
}

// Pending returns the number of callbacks waiting to run.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Now returns the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) popDue(target time.Duration) (entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.pending) == 0 {
		return entry{}, false
	}
	sort.SliceStable(m.pending, func(i, j int) bool {
		return m.pending[i].due < m.pending[j].due
	})
	first := m.pending[0]
	if first.due > target {
		return entry{}, false
	}
	m.pending = m.pending[1:]
	if first.due > m.now {
		m.now = first.due
	}
	return first, true
}
