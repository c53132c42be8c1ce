// Package teardown provides sources that announce the end of the host's
// lifetime, such as a page unload or a process signal.
package teardown

import "sync"

// hooks runs registered callbacks exactly once.
type hooks struct {
	mu    sync.Mutex
	fns   []func()
	fired bool
}

func (h *hooks) add(fn func()) {
	h.mu.Lock()
	if h.fired {
		h.mu.Unlock()
		fn()
		return
	}
	h.fns = append(h.fns, fn)
	h.mu.Unlock()
}

func (h *hooks) fire() bool {
	h.mu.Lock()
	if h.fired {
		h.mu.Unlock()
		return false
	}
	h.fired = true
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return true
}

// Manual is a teardown source triggered by code.
type Manual struct {
	hooks hooks
}

// NewManual creates an untriggered source.
func NewManual() *Manual {
	return &Manual{}
}

// OnTeardown registers fn. If the source already fired, fn runs immediately.
func (m *Manual) OnTeardown(fn func()) {
	m.hooks.add(fn)
}

// Trigger runs the registered callbacks in registration order.
// Only the first call has an effect; it reports whether it did.
func (m *Manual) Trigger() bool {
	return m.hooks.fire()
}
