package teardown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Signal fires its callbacks when the process receives SIGINT or SIGTERM.
type Signal struct {
	hooks  hooks
	ch     chan os.Signal
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSignal starts listening for signals until parent is done or Stop is called.
func NewSignal(parent context.Context) *Signal {
	s := &Signal{
		ch:   make(chan os.Signal, 1),
		done: make(chan struct{}),
	}
	s.ctx, s.cancel = context.WithCancel(parent)
	signal.Notify(s.ch, os.Interrupt, syscall.SIGTERM)
	go s.wait()
	return s
}

func (s *Signal) wait() {
	defer close(s.done)
	defer signal.Stop(s.ch)

	select {
	case <-s.ch:
		s.hooks.fire()
		s.cancel()
	case <-s.ctx.Done():
	}
}

// Context is cancelled after the callbacks ran, or when the source stops.
func (s *Signal) Context() context.Context {
	return s.ctx
}

// OnTeardown registers fn. If a signal was already received, fn runs immediately.
func (s *Signal) OnTeardown(fn func()) {
	s.hooks.add(fn)
}

// Stop releases the signal handler. Callbacks that have not run yet never will.
func (s *Signal) Stop() {
	s.cancel()
	<-s.done
}
