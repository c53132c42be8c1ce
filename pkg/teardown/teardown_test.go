package teardown

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/javelin/pkg/ports"
)

var (
	_ ports.TeardownSource = (*Manual)(nil)
	_ ports.TeardownSource = (*Signal)(nil)
)

func TestManual_FiresOnce(t *testing.T) {
	m := NewManual()
	var order []string
	m.OnTeardown(func() { order = append(order, "a") })
	m.OnTeardown(func() { order = append(order, "b") })

	assert.True(t, m.Trigger())
	assert.False(t, m.Trigger())
	assert.Equal(t, []string{"a", "b"}, order)

	m.OnTeardown(func() { order = append(order, "late") })
	assert.Equal(t, []string{"a", "b", "late"}, order, "late registration runs immediately")
}

func TestSignal_Fires(t *testing.T) {
	s := NewSignal(context.Background())
	defer s.Stop()

	fired := make(chan struct{})
	s.OnTeardown(func() { close(fired) })

	s.ch <- syscall.SIGTERM

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("teardown callbacks did not run")
	}
	<-s.Context().Done()
}

func TestSignal_StopDoesNotFire(t *testing.T) {
	s := NewSignal(context.Background())
	called := false
	s.OnTeardown(func() { called = true })

	s.Stop()
	require.ErrorIs(t, s.Context().Err(), context.Canceled)
	assert.False(t, called)
}

func TestSignal_ParentCancelled(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	s := NewSignal(parent)
	called := false
	s.OnTeardown(func() { called = true })

	cancel()
	s.Stop()
	assert.False(t, called)
}
