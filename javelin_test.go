package javelin_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/javelin"
	"github.com/aretw0/javelin/internal/testutils"
	adapter "github.com/aretw0/javelin/pkg/adapters/http"
	"github.com/aretw0/javelin/pkg/domain"
	"github.com/aretw0/javelin/pkg/ports"
	"github.com/aretw0/javelin/pkg/request"
	"github.com/aretw0/javelin/pkg/teardown"
	"github.com/aretw0/javelin/pkg/timer"
)

func TestClient_DoSuccessAppliesEnvelope(t *testing.T) {
	srv := testutils.NewEnvelopeServer(t, adapter.Fixture{
		Path:      "/items",
		Status:    200,
		Payload:   "ok",
		Metadata:  map[string]any{"user": "ana"},
		Behaviors: map[string][]any{"tabs": {map[string]any{"id": "main"}}},
		Onload:    []any{"refresh", map[string]any{"call": "highlight", "args": map[string]any{"row": 3}}},
	})

	client := javelin.New()
	var calls []string
	client.Callbacks().Register("refresh", func(context.Context, map[string]any) error {
		calls = append(calls, "refresh")
		return nil
	})
	client.Callbacks().Register("highlight", func(_ context.Context, args map[string]any) error {
		calls = append(calls, "highlight")
		assert.Equal(t, float64(3), args["row"])
		return nil
	})
	behaviorDone := make(chan any, 1)
	client.Behaviors().Register("tabs", func(_ context.Context, cfg any, _ map[string]any) error {
		behaviorDone <- cfg
		return nil
	})

	payload, err := client.Do(context.Background(), srv.URL+"/items")
	require.NoError(t, err)
	assert.Equal(t, "ok", payload)
	assert.Equal(t, []string{"refresh", "highlight"}, calls)

	user, err := client.Store().Get(context.Background(), "user")
	require.NoError(t, err)
	assert.Equal(t, "ana", user)

	select {
	case cfg := <-behaviorDone:
		assert.Equal(t, map[string]any{"id": "main"}, cfg)
	case <-time.After(2 * time.Second):
		t.Fatal("behavior was not initialized")
	}
	assert.Eventually(t, func() bool { return client.InFlight() == 0 }, time.Second, 5*time.Millisecond)
}

func TestClient_DoEnvelopeError(t *testing.T) {
	srv := testutils.NewEnvelopeServer(t, adapter.Fixture{Path: "/denied", Status: 200, Error: "denied"})
	client := javelin.New()

	_, err := client.Do(context.Background(), srv.URL+"/denied")
	var reqErr *javelin.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, "denied", reqErr.Value)
	assert.Equal(t, domain.OutcomeError, reqErr.Outcome)
	assert.False(t, reqErr.Timeout())
	assert.EqualError(t, err, "request failed: denied")
}

func TestClient_DefaultTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := javelin.New(javelin.WithDefaultTimeout(20 * time.Millisecond))
	_, err := client.Do(context.Background(), srv.URL)

	var reqErr *javelin.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.True(t, reqErr.Timeout())
	assert.True(t, domain.IsTimeout(reqErr.Value))
	assert.EqualError(t, err, "request timed out")
}

func TestClient_ShutdownAbortsSilently(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	clock := timer.NewManual()
	client := javelin.New(javelin.WithTimer(clock))
	src := teardown.NewManual()
	client.BindTeardown(src)

	var notified []string
	reqs := make([]*request.Request, 3)
	for i := range reqs {
		reqs[i] = client.NewRequest(srv.URL, request.WithTimeout(time.Second))
		reqs[i].OnDone(func(any) { notified = append(notified, "done") })
		reqs[i].OnError(func(any) { notified = append(notified, "error") })
		require.NoError(t, reqs[i].Send(context.Background()))
	}
	require.Equal(t, 3, client.InFlight())

	src.Trigger()
	assert.Zero(t, client.InFlight())
	for _, r := range reqs {
		assert.Equal(t, domain.OutcomeAborted, r.Outcome())
	}

	assert.Zero(t, clock.Advance(time.Second), "timeouts are cancelled")
	assert.Empty(t, notified)
}

func TestClient_DoContextCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := javelin.New()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Do(ctx, srv.URL)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, client.InFlight())
}

func TestClient_DoReturnsOnShutdown(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := javelin.New()
	errs := make(chan error, 1)
	go func() {
		_, err := client.Do(context.Background(), srv.URL)
		errs <- err
	}()

	require.Eventually(t, func() bool { return client.InFlight() == 1 }, time.Second, time.Millisecond)
	client.Shutdown()

	select {
	case err := <-errs:
		var reqErr *javelin.RequestError
		require.True(t, errors.As(err, &reqErr))
		assert.Equal(t, domain.OutcomeAborted, reqErr.Outcome)
		assert.ErrorIs(t, err, context.Canceled)
		assert.EqualError(t, err, "request aborted")
	case <-time.After(time.Second):
		t.Fatal("Do did not return after Shutdown")
	}
}

func TestClient_NoTransport(t *testing.T) {
	client := javelin.New(javelin.WithClientFactory(func() (ports.HTTPDoer, error) {
		return nil, errors.New("unavailable")
	}))

	_, err := client.Do(context.Background(), "http://example.invalid")
	assert.ErrorIs(t, err, domain.ErrNoTransport)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, javelin.Version)
}
