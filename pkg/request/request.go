package request

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/javelin/internal/logging"
	"github.com/aretw0/javelin/pkg/domain"
	"github.com/aretw0/javelin/pkg/ports"
	"github.com/aretw0/javelin/pkg/timer"
	"github.com/google/uuid"
)

// Listener receives notifications published by a Request.
type Listener func(domain.Notification)

// Request is one asynchronous exchange with the server.
// Configuration is fixed at construction; subscribing and aborting are safe
// from any goroutine.
type Request struct {
	id      string
	uri     string
	method  domain.Method
	data    map[string]string
	raw     bool
	timeout time.Duration
	debug   bool

	registry   *Registry
	timer      ports.Timer
	dispatcher ports.Dispatcher
	onload     ports.OnloadRunner
	factory    ports.ClientFactory
	logger     *slog.Logger
	hooks      domain.RequestHooks

	mu        sync.Mutex
	listeners map[domain.Channel][]Listener
	sent      bool
	finished  bool
	done      chan struct{}
	outcome   domain.Outcome
	status    int
	started   time.Time
	parent    context.Context
	cancel    context.CancelFunc

	slot       SlotKey
	registered bool
	timerID    ports.TimerHandle
	hasTimer   bool
}

// New creates an unsent request for uri.
func New(uri string, opts ...Option) *Request {
	r := &Request{
		id:        uuid.NewString(),
		uri:       uri,
		method:    domain.MethodPOST,
		data:      map[string]string{},
		listeners: make(map[domain.Channel][]Listener),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.factory == nil {
		r.factory = defaultClientFactory
	}
	if r.timer == nil {
		r.timer = timer.NewReal()
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	r.logger = r.logger.With("request_id", r.id)
	return r
}

// ID returns the identifier used to correlate log lines.
func (r *Request) ID() string { return r.id }

// URI returns the target URI as configured (without the encoded query).
func (r *Request) URI() string { return r.uri }

// Method returns the HTTP method.
func (r *Request) Method() domain.Method { return r.method }

// Raw reports whether done subscribers receive the whole envelope.
func (r *Request) Raw() bool { return r.raw }

// Timeout returns the configured timeout, zero if none.
func (r *Request) Timeout() time.Duration { return r.timeout }

// Slot returns the registry key assigned at send time.
func (r *Request) Slot() (SlotKey, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slot, r.registered
}

// Finished reports whether the request reached a terminal state.
func (r *Request) Finished() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finished
}

// Done returns a channel closed once the request reaches a terminal state,
// including an abort. It closes before any done or error notification runs.
func (r *Request) Done() <-chan struct{} { return r.done }

// Outcome returns the terminal state, or domain.OutcomePending.
func (r *Request) Outcome() domain.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcome
}

// Listen subscribes fn to a channel.
func (r *Request) Listen(ch domain.Channel, fn Listener) *Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners[ch] = append(r.listeners[ch], fn)
	return r
}

// OnDone subscribes fn to success notifications.
func (r *Request) OnDone(fn func(payload any)) *Request {
	return r.Listen(domain.ChannelDone, func(n domain.Notification) {
		fn(n.Payload)
	})
}

// OnError subscribes fn to failure notifications. The value is nil for
// transport and protocol failures, domain.ErrorTimeout for timeouts, and the
// envelope's error otherwise.
func (r *Request) OnError(fn func(errValue any)) *Request {
	return r.Listen(domain.ChannelError, func(n domain.Notification) {
		fn(n.Error)
	})
}

// OnFinally subscribes fn to the notification that follows done or error.
func (r *Request) OnFinally(fn func()) *Request {
	return r.Listen(domain.ChannelFinally, func(domain.Notification) {
		fn()
	})
}

// Send starts the exchange and returns immediately.
// Errors returned here are environment or configuration errors; everything
// that happens on the wire is reported through notifications.
func (r *Request) Send(ctx context.Context) error {
	if !r.method.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedMethod, r.method)
	}
	if r.timeout < 0 {
		return domain.ErrNegativeTimeout
	}

	r.mu.Lock()
	if r.sent || r.finished {
		r.mu.Unlock()
		return domain.ErrAlreadySent
	}
	r.sent = true
	r.mu.Unlock()

	client, err := r.factory()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNoTransport, err)
	}
	if client == nil {
		return domain.ErrNoTransport
	}

	exchangeCtx, cancel := context.WithCancel(ctx)
	req, err := r.build(exchangeCtx)
	if err != nil {
		cancel()
		return err
	}

	r.mu.Lock()
	if r.finished {
		// Aborted while the client was being built.
		r.mu.Unlock()
		cancel()
		return nil
	}
	r.parent = context.WithoutCancel(ctx)
	r.cancel = cancel
	r.started = time.Now()
	if r.registry != nil {
		r.slot = r.registry.Register(r)
		r.registered = true
	}
	if r.timeout > 0 {
		r.timerID = r.timer.Schedule(r.expire, r.timeout)
		r.hasTimer = true
	}
	r.mu.Unlock()

	r.logger.Debug("request sent", "method", r.method, "uri", req.URL.String(), "slot", r.slot)
	if r.hooks.OnSend != nil {
		r.hooks.OnSend(ctx, r.event())
	}

	go r.exchange(client, req)
	return nil
}

// Abort tears the request down without notifying anyone. Safe to call at any
// time and any number of times.
func (r *Request) Abort() {
	if r.teardown(domain.OutcomeAborted) {
		r.logger.Debug("request aborted")
	}
}

func (r *Request) build(ctx context.Context) (*http.Request, error) {
	query := EncodeData(r.data)

	target := r.uri
	var body io.Reader
	if r.method == domain.MethodGET {
		target = AppendQuery(r.uri, query)
	} else {
		body = strings.NewReader(query)
	}

	req, err := http.NewRequestWithContext(ctx, string(r.method), target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if r.method == domain.MethodPOST {
		req.Header.Set("Content-Type", domain.FormContentType)
	}
	return req, nil
}

func (r *Request) exchange(client ports.HTTPDoer, req *http.Request) {
	resp, err := client.Do(req)
	if err != nil {
		if r.Finished() {
			return
		}
		r.logger.Debug("request transport failed", "err", err)
		r.guard(func() { r.fail(nil, domain.OutcomeError) })
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if r.Finished() {
			return
		}
		r.logger.Debug("failed to read response body", "err", err)
		r.guard(func() { r.fail(nil, domain.OutcomeError) })
		return
	}

	r.complete(resp.StatusCode, body)
}

// complete interprets a finished exchange.
func (r *Request) complete(status int, body []byte) {
	r.mu.Lock()
	if r.finished {
		r.mu.Unlock()
		return
	}
	r.status = status
	r.mu.Unlock()

	if status < 200 || status >= 300 {
		r.logger.Debug("request failed with status", "status", status)
		r.guard(func() { r.fail(nil, domain.OutcomeError) })
		return
	}

	env, err := domain.ParseResponse(body)
	if err != nil {
		if r.debug {
			r.logger.Warn("response violates the envelope protocol", "uri", r.uri, "status", status, "err", err)
		}
		r.guard(func() { r.fail(nil, domain.OutcomeError) })
		return
	}

	r.guard(func() {
		if env.Failed() {
			r.fail(env.Error, domain.OutcomeError)
			return
		}
		r.succeed(env)
	})
}

func (r *Request) succeed(env *domain.Envelope) {
	if !r.teardown(domain.OutcomeSuccess) {
		return
	}
	r.mu.Lock()
	ctx := r.parent
	r.mu.Unlock()

	if env.Metadata != nil && r.dispatcher != nil {
		if err := r.dispatcher.MergeMetadata(ctx, env.Metadata); err != nil {
			r.logger.Warn("failed to merge metadata", "err", err)
		}
	}

	if len(env.Onload) > 0 {
		if r.onload == nil {
			r.logger.Debug("onload instructions ignored, no runner configured", "count", len(env.Onload))
		} else if err := r.onload.RunOnload(ctx, env.Onload); err != nil {
			r.logger.Warn("onload failed", "err", err)
		}
	}

	var payload any = env.Payload
	if r.raw {
		payload = env
	}
	r.notify(domain.Notification{Channel: domain.ChannelDone, Payload: payload})
	r.notify(domain.Notification{Channel: domain.ChannelFinally})

	if env.Behaviors != nil && r.dispatcher != nil {
		if err := r.dispatcher.InitBehaviors(ctx, env.Behaviors); err != nil {
			r.logger.Warn("failed to initialize behaviors", "err", err)
		}
	}
}

func (r *Request) fail(errValue any, outcome domain.Outcome) {
	if !r.teardown(outcome) {
		return
	}
	r.notify(domain.Notification{Channel: domain.ChannelError, Error: errValue})
	r.notify(domain.Notification{Channel: domain.ChannelFinally})
}

func (r *Request) expire() {
	r.logger.Debug("request timed out", "timeout", r.timeout)
	r.fail(domain.ErrorTimeout, domain.OutcomeTimeout)
}

// teardown performs the terminal transition. Only the first call returns true.
func (r *Request) teardown(outcome domain.Outcome) bool {
	r.mu.Lock()
	if r.finished {
		r.mu.Unlock()
		return false
	}
	r.finished = true
	r.outcome = outcome
	close(r.done)
	registered, slot := r.registered, r.slot
	hasTimer, timerID := r.hasTimer, r.timerID
	cancel := r.cancel
	parent := r.parent
	r.mu.Unlock()

	if registered {
		r.registry.Unregister(slot)
	}
	if hasTimer {
		r.timer.Cancel(timerID)
	}
	if cancel != nil {
		cancel()
		ev := r.event()
		r.logger.Debug("request finished", "outcome", outcome, "status", ev.Status, "duration", ev.Duration)
		if r.hooks.OnFinish != nil {
			r.hooks.OnFinish(parent, ev)
		}
	}
	return true
}

func (r *Request) notify(n domain.Notification) {
	r.mu.Lock()
	listeners := append([]Listener(nil), r.listeners[n.Channel]...)
	r.mu.Unlock()

	for _, l := range listeners {
		l(n)
	}
}

// guard runs fn and, if a subscriber panics, re-raises the panic on the next
// timer tick so that it surfaces instead of being absorbed here.
func (r *Request) guard(fn func()) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Debug("subscriber panicked, re-raising on next tick", "panic", p)
			r.timer.Schedule(func() { panic(p) }, 0)
		}
	}()
	fn()
}

func (r *Request) event() *domain.RequestEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	ev := &domain.RequestEvent{
		Timestamp: time.Now(),
		RequestID: r.id,
		Method:    r.method,
		URI:       r.uri,
		Status:    r.status,
		Outcome:   r.outcome,
	}
	if !r.started.IsZero() {
		ev.Duration = time.Since(r.started)
	}
	return ev
}
