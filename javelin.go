package javelin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/javelin/internal/logging"
	"github.com/aretw0/javelin/pkg/adapters/memory"
	"github.com/aretw0/javelin/pkg/behavior"
	"github.com/aretw0/javelin/pkg/dispatcher"
	"github.com/aretw0/javelin/pkg/domain"
	"github.com/aretw0/javelin/pkg/ports"
	"github.com/aretw0/javelin/pkg/registry"
	"github.com/aretw0/javelin/pkg/request"
	"github.com/aretw0/javelin/pkg/timer"
)

// Client is the high-level entry point of the library.
// It owns the process-wide Registry and hands the same collaborators to
// every request it creates.
type Client struct {
	registry  *request.Registry
	timer     ports.Timer
	factory   ports.ClientFactory
	hooks     domain.RequestHooks
	logger    *slog.Logger
	debug     bool
	timeout   time.Duration
	store     ports.MetadataStore
	behaviors *behavior.Registry
	callbacks *registry.Registry

	dispatcher ports.Dispatcher
	onload     ports.OnloadRunner
}

// Option defines a functional option for configuring the Client.
type Option func(*Client)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHooks registers observability hooks on every request.
func WithHooks(hooks domain.RequestHooks) Option {
	return func(c *Client) {
		c.hooks = hooks
	}
}

// WithTimer replaces the wall-clock timer.
func WithTimer(t ports.Timer) Option {
	return func(c *Client) {
		c.timer = t
	}
}

// WithHTTPClient uses doer for every exchange.
func WithHTTPClient(doer ports.HTTPDoer) Option {
	return func(c *Client) {
		c.factory = func() (ports.HTTPDoer, error) { return doer, nil }
	}
}

// WithClientFactory builds the HTTP client for each request at send time.
func WithClientFactory(f ports.ClientFactory) Option {
	return func(c *Client) {
		c.factory = f
	}
}

// WithStore sets where envelope metadata is merged (default: in memory).
func WithStore(store ports.MetadataStore) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithBehaviors sets the behavior registry.
func WithBehaviors(b *behavior.Registry) Option {
	return func(c *Client) {
		c.behaviors = b
	}
}

// WithCallbacks sets the callbacks reachable from onload instructions.
func WithCallbacks(cb *registry.Registry) Option {
	return func(c *Client) {
		c.callbacks = cb
	}
}

// WithDispatcher replaces the default dispatcher for metadata and behaviors.
func WithDispatcher(d ports.Dispatcher) Option {
	return func(c *Client) {
		c.dispatcher = d
	}
}

// WithOnload replaces the default onload runner.
func WithOnload(o ports.OnloadRunner) Option {
	return func(c *Client) {
		c.onload = o
	}
}

// WithDefaultTimeout applies d to requests that do not set their own timeout.
func WithDefaultTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithDebug reports protocol violations through the logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// New creates a Client with its own Registry.
func New(opts ...Option) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	if c.timer == nil {
		c.timer = timer.NewReal()
	}
	if c.store == nil {
		c.store = memory.NewStore()
	}
	if c.behaviors == nil {
		c.behaviors = behavior.NewRegistry(behavior.WithLogger(c.logger))
	}
	if c.callbacks == nil {
		c.callbacks = registry.NewRegistry()
	}
	if c.dispatcher == nil || c.onload == nil {
		d := dispatcher.New(
			dispatcher.WithStore(c.store),
			dispatcher.WithBehaviors(c.behaviors),
			dispatcher.WithCallbacks(c.callbacks),
			dispatcher.WithLogger(c.logger),
		)
		if c.dispatcher == nil {
			c.dispatcher = d
		}
		if c.onload == nil {
			c.onload = d
		}
	}
	c.registry = request.NewRegistry(request.WithRegistryLogger(c.logger))
	return c
}

// NewRequest creates an unsent request wired to the client's collaborators.
// opts are applied last and override the client defaults.
func (c *Client) NewRequest(uri string, opts ...request.Option) *request.Request {
	base := []request.Option{
		request.WithRegistry(c.registry),
		request.WithTimer(c.timer),
		request.WithDispatcher(c.dispatcher),
		request.WithOnload(c.onload),
		request.WithLogger(c.logger),
		request.WithHooks(c.hooks),
		request.WithDebug(c.debug),
		request.WithTimeout(c.timeout),
	}
	if c.factory != nil {
		base = append(base, request.WithClientFactory(c.factory))
	}
	return request.New(uri, append(base, opts...)...)
}

// Do sends a request and waits for it to finish. A failed exchange is
// returned as a *RequestError. If ctx is done first the request is aborted.
// A request aborted by Shutdown or a teardown returns a *RequestError whose
// Outcome is domain.OutcomeAborted; it matches context.Canceled.
func (c *Client) Do(ctx context.Context, uri string, opts ...request.Option) (any, error) {
	type result struct {
		payload any
		err     error
	}

	r := c.NewRequest(uri, opts...)
	ch := make(chan result, 1)
	r.OnDone(func(payload any) {
		ch <- result{payload: payload}
	})
	r.OnError(func(errValue any) {
		ch <- result{err: &RequestError{Outcome: r.Outcome(), Value: errValue}}
	})

	if err := r.Send(ctx); err != nil {
		return nil, err
	}

	finished := r.Done()
	for {
		select {
		case res := <-ch:
			return res.payload, res.err
		case <-ctx.Done():
			r.Abort()
			return nil, ctx.Err()
		case <-finished:
			if r.Outcome() == domain.OutcomeAborted {
				return nil, &RequestError{Outcome: domain.OutcomeAborted}
			}
			// Success and failure notifications follow the terminal transition.
			finished = nil
		}
	}
}

// Registry returns the set of in-flight requests.
func (c *Client) Registry() *request.Registry { return c.registry }

// Store returns the metadata store.
func (c *Client) Store() ports.MetadataStore { return c.store }

// Behaviors returns the behavior registry.
func (c *Client) Behaviors() *behavior.Registry { return c.behaviors }

// Callbacks returns the onload callback registry.
func (c *Client) Callbacks() *registry.Registry { return c.callbacks }

// InFlight returns the number of requests sent and not yet finished.
func (c *Client) InFlight() int { return c.registry.Len() }

// BindTeardown aborts every in-flight request when src fires.
func (c *Client) BindTeardown(src ports.TeardownSource) {
	c.registry.BindTeardown(src)
}

// Shutdown aborts every in-flight request without notifying subscribers.
func (c *Client) Shutdown() {
	c.registry.ShutdownAll()
}

// RequestError is returned by Do when a request ends in error or timeout.
type RequestError struct {
	Outcome domain.Outcome
	// Value is the envelope's error, domain.ErrorTimeout, or nil for
	// transport and protocol failures.
	Value any
}

func (e *RequestError) Error() string {
	switch {
	case e.Outcome == domain.OutcomeTimeout:
		return "request timed out"
	case e.Outcome == domain.OutcomeAborted:
		return "request aborted"
	case e.Value == nil:
		return "request failed"
	default:
		return fmt.Sprintf("request failed: %v", e.Value)
	}
}

// Unwrap returns context.Canceled for aborted requests.
func (e *RequestError) Unwrap() error {
	if e.Outcome == domain.OutcomeAborted {
		return context.Canceled
	}
	return nil
}

// Timeout reports whether the request timed out.
func (e *RequestError) Timeout() bool {
	return e.Outcome == domain.OutcomeTimeout
}
