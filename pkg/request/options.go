package request

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/javelin/pkg/domain"
	"github.com/aretw0/javelin/pkg/ports"
)

// Option defines a functional option for configuring a Request.
type Option func(*Request)

// WithMethod sets the HTTP method (default POST).
func WithMethod(m domain.Method) Option {
	return func(r *Request) {
		r.method = m
	}
}

// WithData sets the payload. The map is copied.
func WithData(data map[string]string) Option {
	return func(r *Request) {
		r.data = make(map[string]string, len(data))
		for k, v := range data {
			r.data[k] = v
		}
	}
}

// WithRaw makes done subscribers receive the whole *domain.Envelope instead of its payload.
func WithRaw(raw bool) Option {
	return func(r *Request) {
		r.raw = raw
	}
}

// WithTimeout fails the request with domain.ErrorTimeout if it has not
// finished after d. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Request) {
		r.timeout = d
	}
}

// WithHandler subscribes fn to the done channel.
func WithHandler(fn func(payload any)) Option {
	return func(r *Request) {
		r.OnDone(fn)
	}
}

// WithRegistry tracks the request in reg while it is in flight.
func WithRegistry(reg *Registry) Option {
	return func(r *Request) {
		r.registry = reg
	}
}

// WithTimer sets the timer used for timeouts and deferred panics.
func WithTimer(t ports.Timer) Option {
	return func(r *Request) {
		r.timer = t
	}
}

// WithDispatcher sets the collaborator receiving metadata and behaviors.
func WithDispatcher(d ports.Dispatcher) Option {
	return func(r *Request) {
		r.dispatcher = d
	}
}

// WithOnload sets the runner for onload instructions.
func WithOnload(o ports.OnloadRunner) Option {
	return func(r *Request) {
		r.onload = o
	}
}

// WithHTTPClient uses doer for the exchange.
func WithHTTPClient(doer ports.HTTPDoer) Option {
	return func(r *Request) {
		r.factory = func() (ports.HTTPDoer, error) {
			return doer, nil
		}
	}
}

// WithClientFactory builds the HTTP client at send time.
func WithClientFactory(f ports.ClientFactory) Option {
	return func(r *Request) {
		r.factory = f
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Request) {
		r.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.RequestHooks) Option {
	return func(r *Request) {
		r.hooks = hooks
	}
}

// WithDebug enables diagnostics for protocol violations.
func WithDebug(debug bool) Option {
	return func(r *Request) {
		r.debug = debug
	}
}

func defaultClientFactory() (ports.HTTPDoer, error) {
	return http.DefaultClient, nil
}
