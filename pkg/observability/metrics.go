package observability

import (
	"context"
	"errors"

	"github.com/aretw0/javelin/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the request collectors.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// Collectors already registered with reg are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "javelin_requests_total",
				Help: "Total number of finished async requests",
			},
			[]string{"method", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "javelin_request_duration_seconds",
				Help:    "Duration of async requests from send to terminal state",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "javelin_requests_in_flight",
			Help: "Number of async requests sent and not yet finished",
		}),
	}

	var err error
	m.requests, err = register(reg, m.requests)
	if err != nil {
		return nil, err
	}
	m.duration, err = register(reg, m.duration)
	if err != nil {
		return nil, err
	}
	m.inFlight, err = register(reg, m.inFlight)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Hooks returns request hooks feeding the collectors.
func (m *Metrics) Hooks() domain.RequestHooks {
	return domain.RequestHooks{
		OnSend: func(ctx context.Context, e *domain.RequestEvent) {
			m.inFlight.Inc()
		},
		OnFinish: func(ctx context.Context, e *domain.RequestEvent) {
			m.inFlight.Dec()
			m.requests.WithLabelValues(string(e.Method), string(e.Outcome)).Inc()
			m.duration.WithLabelValues(string(e.Method)).Observe(e.Duration.Seconds())
		},
	}
}

// Combine returns hooks that call each of the given hooks in order.
func Combine(hooks ...domain.RequestHooks) domain.RequestHooks {
	return domain.RequestHooks{
		OnSend: func(ctx context.Context, e *domain.RequestEvent) {
			for _, h := range hooks {
				if h.OnSend != nil {
					h.OnSend(ctx, e)
				}
			}
		},
		OnFinish: func(ctx context.Context, e *domain.RequestEvent) {
			for _, h := range hooks {
				if h.OnFinish != nil {
					h.OnFinish(ctx, e)
				}
			}
		},
	}
}
