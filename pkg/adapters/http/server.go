package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/javelin/internal/logging"
	"github.com/aretw0/javelin/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// WriteEnvelope writes env as an async response body.
func WriteEnvelope(w http.ResponseWriter, status int, env *domain.Envelope) error {
	body, err := domain.EncodeResponse(env)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}

// WriteError writes an envelope whose error field is errValue.
func WriteError(w http.ResponseWriter, status int, errValue any) error {
	return WriteEnvelope(w, status, &domain.Envelope{Error: errValue})
}

// IsAsync reports whether r carries the async marker in its query or form body.
func IsAsync(r *http.Request) bool {
	return r.FormValue(domain.AsyncMarker) == domain.AsyncMarkerValue
}

// FormData returns the submitted fields without the async marker.
func FormData(r *http.Request) map[string]string {
	if err := r.ParseForm(); err != nil {
		return map[string]string{}
	}
	data := make(map[string]string, len(r.Form))
	for k, v := range r.Form {
		if k == domain.AsyncMarker || len(v) == 0 {
			continue
		}
		data[k] = v[0]
	}
	return data
}

type config struct {
	logger  *slog.Logger
	metrics http.Handler
}

// Option configures the envelope server handler.
type Option func(*config)

// WithLogger configures the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(c *config) {
		c.metrics = h
	}
}

// NewHandler creates a chi router serving fixtures as async endpoints.
// Invalid fixtures are logged and skipped.
func NewHandler(fixtures []Fixture, opts ...Option) http.Handler {
	cfg := &config{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(cfg.logger))
	r.Use(enableCORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_ = WriteEnvelope(w, http.StatusOK, &domain.Envelope{Payload: map[string]any{"status": "ok"}})
	})
	if cfg.metrics != nil {
		r.Handle("/metrics", cfg.metrics)
	}

	for i := range fixtures {
		f := fixtures[i]
		if err := f.normalize(); err != nil {
			cfg.logger.Warn("skipping invalid fixture", "index", i, "err", err)
			continue
		}
		h := fixtureHandler(f, cfg.logger)
		if f.Method == "" {
			r.HandleFunc(f.Path, h)
			continue
		}
		r.MethodFunc(f.Method, f.Path, h)
	}
	return r
}

func fixtureHandler(f Fixture, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !IsAsync(r) {
			http.Error(w, "missing "+domain.AsyncMarker+" marker", http.StatusBadRequest)
			return
		}

		if f.delay > 0 {
			select {
			case <-time.After(f.delay):
			case <-r.Context().Done():
				return
			}
		}

		if f.Raw != nil {
			w.WriteHeader(f.Status)
			_, _ = w.Write([]byte(*f.Raw))
			return
		}

		env, err := f.Envelope(FormData(r))
		if err != nil {
			logger.Error("fixture envelope failed", "path", f.Path, "err", err)
			_ = WriteError(w, http.StatusInternalServerError, fmt.Sprintf("fixture %s: %v", f.Path, err))
			return
		}
		if err := WriteEnvelope(w, f.Status, env); err != nil {
			logger.Warn("failed to write envelope", "path", f.Path, "err", err)
		}
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("served",
				"method", r.Method,
				"uri", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
