package behavior

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/javelin/internal/logging"
	"github.com/aretw0/javelin/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Func initializes one instance of a behavior.
// config is one entry of the server-provided list (nil when the list is empty).
// statics persists across every initialization of the same behavior.
type Func func(ctx context.Context, config any, statics map[string]any) error

type entry struct {
	fn Func

	// mu serializes initializations so statics is never written concurrently.
	mu      sync.Mutex
	statics map[string]any
}

// Registry maps behavior names to their implementations.
// Safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	behaviors map[string]*entry
	logger    *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger configures the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates a new empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		behaviors: make(map[string]*entry),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a behavior. Registering an existing name replaces its
// function and keeps its statics.
func (r *Registry) Register(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.behaviors[name]; ok {
		e.fn = fn
		return
	}
	r.behaviors[name] = &entry{fn: fn, statics: make(map[string]any)}
}

// Names returns the registered behavior names in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.behaviors))
	for name := range r.behaviors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Init initializes every behavior named in configs, in name order.
// A failing behavior does not stop the others; all failures are joined.
func (r *Registry) Init(ctx context.Context, configs map[string][]any) error {
	names := make([]string, 0, len(configs))
	for name := range configs {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		r.mu.Lock()
		e, ok := r.behaviors[name]
		var fn Func
		if ok {
			fn = e.fn
		}
		r.mu.Unlock()
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", domain.ErrBehaviorNotFound, name))
			continue
		}

		list := configs[name]
		if len(list) == 0 {
			list = []any{nil}
		}
		e.mu.Lock()
		for i, cfg := range list {
			if err := fn(ctx, cfg, e.statics); err != nil {
				errs = append(errs, fmt.Errorf("behavior %s[%d]: %w", name, i, err))
			}
		}
		e.mu.Unlock()
		r.logger.Debug("behavior initialized", "behavior", name, "instances", len(list))
	}
	return errors.Join(errs...)
}

// DecodeConfig decodes a server-provided config into out, which must be a
// pointer to a struct or map. Fields are matched by their `mapstructure` tag.
func DecodeConfig(config any, out any) error {
	if config == nil {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(config); err != nil {
		return fmt.Errorf("failed to decode behavior config: %w", err)
	}
	return nil
}
