package request

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/javelin/internal/logging"
	"github.com/aretw0/javelin/pkg/ports"
)

// SlotKey identifies a request in a Registry. Keys are never reused.
type SlotKey uint64

// Registry is the live set of in-flight requests.
// Safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	next     SlotKey
	live     map[SlotKey]ports.Abortable
	draining bool
	// removals deferred while draining, applied when the sweep ends
	pending map[SlotKey]struct{}

	bindOnce sync.Once
	logger   *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger configures a logger for the Registry.
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		live:    make(map[SlotKey]ports.Abortable),
		pending: make(map[SlotKey]struct{}),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a to the live set and returns its key.
func (r *Registry) Register(a ports.Abortable) SlotKey {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	r.live[r.next] = a
	return r.next
}

// Unregister removes the entry for key. Absent keys are ignored. Removals
// requested while ShutdownAll is sweeping are applied when the sweep ends.
func (r *Registry) Unregister(key SlotKey) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.draining {
		if _, ok := r.live[key]; ok {
			r.pending[key] = struct{}{}
		}
		return
	}
	delete(r.live, key)
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// ShutdownAll aborts every live entry in registration order.
// A panicking Abort is logged and does not stop the sweep.
func (r *Registry) ShutdownAll() {
	r.mu.Lock()
	keys := make([]SlotKey, 0, len(r.live))
	for k := range r.live {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	members := make([]ports.Abortable, len(keys))
	for i, k := range keys {
		members[i] = r.live[k]
	}
	r.draining = true
	r.mu.Unlock()

	r.logger.Debug("shutting down in-flight requests", "count", len(members))
	for i, m := range members {
		r.abort(keys[i], m)
	}

	r.mu.Lock()
	for _, k := range keys {
		delete(r.live, k)
	}
	for k := range r.pending {
		delete(r.live, k)
		delete(r.pending, k)
	}
	r.draining = false
	r.mu.Unlock()
}

// BindTeardown arranges for ShutdownAll to run when src signals teardown.
// Only the first call has an effect.
func (r *Registry) BindTeardown(src ports.TeardownSource) {
	r.bindOnce.Do(func() {
		src.OnTeardown(r.ShutdownAll)
	})
}

func (r *Registry) abort(key SlotKey, m ports.Abortable) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Debug("abort panicked during shutdown", "slot", key, "panic", p)
		}
	}()
	m.Abort()
}
