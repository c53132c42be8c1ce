package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/javelin/pkg/domain"
)

// Callback is a named capability the server may invoke through an onload
// instruction. args is the instruction's argument object, possibly nil.
type Callback func(ctx context.Context, args map[string]any) error

// Registry manages the callbacks reachable from onload instructions.
// Only registered names can be invoked.
type Registry struct {
	mu        sync.RWMutex
	callbacks map[string]Callback
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		callbacks: make(map[string]Callback),
	}
}

// Register adds a callback to the registry.
// If a callback with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn Callback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks[name] = fn
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.callbacks[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.callbacks))
	for name := range r.callbacks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute looks up a callback by name and runs it.
// Returns domain.ErrOnloadNotFound if the name is not registered.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) error {
	r.mu.RLock()
	fn, ok := r.callbacks[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrOnloadNotFound, name)
	}

	return fn(ctx, args)
}
