// Package dispatcher applies the side sections of a successful envelope:
// metadata, onload instructions and behaviors.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/javelin/internal/logging"
	"github.com/aretw0/javelin/pkg/behavior"
	"github.com/aretw0/javelin/pkg/domain"
	"github.com/aretw0/javelin/pkg/ports"
	"github.com/aretw0/javelin/pkg/registry"
)

// Dispatcher implements ports.Dispatcher and ports.OnloadRunner.
// Any collaborator left nil turns the matching section into a no-op.
type Dispatcher struct {
	store     ports.MetadataStore
	behaviors *behavior.Registry
	callbacks *registry.Registry
	logger    *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithStore sets where metadata is merged.
func WithStore(store ports.MetadataStore) Option {
	return func(d *Dispatcher) {
		d.store = store
	}
}

// WithBehaviors sets the behavior registry.
func WithBehaviors(b *behavior.Registry) Option {
	return func(d *Dispatcher) {
		d.behaviors = b
	}
}

// WithCallbacks sets the registry that resolves onload instructions.
func WithCallbacks(c *registry.Registry) Option {
	return func(d *Dispatcher) {
		d.callbacks = c
	}
}

// WithLogger configures the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// New creates a Dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// MergeMetadata writes the envelope's metadata into the store.
func (d *Dispatcher) MergeMetadata(ctx context.Context, data map[string]any) error {
	if d.store == nil || len(data) == 0 {
		return nil
	}
	if err := d.store.Merge(ctx, data); err != nil {
		return fmt.Errorf("failed to merge metadata: %w", err)
	}
	d.logger.Debug("metadata merged", "keys", len(data))
	return nil
}

// InitBehaviors initializes the named behaviors.
func (d *Dispatcher) InitBehaviors(ctx context.Context, configs map[string][]any) error {
	if d.behaviors == nil {
		if len(configs) > 0 {
			d.logger.Debug("behaviors ignored, no registry configured", "count", len(configs))
		}
		return nil
	}
	return d.behaviors.Init(ctx, configs)
}

// RunOnload runs each instruction in order. Unknown names are logged and
// skipped; callback failures are collected and do not stop later instructions.
func (d *Dispatcher) RunOnload(ctx context.Context, instructions []domain.OnloadInstruction) error {
	if d.callbacks == nil {
		if len(instructions) > 0 {
			d.logger.Debug("onload ignored, no callbacks configured", "count", len(instructions))
		}
		return nil
	}

	var errs []error
	for _, ins := range instructions {
		err := d.callbacks.Execute(ctx, ins.Call, ins.Args)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrOnloadNotFound):
			d.logger.Warn("unknown onload instruction skipped", "call", ins.Call)
		default:
			errs = append(errs, fmt.Errorf("onload %s: %w", ins.Call, err))
		}
	}
	return errors.Join(errs...)
}
