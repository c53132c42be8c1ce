package ports

import (
	"context"

	"github.com/aretw0/javelin/pkg/domain"
)

// Dispatcher receives the server-pushed parts of a successful envelope.
type Dispatcher interface {
	// MergeMetadata merges the envelope's javelin_metadata into the process-wide store.
	MergeMetadata(ctx context.Context, metadata map[string]any) error

	// InitBehaviors initializes the behaviors named in javelin_behaviors.
	InitBehaviors(ctx context.Context, behaviors map[string][]any) error
}

// OnloadRunner executes onload instructions in order.
type OnloadRunner interface {
	RunOnload(ctx context.Context, instructions []domain.OnloadInstruction) error
}
