package ports

import "context"

// MetadataStore persists metadata pushed by the server in javelin_metadata.
type MetadataStore interface {
	// Merge writes every key of data, replacing existing values.
	Merge(ctx context.Context, data map[string]any) error

	// Get returns the value stored under key.
	// Returns domain.ErrMetadataNotFound if the key does not exist.
	Get(ctx context.Context, key string) (any, error)

	// Keys lists the stored keys.
	Keys(ctx context.Context) ([]string, error)

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
