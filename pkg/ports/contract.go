package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/javelin/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunMetadataStoreContract runs a suite of tests to verify that a MetadataStore implementation
// adheres to the defined interface contract.
func RunMetadataStoreContract(t *testing.T, store MetadataStore) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405") + "-"

	t.Run("Merge and Get", func(t *testing.T) {
		err := store.Merge(ctx, map[string]any{
			prefix + "user":  map[string]any{"name": "ana"},
			prefix + "count": float64(3),
		})
		require.NoError(t, err, "Merge should not return error")

		user, err := store.Get(ctx, prefix+"user")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "ana"}, user)

		count, err := store.Get(ctx, prefix+"count")
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)
	})

	t.Run("Merge Overwrites", func(t *testing.T) {
		require.NoError(t, store.Merge(ctx, map[string]any{prefix + "k": "old"}))
		require.NoError(t, store.Merge(ctx, map[string]any{prefix + "k": "new", prefix + "other": true}))

		v, err := store.Get(ctx, prefix+"k")
		require.NoError(t, err)
		assert.Equal(t, "new", v)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, prefix+"missing")
		assert.ErrorIs(t, err, domain.ErrMetadataNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Merge(ctx, map[string]any{prefix + "gone": 1}))
		require.NoError(t, store.Delete(ctx, prefix+"gone"))

		_, err := store.Get(ctx, prefix+"gone")
		assert.ErrorIs(t, err, domain.ErrMetadataNotFound, "Get after Delete should return ErrMetadataNotFound")

		assert.NoError(t, store.Delete(ctx, prefix+"never-existed"))
	})

	t.Run("Keys", func(t *testing.T) {
		require.NoError(t, store.Merge(ctx, map[string]any{prefix + "a": 1, prefix + "b": 2}))

		keys, err := store.Keys(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, prefix+"a")
		assert.Contains(t, keys, prefix+"b")
	})
}
