package behavior_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/javelin/pkg/behavior"
	"github.com/aretw0/javelin/pkg/domain"
)

func TestRegistry_Init(t *testing.T) {
	reg := behavior.NewRegistry()
	var got []any
	reg.Register("tabs", func(_ context.Context, cfg any, _ map[string]any) error {
		got = append(got, cfg)
		return nil
	})

	err := reg.Init(context.Background(), map[string][]any{
		"tabs": {map[string]any{"id": "a"}, map[string]any{"id": "b"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"id": "a"}, map[string]any{"id": "b"}}, got)
}

func TestRegistry_EmptyListInitsOnce(t *testing.T) {
	reg := behavior.NewRegistry()
	calls := 0
	reg.Register("focus", func(_ context.Context, cfg any, _ map[string]any) error {
		calls++
		assert.Nil(t, cfg)
		return nil
	})

	require.NoError(t, reg.Init(context.Background(), map[string][]any{"focus": nil}))
	assert.Equal(t, 1, calls)
}

func TestRegistry_StaticsPersist(t *testing.T) {
	reg := behavior.NewRegistry()
	reg.Register("counter", func(_ context.Context, _ any, statics map[string]any) error {
		n, _ := statics["n"].(int)
		statics["n"] = n + 1
		return nil
	})

	ctx := context.Background()
	require.NoError(t, reg.Init(ctx, map[string][]any{"counter": {1, 2}}))
	require.NoError(t, reg.Init(ctx, map[string][]any{"counter": {3}}))

	var seen int
	reg.Register("counter", func(_ context.Context, _ any, statics map[string]any) error {
		seen = statics["n"].(int)
		return nil
	})
	require.NoError(t, reg.Init(ctx, map[string][]any{"counter": nil}))
	assert.Equal(t, 3, seen, "re-registering keeps statics")
}

func TestRegistry_Errors(t *testing.T) {
	reg := behavior.NewRegistry()
	ran := false
	reg.Register("broken", func(context.Context, any, map[string]any) error {
		return errors.New("boom")
	})
	reg.Register("fine", func(context.Context, any, map[string]any) error {
		ran = true
		return nil
	})

	err := reg.Init(context.Background(), map[string][]any{
		"broken":  {1},
		"fine":    nil,
		"missing": nil,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBehaviorNotFound)
	assert.Contains(t, err.Error(), "boom")
	assert.True(t, ran, "one failure must not stop the others")
}

func TestRegistry_Names(t *testing.T) {
	reg := behavior.NewRegistry()
	reg.Register("b", func(context.Context, any, map[string]any) error { return nil })
	reg.Register("a", func(context.Context, any, map[string]any) error { return nil })
	assert.Equal(t, []string{"a", "b"}, reg.Names())
}

func TestDecodeConfig(t *testing.T) {
	type tabsConfig struct {
		ID     string `mapstructure:"id"`
		Active int    `mapstructure:"active"`
	}

	var cfg tabsConfig
	err := behavior.DecodeConfig(map[string]any{"id": "main", "active": float64(2)}, &cfg)
	require.NoError(t, err)
	assert.Equal(t, tabsConfig{ID: "main", Active: 2}, cfg)

	var empty tabsConfig
	require.NoError(t, behavior.DecodeConfig(nil, &empty))
	assert.Zero(t, empty)

	assert.Error(t, behavior.DecodeConfig("not a map", &cfg))
}

func TestRegistry_ConcurrentInit(t *testing.T) {
	reg := behavior.NewRegistry()
	var seen map[string]any
	reg.Register("counter", func(_ context.Context, _ any, statics map[string]any) error {
		n, _ := statics["n"].(int)
		statics["n"] = n + 1
		seen = statics
		return nil
	})

	const workers = 50
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, reg.Init(context.Background(), map[string][]any{"counter": nil}))
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, seen["n"])
}

func TestRegistry_RegisterDuringInit(t *testing.T) {
	reg := behavior.NewRegistry()
	reg.Register("x", func(context.Context, any, map[string]any) error { return nil })

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 100 {
			_ = reg.Init(context.Background(), map[string][]any{"x": nil})
		}
	}()
	go func() {
		defer wg.Done()
		for range 100 {
			reg.Register("x", func(context.Context, any, map[string]any) error { return nil })
		}
	}()
	wg.Wait()
	assert.Equal(t, []string{"x"}, reg.Names())
}
