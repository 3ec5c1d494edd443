// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_Derivation(t *testing.T) {
	tests := []struct {
		name       string
		clientType string
		id         string
		want       string
	}{
		{"no id", "rest", "", "rest"},
		{"id equals type", "rest", "rest", "rest"},
		{"distinct id", "rest", "payments", "rest:payments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.clientType, tt.id))
		})
	}
}

func TestRegistry_GetReturnsIsolatedCopy(t *testing.T) {
	r := New()
	r.Register("rest", "", map[string]any{"a": float64(1), "nested": map[string]any{"k": "v"}})

	got, ok := r.Get("rest", "")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"a": float64(1), "nested": map[string]any{"k": "v"}}, got)

	// Mutating the returned copy must not affect the stored entry.
	got["a"] = float64(99)
	got["nested"].(map[string]any)["k"] = "mutated"

	again, ok := r.Get("rest", "")
	require.True(t, ok)
	assert.Equal(t, float64(1), again["a"])
	assert.Equal(t, "v", again["nested"].(map[string]any)["k"])
}

func TestRegistry_RegisterCopiesInput(t *testing.T) {
	r := New()
	cfg := map[string]any{"a": "x"}
	r.Register("rest", "", cfg)

	// Caller mutations after Register must not leak in.
	cfg["a"] = "mutated"

	got, ok := r.Get("rest", "")
	require.True(t, ok)
	assert.Equal(t, "x", got["a"])
}

func TestRegistry_TypeLevelFallback(t *testing.T) {
	r := New()
	cfg := map[string]any{"base_url": "https://example.test"}
	r.Register("rest", "", cfg)

	got, ok := r.Get("rest", "missing")
	require.True(t, ok)
	assert.Equal(t, cfg, got)

	_, ok = r.Get("kafka", "missing")
	assert.False(t, ok)
}

func TestRegistry_IdSpecificEntryWins(t *testing.T) {
	r := New()
	r.Register("rest", "", map[string]any{"base_url": "https://default"})
	r.Register("rest", "payments", map[string]any{"base_url": "https://payments"})

	got, ok := r.Get("rest", "payments")
	require.True(t, ok)
	assert.Equal(t, "https://payments", got["base_url"])

	got, ok = r.Get("rest", "")
	require.True(t, ok)
	assert.Equal(t, "https://default", got["base_url"])
}

func TestRegistry_RegisterOverwritesSameKey(t *testing.T) {
	r := New()
	r.Register("rest", "", map[string]any{"v": float64(1)})
	r.Register("rest", "", map[string]any{"v": float64(2)})

	got, _ := r.Get("rest", "")
	assert.Equal(t, float64(2), got["v"])
}

func TestRegistry_RegisterBulk(t *testing.T) {
	r := New()
	r.RegisterBulk(map[string]any{
		"rest":          map[string]any{"base_url": "https://a"},
		"rest:payments": map[string]any{"base_url": "https://b"},
		"comment":       "not a client config",
		"count":         float64(3),
	})

	assert.True(t, r.Has("rest", ""))
	assert.True(t, r.Has("rest", "payments"))
	assert.False(t, r.Has("comment", ""))
	assert.Len(t, r.Entries(), 2)
}

func TestRegistry_ClearAndEntries(t *testing.T) {
	r := New()
	r.Register("rest", "", map[string]any{"a": "x"})
	r.Register("kafka", "orders", map[string]any{"topic": "orders"})

	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Contains(t, entries, "rest")
	assert.Contains(t, entries, "kafka:orders")

	// The snapshot is isolated as well.
	entries["rest"]["a"] = "mutated"
	got, _ := r.Get("rest", "")
	assert.Equal(t, "x", got["a"])

	r.Clear()
	assert.Empty(t, r.Entries())
}

func TestDefault_ResetInstallsFreshInstance(t *testing.T) {
	original := Default()
	t.Cleanup(func() { ResetDefault(original) })

	fresh := ResetDefault(nil)
	assert.NotSame(t, original, fresh)
	assert.Same(t, fresh, Default())

	custom := New()
	assert.Same(t, custom, ResetDefault(custom))
	assert.Same(t, custom, Default())
}
