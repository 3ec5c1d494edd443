// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredString(t *testing.T) {
	s, err := RequiredString(map[string]any{"base_url": "https://x"}, "base_url")
	require.NoError(t, err)
	assert.Equal(t, "https://x", s)

	_, err = RequiredString(map[string]any{}, "base_url")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = RequiredString(map[string]any{"base_url": ""}, "base_url")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = RequiredString(map[string]any{"base_url": 42}, "base_url")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDurationField(t *testing.T) {
	cfg := map[string]any{
		"as_string": "30s",
		"as_millis": float64(1500),
		"garbage":   "not-a-duration",
	}

	assert.Equal(t, 30*time.Second, DurationField(cfg, "as_string", time.Second))
	assert.Equal(t, 1500*time.Millisecond, DurationField(cfg, "as_millis", time.Second))
	assert.Equal(t, time.Second, DurationField(cfg, "garbage", time.Second))
	assert.Equal(t, time.Second, DurationField(cfg, "absent", time.Second))
}

func TestIntAndBoolFields(t *testing.T) {
	cfg := map[string]any{"n": float64(7), "flag": true}

	assert.Equal(t, 7, IntField(cfg, "n", 1))
	assert.Equal(t, 1, IntField(cfg, "absent", 1))
	assert.True(t, BoolField(cfg, "flag", false))
	assert.False(t, BoolField(cfg, "absent", false))
}

func TestStringSliceField(t *testing.T) {
	cfg := map[string]any{
		"json_form":   []any{"a", "b", float64(3)},
		"native_form": []string{"x", "y"},
	}

	assert.Equal(t, []string{"a", "b"}, StringSliceField(cfg, "json_form"))
	assert.Equal(t, []string{"x", "y"}, StringSliceField(cfg, "native_form"))
	assert.Nil(t, StringSliceField(cfg, "absent"))
}

func TestStringMapField(t *testing.T) {
	cfg := map[string]any{
		"headers": map[string]any{"X-A": "1", "X-B": float64(2)},
	}

	assert.Equal(t, map[string]string{"X-A": "1"}, StringMapField(cfg, "headers"))
	assert.Nil(t, StringMapField(cfg, "absent"))
}

func TestBase_Lifecycle(t *testing.T) {
	b := NewBase(TypeRest, "payments", nil)
	assert.False(t, b.IsInitialized())
	assert.ErrorIs(t, b.RequireInitialized(), ErrNotInitialized)

	b.SetInitialized(true)
	assert.True(t, b.IsInitialized())
	assert.NoError(t, b.RequireInitialized())
}
