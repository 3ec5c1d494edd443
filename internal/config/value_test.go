// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeepCopy_Independence(t *testing.T) {
	original := map[string]any{
		"scalar": "value",
		"list":   []any{float64(1), map[string]any{"k": "v"}},
		"map":    map[string]any{"inner": []any{"x"}},
	}

	clone := DeepCopyMap(original)
	require.Equal(t, original, clone)

	clone["scalar"] = "changed"
	clone["list"].([]any)[1].(map[string]any)["k"] = "changed"
	clone["map"].(map[string]any)["inner"].([]any)[0] = "changed"

	assert.Equal(t, "value", original["scalar"])
	assert.Equal(t, "v", original["list"].([]any)[1].(map[string]any)["k"])
	assert.Equal(t, "x", original["map"].(map[string]any)["inner"].([]any)[0])
}

func TestDeepCopyMap_Nil(t *testing.T) {
	assert.Nil(t, DeepCopyMap(nil))
}

func TestSortedKeys(t *testing.T) {
	m := map[string]any{"b": 1, "a": 2, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, sortedKeys(m))
}
