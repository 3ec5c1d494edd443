// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package config

import "sort"

// DeepCopy returns a structurally independent copy of a configuration value
// tree. Containers ([]any, map[string]any) are cloned recursively; scalars
// are returned as-is. Mutating the copy never affects the original, which
// is the immutability guarantee the registry relies on.
func DeepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return DeepCopyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = DeepCopy(elem)
		}
		return out
	default:
		return v
	}
}

// DeepCopyMap is DeepCopy specialised for the mapping root every client
// configuration has. Returns nil for a nil input.
func DeepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = DeepCopy(v)
	}
	return out
}

// sortedKeys returns the keys of m in lexical order. The resolver walks
// mappings in this order so two resolutions of the same tree always visit
// references in the same sequence.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
