// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package client

import (
	"fmt"
	"time"
)

// Typed accessors over the map[string]any configuration trees the
// registry serves. JSON decoding yields float64 for every number and
// []any for every list; these helpers normalize that.

// StringField returns cfg[key] as a string when present and non-empty.
func StringField(cfg map[string]any, key string) (string, bool) {
	s, ok := cfg[key].(string)
	return s, ok && s != ""
}

// RequiredString returns cfg[key] as a non-empty string or an
// ErrValidation-wrapped error naming the missing field.
func RequiredString(cfg map[string]any, key string) (string, error) {
	s, ok := StringField(cfg, key)
	if !ok {
		return "", fmt.Errorf("%w: missing required field %q", ErrValidation, key)
	}
	return s, nil
}

// DurationField reads a duration given either as a Go duration string
// ("30s") or as a number of milliseconds. Returns def when absent or
// unparsable.
func DurationField(cfg map[string]any, key string, def time.Duration) time.Duration {
	switch v := cfg[key].(type) {
	case string:
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	case float64:
		return time.Duration(v) * time.Millisecond
	}
	return def
}

// IntField returns cfg[key] as an int, tolerating the float64 JSON
// numbers decode to.
func IntField(cfg map[string]any, key string, def int) int {
	if v, ok := cfg[key].(float64); ok {
		return int(v)
	}
	return def
}

// BoolField returns cfg[key] as a bool, or def when absent.
func BoolField(cfg map[string]any, key string, def bool) bool {
	if v, ok := cfg[key].(bool); ok {
		return v
	}
	return def
}

// StringSliceField returns cfg[key] as []string. Accepts a []any of
// strings (the JSON form) or a native []string.
func StringSliceField(cfg map[string]any, key string) []string {
	switch v := cfg[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			if s, ok := elem.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// StringMapField returns cfg[key] as map[string]string, dropping
// non-string values.
func StringMapField(cfg map[string]any, key string) map[string]string {
	m, ok := cfg[key].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
