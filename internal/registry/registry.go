// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

// Package registry stores per-client configuration keyed by client type
// and optional instance id.
//
// The registry never hands out a live reference to its internal storage:
// every write stores a deep copy and every read returns a fresh deep copy,
// so callers can mutate what they receive without affecting the registry
// or other readers. Go has no runtime object freezing; copy isolation on
// both sides is the immutability guarantee.
package registry

import (
	"strings"
	"sync"

	"github.com/fabianopinto/smoker-sub003/internal/config"
)

// Registry is an in-memory keyed store of client configurations. Safe for
// concurrent use; concurrent registration on the same key is
// last-write-wins with no merge semantics.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]map[string]any
}

// New constructs an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[string]map[string]any)}
}

// Key derives the storage key for a client type and optional id: the type
// alone when id is empty or equal to the type, "type:id" otherwise.
func Key(clientType, id string) string {
	if id == "" || id == clientType {
		return clientType
	}
	return clientType + ":" + id
}

// Register stores a deep copy of cfg under the derived key, overwriting
// any existing entry for that exact key.
func (r *Registry) Register(clientType, id string, cfg map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[Key(clientType, id)] = config.DeepCopyMap(cfg)
}

// RegisterBulk registers every mapping-valued entry of tree. Keys may
// encode a bare type or "type:id". Non-mapping values are skipped.
func (r *Registry) RegisterBulk(tree map[string]any) {
	for key, value := range tree {
		cfg, ok := value.(map[string]any)
		if !ok {
			continue
		}
		clientType, id, _ := strings.Cut(key, ":")
		r.Register(clientType, id, cfg)
	}
}

// Get returns a deep copy of the configuration for the derived key. When
// an id is given and no id-specific entry exists, it falls back to the
// type-only entry before reporting absence.
func (r *Registry) Get(clientType, id string) (map[string]any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cfg, ok := r.entries[Key(clientType, id)]; ok {
		return config.DeepCopyMap(cfg), true
	}
	if id != "" {
		if cfg, ok := r.entries[clientType]; ok {
			return config.DeepCopyMap(cfg), true
		}
	}
	return nil, false
}

// Has reports whether a configuration exists for the type and optional id,
// honoring the same type-level fallback as Get.
func (r *Registry) Has(clientType, id string) bool {
	_, ok := r.Get(clientType, id)
	return ok
}

// Clear removes all entries. Called between test runs.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]map[string]any)
}

// Entries returns a deep-copied snapshot of all entries keyed by their
// derived key.
func (r *Registry) Entries() map[string]map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]map[string]any, len(r.entries))
	for k, cfg := range r.entries {
		out[k] = config.DeepCopyMap(cfg)
	}
	return out
}

var (
	defaultMu       sync.Mutex
	defaultRegistry = New()
)

// Default returns the process-wide registry instance. Prefer constructing
// and threading explicit instances; the shared one exists so simple runs
// do not have to.
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultRegistry
}

// ResetDefault swaps the process-wide instance, installing a fresh empty
// registry when r is nil, and returns the installed instance. Used for
// test-run isolation.
func ResetDefault(r *Registry) *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if r == nil {
		r = New()
	}
	defaultRegistry = r
	return r
}
