// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/fabianopinto/smoker-sub003/internal/logger"
	"github.com/fabianopinto/smoker-sub003/internal/registry"
)

// Constructor builds an uninitialized client instance for one client
// type. id is the effective instance id and cfg the registry-served
// configuration (already a private copy).
type Constructor func(id string, cfg map[string]any, log *logger.Logger) (Client, error)

// Factory maps a (type, id) pair to a constructed client, pulling
// configuration from the registry.
type Factory struct {
	registry *registry.Registry
	log      *logger.Logger

	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewFactory constructs a Factory over the given registry. A nil log
// discards output.
func NewFactory(reg *registry.Registry, log *logger.Logger) *Factory {
	if log == nil {
		log = logger.Nop()
	}
	return &Factory{
		registry:     reg,
		log:          log,
		constructors: make(map[string]Constructor),
	}
}

// RegisterConstructor installs the constructor for a client type,
// replacing any previous one.
func (f *Factory) RegisterConstructor(clientType string, ctor Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.constructors[clientType] = ctor
}

// Types returns the client types with a registered constructor.
func (f *Factory) Types() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, 0, len(f.constructors))
	for t := range f.constructors {
		out = append(out, t)
	}
	return out
}

// Create constructs an uninitialized client for the type and optional id
// (empty id means the type-level instance). Configuration comes from the
// registry, falling back to an empty tree when none is registered. The
// effective id is the id argument when given, otherwise the "id" field of
// the configuration, otherwise the type itself.
func (f *Factory) Create(clientType, id string) (Client, error) {
	c, _, err := f.create(clientType, id)
	return c, err
}

// CreateAndInit is Create followed by the Init lifecycle hook. Init
// failures propagate unchanged apart from context decoration.
func (f *Factory) CreateAndInit(ctx context.Context, clientType, id string) (Client, error) {
	c, cfg, err := f.create(clientType, id)
	if err != nil {
		return nil, err
	}
	if err := c.Init(ctx, cfg); err != nil {
		return nil, fmt.Errorf("init %s client: %w", clientType, err)
	}
	return c, nil
}

func (f *Factory) create(clientType, id string) (Client, map[string]any, error) {
	f.mu.RLock()
	ctor, ok := f.constructors[clientType]
	f.mu.RUnlock()
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownClientType, clientType)
	}

	cfg, found := f.registry.Get(clientType, id)
	if !found {
		cfg = map[string]any{}
	}

	effectiveID := id
	if effectiveID == "" {
		if s, ok := StringField(cfg, "id"); ok {
			effectiveID = s
		}
	}
	if effectiveID == "" {
		effectiveID = clientType
	}

	c, err := ctor(effectiveID, cfg, f.log.WithClient(clientType, effectiveID))
	if err != nil {
		return nil, nil, fmt.Errorf("construct %s client %q: %w", clientType, effectiveID, err)
	}
	return c, cfg, nil
}
