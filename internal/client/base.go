// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package client

import (
	"github.com/fabianopinto/smoker-sub003/internal/logger"
)

// Base carries the identity, logger and lifecycle flag shared by all
// concrete clients. Embed it by value and drive the flag from Init,
// Reset and Destroy.
type Base struct {
	ClientType string
	ClientID   string
	Log        *logger.Logger

	ready bool
}

// NewBase constructs the shared part of a client. A nil log discards
// output.
func NewBase(clientType, clientID string, log *logger.Logger) Base {
	if log == nil {
		log = logger.Nop()
	}
	return Base{ClientType: clientType, ClientID: clientID, Log: log}
}

// IsInitialized implements the corresponding Client method.
func (b *Base) IsInitialized() bool {
	return b.ready
}

// SetInitialized flips the lifecycle flag. Concrete clients call it at
// the end of Init and from Reset/Destroy.
func (b *Base) SetInitialized(v bool) {
	b.ready = v
}

// RequireInitialized returns ErrNotInitialized unless Init has completed.
// Operations call it first.
func (b *Base) RequireInitialized() error {
	if !b.ready {
		return ErrNotInitialized
	}
	return nil
}
