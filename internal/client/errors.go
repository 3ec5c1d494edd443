// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package client

import "errors"

var (
	// ErrUnknownClientType indicates a factory dispatch for a type with
	// no registered constructor.
	ErrUnknownClientType = errors.New("unknown client type")
	// ErrValidation indicates a missing or malformed required
	// configuration field at client construction or Init time.
	ErrValidation = errors.New("invalid client configuration")
	// ErrNotInitialized indicates an operation on a client before a
	// successful Init (or after Reset/Destroy).
	ErrNotInitialized = errors.New("client not initialized")
)
