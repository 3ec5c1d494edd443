// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrResolutionDepthExceeded is returned when a resolution chain
	// crosses [MaxResolutionDepth] dereferences. A chain that deep almost
	// always means the references form a cycle the in-flight guard could
	// not see (e.g. alternating grammars), so the message carries that
	// hint. Distinct from [ErrCircularReference] on purpose: the two
	// conditions trip on different evidence and are tested separately.
	ErrResolutionDepthExceeded = errors.New("configuration resolution depth exceeded, possible circular reference")

	// ErrCircularReference is returned when a reference reappears inside
	// its own resolution chain. Use [errors.As] with
	// [*CircularReferenceError] to recover the full chain.
	ErrCircularReference = errors.New("circular configuration reference detected")

	// ErrFetch wraps parameter-fetch failures. Parameter fetches are
	// fatal; document fetches are downgraded to a logged warning and the
	// unresolved reference string (see Resolver).
	ErrFetch = errors.New("external configuration fetch failed")
)

// CircularReferenceError reports a reference cycle together with the chain
// of references that was being resolved when the cycle closed. The last
// element of Chain is the reference that reappeared.
type CircularReferenceError struct {
	Chain []string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCircularReference, strings.Join(e.Chain, " -> "))
}

// Unwrap makes errors.Is(err, ErrCircularReference) hold for cycle errors.
func (e *CircularReferenceError) Unwrap() error {
	return ErrCircularReference
}
