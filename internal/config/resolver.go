// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package config

import (
	"context"
	"fmt"
	"slices"

	"github.com/fabianopinto/smoker-sub003/internal/logger"
)

//go:generate mockgen -source=resolver.go -destination=../mock/fetcher_mock.go -package=mock

// MaxResolutionDepth bounds how many reference dereferences a single
// Resolve call may chain through before failing.
const MaxResolutionDepth = 10

// ParameterFetcher retrieves the raw string value behind an ssm://
// reference. Failures propagate as fatal resolver errors.
type ParameterFetcher interface {
	FetchParameter(ctx context.Context, path string) (string, error)
}

// DocumentFetcher retrieves and parses the JSON document behind an s3://
// reference. Failures are caught by the resolver and downgraded to a
// logged warning plus the unresolved reference string.
type DocumentFetcher interface {
	FetchJSONDocument(ctx context.Context, url string) (any, error)
}

// Resolver substitutes external references embedded in a configuration
// tree with the content they point to. It holds no per-call state, so a
// single Resolver may serve concurrent Resolve calls.
type Resolver struct {
	parameters ParameterFetcher
	documents  DocumentFetcher
	log        *logger.Logger
}

// NewResolver constructs a Resolver using the given fetchers. A nil log
// discards output.
func NewResolver(parameters ParameterFetcher, documents DocumentFetcher, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{parameters: parameters, documents: documents, log: log}
}

// resolveState is the per-call recursion bookkeeping: the dereference
// depth, the set of references currently being resolved, and the visit
// chain for cycle diagnostics. It is threaded through the recursive walk
// instead of living on the Resolver so unrelated Resolve calls can never
// observe each other's state.
type resolveState struct {
	depth    int
	inFlight map[string]struct{}
	chain    []string
}

// enter records that ref is being dereferenced. It fails when the depth
// bound is already met or when ref is already in flight. Every successful
// enter must be paired with leave on all exit paths.
func (st *resolveState) enter(ref string) error {
	if st.depth >= MaxResolutionDepth {
		return fmt.Errorf("%w: depth %d reached at %q", ErrResolutionDepthExceeded, st.depth, ref)
	}
	if _, ok := st.inFlight[ref]; ok {
		return &CircularReferenceError{Chain: append(slices.Clone(st.chain), ref)}
	}
	st.depth++
	st.inFlight[ref] = struct{}{}
	st.chain = append(st.chain, ref)
	return nil
}

func (st *resolveState) leave(ref string) {
	st.depth--
	delete(st.inFlight, ref)
	st.chain = st.chain[:len(st.chain)-1]
}

// Resolve returns a new tree in which every recognized reference has been
// dereferenced. The input is never mutated; for a reference-free tree the
// result is a structurally equal deep copy. Mapping keys are visited in
// lexical order and sequence elements in index order, so repeated
// resolutions of the same tree dereference in the same sequence.
func (r *Resolver) Resolve(ctx context.Context, value any) (any, error) {
	st := &resolveState{inFlight: make(map[string]struct{})}
	return r.resolveValue(ctx, value, st)
}

func (r *Resolver) resolveValue(ctx context.Context, value any, st *resolveState) (any, error) {
	switch v := value.(type) {
	case string:
		switch {
		case IsParameterReference(v):
			return r.resolveParameter(ctx, v, st)
		case IsDocumentReference(v):
			return r.resolveDocument(ctx, v, st)
		default:
			return v, nil
		}
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			resolved, err := r.resolveValue(ctx, elem, st)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for _, k := range sortedKeys(v) {
			resolved, err := r.resolveValue(ctx, v[k], st)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	default:
		// Numbers, booleans, nil: literals.
		return value, nil
	}
}

// resolveParameter dereferences an ssm:// reference. Fetch failures are
// fatal, and a fetched value that is itself a reference is resolved
// transitively under the same depth and cycle accounting.
func (r *Resolver) resolveParameter(ctx context.Context, ref string, st *resolveState) (any, error) {
	if err := st.enter(ref); err != nil {
		return nil, err
	}
	defer st.leave(ref)

	path, _ := ParameterPath(ref)
	raw, err := r.parameters.FetchParameter(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: parameter %q: %w", ErrFetch, ref, err)
	}

	if isReference(raw) {
		return r.resolveValue(ctx, raw, st)
	}
	return raw, nil
}

// resolveDocument dereferences an s3:// reference and resolves the parsed
// document recursively. Fetch and parse failures are deliberately soft:
// the failure is logged and the original reference string is returned
// unresolved. This asymmetry with the hard-failing parameter path is an
// intentional policy carried over as-is.
func (r *Resolver) resolveDocument(ctx context.Context, ref string, st *resolveState) (any, error) {
	if err := st.enter(ref); err != nil {
		return nil, err
	}
	defer st.leave(ref)

	doc, err := r.documents.FetchJSONDocument(ctx, ref)
	if err != nil {
		r.log.Warn().Str("reference", ref).Err(err).Msg("document reference left unresolved")
		return ref, nil
	}
	return r.resolveValue(ctx, doc, st)
}
