// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

// Package config implements the dynamic configuration layer of the harness.
//
// Configuration is modelled as a JSON-style value tree (string, float64,
// bool, nil, []any, map[string]any). String values may embed external
// references following two grammars:
//
//	ssm://<parameter-path>        - parameter-store reference
//	s3://<bucket>/<key>.json      - object-storage JSON document reference
//
// The [Resolver] walks a tree depth-first and substitutes every recognized
// reference with the content it points to, fetched through the injected
// [ParameterFetcher] and [DocumentFetcher] collaborators. Resolution is
// transitive (a fetched value that is itself a reference is resolved in
// turn), bounded to [MaxResolutionDepth] dereferences, and guarded against
// reference cycles.
//
// The [Loader] assembles the raw tree from JSON files and programmatic
// layers (later layers override earlier ones), and [Settings] carries the
// env-driven bootstrap knobs of the harness itself.
package config
