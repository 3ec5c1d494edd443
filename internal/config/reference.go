// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package config

import "strings"

const (
	// ParameterPrefix marks a parameter-store reference.
	ParameterPrefix = "ssm://"
	// DocumentPrefix marks an object-storage document reference.
	DocumentPrefix = "s3://"
	// documentSuffix is matched case-insensitively.
	documentSuffix = ".json"
)

// IsParameterReference reports whether v is a string value following the
// ssm://<parameter-path> grammar.
func IsParameterReference(v any) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(s, ParameterPrefix)
}

// ParameterPath returns the parameter path encoded in a parameter
// reference, or false when v is not one.
func ParameterPath(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || !strings.HasPrefix(s, ParameterPrefix) {
		return "", false
	}
	return strings.TrimPrefix(s, ParameterPrefix), true
}

// IsDocumentReference reports whether v is a string value following the
// s3://<bucket>/<key>.json grammar. The extension match is
// case-insensitive.
func IsDocumentReference(v any) bool {
	s, ok := v.(string)
	if !ok || !strings.HasPrefix(s, DocumentPrefix) {
		return false
	}
	return strings.HasSuffix(strings.ToLower(s), documentSuffix)
}

// isReference reports whether v matches either reference grammar.
func isReference(v any) bool {
	return IsParameterReference(v) || IsDocumentReference(v)
}
