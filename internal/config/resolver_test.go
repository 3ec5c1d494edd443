// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package config

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fabianopinto/smoker-sub003/internal/logger"
	"github.com/fabianopinto/smoker-sub003/internal/mock"
)

// newTestResolver wires a resolver to fresh fetcher mocks.
func newTestResolver(t *testing.T, ctrl *gomock.Controller) (*Resolver, *mock.MockParameterFetcher, *mock.MockDocumentFetcher) {
	t.Helper()
	params := mock.NewMockParameterFetcher(ctrl)
	docs := mock.NewMockDocumentFetcher(ctrl)
	return NewResolver(params, docs, logger.Nop()), params, docs
}

// ── plain values ─────────────────────────────────────────────────────────────

func TestResolver_ReferenceFreeTreeIsDeepCopied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, _, _ := newTestResolver(t, ctrl)
	input := map[string]any{
		"name":    "smoke",
		"retries": float64(3),
		"nested": map[string]any{
			"enabled": true,
			"hosts":   []any{"a", "b"},
		},
		"none": nil,
	}

	out, err := r.Resolve(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, input, out)

	// Mutating the result must not leak into the input.
	out.(map[string]any)["nested"].(map[string]any)["enabled"] = false
	out.(map[string]any)["nested"].(map[string]any)["hosts"].([]any)[0] = "mutated"
	assert.Equal(t, true, input["nested"].(map[string]any)["enabled"])
	assert.Equal(t, "a", input["nested"].(map[string]any)["hosts"].([]any)[0])
}

func TestResolver_ScalarsPassThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, _, _ := newTestResolver(t, ctrl)
	for _, v := range []any{"plain", float64(42), true, nil} {
		out, err := r.Resolve(context.Background(), v)
		require.NoError(t, err)
		assert.Equal(t, v, out)
	}
}

// ── parameter references ─────────────────────────────────────────────────────

func TestResolver_ParameterReference(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, params, _ := newTestResolver(t, ctrl)
	params.EXPECT().FetchParameter(gomock.Any(), "app/endpoint").Return("https://svc.example.test", nil)

	out, err := r.Resolve(context.Background(), map[string]any{"base_url": "ssm://app/endpoint"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"base_url": "https://svc.example.test"}, out)
}

func TestResolver_TransitiveParameterResolution(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, params, _ := newTestResolver(t, ctrl)
	params.EXPECT().FetchParameter(gomock.Any(), "a").Return("ssm://b", nil)
	params.EXPECT().FetchParameter(gomock.Any(), "b").Return("final", nil)

	out, err := r.Resolve(context.Background(), "ssm://a")
	require.NoError(t, err)
	assert.Equal(t, "final", out)
}

func TestResolver_ParameterFetchErrorIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, params, _ := newTestResolver(t, ctrl)
	params.EXPECT().FetchParameter(gomock.Any(), "missing").Return("", errors.New("no such parameter"))

	_, err := r.Resolve(context.Background(), "ssm://missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestResolver_SelfReferenceDetected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, params, _ := newTestResolver(t, ctrl)
	params.EXPECT().FetchParameter(gomock.Any(), "a").Return("ssm://a", nil)

	_, err := r.Resolve(context.Background(), "ssm://a")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCircularReference)

	var cycle *CircularReferenceError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, []string{"ssm://a", "ssm://a"}, cycle.Chain)
}

func TestResolver_IndirectCycleReportsChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, params, _ := newTestResolver(t, ctrl)
	params.EXPECT().FetchParameter(gomock.Any(), "a").Return("ssm://b", nil)
	params.EXPECT().FetchParameter(gomock.Any(), "b").Return("ssm://a", nil)

	_, err := r.Resolve(context.Background(), "ssm://a")
	require.Error(t, err)

	var cycle *CircularReferenceError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, []string{"ssm://a", "ssm://b", "ssm://a"}, cycle.Chain)
}

// chainOfParameters wires p1 -> p2 -> ... -> pN -> "done".
func chainOfParameters(params *mock.MockParameterFetcher, n int) {
	for i := 1; i <= n; i++ {
		value := "done"
		if i < n {
			value = fmt.Sprintf("ssm://p%d", i+1)
		}
		params.EXPECT().FetchParameter(gomock.Any(), fmt.Sprintf("p%d", i)).Return(value, nil).AnyTimes()
	}
}

func TestResolver_ChainOfNineResolves(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, params, _ := newTestResolver(t, ctrl)
	chainOfParameters(params, 9)

	out, err := r.Resolve(context.Background(), "ssm://p1")
	require.NoError(t, err)
	assert.Equal(t, "done", out)
}

func TestResolver_ChainOfElevenExceedsDepth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, params, _ := newTestResolver(t, ctrl)
	chainOfParameters(params, 11)

	_, err := r.Resolve(context.Background(), "ssm://p1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResolutionDepthExceeded)
	assert.NotErrorIs(t, err, ErrCircularReference)
}

// ── document references ──────────────────────────────────────────────────────

func TestResolver_DocumentReferenceResolved(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, params, docs := newTestResolver(t, ctrl)
	docs.EXPECT().FetchJSONDocument(gomock.Any(), "s3://bucket/cfg.json").
		Return(map[string]any{"endpoint": "ssm://app/endpoint", "retries": float64(2)}, nil)
	params.EXPECT().FetchParameter(gomock.Any(), "app/endpoint").Return("https://svc.example.test", nil)

	out, err := r.Resolve(context.Background(), "s3://bucket/cfg.json")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"endpoint": "https://svc.example.test", "retries": float64(2)}, out)
}

func TestResolver_DocumentFetchFailureIsSoft(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, _, docs := newTestResolver(t, ctrl)
	docs.EXPECT().FetchJSONDocument(gomock.Any(), "s3://bucket/cfg.json").
		Return(nil, errors.New("access denied"))

	out, err := r.Resolve(context.Background(), "s3://bucket/cfg.json")
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/cfg.json", out)
}

func TestResolver_DocumentSelfCycleIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, _, docs := newTestResolver(t, ctrl)
	docs.EXPECT().FetchJSONDocument(gomock.Any(), "s3://bucket/cfg.json").
		Return(map[string]any{"self": "s3://bucket/cfg.json"}, nil)

	_, err := r.Resolve(context.Background(), "s3://bucket/cfg.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCircularReference)
}

func TestResolver_StateDoesNotLeakBetweenCalls(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, params, _ := newTestResolver(t, ctrl)
	params.EXPECT().FetchParameter(gomock.Any(), "a").Return("ssm://a", nil)

	_, err := r.Resolve(context.Background(), "ssm://a")
	require.Error(t, err)

	// A later, unrelated resolution of the same reference must start with
	// clean cycle-detection state.
	params.EXPECT().FetchParameter(gomock.Any(), "a").Return("recovered", nil)
	out, err := r.Resolve(context.Background(), "ssm://a")
	require.NoError(t, err)
	assert.Equal(t, "recovered", out)
}
