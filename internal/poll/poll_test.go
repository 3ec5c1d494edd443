// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package poll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitFor_MatchOnThirdPollReturnsEarly(t *testing.T) {
	calls := 0
	pollFn := func(context.Context) ([]string, error) {
		calls++
		if calls == 3 {
			return []string{"miss", "hit"}, nil
		}
		return nil, nil
	}

	start := time.Now()
	matched, err := WaitFor(context.Background(), pollFn, func(s string) bool { return s == "hit" }, 5*time.Second, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, []string{"hit"}, matched)
	assert.Equal(t, 3, calls)
	assert.Less(t, time.Since(start), time.Second, "must return well before the timeout")
}

func TestWaitFor_DeadlineYieldsEmptyResult(t *testing.T) {
	pollFn := func(context.Context) ([]string, error) {
		return []string{"nope"}, nil
	}

	timeout := 50 * time.Millisecond
	start := time.Now()
	matched, err := WaitFor(context.Background(), pollFn, func(string) bool { return false }, timeout, 5*time.Millisecond)
	require.NoError(t, err)
	assert.Nil(t, matched)
	assert.GreaterOrEqual(t, time.Since(start), timeout, "must not give up before the deadline")
}

func TestWaitFor_PollErrorAbortsImmediately(t *testing.T) {
	calls := 0
	boom := errors.New("poll failed")
	pollFn := func(context.Context) ([]string, error) {
		calls++
		return nil, boom
	}

	_, err := WaitFor(context.Background(), pollFn, func(string) bool { return true }, time.Second, time.Millisecond)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls, "no retry on error")
}

func TestWaitFor_ContextCancellationAbortsSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pollFn := func(context.Context) ([]string, error) {
		cancel()
		return nil, nil
	}

	start := time.Now()
	_, err := WaitFor(ctx, pollFn, func(string) bool { return true }, time.Minute, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitFor_MatchFiltersBatch(t *testing.T) {
	pollFn := func(context.Context) ([]int, error) {
		return []int{1, 2, 3, 4}, nil
	}

	matched, err := WaitFor(context.Background(), pollFn, func(n int) bool { return n%2 == 0 }, time.Second, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, matched)
}

func TestWaitForOne(t *testing.T) {
	pollFn := func(context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	}

	got, found, err := WaitForOne(context.Background(), pollFn, func(s string) bool { return s == "b" }, time.Second, time.Millisecond)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "b", got)

	_, found, err = WaitForOne(context.Background(), pollFn, func(string) bool { return false }, 20*time.Millisecond, 5*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, found)
}
