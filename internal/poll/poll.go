// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

// Package poll provides the timeout-bounded polling loop every "wait for
// an event to appear" operation in the harness is built on.
package poll

import (
	"context"
	"time"
)

// DefaultInterval is the delay between polls when none is given.
const DefaultInterval = 2 * time.Second

// WaitFor repeatedly invokes pollFn and returns the items of the first
// batch for which match accepts at least one element. The deadline is
// computed once from timeout; expiring with no match returns (nil, nil),
// a normal terminal outcome rather than an error. An interval <= 0 falls
// back to DefaultInterval.
//
// Any error from pollFn aborts the loop immediately; there is no
// retry-on-error. Cancelling ctx aborts the inter-poll sleep and returns
// ctx.Err().
func WaitFor[T any](ctx context.Context, pollFn func(context.Context) ([]T, error), match func(T) bool, timeout, interval time.Duration) ([]T, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		batch, err := pollFn(ctx)
		if err != nil {
			return nil, err
		}

		var matched []T
		for _, item := range batch {
			if match(item) {
				matched = append(matched, item)
			}
		}
		if len(matched) > 0 {
			return matched, nil
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, nil
}

// WaitForOne is WaitFor for callers interested in a single item. The
// boolean reports whether a match was found before the deadline.
func WaitForOne[T any](ctx context.Context, pollFn func(context.Context) ([]T, error), match func(T) bool, timeout, interval time.Duration) (T, bool, error) {
	var zero T
	matched, err := WaitFor(ctx, pollFn, match, timeout, interval)
	if err != nil || len(matched) == 0 {
		return zero, false, err
	}
	return matched[0], true, nil
}
