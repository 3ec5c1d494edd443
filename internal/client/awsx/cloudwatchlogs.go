// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package awsx

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"

	"github.com/fabianopinto/smoker-sub003/internal/client"
	"github.com/fabianopinto/smoker-sub003/internal/logger"
	"github.com/fabianopinto/smoker-sub003/internal/poll"
)

// CloudWatchClient reads one CloudWatch Logs group. Configuration keys:
//
//	log_group (required) - log group name
type CloudWatchClient struct {
	client.Base

	api      CloudWatchLogsAPI
	logGroup string
}

// NewCloudWatchClient returns an uninitialized CloudWatch Logs client
// backed by api.
func NewCloudWatchClient(id string, log *logger.Logger, api CloudWatchLogsAPI) *CloudWatchClient {
	return &CloudWatchClient{Base: client.NewBase(client.TypeCloudWatch, id, log), api: api}
}

// Init implements client.Client.
func (c *CloudWatchClient) Init(_ context.Context, cfg map[string]any) error {
	logGroup, err := client.RequiredString(cfg, "log_group")
	if err != nil {
		return err
	}
	c.logGroup = logGroup
	c.SetInitialized(true)
	return nil
}

// FilterEvents returns the events matching the CloudWatch filter pattern
// emitted at or after since.
func (c *CloudWatchClient) FilterEvents(ctx context.Context, pattern string, since time.Time) ([]types.FilteredLogEvent, error) {
	if err := c.RequireInitialized(); err != nil {
		return nil, err
	}
	out, err := c.api.FilterLogEvents(ctx, &cloudwatchlogs.FilterLogEventsInput{
		LogGroupName:  aws.String(c.logGroup),
		FilterPattern: aws.String(pattern),
		StartTime:     aws.Int64(since.UnixMilli()),
	})
	if err != nil {
		return nil, fmt.Errorf("filter events in %s: %w", c.logGroup, err)
	}
	return out.Events, nil
}

// WaitForLogEntry polls the group until an event matching pattern appears
// at or after since, or the timeout elapses. Returns nil with a nil error
// on timeout.
func (c *CloudWatchClient) WaitForLogEntry(ctx context.Context, pattern string, since time.Time, timeout, interval time.Duration) (*types.FilteredLogEvent, error) {
	if err := c.RequireInitialized(); err != nil {
		return nil, err
	}

	pollFn := func(ctx context.Context) ([]types.FilteredLogEvent, error) {
		return c.FilterEvents(ctx, pattern, since)
	}
	// FilterLogEvents already applied the pattern server-side.
	event, found, err := poll.WaitForOne(ctx, pollFn, func(types.FilteredLogEvent) bool { return true }, timeout, interval)
	if err != nil || !found {
		return nil, err
	}
	return &event, nil
}

// Reset implements client.Client.
func (c *CloudWatchClient) Reset(_ context.Context) error {
	c.logGroup = ""
	c.SetInitialized(false)
	return nil
}

// Destroy implements client.Client.
func (c *CloudWatchClient) Destroy(ctx context.Context) error {
	return c.Reset(ctx)
}
