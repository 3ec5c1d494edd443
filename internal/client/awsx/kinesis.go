// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package awsx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"

	"github.com/fabianopinto/smoker-sub003/internal/client"
	"github.com/fabianopinto/smoker-sub003/internal/logger"
	"github.com/fabianopinto/smoker-sub003/internal/poll"
)

// KinesisClient drives one Kinesis stream. Configuration keys:
//
//	stream (required) - stream name
type KinesisClient struct {
	client.Base

	api    KinesisAPI
	stream string
}

// NewKinesisClient returns an uninitialized Kinesis client backed by api.
func NewKinesisClient(id string, log *logger.Logger, api KinesisAPI) *KinesisClient {
	return &KinesisClient{Base: client.NewBase(client.TypeKinesis, id, log), api: api}
}

// Init implements client.Client.
func (c *KinesisClient) Init(_ context.Context, cfg map[string]any) error {
	stream, err := client.RequiredString(cfg, "stream")
	if err != nil {
		return err
	}
	c.stream = stream
	c.SetInitialized(true)
	return nil
}

// PutRecord publishes data under the given partition key and returns the
// sequence number assigned by the stream.
func (c *KinesisClient) PutRecord(ctx context.Context, partitionKey string, data []byte) (string, error) {
	if err := c.RequireInitialized(); err != nil {
		return "", err
	}
	out, err := c.api.PutRecord(ctx, &kinesis.PutRecordInput{
		StreamName:   aws.String(c.stream),
		PartitionKey: aws.String(partitionKey),
		Data:         data,
	})
	if err != nil {
		return "", fmt.Errorf("put record to %s: %w", c.stream, err)
	}
	return aws.ToString(out.SequenceNumber), nil
}

// WaitForRecord tails every shard from LATEST and polls until a record
// whose data contains substr appears or the timeout elapses. Returns nil
// with a nil error on timeout.
func (c *KinesisClient) WaitForRecord(ctx context.Context, substr string, timeout, interval time.Duration) (*types.Record, error) {
	if err := c.RequireInitialized(); err != nil {
		return nil, err
	}

	iterators, err := c.shardIterators(ctx)
	if err != nil {
		return nil, err
	}

	// pollFn advances the per-shard iterators across calls.
	pollFn := func(ctx context.Context) ([]types.Record, error) {
		var batch []types.Record
		for i, it := range iterators {
			if it == "" {
				continue
			}
			out, err := c.api.GetRecords(ctx, &kinesis.GetRecordsInput{ShardIterator: aws.String(it)})
			if err != nil {
				return nil, fmt.Errorf("get records from %s: %w", c.stream, err)
			}
			batch = append(batch, out.Records...)
			iterators[i] = aws.ToString(out.NextShardIterator)
		}
		return batch, nil
	}
	match := func(r types.Record) bool {
		return strings.Contains(string(r.Data), substr)
	}

	rec, found, err := poll.WaitForOne(ctx, pollFn, match, timeout, interval)
	if err != nil || !found {
		return nil, err
	}
	return &rec, nil
}

// shardIterators opens a LATEST iterator for every shard of the stream.
func (c *KinesisClient) shardIterators(ctx context.Context) ([]string, error) {
	shards, err := c.api.ListShards(ctx, &kinesis.ListShardsInput{StreamName: aws.String(c.stream)})
	if err != nil {
		return nil, fmt.Errorf("list shards of %s: %w", c.stream, err)
	}

	iterators := make([]string, 0, len(shards.Shards))
	for _, shard := range shards.Shards {
		out, err := c.api.GetShardIterator(ctx, &kinesis.GetShardIteratorInput{
			StreamName:        aws.String(c.stream),
			ShardId:           shard.ShardId,
			ShardIteratorType: types.ShardIteratorTypeLatest,
		})
		if err != nil {
			return nil, fmt.Errorf("open iterator on %s/%s: %w", c.stream, aws.ToString(shard.ShardId), err)
		}
		iterators = append(iterators, aws.ToString(out.ShardIterator))
	}
	return iterators, nil
}

// Reset implements client.Client.
func (c *KinesisClient) Reset(_ context.Context) error {
	c.stream = ""
	c.SetInitialized(false)
	return nil
}

// Destroy implements client.Client.
func (c *KinesisClient) Destroy(ctx context.Context) error {
	return c.Reset(ctx)
}
