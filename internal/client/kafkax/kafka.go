// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

// Package kafkax implements the Kafka client of the harness on top of
// segmentio/kafka-go. Configuration keys:
//
//	brokers  (required) - list of broker addresses
//	topic    (required) - topic to publish to and tail
//	group_id            - consumer group id (default "smoker-<id>")
package kafkax

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/fabianopinto/smoker-sub003/internal/client"
	"github.com/fabianopinto/smoker-sub003/internal/logger"
	"github.com/fabianopinto/smoker-sub003/internal/poll"
)

// messageWriter is the slice of *kafka.Writer the client uses; tests
// substitute a fake.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// messageReader is the slice of *kafka.Reader the client uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Client is a lifecycle-managed Kafka client for one topic.
type Client struct {
	client.Base

	writer messageWriter
	reader messageReader
	topic  string
}

// New returns an uninitialized Kafka client.
func New(id string, log *logger.Logger) *Client {
	return &Client{Base: client.NewBase(client.TypeKafka, id, log)}
}

// NewFromConfig is the factory constructor for the "kafka" type.
func NewFromConfig(id string, _ map[string]any, log *logger.Logger) (client.Client, error) {
	return New(id, log), nil
}

// Init implements client.Client. Writer and reader are only built when
// not already injected, so tests can install fakes before Init.
func (c *Client) Init(_ context.Context, cfg map[string]any) error {
	brokers := client.StringSliceField(cfg, "brokers")
	if len(brokers) == 0 {
		return fmt.Errorf("%w: missing required field %q", client.ErrValidation, "brokers")
	}
	topic, err := client.RequiredString(cfg, "topic")
	if err != nil {
		return err
	}
	groupID, ok := client.StringField(cfg, "group_id")
	if !ok {
		groupID = "smoker-" + c.ClientID
	}

	c.topic = topic
	if c.writer == nil {
		c.writer = &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		}
	}
	if c.reader == nil {
		c.reader = kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: groupID,
		})
	}

	c.SetInitialized(true)
	c.Log.Debug().Str("topic", topic).Strs("brokers", brokers).Msg("kafka client initialized")
	return nil
}

// Publish writes one message, attaching a correlation-id header.
func (c *Client) Publish(ctx context.Context, key, value []byte) error {
	if err := c.RequireInitialized(); err != nil {
		return err
	}
	msg := kafka.Message{
		Key:     key,
		Value:   value,
		Headers: []kafka.Header{{Key: "correlation-id", Value: []byte(uuid.NewString())}},
	}
	if err := c.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", c.topic, err)
	}
	return nil
}

// WaitForMessage polls the topic until a message whose value contains
// substr appears or the timeout elapses. Returns nil with a nil error on
// timeout. Each poll fetches for at most the poll interval; an empty
// fetch window is not an error.
func (c *Client) WaitForMessage(ctx context.Context, substr string, timeout, interval time.Duration) (*kafka.Message, error) {
	if err := c.RequireInitialized(); err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = poll.DefaultInterval
	}

	pollFn := func(ctx context.Context) ([]kafka.Message, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()

		msg, err := c.reader.FetchMessage(fetchCtx)
		if err != nil {
			// Fetch window closed with nothing available.
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, nil
			}
			return nil, fmt.Errorf("fetch from %s: %w", c.topic, err)
		}
		return []kafka.Message{msg}, nil
	}
	match := func(m kafka.Message) bool {
		return strings.Contains(string(m.Value), substr)
	}

	msg, found, err := poll.WaitForOne(ctx, pollFn, match, timeout, interval)
	if err != nil || !found {
		return nil, err
	}
	return &msg, nil
}

// Reset implements client.Client, closing the writer and reader.
func (c *Client) Reset(_ context.Context) error {
	var errs []error
	if c.writer != nil {
		errs = append(errs, c.writer.Close())
		c.writer = nil
	}
	if c.reader != nil {
		errs = append(errs, c.reader.Close())
		c.reader = nil
	}
	c.topic = ""
	c.SetInitialized(false)
	return errors.Join(errs...)
}

// Destroy implements client.Client.
func (c *Client) Destroy(ctx context.Context) error {
	return c.Reset(ctx)
}
