// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package awsx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/google/uuid"

	"github.com/fabianopinto/smoker-sub003/internal/client"
	"github.com/fabianopinto/smoker-sub003/internal/logger"
	"github.com/fabianopinto/smoker-sub003/internal/poll"
)

// SQSClient drives one SQS queue. Configuration keys:
//
//	queue_url (required) - full queue URL
type SQSClient struct {
	client.Base

	api      SQSAPI
	queueURL string
}

// NewSQSClient returns an uninitialized SQS client backed by api.
func NewSQSClient(id string, log *logger.Logger, api SQSAPI) *SQSClient {
	return &SQSClient{Base: client.NewBase(client.TypeSQS, id, log), api: api}
}

// Init implements client.Client.
func (c *SQSClient) Init(_ context.Context, cfg map[string]any) error {
	queueURL, err := client.RequiredString(cfg, "queue_url")
	if err != nil {
		return err
	}
	c.queueURL = queueURL
	c.SetInitialized(true)
	return nil
}

// Send publishes a message body with optional string attributes, adding a
// correlation-id attribute, and returns the message id.
func (c *SQSClient) Send(ctx context.Context, body string, attributes map[string]string) (string, error) {
	if err := c.RequireInitialized(); err != nil {
		return "", err
	}

	attrs := map[string]types.MessageAttributeValue{
		"correlation-id": {DataType: aws.String("String"), StringValue: aws.String(uuid.NewString())},
	}
	for k, v := range attributes {
		attrs[k] = types.MessageAttributeValue{DataType: aws.String("String"), StringValue: aws.String(v)}
	}

	out, err := c.api.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:          aws.String(c.queueURL),
		MessageBody:       aws.String(body),
		MessageAttributes: attrs,
	})
	if err != nil {
		return "", fmt.Errorf("send message to %s: %w", c.queueURL, err)
	}
	return aws.ToString(out.MessageId), nil
}

// Receive fetches up to max messages in a single call.
func (c *SQSClient) Receive(ctx context.Context, max int32) ([]types.Message, error) {
	if err := c.RequireInitialized(); err != nil {
		return nil, err
	}
	out, err := c.api.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:              aws.String(c.queueURL),
		MaxNumberOfMessages:   max,
		MessageAttributeNames: []string{"All"},
	})
	if err != nil {
		return nil, fmt.Errorf("receive from %s: %w", c.queueURL, err)
	}
	return out.Messages, nil
}

// Delete removes a received message by receipt handle.
func (c *SQSClient) Delete(ctx context.Context, receiptHandle string) error {
	if err := c.RequireInitialized(); err != nil {
		return err
	}
	if _, err := c.api.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.queueURL),
		ReceiptHandle: aws.String(receiptHandle),
	}); err != nil {
		return fmt.Errorf("delete message from %s: %w", c.queueURL, err)
	}
	return nil
}

// Purge drops every message in the queue.
func (c *SQSClient) Purge(ctx context.Context) error {
	if err := c.RequireInitialized(); err != nil {
		return err
	}
	if _, err := c.api.PurgeQueue(ctx, &sqs.PurgeQueueInput{QueueUrl: aws.String(c.queueURL)}); err != nil {
		return fmt.Errorf("purge %s: %w", c.queueURL, err)
	}
	return nil
}

// WaitForMessage polls the queue until a message whose body contains
// substr appears or the timeout elapses. Returns nil with a nil error on
// timeout.
func (c *SQSClient) WaitForMessage(ctx context.Context, substr string, timeout, interval time.Duration) (*types.Message, error) {
	if err := c.RequireInitialized(); err != nil {
		return nil, err
	}

	pollFn := func(ctx context.Context) ([]types.Message, error) {
		return c.Receive(ctx, 10)
	}
	match := func(m types.Message) bool {
		return strings.Contains(aws.ToString(m.Body), substr)
	}
	msg, found, err := poll.WaitForOne(ctx, pollFn, match, timeout, interval)
	if err != nil || !found {
		return nil, err
	}
	return &msg, nil
}

// Reset implements client.Client.
func (c *SQSClient) Reset(_ context.Context) error {
	c.queueURL = ""
	c.SetInitialized(false)
	return nil
}

// Destroy implements client.Client.
func (c *SQSClient) Destroy(ctx context.Context) error {
	return c.Reset(ctx)
}
