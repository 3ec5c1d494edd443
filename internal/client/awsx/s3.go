// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package awsx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/fabianopinto/smoker-sub003/internal/client"
	"github.com/fabianopinto/smoker-sub003/internal/logger"
	"github.com/fabianopinto/smoker-sub003/internal/poll"
)

// S3Client drives object storage. Configuration keys:
//
//	bucket - default bucket for operations that omit one
type S3Client struct {
	client.Base

	api           S3API
	defaultBucket string
}

// NewS3Client returns an uninitialized S3 client backed by api.
func NewS3Client(id string, log *logger.Logger, api S3API) *S3Client {
	return &S3Client{Base: client.NewBase(client.TypeS3, id, log), api: api}
}

// Init implements client.Client.
func (c *S3Client) Init(_ context.Context, cfg map[string]any) error {
	c.defaultBucket, _ = client.StringField(cfg, "bucket")
	c.SetInitialized(true)
	return nil
}

// bucketOrDefault falls back to the configured bucket; an empty result is
// a validation failure because no operation can run without one.
func (c *S3Client) bucketOrDefault(bucket string) (string, error) {
	if bucket != "" {
		return bucket, nil
	}
	if c.defaultBucket == "" {
		return "", fmt.Errorf("%w: no bucket given and no default configured", client.ErrValidation)
	}
	return c.defaultBucket, nil
}

// Read returns the full content of an object.
func (c *S3Client) Read(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := c.RequireInitialized(); err != nil {
		return nil, err
	}
	b, err := c.bucketOrDefault(bucket)
	if err != nil {
		return nil, err
	}

	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(b), Key: aws.String(key)})
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", b, key, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

// Write stores data under the given key.
func (c *S3Client) Write(ctx context.Context, bucket, key string, data []byte) error {
	if err := c.RequireInitialized(); err != nil {
		return err
	}
	b, err := c.bucketOrDefault(bucket)
	if err != nil {
		return err
	}

	if _, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(b),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}); err != nil {
		return fmt.Errorf("write s3://%s/%s: %w", b, key, err)
	}
	return nil
}

// Delete removes an object.
func (c *S3Client) Delete(ctx context.Context, bucket, key string) error {
	if err := c.RequireInitialized(); err != nil {
		return err
	}
	b, err := c.bucketOrDefault(bucket)
	if err != nil {
		return err
	}

	if _, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(b), Key: aws.String(key)}); err != nil {
		return fmt.Errorf("delete s3://%s/%s: %w", b, key, err)
	}
	return nil
}

// WaitForObject polls HeadObject until the key exists or the timeout
// elapses. Returns false with a nil error on timeout. A missing object
// is reported by the SDK as an error; any HeadObject error counts as
// "not there yet" because S3 gives no reliable typed distinction across
// backends the harness targets.
func (c *S3Client) WaitForObject(ctx context.Context, bucket, key string, timeout, interval time.Duration) (bool, error) {
	if err := c.RequireInitialized(); err != nil {
		return false, err
	}
	b, err := c.bucketOrDefault(bucket)
	if err != nil {
		return false, err
	}

	pollFn := func(ctx context.Context) ([]string, error) {
		if _, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(b), Key: aws.String(key)}); err != nil {
			return nil, nil
		}
		return []string{key}, nil
	}
	_, found, err := poll.WaitForOne(ctx, pollFn, func(string) bool { return true }, timeout, interval)
	return found, err
}

// Reset implements client.Client.
func (c *S3Client) Reset(_ context.Context) error {
	c.defaultBucket = ""
	c.SetInitialized(false)
	return nil
}

// Destroy implements client.Client.
func (c *S3Client) Destroy(ctx context.Context) error {
	return c.Reset(ctx)
}
