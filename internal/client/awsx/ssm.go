// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package awsx

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"github.com/fabianopinto/smoker-sub003/internal/client"
	"github.com/fabianopinto/smoker-sub003/internal/logger"
)

// SSMClient drives Parameter Store. No required configuration keys.
type SSMClient struct {
	client.Base

	api SSMAPI
}

// NewSSMClient returns an uninitialized SSM client backed by api.
func NewSSMClient(id string, log *logger.Logger, api SSMAPI) *SSMClient {
	return &SSMClient{Base: client.NewBase(client.TypeSSM, id, log), api: api}
}

// Init implements client.Client.
func (c *SSMClient) Init(_ context.Context, _ map[string]any) error {
	c.SetInitialized(true)
	return nil
}

// GetParameter returns the decrypted value of a parameter.
func (c *SSMClient) GetParameter(ctx context.Context, path string) (string, error) {
	if err := c.RequireInitialized(); err != nil {
		return "", err
	}
	out, err := c.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(path),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("get parameter %q: %w", path, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parameter %q has no value", path)
	}
	return *out.Parameter.Value, nil
}

// PutParameter writes a String parameter, overwriting any existing value.
func (c *SSMClient) PutParameter(ctx context.Context, path, value string) error {
	if err := c.RequireInitialized(); err != nil {
		return err
	}
	if _, err := c.api.PutParameter(ctx, &ssm.PutParameterInput{
		Name:      aws.String(path),
		Value:     aws.String(value),
		Type:      types.ParameterTypeString,
		Overwrite: aws.Bool(true),
	}); err != nil {
		return fmt.Errorf("put parameter %q: %w", path, err)
	}
	return nil
}

// Reset implements client.Client.
func (c *SSMClient) Reset(_ context.Context) error {
	c.SetInitialized(false)
	return nil
}

// Destroy implements client.Client.
func (c *SSMClient) Destroy(ctx context.Context) error {
	return c.Reset(ctx)
}
