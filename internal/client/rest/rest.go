// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

// Package rest implements the HTTP client of the harness on top of
// go-resty. Configuration keys:
//
//	base_url  (required) - service base URL
//	timeout            - request timeout ("15s" or milliseconds)
//	headers            - map of default headers
//	auth.sign_key      - enables HS256 bearer tokens minted per request
//	auth.issuer        - "iss" claim
//	auth.subject       - "sub" claim
//	auth.ttl           - token lifetime (default 5m)
package rest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fabianopinto/smoker-sub003/internal/client"
	"github.com/fabianopinto/smoker-sub003/internal/logger"
)

const defaultTimeout = 15 * time.Second

// Client is a lifecycle-managed REST client.
type Client struct {
	client.Base

	http *resty.Client
	auth authConfig
}

type authConfig struct {
	signKey string
	issuer  string
	subject string
	ttl     time.Duration
}

// New returns an uninitialized REST client.
func New(id string, log *logger.Logger) *Client {
	return &Client{Base: client.NewBase(client.TypeRest, id, log)}
}

// NewFromConfig is the factory constructor for the "rest" type.
func NewFromConfig(id string, _ map[string]any, log *logger.Logger) (client.Client, error) {
	return New(id, log), nil
}

// Init implements client.Client. It validates base_url and builds the
// underlying resty client with the configured timeout and default
// headers.
func (c *Client) Init(_ context.Context, cfg map[string]any) error {
	baseURL, err := client.RequiredString(cfg, "base_url")
	if err != nil {
		return err
	}

	http := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(client.DurationField(cfg, "timeout", defaultTimeout))
	for k, v := range client.StringMapField(cfg, "headers") {
		http.SetHeader(k, v)
	}

	c.auth = authConfig{}
	if auth, ok := cfg["auth"].(map[string]any); ok {
		signKey, ok := client.StringField(auth, "sign_key")
		if !ok {
			return fmt.Errorf("%w: auth block requires sign_key", client.ErrValidation)
		}
		issuer, _ := client.StringField(auth, "issuer")
		subject, _ := client.StringField(auth, "subject")
		c.auth = authConfig{
			signKey: signKey,
			issuer:  issuer,
			subject: subject,
			ttl:     client.DurationField(auth, "ttl", 5*time.Minute),
		}
	}

	c.http = http
	c.SetInitialized(true)
	c.Log.Debug().Str("base_url", baseURL).Msg("rest client initialized")
	return nil
}

// Request executes a single HTTP request. body may be nil; headers are
// applied on top of the defaults configured at Init. When an auth block
// is configured, a freshly minted bearer token is attached.
func (c *Client) Request(ctx context.Context, method, path string, body any, headers map[string]string) (*resty.Response, error) {
	if err := c.RequireInitialized(); err != nil {
		return nil, err
	}

	req := c.http.R().SetContext(ctx)
	for k, v := range headers {
		req.SetHeader(k, v)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if c.auth.signKey != "" {
		token, err := c.bearerToken()
		if err != nil {
			return nil, fmt.Errorf("mint bearer token: %w", err)
		}
		req.SetAuthToken(token)
	}

	resp, err := req.Execute(strings.ToUpper(method), path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", strings.ToUpper(method), path, err)
	}
	return resp, nil
}

// Get is shorthand for Request with method GET and no body.
func (c *Client) Get(ctx context.Context, path string, headers map[string]string) (*resty.Response, error) {
	return c.Request(ctx, "GET", path, nil, headers)
}

// Post is shorthand for Request with method POST.
func (c *Client) Post(ctx context.Context, path string, body any, headers map[string]string) (*resty.Response, error) {
	return c.Request(ctx, "POST", path, body, headers)
}

// bearerToken mints a short-lived HS256 token from the auth block. Each
// token carries a unique jti so requests remain distinguishable in
// server logs.
func (c *Client) bearerToken() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    c.auth.issuer,
		Subject:   c.auth.subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.auth.ttl)),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.auth.signKey))
}

// Reset implements client.Client.
func (c *Client) Reset(_ context.Context) error {
	c.http = nil
	c.auth = authConfig{}
	c.SetInitialized(false)
	return nil
}

// Destroy implements client.Client.
func (c *Client) Destroy(ctx context.Context) error {
	return c.Reset(ctx)
}
