// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

// Package client defines the lifecycle contract shared by all protocol
// clients and the factory that maps a (type, id) pair to a constructed
// instance using registry-stored configuration.
//
// The factory has no compile-time knowledge of concrete transports: it
// depends only on the [Client] capability set, and concrete constructors
// are registered at wiring time (see internal/harness).
package client

import "context"

//go:generate mockgen -source=client.go -destination=../mock/client_mock.go -package=mock

// Client is the capability set every concrete client exposes to the
// factory and to step definitions.
type Client interface {
	// Init validates cfg, establishes whatever session the transport
	// needs, and marks the client ready. Calling any operation before a
	// successful Init fails with ErrNotInitialized.
	Init(ctx context.Context, cfg map[string]any) error

	// IsInitialized reports whether Init has completed successfully and
	// the client has not been reset or destroyed since.
	IsInitialized() bool

	// Reset returns the client to its pre-Init state, keeping it usable
	// for a subsequent Init.
	Reset(ctx context.Context) error

	// Destroy releases all resources. The client must not be used after.
	Destroy(ctx context.Context) error
}

// Built-in client type names. These are the keys used in configuration
// trees and registry entries.
const (
	TypeRest       = "rest"
	TypeS3         = "s3"
	TypeSSM        = "ssm"
	TypeSQS        = "sqs"
	TypeKinesis    = "kinesis"
	TypeCloudWatch = "cloudwatch"
	TypeKafka      = "kafka"
	TypeMQTT       = "mqtt"
)
