// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

// Package harness wires the configuration pipeline to the client
// lifecycle: raw tree from the loader, reference resolution through the
// AWS-backed fetchers, registration into the registry, and a factory with
// every built-in client type installed.
package harness

import (
	"context"
	"fmt"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/fabianopinto/smoker-sub003/internal/client"
	"github.com/fabianopinto/smoker-sub003/internal/client/awsx"
	"github.com/fabianopinto/smoker-sub003/internal/client/kafkax"
	"github.com/fabianopinto/smoker-sub003/internal/client/mqttx"
	"github.com/fabianopinto/smoker-sub003/internal/client/rest"
	"github.com/fabianopinto/smoker-sub003/internal/config"
	"github.com/fabianopinto/smoker-sub003/internal/logger"
	"github.com/fabianopinto/smoker-sub003/internal/registry"
)

// Harness holds the assembled subsystem for one test run.
type Harness struct {
	Settings *config.Settings
	Registry *registry.Registry
	Factory  *client.Factory

	log *logger.Logger
}

// New loads the configuration files named by settings, resolves every
// external reference, registers the resolved client configurations into a
// fresh registry, and returns a factory with all built-in constructors
// installed. The fresh registry is also installed as the process-wide
// default so step definitions can reach it without threading.
func New(ctx context.Context, settings *config.Settings, log *logger.Logger) (*Harness, error) {
	if log == nil {
		log = logger.Nop()
	}

	aws, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(settings.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	ssmAPI := ssm.NewFromConfig(aws)
	s3API := s3.NewFromConfig(aws)
	sqsAPI := sqs.NewFromConfig(aws)
	kinesisAPI := kinesis.NewFromConfig(aws)
	logsAPI := cloudwatchlogs.NewFromConfig(aws)

	raw, err := config.NewLoader().WithFiles(settings.ConfigFiles).Build()
	if err != nil {
		return nil, err
	}

	resolver := config.NewResolver(
		awsx.NewParameterFetcher(ssmAPI),
		awsx.NewDocumentFetcher(s3API),
		log.GetChildLogger(),
	)
	resolved, err := resolver.Resolve(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("resolve configuration: %w", err)
	}

	reg := registry.ResetDefault(nil)
	if tree, ok := resolved.(map[string]any); ok {
		reg.RegisterBulk(tree)
	}

	factory := client.NewFactory(reg, log)
	factory.RegisterConstructor(client.TypeRest, rest.NewFromConfig)
	factory.RegisterConstructor(client.TypeKafka, kafkax.NewFromConfig)
	factory.RegisterConstructor(client.TypeMQTT, mqttx.NewFromConfig)
	factory.RegisterConstructor(client.TypeS3, func(id string, _ map[string]any, l *logger.Logger) (client.Client, error) {
		return awsx.NewS3Client(id, l, s3API), nil
	})
	factory.RegisterConstructor(client.TypeSSM, func(id string, _ map[string]any, l *logger.Logger) (client.Client, error) {
		return awsx.NewSSMClient(id, l, ssmAPI), nil
	})
	factory.RegisterConstructor(client.TypeSQS, func(id string, _ map[string]any, l *logger.Logger) (client.Client, error) {
		return awsx.NewSQSClient(id, l, sqsAPI), nil
	})
	factory.RegisterConstructor(client.TypeKinesis, func(id string, _ map[string]any, l *logger.Logger) (client.Client, error) {
		return awsx.NewKinesisClient(id, l, kinesisAPI), nil
	})
	factory.RegisterConstructor(client.TypeCloudWatch, func(id string, _ map[string]any, l *logger.Logger) (client.Client, error) {
		return awsx.NewCloudWatchClient(id, l, logsAPI), nil
	})

	return &Harness{
		Settings: settings,
		Registry: reg,
		Factory:  factory,
		log:      log,
	}, nil
}

// Close clears the registry so a subsequent run starts clean.
func (h *Harness) Close() {
	h.Registry.Clear()
}
