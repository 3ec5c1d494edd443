// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

// Settings holds the bootstrap configuration of the harness itself, as
// opposed to the per-client configuration trees the registry stores.
// Values are read from SMOKER_-prefixed environment variables.
type Settings struct {
	// LogLevel is the global zerolog level ("debug", "info", ...).
	// Env: SMOKER_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// ConfigFiles lists the JSON configuration files to layer, in merge
	// order (later files override earlier ones).
	// Env: SMOKER_CONFIG_FILES (comma-separated)
	ConfigFiles []string `env:"CONFIG_FILES" envSeparator:","`

	// AWSRegion selects the region for the SSM/S3 fetchers and the AWS
	// clients when the per-client configuration does not name one.
	// Env: SMOKER_AWS_REGION
	AWSRegion string `env:"AWS_REGION"`

	// PollTimeout is the default deadline for wait-for operations.
	// Env: SMOKER_POLL_TIMEOUT
	PollTimeout time.Duration `env:"POLL_TIMEOUT" envDefault:"30s"`

	// PollInterval is the default delay between polls.
	// Env: SMOKER_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"2s"`
}

// LoadSettings populates Settings from the environment.
func LoadSettings() (*Settings, error) {
	cfg := &Settings{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "SMOKER_"}); err != nil {
		return nil, fmt.Errorf("error getting env settings: %w", err)
	}
	return cfg, nil
}

// Loader assembles the raw configuration tree from layered sources.
// Sources are merged in the order they are added, later layers overriding
// earlier non-empty values. Errors are accumulated and reported once by
// Build, so calls chain fluently.
type Loader struct {
	trees []map[string]any
	err   error
}

// NewLoader returns an empty Loader.
func NewLoader() *Loader {
	return &Loader{trees: make([]map[string]any, 0, 4)}
}

// WithFile reads and decodes a JSON configuration file as the next layer.
func (l *Loader) WithFile(path string) *Loader {
	f, err := os.Open(path)
	if err != nil {
		l.err = errors.Join(l.err, fmt.Errorf("error reading config file %q: %w", path, err))
		return l
	}
	defer f.Close()

	var tree map[string]any
	if err := json.NewDecoder(f).Decode(&tree); err != nil {
		l.err = errors.Join(l.err, fmt.Errorf("error decoding config file %q: %w", path, err))
		return l
	}
	l.trees = append(l.trees, tree)
	return l
}

// WithFiles adds every path in order.
func (l *Loader) WithFiles(paths []string) *Loader {
	for _, p := range paths {
		l.WithFile(p)
	}
	return l
}

// WithTree adds a programmatic layer (e.g. test overrides). The tree is
// deep-copied so later caller mutations cannot leak into the build.
func (l *Loader) WithTree(tree map[string]any) *Loader {
	if tree != nil {
		l.trees = append(l.trees, DeepCopyMap(tree))
	}
	return l
}

// Build merges all layers into a single raw tree. The result is the input
// for Resolver.Resolve and then Registry.RegisterBulk.
func (l *Loader) Build() (map[string]any, error) {
	if l.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", l.err)
	}

	merged := map[string]any{}
	for _, tree := range l.trees {
		if err := mergo.Merge(&merged, tree, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}
	return merged, nil
}
