// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/fabianopinto/smoker-sub003/internal/config"
	"github.com/fabianopinto/smoker-sub003/internal/harness"
	"github.com/fabianopinto/smoker-sub003/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.New("smoker")
	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting settings")
	}
	parseFlags(settings)

	if err := logger.SetLevel(settings.LogLevel); err != nil {
		log.Fatal().Err(err).Str("level", settings.LogLevel).Msg("invalid log level")
	}

	ctx := context.Background()
	h, err := harness.New(ctx, settings, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error assembling harness")
	}
	defer h.Close()

	// Constructing every configured client catches bad configuration
	// before any scenario runs.
	for key := range h.Registry.Entries() {
		clientType, id, _ := strings.Cut(key, ":")
		if _, err := h.Factory.Create(clientType, id); err != nil {
			log.Fatal().Err(err).Str("client", key).Msg("client construction failed")
		}
		log.Info().Str("client", key).Msg("client configuration ok")
	}

	log.Info().
		Strs("types", h.Factory.Types()).
		Int("configured", len(h.Registry.Entries())).
		Msg("harness ready")
}

// parseFlags overrides env-derived settings with command-line flags.
func parseFlags(settings *config.Settings) {
	var files string
	flag.StringVar(&settings.LogLevel, "log-level", settings.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&settings.AWSRegion, "region", settings.AWSRegion, "AWS region")
	flag.StringVar(&files, "c", "", "Comma-separated JSON config files")
	flag.StringVar(&files, "config", "", "Comma-separated JSON config files (alias)")
	flag.Parse()

	if files != "" {
		settings.ConfigFiles = strings.Split(files, ",")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
