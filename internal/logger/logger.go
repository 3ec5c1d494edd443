// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fabiano Pinto

// Package logger provides a thin wrapper around zerolog.Logger with the
// convenience constructors and context helpers used throughout the harness.
//
// The Logger type embeds zerolog.Logger, so the full zerolog API (Debug,
// Info, Warn, Error, etc.) is available directly. Components receive a
// *Logger at construction time and derive child loggers enriched with
// component fields (client type, client id) from it.
package logger

import (
	"context"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger. Embedding the upstream
// type exposes its API while leaving room for harness-specific helpers.
type Logger struct {
	zerolog.Logger
}

// New constructs a *Logger for the given role label (e.g. "harness",
// "resolver", "client"). Output is JSON on stdout with a timestamp, the
// role field, and the calling function name under "func".
func New(role string) *Logger {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	l := zerolog.New(os.Stdout).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// SetLevel applies a global log level parsed from a string such as "debug"
// or "warn". Unknown values leave the level unchanged.
func SetLevel(level string) error {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(parsed)
	return nil
}

// Nop returns a *Logger that discards all output. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithClient returns a child logger carrying the client type and id fields.
func (l *Logger) WithClient(clientType, clientID string) *Logger {
	return &Logger{l.With().Str("client_type", clientType).Str("client_id", clientID).Logger()}
}

// GetChildLogger returns a new *Logger inheriting all fields of the
// receiver, ready to be enriched without affecting the parent.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromContext extracts the zerolog.Logger attached to ctx via zerolog's
// WithContext helper. zerolog falls back to its global logger, so this
// never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
