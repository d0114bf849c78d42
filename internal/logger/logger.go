// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog with the constructors and context helpers
// used across go-sync-ledger.
//
// Logger embeds zerolog.Logger, so the full zerolog API is available on
// *Logger. Request-scoped loggers travel through context and are recovered
// with FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger so helper methods can be added without
// shadowing the upstream API.
type Logger struct {
	zerolog.Logger
}

// NewLogger builds the JSON stdout logger for the given role label, for
// example "server" or "coordinator". Every entry carries the role, a
// timestamp and the fully qualified name of the calling function.
func NewLogger(role string) *Logger {
	return newLogger(role, os.Stdout)
}

// NewClientLogger builds a logger for a client instance that appends to the
// file at path. When path is empty or the file cannot be opened the logger
// falls back to stdout, so a read-only install directory never silences the
// client.
func NewClientLogger(role, path string) *Logger {
	if path != "" {
		if f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
			return newLogger(role, f)
		}
	}
	return newLogger(role, os.Stdout)
}

func newLogger(role string, out io.Writer) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}

	l := zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// Nop returns a logger that discards everything. Meant for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger inheriting the receiver's fields.
// Enriching the child leaves the parent untouched.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest recovers the logger attached to the request's context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext recovers the logger attached to ctx. When no logger was
// attached zerolog hands back its global logger, so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
