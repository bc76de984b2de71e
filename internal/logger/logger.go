// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// go-pass-sync client.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Application code passes *Logger by pointer; a sync pass attaches its own
// child logger to the context with WithSyncID and downstream code obtains it
// via FromContext.
package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

func configureGlobals() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name() // return function name
	}
	zerolog.CallerFieldName = "func"
}

// NewLogger constructs a *Logger writing JSON to w for the given role label.
//
// The logger is configured with:
//   - global log level set to Debug;
//   - a "role" field set to role;
//   - a timestamp field on every entry;
//   - a "func" caller field holding the fully-qualified function name.
func NewLogger(role string, w io.Writer) *Logger {
	configureGlobals()

	logger := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// NewClientLogger constructs the client process logger. Entries are appended
// to a "logs" file next to the executable so that they do not interleave
// with the console status output; stdout is used when the file cannot be
// opened.
func NewClientLogger(role string) *Logger {
	var out io.Writer = os.Stdout

	execPath, err := os.Executable()
	if err == nil {
		logPath := filepath.Join(filepath.Dir(execPath), "logs")
		logFile, openErr := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if openErr == nil {
			out = logFile
		}
	}

	return NewLogger(role, out)
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithSyncID returns a context carrying a child of l tagged with the given
// sync pass identifier, together with that child logger.
func (l *Logger) WithSyncID(ctx context.Context, syncID string) (context.Context, *Logger) {
	child := l.With().Str("sync_id", syncID).Logger()
	return child.WithContext(ctx), &Logger{child}
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its default logger
// (disabled unless configured), so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// ForContext returns the logger attached to ctx by WithSyncID, or l itself
// when ctx carries none.
func (l *Logger) ForContext(ctx context.Context) *Logger {
	if zl := zerolog.Ctx(ctx); zl.GetLevel() != zerolog.Disabled {
		return &Logger{*zl}
	}
	return l
}
