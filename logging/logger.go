// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"rivaas.dev/beatmap/telemetry/semconv"
)

// HandlerType selects how entries are rendered.
type HandlerType string

const (
	// JSONHandler writes one JSON object per entry.
	JSONHandler HandlerType = "json"
	// TextHandler writes logfmt-style key=value lines.
	TextHandler HandlerType = "text"
	// ConsoleHandler writes colored lines for terminals.
	ConsoleHandler HandlerType = "console"
)

// Level is a log level.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger is the structured logger of the conversion pipeline and CLI.
// All methods are safe for concurrent use.
type Logger struct {
	handlerType    HandlerType
	output         io.Writer
	level          slog.LevelVar
	serviceName    string
	serviceVersion string

	slogger *slog.Logger
	closed  atomic.Bool
}

// Option configures a [Logger].
type Option func(*Logger)

// New creates a Logger writing JSON to stderr at info level unless options
// say otherwise.
func New(opts ...Option) (*Logger, error) {
	l := &Logger{handlerType: JSONHandler, output: os.Stderr}
	l.level.Set(LevelInfo)
	for _, opt := range opts {
		opt(l)
	}

	if l.output == nil {
		return nil, fmt.Errorf("invalid configuration: %w", ErrNilOutput)
	}

	hopts := &slog.HandlerOptions{Level: &l.level}
	var h slog.Handler
	switch l.handlerType {
	case JSONHandler:
		h = slog.NewJSONHandler(l.output, hopts)
	case TextHandler:
		h = slog.NewTextHandler(l.output, hopts)
	case ConsoleHandler:
		h = newConsoleHandler(l.output, &l.level)
	default:
		return nil, fmt.Errorf("invalid configuration: %w: %q", ErrInvalidHandler, l.handlerType)
	}

	l.slogger = slog.New(h)
	if l.serviceName != "" {
		l.slogger = l.slogger.With(semconv.ServiceName, l.serviceName)
	}
	if l.serviceVersion != "" {
		l.slogger = l.slogger.With(semconv.ServiceVersion, l.serviceVersion)
	}
	return l, nil
}

// MustNew is like [New] but panics on error.
func MustNew(opts ...Option) *Logger {
	l, err := New(opts...)
	if err != nil {
		panic("logging: " + err.Error())
	}
	return l
}

// Noop returns a logger that discards everything.
func Noop() *Logger {
	return MustNew(WithOutput(io.Discard), WithLevel(LevelError+1))
}

// Logger returns the underlying slog.Logger.
func (l *Logger) Logger() *slog.Logger {
	return l.slogger
}

// With returns a slog.Logger carrying args on every entry.
func (l *Logger) With(args ...any) *slog.Logger {
	return l.slogger.With(args...)
}

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	if l.closed.Load() {
		return
	}
	l.slogger.Log(context.Background(), level, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(LevelError, msg, args...) }

// LogError logs err at error level. Errors that expose Code or Location,
// such as archive and codec failures, add them as separate keys so a failed
// conversion can be traced to the offending member and entity.
//
//	logger.LogError(err, "import failed", semconv.Archive, path)
func (l *Logger) LogError(err error, msg string, extra ...any) {
	attrs := []any{"error", err.Error()}

	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		attrs = append(attrs, "code", coded.Code())
	}
	var located interface{ Location() string }
	if errors.As(err, &located) && located.Location() != "" {
		attrs = append(attrs, "location", located.Location())
	}

	l.Error(msg, append(attrs, extra...)...)
}

// Shutdown stops logging; later entries are dropped.
func (l *Logger) Shutdown(context.Context) error {
	l.closed.Store(true)
	return nil
}

// SetLevel changes the minimum level of l and every logger derived from it.
func (l *Logger) SetLevel(level Level) {
	l.level.Set(level)
}

// Level returns the current minimum level.
func (l *Logger) Level() Level {
	return l.level.Level()
}

// ParseLevel accepts debug, info, warn or error. An empty string is info.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// ParseHandlerType accepts json, text or console.
func ParseHandlerType(s string) (HandlerType, error) {
	switch t := HandlerType(strings.ToLower(strings.TrimSpace(s))); t {
	case JSONHandler, TextHandler, ConsoleHandler:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidHandler, s)
}
