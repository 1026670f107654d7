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

//go:build !integration

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"rivaas.dev/beatmap/telemetry/semconv"
)

func jsonLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

type codedError struct{}

func (codedError) Error() string    { return "bad angle" }
func (codedError) Code() string     { return "invalid_angle" }
func (codedError) Location() string { return "ColorNote[2]" }

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"nil output", []Option{WithOutput(nil)}, ErrNilOutput},
		{"bad handler", []Option{WithHandlerType("xml")}, ErrInvalidHandler},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.opts...)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Panics(t, func() { MustNew(WithHandlerType("xml")) })
}

func TestLogger_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := MustNew(WithOutput(&buf), WithServiceName("beatconv"), WithServiceVersion("1.0.0"))

	l.Debug("hidden")
	l.Info("imported", "notes", 12)

	entries := jsonLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "imported", entries[0]["msg"])
	assert.Equal(t, "beatconv", entries[0][semconv.ServiceName])
	assert.Equal(t, "1.0.0", entries[0][semconv.ServiceVersion])
	assert.InDelta(t, 12.0, entries[0]["notes"], 0)
}

func TestLogger_LogError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := MustNew(WithOutput(&buf))

	l.LogError(codedError{}, "import failed", "archive", "song.zip")
	l.LogError(errors.New("plain"), "export failed")

	entries := jsonLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "bad angle", entries[0]["error"])
	assert.Equal(t, "invalid_angle", entries[0]["code"])
	assert.Equal(t, "ColorNote[2]", entries[0]["location"])
	assert.Equal(t, "song.zip", entries[0]["archive"])
	assert.NotContains(t, entries[1], "code")
}

func TestLogger_SetLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := MustNew(WithOutput(&buf), WithLevel(LevelWarn))
	l.Info("dropped")

	l.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, l.Level())
	l.Debug("kept")

	entries := jsonLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0]["msg"])
}

func TestLogger_Shutdown(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := MustNew(WithOutput(&buf))
	require.NoError(t, l.Shutdown(context.Background()))
	l.Error("after shutdown")
	assert.Empty(t, buf.String())
}

func TestConsoleHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := MustNew(WithOutput(&buf), WithHandlerType(ConsoleHandler), WithLevel(LevelDebug))

	l.With("archive", "song.zip").WithGroup("difficulty").Debug("decoded", "key", "Standard/Expert", "skipped", 0)

	out := buf.String()
	assert.Contains(t, out, "DEBU")
	assert.Contains(t, out, "decoded")
	assert.Contains(t, out, "archive="+ansiReset+"song.zip")
	assert.Contains(t, out, "difficulty.key="+ansiReset+"Standard/Expert")
	assert.Contains(t, out, "difficulty.skipped="+ansiReset+"0")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestConsoleHandler_Quotes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := MustNew(WithOutput(&buf), WithHandlerType(ConsoleHandler))
	l.Info("x", "name", "Drop Zone", "mapper", "")

	assert.Contains(t, buf.String(), `name=`+ansiReset+`"Drop Zone"`)
	assert.Contains(t, buf.String(), `mapper=`+ansiReset+`""`)
}

func TestConsoleHandler_SharesLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := MustNew(WithOutput(&buf), WithHandlerType(ConsoleHandler), WithLevel(LevelWarn))
	derived := l.With("archive", "song.zip")

	derived.Info("dropped")
	l.SetLevel(LevelInfo)
	derived.Info("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := MustNew(WithOutput(&buf), WithLevel(LevelDebug))

	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	ctx, span := tp.Tracer("test").Start(context.Background(), "import")
	defer span.End()

	cl := NewContextLogger(ctx, l)
	assert.Equal(t, span.SpanContext().TraceID().String(), cl.TraceID())
	assert.Equal(t, span.SpanContext().SpanID().String(), cl.SpanID())

	done := cl.Stage("deserialize", "key", "Standard/Hard")
	done()

	entries := jsonLines(t, &buf)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, cl.TraceID(), e[semconv.TraceID])
		assert.Equal(t, "deserialize", e["stage"])
	}
	assert.Equal(t, "stage finished", entries[1]["msg"])

	plain := NewContextLogger(context.Background(), l)
	assert.Empty(t, plain.TraceID())
}

func TestParse(t *testing.T) {
	t.Parallel()

	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, lvl)

	_, err = ParseLevel("loud")
	require.ErrorIs(t, err, ErrInvalidLevel)

	h, err := ParseHandlerType("console")
	require.NoError(t, err)
	assert.Equal(t, ConsoleHandler, h)

	_, err = ParseHandlerType("xml")
	require.ErrorIs(t, err, ErrInvalidHandler)
}

func TestNoop(t *testing.T) {
	t.Parallel()

	l := Noop()
	l.Error("nothing")
	assert.False(t, l.Logger().Enabled(context.Background(), LevelError))
}
