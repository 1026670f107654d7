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

package tracing

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
	}{
		{"empty service", []Option{WithServiceName("")}},
		{"sample rate", []Option{WithSampleRate(1.5)}},
		{"two providers", []Option{WithNoop(), WithStdout(nil)}},
		{"two endpoints", []Option{WithOTLP("a:4317"), WithOTLPHTTP("http://b:4318")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.opts...)
			require.Error(t, err)
		})
	}
}

func TestParseProvider(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"noop", "stdout", "otlp", "otlp-http"} {
		p, err := ParseProvider(s)
		require.NoError(t, err)
		assert.Equal(t, Provider(s), p)
	}

	p, err := ParseProvider("")
	require.NoError(t, err)
	assert.Equal(t, NoopProvider, p)

	_, err = ParseProvider("zipkin")
	require.Error(t, err)
}

func TestTracer_Spans(t *testing.T) {
	t.Parallel()

	tracer, spans := TestingTracer(t)

	ctx, root := tracer.StartSpan(context.Background(), "beatmap.import", AttrArchive.String("song.zip"))
	assert.NotEmpty(t, TraceID(ctx))
	assert.NotEmpty(t, SpanID(ctx))

	_, child := tracer.StartSpan(ctx, "beatmap.difficulty", AttrDifficulty.String("Standard/Expert"))
	RecordCounts(child, map[string]int{"ColorNote": 12, "Obstacle": 2})
	tracer.Finish(child, errors.New("bad note"))
	tracer.Finish(root, nil)

	ended := spans.Ended()
	require.Len(t, ended, 2)

	assert.Equal(t, "beatmap.difficulty", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, root.SpanContext().SpanID(), ended[0].Parent().SpanID())
	assert.Contains(t, ended[0].Attributes(), attribute.Int("beatmap.count.ColorNote", 12))
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)

	assert.Equal(t, codes.Ok, ended[1].Status().Code)
	assert.Contains(t, ended[1].Attributes(), AttrArchive.String("song.zip"))
}

func TestTracer_Noop(t *testing.T) {
	t.Parallel()

	tracer := MustNew()
	t.Cleanup(func() { _ = tracer.Shutdown(context.Background()) })
	assert.Equal(t, NoopProvider, tracer.Provider())
	require.NoError(t, tracer.Start(context.Background()))

	ctx, span := tracer.StartSpan(context.Background(), "x")
	assert.NotEmpty(t, TraceID(ctx))
	tracer.Finish(span, nil)
	tracer.Finish(nil, nil)
}

func TestTracer_Stdout(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tracer := MustNew(WithStdout(&buf), WithServiceName("beatconv-test"))

	_, span := tracer.StartSpan(context.Background(), "beatmap.export")
	tracer.Finish(span, nil)
	require.NoError(t, tracer.Shutdown(context.Background()))

	assert.Contains(t, buf.String(), "beatmap.export")
	assert.Contains(t, buf.String(), "beatconv-test")
}

func TestTracer_OTLPDeferred(t *testing.T) {
	t.Parallel()

	tracer := MustNew(WithOTLPHTTP("http://localhost:4318/v1/traces"))
	assert.Equal(t, OTLPHTTPProvider, tracer.Provider())

	// spans are dropped until Start connects the exporter
	ctx, span := tracer.StartSpan(context.Background(), "x")
	assert.Empty(t, TraceID(ctx))
	tracer.Finish(span, nil)
}

func TestSplitEndpoint(t *testing.T) {
	t.Parallel()

	host, insecure := splitEndpoint("http://collector:4318/v1/traces")
	assert.Equal(t, "collector:4318", host)
	assert.True(t, insecure)

	host, insecure = splitEndpoint("https://collector:4318")
	assert.Equal(t, "collector:4318", host)
	assert.False(t, insecure)

	host, insecure = splitEndpoint("localhost:4317")
	assert.Equal(t, "localhost:4317", host)
	assert.True(t, insecure)
}

func TestTraceID_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, TraceID(context.Background()))
	assert.Empty(t, SpanID(context.Background()))
}
