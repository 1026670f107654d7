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

package metrics

import (
	"context"
	"strings"
	"testing"
	"time"
)

// TestingRecorder returns a Prometheus-backed [Recorder] that is shut down
// with the test. Read what it recorded with [Text]:
//
//	r := metrics.TestingRecorder(t)
//	p := archive.MustNew(archive.WithMetrics(r))
//	// import something
//	assert.Contains(t, metrics.Text(t, r), "beatmap_entities_total")
func TestingRecorder(t testing.TB, opts ...Option) *Recorder {
	t.Helper()

	r, err := New(append([]Option{WithServiceName("beatconv-test")}, opts...)...)
	if err != nil {
		t.Fatalf("metrics: testing recorder: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.Shutdown(ctx); err != nil {
			t.Logf("metrics: testing recorder shutdown: %v", err)
		}
	})
	return r
}

// Text returns the Prometheus text exposition of r, failing the test when
// r has no registry.
func Text(t testing.TB, r *Recorder) string {
	t.Helper()

	var sb strings.Builder
	if err := r.WriteText(&sb); err != nil {
		t.Fatalf("metrics: %v", err)
	}
	return sb.String()
}
