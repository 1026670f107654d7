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

package semconv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipelineKeysAreNamespaced(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		constant string
	}{
		{name: "Archive", constant: Archive},
		{name: "Version", constant: Version},
		{name: "Difficulty", constant: Difficulty},
		{name: "Member", constant: Member},
		{name: "ExtensionsProvider", constant: ExtensionsProvider},
		{name: "EventsSkipped", constant: EventsSkipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.True(t, strings.HasPrefix(tt.constant, "beatmap."), tt.constant)
		})
	}
}

func TestKeysAreUnique(t *testing.T) {
	t.Parallel()

	all := []string{
		ServiceName, ServiceVersion, TraceID, SpanID,
		Archive, Version, Difficulty, Member, ExtensionsProvider, EventsSkipped,
		Stage, DurationMs,
	}
	seen := map[string]bool{}
	for _, k := range all {
		assert.False(t, seen[k], "duplicate key %q", k)
		seen[k] = true
	}
}

func TestServiceKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "service.name", ServiceName)
	assert.Equal(t, "service.version", ServiceVersion)
	assert.NotEqual(t, ServiceVersion, Version, "build version and map version must not collide")
}
