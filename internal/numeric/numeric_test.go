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

package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want float64
	}{
		{2.5, 3},
		{-2.5, -2},
		{1.25, 1},
		{-1.5, -1},
		{-1.51, -2},
		{0.49999, 0},
		{3999.5, 4000},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Round(tt.in), 0, "Round(%v)", tt.in)
	}
}

func TestRoundTo(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.235, RoundTo(1.2345, 3), 1e-12)
	assert.InDelta(t, 0.33, RoundTo(1.0/3.0, 2), 1e-12)
	assert.InDelta(t, -0.5, RoundTo(-0.5, 3), 1e-12)
}

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 3.0, Clamp(4, 0, 3), 0)
	assert.InDelta(t, 0.0, Clamp(-1, 0, 3), 0)
	assert.InDelta(t, 1.5, Clamp(1.5, 0, 3), 0)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 250.0, Normalize(1, 0, 2, 100, 400), 1e-9)
	assert.InDelta(t, 1000.0, Normalize(5, 0, 5, 0, 1000), 1e-9)
	assert.InDelta(t, 1.0, Normalize(250, 100, 400, 0, 2), 1e-9)
}

func TestMod(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 355.0, Mod(-5, 360), 0)
	assert.InDelta(t, 0.0, Mod(360, 360), 0)
	assert.InDelta(t, 10.0, Mod(730, 360), 0)
}

func TestIsInteger(t *testing.T) {
	t.Parallel()

	assert.True(t, IsInteger(3))
	assert.True(t, IsInteger(-1000))
	assert.False(t, IsInteger(1.25))
}
