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

// Package numeric holds the small rounding and range helpers shared by the
// beatmap codecs.
package numeric

import "math"

// Round rounds x to the nearest integer, with halves rounded toward
// positive infinity. Round(-2.5) is -2, Round(2.5) is 3.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// RoundTo rounds x to the given number of decimal places using [Round].
func RoundTo(x float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return Round(x*p) / p
}

// Clamp limits x to the closed range [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Normalize linearly maps x from [inMin, inMax] onto [outMin, outMax].
// Values outside the input range are extrapolated.
func Normalize(x, inMin, inMax, outMin, outMax float64) float64 {
	return outMin + (x-inMin)*(outMax-outMin)/(inMax-inMin)
}

// Mod returns x modulo n in [0, n) for positive n.
func Mod(x, n float64) float64 {
	m := math.Mod(x, n)
	if m < 0 {
		m += n
	}
	return m
}

// IsInteger reports whether x has no fractional part.
func IsInteger(x float64) bool {
	return !math.IsInf(x, 0) && x == math.Trunc(x)
}

// InRange reports whether lo <= x <= hi.
func InRange(x, lo, hi float64) bool {
	return x >= lo && x <= hi
}
