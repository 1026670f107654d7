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

// Package errors turns beatmap import and export failures into a single
// user-facing document.
//
// Two formats are provided:
//   - RFC9457: RFC 9457 Problem Details (application/problem+json)
//   - Simple: a flat JSON object (application/json)
//
// Failures control the output by implementing optional interfaces:
//
//   - ErrorType: declare a status code
//   - ErrorDetails: expose structured details such as schema field errors
//   - ErrorCode: expose a machine-readable code
//
// The codec error types in rivaas.dev/beatmap/codec implement all three.
//
// # Quick Start
//
//	formatter := errors.NewRFC9457("https://rivaas.dev/beatmap/problems")
//	resp := formatter.Format("ExpertPlus.dat", err)
//	_ = resp.Encode(os.Stderr)
package errors
