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

// Package extension defines pluggable encodings for beatmap values that the
// vanilla file formats cannot express, such as fractional grid coordinates
// and free-form cut angles.
//
// A [Provider] bundles a coordinate transform and an angle transform under a
// name. Codecs select a provider by name from a [Registry]; when no provider
// is selected only the vanilla encodings apply.
//
// The package ships the "mapping-extensions" provider, which encodes
// precision placement as offsets beyond ±1000 and precision angles in the
// 1000..1360 and 2000..2360 cut-direction ranges.
//
//	reg := extension.Default()
//	p, err := reg.Lookup(extension.MappingExtensionsName)
//	if err != nil {
//	    return err
//	}
//	serial := p.Coordinates().Serialize(1.5) // 2500
package extension
