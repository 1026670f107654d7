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

// Package config loads layered configuration and binds it to structs.
//
// Sources are applied in order and later ones override earlier ones key by
// key, case-insensitively:
//
//	cfg := config.MustNew(
//	    config.WithFile("beatconv.yaml"),      // YAML, TOML or JSON by extension
//	    config.WithEnv("BEATCONV_"),           // BEATCONV_LOG__LEVEL -> log.level
//	    config.WithValues(map[string]any{"target": 3}),
//	    config.WithBinding(&settings),
//	)
//	if err := cfg.Load(ctx); err != nil { ... }
//
// Load merges the layers with dario.cat/mergo, validates the merged map
// against an optional JSON Schema, decodes it into the bound struct with
// github.com/go-viper/mapstructure/v2, fills zero fields from `default`
// tags and finally calls Validate when the struct implements [Validator].
//
// [Settings] and [LoadSettings] are the beatconv configuration built on top.
package config
