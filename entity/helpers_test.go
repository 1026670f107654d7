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

package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"rivaas.dev/beatmap/codec"
	"rivaas.dev/beatmap/extension"
)

// raw round-trips v through JSON, the way a file reader would see it.
func raw(t *testing.T, v any) any {
	t.Helper()

	b, err := json.Marshal(v)
	require.NoError(t, err)

	var out any
	require.NoError(t, json.Unmarshal(b, &out))

	return out
}

func decodeJSON(t *testing.T, doc string) any {
	t.Helper()

	var out any
	require.NoError(t, json.Unmarshal([]byte(doc), &out))

	return out
}

func mappingExtensions() *codec.Options {
	return codec.MustOptions(codec.WithExtensionsProvider(extension.MappingExtensionsName))
}

func ptr[T any](v T) *T { return &v }
