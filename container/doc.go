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

// Package container assembles entity codecs into whole files: difficulty
// beatmaps, version 4 lightshows, song info metadata and version 4 audio
// data.
//
// Container documents are checked against their own schema before entities
// are extracted, and any entity failure aborts the whole document with an
// [*EntityError] naming the kind and index. Version 4 beatmaps store each
// entity as a placement object referencing a deduplicated data pool; equal
// payloads share one pool entry.
//
//	s, err := container.SerializeBeatmap(codec.V4, bm, opts)
//	if err != nil {
//	    return err
//	}
//	beatmapJSON, lightshowJSON, err := s.Encode()
package container
