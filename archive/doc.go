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

// Package archive converts whole maps between zipped archives and the
// version-independent model.
//
// A [Pipeline] reads the song metadata, decodes every difficulty concurrently
// and carries the remaining members (audio, cover art) through unchanged:
//
//	p := archive.MustNew(
//		archive.WithLogger(logger),
//		archive.WithCodecOptions(codec.WithExtensionsProvider("mapping-extensions")),
//	)
//	m, err := p.ImportFile(ctx, "song.zip")
//	if err != nil {
//		return err
//	}
//	err = p.ExportFile(ctx, "song-v4.zip", m, codec.V4)
//
// Import and Export fail as a whole: the first failing difficulty aborts the
// remaining work and the error names the archive member it came from, see
// [ImportError.Location]. Exported archives are deterministic; members are
// sorted and stamped with a fixed modification time.
package archive
