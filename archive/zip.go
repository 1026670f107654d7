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

package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"time"
)

// modTime is stamped on every written member so equal input gives
// byte-identical archives.
var modTime = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// storedExt lists formats that are already compressed.
var storedExt = map[string]bool{
	".ogg": true, ".egg": true, ".mp3": true,
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

type reader struct {
	zr      *zip.Reader
	byName  map[string]*zip.File
	byLower map[string]*zip.File
	maxSize int64
}

func newReader(r io.ReaderAt, size, maxSize int64) (*reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	rd := &reader{
		zr:      zr,
		byName:  make(map[string]*zip.File, len(zr.File)),
		byLower: make(map[string]*zip.File, len(zr.File)),
		maxSize: maxSize,
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rd.byName[f.Name] = f
		rd.byLower[strings.ToLower(f.Name)] = f
	}
	return rd, nil
}

// lookup finds a member by exact name, then case-insensitively.
func (r *reader) lookup(name string) (*zip.File, bool) {
	if f, ok := r.byName[name]; ok {
		return f, true
	}
	f, ok := r.byLower[strings.ToLower(name)]
	return f, ok
}

func (r *reader) read(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > uint64(r.maxSize) {
		return nil, fmt.Errorf("%w: %d bytes", ErrMemberTooLarge, f.UncompressedSize64)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	// the header size can lie; enforce the limit on the stream too
	data, err := io.ReadAll(io.LimitReader(rc, r.maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > r.maxSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrMemberTooLarge, r.maxSize)
	}
	return data, nil
}

// names lists member names in archive order.
func (r *reader) names() []string {
	out := make([]string, 0, len(r.byName))
	for _, f := range r.zr.File {
		if _, ok := r.byName[f.Name]; ok {
			out = append(out, f.Name)
		}
	}
	return out
}

// writeZip writes members sorted by name with fixed timestamps.
func writeZip(w io.Writer, members map[string][]byte) error {
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	slices.Sort(names)

	zw := zip.NewWriter(w)
	for _, name := range names {
		method := zip.Deflate
		if storedExt[strings.ToLower(path.Ext(name))] {
			method = zip.Store
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method, Modified: modTime})
		if err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
		if _, err = fw.Write(members[name]); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return zw.Close()
}
