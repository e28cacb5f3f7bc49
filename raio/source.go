/*
 * Copyright 2024 The ra Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package raio provides the byte-source abstraction used to load grammar
// and LZ-End parse files: a thin wrapper that prefers a memory-mapped,
// read-only view of the file (via golang.org/x/exp/mmap), falling back to a
// plain file handle when mapping fails. ReadAt reads from that view
// directly; Bytes, which the slg and lzend loaders use, copies the whole
// contents into a new heap slice.
package raio

import (
	"io"
	"os"

	"golang.org/x/exp/mmap"

	"github.com/textindex/ra/internal/xerrors"
)

// Source is a read-only, random-access byte source. It owns whatever
// resource backs it exclusively and is not safe for concurrent use during
// Close; concurrent ReadAt calls on an already-open Source are fine.
type Source struct {
	ra     io.ReaderAt
	closer io.Closer
	size   int64
}

// OpenFile opens path for random access, memory-mapping it when possible.
func OpenFile(path string) (*Source, error) {
	r, err := mmap.Open(path)
	if err != nil {
		// Fall back to a plain file handle (e.g. the path refers to a
		// pseudo-file that cannot be mmap'd, such as a pipe).
		f, ferr := os.Open(path)
		if ferr != nil {
			return nil, xerrors.Wrapf(err, "raio: open %q", path)
		}
		fi, serr := f.Stat()
		if serr != nil {
			f.Close()
			return nil, xerrors.Wrapf(serr, "raio: stat %q", path)
		}
		return &Source{ra: f, closer: f, size: fi.Size()}, nil
	}
	return &Source{ra: r, closer: r, size: int64(r.Len())}, nil
}

// FromReader buffers r fully into memory. Used for inputs that are not
// on-disk files (e.g. in tests, or data embedded in another stream).
func FromReader(r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, xerrors.Wrapf(err, "raio: read stream")
	}
	return FromBytes(data), nil
}

// FromBytes wraps an in-memory byte slice as a Source.
func FromBytes(data []byte) *Source {
	return &Source{ra: &bytesReaderAt{data}, size: int64(len(data))}
}

// Len returns the source's size in bytes.
func (s *Source) Len() int64 { return s.size }

// ReadAt implements io.ReaderAt.
func (s *Source) ReadAt(p []byte, off int64) (int, error) {
	return s.ra.ReadAt(p, off)
}

// Bytes returns the entire contents as a single slice, reading it fully if
// necessary. Callers that only need a one-shot decode (as every loader in
// this module does) can use this instead of juggling ReadAt offsets.
func (s *Source) Bytes() ([]byte, error) {
	buf := make([]byte, s.size)
	if _, err := io.ReadFull(io.NewSectionReader(s.ra, 0, s.size), buf); err != nil {
		return nil, xerrors.Wrapf(err, "raio: read %d bytes", s.size)
	}
	return buf, nil
}

// Close releases the underlying resource (unmaps the file, or closes the
// plain file handle). A Source backed by an in-memory slice has nothing to
// release and Close is a no-op.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return xerrors.Wrapf(s.closer.Close(), "raio: close")
}

type bytesReaderAt struct {
	data []byte
}

func (b *bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
