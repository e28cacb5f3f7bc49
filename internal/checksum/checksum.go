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

// Package checksum appends and verifies a trailing xxhash64 checksum over a
// file body, the role badger's y.VerifyChecksum plays for value-log
// entries. grammar.Encode and lzend.EncodeParse append one of these as the
// last 8 bytes of the files they write; the matching decoders also accept
// files without it.
package checksum

import (
	"encoding/binary"

	"github.com/cespare/xxhash"

	"github.com/textindex/ra/internal/xerrors"
)

// Size is the width, in bytes, of the trailing checksum field.
const Size = 8

// Append returns body with its xxhash64 checksum appended as 8
// little-endian bytes.
func Append(body []byte) []byte {
	out := make([]byte, len(body)+Size)
	copy(out, body)
	binary.LittleEndian.PutUint64(out[len(body):], xxhash.Sum64(body))
	return out
}

// Split verifies data's trailing checksum and returns the body with the
// checksum stripped off. data must be at least Size bytes long.
func Split(data []byte) ([]byte, error) {
	if len(data) < Size {
		return nil, xerrors.Wrapf(xerrors.ErrFormat, "checksum: stream too short for trailing checksum")
	}
	body := data[:len(data)-Size]
	want := binary.LittleEndian.Uint64(data[len(body):])
	got := xxhash.Sum64(body)
	if got != want {
		return nil, xerrors.Wrapf(xerrors.ErrFormat, "checksum: mismatch: got %d, want %d", got, want)
	}
	return body, nil
}
