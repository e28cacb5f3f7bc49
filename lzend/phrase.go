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

// Package lzend implements the LZ-End accessor from §4.4: it decodes a
// parse (a sequence of phrases, each a back-reference to a previous
// phrase boundary) into a succinct index of two sparse rank/select
// bitvectors and a permutation, then answers at/substr by following
// phrase back-references.
package lzend

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/textindex/ra/internal/checksum"
	"github.com/textindex/ra/internal/xerrors"
)

// Phrase is one LZ-End parse unit: c is the phrase's last character; for
// len > 1, link names the previous phrase whose end position coincides
// with the end of this phrase's source (1-indexed, matching the on-disk
// field directly usable as a select1(B, ·) argument — see DESIGN.md for
// why this reading, rather than a literal 0-indexed "+1" adjustment,
// reproduces spec.md's S4 scenario). link is unused when len == 1,
// regardless of its stored value (Open Question (a)).
type Phrase struct {
	C    byte
	Link uint32
	Len  uint32
}

const headerSize = 8

// DecodeParse reads the on-disk parse format (§4.4), the external
// interface §6 describes: an 8-byte header (char_width-1, int_width-1,
// each one byte, followed by six pad bytes), then a sequence of (c, link,
// len) triples using char_width and int_width bits respectively,
// little-endian byte order. Both widths must be multiples of 8 (Open
// Question (b)); anything else is a format violation. Decoding stops
// cleanly at EOF on a triple boundary. An empty input is treated as a
// parse of zero phrases.
//
// EncodeParse additionally wraps that stream in a trailing xxhash64
// checksum, a module-internal container (not part of §4.4) that
// round-trips through this package's own writer; DecodeParse verifies it
// when present but also accepts a bare §4.4 stream with no trailer, since
// §4.4 files built by other tools never carry one. Any input whose last 8
// bytes are not a matching checksum is decoded as a bare stream; a
// corrupted file is reported only if that decode itself fails.
func DecodeParse(r io.Reader) ([]Phrase, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, xerrors.Wrapf(xerrors.ErrIO, "lzend: read parse stream: %v", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	body, err := checksum.Split(data)
	if err != nil {
		// No valid trailing checksum: treat data as a bare §4.4 stream,
		// the format an external producer is specified to emit.
		body = data
	}

	br := bytes.NewReader(body)
	var header [headerSize]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, xerrors.Wrapf(xerrors.ErrIO, "lzend: read header: %v", err)
	}
	charWidth := int(header[0]) + 1
	intWidth := int(header[1]) + 1
	if charWidth%8 != 0 || intWidth%8 != 0 {
		return nil, xerrors.Wrapf(xerrors.ErrFormat,
			"lzend: char_width=%d int_width=%d must be multiples of 8", charWidth, intWidth)
	}
	charBytes, intBytes := charWidth/8, intWidth/8
	if charBytes > 8 || intBytes > 8 {
		return nil, xerrors.Wrapf(xerrors.ErrFormat,
			"lzend: char_width=%d int_width=%d exceed the 64-bit field this decoder supports", charWidth, intWidth)
	}

	var phrases []Phrase
	triple := make([]byte, charBytes+2*intBytes)
	for {
		n, err := io.ReadFull(br, triple)
		if err == io.EOF && n == 0 {
			break
		}
		if err != nil {
			return nil, xerrors.Wrapf(xerrors.ErrIO, "lzend: truncated phrase triple: %v", err)
		}
		c := readLEUint(triple[:charBytes])
		link := readLEUint(triple[charBytes : charBytes+intBytes])
		length := readLEUint(triple[charBytes+intBytes:])
		if length == 0 {
			return nil, xerrors.Wrapf(xerrors.ErrFormat, "lzend: phrase length must be >= 1")
		}
		phrases = append(phrases, Phrase{C: byte(c), Link: uint32(link), Len: uint32(length)})
	}
	return phrases, nil
}

func readLEUint(b []byte) uint64 {
	var buf [8]byte
	copy(buf[:], b)
	return binary.LittleEndian.Uint64(buf[:])
}

func writeLEUint(v uint64, nbytes int) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return buf[:nbytes]
}

// EncodeParse writes phrases in the on-disk format (§4.4), using
// charWidth/intWidth bits (both multiples of 8, <= 64) per field, wrapped
// in the trailing xxhash64 checksum container DecodeParse verifies at
// load time. The §4.4 stream itself is unchanged; the checksum is this
// package's own round-trip container, not a §4.4 field.
func EncodeParse(w io.Writer, phrases []Phrase, charWidth, intWidth int) error {
	if charWidth%8 != 0 || intWidth%8 != 0 {
		return xerrors.Wrapf(xerrors.ErrFormat, "lzend: widths must be multiples of 8")
	}
	charBytes, intBytes := charWidth/8, intWidth/8
	var body bytes.Buffer
	header := [headerSize]byte{byte(charWidth - 1), byte(intWidth - 1)}
	body.Write(header[:])
	for _, p := range phrases {
		body.Write(writeLEUint(uint64(p.C), charBytes))
		body.Write(writeLEUint(uint64(p.Link), intBytes))
		body.Write(writeLEUint(uint64(p.Len), intBytes))
	}
	_, err := w.Write(checksum.Append(body.Bytes()))
	return xerrors.Wrapf(err, "lzend: write parse stream")
}
