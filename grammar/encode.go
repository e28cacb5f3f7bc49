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

package grammar

import (
	"io"

	"github.com/textindex/ra/bitio"
	"github.com/textindex/ra/internal/checksum"
	"github.com/textindex/ra/internal/xerrors"
)

// Encode writes g in the on-disk tuple format (§4.2), wrapped in the
// trailing xxhash64 checksum container Decode verifies at load time. The
// §4.2 stream itself is unchanged; the checksum is this package's own
// round-trip container, not a §4.2 field.
func (g *Grammar) Encode(w io.Writer) error {
	bw := bitio.NewWriter()
	if len(g.rules) == 0 {
		bw.WriteUint64(32, 0)
		bw.WriteUint64(32, 0)
		bw.WriteUint64(32, 0)
		_, err := w.Write(checksum.Append(bw.Finish()))
		return xerrors.Wrapf(err, "grammar: write tuple stream")
	}

	minLen, maxLen := g.rules[0].Len(), g.rules[0].Len()
	for _, r := range g.rules[1:] {
		if r.Len() < minLen {
			minLen = r.Len()
		}
		if r.Len() > maxLen {
			maxLen = r.Len()
		}
	}

	bw.WriteUint64(32, uint64(len(g.rules)))
	bw.WriteUint64(32, uint64(minLen))
	bw.WriteUint64(32, uint64(maxLen))

	for _, r := range g.rules {
		bw.WriteUint64(32, uint64(r.Len()-minLen))
		for i := 0; i < r.Len(); i++ {
			s := r.Symbol(i)
			if IsNonTerminal(s) {
				bw.WriteBit(1)
				bw.WriteUint64(32, uint64(RuleID(s)))
			} else {
				bw.WriteBit(0)
				bw.WriteUint64(8, uint64(Terminal(s)))
			}
		}
	}

	_, err := w.Write(checksum.Append(bw.Finish()))
	return xerrors.Wrapf(err, "grammar: write tuple stream")
}
