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

package lzend

import (
	"math"
	"sort"

	"github.com/textindex/ra/internal/xerrors"
	"github.com/textindex/ra/perm"
	"github.com/textindex/ra/sparsebit"
)

// Index is the succinct structure built over a parse: L holds each
// phrase's last character, B marks phrase-end positions in the text, S
// encodes source-start multiplicities, and P maps a phrase to the sorted
// rank of its own source-start among all phrases (§3's "LZ-End derived
// state"). It is built once and is immutable thereafter.
type Index struct {
	n uint64
	l []byte
	b *sparsebit.Bitmap
	s *sparsebit.Bitmap
	p *perm.Permutation
}

// NewIndex constructs an Index from a decoded parse.
func NewIndex(phrases []Phrase) (*Index, error) {
	k := len(phrases)
	if k == 0 {
		return &Index{}, nil
	}

	phraseEnd := make([]uint64, k)
	var n uint64
	for p, ph := range phrases {
		n += uint64(ph.Len)
		phraseEnd[p] = n - 1
	}
	// B and S are sparsebit.Bitmap, backed by a 32-bit roaring universe; a
	// text or bucket-space size beyond that silently wraps instead of
	// erroring, so it's rejected here rather than trusted to the casts below.
	if n+uint64(k) > math.MaxUint32 {
		return nil, xerrors.Wrapf(xerrors.ErrResource,
			"lzend: text length %d with %d phrases exceeds the 32-bit sparsebit universe", n, k)
	}

	bBuilder := sparsebit.NewBuilder(uint32(n))
	l := make([]byte, k)
	for p, ph := range phrases {
		l[p] = ph.C
		bBuilder.Set(uint32(phraseEnd[p]))
	}
	b := bBuilder.Freeze()

	srcStart := make([]uint64, k)
	for p, ph := range phrases {
		if ph.Len == 1 {
			srcStart[p] = 0 // sentinel "before T" (Open Question (a))
			continue
		}
		if ph.Link < 1 || int(ph.Link) > p {
			return nil, xerrors.Wrapf(xerrors.ErrFormat,
				"lzend: phrase %d link %d out of range [1,%d]", p, ph.Link, p)
		}
		endLink, err := b.Select1(ph.Link)
		if err != nil {
			return nil, xerrors.Wrapf(err, "lzend: phrase %d: resolve link", p)
		}
		if uint64(endLink)+2 < uint64(ph.Len) {
			return nil, xerrors.Wrapf(xerrors.ErrFormat,
				"lzend: phrase %d source would start before the beginning of T", p)
		}
		srcStart[p] = uint64(endLink) - uint64(ph.Len) + 2
	}

	order := make([]int, k)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return srcStart[order[i]] < srcStart[order[j]]
	})

	sBuilder := sparsebit.NewBuilder(uint32(n + uint64(k)))
	next := make([]uint32, k)
	cursor := uint64(0)
	idx := 0
	for t := uint64(0); t < n; t++ {
		for idx < k && srcStart[order[idx]] == t {
			p := order[idx]
			sBuilder.Set(uint32(cursor))
			next[p] = uint32(idx) // rank of p's own src_start among all phrases
			cursor++
			idx++
		}
		cursor++ // zero separator for this bucket
	}
	s := sBuilder.Freeze()

	pp, err := perm.Build(next)
	if err != nil {
		return nil, xerrors.Wrapf(err, "lzend: build source permutation")
	}

	return &Index{n: n, l: l, b: b, s: s, p: pp}, nil
}

// SourceLength returns |T|.
func (idx *Index) SourceLength() uint64 { return idx.n }

// PhraseCount returns the number of phrases.
func (idx *Index) PhraseCount() int { return len(idx.l) }

// phraseContaining returns the 0-indexed phrase covering text position i.
func (idx *Index) phraseContaining(i uint64) uint32 {
	return uint32(idx.b.Rank1(uint32(i)))
}

// phraseStart returns the text position where phrase p begins.
func (idx *Index) phraseStart(p uint32) uint64 {
	if p == 0 {
		return 0
	}
	end, _ := idx.b.Select1(p) // 1-indexed p-th one = end(phrase p-1)
	return uint64(end) + 1
}

// phraseEnd returns the text position (inclusive) where phrase p ends.
func (idx *Index) phraseEnd(p uint32) uint64 {
	end, _ := idx.b.Select1(p + 1)
	return uint64(end)
}

// sourceStart returns the text position where phrase p's source begins,
// reconstructed from S and P rather than stored directly.
func (idx *Index) sourceStart(p uint32) uint64 {
	rank := idx.p.Next(p)
	bitPos, _ := idx.s.Select1(rank + 1)
	return uint64(bitPos) - uint64(rank)
}
