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

// Package perm implements the permutation datatype from §3/§9: forward
// lookup in O(1) via a packed array, and inverse lookup in O(log n)
// amortized via a sparse shortcut bitvector plus a compact array of
// shortcut targets, rather than materializing a full inverse array.
package perm

import (
	"math/bits"

	"github.com/textindex/ra/internal/xerrors"
	"github.com/textindex/ra/packed"
	"github.com/textindex/ra/sparsebit"
)

// Permutation is an immutable bijection on [0, n) built from a forward
// array. Next is O(1); Previous walks forward from i to the nearest marked
// position (at most spacing steps), then forward again from that
// position's precomputed shortcut target (at most spacing-1 more steps),
// for a total bounded by 2*spacing = O(log n) array accesses.
type Permutation struct {
	n       int
	fwd     *packed.Array
	marked  *sparsebit.Bitmap
	targets *packed.Array
	spacing int
}

// spacingFor returns max(ceil(log2 n), 1), the shortcut spacing from §9.
func spacingFor(n int) int {
	if n <= 1 {
		return 1
	}
	s := bits.Len(uint(n - 1))
	if s < 1 {
		s = 1
	}
	return s
}

// Build constructs a Permutation from a forward mapping next[i] = π(i).
// next must be a bijection on [0, len(next)); anything else is a format
// violation.
func Build(next []uint32) (*Permutation, error) {
	n := len(next)
	if n == 0 {
		return &Permutation{}, nil
	}

	seen := make([]bool, n)
	for i, v := range next {
		if int(v) >= n {
			return nil, xerrors.Wrapf(xerrors.ErrFormat,
				"perm: entry %d maps to %d, out of range [0,%d)", i, v, n)
		}
		if seen[v] {
			return nil, xerrors.Wrapf(xerrors.ErrFormat,
				"perm: target %d referenced by more than one source, not a bijection", v)
		}
		seen[v] = true
	}

	spacing := spacingFor(n)

	visited := make([]bool, n)
	marked := make([]bool, n)
	shortcutOf := make([]uint32, n)
	cycleBuf := make([]uint32, 0, 64)

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		cycleBuf = cycleBuf[:0]
		cur := uint32(start)
		for !visited[cur] {
			visited[cur] = true
			cycleBuf = append(cycleBuf, cur)
			cur = next[cur]
		}
		l := len(cycleBuf)
		for k := 0; k < l; k += spacing {
			m := cycleBuf[k]
			marked[m] = true
			back := ((k-spacing)%l + l) % l
			shortcutOf[m] = cycleBuf[back]
		}
	}

	scBuilder := sparsebit.NewBuilder(uint32(n))
	var targetVals []uint32
	for i := 0; i < n; i++ {
		if marked[i] {
			scBuilder.Set(uint32(i))
			targetVals = append(targetVals, shortcutOf[i])
		}
	}
	sc := scBuilder.Freeze()

	width := packed.BitsFor(uint64(n - 1))
	fwd := packed.New(n, width)
	for i, v := range next {
		fwd.Set(i, uint64(v))
	}

	targets := packed.New(len(targetVals), width)
	for i, v := range targetVals {
		targets.Set(i, uint64(v))
	}

	return &Permutation{n: n, fwd: fwd, marked: sc, targets: targets, spacing: spacing}, nil
}

// Len returns the size of the permutation's domain.
func (p *Permutation) Len() int { return p.n }

// Next returns π(i), in O(1).
func (p *Permutation) Next(i uint32) uint32 {
	return uint32(p.fwd.Get(int(i)))
}

// Previous returns π⁻¹(i), in O(log n) amortized.
func (p *Permutation) Previous(i uint32) uint32 {
	j := i
	steps := 0
	for !p.marked.Get(j) {
		j = p.Next(j)
		steps++
	}
	rank := p.marked.Rank1(j + 1) // count of marks in [0,j], j included since marked
	base := uint32(p.targets.Get(int(rank - 1)))

	remaining := p.spacing - steps - 1
	result := base
	for t := 0; t < remaining; t++ {
		result = p.Next(result)
	}
	return result
}
