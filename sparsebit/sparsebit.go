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

// Package sparsebit provides a sparse rank/select bitvector over a fixed
// universe [0, n), backed by a roaring bitmap rather than a dense bit array
// so the O(k log(n/k)) space bound promised in §4.4 actually holds for
// bitvectors like B and S, whose 1-density is proportional to the number of
// phrases, not to n.
package sparsebit

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/textindex/ra/internal/xerrors"
)

// Bitmap is an immutable sparse bitvector with rank/select support.
// Construct one via Builder; per the "ownership of rank/select indices"
// design note, the acceleration is built once, as a value, and never
// rebuilt afterward.
type Bitmap struct {
	rb *roaring.Bitmap
	n  uint32
}

// Builder accumulates set positions before Freeze produces an immutable
// Bitmap.
type Builder struct {
	rb *roaring.Bitmap
	n  uint32
}

// NewBuilder starts a Builder over a universe of n positions.
func NewBuilder(n uint32) *Builder {
	return &Builder{rb: roaring.New(), n: n}
}

// Set marks position pos as a 1 bit.
func (b *Builder) Set(pos uint32) {
	xerrors.AssertTrue(pos < b.n, "sparsebit: position %d out of range [0,%d)", pos, b.n)
	b.rb.Add(pos)
}

// Freeze finalizes the bitmap, building its rank/select acceleration.
func (b *Builder) Freeze() *Bitmap {
	b.rb.RunOptimize()
	return &Bitmap{rb: b.rb, n: b.n}
}

// Len returns the universe size n.
func (b *Bitmap) Len() uint32 { return b.n }

// Get reports whether position i is a 1 bit.
func (b *Bitmap) Get(i uint32) bool { return b.rb.Contains(i) }

// Count returns the total number of 1 bits.
func (b *Bitmap) Count() uint64 { return b.rb.GetCardinality() }

// Rank1 returns the number of 1 bits in [0, i) — the GLOSSARY's rank1(B, i).
func (b *Bitmap) Rank1(i uint32) uint64 {
	if i == 0 {
		return 0
	}
	return b.rb.Rank(i - 1)
}

// Select1 returns the position of the k-th 1 bit, 1-indexed (the
// GLOSSARY's select1(B, k)). k must be >= 1 and <= Count(); otherwise an
// ErrLogical is returned.
func (b *Bitmap) Select1(k uint32) (uint32, error) {
	if k < 1 {
		return 0, xerrors.Wrapf(xerrors.ErrLogical, "sparsebit: select1 rank must be >= 1, got %d", k)
	}
	pos, err := b.rb.Select(k - 1)
	if err != nil {
		return 0, xerrors.Wrapf(xerrors.ErrLogical, "sparsebit: select1(%d): %v", k, err)
	}
	return pos, nil
}
