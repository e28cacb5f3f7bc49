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

// Package packed implements a dense array of fixed-width unsigned integers,
// bit-packed into 64-bit words. It backs grammar rule storage and
// permutation entries so that in-memory size scales with
// ⌈log2(domain)⌉ rather than with a fixed 32 or 64 bits per entry.
package packed

import "github.com/textindex/ra/internal/xerrors"

// Array is a read/write array of n values, each width bits wide, 1 <= width <= 64.
type Array struct {
	words []uint64
	width uint
	n     int
}

// BitsFor returns the number of bits needed to store values in [0, max], i.e.
// ceil(log2(max+1)), with a floor of 1 bit so a width-0 array is never built.
func BitsFor(max uint64) uint {
	if max == 0 {
		return 1
	}
	w := uint(0)
	for (uint64(1) << w) <= max {
		w++
	}
	return w
}

// New allocates an Array of n entries, each of the given bit width.
func New(n int, width uint) *Array {
	xerrors.AssertTrue(width >= 1 && width <= 64, "packed: width %d out of range", width)
	xerrors.AssertTrue(n >= 0, "packed: negative length %d", n)
	nwords := (n*int(width) + 63) / 64
	return &Array{words: make([]uint64, nwords), width: width, n: n}
}

// Len returns the number of entries.
func (a *Array) Len() int { return a.n }

// Width returns the bit width of each entry.
func (a *Array) Width() uint { return a.width }

// Get returns the i-th entry.
func (a *Array) Get(i int) uint64 {
	xerrors.AssertTrue(i >= 0 && i < a.n, "packed: index %d out of range [0,%d)", i, a.n)
	return getBits(a.words, uint64(i)*uint64(a.width), a.width)
}

// Set stores v as the i-th entry. v must fit in Width() bits.
func (a *Array) Set(i int, v uint64) {
	xerrors.AssertTrue(i >= 0 && i < a.n, "packed: index %d out of range [0,%d)", i, a.n)
	if a.width < 64 {
		xerrors.AssertTrue(v < (uint64(1) << a.width), "packed: value %d does not fit in %d bits", v, a.width)
	}
	setBits(a.words, uint64(i)*uint64(a.width), a.width, v)
}

// getBits reads a `width`-bit value starting at bit offset `start` (bit 0 is
// the LSB of words[0]), possibly spanning two words.
func getBits(words []uint64, start uint64, width uint) uint64 {
	wordIdx := start / 64
	bitOff := start % 64
	lo := words[wordIdx] >> bitOff // top (bitOff) bits are already zero
	if bitOff+uint64(width) <= 64 {
		if width == 64 {
			return lo
		}
		return lo & ((uint64(1) << width) - 1)
	}
	// spans into the next word: take the remaining (width-(64-bitOff)) low
	// bits of the next word and place them above the bits already in lo.
	avail := 64 - bitOff
	rem := uint64(width) - avail
	hi := words[wordIdx+1] & ((uint64(1) << rem) - 1)
	return lo | (hi << avail)
}

func setBits(words []uint64, start uint64, width uint, v uint64) {
	wordIdx := start / 64
	bitOff := start % 64
	var mask uint64
	if width == 64 {
		mask = ^uint64(0)
	} else {
		mask = (uint64(1) << width) - 1
	}
	v &= mask

	words[wordIdx] &^= mask << bitOff
	words[wordIdx] |= v << bitOff

	if bitOff+uint64(width) > 64 {
		spill := bitOff + uint64(width) - 64
		words[wordIdx+1] &^= (uint64(1) << spill) - 1
		words[wordIdx+1] |= v >> (64 - bitOff)
	}
}
