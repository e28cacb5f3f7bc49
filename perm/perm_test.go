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

package perm_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/textindex/ra/perm"
)

func randomPermutation(rng *rand.Rand, n int) []uint32 {
	p := make([]uint32, n)
	for i := range p {
		p[i] = uint32(i)
	}
	rng.Shuffle(n, func(i, j int) { p[i], p[j] = p[j], p[i] })
	return p
}

// TestPermutationCorrectness exercises §8 property 7 across random
// permutations of varying size, including sizes that don't divide evenly
// by the shortcut spacing.
func TestPermutationCorrectness(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, n := range []int{1, 2, 3, 5, 8, 17, 64, 100, 257, 1000} {
		next := randomPermutation(rng, n)
		p, err := perm.Build(next)
		require.NoError(t, err)
		require.Equal(t, n, p.Len())

		for i := 0; i < n; i++ {
			ui := uint32(i)
			require.Equal(t, ui, p.Next(p.Previous(ui)), "next(previous(%d)), n=%d", i, n)
			require.Equal(t, ui, p.Previous(p.Next(ui)), "previous(next(%d)), n=%d", i, n)
		}
	}
}

func TestBuildEmptyPermutation(t *testing.T) {
	p, err := perm.Build(nil)
	require.NoError(t, err)
	require.Equal(t, 0, p.Len())
}

func TestBuildIdentityPermutation(t *testing.T) {
	n := 50
	next := make([]uint32, n)
	for i := range next {
		next[i] = uint32(i)
	}
	p, err := perm.Build(next)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.EqualValues(t, i, p.Next(uint32(i)))
		require.EqualValues(t, i, p.Previous(uint32(i)))
	}
}

func TestBuildRejectsOutOfRange(t *testing.T) {
	_, err := perm.Build([]uint32{0, 5})
	require.Error(t, err)
}

func TestBuildRejectsNonBijection(t *testing.T) {
	_, err := perm.Build([]uint32{0, 0})
	require.Error(t, err)
}

// TestSingleCycle exercises a cycle whose length is not a multiple of the
// shortcut spacing, an edge case in the cycle-wraparound shortcut math.
func TestSingleCycle(t *testing.T) {
	next := []uint32{1, 2, 0} // one 3-cycle; spacingFor(3) = 2, so the first mark's shortcut wraps
	p, err := perm.Build(next)
	require.NoError(t, err)
	for i := uint32(0); i < 3; i++ {
		require.Equal(t, i, p.Next(p.Previous(i)))
		require.Equal(t, i, p.Previous(p.Next(i)))
	}
}
