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

package sparsebit_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/textindex/ra/sparsebit"
)

func buildFromPositions(t *testing.T, n uint32, positions []uint32) *sparsebit.Bitmap {
	t.Helper()
	b := sparsebit.NewBuilder(n)
	for _, p := range positions {
		b.Set(p)
	}
	return b.Freeze()
}

func TestRankSelectBasic(t *testing.T) {
	bm := buildFromPositions(t, 10, []uint32{1, 3, 4, 8})

	require.Zero(t, bm.Rank1(0))
	require.EqualValues(t, 0, bm.Rank1(1))
	require.EqualValues(t, 1, bm.Rank1(2))
	require.EqualValues(t, 1, bm.Rank1(3))
	require.EqualValues(t, 2, bm.Rank1(4))
	require.EqualValues(t, 3, bm.Rank1(5))
	require.EqualValues(t, 3, bm.Rank1(8))
	require.EqualValues(t, 4, bm.Rank1(9))
	require.EqualValues(t, 4, bm.Rank1(10))

	p, err := bm.Select1(1)
	require.NoError(t, err)
	require.EqualValues(t, 1, p)

	p, err = bm.Select1(4)
	require.NoError(t, err)
	require.EqualValues(t, 8, p)

	_, err = bm.Select1(5)
	require.Error(t, err)
	_, err = bm.Select1(0)
	require.Error(t, err)
}

func TestEmptyBitmap(t *testing.T) {
	bm := buildFromPositions(t, 5, nil)
	require.Zero(t, bm.Count())
	require.Zero(t, bm.Rank1(5))
	_, err := bm.Select1(1)
	require.Error(t, err)
}

func TestRankMatchesBruteForce(t *testing.T) {
	const n = 200
	positions := []uint32{2, 5, 7, 7, 11, 50, 51, 52, 199}
	bm := buildFromPositions(t, n, positions)

	set := map[uint32]bool{}
	for _, p := range positions {
		set[p] = true
	}

	var count uint64
	for i := uint32(0); i <= n; i++ {
		require.Equal(t, count, bm.Rank1(i), "rank1(%d)", i)
		if i < n && set[i] {
			count++
		}
	}
}
