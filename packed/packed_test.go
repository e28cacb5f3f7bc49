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

package packed

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitsFor(t *testing.T) {
	cases := []struct {
		max uint64
		w   uint
	}{
		{0, 1}, {1, 1}, {2, 2}, {3, 2}, {4, 3}, {255, 8}, {256, 9}, {1023, 10},
	}
	for _, c := range cases {
		require.Equal(t, c.w, BitsFor(c.max), "max=%d", c.max)
	}
}

func TestArrayGetSetRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, width := range []uint{1, 3, 7, 8, 17, 31, 32, 63, 64} {
		n := 500
		a := New(n, width)
		var max uint64
		if width == 64 {
			max = ^uint64(0)
		} else {
			max = (uint64(1) << width) - 1
		}
		want := make([]uint64, n)
		for i := 0; i < n; i++ {
			v := uint64(rng.Int63()) & max
			if width == 64 {
				v = rng.Uint64()
			}
			want[i] = v
			a.Set(i, v)
		}
		for i := 0; i < n; i++ {
			require.Equal(t, want[i], a.Get(i), "width=%d idx=%d", width, i)
		}
	}
}

func TestArrayLenWidth(t *testing.T) {
	a := New(10, 5)
	require.Equal(t, 10, a.Len())
	require.Equal(t, uint(5), a.Width())
}
