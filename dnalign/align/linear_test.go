// Copyright © 2023-2024 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package align

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreRow(t *testing.T) {
	alg := NewAligner(nil)
	rng := rand.New(rand.NewSource(5))

	for n := 0; n < 200; n++ {
		a := randSeq(rng, rng.Intn(25))
		b := randSeq(rng, rng.Intn(25))

		row, err := ScoreRow(DefaultCostMatrix, a, b)
		require.NoError(t, err)
		require.Len(t, row, len(b)+1)

		// the last row of the full table
		w := len(b) + 1
		scores, _, err := alg.fill(a, b, false)
		require.NoError(t, err)
		assert.Equal(t, scores[idx(len(a), 0, w):idx(len(a), 0, w)+w], row, "%s vs %s", a, b)
	}
}

func TestBackwardRow(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	cm := DefaultCostMatrix

	for n := 0; n < 200; n++ {
		a := randSeq(rng, rng.Intn(25))
		b := randSeq(rng, rng.Intn(25))

		row := make([]int, len(b)+1)
		backwardRow(cm, a, b, row)

		row2 := make([]int, len(b)+1)
		forwardRow(cm, reversed(a), reversed(b), row2)

		for k := range row {
			assert.Equal(t, row2[len(b)-k], row[k], "%s vs %s, k=%d", a, b, k)
		}
	}
}

func TestScoreRowBoundaries(t *testing.T) {
	row, err := ScoreRow(nil, nil, []byte("ACGT"))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 30, 60, 90, 120}, row)

	row, err = ScoreRow(nil, []byte("ACG"), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{90}, row)

	_, err = ScoreRow(nil, []byte("ACGX"), nil)
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}
