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

func TestGenerate(t *testing.T) {
	cases := []struct {
		base     string
		indices  []int
		expected string
	}{
		{"AC", []int{0}, "AACC"},
		{"AC", []int{1}, "ACAC"},
		{"AC", nil, "AC"},
		{"ACTG", []int{3}, "ACTGACTG"},
		{"ACTG", []int{3, 6}, "ACTGACTACTGACTGG"},
		{"", nil, ""},
	}
	for _, c := range cases {
		s, err := Generate([]byte(c.base), c.indices)
		require.NoError(t, err, c.base)
		assert.Equal(t, c.expected, string(s), "%s %v", c.base, c.indices)
		assert.Equal(t, naiveGenerate(c.base, c.indices), string(s))
	}
}

func TestGenerateNoAliasing(t *testing.T) {
	base := []byte("ACGT")
	s, err := Generate(base, nil)
	require.NoError(t, err)
	s[0] = 'T'
	assert.Equal(t, "ACGT", string(base), "the base should not be modified")
}

func TestGenerateLength(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 0; n < 200; n++ {
		base := randSeq(rng, 1+rng.Intn(8))
		steps := rng.Intn(8)
		indices := make([]int, steps)
		l := len(base)
		for i := range indices {
			indices[i] = rng.Intn(l)
			l <<= 1
		}

		s, err := Generate(base, indices)
		require.NoError(t, err)
		assert.Equal(t, len(base)<<steps, len(s))
		assert.Equal(t, naiveGenerate(string(base), indices), string(s))

		seed := &Seed{Base: base, Indices: indices}
		l, err = seed.Len()
		require.NoError(t, err)
		assert.Equal(t, len(s), l)

		s2, err := seed.Expand()
		require.NoError(t, err)
		assert.Equal(t, s, s2)
	}
}

func TestGenerateErrors(t *testing.T) {
	// indices are relative to the current sequence: "AC" -> "AACC" (4 bases)
	_, err := Generate([]byte("AC"), []int{0, 3})
	assert.NoError(t, err)

	bad := [][]int{
		{2},
		{-1},
		{0, 4},
		{0, 3, 8},
	}
	for _, indices := range bad {
		_, err = Generate([]byte("AC"), indices)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "%v", indices)
	}

	_, err = Generate(nil, []int{0})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = Generate([]byte("ACNT"), []int{0})
	assert.ErrorIs(t, err, ErrInvalidSymbol)

	_, err = (&Seed{Base: []byte("A"), Indices: make([]int, 70)}).Len()
	assert.ErrorIs(t, err, ErrSeqTooLong)
}
