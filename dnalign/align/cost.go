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
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

// Alphabet contains the four bases, in the order of rows/columns of a CostMatrix.
const Alphabet = "ACGT"

// GapChar is the gap symbol used in alignment strings.
const GapChar byte = '_'

// ErrInvalidSymbol means a symbol outside of the alphabet is found.
var ErrInvalidSymbol = errors.New("align: invalid symbol")

// ErrInvalidCostMatrix means the substitution costs or the gap penalty are invalid.
var ErrInvalidCostMatrix = errors.New("align: invalid cost matrix")

// code maps a base to its index in the cost matrix, -1 for other bytes.
// It's initialized in a function literal so DefaultCostMatrix can use it.
var code = func() (c [256]int8) {
	for i := range c {
		c[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		c[Alphabet[i]] = int8(i)
	}
	return c
}()

// CostMatrix holds the substitution costs of the four bases and the gap penalty.
// It is immutable after being created, so it can be shared by goroutines.
type CostMatrix struct {
	sub [4][4]int
	gap int
}

// DefaultCostMatrix is the default cost matrix with a gap penalty of 30.
//
//	     A    C    G    T
//	A    0  110   48   94
//	C  110    0  118   48
//	G   48  118    0  110
//	T   94   48  110    0
var DefaultCostMatrix = MustCostMatrix(map[string]int{
	"AC": 110,
	"AG": 48,
	"AT": 94,
	"CG": 118,
	"CT": 48,
	"GT": 110,
}, 30)

// NewCostMatrix creates a CostMatrix from mismatch costs of base pairs, e.g., "AC": 110.
// Each of the six unordered pairs must be given at least once. If both orders of a pair
// are given, the values must be equal. Pairs of identical bases, e.g., "AA", are
// allowed only with a value of 0.
func NewCostMatrix(mismatch map[string]int, gap int) (*CostMatrix, error) {
	if gap < 0 {
		return nil, errors.Wrapf(ErrInvalidCostMatrix, "negative gap penalty: %d", gap)
	}

	cm := &CostMatrix{gap: gap}
	var set [4][4]bool
	var x, y int8
	for pair, v := range mismatch {
		if len(pair) != 2 {
			return nil, errors.Wrapf(ErrInvalidCostMatrix, "invalid base pair: %q", pair)
		}
		x, y = code[pair[0]], code[pair[1]]
		if x < 0 || y < 0 {
			return nil, errors.Wrapf(ErrInvalidCostMatrix, "invalid base pair: %q", pair)
		}
		if v < 0 {
			return nil, errors.Wrapf(ErrInvalidCostMatrix, "negative cost for %s: %d", pair, v)
		}
		if x == y {
			if v != 0 {
				return nil, errors.Wrapf(ErrInvalidCostMatrix, "cost of identical bases %s should be 0: %d", pair, v)
			}
			continue
		}
		if set[y][x] && cm.sub[y][x] != v {
			return nil, errors.Wrapf(ErrInvalidCostMatrix, "asymmetric costs for %s: %d != %d", pair, v, cm.sub[y][x])
		}
		cm.sub[x][y] = v
		cm.sub[y][x] = v
		set[x][y] = true
	}

	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if !set[i][j] && !set[j][i] {
				return nil, errors.Wrapf(ErrInvalidCostMatrix, "missing cost for %c%c", Alphabet[i], Alphabet[j])
			}
		}
	}

	return cm, nil
}

// MustCostMatrix is like NewCostMatrix but panics on error.
func MustCostMatrix(mismatch map[string]int, gap int) *CostMatrix {
	cm, err := NewCostMatrix(mismatch, gap)
	if err != nil {
		panic(err)
	}
	return cm
}

// Gap returns the gap penalty.
func (cm *CostMatrix) Gap() int { return cm.gap }

// Substitution returns the cost of aligning base a with base b.
// Both should be valid bases (see Validate), or it panics.
func (cm *CostMatrix) Substitution(a, b byte) int {
	return cm.sub[code[a]][code[b]]
}

// Mismatch returns the costs of the six unordered base pairs, keyed like "AC".
func (cm *CostMatrix) Mismatch() map[string]int {
	m := make(map[string]int, 6)
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			m[string([]byte{Alphabet[i], Alphabet[j]})] = cm.sub[i][j]
		}
	}
	return m
}

// String returns the matrix in a table.
func (cm *CostMatrix) String() string {
	var buf bytes.Buffer
	buf.WriteString("   ")
	for i := 0; i < 4; i++ {
		fmt.Fprintf(&buf, " %4c", Alphabet[i])
	}
	buf.WriteByte('\n')
	for i := 0; i < 4; i++ {
		fmt.Fprintf(&buf, "%c  ", Alphabet[i])
		for j := 0; j < 4; j++ {
			fmt.Fprintf(&buf, " %4d", cm.sub[i][j])
		}
		buf.WriteByte('\n')
	}
	fmt.Fprintf(&buf, "gap: %d\n", cm.gap)
	return buf.String()
}

// Validate checks if all the symbols of s are in the alphabet.
func Validate(s []byte) error {
	for i, b := range s {
		if code[b] < 0 {
			return errors.Wrapf(ErrInvalidSymbol, "%q at position %d", b, i+1)
		}
	}
	return nil
}
