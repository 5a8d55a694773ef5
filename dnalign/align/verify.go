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

import "github.com/pkg/errors"

// ErrLengthMismatch means the two alignment strings have different lengths.
var ErrLengthMismatch = errors.New("align: alignment strings of different lengths")

// Verify recomputes the cost of an alignment from the two alignment strings.
// A column with a gap costs the gap penalty, others cost the substitution cost.
func (cm *CostMatrix) Verify(alignA, alignB []byte) (int, error) {
	if len(alignA) != len(alignB) {
		return 0, errors.Wrapf(ErrLengthMismatch, "%d != %d", len(alignA), len(alignB))
	}

	var cost int
	var a, b byte
	for i := range alignA {
		a, b = alignA[i], alignB[i]
		if a == GapChar || b == GapChar {
			cost += cm.gap
			continue
		}
		if code[a] < 0 || code[b] < 0 {
			return 0, errors.Wrapf(ErrInvalidSymbol, "column %d: %q/%q", i+1, a, b)
		}
		cost += cm.sub[code[a]][code[b]]
	}
	return cost, nil
}
