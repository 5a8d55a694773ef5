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

// Package align computes minimum-cost global alignments of DNA sequences
// with a substitution cost matrix and a linear gap penalty.
//
// Two algorithms are provided:
//
//   - Aligner: Needleman-Wunsch with the full cost table, O(mn) time and space.
//   - Hirschberg: divide and conquer, O(mn) time and O(m+n) space.
//
// Both return an alignment with the same minimum cost. Ties are broken
// in fixed orders, so the alignment strings are reproducible:
// diagonal > top > left in the traceback of Aligner, and the first
// minimum position when Hirschberg splits sequence B.
// Other orders would be equally optimal.
//
// Input sequences are generated from seeds with Generate, and
// only the bases A, C, G and T are accepted.
package align

// AlignQuadratic returns the minimum alignment cost of a and b with
// the default cost matrix, using the full cost table.
func AlignQuadratic(a, b []byte) (int, error) {
	return NewAligner(&DefaultAlignOptions).Cost(a, b)
}

// AlignQuadraticWithBacktrack aligns a and b with the full cost table
// and the default cost matrix, and returns the alignment strings and the cost.
func AlignQuadraticWithBacktrack(a, b []byte) ([]byte, []byte, int, error) {
	r, err := NewAligner(&DefaultAlignOptions).Global(a, b)
	if err != nil {
		return nil, nil, 0, err
	}
	defer RecycleAlignResult(r)
	return cloneBytes(r.AlignA), cloneBytes(r.AlignB), r.Cost, nil
}

// AlignLinear aligns a and b with Hirschberg's algorithm and the default
// cost matrix, and returns the alignment strings and the cost.
func AlignLinear(a, b []byte) ([]byte, []byte, int, error) {
	r, err := NewHirschberg(&DefaultAlignOptions).Align(a, b)
	if err != nil {
		return nil, nil, 0, err
	}
	defer RecycleAlignResult(r)
	return cloneBytes(r.AlignA), cloneBytes(r.AlignB), r.Cost, nil
}

// Verify recomputes the cost of an alignment with the default cost matrix.
func Verify(alignA, alignB []byte) (int, error) {
	return DefaultCostMatrix.Verify(alignA, alignB)
}

func cloneBytes(s []byte) []byte {
	return append(make([]byte, 0, len(s)), s...)
}
