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

// Hirschberg implements Hirschberg's divide-and-conquer global alignment,
// which finds an alignment with the same minimum cost as Aligner
// while using only O(len(a)+len(b)) additional memory.
//
// Sequence A is split in half recursively. For each split,
// the costs of aligning the left half of A with all prefixes of B (forward scan)
// and the right half of A with all suffixes of B (backward scan) are computed
// with two rows, and B is split at the first position with the minimum sum.
// Subproblems with a sequence of one base are delegated to Aligner.
//
// Subproblems are subslices of the two input sequences, nothing is copied
// but the alignment strings. A Hirschberg is not safe for concurrent use.
type Hirschberg struct {
	Options *AlignOptions

	alg *Aligner // for the base cases

	// reusable score rows, shared by all the levels of the recursion,
	// as a split point is decided before the next level starts.
	fwd []int
	bwd []int
}

// NewHirschberg returns a Hirschberg aligner.
// Alignment strings are always saved, and options.SaveMatrix is ignored.
func NewHirschberg(options *AlignOptions) *Hirschberg {
	if options == nil {
		options = &DefaultAlignOptions
	}
	return &Hirschberg{
		Options: options,
		alg: &Aligner{
			Options: &AlignOptions{
				Costs:          options.Costs,
				SaveAlignments: true,
			},
			// a base case has 2 rows or 2 columns.
			scores:   make([]int, 1024),
			pointers: make([]Pointer, 1024),
		},
	}
}

// Align aligns two sequences with global alignment.
// Please remember to recycle the result after using
// by calling RecycleAlignResult.
func (h *Hirschberg) Align(a, b []byte) (*AlignResult, error) {
	if err := validatePair(a, b); err != nil {
		return nil, err
	}

	n := len(b) + 1
	if len(h.fwd) < n {
		h.fwd = make([]int, n)
		h.bwd = make([]int, n)
	}

	r := poolAlignResult.Get().(*AlignResult)
	r.Reset()

	cost, err := h.align(a, b, r)
	if err != nil {
		RecycleAlignResult(r)
		return nil, err
	}
	r.Cost = cost

	return r, nil
}

// align appends the alignment of a and b to r, and returns the cost.
func (h *Hirschberg) align(a, b []byte, r *AlignResult) (int, error) {
	m, n := len(a), len(b)
	cm := h.Options.costs()

	switch {
	case m == 0:
		for _, c := range b {
			r.AlignA = append(r.AlignA, GapChar)
			r.AlignB = append(r.AlignB, c)
			r.count(GapChar, c)
		}
		return n * cm.gap, nil
	case n == 0:
		for _, c := range a {
			r.AlignA = append(r.AlignA, c)
			r.AlignB = append(r.AlignB, GapChar)
			r.count(c, GapChar)
		}
		return m * cm.gap, nil
	case m == 1 || n == 1:
		return h.alg.global(a, b, r, true)
	}

	mid := m >> 1
	left := h.fwd[:n+1]
	right := h.bwd[:n+1]
	forwardRow(cm, a[:mid], b, left)
	backwardRow(cm, a[mid:], b, right)

	// the first minimum wins.
	split, min := 0, left[0]+right[0]
	var v int
	for k := 1; k <= n; k++ {
		if v = left[k] + right[k]; v < min {
			min, split = v, k
		}
	}

	c1, err := h.align(a[:mid], b[:split], r)
	if err != nil {
		return 0, err
	}
	c2, err := h.align(a[mid:], b[split:], r)
	if err != nil {
		return 0, err
	}

	return c1 + c2, nil
}
