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
	"math"

	"github.com/pkg/errors"
)

// ErrTableTooLarge means the full cost table of two sequences can not be addressed.
var ErrTableTooLarge = errors.New("align: cost table too large")

// Pointer is for saving where the minimum cost of current position comes from.
type Pointer uint8

const (
	None Pointer = iota // No data, the topleft corner.
	Top                 // a base of A aligned to a gap
	Left                // a base of B aligned to a gap
	Mismatch
	Match
)

func (p Pointer) String() string {
	switch p {
	case Match:
		return "↘︎"
	case Mismatch:
		return "⇘"
	case Top:
		return "↓"
	case Left:
		return "→"
	case None:
		return "×"
	}
	return "■"
}

// Aligner implements the Needleman-Wunsch algorithm with a cost matrix,
// i.e., it finds a global alignment with the minimum cost.
//
// The full (m+1) x (n+1) cost table is kept, so it's only suitable
// for sequences whose table fits in the memory. An Aligner reuses
// its tables and is not safe for concurrent use.
type Aligner struct {
	Options *AlignOptions

	// reusable variables
	scores   []int        // cost table
	pointers []Pointer    // pointer table
	buf      bytes.Buffer // only for printing the table
}

// AlignOptions contains all alignment options.
type AlignOptions struct {
	Costs *CostMatrix // nil for DefaultCostMatrix

	// save alignment strings
	// AT_GTTAT
	// || | ||
	// ATCG_TAC
	SaveAlignments bool
	// save the table in the bytes buffer
	SaveMatrix bool
}

// DefaultAlignOptions is the default AlignOptions.
var DefaultAlignOptions = AlignOptions{
	Costs: DefaultCostMatrix,

	SaveAlignments: true,
	SaveMatrix:     false,
}

func (o *AlignOptions) costs() *CostMatrix {
	if o == nil || o.Costs == nil {
		return DefaultCostMatrix
	}
	return o.Costs
}

const initTableSize = 1 << 16

// NewAligner returns an aligner.
func NewAligner(options *AlignOptions) *Aligner {
	if options == nil {
		options = &DefaultAlignOptions
	}
	alg := &Aligner{
		Options:  options,
		scores:   make([]int, initTableSize),
		pointers: make([]Pointer, initTableSize),
	}
	return alg
}

// Cost returns the minimum alignment cost of a and b.
// The whole cost table is computed, but no traceback is performed.
func (alg *Aligner) Cost(a, b []byte) (int, error) {
	if err := validatePair(a, b); err != nil {
		return 0, err
	}
	w := len(b) + 1
	scores, _, err := alg.fill(a, b, false)
	if err != nil {
		return 0, err
	}
	return scores[idx(len(a), len(b), w)], nil
}

// Global aligns two sequences with global alignment.
// Ties in the traceback are broken in the order of
// diagonal (match/mismatch) > top (gap in B) > left (gap in A).
// Please remember to recycle the result after using
// by calling RecycleAlignResult.
func (alg *Aligner) Global(a, b []byte) (*AlignResult, error) {
	if err := validatePair(a, b); err != nil {
		return nil, err
	}

	r := poolAlignResult.Get().(*AlignResult)
	r.Reset()

	cost, err := alg.global(a, b, r, alg.Options.SaveAlignments)
	if err != nil {
		RecycleAlignResult(r)
		return nil, err
	}
	r.Cost = cost
	return r, nil
}

// global fills the table and appends the alignment of a and b to r.
// It returns the cost of the alignment, r.Cost is not touched.
func (alg *Aligner) global(a, b []byte, r *AlignResult, saveAlignments bool) (int, error) {
	scores, pointers, err := alg.fill(a, b, true)
	if err != nil {
		return 0, err
	}

	h := len(a) + 1 // height of the matrix
	w := len(b) + 1 // width of the matrix

	if alg.Options.SaveMatrix {
		r.Matrix = alg.printMatrix(a, b, scores, pointers)
	}

	i := h - 1
	j := w - 1
	cost := scores[idx(i, j, w)]

	var p Pointer

	if !saveAlignments {
		for p = pointers[idx(i, j, w)]; p != None; p = pointers[idx(i, j, w)] {
			r.Len++

			switch p {
			case Mismatch:
				r.Mismatches++
				i--
				j--
			case Match:
				r.Matches++
				i--
				j--
			case Top:
				r.Gaps++
				i--
			case Left:
				r.Gaps++
				j--
			}
		}

		return cost, nil
	}

	// the alignment is traced backward, then the new part is reversed.
	start := len(r.AlignA)

	for p = pointers[idx(i, j, w)]; p != None; p = pointers[idx(i, j, w)] {
		switch p {
		case Mismatch, Match:
			r.AlignA = append(r.AlignA, a[i-1])
			r.AlignB = append(r.AlignB, b[j-1])
			r.count(a[i-1], b[j-1])

			i--
			j--
		case Top:
			r.AlignA = append(r.AlignA, a[i-1])
			r.AlignB = append(r.AlignB, GapChar)
			r.count(a[i-1], GapChar)

			i--
		case Left:
			r.AlignA = append(r.AlignA, GapChar)
			r.AlignB = append(r.AlignB, b[j-1])
			r.count(GapChar, b[j-1])

			j--
		}
	}

	reverse(r.AlignA[start:])
	reverse(r.AlignB[start:])
	reverse(r.AlignM[start:])

	return cost, nil
}

// fill computes the cost table, and the pointer table if needed.
//
//	T[i][0] = i * gap
//	T[0][j] = j * gap
//	T[i][j] = min(T[i-1][j-1] + sub(a[i-1], b[j-1]),
//	              T[i-1][j] + gap,
//	              T[i][j-1] + gap)
//
// For equal values, the earlier one in the formula is recorded.
func (alg *Aligner) fill(a, b []byte, withPointers bool) ([]int, []Pointer, error) {
	h := len(a) + 1 // height of the matrix
	w := len(b) + 1 // width of the matrix

	if h > math.MaxInt/w {
		return nil, nil, errors.Wrapf(ErrTableTooLarge, "%d x %d", h, w)
	}

	// ---------------------------------------------------
	// initialize

	var i, j, k int

	n := h * w
	// use reusable score matrix
	var scores []int
	if n <= len(alg.scores) {
		scores = alg.scores[:n]
	} else {
		alg.scores = make([]int, n)
		scores = alg.scores
	}

	// use reusable pointer matrix
	var pointers []Pointer
	if withPointers {
		if n <= len(alg.pointers) {
			pointers = alg.pointers[:n]
		} else {
			alg.pointers = make([]Pointer, n)
			pointers = alg.pointers
		}
	}

	cm := alg.Options.costs()
	gap := cm.gap

	// topleft most cell
	scores[0] = 0
	// the first column
	for i = 1; i < h; i++ {
		scores[idx(i, 0, w)] = gap * i
	}
	// the first row
	for j = 1; j < w; j++ {
		scores[idx(0, j, w)] = gap * j
	}

	if withPointers {
		pointers[0] = None
		for i = 1; i < h; i++ {
			pointers[idx(i, 0, w)] = Top
		}
		for j = 1; j < w; j++ {
			pointers[idx(0, j, w)] = Left
		}
	}

	// ---------------------------------------------------
	// compute

	var min, sTop, sLeft int
	var p Pointer
	var ca byte
	var sub *[4]int
	for i = 1; i < h; i++ {
		ca = a[i-1]
		sub = &cm.sub[code[ca]]
		for j = 1; j < w; j++ {
			k = idx(i, j, w)

			min = scores[k-w-1] + sub[code[b[j-1]]]
			p = Mismatch
			if ca == b[j-1] {
				p = Match
			}
			sTop = scores[k-w] + gap
			sLeft = scores[k-1] + gap

			if sTop < min {
				min = sTop
				p = Top
			}
			if sLeft < min {
				min = sLeft
				p = Left
			}

			scores[k] = min
			if withPointers {
				pointers[k] = p
			}
		}
	}

	return scores, pointers, nil
}

func (alg *Aligner) printMatrix(a, b []byte, scores []int, pointers []Pointer) []byte {
	h := len(a) + 1
	w := len(b) + 1
	var i, j, k int
	buf := &alg.buf

	buf.Reset()

	// b
	buf.WriteString(fmt.Sprintf("%c  %s%-3s", ' ', " ", " "))
	for j = 0; j < len(b); j++ {
		buf.WriteString(fmt.Sprintf("  %s%4c", " ", b[j]))
	}
	buf.WriteByte('\n')

	for i = 0; i < h; i++ {
		if i == 0 {
			buf.WriteString(fmt.Sprintf("%c", ' '))
		} else {
			buf.WriteString(fmt.Sprintf("%c", a[i-1]))
		}

		for j = 0; j < w; j++ {
			k = idx(i, j, w)
			buf.WriteString(fmt.Sprintf("  %s%4d", pointers[k], scores[k]))
		}
		buf.WriteByte('\n')
	}

	// the buffer is reused, so a copy is returned.
	return append([]byte(nil), buf.Bytes()...)
}

func validatePair(a, b []byte) error {
	if err := Validate(a); err != nil {
		return errors.Wrap(err, "seq A")
	}
	if err := Validate(b); err != nil {
		return errors.Wrap(err, "seq B")
	}
	return nil
}

func idx(i, j, w int) int {
	return (i * w) + j
}

func reverse(s []byte) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
