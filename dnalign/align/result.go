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
	"strconv"
	"sync"
)

// AlignResult holds the details of an alignment.
type AlignResult struct {
	Cost       int // the minimum cost
	Len        int // length of alignment
	Matches    int // number of matches
	Mismatches int // number of substitutions
	Gaps       int // number of gaps

	// Alignment strings, gaps are represented with GapChar.
	//  AT_GTTAT
	//  || | ||
	//  ATCG_TAC
	AlignA []byte // alignment string for seq A
	AlignM []byte // matching symbols, "|" for match, " " for others
	AlignB []byte // alignment string for seq B

	Matrix []byte // matrix text, only for debugging
}

// Reset resets all the values.
func (r *AlignResult) Reset() {
	r.Cost = 0
	r.Len = 0
	r.Matches = 0
	r.Mismatches = 0
	r.Gaps = 0

	if r.AlignA != nil {
		r.AlignA = r.AlignA[:0]
	}
	if r.AlignM != nil {
		r.AlignM = r.AlignM[:0]
	}
	if r.AlignB != nil {
		r.AlignB = r.AlignB[:0]
	}
	r.Matrix = nil
}

var poolAlignResult = &sync.Pool{New: func() interface{} {
	r := &AlignResult{}
	r.AlignA = make([]byte, 0, 1024)
	r.AlignB = make([]byte, 0, 1024)
	r.AlignM = make([]byte, 0, 1024)
	return r
}}

// RecycleAlignResult recycles an alignment result.
func RecycleAlignResult(r *AlignResult) {
	if r != nil {
		poolAlignResult.Put(r)
	}
}

// Identity returns the percentage of matches in the alignment.
func (r *AlignResult) Identity() float64 {
	if r.Len == 0 {
		return 0
	}
	return float64(r.Matches) / float64(r.Len) * 100
}

// CIGAR returns the CIGAR string with extended operations of the alignment,
// where A is treated as the query and B as the reference:
// "=" for matches, "X" for mismatches, "I" for bases of A aligned to gaps,
// and "D" for bases of B aligned to gaps.
// It needs the alignment strings.
func (r *AlignResult) CIGAR() string {
	if len(r.AlignA) == 0 {
		return ""
	}

	var buf bytes.Buffer
	var op, prev byte
	var n int
	for i, a := range r.AlignA {
		switch b := r.AlignB[i]; {
		case a == GapChar:
			op = 'D'
		case b == GapChar:
			op = 'I'
		case a == b:
			op = '='
		default:
			op = 'X'
		}

		if op == prev {
			n++
			continue
		}
		if n > 0 {
			buf.WriteString(strconv.Itoa(n))
			buf.WriteByte(prev)
		}
		prev, n = op, 1
	}
	buf.WriteString(strconv.Itoa(n))
	buf.WriteByte(prev)

	return buf.String()
}

// count updates the counts and the matching line for a column.
func (r *AlignResult) count(a, b byte) {
	r.Len++
	switch {
	case a == GapChar || b == GapChar:
		r.Gaps++
		r.AlignM = append(r.AlignM, ' ')
	case a == b:
		r.Matches++
		r.AlignM = append(r.AlignM, '|')
	default:
		r.Mismatches++
		r.AlignM = append(r.AlignM, ' ')
	}
}
