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
	"math"

	"github.com/pkg/errors"
)

// ErrIndexOutOfRange means an insertion index is out of range of the current sequence.
var ErrIndexOutOfRange = errors.New("align: insertion index out of range")

// ErrSeqTooLong means the generated sequence would be too long to be addressed.
var ErrSeqTooLong = errors.New("align: generated sequence too long")

// Seed is the compact description of a generated sequence:
// a base sequence and an ordered list of insertion indices.
type Seed struct {
	Base    []byte
	Indices []int
}

// Expand generates the full sequence of the seed.
func (s *Seed) Expand() ([]byte, error) {
	return Generate(s.Base, s.Indices)
}

// Len returns the length of the generated sequence without generating it.
func (s *Seed) Len() (int, error) {
	return generatedLen(len(s.Base), s.Indices)
}

// generatedLen checks the indices and returns the final length.
func generatedLen(n int, indices []int) (int, error) {
	for k, idx := range indices {
		if idx < 0 || idx >= n {
			return 0, errors.Wrapf(ErrIndexOutOfRange, "step %d: index %d not in [0, %d]", k+1, idx, n-1)
		}
		if n > math.MaxInt/2 {
			return 0, errors.Wrapf(ErrSeqTooLong, "step %d", k+1)
		}
		n <<= 1
	}
	return n, nil
}

// Generate expands the base sequence by inserting the current sequence into itself,
// right after each of the given indices in order:
//
//	s = s[:idx+1] + s + s[idx+1:]
//
// Every index is relative to the sequence produced by the previous steps,
// and it must be in the range of [0, len(s)-1]. So the length is doubled
// in each step, and the final length is len(base) * 2^len(indices).
//
// The returned sequence never shares memory with base.
func Generate(base []byte, indices []int) ([]byte, error) {
	if err := Validate(base); err != nil {
		return nil, err
	}

	// all indices are checked before allocating the final sequence.
	n, err := generatedLen(len(base), indices)
	if err != nil {
		return nil, err
	}

	s := make([]byte, n)
	copy(s, base)

	l := len(base) // length of the current sequence s[:l]
	var e int
	for _, idx := range indices {
		e = idx + 1
		copy(s[e+l:l<<1], s[e:l]) // move the tail
		copy(s[e:e+l], s[:l])     // insert the whole sequence, copy handles the overlap
		l <<= 1
	}

	return s, nil
}
