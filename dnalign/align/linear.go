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

// ScoreRow returns the minimum costs of aligning the whole a with
// every prefix of b, i.e., the last row of the cost table, where
// the j-th value is the cost of aligning a with b[:j].
// Only one row of the table is kept, so the memory is O(len(b)).
func ScoreRow(cm *CostMatrix, a, b []byte) ([]int, error) {
	if err := validatePair(a, b); err != nil {
		return nil, err
	}
	if cm == nil {
		cm = DefaultCostMatrix
	}
	row := make([]int, len(b)+1)
	forwardRow(cm, a, b, row)
	return row, nil
}

// forwardRow computes the last row of the cost table of a and b into row,
// which should have a length of len(b)+1.
// row[j] is the cost of aligning a with b[:j].
func forwardRow(cm *CostMatrix, a, b []byte, row []int) {
	gap := cm.gap
	n := len(b)

	var i, j int
	for j = 0; j <= n; j++ {
		row[j] = j * gap
	}

	// diag holds T[i-1][j-1], and row[j] holds T[i-1][j] before being updated.
	var diag, up, min, v int
	var sub *[4]int
	for i = 0; i < len(a); i++ {
		sub = &cm.sub[code[a[i]]]
		diag = row[0]
		row[0] += gap
		for j = 1; j <= n; j++ {
			up = row[j]
			min = diag + sub[code[b[j-1]]]
			if v = up + gap; v < min {
				min = v
			}
			if v = row[j-1] + gap; v < min {
				min = v
			}
			diag = up
			row[j] = min
		}
	}
}

// backwardRow is the mirror of forwardRow, it scans a and b from the ends.
// row[k] is the cost of aligning a with b[k:].
// The values equal these of forwardRow on reversed a and b, in reversed order,
// but no reversed copies are created.
func backwardRow(cm *CostMatrix, a, b []byte, row []int) {
	gap := cm.gap
	n := len(b)

	var i, k int
	for k = n; k >= 0; k-- {
		row[k] = (n - k) * gap
	}

	var diag, down, min, v int
	var sub *[4]int
	for i = len(a) - 1; i >= 0; i-- {
		sub = &cm.sub[code[a[i]]]
		diag = row[n]
		row[n] += gap
		for k = n - 1; k >= 0; k-- {
			down = row[k]
			min = diag + sub[code[b[k]]]
			if v = down + gap; v < min {
				min = v
			}
			if v = row[k+1] + gap; v < min {
				min = v
			}
			diag = down
			row[k] = min
		}
	}
}
