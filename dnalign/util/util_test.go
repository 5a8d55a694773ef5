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

package util

import (
	"testing"
)

func TestUniqInts(t *testing.T) {
	cases := []struct {
		list     []int
		expected []int
	}{
		{nil, nil},
		{[]int{1}, []int{1}},
		{[]int{3, 1, 2, 3, 1}, []int{1, 2, 3}},
		{[]int{5, 5, 5}, []int{5}},
		{[]int{1000, 10, 100}, []int{10, 100, 1000}},
	}
	for _, c := range cases {
		list := append([]int(nil), c.list...)
		UniqInts(&list)
		if len(list) != len(c.expected) {
			t.Errorf("expected %v, returned %v", c.expected, list)
			continue
		}
		for i := range list {
			if list[i] != c.expected[i] {
				t.Errorf("expected %v, returned %v", c.expected, list)
				break
			}
		}
	}
}

func TestDigest(t *testing.T) {
	a := []byte("ACGTACGT")
	if Digest(a) != Digest([]byte("ACGTACGT")) {
		t.Errorf("digests of identical sequences should be equal")
	}
	if Digest(a) == Digest([]byte("ACGTACGA")) {
		t.Errorf("digests of different sequences should not be equal")
	}
}
