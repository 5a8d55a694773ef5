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
	"github.com/twotwotwo/sorts/sortutil"
	"github.com/zeebo/wyhash"
)

// DigestSeed is the seed for Digest.
const DigestSeed uint64 = 1

// Digest returns a 64-bit hash value of a sequence,
// for checking if two generated sequences are identical.
func Digest(s []byte) uint64 {
	return wyhash.Hash(s, DigestSeed)
}

// UniqInts sorts a list of ints and removes duplicates.
func UniqInts(list *[]int) {
	if len(*list) == 0 || len(*list) == 1 {
		return
	}

	sortutil.Ints(*list)

	var i, j int
	var p, v int
	p = (*list)[0]
	j = 1
	for i = 1; i < len(*list); i++ {
		v = (*list)[i]
		if v == p {
			continue
		}
		(*list)[j] = v
		j++
		p = v
	}
	*list = (*list)[:j]
}
