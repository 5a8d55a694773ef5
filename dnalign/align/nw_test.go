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
	"math/rand"
	"testing"

	"github.com/pkg/errors"
)

func TestGlobal(t *testing.T) {
	alg := NewAligner(&DefaultAlignOptions)

	cases := []struct {
		a, b           string
		cost           int
		alignA, alignB string
	}{
		// two gaps (60) are cheaper than a C/G substitution (118)
		{"AC", "AG", 60, "A_C", "AG_"},
		{"AAAA", "AAAA", 0, "AAAA", "AAAA"},
		{"", "ACG", 90, "___", "ACG"},
		{"ACG", "", 90, "ACG", "___"},
		{"", "", 0, "", ""},
		// a tie of top and left: the gap in B is preferred.
		{"A", "C", 60, "_A", "C_"},
		{"A", "G", 48, "A", "G"},
		{"ACGT", "AGT", 30, "ACGT", "A_GT"},
	}

	for _, c := range cases {
		r, err := alg.Global([]byte(c.a), []byte(c.b))
		if err != nil {
			t.Error(err)
			return
		}
		if r.Cost != c.cost {
			t.Errorf("%s vs %s: expected cost %d, returned %d", c.a, c.b, c.cost, r.Cost)
		}
		if string(r.AlignA) != c.alignA || string(r.AlignB) != c.alignB {
			t.Errorf("%s vs %s: expected\n%s\n%s\nreturned\n%s\n%s", c.a, c.b,
				c.alignA, c.alignB, r.AlignA, r.AlignB)
		}
		if r.Len != len(c.alignA) || len(r.AlignM) != r.Len {
			t.Errorf("%s vs %s: unexpected alignment length: %d", c.a, c.b, r.Len)
		}

		cost, err := alg.Cost([]byte(c.a), []byte(c.b))
		if err != nil {
			t.Error(err)
			return
		}
		if cost != c.cost {
			t.Errorf("%s vs %s: expected cost %d, returned %d", c.a, c.b, c.cost, cost)
		}

		RecycleAlignResult(r)
	}
}

func TestGlobalProperties(t *testing.T) {
	alg := NewAligner(&DefaultAlignOptions)
	rng := rand.New(rand.NewSource(2))

	var a, b []byte
	for n := 0; n < 300; n++ {
		a = randSeq(rng, rng.Intn(30))
		b = randSeq(rng, rng.Intn(30))

		r, err := alg.Global(a, b)
		if err != nil {
			t.Error(err)
			return
		}

		// self-consistency
		cost, err := Verify(r.AlignA, r.AlignB)
		if err != nil {
			t.Error(err)
			return
		}
		if cost != r.Cost {
			t.Errorf("%s vs %s: verified cost %d != %d", a, b, cost, r.Cost)
		}

		// gaps removed, the inputs are recovered
		if !bytes.Equal(ungap(r.AlignA), a) || !bytes.Equal(ungap(r.AlignB), b) {
			t.Errorf("%s vs %s: invalid alignment:\n%s\n%s", a, b, r.AlignA, r.AlignB)
		}

		if r.Matches+r.Mismatches+r.Gaps != r.Len {
			t.Errorf("%s vs %s: inconsistent counts", a, b)
		}

		// symmetry
		cost2, err := alg.Cost(b, a)
		if err != nil {
			t.Error(err)
			return
		}
		if cost2 != r.Cost {
			t.Errorf("%s vs %s: asymmetric cost %d != %d", a, b, cost2, r.Cost)
		}

		// identity
		cost, err = alg.Cost(a, a)
		if err != nil {
			t.Error(err)
			return
		}
		if cost != 0 {
			t.Errorf("%s vs itself: expected 0, returned %d", a, cost)
		}

		// an empty sequence
		cost, err = alg.Cost(nil, b)
		if err != nil {
			t.Error(err)
			return
		}
		if cost != len(b)*DefaultCostMatrix.Gap() {
			t.Errorf("empty vs %s: expected %d, returned %d", b, len(b)*DefaultCostMatrix.Gap(), cost)
		}

		RecycleAlignResult(r)
	}
}

func TestGlobalWithoutAlignments(t *testing.T) {
	alg := NewAligner(&AlignOptions{SaveAlignments: false})
	alg2 := NewAligner(&DefaultAlignOptions)
	rng := rand.New(rand.NewSource(3))

	for n := 0; n < 50; n++ {
		a := randSeq(rng, rng.Intn(40))
		b := randSeq(rng, rng.Intn(40))

		r, err := alg.Global(a, b)
		if err != nil {
			t.Error(err)
			return
		}
		r2, err := alg2.Global(a, b)
		if err != nil {
			t.Error(err)
			return
		}

		if len(r.AlignA) != 0 {
			t.Errorf("alignment strings should not be saved")
		}
		if r.Cost != r2.Cost || r.Len != r2.Len || r.Matches != r2.Matches ||
			r.Mismatches != r2.Mismatches || r.Gaps != r2.Gaps {
			t.Errorf("%s vs %s: different stats: %+v vs %+v", a, b, *r, *r2)
		}

		RecycleAlignResult(r)
		RecycleAlignResult(r2)
	}
}

func TestAlignerReuse(t *testing.T) {
	alg := NewAligner(nil)
	rng := rand.New(rand.NewSource(4))

	// the second pair needs tables larger than the initial ones
	for _, n := range []int{10, 400, 20} {
		a := randSeq(rng, n)
		b := randSeq(rng, n+3)

		cost, err := alg.Cost(a, b)
		if err != nil {
			t.Error(err)
			return
		}

		row, err := ScoreRow(nil, a, b)
		if err != nil {
			t.Error(err)
			return
		}
		if row[len(b)] != cost {
			t.Errorf("length %d: expected cost %d, returned %d", n, row[len(b)], cost)
		}
	}
}

func TestSaveMatrix(t *testing.T) {
	alg := NewAligner(&AlignOptions{SaveAlignments: true, SaveMatrix: true})
	r, err := alg.Global([]byte("ACG"), []byte("AG"))
	if err != nil {
		t.Error(err)
		return
	}
	lines := bytes.Split(bytes.TrimRight(r.Matrix, "\n"), []byte{'\n'})
	if len(lines) != 5 {
		t.Errorf("expected 5 lines, returned %d:\n%s", len(lines), r.Matrix)
	}
	RecycleAlignResult(r)
}

func TestGlobalInvalidSymbol(t *testing.T) {
	alg := NewAligner(nil)
	if _, err := alg.Global([]byte("ACGN"), []byte("ACG")); !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("expected ErrInvalidSymbol, returned %v", err)
	}
	if _, err := alg.Cost([]byte("ACG"), []byte("acg")); !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("expected ErrInvalidSymbol, returned %v", err)
	}
}

func TestCIGAR(t *testing.T) {
	r := &AlignResult{
		AlignA: []byte("ACG_TTA"),
		AlignB: []byte("ACGAT_C"),
	}
	if c := r.CIGAR(); c != "3=1D1=1I1X" {
		t.Errorf("unexpected CIGAR: %s", c)
	}
	if c := (&AlignResult{}).CIGAR(); c != "" {
		t.Errorf("unexpected CIGAR: %s", c)
	}
}
