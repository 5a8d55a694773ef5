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

package cmd

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/seqdp/dnalign/dnalign/align"
)

func TestCostMatrixTOML(t *testing.T) {
	var buf bytes.Buffer
	if err := writeCostMatrix(&buf, align.DefaultCostMatrix); err != nil {
		t.Fatalf("write: %s", err)
	}

	cm, err := parseCostMatrix(buf.Bytes())
	if err != nil {
		t.Fatalf("parse: %s\n%s", err, buf.String())
	}
	if cm.Gap() != align.DefaultCostMatrix.Gap() {
		t.Errorf("gap: %d != %d", cm.Gap(), align.DefaultCostMatrix.Gap())
	}
	for pair, v := range align.DefaultCostMatrix.Mismatch() {
		if got := cm.Substitution(pair[0], pair[1]); got != v {
			t.Errorf("%s: %d != %d", pair, got, v)
		}
	}
}

func TestParseCostMatrix(t *testing.T) {
	data := []byte(`gap = 5

[mismatch]
ac = 1
CA = 1
AG = 2
AT = 3
CG = 4
CT = 5
TG = 6
`)
	cm, err := parseCostMatrix(data)
	if err != nil {
		t.Fatalf("parse: %s", err)
	}
	if cm.Gap() != 5 {
		t.Errorf("gap: %d != 5", cm.Gap())
	}
	if cm.Substitution('G', 'T') != 6 || cm.Substitution('T', 'G') != 6 {
		t.Errorf("G-T: %d", cm.Substitution('G', 'T'))
	}
	if cm.Substitution('C', 'A') != 1 {
		t.Errorf("C-A: %d", cm.Substitution('C', 'A'))
	}
}

func TestParseCostMatrixErrors(t *testing.T) {
	invalid := []string{
		// no gap
		"[mismatch]\nAC=1\nAG=1\nAT=1\nCG=1\nCT=1\nGT=1\n",
		// no mismatch
		"gap = 1\n",
		// duplicated pairs
		"gap = 1\n[mismatch]\nAC=1\nac=1\nAG=1\nAT=1\nCG=1\nCT=1\nGT=1\n",
		// missing pairs
		"gap = 1\n[mismatch]\nAC=1\n",
		// invalid base
		"gap = 1\n[mismatch]\nAN=1\nAC=1\nAG=1\nAT=1\nCG=1\nCT=1\nGT=1\n",
		// negative gap
		"gap = -1\n[mismatch]\nAC=1\nAG=1\nAT=1\nCG=1\nCT=1\nGT=1\n",
	}
	for i, data := range invalid {
		_, err := parseCostMatrix([]byte(data))
		if !errors.Is(err, align.ErrInvalidCostMatrix) {
			t.Errorf("#%d: ErrInvalidCostMatrix expected, got: %v", i, err)
		}
	}

	if _, err := parseCostMatrix([]byte("gap = \n")); err == nil {
		t.Errorf("syntax error expected")
	}
}

func TestReadCostMatrixDefault(t *testing.T) {
	cm, err := readCostMatrix("")
	if err != nil {
		t.Fatal(err)
	}
	if cm != align.DefaultCostMatrix {
		t.Errorf("the default cost matrix expected")
	}
}
