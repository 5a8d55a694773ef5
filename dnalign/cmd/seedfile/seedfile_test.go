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

package seedfile

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestParse(t *testing.T) {
	cases := []struct {
		text   string
		layout Layout
		a, b   string
		ia, ib []int
	}{
		{"ACTG\n3\n6\n1\nTACG\n1\n2\n9\n", ImplicitLists, "ACTG", "TACG", []int{3, 6, 1}, []int{1, 2, 9}},
		{"ACTG\n3\n3\n6\n1\nTACG\n3\n1\n2\n9\n", ExplicitCounts, "ACTG", "TACG", []int{3, 6, 1}, []int{1, 2, 9}},
		{"  ACTG \n\n 1\n\nTACG\n", ImplicitLists, "ACTG", "TACG", []int{1}, nil},
		{"AC\nGT\n", ImplicitLists, "AC", "GT", nil, nil},
		{"AC\n0\nGT\n0\n", ExplicitCounts, "AC", "GT", []int{}, []int{}},
		{"AC\n-1\nGT\n", ImplicitLists, "AC", "GT", []int{-1}, nil},
	}

	for _, c := range cases {
		in, err := Parse(strings.Fields(c.text))
		if err != nil {
			t.Errorf("%q: %s", c.text, err)
			continue
		}
		if in.Layout != c.layout {
			t.Errorf("%q: expected layout %s, returned %s", c.text, c.layout, in.Layout)
		}
		if string(in.A.Base) != c.a || string(in.B.Base) != c.b {
			t.Errorf("%q: unexpected bases: %s, %s", c.text, in.A.Base, in.B.Base)
		}
		if !reflect.DeepEqual(in.A.Indices, c.ia) || !reflect.DeepEqual(in.B.Indices, c.ib) {
			t.Errorf("%q: unexpected indices: %v, %v", c.text, in.A.Indices, in.B.Indices)
		}
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(nil); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("expected ErrEmptyFile, returned %v", err)
	}
	if _, err := Parse([]string{"ACTG", "1", "2"}); !errors.Is(err, ErrMissingSeed) {
		t.Errorf("expected ErrMissingSeed, returned %v", err)
	}
	if _, err := Parse([]string{"ACTG", "1", "TACG", "2", "GGG"}); !errors.Is(err, ErrTrailingLines) {
		t.Errorf("expected ErrTrailingLines, returned %v", err)
	}
	// two complete seeds with explicit counts and one more line
	if _, err := Parse([]string{"ACTG", "1", "0", "TACG", "1", "2", "3"}); !errors.Is(err, ErrTrailingLines) {
		t.Errorf("expected ErrTrailingLines, returned %v", err)
	}
}

func TestReadAndWrite(t *testing.T) {
	dir := t.TempDir()

	for _, layout := range []Layout{ExplicitCounts, ImplicitLists} {
		in, err := Parse([]string{"ACTG", "3", "6", "1", "TACG", "1", "2", "9"})
		if err != nil {
			t.Error(err)
			return
		}
		in.Layout = layout

		var buf bytes.Buffer
		if err = Write(&buf, in); err != nil {
			t.Error(err)
			return
		}

		file := filepath.Join(dir, layout.String()+".txt")
		if err = os.WriteFile(file, buf.Bytes(), 0644); err != nil {
			t.Error(err)
			return
		}

		in2, err := Read(file)
		if err != nil {
			t.Error(err)
			return
		}
		if in2.Layout != layout {
			t.Errorf("expected layout %s, returned %s", layout, in2.Layout)
		}
		if !reflect.DeepEqual(in.A, in2.A) || !reflect.DeepEqual(in.B, in2.B) {
			t.Errorf("unexpected seeds: %v %v", in2.A, in2.B)
		}
	}
}
