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

// Package seedfile reads and writes files of seed descriptions.
//
// A seed file contains two seeds, each with a base sequence and
// a list of insertion indices, one item per line. Two layouts are supported:
//
//	explicit counts       implicit lists
//	---------------       --------------
//	ACTG                  ACTG
//	3                     3
//	3                     6
//	6                     1
//	1                     TACG
//	TACG                  1
//	3                     2
//	1                     9
//	2
//	9
//
// The layout with explicit counts is tried first. Leading and trailing
// spaces are removed and blank lines are ignored.
package seedfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/seqdp/dnalign/dnalign/align"
	"github.com/shenwei356/xopen"
)

// Layout is the layout of a seed file.
type Layout uint8

const (
	// ExplicitCounts means a number of indices follows each base sequence.
	ExplicitCounts Layout = iota
	// ImplicitLists means indices follow each base sequence until the next non-integer line.
	ImplicitLists
)

func (l Layout) String() string {
	switch l {
	case ExplicitCounts:
		return "explicit counts"
	case ImplicitLists:
		return "implicit lists"
	}
	return "unknown"
}

// ErrEmptyFile means no data is found in a seed file.
var ErrEmptyFile = errors.New("seedfile: empty file")

// ErrMissingSeed means the second seed is missing.
var ErrMissingSeed = errors.New("seedfile: the second seed is missing")

// ErrTrailingLines means there are unexpected lines after the second seed.
var ErrTrailingLines = errors.New("seedfile: unexpected lines after the second seed")

// Input holds the two seeds of a seed file.
type Input struct {
	A, B   *align.Seed
	Layout Layout
}

// Read reads a seed file, plain or compressed. "-" is for stdin.
func Read(file string) (*Input, error) {
	fh, err := xopen.Ropen(file)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, 64)
	scanner := bufio.NewScanner(fh)
	scanner.Buffer(make([]byte, 0, 1<<16), 1<<30)
	var line string
	for scanner.Scan() {
		line = strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err = scanner.Err(); err != nil {
		fh.Close()
		return nil, errors.Wrap(err, file)
	}
	if err = fh.Close(); err != nil {
		return nil, err
	}

	in, err := Parse(lines)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	return in, nil
}

// Parse parses the non-blank and trimmed lines of a seed file.
func Parse(lines []string) (*Input, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyFile
	}

	if in, ok, err := parseExplicit(lines); ok {
		return in, err
	}
	return parseImplicit(lines)
}

// parseExplicit parses lines in the layout of explicit counts.
// It returns false if the lines do not fit the layout.
// Once both seeds fit the layout, extra lines are an error.
func parseExplicit(lines []string) (*Input, bool, error) {
	a, i, ok := explicitSeed(lines, 0)
	if !ok {
		return nil, false, nil
	}
	b, i, ok := explicitSeed(lines, i)
	if !ok {
		return nil, false, nil
	}
	if i < len(lines) {
		return nil, true, errors.Wrapf(ErrTrailingLines, "line %d: %s", i+1, lines[i])
	}
	return &Input{A: a, B: b, Layout: ExplicitCounts}, true, nil
}

// explicitSeed parses a seed from lines[i:], and returns the index of the next line.
func explicitSeed(lines []string, i int) (*align.Seed, int, bool) {
	if i+1 >= len(lines) || isInt(lines[i]) {
		return nil, 0, false
	}
	base := lines[i]
	n, err := strconv.Atoi(lines[i+1])
	if err != nil || n < 0 || i+2+n > len(lines) {
		return nil, 0, false
	}
	indices := make([]int, n)
	for k := range indices {
		if indices[k], err = strconv.Atoi(lines[i+2+k]); err != nil {
			return nil, 0, false
		}
	}
	return &align.Seed{Base: []byte(base), Indices: indices}, i + 2 + n, true
}

// parseImplicit parses lines in the layout of implicit lists.
func parseImplicit(lines []string) (*Input, error) {
	a, i := implicitSeed(lines, 0)
	if i >= len(lines) {
		return nil, ErrMissingSeed
	}
	b, i := implicitSeed(lines, i)
	if i < len(lines) {
		return nil, errors.Wrapf(ErrTrailingLines, "line %d: %s", i+1, lines[i])
	}
	return &Input{A: a, B: b, Layout: ImplicitLists}, nil
}

// implicitSeed parses a seed from lines[i:], and returns the index of the next line.
func implicitSeed(lines []string, i int) (*align.Seed, int) {
	s := &align.Seed{Base: []byte(lines[i])}
	var v int
	var err error
	for i++; i < len(lines); i++ {
		if v, err = strconv.Atoi(lines[i]); err != nil {
			break
		}
		s.Indices = append(s.Indices, v)
	}
	return s, i
}

func isInt(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// Write writes two seeds in the given layout.
func Write(w io.Writer, in *Input) error {
	for _, s := range []*align.Seed{in.A, in.B} {
		if _, err := fmt.Fprintf(w, "%s\n", s.Base); err != nil {
			return err
		}
		if in.Layout == ExplicitCounts {
			if _, err := fmt.Fprintf(w, "%d\n", len(s.Indices)); err != nil {
				return err
			}
		}
		for _, idx := range s.Indices {
			if _, err := fmt.Fprintf(w, "%d\n", idx); err != nil {
				return err
			}
		}
	}
	return nil
}
