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
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/seqdp/dnalign/dnalign/align"
	"github.com/seqdp/dnalign/dnalign/cmd/seedfile"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/xopen"
)

// alignMode is the algorithm to compute alignments.
type alignMode uint8

const (
	modeBasic     alignMode = iota // full table
	modeEfficient                  // Hirschberg
)

func (m alignMode) String() string {
	switch m {
	case modeBasic:
		return "basic"
	case modeEfficient:
		return "efficient"
	}
	return "unknown"
}

func parseAlignMode(s string) (alignMode, error) {
	switch strings.ToLower(s) {
	case "basic":
		return modeBasic, nil
	case "efficient":
		return modeEfficient, nil
	}
	return 0, fmt.Errorf(`invalid alignment mode: %s, available: "basic", "efficient"`, s)
}

// ErrCostNotVerified means the cost of an alignment is not equal to
// the cost recomputed from the alignment strings.
var ErrCostNotVerified = errors.New("alignment cost not verified")

// readSequences reads the two input sequences, from a seed file,
// or the first two records of a FASTA/Q file.
func readSequences(file string, fasta bool) ([]byte, []byte, error) {
	if fasta {
		return readFastxPair(file)
	}

	in, err := seedfile.Read(file)
	if err != nil {
		return nil, nil, err
	}
	a, err := in.A.Expand()
	if err != nil {
		return nil, nil, errors.Wrap(err, "generating the first sequence")
	}
	b, err := in.B.Expand()
	if err != nil {
		return nil, nil, errors.Wrap(err, "generating the second sequence")
	}
	return a, b, nil
}

func readFastxPair(file string) ([]byte, []byte, error) {
	fastxReader, err := fastx.NewReader(nil, file, "")
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading sequence file %s", file)
	}
	defer fastxReader.Close()

	seqs := make([][]byte, 0, 2)
	var record *fastx.Record
	for len(seqs) < 2 {
		record, err = fastxReader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, nil, errors.Wrapf(err, "reading sequence file %s", file)
		}
		// records are reused by the reader
		seqs = append(seqs, bytes.ToUpper(record.Seq.Seq))
	}
	if len(seqs) < 2 {
		return nil, nil, errors.Wrapf(seedfile.ErrMissingSeed, "%d sequence(s) in %s", len(seqs), file)
	}

	for i, s := range seqs {
		if err = align.Validate(s); err != nil {
			return nil, nil, errors.Wrapf(err, "sequence #%d in %s", i+1, file)
		}
	}
	return seqs[0], seqs[1], nil
}

// alignReport is the result of one alignment.
type alignReport struct {
	Mode alignMode

	LenA, LenB int

	Cost           int
	AlignA, AlignB []byte // nil if alignments are not computed

	Matches, Mismatches, Gaps int
	Identity                  float64 // percentage

	Elapsed time.Duration
	Memory  uint64 // bytes
}

// TimeMS returns the elapsed time in milliseconds.
func (r *alignReport) TimeMS() float64 {
	return float64(r.Elapsed) / float64(time.Millisecond)
}

// MemoryKB returns the memory in KB.
func (r *alignReport) MemoryKB() float64 {
	return float64(r.Memory) / 1024
}

// alignRunner aligns sequence pairs and reports the cost, time and memory.
// It is not safe for concurrent use.
type alignRunner struct {
	cm *align.CostMatrix

	alg *align.Aligner
	hb  *align.Hirschberg
}

func newAlignRunner(cm *align.CostMatrix) *alignRunner {
	opt := &align.AlignOptions{
		Costs:          cm,
		SaveAlignments: true,
	}
	return &alignRunner{
		cm:  cm,
		alg: align.NewAligner(opt),
		hb:  align.NewHirschberg(opt),
	}
}

// run aligns a and b. The Hirschberg mode always computes the alignment.
// The cost of an alignment is checked with the cost matrix.
func (r *alignRunner) run(a, b []byte, mode alignMode, withAlignment bool) (*alignReport, error) {
	rep := &alignReport{Mode: mode, LenA: len(a), LenB: len(b)}

	var res *align.AlignResult
	var err error

	sampler := startMemSampler(0)
	timeStart := time.Now()

	switch mode {
	case modeBasic:
		if withAlignment {
			res, err = r.alg.Global(a, b)
		} else {
			rep.Cost, err = r.alg.Cost(a, b)
		}
	case modeEfficient:
		res, err = r.hb.Align(a, b)
	default:
		err = fmt.Errorf("invalid alignment mode: %d", mode)
	}

	rep.Elapsed = time.Since(timeStart)
	rep.Memory = sampler.Stop()

	if err != nil {
		return nil, err
	}
	if res == nil {
		return rep, nil
	}
	defer align.RecycleAlignResult(res)

	rep.Cost = res.Cost
	rep.AlignA = append([]byte(nil), res.AlignA...)
	rep.AlignB = append([]byte(nil), res.AlignB...)
	rep.Matches, rep.Mismatches, rep.Gaps = res.Matches, res.Mismatches, res.Gaps
	rep.Identity = res.Identity()

	cost, err := r.cm.Verify(rep.AlignA, rep.AlignB)
	if err != nil {
		return nil, err
	}
	if cost != rep.Cost {
		return nil, errors.Wrapf(ErrCostNotVerified, "%s mode: %d != %d", mode, rep.Cost, cost)
	}

	return rep, nil
}

// writeReport writes a result file:
//
//	cost
//	alignment of A     (optional)
//	alignment of B     (optional)
//	time in ms         (optional)
//	memory in KB       (optional)
func writeReport(w io.Writer, rep *alignReport, withAlignment, withStats bool) error {
	var err error
	if _, err = fmt.Fprintf(w, "%d\n", rep.Cost); err != nil {
		return err
	}
	// alignment lines are written even if empty, so the stats lines stay at lines 4-5.
	if withAlignment {
		if _, err = fmt.Fprintf(w, "%s\n%s\n", rep.AlignA, rep.AlignB); err != nil {
			return err
		}
	}
	if withStats {
		if _, err = fmt.Fprintf(w, "%.3f\n%.3f\n", rep.TimeMS(), rep.MemoryKB()); err != nil {
			return err
		}
	}
	return nil
}

// ErrInvalidResultFile means the result file is malformed.
var ErrInvalidResultFile = errors.New("invalid result file")

// alignResultFile is the content of a result file.
type alignResultFile struct {
	Cost           int
	AlignA, AlignB []byte
}

func readResultFile(file string) (*alignResultFile, error) {
	fh, err := xopen.Ropen(file)
	if err != nil {
		return nil, errors.Wrapf(err, "reading result file %s", file)
	}
	defer fh.Close()

	lines := make([]string, 0, 5)
	scanner := bufio.NewScanner(fh)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<30)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading result file %s", file)
	}
	// empty alignment strings are kept, only trailing blank lines are removed
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return parseResultFile(lines)
}

func parseResultFile(lines []string) (*alignResultFile, error) {
	if len(lines) == 0 {
		return nil, errors.Wrap(ErrInvalidResultFile, "empty file")
	}
	cost, err := strconv.Atoi(lines[0])
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidResultFile, "invalid cost: %s", lines[0])
	}
	if cost == 0 && len(lines) == 1 {
		// two empty sequences
		return &alignResultFile{}, nil
	}
	if len(lines) < 3 {
		return nil, errors.Wrapf(ErrInvalidResultFile, "alignment strings missing, only %d line(s)", len(lines))
	}
	return &alignResultFile{
		Cost:   cost,
		AlignA: []byte(lines[1]),
		AlignB: []byte(lines[2]),
	}, nil
}

// ungap removes gaps in an alignment string.
func ungap(s []byte) []byte {
	t := make([]byte, 0, len(s))
	for _, c := range s {
		if c != align.GapChar {
			t = append(t, c)
		}
	}
	return t
}
