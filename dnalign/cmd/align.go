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
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shenwei356/bio/seq"
	"github.com/spf13/cobra"
)

var basicCmd = &cobra.Command{
	Use:   "basic [flags] INPUT [OUTPUT]",
	Short: "Align two generated sequences with the full cost table",
	Long: `Align two generated sequences with the full cost table

The Needleman-Wunsch algorithm fills the whole (m+1) x (n+1) cost table,
so the memory grows with the product of the two lengths.

Output:
  1. the minimum cost
  2. aligned sequence A    (-a/--alignment)
  3. aligned sequence B    (-a/--alignment)
  4. time in milliseconds  (-s/--stats)
  5. memory in KB          (-s/--stats)

`,
	Run: func(cmd *cobra.Command, args []string) {
		alignCommand(cmd, args, modeBasic,
			getFlagBool(cmd, "alignment"), getFlagBool(cmd, "stats"))
	},
}

var efficientCmd = &cobra.Command{
	Use:   "efficient [flags] INPUT [OUTPUT]",
	Short: "Align two generated sequences in linear space",
	Long: `Align two generated sequences in linear space

Hirschberg's divide and conquer algorithm splits the first sequence in half
recursively, and finds the split point of the second one with two rows of
costs, so the memory grows with the sum of the two lengths.
The cost is the same as the one of "dnalign basic".

Output:
  1. the minimum cost
  2. aligned sequence A
  3. aligned sequence B
  4. time in milliseconds  (off with -S/--no-stats)
  5. memory in KB          (off with -S/--no-stats)

`,
	Run: func(cmd *cobra.Command, args []string) {
		alignCommand(cmd, args, modeEfficient,
			true, !getFlagBool(cmd, "no-stats"))
	},
}

func init() {
	RootCmd.AddCommand(basicCmd)
	RootCmd.AddCommand(efficientCmd)

	for _, c := range []*cobra.Command{basicCmd, efficientCmd} {
		c.Flags().StringP("out-file", "o", "-",
			formatFlagUsage(`Out file, supports a ".gz" suffix ("-" for stdout). It's overridden by the positional OUTPUT.`))
		c.Flags().BoolP("fasta", "", false,
			formatFlagUsage(`The input is a FASTA/Q file, and the first two sequences are aligned.`))
		c.SetUsageTemplate(usageTemplate(""))
	}

	basicCmd.Flags().BoolP("alignment", "a", false,
		formatFlagUsage(`Output the alignment via backtracking.`))
	basicCmd.Flags().BoolP("stats", "s", false,
		formatFlagUsage(`Output time and memory.`))

	efficientCmd.Flags().BoolP("no-stats", "S", false,
		formatFlagUsage(`Do not output time and memory.`))
}

func alignCommand(cmd *cobra.Command, args []string, mode alignMode, withAlignment, withStats bool) {
	opt := getOptions(cmd)
	seq.ValidateSeq = false

	if len(args) < 1 || len(args) > 2 {
		checkError(fmt.Errorf("one input file and an optional output file needed"))
	}
	file := expandPath(args[0])
	checkInputFile(file)

	outFile := getFlagString(cmd, "out-file")
	if len(args) == 2 {
		outFile = args[1]
	}
	outFile = expandPath(outFile)

	closeLog := setupLog(opt, outFile)
	defer closeLog()
	outputLog := opt.Verbose || opt.Log2File

	cm, err := readCostMatrix(opt.CostMatrixFile)
	checkError(err)

	a, b, err := readSequences(file, getFlagBool(cmd, "fasta"))
	checkError(err)
	if outputLog {
		log.Infof("sequence lengths: %s and %s", humanize.Comma(int64(len(a))), humanize.Comma(int64(len(b))))
	}

	rep, err := newAlignRunner(cm).run(a, b, mode, withAlignment)
	checkError(err)
	if outputLog {
		log.Infof("%s alignment: cost %d, in %s, peak heap growth: %s", mode, rep.Cost, rep.Elapsed, humanize.IBytes(rep.Memory))
		if rep.AlignA != nil {
			log.Infof("  alignment length: %s, matches: %s (%.2f%%), mismatches: %s, gaps: %s",
				humanize.Comma(int64(len(rep.AlignA))), humanize.Comma(int64(rep.Matches)), rep.Identity,
				humanize.Comma(int64(rep.Mismatches)), humanize.Comma(int64(rep.Gaps)))
		}
	}

	outfh, gw, w, err := outStream(outFile, strings.HasSuffix(outFile, ".gz"), opt.CompressionLevel)
	checkError(err)
	checkError(writeReport(outfh, rep, withAlignment, withStats))
	checkError(closeOutStream(outfh, gw, w))
}
