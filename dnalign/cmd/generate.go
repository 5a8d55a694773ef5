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

	"github.com/seqdp/dnalign/dnalign/align"
	"github.com/seqdp/dnalign/dnalign/cmd/seedfile"
	"github.com/seqdp/dnalign/dnalign/util"
	"github.com/shenwei356/bio/seq"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] INPUT",
	Short: "Generate the two sequences of a seed file in FASTA format",
	Long: `Generate the two sequences of a seed file in FASTA format

In each step, the current sequence is inserted into itself right after the
given 0-based index, so the final length is len(base) * 2^steps.

The header contains the length and a 64-bit wyhash digest of the sequence:
  >A len=16 digest=0123456789abcdef

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		seq.ValidateSeq = false

		if len(args) != 1 {
			checkError(fmt.Errorf("one input file needed"))
		}
		file := expandPath(args[0])
		checkInputFile(file)

		outFile := expandPath(getFlagString(cmd, "out-file"))
		lineWidth := getFlagNonNegativeInt(cmd, "line-width")

		closeLog := setupLog(opt, outFile)
		defer closeLog()
		outputLog := opt.Verbose || opt.Log2File

		in, err := seedfile.Read(file)
		checkError(err)
		if outputLog {
			log.Infof("seed file layout: %s", in.Layout)
		}

		outfh, gw, w, err := outStream(outFile, strings.HasSuffix(outFile, ".gz"), opt.CompressionLevel)
		checkError(err)

		for i, seed := range []*align.Seed{in.A, in.B} {
			s, err := seed.Expand()
			checkError(err)

			fseq, err := seq.NewSeq(seq.DNAredundant, s)
			checkError(err)

			fmt.Fprintf(outfh, ">%c len=%d digest=%016x\n", 'A'+i, len(s), util.Digest(s))
			outfh.Write(fseq.FormatSeq(lineWidth))
			outfh.WriteByte('\n')

			if outputLog {
				log.Infof("sequence %c: %d bases from a base of %d with %d steps", 'A'+i, len(s), len(seed.Base), len(seed.Indices))
			}
		}

		checkError(closeOutStream(outfh, gw, w))
	},
}

func init() {
	RootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("out-file", "o", "-",
		formatFlagUsage(`Out file, supports a ".gz" suffix ("-" for stdout).`))
	generateCmd.Flags().IntP("line-width", "w", 60,
		formatFlagUsage(`Line width of sequences (0 for no wrap).`))

	generateCmd.SetUsageTemplate(usageTemplate(""))
}
