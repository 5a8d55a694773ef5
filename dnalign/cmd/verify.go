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
	"fmt"

	"github.com/pkg/errors"
	"github.com/seqdp/dnalign/dnalign/align"
	"github.com/shenwei356/bio/seq"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [flags] RESULT [RESULT...]",
	Short: "Verify the costs of alignments in result files",
	Long: `Verify the costs of alignments in result files

The cost of the alignment strings in lines 2 and 3 is recomputed with the cost
matrix and compared with the cost in line 1.

With -i/--input, removing gaps from the alignment strings should recover the
input sequences, and the cost should be the minimum one.

Output (tab-delimited):
  file, cost, status

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		seq.ValidateSeq = false

		if len(args) == 0 {
			checkError(fmt.Errorf("at least one result file needed"))
		}

		closeLog := setupLog(opt, "")
		defer closeLog()
		outputLog := opt.Verbose || opt.Log2File

		cm, err := readCostMatrix(opt.CostMatrixFile)
		checkError(err)

		var a, b []byte
		var optimal int
		input := expandPath(getFlagString(cmd, "input"))
		if input != "" {
			checkInputFile(input)
			a, b, err = readSequences(input, getFlagBool(cmd, "fasta"))
			checkError(err)

			rep, err := newAlignRunner(cm).run(a, b, modeEfficient, true)
			checkError(err)
			optimal = rep.Cost
			if outputLog {
				log.Infof("minimum cost of the input sequences: %d", optimal)
			}
		}

		var failed int
		for _, file := range args {
			file = expandPath(file)
			checkInputFile(file)

			cost, err := verifyResultFile(file, cm, a, b, input != "", optimal)
			if err != nil {
				failed++
				log.Warningf("%s: %s", file, err)
				fmt.Printf("%s\t%d\tfailed\n", file, cost)
				continue
			}
			fmt.Printf("%s\t%d\tok\n", file, cost)
		}

		if failed > 0 {
			checkError(fmt.Errorf("%d of %d result file(s) failed to pass the verification", failed, len(args)))
		}
		if outputLog {
			log.Infof("%d result file(s) verified", len(args))
		}
	},
}

// verifyResultFile returns the cost in the result file, and an error if it's not verified.
func verifyResultFile(file string, cm *align.CostMatrix, a, b []byte, checkInput bool, optimal int) (int, error) {
	res, err := readResultFile(file)
	if err != nil {
		return -1, err
	}

	cost, err := cm.Verify(res.AlignA, res.AlignB)
	if err != nil {
		return res.Cost, err
	}
	if cost != res.Cost {
		return res.Cost, errors.Wrapf(ErrCostNotVerified, "%d (file) != %d (recomputed)", res.Cost, cost)
	}

	if !checkInput {
		return cost, nil
	}
	if !bytes.Equal(ungap(res.AlignA), a) {
		return cost, fmt.Errorf("the first alignment string does not match the first input sequence")
	}
	if !bytes.Equal(ungap(res.AlignB), b) {
		return cost, fmt.Errorf("the second alignment string does not match the second input sequence")
	}
	if cost != optimal {
		return cost, fmt.Errorf("the cost is not the minimum one: %d > %d", cost, optimal)
	}
	return cost, nil
}

func init() {
	RootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringP("input", "i", "",
		formatFlagUsage(`Input file of the two sequences, a seed file by default.`))
	verifyCmd.Flags().BoolP("fasta", "", false,
		formatFlagUsage(`The input is a FASTA/Q file, and the first two sequences are used.`))

	verifyCmd.SetUsageTemplate(usageTemplate(""))
}
