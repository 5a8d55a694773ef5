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
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/seqdp/dnalign/dnalign/align"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
)

// costMatrixFile is the TOML layout of a cost matrix file.
type costMatrixFile struct {
	Gap      *int           `toml:"gap"`
	Mismatch map[string]int `toml:"mismatch"`
}

// readCostMatrix reads a cost matrix from a TOML file.
// The default cost matrix is returned for an empty file name.
func readCostMatrix(file string) (*align.CostMatrix, error) {
	if file == "" {
		return align.DefaultCostMatrix, nil
	}

	fh, err := xopen.Ropen(file)
	if err != nil {
		return nil, errors.Wrapf(err, "reading cost matrix file %s", file)
	}
	defer fh.Close()

	data, err := io.ReadAll(fh)
	if err != nil {
		return nil, errors.Wrapf(err, "reading cost matrix file %s", file)
	}

	return parseCostMatrix(data)
}

func parseCostMatrix(data []byte) (*align.CostMatrix, error) {
	var f costMatrixFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "parsing cost matrix")
	}
	if f.Gap == nil {
		return nil, errors.Wrap(align.ErrInvalidCostMatrix, "gap penalty missing")
	}
	if len(f.Mismatch) == 0 {
		return nil, errors.Wrap(align.ErrInvalidCostMatrix, "table [mismatch] missing")
	}

	mismatch := make(map[string]int, len(f.Mismatch))
	var key string
	for k, v := range f.Mismatch {
		key = strings.ToUpper(k)
		if _, ok := mismatch[key]; ok {
			return nil, errors.Wrapf(align.ErrInvalidCostMatrix, "duplicated base pair: %s", k)
		}
		mismatch[key] = v
	}

	return align.NewCostMatrix(mismatch, *f.Gap)
}

func writeCostMatrix(w io.Writer, cm *align.CostMatrix) error {
	gap := cm.Gap()
	data, err := toml.Marshal(&costMatrixFile{Gap: &gap, Mismatch: cm.Mismatch()})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

var costMatrixCmd = &cobra.Command{
	Use:   "cost-matrix",
	Short: "Print the cost matrix in TOML format",
	Long: `Print the cost matrix in TOML format

The output can be edited and passed to other commands via the global flag -c/--cost-matrix.
Only the six pairs of different bases are needed, e.g., AC and CA share the same cost.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		cm, err := readCostMatrix(opt.CostMatrixFile)
		checkError(err)

		outFile := expandPath(getFlagString(cmd, "out-file"))
		outfh, gw, w, err := outStream(outFile, strings.HasSuffix(outFile, ".gz"), opt.CompressionLevel)
		checkError(err)

		checkError(writeCostMatrix(outfh, cm))

		if getFlagBool(cmd, "table") {
			fmt.Fprintln(outfh)
			for _, line := range strings.Split(strings.TrimRight(cm.String(), "\n"), "\n") {
				fmt.Fprintf(outfh, "# %s\n", line)
			}
		}

		checkError(closeOutStream(outfh, gw, w))
	},
}

func init() {
	RootCmd.AddCommand(costMatrixCmd)

	costMatrixCmd.Flags().StringP("out-file", "o", "-",
		formatFlagUsage(`Out file ("-" for stdout).`))

	costMatrixCmd.Flags().BoolP("table", "t", false,
		formatFlagUsage(`Also print the full matrix as TOML comments.`))

	costMatrixCmd.SetUsageTemplate(usageTemplate(""))
}
