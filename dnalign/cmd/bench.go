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
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/seqdp/dnalign/dnalign/align"
	"github.com/seqdp/dnalign/dnalign/cmd/seedfile"
	"github.com/seqdp/dnalign/dnalign/util"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the two alignment modes with random seed files",
	Long: `Benchmark the two alignment modes with random seed files

For each number of steps (-k/--steps), a seed file with two random bases
of -b/--base-len and random insertion indices is generated, so both
sequences have len(base) * 2^steps bases. The two modes are run on each
input for -r/--repeats times, one by one, and the costs must be the same.

Output files in the output directory:
  inputs/steps-<k>.txt    seed files
  bench.tsv               mean and standard deviation of time and memory
  time.png                time versus problem size (m+n)
  memory.png              memory versus problem size (m+n)

The basic mode is skipped for tables with more cells than --max-basic-cells.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		outDir := expandPath(getFlagString(cmd, "out-dir"))
		if outDir == "" {
			checkError(fmt.Errorf("flag -O/--out-dir needed"))
		}
		force := getFlagBool(cmd, "force")
		baseLen := getFlagPositiveInt(cmd, "base-len")
		steps := getFlagNonNegativeIntSlice(cmd, "steps")
		if len(steps) == 0 {
			checkError(fmt.Errorf("flag -k/--steps needed"))
		}
		util.UniqInts(&steps)
		repeats := getFlagPositiveInt(cmd, "repeats")
		randSeed := getFlagInt64(cmd, "seed")
		maxCells := getFlagNonNegativeInt(cmd, "max-basic-cells")

		closeLog := setupLog(opt, "")
		defer closeLog()
		outputLog := opt.Verbose || opt.Log2File

		timeStart := time.Now()
		defer func() {
			if outputLog {
				log.Info()
				log.Infof("elapsed time: %s", time.Since(timeStart))
				log.Info()
			}
		}()

		cm, err := readCostMatrix(opt.CostMatrixFile)
		checkError(err)

		makeOutDir(outDir, force, "output directory", opt.Verbose)

		// inputs

		rng := rand.New(rand.NewSource(randSeed))
		cases := make([]*benchCase, 0, len(steps))
		var nJobs int
		for _, k := range steps {
			c, err := newBenchCase(rng, baseLen, k)
			checkError(err)

			file := filepath.Join(outDir, "inputs", fmt.Sprintf("steps-%d.txt", k))
			outfh, gw, w, err := outStream(file, false, opt.CompressionLevel)
			checkError(err)
			checkError(seedfile.Write(outfh, c.input))
			checkError(closeOutStream(outfh, gw, w))

			c.basic = maxCells == 0 || (len(c.a)+1) <= maxCells/(len(c.b)+1)
			if c.basic {
				nJobs += repeats
			} else if outputLog {
				log.Infof("basic mode skipped for %d steps: %d x %d bases", k, len(c.a), len(c.b))
			}
			nJobs += repeats

			cases = append(cases, c)
		}
		if outputLog {
			log.Infof("%d input(s) generated, %d alignments to run", len(cases), nJobs)
		}

		// process bar

		var pbs *mpb.Progress
		var bar *mpb.Bar
		if opt.Verbose {
			pbs = mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
			bar = pbs.AddBar(int64(nJobs),
				mpb.PrependDecorators(
					decor.Name("alignments: ", decor.WC{W: len("alignments: "), C: decor.DindentRight}),
					decor.Name("", decor.WCSyncSpaceR),
					decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
				),
				mpb.AppendDecorators(
					decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
					decor.EwmaETA(decor.ET_STYLE_GO, 10),
					decor.OnComplete(decor.Name(""), ". done"),
				),
			)
		}

		// runs, one by one

		records := make([]*benchRecord, 0, len(cases)*2)
		for _, c := range cases {
			var costBasic int
			for _, mode := range []alignMode{modeBasic, modeEfficient} {
				if mode == modeBasic && !c.basic {
					continue
				}

				rec := &benchRecord{steps: c.steps, lenA: len(c.a), lenB: len(c.b), mode: mode}
				times := make([]float64, repeats)
				mems := make([]float64, repeats)
				for i := 0; i < repeats; i++ {
					// a new runner each time, so allocations of tables are counted
					rep, err := newAlignRunner(cm).run(c.a, c.b, mode, true)
					checkError(err)

					rec.cost = rep.Cost
					times[i] = rep.TimeMS()
					mems[i] = rep.MemoryKB()
					if opt.Verbose {
						bar.EwmaIncrBy(1, rep.Elapsed)
					}
				}
				rec.timeMean, rec.timeSD = meanStdDev(times)
				rec.memMean, rec.memSD = meanStdDev(mems)

				if mode == modeBasic {
					costBasic = rec.cost
				} else if c.basic && rec.cost != costBasic {
					checkError(fmt.Errorf("costs of two modes differ for %d steps: %d (basic) != %d (efficient)",
						c.steps, costBasic, rec.cost))
				}

				records = append(records, rec)
			}
		}

		if opt.Verbose {
			pbs.Wait()
		}

		// table

		file := filepath.Join(outDir, "bench.tsv")
		outfh, gw, w, err := outStream(file, false, opt.CompressionLevel)
		checkError(err)
		fmt.Fprintf(outfh, "steps\tlen_a\tlen_b\tproblem_size\tmode\tcost\ttime_ms_mean\ttime_ms_sd\tmemory_kb_mean\tmemory_kb_sd\n")
		for _, r := range records {
			fmt.Fprintf(outfh, "%d\t%d\t%d\t%d\t%s\t%d\t%.3f\t%.3f\t%.3f\t%.3f\n",
				r.steps, r.lenA, r.lenB, r.lenA+r.lenB, r.mode, r.cost,
				r.timeMean, r.timeSD, r.memMean, r.memSD)
		}
		checkError(closeOutStream(outfh, gw, w))

		// plots

		checkError(plotBench(filepath.Join(outDir, "time.png"), "CPU time versus problem size",
			"time (ms)", records, func(r *benchRecord) float64 { return r.timeMean }))
		checkError(plotBench(filepath.Join(outDir, "memory.png"), "Memory versus problem size",
			"memory (KB)", records, func(r *benchRecord) float64 { return r.memMean }))

		if outputLog {
			log.Infof("results saved to %s", outDir)
		}
	},
}

func init() {
	RootCmd.AddCommand(benchCmd)

	benchCmd.Flags().StringP("out-dir", "O", "",
		formatFlagUsage(`Output directory.`))
	benchCmd.Flags().BoolP("force", "", false,
		formatFlagUsage(`Overwrite existing output directory.`))
	benchCmd.Flags().IntP("base-len", "b", 4,
		formatFlagUsage(`Length of the random base sequences.`))
	benchCmd.Flags().StringSliceP("steps", "k", []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		formatFlagUsage(`Numbers of insertion steps, so sequence lengths are base-len * 2^steps.`))
	benchCmd.Flags().IntP("repeats", "r", 3,
		formatFlagUsage(`Number of runs of each alignment.`))
	benchCmd.Flags().Int64P("seed", "s", 1,
		formatFlagUsage(`Seed of the random number generator.`))
	benchCmd.Flags().IntP("max-basic-cells", "", 1<<26,
		formatFlagUsage(`Maximum number of cells of the table in the basic mode (0 for no limit).`))

	benchCmd.SetUsageTemplate(usageTemplate(""))
}

type benchCase struct {
	steps int
	input *seedfile.Input
	a, b  []byte
	basic bool // run the basic mode or not
}

// newBenchCase creates two random seeds with k steps and expands them.
func newBenchCase(rng *rand.Rand, baseLen, k int) (*benchCase, error) {
	in := &seedfile.Input{
		A:      randomSeed(rng, baseLen, k),
		B:      randomSeed(rng, baseLen, k),
		Layout: seedfile.ExplicitCounts,
	}
	c := &benchCase{steps: k, input: in}

	var err error
	if c.a, err = in.A.Expand(); err != nil {
		return nil, err
	}
	if c.b, err = in.B.Expand(); err != nil {
		return nil, err
	}
	return c, nil
}

// randomSeed returns a seed with a random base and k valid random indices.
func randomSeed(rng *rand.Rand, baseLen, k int) *align.Seed {
	base := make([]byte, baseLen)
	for i := range base {
		base[i] = align.Alphabet[rng.Intn(len(align.Alphabet))]
	}

	indices := make([]int, k)
	l := baseLen
	for i := range indices {
		indices[i] = rng.Intn(l)
		if l > math.MaxInt/2 {
			// the length overflows anyway, Expand will report it.
			continue
		}
		l <<= 1
	}
	return &align.Seed{Base: base, Indices: indices}
}

type benchRecord struct {
	steps      int
	lenA, lenB int
	mode       alignMode
	cost       int

	timeMean, timeSD float64
	memMean, memSD   float64
}

func meanStdDev(x []float64) (float64, float64) {
	if len(x) == 1 {
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}

// plotBench plots a value of records versus the problem size, one line for each mode.
func plotBench(file, title, ylabel string, records []*benchRecord, value func(*benchRecord) float64) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "problem size (m+n)"
	p.Y.Label.Text = ylabel

	vs := make([]interface{}, 0, 4)
	for _, mode := range []alignMode{modeBasic, modeEfficient} {
		xys := make(plotter.XYs, 0, len(records))
		for _, r := range records {
			if r.mode != mode {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(r.lenA + r.lenB), Y: value(r)})
		}
		if len(xys) > 0 {
			vs = append(vs, mode.String(), xys)
		}
	}

	if err := plotutil.AddLinePoints(p, vs...); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, file)
}
