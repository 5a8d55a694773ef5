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
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/seqdp/dnalign/dnalign/align"
	"github.com/shenwei356/bio/seq"
	"github.com/spf13/cobra"
	"github.com/twotwotwo/sorts/sortutil"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Align sequences of all input files in a directory",
	Long: `Align sequences of all input files in a directory

Input files matching the regular expression (-r/--file-regexp) are searched
recursively in the input directory, and they are aligned in parallel, one file
per thread. Result files, in the same layout as "dnalign basic/efficient",
are saved in the output directory, keeping the directory structure.

A summary table is written to stdout by default:
  file, len_a, len_b, cost, time_ms, memory_kb, status

Attention:
  1. Memory is sampled for the whole process, so it's only accurate with -j/--threads 1.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		seq.ValidateSeq = false

		inDir := expandPath(getFlagString(cmd, "in-dir"))
		if inDir == "" {
			checkError(fmt.Errorf("flag -i/--in-dir needed"))
		}
		outDir := expandPath(getFlagString(cmd, "out-dir"))
		if outDir == "" {
			checkError(fmt.Errorf("flag -O/--out-dir needed"))
		}
		if filepath.Clean(inDir) == filepath.Clean(outDir) {
			checkError(fmt.Errorf("input and output directories should not be the same"))
		}
		re, err := regexp.Compile(getFlagString(cmd, "file-regexp"))
		checkError(err)
		mode, err := parseAlignMode(getFlagString(cmd, "mode"))
		checkError(err)
		withAlignment := mode == modeEfficient || getFlagBool(cmd, "alignment")
		fasta := getFlagBool(cmd, "fasta")
		suffix := getFlagString(cmd, "out-suffix")
		force := getFlagBool(cmd, "force")
		outFile := expandPath(getFlagString(cmd, "out-file"))

		closeLog := setupLog(opt, outFile)
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

		files, err := getFileListFromDir(inDir, re, opt.NumCPUs)
		checkError(err)
		if len(files) == 0 {
			checkError(fmt.Errorf("no input files matching %s found in %s", re, inDir))
		}
		sortutil.Strings(files)
		if outputLog {
			log.Infof("%d input file(s) found in %s", len(files), inDir)
			if opt.NumCPUs > 1 {
				log.Infof("memory is sampled for the whole process with %d threads", opt.NumCPUs)
			}
		}

		makeOutDir(outDir, force, "output directory", opt.Verbose)

		results := alignFiles(files, inDir, outDir, suffix, opt, cm, mode, withAlignment, fasta)

		outfh, gw, w, err := outStream(outFile, strings.HasSuffix(outFile, ".gz"), opt.CompressionLevel)
		checkError(err)

		fmt.Fprintf(outfh, "file\tlen_a\tlen_b\tcost\ttime_ms\tmemory_kb\tstatus\n")
		var failed int
		for _, r := range results {
			if r.err != nil {
				failed++
				log.Warningf("%s: %s", r.file, r.err)
				fmt.Fprintf(outfh, "%s\t-\t-\t-\t-\t-\tfailed\n", r.file)
				continue
			}
			fmt.Fprintf(outfh, "%s\t%d\t%d\t%d\t%.3f\t%.3f\tok\n", r.file,
				r.rep.LenA, r.rep.LenB, r.rep.Cost, r.rep.TimeMS(), r.rep.MemoryKB())
		}
		checkError(closeOutStream(outfh, gw, w))

		if outputLog {
			log.Infof("%s file(s) aligned, results saved to %s", humanize.Comma(int64(len(files)-failed)), outDir)
		}
		if failed > 0 {
			checkError(fmt.Errorf("%d of %d file(s) failed", failed, len(files)))
		}
	},
}

func init() {
	RootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("in-dir", "i", "",
		formatFlagUsage(`Directory containing input files.`))
	batchCmd.Flags().StringP("file-regexp", "r", `\.txt(\.gz)?$`,
		formatFlagUsage(`Regular expression for matching input files in -i/--in-dir.`))
	batchCmd.Flags().StringP("out-dir", "O", "",
		formatFlagUsage(`Output directory.`))
	batchCmd.Flags().StringP("out-suffix", "e", ".out.txt",
		formatFlagUsage(`Suffix of output files, replacing the extension of input files. A ".gz" suffix is supported.`))
	batchCmd.Flags().BoolP("force", "", false,
		formatFlagUsage(`Overwrite existing output directory.`))
	batchCmd.Flags().StringP("out-file", "o", "-",
		formatFlagUsage(`Out file of the summary table, supports a ".gz" suffix ("-" for stdout).`))
	batchCmd.Flags().StringP("mode", "m", "efficient",
		formatFlagUsage(`Alignment mode. Available values: "basic", "efficient".`))
	batchCmd.Flags().BoolP("alignment", "a", false,
		formatFlagUsage(`Output the alignment in the basic mode. It's always on for the efficient mode.`))
	batchCmd.Flags().BoolP("fasta", "", false,
		formatFlagUsage(`Input files are FASTA/Q files, and the first two sequences are aligned.`))

	batchCmd.SetUsageTemplate(usageTemplate(""))
}

type batchResult struct {
	id   int
	file string
	rep  *alignReport
	err  error

	startTime time.Time
}

// alignFiles aligns the sequences of each file in a goroutine, and returns results
// in the order of the files.
func alignFiles(files []string, inDir, outDir, suffix string, opt *Options,
	cm *align.CostMatrix, mode alignMode, withAlignment, fasta bool) []*batchResult {

	// process bar
	var pbs *mpb.Progress
	var bar *mpb.Bar
	var chDuration chan time.Duration
	var doneDuration chan int
	showProgressBar := opt.Verbose && len(files) > 1
	if showProgressBar {
		pbs = mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
		bar = pbs.AddBar(int64(len(files)),
			mpb.PrependDecorators(
				decor.Name("processed files: ", decor.WC{W: len("processed files: "), C: decor.DindentRight}),
				decor.Name("", decor.WCSyncSpaceR),
				decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
				decor.EwmaETA(decor.ET_STYLE_GO, 10),
				decor.OnComplete(decor.Name(""), ". done"),
			),
		)

		chDuration = make(chan time.Duration, opt.NumCPUs)
		doneDuration = make(chan int)
		go func() {
			for t := range chDuration {
				bar.EwmaIncrBy(1, t)
			}
			doneDuration <- 1
		}()
	}

	results := make([]*batchResult, len(files))

	// 2. collect
	ch := make(chan *batchResult, opt.NumCPUs)
	done := make(chan int)
	go func() {
		for r := range ch {
			results[r.id] = r
			if showProgressBar {
				chDuration <- time.Since(r.startTime)
			}
		}
		done <- 1
	}()

	// 1. align
	var wg sync.WaitGroup
	tokens := make(chan int, opt.NumCPUs)
	for i, file := range files {
		tokens <- 1
		wg.Add(1)

		go func(i int, file string) {
			defer func() {
				wg.Done()
				<-tokens
			}()

			r := &batchResult{id: i, file: file, startTime: time.Now()}
			r.rep, r.err = alignFile(file, batchOutFile(file, inDir, outDir, suffix), opt,
				cm, mode, withAlignment, fasta)
			ch <- r
		}(i, file)
	}
	wg.Wait()
	close(ch)
	<-done

	if showProgressBar {
		close(chDuration)
		<-doneDuration
		pbs.Wait()
	}

	return results
}

// batchOutFile returns the path of the result file, keeping the directory structure.
func batchOutFile(file, inDir, outDir, suffix string) string {
	rel, err := filepath.Rel(inDir, file)
	if err != nil {
		rel = filepath.Base(file)
	}
	name, _, _ := filepathTrimExtension(rel, nil)
	return filepath.Join(outDir, name+suffix)
}

func alignFile(file, outFile string, opt *Options, cm *align.CostMatrix,
	mode alignMode, withAlignment, fasta bool) (*alignReport, error) {

	a, b, err := readSequences(file, fasta)
	if err != nil {
		return nil, err
	}

	rep, err := newAlignRunner(cm).run(a, b, mode, withAlignment)
	if err != nil {
		return nil, err
	}

	outfh, gw, w, err := outStream(outFile, strings.HasSuffix(outFile, ".gz"), opt.CompressionLevel)
	if err != nil {
		return nil, err
	}
	if err = writeReport(outfh, rep, withAlignment, true); err != nil {
		closeOutStream(outfh, gw, w)
		return nil, err
	}
	return rep, closeOutStream(outfh, gw, w)
}
