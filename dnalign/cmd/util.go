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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/iafan/cwalk"
	"github.com/klauspost/pgzip"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/shenwei356/util/pathutil"
	"github.com/spf13/cobra"
	"github.com/twotwotwo/sorts"
)

// Options contains the global flags
type Options struct {
	NumCPUs int
	Verbose bool

	LogFile  string
	Log2File bool

	CostMatrixFile string

	CompressionLevel int
}

func getOptions(cmd *cobra.Command) *Options {
	threads := getFlagNonNegativeInt(cmd, "threads")
	if threads == 0 {
		threads = runtime.NumCPU()
	}

	sorts.MaxProcs = threads
	runtime.GOMAXPROCS(threads)

	logfile := expandPath(getFlagString(cmd, "log"))
	return &Options{
		NumCPUs: threads,
		Verbose: !getFlagBool(cmd, "quiet"),

		LogFile:  logfile,
		Log2File: logfile != "",

		CostMatrixFile: expandPath(getFlagString(cmd, "cost-matrix")),

		CompressionLevel: -1,
	}
}

// setupLog adds the log file if needed and returns a function to call at the end.
func setupLog(opt *Options, outFile string) func() {
	if !opt.Log2File {
		return func() {}
	}

	if outFile != "" && !isStdin(outFile) {
		ro, err := filepath.Abs(outFile)
		if err != nil {
			checkError(fmt.Errorf("failed to check output file: %s", err))
		}
		rl, err := filepath.Abs(opt.LogFile)
		if err != nil {
			checkError(fmt.Errorf("failed to check log file: %s", err))
		}
		if ro == rl {
			checkError(fmt.Errorf("output file and log file should not be the same: %s", outFile))
		}
	}

	fhLog := addLog(opt.LogFile, opt.Verbose)
	return func() {
		fhLog.Close()
	}
}

func expandPath(file string) string {
	if file == "" || isStdin(file) {
		return file
	}
	f, err := homedir.Expand(file)
	if err != nil {
		checkError(errors.Wrap(err, file))
	}
	return f
}

func checkInputFile(file string) {
	if isStdin(file) {
		return
	}
	existed, err := pathutil.Exists(file)
	checkError(errors.Wrap(err, file))
	if !existed {
		checkError(fmt.Errorf("input file does not exist: %s", file))
	}
}

func makeOutDir(outDir string, force bool, logname string, verbose bool) {
	pwd, _ := os.Getwd()
	if outDir == "./" || outDir == "." || pwd == filepath.Clean(outDir) {
		checkError(fmt.Errorf("%s should not be current directory", logname))
	}

	existed, err := pathutil.DirExists(outDir)
	checkError(errors.Wrap(err, outDir))
	if existed {
		empty, err := pathutil.IsEmpty(outDir)
		checkError(errors.Wrap(err, outDir))
		if !empty {
			if !force {
				checkError(fmt.Errorf("%s not empty: %s, use --force to overwrite", logname, outDir))
			}
			if verbose {
				log.Infof("removing old output directory: %s", outDir)
			}
		}
		checkError(os.RemoveAll(outDir))
	}
	checkError(os.MkdirAll(outDir, 0777))
}

func getFileListFromDir(path string, pattern *regexp.Regexp, threads int) ([]string, error) {
	files := make([]string, 0, 512)
	ch := make(chan string, threads)
	done := make(chan int)
	go func() {
		for file := range ch {
			files = append(files, file)
		}
		done <- 1
	}()

	cwalk.NumWorkers = threads
	err := cwalk.WalkWithSymlinks(path, func(_path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && pattern.MatchString(info.Name()) {
			ch <- filepath.Join(path, _path)
		}
		return nil
	})
	close(ch)
	<-done
	if err != nil {
		return nil, err
	}

	return files, nil
}

var defaultExts = []string{".gz", ".xz", ".zst", ".bz"}

// filepathTrimExtension returns the name without extensions, the extension,
// and the compression extension.
func filepathTrimExtension(file string, suffixes []string) (string, string, string) {
	if suffixes == nil {
		suffixes = defaultExts
	}

	var e1, e2 string
	f := strings.ToLower(file)
	for _, e := range suffixes {
		if strings.HasSuffix(f, e) {
			e2 = e
			file = file[0 : len(file)-len(e)]
			break
		}
	}

	e1 = filepath.Ext(file)
	name := file[0 : len(file)-len(e1)]

	return name, e1, e2
}

// outStream returns a buffered writer of a file or stdout ("-").
// The gzip writer is nil if gzipped is false.
func outStream(file string, gzipped bool, level int) (*bufio.Writer, io.WriteCloser, *os.File, error) {
	var w *os.File
	if isStdin(file) {
		w = os.Stdout
	} else {
		dir := filepath.Dir(file)
		fi, err := os.Stat(dir)
		if err == nil && !fi.IsDir() {
			return nil, nil, nil, fmt.Errorf("can not write file into a non-directory path: %s", dir)
		}
		if os.IsNotExist(err) {
			if err = os.MkdirAll(dir, 0777); err != nil {
				return nil, nil, nil, fmt.Errorf("fail to create directory %s: %s", dir, err)
			}
		}
		w, err = os.Create(file)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("fail to write %s: %s", file, err)
		}
	}

	if gzipped {
		gw, err := pgzip.NewWriterLevel(w, level)
		if err != nil {
			return nil, nil, w, fmt.Errorf("fail to create gzip writer for %s: %s", file, err)
		}
		return bufio.NewWriterSize(gw, os.Getpagesize()), gw, w, nil
	}
	return bufio.NewWriterSize(w, os.Getpagesize()), nil, w, nil
}

// closeOutStream flushes and closes the handlers returned by outStream.
func closeOutStream(outfh *bufio.Writer, gw io.WriteCloser, w *os.File) error {
	if err := outfh.Flush(); err != nil {
		return err
	}
	if gw != nil {
		if err := gw.Close(); err != nil {
			return err
		}
	}
	if w == os.Stdout {
		return nil
	}
	return w.Close()
}
