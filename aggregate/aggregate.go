// Package aggregate collects the score files of learning-curve runs into a single table.
//
// A results directory is laid out as
//
//	<res_dir>/run*/*_sz*/scores.csv
//
// where each run directory holds one data split and each size directory one
// training set size.
package aggregate

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/cheggaaa/pb/v3"
	"github.com/hscells/lcagg/scores"
	"github.com/pkg/errors"
)

// ErrNoScores is returned when no score file exists under any run directory.
var ErrNoScores = errors.New("no score files found")

const (
	// RunPattern matches run directories inside a results directory.
	RunPattern = "run*"
	// SizePattern matches training size directories inside a run directory.
	SizePattern = "*_sz*"
	// ScoreFile is the name of the score file inside a size directory.
	ScoreFile = "scores.csv"
)

// Aggregator reads and merges score files.
type Aggregator struct {
	SizePattern string
	ScoreFile   string
	// ScoreColumn is the score column every file must carry.
	ScoreColumn string
	// Progress receives a progress bar over size directories when non-nil.
	Progress io.Writer
}

// New creates an aggregator with the default layout.
func New() Aggregator {
	return Aggregator{
		SizePattern: SizePattern,
		ScoreFile:   ScoreFile,
		ScoreColumn: scores.Score,
	}
}

// RunDirs lists the run directories of a results directory, sorted by name.
func RunDirs(resDir string) ([]string, error) {
	info, err := os.Stat(resDir)
	if err != nil {
		return nil, errors.Wrap(err, "results directory")
	}
	if !info.IsDir() {
		return nil, errors.Errorf("results directory %s is not a directory", resDir)
	}
	return globDirs(resDir, RunPattern)
}

// SizeDirs lists the size directories of a run directory, sorted by name.
func (a Aggregator) SizeDirs(runDir string) ([]string, error) {
	return globDirs(runDir, a.SizePattern)
}

func globDirs(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			dirs = append(dirs, m)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// Aggregate reads the score file of every size directory of the given run
// directories, tags the rows with the base name of their run directory and
// returns them as one table sorted by training size, then split.
func (a Aggregator) Aggregate(runDirs []string) (*scores.Table, error) {
	type sizeDir struct {
		run, path string
	}
	var dirs []sizeDir
	for _, run := range runDirs {
		sz, err := a.SizeDirs(run)
		if err != nil {
			return nil, err
		}
		for _, d := range sz {
			dirs = append(dirs, sizeDir{run: run, path: d})
		}
	}

	var bar *pb.ProgressBar
	if a.Progress != nil {
		bar = pb.New(len(dirs))
		bar.SetWriter(a.Progress)
		bar.Start()
		defer bar.Finish()
	}

	var tables []*scores.Table
	for _, d := range dirs {
		if bar != nil {
			bar.Increment()
		}
		path := filepath.Join(d.path, a.ScoreFile)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		t, err := a.read(path)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t.WithColumn(scores.Split, filepath.Base(d.run)))
	}

	if len(tables) == 0 {
		return nil, ErrNoScores
	}

	all, err := scores.Concat(tables...)
	if err != nil {
		return nil, err
	}
	Sort(all)
	return all, nil
}

func (a Aggregator) read(path string) (*scores.Table, error) {
	t, err := scores.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := t.Require(scores.TrainingSize, scores.Set, scores.Metric, a.ScoreColumn); err != nil {
		return nil, errors.Wrapf(err, "malformed score file %s", path)
	}
	// Scores may be empty where a metric is undefined; only sizes order the table.
	if _, err := t.Floats(scores.TrainingSize); err != nil {
		return nil, errors.Wrapf(err, "malformed score file %s", path)
	}
	return t, nil
}

// Sort orders a table by numeric training size, then by split name. Rows
// with equal keys keep their relative order. Sizes must already be numeric.
func Sort(t *scores.Table) {
	size, split := t.Index(scores.TrainingSize), t.Index(scores.Split)
	t.SortStable(func(a, b scores.Row) bool {
		x, _ := strconv.ParseFloat(a[size], 64)
		y, _ := strconv.ParseFloat(b[size], 64)
		if x != y || split < 0 {
			return x < y
		}
		return a[split] < b[split]
	})
}
