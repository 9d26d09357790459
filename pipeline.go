// Package lcagg provides a pipeline for aggregating learning curve scores from many runs.
package lcagg

import (
	"io"
	"log"
	"path/filepath"

	"github.com/hscells/lcagg/aggregate"
	"github.com/hscells/lcagg/curve"
	"github.com/hscells/lcagg/output"
	"github.com/hscells/lcagg/pipeline"
	"github.com/hscells/lcagg/scores"
	"github.com/pkg/errors"
)

// Pipeline contains all the information for aggregating the scores of a results directory.
type Pipeline struct {
	ResultsDir string
	TestSet    string
	Metrics    []string
	Aggregator aggregate.Aggregator
	Tables     TableOutput
	Plots      []PlotOutput
}

// TableOutput specifies the files the full and test set tables are written to.
type TableOutput struct {
	// AllScores and TeScores are base names inside the results directory; each
	// formatter appends its own extension.
	AllScores  string
	TeScores   string
	Formatters []output.TableFormatter
}

// PlotOutput specifies one directory of learning curve images.
type PlotOutput struct {
	Dir     string
	Options curve.Options
}

type metrics []string

type progress struct {
	io.Writer
}

// Metrics sets the metrics to plot.
func Metrics(names ...string) func() interface{} {
	return func() interface{} {
		return metrics(names)
	}
}

// TableOutputs configures where tables are written and in which formats.
func TableOutputs(all, te string, formatters ...output.TableFormatter) func() interface{} {
	return func() interface{} {
		return TableOutput{
			AllScores:  all,
			TeScores:   te,
			Formatters: formatters,
		}
	}
}

// Plots configures the learning curve images.
func Plots(plots ...PlotOutput) func() interface{} {
	return func() interface{} {
		return plots
	}
}

// Progress shows a progress bar on w while score files are read.
func Progress(w io.Writer) func() interface{} {
	return func() interface{} {
		return progress{w}
	}
}

// Aggregator replaces the score file reader, e.g. to read differently named
// size directories or score files.
func Aggregator(a aggregate.Aggregator) func() interface{} {
	return func() interface{} {
		return a
	}
}

// NewPipeline creates a new aggregation pipeline for a results directory with
// the default configuration. Components given as functional arguments
// replace the defaults.
func NewPipeline(resDir string, components ...func() interface{}) Pipeline {
	p, _ := NewPipelineFromConfig(resDir, DefaultConfig(), components...)
	return p
}

// NewPipelineFromConfig creates a new aggregation pipeline from a configuration.
func NewPipelineFromConfig(resDir string, c Config, components ...func() interface{}) (Pipeline, error) {
	if err := c.validate(); err != nil {
		return Pipeline{}, err
	}

	formatters := []output.TableFormatter{output.CsvTableFormatter}
	if c.JSON {
		formatters = append(formatters, output.JsonTableFormatter)
	}

	p := Pipeline{
		ResultsDir: resDir,
		TestSet:    c.TestSet,
		Metrics:    c.Metrics,
		Aggregator: aggregate.New(),
		Tables: TableOutput{
			AllScores:  c.AllScores,
			TeScores:   c.TeScores,
			Formatters: formatters,
		},
	}
	p.Aggregator.ScoreColumn = c.ScoreColumn

	for _, pc := range c.Plots {
		o, err := pc.options(c.ScoreColumn)
		if err != nil {
			return Pipeline{}, err
		}
		p.Plots = append(p.Plots, PlotOutput{Dir: pc.Dir, Options: o})
	}

	for _, component := range components {
		val := component()
		switch v := val.(type) {
		case metrics:
			p.Metrics = v
		case TableOutput:
			p.Tables = v
		case []PlotOutput:
			p.Plots = v
		case progress:
			p.Aggregator.Progress = v.Writer
		case aggregate.Aggregator:
			p.Aggregator = v
		}
	}

	return p, nil
}

func fail(c chan pipeline.Result, err error) {
	c <- pipeline.Result{
		Error: err,
		Type:  pipeline.Error,
	}
}

// Execute aggregates the scores of the results directory, writes the tables
// and draws the plots. Results are sent on c, which is closed on return. No
// file is written unless aggregation succeeds.
func (p Pipeline) Execute(c chan pipeline.Result) {
	defer close(c)
	log.Println("starting aggregation pipeline...")

	resDir, err := filepath.Abs(p.ResultsDir)
	if err != nil {
		fail(c, err)
		return
	}

	runs, err := aggregate.RunDirs(resDir)
	if err != nil {
		fail(c, err)
		return
	}
	log.Printf("found %d run directories in %s\n", len(runs), resDir)

	all, err := p.Aggregator.Aggregate(runs)
	if err != nil {
		fail(c, errors.Wrapf(err, "aggregating %s", resDir))
		return
	}
	sizes, err := all.Sizes()
	if err != nil {
		fail(c, err)
		return
	}
	c <- pipeline.Result{
		Rows:  all.Len(),
		Sizes: sizes,
		Type:  pipeline.Aggregation,
	}

	te := all.Filter(scores.Set, p.TestSet)

	for _, f := range p.Tables.Formatters {
		var paths []string
		for _, out := range []struct {
			name string
			t    *scores.Table
		}{
			{p.Tables.AllScores, all},
			{p.Tables.TeScores, te},
		} {
			path := filepath.Join(resDir, out.name+f.Extension)
			log.Printf("writing %d rows to %s\n", out.t.Len(), path)
			if err := output.WriteFile(path, out.t, f); err != nil {
				fail(c, err)
				return
			}
			paths = append(paths, path)
		}
		c <- pipeline.Result{
			Paths: paths,
			Type:  pipeline.Output,
		}
	}

	for _, plot := range p.Plots {
		dir := filepath.Join(resDir, plot.Dir)
		log.Printf("plotting %v to %s\n", p.Metrics, dir)
		paths, err := curve.ManyMetric(all, p.Metrics, dir, plot.Options)
		if err != nil {
			fail(c, err)
			return
		}
		c <- pipeline.Result{
			Paths: paths,
			Type:  pipeline.Plot,
		}
	}

	c <- pipeline.Result{Type: pipeline.Done}
}
