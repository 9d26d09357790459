package curve

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hscells/lcagg/scores"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// errorPoints are mean points with a symmetric standard deviation.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

func (c Curve) errorPoints() errorPoints {
	e := errorPoints{
		XYs:     make(plotter.XYs, len(c.Mean)),
		YErrors: make(plotter.YErrors, len(c.Mean)),
	}
	for i, p := range c.Mean {
		e.XYs[i] = plotter.XY{X: p.Size, Y: p.Mean}
		e.YErrors[i].Low = p.Std
		e.YErrors[i].High = p.Std
	}
	return e
}

// extent returns the x and y values the curve will draw.
func (c Curve) extent() (xs, ys []float64) {
	for _, xys := range c.Splits {
		for _, p := range xys {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
	}
	for _, p := range c.Mean {
		ys = append(ys, p.Mean-p.Std, p.Mean+p.Std)
	}
	return xs, ys
}

// logScalable reports whether values span a positive, non-empty range. A
// single value is widened by one on either side, which may not stay positive.
func logScalable(v []float64) bool {
	min, max := floats.Min(v), floats.Max(v)
	return min > 0 && max > min
}

// Draw renders a curve: a thin line for each split and the mean across
// splits with one standard deviation error bars. A log2 axis whose values are
// not all positive, or are all equal, is drawn on a linear scale instead.
func Draw(c Curve, o Options) (*plot.Plot, error) {
	if c.Empty() {
		return nil, errors.Errorf("no %s scores for metric %s", c.Set, c.Metric)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%s)", c.Metric, c.Set)
	p.X.Label.Text = "Training set size"
	p.Y.Label.Text = c.Metric
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	xs, ys := c.extent()
	if o.XScale == Log2 {
		if logScalable(xs) {
			p.X.Scale = plot.LogScale{}
			p.X.Tick.Marker = Log2Ticks{}
		} else {
			log.Printf("%s: training sizes cannot be drawn on a log scale, using a linear x axis\n", c.Metric)
		}
	}
	if o.YScale == Log2 {
		if logScalable(ys) {
			p.Y.Scale = plot.LogScale{}
			p.Y.Tick.Marker = Log2Ticks{}
		} else {
			log.Printf("%s: scores cannot be drawn on a log scale, using a linear y axis\n", c.Metric)
		}
	}

	for i, split := range c.SplitNames() {
		l, err := plotter.NewLine(c.Splits[split])
		if err != nil {
			return nil, errors.Wrapf(err, "split %s", split)
		}
		l.Color = plotutil.Color(i)
		l.Width = vg.Points(0.5)
		l.Dashes = plotutil.Dashes(1)
		p.Add(l)
		p.Legend.Add(split, l)
	}

	e := c.errorPoints()
	l, s, err := plotter.NewLinePoints(e.XYs)
	if err != nil {
		return nil, err
	}
	l.Color = color.Black
	l.Width = vg.Points(1.5)
	s.Color = color.Black
	s.Shape = draw.CircleGlyph{}
	bars, err := plotter.NewYErrorBars(e)
	if err != nil {
		return nil, err
	}
	bars.Color = color.Black
	p.Add(l, s, bars)
	p.Legend.Add("mean ± std", l, s)

	return p, nil
}

// FileName is the image file name of a metric's curve.
func FileName(metric, format string) string {
	r := strings.NewReplacer("/", "_", string(filepath.Separator), "_", " ", "_")
	return r.Replace(metric) + "." + format
}

// ManyMetric draws one learning curve per metric from the full aggregated
// table into outdir, selecting the rows of o.TrSet itself. Metrics without
// scores in that set are skipped. The paths of the written images are
// returned.
func ManyMetric(t *scores.Table, metrics []string, outdir string, o Options) ([]string, error) {
	o, err := o.Validate()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outdir, 0775); err != nil {
		return nil, errors.Wrapf(err, "creating %s", outdir)
	}

	var paths []string
	for _, metric := range metrics {
		c, err := Summarise(t, metric, o)
		if err != nil {
			return nil, errors.Wrapf(err, "metric %s", metric)
		}
		if c.Empty() {
			log.Printf("no %s scores for metric %s, skipping plot\n", o.TrSet, metric)
			continue
		}
		p, err := Draw(c, o)
		if err != nil {
			return nil, errors.Wrapf(err, "metric %s", metric)
		}
		path := filepath.Join(outdir, FileName(metric, o.Format))
		if err := p.Save(o.Width, o.Height, path); err != nil {
			return nil, errors.Wrapf(err, "saving %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
