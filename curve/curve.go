// Package curve summarises and draws learning curves from aggregated scores.
package curve

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/hscells/lcagg/scores"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/plotter"
)

// Point is the spread of a metric across splits at one training size.
type Point struct {
	Size float64
	Mean float64
	Std  float64
	N    int
}

// Curve is the learning curve of one metric on one evaluation set.
type Curve struct {
	Metric string
	Set    string
	// Splits maps a split name to its (size, score) points, ordered by size.
	Splits map[string]plotter.XYs
	// Mean holds one point per distinct training size, ordered by size.
	Mean []Point
}

// SplitNames returns the split names in sorted order.
func (c Curve) SplitNames() []string {
	names := make([]string, 0, len(c.Splits))
	for n := range c.Splits {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the curve has no points.
func (c Curve) Empty() bool {
	return len(c.Mean) == 0
}

// score parses a score cell. Empty cells and NaN are missing scores.
func score(cell string) (float64, bool, error) {
	cell = strings.TrimSpace(cell)
	if len(cell) == 0 {
		return 0, false, nil
	}
	y, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false, err
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, false, nil
	}
	return y, true, nil
}

// Summarise builds the curve of a metric from the rows of t belonging to the
// evaluation set o.TrSet. Rows without a score are left out.
func Summarise(t *scores.Table, metric string, o Options) (Curve, error) {
	c := Curve{
		Metric: metric,
		Set:    o.TrSet,
		Splits: make(map[string]plotter.XYs),
	}

	if err := t.Require(scores.TrainingSize, scores.Set, scores.Metric, scores.Split, o.ScoreColumn); err != nil {
		return c, err
	}
	set, m := t.Index(scores.Set), t.Index(scores.Metric)
	rows := t.Where(func(r scores.Row) bool {
		return r[set] == o.TrSet && r[m] == metric
	})

	bySize := make(map[float64][]float64)
	for i := 0; i < rows.Len(); i++ {
		x, err := rows.Float(i, scores.TrainingSize)
		if err != nil {
			return c, err
		}
		y, ok, err := score(rows.Value(i, o.ScoreColumn))
		if err != nil {
			return c, errors.Wrapf(err, "row %d column %s", i+1, o.ScoreColumn)
		}
		if !ok {
			continue
		}
		split := rows.Value(i, scores.Split)
		c.Splits[split] = append(c.Splits[split], plotter.XY{X: x, Y: y})
		bySize[x] = append(bySize[x], y)
	}

	for split, xys := range c.Splits {
		sort.SliceStable(xys, func(i, j int) bool {
			return xys[i].X < xys[j].X
		})
		c.Splits[split] = xys
	}

	for size, ys := range bySize {
		p := Point{Size: size, N: len(ys)}
		if len(ys) > 1 {
			p.Mean, p.Std = stat.MeanStdDev(ys, nil)
		} else {
			p.Mean = ys[0]
		}
		c.Mean = append(c.Mean, p)
	}
	sort.Slice(c.Mean, func(i, j int) bool {
		return c.Mean[i].Size < c.Mean[j].Size
	})
	return c, nil
}
