package curve

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// maxLabels is the most labelled ticks a log2 axis shows.
const maxLabels = 8

// Log2Ticks marks an axis at powers of two. It is meant to be used together
// with plot.LogScale.
type Log2Ticks struct{}

// Ticks returns ticks at every power of two between min and max, labelling at
// most maxLabels of them. min must be positive.
func (Log2Ticks) Ticks(min, max float64) []plot.Tick {
	if min <= 0 || max < min {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	lo, hi := math.Ceil(math.Log2(min)), math.Floor(math.Log2(max))
	if hi < lo {
		return []plot.Tick{
			{Value: min, Label: formatTick(min)},
			{Value: max, Label: formatTick(max)},
		}
	}

	step := math.Ceil((hi - lo + 1) / maxLabels)
	var ticks []plot.Tick
	for e := lo; e <= hi; e++ {
		v := math.Exp2(e)
		t := plot.Tick{Value: v}
		if math.Mod(e-lo, step) == 0 {
			t.Label = formatTick(v)
		}
		ticks = append(ticks, t)
	}
	return ticks
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
