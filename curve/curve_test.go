package curve_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hscells/lcagg/curve"
	"github.com/hscells/lcagg/scores"
	"github.com/pkg/errors"
)

const data = `metric,set,tr_size,score,split
r2,te,10,0.4,run0
r2,te,10,0.6,run1
r2,tr,10,0.9,run0
mean_absolute_error,te,10,0.3,run0
r2,te,20,0.7,run0
r2,te,20,-0.1,run1
r2,te,40,0.8,run0
mean_absolute_error,te,20,0.2,run0
`

func table(t *testing.T) *scores.Table {
	t.Helper()
	tab, err := scores.ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return tab
}

func TestSummarise(t *testing.T) {
	c, err := curve.Summarise(table(t), "r2", curve.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Mean) != 3 {
		t.Fatalf("got %d points, want 3", len(c.Mean))
	}
	p := c.Mean[0]
	if p.Size != 10 || p.N != 2 || math.Abs(p.Mean-0.5) > 1e-12 {
		t.Errorf("unexpected point %+v", p)
	}
	if math.Abs(p.Std-math.Sqrt(0.02)) > 1e-12 {
		t.Errorf("got std %v, want %v", p.Std, math.Sqrt(0.02))
	}
	if last := c.Mean[2]; last.Size != 40 || last.Std != 0 || last.Mean != 0.8 {
		t.Errorf("unexpected single-split point %+v", last)
	}

	names := c.SplitNames()
	if len(names) != 2 || names[0] != "run0" || names[1] != "run1" {
		t.Errorf("got splits %v", names)
	}
	if n := len(c.Splits["run0"]); n != 3 {
		t.Errorf("run0 has %d points, want 3", n)
	}
}

func TestSummariseOtherSet(t *testing.T) {
	o := curve.DefaultOptions()
	o.TrSet = "tr"
	c, err := curve.Summarise(table(t), "r2", o)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Mean) != 1 || c.Mean[0].Mean != 0.9 {
		t.Errorf("unexpected curve %+v", c.Mean)
	}

	c, err = curve.Summarise(table(t), "accuracy", o)
	if err != nil {
		t.Fatal(err)
	}
	if !c.Empty() {
		t.Error("expected an empty curve")
	}
}

func TestSummariseMissingScores(t *testing.T) {
	tab, err := scores.ReadCSV(strings.NewReader(`metric,set,tr_size,score,split
r2,te,10,0.4,run0
r2,te,10,,run1
r2,te,20,NaN,run0
r2,te,20,0.6,run1
r2,te,40,,run0
`))
	if err != nil {
		t.Fatal(err)
	}
	c, err := curve.Summarise(tab, "r2", curve.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Mean) != 2 {
		t.Fatalf("got %d points, want 2: %+v", len(c.Mean), c.Mean)
	}
	if c.Mean[0].N != 1 || c.Mean[0].Mean != 0.4 || c.Mean[1].Mean != 0.6 {
		t.Errorf("unexpected points %+v", c.Mean)
	}
	if len(c.Splits["run0"]) != 1 || len(c.Splits["run1"]) != 1 {
		t.Errorf("unexpected splits %v", c.Splits)
	}

	paths, err := curve.ManyMetric(tab, []string{"r2"}, t.TempDir(), curve.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 {
		t.Errorf("got %v", paths)
	}

	bad, err := scores.ReadCSV(strings.NewReader("metric,set,tr_size,score,split\nr2,te,10,high,run0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := curve.Summarise(bad, "r2", curve.DefaultOptions()); err == nil {
		t.Error("expected an error for a non-numeric score")
	}
}

func TestParseScale(t *testing.T) {
	for s, want := range map[string]curve.Scale{"log2": curve.Log2, "LINEAR": curve.Linear} {
		got, err := curve.ParseScale(s)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	}
	if _, err := curve.ParseScale("log10"); errors.Cause(err) != curve.ErrUnknownScale {
		t.Errorf("got %v, want %v", err, curve.ErrUnknownScale)
	}
}

func TestValidate(t *testing.T) {
	o, err := curve.Options{XScale: curve.Log2}.Validate()
	if err != nil {
		t.Fatal(err)
	}
	if o.TrSet != scores.TestSet || o.YScale != curve.Linear || o.Format != "png" {
		t.Errorf("defaults not applied: %+v", o)
	}
	if _, err := (curve.Options{Format: "bmp"}).Validate(); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}

func TestManyMetric(t *testing.T) {
	for _, scale := range []curve.Scale{curve.Log2, curve.Linear} {
		t.Run(string(scale), func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "plots")
			o := curve.DefaultOptions()
			o.XScale, o.YScale = scale, scale
			paths, err := curve.ManyMetric(table(t), []string{"mean_absolute_error", "r2", "accuracy"}, dir, o)
			if err != nil {
				t.Fatal(err)
			}
			// accuracy has no scores and is skipped.
			if len(paths) != 2 {
				t.Fatalf("got %v", paths)
			}
			for _, p := range paths {
				info, err := os.Stat(p)
				if err != nil {
					t.Fatal(err)
				}
				if info.Size() == 0 {
					t.Errorf("%s is empty", p)
				}
			}
			if filepath.Base(paths[1]) != "r2.png" {
				t.Errorf("got %s, want r2.png", paths[1])
			}
		})
	}
}

func TestFileName(t *testing.T) {
	if got := curve.FileName("mean absolute/error", "svg"); got != "mean_absolute_error.svg" {
		t.Errorf("got %s", got)
	}
}

func TestLog2Ticks(t *testing.T) {
	ticks := curve.Log2Ticks{}.Ticks(10, 1000)
	var values []float64
	for _, tk := range ticks {
		values = append(values, tk.Value)
		if len(tk.Label) == 0 {
			t.Errorf("tick %v has no label", tk.Value)
		}
	}
	want := []float64{16, 32, 64, 128, 256, 512}
	if len(values) != len(want) {
		t.Fatalf("got %v, want %v", values, want)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("got %v, want %v", values, want)
		}
	}

	ticks = curve.Log2Ticks{}.Ticks(1, math.Exp2(20))
	labelled := 0
	for _, tk := range ticks {
		if len(tk.Label) > 0 {
			labelled++
		}
	}
	if len(ticks) != 21 || labelled > 8 {
		t.Errorf("got %d ticks with %d labels", len(ticks), labelled)
	}

	ticks = curve.Log2Ticks{}.Ticks(5, 7)
	if len(ticks) != 2 || ticks[0].Value != 5 || ticks[1].Value != 7 {
		t.Errorf("got %v", ticks)
	}
}
