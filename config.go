package lcagg

import (
	"github.com/BurntSushi/toml"
	"github.com/hscells/lcagg/curve"
	"github.com/hscells/lcagg/scores"
	"github.com/pkg/errors"
)

// PlotConfig describes one set of learning curve images.
type PlotConfig struct {
	Dir        string `toml:"dir"`
	TrSet      string `toml:"tr_set"`
	XTickScale string `toml:"xtick_scale"`
	YTickScale string `toml:"ytick_scale"`
	Format     string `toml:"format"`
}

// Config is the optional TOML configuration of an aggregation.
type Config struct {
	Metrics     []string     `toml:"metrics"`
	TestSet     string       `toml:"test_set"`
	ScoreColumn string       `toml:"score_column"`
	AllScores   string       `toml:"all_scores"`
	TeScores    string       `toml:"te_scores"`
	JSON        bool         `toml:"json"`
	Plots       []PlotConfig `toml:"plot"`
}

// DefaultConfig writes all_scores and te_scores and plots mean absolute error
// and r2 on log2 and linear axes.
func DefaultConfig() Config {
	return Config{
		Metrics:     []string{"mean_absolute_error", "r2"},
		TestSet:     scores.TestSet,
		ScoreColumn: scores.Score,
		AllScores:   "all_scores",
		TeScores:    "te_scores",
		Plots: []PlotConfig{
			{Dir: "plots_log_scale", TrSet: scores.TestSet, XTickScale: "log2", YTickScale: "log2", Format: "png"},
			{Dir: "plots_linear_scale", TrSet: scores.TestSet, XTickScale: "linear", YTickScale: "linear", Format: "png"},
		},
	}
}

// LoadConfig reads a TOML file over the defaults. Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	c.Plots = nil
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, errors.Wrapf(err, "reading config %s", path)
	}
	if u := md.Undecoded(); len(u) > 0 {
		return c, errors.Errorf("unknown config keys in %s: %v", path, u)
	}
	if !md.IsDefined("plot") {
		c.Plots = DefaultConfig().Plots
	}
	return c, c.validate()
}

func (c Config) validate() error {
	if len(c.TestSet) == 0 {
		return errors.New("test_set must not be empty")
	}
	if len(c.ScoreColumn) == 0 {
		return errors.New("score_column must not be empty")
	}
	if len(c.AllScores) == 0 || len(c.TeScores) == 0 {
		return errors.New("all_scores and te_scores must not be empty")
	}
	for _, p := range c.Plots {
		if len(p.Dir) == 0 {
			return errors.New("plot dir must not be empty")
		}
		if _, err := p.options(c.ScoreColumn); err != nil {
			return errors.Wrapf(err, "plot %s", p.Dir)
		}
	}
	return nil
}

func (p PlotConfig) options(scoreColumn string) (curve.Options, error) {
	o := curve.DefaultOptions()
	o.ScoreColumn = scoreColumn
	if len(p.TrSet) > 0 {
		o.TrSet = p.TrSet
	}
	if len(p.Format) > 0 {
		o.Format = p.Format
	}
	var err error
	if len(p.XTickScale) > 0 {
		if o.XScale, err = curve.ParseScale(p.XTickScale); err != nil {
			return o, err
		}
	}
	if len(p.YTickScale) > 0 {
		if o.YScale, err = curve.ParseScale(p.YTickScale); err != nil {
			return o, err
		}
	}
	return o.Validate()
}
