package curve

import (
	"strings"

	"github.com/hscells/lcagg/scores"
	"github.com/pkg/errors"
	"gonum.org/v1/plot/vg"
)

// Scale is the scaling of a plot axis.
type Scale string

const (
	// Log2 places sizes on a base two logarithmic axis.
	Log2 Scale = "log2"
	// Linear places values on an evenly spaced axis.
	Linear Scale = "linear"
)

// ErrUnknownScale is returned when parsing an unrecognised axis scale.
var ErrUnknownScale = errors.New("unknown axis scale")

// ParseScale parses "log2" or "linear".
func ParseScale(s string) (Scale, error) {
	switch Scale(strings.ToLower(s)) {
	case Log2:
		return Log2, nil
	case Linear:
		return Linear, nil
	}
	return "", errors.Wrap(ErrUnknownScale, s)
}

var formats = map[string]bool{"png": true, "svg": true, "pdf": true, "eps": true, "jpg": true, "tif": true}

// Options configures how learning curves are drawn.
type Options struct {
	// TrSet is the evaluation set whose scores are plotted.
	TrSet  string
	XScale Scale
	YScale Scale
	// Format is the image format, which is also the file extension.
	Format      string
	ScoreColumn string
	Width       vg.Length
	Height      vg.Length
}

// DefaultOptions plots test set scores on linear axes as PNG images.
func DefaultOptions() Options {
	return Options{
		TrSet:       scores.TestSet,
		XScale:      Linear,
		YScale:      Linear,
		Format:      "png",
		ScoreColumn: scores.Score,
		Width:       6 * vg.Inch,
		Height:      4 * vg.Inch,
	}
}

// Validate fills zero values with defaults and checks the scales and format.
func (o Options) Validate() (Options, error) {
	d := DefaultOptions()
	if len(o.TrSet) == 0 {
		o.TrSet = d.TrSet
	}
	if len(o.XScale) == 0 {
		o.XScale = d.XScale
	}
	if len(o.YScale) == 0 {
		o.YScale = d.YScale
	}
	if len(o.Format) == 0 {
		o.Format = d.Format
	}
	if len(o.ScoreColumn) == 0 {
		o.ScoreColumn = d.ScoreColumn
	}
	if o.Width == 0 {
		o.Width = d.Width
	}
	if o.Height == 0 {
		o.Height = d.Height
	}
	for _, s := range []Scale{o.XScale, o.YScale} {
		if _, err := ParseScale(string(s)); err != nil {
			return o, err
		}
	}
	if !formats[o.Format] {
		return o, errors.Errorf("unsupported image format %q", o.Format)
	}
	return o, nil
}
