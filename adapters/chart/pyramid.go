package chart

import (
	"fmt"
	"image/color"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"popgen/internal/errors"
	"popgen/ports"
)

var (
	maleColor   = color.RGBA{R: 52, G: 152, B: 219, A: 255}
	femaleColor = color.RGBA{R: 231, G: 76, B: 60, A: 255}
)

// Config holds chart rendering settings.
type Config struct {
	WidthInches  float64
	HeightInches float64
	DPI          int
}

// DefaultConfig returns the standard pyramid canvas: 12x8 inches at 150 DPI.
func DefaultConfig() Config {
	return Config{
		WidthInches:  12,
		HeightInches: 8,
		DPI:          150,
	}
}

// Renderer builds population pyramids. It holds only immutable settings;
// every Render call constructs a fresh plot, so charts generated in one
// batch share no drawing state.
type Renderer struct {
	config Config
}

// NewRenderer creates a renderer with the given canvas settings.
func NewRenderer(config Config) *Renderer {
	return &Renderer{config: config}
}

// Pyramid is one rendered population pyramid. The numeric geometry is
// exposed alongside the plot so callers can inspect axis limits and bar
// extents without rasterizing.
type Pyramid struct {
	Country string
	Year    int

	// XLimit is the symmetric horizontal axis bound: 1.15 x the larger of
	// the male and female maxima.
	XLimit float64
	// MaleExtents are the plotted male bar lengths (negated, extending
	// left); FemaleExtents are the female lengths (positive, extending
	// right). Both are in thousands, index-aligned with the age labels.
	MaleExtents   []float64
	FemaleExtents []float64

	plot   *plot.Plot
	width  vg.Length
	height vg.Length
	dpi    int
}

// Render converts the paired count vectors into a mirrored horizontal bar
// chart. Counts are already in thousands and are plotted as-is; male values
// are negated to extend left of the shared zero axis. The annotate flag
// adds a value label at half of each non-zero bar's extent.
func (r *Renderer) Render(male, female []float64, labels []string, country string, year int, annotate bool) (ports.Chart, error) {
	if len(labels) == 0 {
		return nil, errors.InvalidInput("no age bands to plot")
	}
	if len(male) != len(labels) || len(female) != len(labels) {
		return nil, errors.InvalidInput("count vectors and age labels must have equal length")
	}

	maleExtents := make([]float64, len(male))
	copy(maleExtents, male)
	floats.Scale(-1, maleExtents)
	femaleExtents := make([]float64, len(female))
	copy(femaleExtents, female)

	limit := 1.15 * math.Max(floats.Max(female), math.Abs(floats.Min(maleExtents)))
	if limit == 0 {
		// All-zero input: keep a non-degenerate axis.
		limit = 1
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Population Pyramid: %s (%d)", country, year)
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Population (thousands)"
	p.Y.Label.Text = "Age Group"

	maleBars, err := plotter.NewBarChart(plotter.Values(maleExtents), vg.Points(14))
	if err != nil {
		return nil, errors.RenderFailed("failed to build male bars", err)
	}
	maleBars.Horizontal = true
	maleBars.Color = maleColor
	maleBars.LineStyle.Width = vg.Length(0)

	femaleBars, err := plotter.NewBarChart(plotter.Values(femaleExtents), vg.Points(14))
	if err != nil {
		return nil, errors.RenderFailed("failed to build female bars", err)
	}
	femaleBars.Horizontal = true
	femaleBars.Color = femaleColor
	femaleBars.LineStyle.Width = vg.Length(0)

	p.Add(plotter.NewGrid())
	p.Add(maleBars)
	p.Add(femaleBars)
	p.Legend.Add("Male", maleBars)
	p.Legend.Add("Female", femaleBars)
	p.Legend.Top = true

	p.NominalY(labels...)
	p.X.Min = -limit
	p.X.Max = limit
	// Underlying male values are signed; ticks show absolute magnitude in
	// thousands on both sides of the zero axis.
	p.X.Tick.Marker = absoluteTicker{base: plot.DefaultTicks{}}

	if err := addZeroAxis(p, len(labels)); err != nil {
		return nil, err
	}
	if annotate {
		if err := addBarLabels(p, maleExtents, femaleExtents); err != nil {
			return nil, err
		}
	}
	if err := addSummaryBox(p, male, female, limit, len(labels)); err != nil {
		return nil, err
	}

	return &Pyramid{
		Country:       country,
		Year:          year,
		XLimit:        limit,
		MaleExtents:   maleExtents,
		FemaleExtents: femaleExtents,
		plot:          p,
		width:         vg.Length(r.config.WidthInches) * vg.Inch,
		height:        vg.Length(r.config.HeightInches) * vg.Inch,
		dpi:           r.config.DPI,
	}, nil
}

// addZeroAxis draws the shared vertical axis the two bar sets extend from.
func addZeroAxis(p *plot.Plot, bands int) error {
	axis, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: -0.5},
		{X: 0, Y: float64(bands) - 0.5},
	})
	if err != nil {
		return errors.RenderFailed("failed to build zero axis", err)
	}
	axis.Color = color.Black
	axis.Width = vg.Points(1.2)
	p.Add(axis)
	return nil
}

// addBarLabels centers a value label at half of each bar's extent,
// skipping zero-valued bars.
func addBarLabels(p *plot.Plot, maleExtents, femaleExtents []float64) error {
	var points plotter.XYs
	var texts []string
	for i, v := range maleExtents {
		if v == 0 {
			continue
		}
		points = append(points, plotter.XY{X: v * 0.5, Y: float64(i)})
		texts = append(texts, fmt.Sprintf("%.1fk", math.Abs(v)))
	}
	for i, v := range femaleExtents {
		if v == 0 {
			continue
		}
		points = append(points, plotter.XY{X: v * 0.5, Y: float64(i)})
		texts = append(texts, fmt.Sprintf("%.1fk", v))
	}
	if len(points) == 0 {
		return nil
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: texts})
	if err != nil {
		return errors.RenderFailed("failed to build bar labels", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
		labels.TextStyle[i].Font.Size = vg.Points(7)
	}
	p.Add(labels)
	return nil
}

// addSummaryBox reports total, male, and female population in the top-left
// corner. All three figures stay in thousands.
func addSummaryBox(p *plot.Plot, male, female []float64, limit float64, bands int) error {
	totalMale, _ := stats.Sum(male)
	totalFemale, _ := stats.Sum(female)
	summary := fmt.Sprintf("Total: %.1fk\nMale: %.1fk\nFemale: %.1fk",
		totalMale+totalFemale, totalMale, totalFemale)

	box, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: -limit * 0.95, Y: float64(bands) - 1}},
		Labels: []string{summary},
	})
	if err != nil {
		return errors.RenderFailed("failed to build summary box", err)
	}
	for i := range box.TextStyle {
		box.TextStyle[i].Font.Size = vg.Points(10)
	}
	p.Add(box)
	return nil
}

// absoluteTicker rewrites default tick labels to absolute magnitudes with a
// thousands suffix.
type absoluteTicker struct {
	base plot.Ticker
}

func (t absoluteTicker) Ticks(min, max float64) []plot.Tick {
	ticks := t.base.Ticks(min, max)
	for i, tick := range ticks {
		if tick.Label == "" {
			continue
		}
		ticks[i].Label = fmt.Sprintf("%.0fk", math.Abs(tick.Value))
	}
	return ticks
}
