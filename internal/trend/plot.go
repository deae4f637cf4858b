package trend

import (
	"bytes"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/clavicordio/bodymass-telegram-bot/internal/model"
)

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 5 * vg.Inch
)

// Render draws the series as a scatter plot, overlays the fitted trend line
// when the result carries one, and encodes the image to PNG. Every call
// builds its own plot so concurrent renders for different users cannot bleed
// into each other.
func Render(points []Point, res Result) ([]byte, error) {
	p := plot.New()
	p.Y.Label.Text = "body mass, kg"
	p.X.Tick.Marker = plot.TimeTicks{Format: model.DateFormat}
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = float64(pt.Date.Unix())
		xys[i].Y = pt.Mass
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("error building scatter: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(3)
	p.Add(scatter)

	if res.HasTrend && len(points) >= 2 {
		first := dayOrdinal(points[0].Date)
		last := dayOrdinal(points[len(points)-1].Date)
		line, err := plotter.NewLine(plotter.XYs{
			{X: float64(points[0].Date.Unix()), Y: res.alpha + res.beta*first},
			{X: float64(points[len(points)-1].Date.Unix()), Y: res.alpha + res.beta*last},
		})
		if err != nil {
			return nil, fmt.Errorf("error building trend line: %w", err)
		}
		p.Add(line)
	}

	wt, err := p.WriterTo(plotWidth, plotHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("error encoding plot: %w", err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("error writing plot: %w", err)
	}
	return buf.Bytes(), nil
}
