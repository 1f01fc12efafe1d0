package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/storage"
)

var ErrNoData = errors.New("export: no data")

var seriesColors = []render.Color{render.Cyan, render.Amber, render.Pink, render.Green, render.Blue, render.Red}

// ChartOptions selects what ChartPNG draws. Columns are state indices; an
// empty Columns draws every column.
type ChartOptions struct {
	Title   string
	Columns []int
	Width   vg.Length
	Height  vg.Length
	DPI     int
}

func (o ChartOptions) withDefaults() ChartOptions {
	if o.Width == 0 {
		o.Width = 8 * vg.Inch
	}
	if o.Height == 0 {
		o.Height = 4 * vg.Inch
	}
	if o.DPI == 0 {
		o.DPI = 96
	}
	return o
}

// ChartPNG plots recorded state columns against time.
func ChartPNG(w io.Writer, series storage.Series, opts ChartOptions) error {
	opts = opts.withDefaults()
	if len(series.States) == 0 || len(series.Times) != len(series.States) {
		return ErrNoData
	}
	cols := opts.Columns
	if len(cols) == 0 {
		for i := range series.Labels {
			cols = append(cols, i)
		}
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "time (s)"
	p.Add(plotter.NewGrid())

	drawn := 0
	for n, c := range cols {
		if c < 0 || c >= len(series.Labels) {
			return fmt.Errorf("export: column %d out of range [0, %d)", c, len(series.Labels))
		}
		pts := make(plotter.XYs, 0, len(series.States))
		for i, x := range series.States {
			if c >= len(x) || math.IsNaN(x[c]) || math.IsInf(x[c], 0) {
				continue
			}
			pts = append(pts, plotter.XY{X: series.Times[i], Y: x[c]})
		}
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("export: %s: %w", series.Labels[c], err)
		}
		rc := seriesColors[n%len(seriesColors)]
		line.LineStyle.Color = color.RGBA{R: rc.R, G: rc.G, B: rc.B, A: rc.A}
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(series.Labels[c], line)
		drawn++
	}
	if drawn == 0 {
		return ErrNoData
	}
	p.Legend.Top = true

	canvas := vgimg.NewWith(vgimg.UseWH(opts.Width, opts.Height), vgimg.UseDPI(opts.DPI))
	p.Draw(draw.New(canvas))
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(w); err != nil {
		return fmt.Errorf("export: write png: %w", err)
	}
	return nil
}
