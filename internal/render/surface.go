// Package render defines the drawing surface every simulation paints onto and
// the concrete surfaces used by the terminal, PNG and window front-ends.
//
// Drawing must be a pure read of model state: a model's Draw may be called any
// number of times per frame (or not at all) without changing what it shows next.
package render

import (
	"fmt"
	"math"
)

type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color { return Color{r, g, b, 255} }

func (c Color) WithAlpha(a uint8) Color { return Color{c.R, c.G, c.B, a} }

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette shared by the models.
var (
	Background = RGB(0x1e, 0x29, 0x3b)
	Grid       = Color{0x00, 0xd9, 0xff, 0x0d}
	Cyan       = RGB(0x00, 0xd9, 0xff)
	Amber      = RGB(0xff, 0xb5, 0x00)
	Pink       = RGB(0xff, 0x64, 0x96)
	Blue       = RGB(0x64, 0x96, 0xff)
	Green      = RGB(0x64, 0xff, 0x64)
	Red        = RGB(0xff, 0x64, 0x64)
	Text       = RGB(0xe2, 0xe8, 0xf0)
	Muted      = RGB(0x64, 0x74, 0x8b)
)

type Surface interface {
	Size() (w, h float64)
	Clear(c Color)
	Line(x0, y0, x1, y1 float64, c Color)
	Circle(x, y, r float64, c Color)
	FillCircle(x, y, r float64, c Color)
	Rect(x, y, w, h float64, c Color)
	FillRect(x, y, w, h float64, c Color)
	Text(x, y float64, s string, c Color)
}

// Polyline strokes consecutive points.
func Polyline(s Surface, xs, ys []float64, c Color) {
	for i := 1; i < len(xs) && i < len(ys); i++ {
		s.Line(xs[i-1], ys[i-1], xs[i], ys[i], c)
	}
}

// Arrow draws a line with a small head at (x1, y1).
func Arrow(s Surface, x0, y0, x1, y1, head float64, c Color) {
	s.Line(x0, y0, x1, y1, c)
	a := math.Atan2(y1-y0, x1-x0)
	for _, d := range []float64{math.Pi * 5 / 6, -math.Pi * 5 / 6} {
		s.Line(x1, y1, x1+head*math.Cos(a+d), y1+head*math.Sin(a+d), c)
	}
}

// GridLines paints the background grid every step units.
func GridLines(s Surface, step float64) {
	w, h := s.Size()
	for x := 0.0; x < w; x += step {
		s.Line(x, 0, x, h, Grid)
	}
	for y := 0.0; y < h; y += step {
		s.Line(0, y, w, y, Grid)
	}
}

// HeatColor maps a temperature to a blue→white→red ramp over [0, 100].
func HeatColor(temp float64) Color {
	n := math.Max(0, math.Min(1, temp/100))
	if n < 0.5 {
		t := n * 2
		return RGB(uint8(t*255), uint8(t*255), 255)
	}
	t := (n - 0.5) * 2
	return RGB(255, uint8((1-t)*255), uint8((1-t)*255))
}
