package render

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/gogpu/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

type label struct {
	x, y float64
	s    string
	c    Color
}

// Raster draws onto an offscreen gg context. Text is composited with a
// fixed bitmap face when the image is taken, since gg needs a loaded font
// source to draw strings itself.
type Raster struct {
	dc     *gg.Context
	w, h   int
	labels []label
	err    error
}

func NewRaster(w, h int) *Raster {
	return &Raster{dc: gg.NewContext(w, h), w: w, h: h}
}

func (r *Raster) Size() (float64, float64) { return float64(r.w), float64(r.h) }

func (r *Raster) Clear(c Color) {
	r.dc.ClearWithColor(toGG(c))
	r.labels = r.labels[:0]
}

func (r *Raster) Line(x0, y0, x1, y1 float64, c Color) {
	r.dc.SetLineWidth(1.5)
	r.dc.DrawLine(x0, y0, x1, y1)
	r.stroke(c)
}

func (r *Raster) Circle(x, y, rad float64, c Color) {
	r.dc.SetLineWidth(1.5)
	r.dc.DrawCircle(x, y, rad)
	r.stroke(c)
}

func (r *Raster) FillCircle(x, y, rad float64, c Color) {
	r.dc.DrawCircle(x, y, rad)
	r.fill(c)
}

func (r *Raster) Rect(x, y, w, h float64, c Color) {
	r.dc.SetLineWidth(1.5)
	r.dc.DrawRectangle(x, y, w, h)
	r.stroke(c)
}

func (r *Raster) FillRect(x, y, w, h float64, c Color) {
	r.dc.DrawRectangle(x, y, w, h)
	r.fill(c)
}

func (r *Raster) Text(x, y float64, s string, c Color) {
	r.labels = append(r.labels, label{x, y, s, c})
}

func (r *Raster) stroke(c Color) {
	setColor(r.dc, c)
	if err := r.dc.Stroke(); err != nil && r.err == nil {
		r.err = fmt.Errorf("stroke: %w", err)
	}
}

func (r *Raster) fill(c Color) {
	setColor(r.dc, c)
	if err := r.dc.Fill(); err != nil && r.err == nil {
		r.err = fmt.Errorf("fill: %w", err)
	}
}

// Err reports the first drawing error since construction.
func (r *Raster) Err() error { return r.err }

// Image returns the frame with text labels composited on top.
func (r *Raster) Image() *image.RGBA {
	src := r.dc.Image()
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)

	d := &font.Drawer{Dst: dst, Face: basicfont.Face7x13}
	for _, l := range r.labels {
		d.Src = image.NewUniform(color.NRGBA{l.c.R, l.c.G, l.c.B, l.c.A})
		d.Dot = fixed.P(int(l.x), int(l.y))
		d.DrawString(l.s)
	}
	return dst
}

func (r *Raster) EncodePNG(w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	return png.Encode(w, r.Image())
}

func (r *Raster) SavePNG(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := r.EncodePNG(bw); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (r *Raster) Close() error { return r.dc.Close() }

func toGG(c Color) gg.RGBA {
	return gg.RGBA2(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}

func setColor(dc *gg.Context, c Color) {
	dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}
