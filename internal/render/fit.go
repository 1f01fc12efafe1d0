package render

import "math"

// Fitted maps a model's logical canvas onto a surface of another size,
// preserving aspect ratio and centering the result.
type Fitted struct {
	dst           Surface
	w, h          float64
	scale, ox, oy float64
}

func Fit(dst Surface, w, h float64) *Fitted {
	dw, dh := dst.Size()
	scale := math.Min(dw/w, dh/h)
	return &Fitted{
		dst:   dst,
		w:     w,
		h:     h,
		scale: scale,
		ox:    (dw - w*scale) / 2,
		oy:    (dh - h*scale) / 2,
	}
}

func (f *Fitted) px(x, y float64) (float64, float64) {
	return f.ox + x*f.scale, f.oy + y*f.scale
}

func (f *Fitted) Size() (float64, float64) { return f.w, f.h }

func (f *Fitted) Clear(c Color) { f.dst.Clear(c) }

func (f *Fitted) Line(x0, y0, x1, y1 float64, c Color) {
	ax, ay := f.px(x0, y0)
	bx, by := f.px(x1, y1)
	f.dst.Line(ax, ay, bx, by, c)
}

func (f *Fitted) Circle(x, y, r float64, c Color) {
	cx, cy := f.px(x, y)
	f.dst.Circle(cx, cy, r*f.scale, c)
}

func (f *Fitted) FillCircle(x, y, r float64, c Color) {
	cx, cy := f.px(x, y)
	f.dst.FillCircle(cx, cy, r*f.scale, c)
}

func (f *Fitted) Rect(x, y, w, h float64, c Color) {
	rx, ry := f.px(x, y)
	f.dst.Rect(rx, ry, w*f.scale, h*f.scale, c)
}

func (f *Fitted) FillRect(x, y, w, h float64, c Color) {
	rx, ry := f.px(x, y)
	f.dst.FillRect(rx, ry, w*f.scale, h*f.scale, c)
}

func (f *Fitted) Text(x, y float64, s string, c Color) {
	tx, ty := f.px(x, y)
	f.dst.Text(tx, ty, s, c)
}
