package render

import "fmt"

type Op struct {
	Kind  string
	Args  []float64
	Text  string
	Color Color
}

func (o Op) String() string {
	if o.Text != "" {
		return fmt.Sprintf("%s%v %q %s", o.Kind, o.Args, o.Text, o.Color.Hex())
	}
	return fmt.Sprintf("%s%v %s", o.Kind, o.Args, o.Color.Hex())
}

// Recorder is a Surface that keeps every drawing call.
type Recorder struct {
	W, H float64
	Ops  []Op
}

func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) add(kind string, c Color, args ...float64) {
	r.Ops = append(r.Ops, Op{Kind: kind, Args: args, Color: c})
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

func (r *Recorder) Clear(c Color) {
	r.Ops = r.Ops[:0]
	r.add("clear", c)
}

func (r *Recorder) Line(x0, y0, x1, y1 float64, c Color) { r.add("line", c, x0, y0, x1, y1) }

func (r *Recorder) Circle(x, y, rad float64, c Color) { r.add("circle", c, x, y, rad) }

func (r *Recorder) FillCircle(x, y, rad float64, c Color) { r.add("fillcircle", c, x, y, rad) }

func (r *Recorder) Rect(x, y, w, h float64, c Color) { r.add("rect", c, x, y, w, h) }

func (r *Recorder) FillRect(x, y, w, h float64, c Color) { r.add("fillrect", c, x, y, w, h) }

func (r *Recorder) Text(x, y float64, s string, c Color) {
	r.Ops = append(r.Ops, Op{Kind: "text", Args: []float64{x, y}, Text: s, Color: c})
}

// Texts returns every string drawn, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Equal reports whether two recordings hold the same operations.
func (r *Recorder) Equal(o *Recorder) bool {
	if len(r.Ops) != len(o.Ops) {
		return false
	}
	for i := range r.Ops {
		if r.Ops[i].String() != o.Ops[i].String() {
			return false
		}
	}
	return true
}
