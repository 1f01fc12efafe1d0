package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/physlab/internal/render"
)

// Screen is a render.Surface over a rectangle of the raylib window.
type Screen struct {
	X, Y, W, H float32
	Font       rl.Font
}

func (s *Screen) Size() (float64, float64) { return float64(s.W), float64(s.H) }

func (s *Screen) v(x, y float64) rl.Vector2 {
	return rl.NewVector2(s.X+float32(x), s.Y+float32(y))
}

func (s *Screen) Clear(c render.Color) {
	rl.DrawRectangleRec(rl.NewRectangle(s.X, s.Y, s.W, s.H), col(c))
}

func (s *Screen) Line(x0, y0, x1, y1 float64, c render.Color) {
	rl.DrawLineEx(s.v(x0, y0), s.v(x1, y1), 1.5, col(c))
}

func (s *Screen) Circle(x, y, r float64, c render.Color) {
	p := s.v(x, y)
	rl.DrawCircleLines(int32(p.X), int32(p.Y), float32(r), col(c))
}

func (s *Screen) FillCircle(x, y, r float64, c render.Color) {
	rl.DrawCircleV(s.v(x, y), float32(r), col(c))
}

func (s *Screen) Rect(x, y, w, h float64, c render.Color) {
	p := s.v(x, y)
	rl.DrawRectangleLinesEx(rl.NewRectangle(p.X, p.Y, float32(w), float32(h)), 1.5, col(c))
}

func (s *Screen) FillRect(x, y, w, h float64, c render.Color) {
	p := s.v(x, y)
	rl.DrawRectangleRec(rl.NewRectangle(p.X, p.Y, float32(w), float32(h)), col(c))
}

func (s *Screen) Text(x, y float64, str string, c render.Color) {
	rl.DrawTextEx(s.Font, str, s.v(x, y-12), 14, 1, col(c))
}

func col(c render.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
