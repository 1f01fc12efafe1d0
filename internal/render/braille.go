package render

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// faintAlpha is the lowest alpha a dot is drawn with.
const faintAlpha = 0x40

// Braille is a terminal canvas where every character cell holds 2x4 dots.
// Its drawing size in dots is (Width*2) x (Height*4).
type Braille struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]Color
	text          [][]bool
}

func NewBraille(w, h int) *Braille {
	b := &Braille{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]Color, h),
		text:   make([][]bool, h),
	}
	for i := range b.Grid {
		b.Grid[i] = make([]rune, w)
		b.Colors[i] = make([]Color, w)
		b.text[i] = make([]bool, w)
	}
	b.Clear(Background)
	return b
}

func (b *Braille) Size() (float64, float64) {
	return float64(b.Width * 2), float64(b.Height * 4)
}

// Clear resets the canvas. Terminal cells have no background, so c is unused.
func (b *Braille) Clear(Color) {
	for i := range b.Grid {
		for j := range b.Grid[i] {
			b.Grid[i][j] = brailleBlank
			b.Colors[i][j] = Text
			b.text[i][j] = false
		}
	}
}

// Set sets the dot at (x, y) in dot coordinates. Faint colors are skipped
// and the background color erases.
func (b *Braille) Set(x, y int, c Color) {
	if x < 0 || y < 0 || c.A < faintAlpha {
		return
	}
	if c == Background {
		b.Unset(x, y)
		return
	}
	col, row := x/2, y/4
	if col >= b.Width || row >= b.Height || b.text[row][col] {
		return
	}
	b.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	b.Colors[row][col] = c
}

// Unset clears a dot.
func (b *Braille) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= b.Width || row >= b.Height || b.text[row][col] {
		return
	}
	b.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	if b.Grid[row][col] < brailleBlank {
		b.Grid[row][col] = brailleBlank
	}
}

// Line draws a line using Bresenham's algorithm.
func (b *Braille) Line(fx0, fy0, fx1, fy1 float64, c Color) {
	if !finite(fx0, fy0, fx1, fy1) {
		return
	}
	x0, y0, x1, y1 := round(fx0), round(fy0), round(fx1), round(fy1)
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		b.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Circle draws an outline using the midpoint algorithm.
func (b *Braille) Circle(fx, fy, fr float64, c Color) {
	if !finite(fx, fy, fr) || fr < 0 {
		return
	}
	cx, cy, r := round(fx), round(fy), round(fr)
	x, y := r, 0
	d := 1 - r
	for x >= y {
		for _, p := range [8][2]int{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		} {
			b.Set(cx+p[0], cy+p[1], c)
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

func (b *Braille) FillCircle(fx, fy, fr float64, c Color) {
	if !finite(fx, fy, fr) || fr < 0 {
		return
	}
	cx, cy, r := round(fx), round(fy), round(fr)
	for dy := -r; dy <= r; dy++ {
		span := int(math.Sqrt(float64(r*r - dy*dy)))
		for dx := -span; dx <= span; dx++ {
			b.Set(cx+dx, cy+dy, c)
		}
	}
}

func (b *Braille) Rect(x, y, w, h float64, c Color) {
	b.Line(x, y, x+w, y, c)
	b.Line(x+w, y, x+w, y+h, c)
	b.Line(x+w, y+h, x, y+h, c)
	b.Line(x, y+h, x, y, c)
}

func (b *Braille) FillRect(fx, fy, fw, fh float64, c Color) {
	if !finite(fx, fy, fw, fh) {
		return
	}
	x0, y0 := round(fx), round(fy)
	x1, y1 := round(fx+fw), round(fy+fh)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			b.Set(x, y, c)
		}
	}
}

// Text writes s starting at the cell containing dot (x, y). Text cells are
// protected from later dot drawing within the same frame.
func (b *Braille) Text(fx, fy float64, s string, c Color) {
	if !finite(fx, fy) {
		return
	}
	col, row := round(fx)/2, round(fy)/4
	if row < 0 || row >= b.Height {
		return
	}
	for _, r := range s {
		if col >= b.Width {
			break
		}
		if col >= 0 {
			b.Grid[row][col] = r
			b.Colors[row][col] = c
			b.text[row][col] = true
		}
		col++
	}
}

func (b *Braille) String() string {
	var sb strings.Builder
	for _, row := range b.Grid {
		sb.WriteString(string(row) + "\n")
	}
	return sb.String()
}

// Lines returns the rows with each run of same-colored cells passed through
// paint, which lets terminal front-ends add color.
func (b *Braille) Lines(paint func(c Color, s string) string) []string {
	out := make([]string, b.Height)
	for i, row := range b.Grid {
		var sb strings.Builder
		start := 0
		for j := 1; j <= len(row); j++ {
			if j == len(row) || b.Colors[i][j] != b.Colors[i][start] {
				sb.WriteString(paint(b.Colors[i][start], string(row[start:j])))
				start = j
			}
		}
		out[i] = sb.String()
	}
	return out
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func round(f float64) int { return int(math.Round(f)) }

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > 1e6 {
			return false
		}
	}
	return true
}
