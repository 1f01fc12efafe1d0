package render

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBrailleSetAndString(t *testing.T) {
	b := NewBraille(2, 1)
	b.Set(0, 0, Cyan)
	b.Set(1, 3, Cyan)
	got := []rune(strings.TrimSuffix(b.String(), "\n"))
	if got[0] != rune(brailleBlank|0x1|0x80) {
		t.Errorf("cell 0 = %U", got[0])
	}
	if got[1] != brailleBlank {
		t.Errorf("cell 1 = %U, want blank", got[1])
	}

	b.Unset(0, 0)
	if b.Grid[0][0] != brailleBlank|0x80 {
		t.Errorf("after unset = %U", b.Grid[0][0])
	}
}

func TestBrailleFaintAndBackground(t *testing.T) {
	b := NewBraille(4, 2)
	GridLines(b, 2)
	if strings.Trim(b.String(), string(rune(brailleBlank))+"\n") != "" {
		t.Error("grid lines should be too faint for braille")
	}
	b.Set(0, 0, Cyan)
	b.Set(0, 0, Background)
	if b.Grid[0][0] != brailleBlank {
		t.Errorf("background should erase, got %U", b.Grid[0][0])
	}
}

func TestBrailleOutOfBounds(t *testing.T) {
	b := NewBraille(4, 2)
	b.Set(-1, 0, Cyan)
	b.Set(100, 100, Cyan)
	b.Line(0, 0, 1e12, 5, Cyan)
	for _, row := range b.Grid {
		for _, r := range row {
			if r != brailleBlank {
				t.Fatalf("unexpected dot %U", r)
			}
		}
	}
}

func TestBrailleLine(t *testing.T) {
	b := NewBraille(4, 1)
	b.Line(0, 0, 7, 0, Cyan)
	for i, r := range b.Grid[0] {
		if r != brailleBlank|0x1|0x8 {
			t.Errorf("cell %d = %U", i, r)
		}
	}
}

func TestBrailleText(t *testing.T) {
	b := NewBraille(10, 2)
	b.Text(4, 4, "hi", Amber)
	b.Set(4, 4, Cyan)
	if got := string(b.Grid[1][2:4]); got != "hi" {
		t.Errorf("text = %q", got)
	}
	if b.Colors[1][2] != Amber {
		t.Errorf("text color overwritten")
	}

	lines := b.Lines(func(c Color, s string) string { return "[" + s + "]" })
	if !strings.Contains(lines[1], "[hi]") {
		t.Errorf("lines[1] = %q", lines[1])
	}
}

func TestBrailleCircleSymmetric(t *testing.T) {
	b := NewBraille(10, 5)
	b.Circle(10, 10, 6, Cyan)
	w, h := b.Size()
	if w != 20 || h != 20 {
		t.Fatalf("size = %v x %v", w, h)
	}
	dot := func(x, y int) bool {
		return b.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
	}
	for _, p := range [][2]int{{16, 10}, {4, 10}, {10, 16}, {10, 4}} {
		if !dot(p[0], p[1]) {
			t.Errorf("missing dot at %v", p)
		}
	}
	if dot(10, 10) {
		t.Error("outline circle filled its center")
	}
}

func TestFit(t *testing.T) {
	rec := NewRecorder(400, 100)
	f := Fit(rec, 200, 100)
	if w, h := f.Size(); w != 200 || h != 100 {
		t.Fatalf("logical size = %v x %v", w, h)
	}
	f.Line(0, 0, 200, 100, Cyan)
	f.Circle(100, 50, 10, Cyan)

	line := rec.Ops[0].Args
	want := []float64{100, 0, 300, 100}
	for i := range want {
		if line[i] != want[i] {
			t.Fatalf("line = %v, want %v", line, want)
		}
	}
	if c := rec.Ops[1].Args; c[0] != 200 || c[1] != 50 || c[2] != 10 {
		t.Errorf("circle = %v", c)
	}
}

func TestHeatColor(t *testing.T) {
	tests := []struct {
		temp float64
		want Color
	}{
		{-20, RGB(0, 0, 255)},
		{0, RGB(0, 0, 255)},
		{50, RGB(255, 255, 255)},
		{100, RGB(255, 0, 0)},
		{150, RGB(255, 0, 0)},
	}
	for _, tt := range tests {
		if got := HeatColor(tt.temp); got != tt.want {
			t.Errorf("HeatColor(%v) = %v, want %v", tt.temp, got, tt.want)
		}
	}
}

func TestColorHex(t *testing.T) {
	if got := Cyan.Hex(); got != "#00d9ff" {
		t.Errorf("Hex = %s", got)
	}
}

func TestRecorderEqual(t *testing.T) {
	a, b := NewRecorder(10, 10), NewRecorder(10, 10)
	for _, r := range []*Recorder{a, b} {
		r.Clear(Background)
		r.FillRect(1, 2, 3, 4, Red)
		r.Text(1, 1, "x", Text)
	}
	if !a.Equal(b) {
		t.Error("identical recordings differ")
	}
	b.Line(0, 0, 1, 1, Red)
	if a.Equal(b) {
		t.Error("different recordings equal")
	}
	if got := a.Texts(); len(got) != 1 || got[0] != "x" {
		t.Errorf("Texts = %v", got)
	}
	if a.Count("fillrect") != 1 {
		t.Errorf("Count(fillrect) = %d", a.Count("fillrect"))
	}
}

func TestRasterPNG(t *testing.T) {
	r := NewRaster(64, 32)
	defer r.Close()
	r.Clear(Background)
	r.FillCircle(16, 16, 8, Amber)
	r.Line(0, 0, 63, 31, Cyan)
	r.Text(2, 12, "ok", Text)

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("bounds = %v", b)
	}
}

func TestRasterSavePNG(t *testing.T) {
	r := NewRaster(32, 16)
	defer r.Close()
	r.Clear(Background)
	r.FillRect(4, 4, 8, 8, Green)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := r.SavePNG(path); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("decode saved file: %v", err)
	}

	if err := r.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("expected create error")
	}
}

func TestRasterSavePNGReportsWriteFailure(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("no /dev/full")
	}
	r := NewRaster(32, 16)
	defer r.Close()
	r.Clear(Background)
	if err := r.SavePNG("/dev/full"); err == nil {
		t.Error("expected write error on a full device")
	}
}
