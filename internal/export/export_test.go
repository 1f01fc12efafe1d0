package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/physlab/internal/analysis"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/storage"
)

func sineSeries(n int) storage.Series {
	s := storage.Series{Labels: []string{"x", "v"}}
	for i := range n {
		t := float64(i) * 0.05
		s.Times = append(s.Times, t)
		s.States = append(s.States, dynamo.State{math.Sin(t), math.Cos(t)})
	}
	return s
}

func TestBrailleToSVG(t *testing.T) {
	b := render.NewBraille(4, 2)
	b.Set(0, 0, render.Cyan)
	b.Set(7, 7, render.Amber)
	b.Text(0, 4, "A", render.Text)

	svg := BrailleToSVG(b, 2)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("circles = %d, want 2", got)
	}
	for _, want := range []string{render.Cyan.Hex(), render.Amber.Hex(), ">A</text>"} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if BrailleToSVG(nil, 1) != "" {
		t.Error("nil canvas should export nothing")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	pts := []analysis.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}
	svg := TrajectoryToSVG(pts, 100, 50, "#00d9ff")
	if got := strings.Count(svg, " L"); got != 2 {
		t.Errorf("segments = %d, want 2", got)
	}
	if TrajectoryToSVG(pts[:1], 100, 50, "#fff") != "" {
		t.Error("single point should export nothing")
	}
}

func TestChartPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := ChartPNG(&buf, sineSeries(100), ChartOptions{Title: "sine"}); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 8*96 {
		t.Errorf("width = %d, want %d", img.Bounds().Dx(), 8*96)
	}

	if err := ChartPNG(&buf, storage.Series{}, ChartOptions{}); !errors.Is(err, ErrNoData) {
		t.Errorf("empty series: err = %v, want ErrNoData", err)
	}
	if err := ChartPNG(&buf, sineSeries(10), ChartOptions{Columns: []int{5}}); err == nil {
		t.Error("out of range column accepted")
	}

	nan := storage.Series{Labels: []string{"x"}, Times: []float64{0, 1}, States: []dynamo.State{{math.NaN()}, {math.Inf(1)}}}
	if err := ChartPNG(&buf, nan, ChartOptions{}); !errors.Is(err, ErrNoData) {
		t.Errorf("non-finite series: err = %v, want ErrNoData", err)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sineSeries(3)); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want 4", len(lines))
	}
	if lines[0] != "t,x,v" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "0,0,1" {
		t.Errorf("first row = %q", lines[1])
	}
}

func TestWriteJSON(t *testing.T) {
	run := storage.Run{
		ID:         "abc",
		Simulation: "pendulum",
		Dt:         0.016,
		Params:     map[string]float64{"angle": 45},
		Metrics:    map[string]float64{"energy_drift": math.NaN()},
		CreatedAt:  time.Unix(0, 0).UTC(),
	}
	series := storage.Series{
		Labels: []string{"theta"},
		Times:  []float64{0, 0.016},
		States: []dynamo.State{{0.5}, {math.Inf(1)}},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, NewDocument(run, series)); err != nil {
		t.Fatal(err)
	}

	var got struct {
		Simulation string              `json:"simulation"`
		Params     map[string]float64  `json:"params"`
		Metrics    map[string]*float64 `json:"metrics"`
		Samples    []struct {
			T      float64    `json:"t"`
			Values []*float64 `json:"values"`
		} `json:"samples"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if got.Simulation != "pendulum" || got.Params["angle"] != 45 {
		t.Errorf("metadata = %+v", got)
	}
	if got.Metrics["energy_drift"] != nil {
		t.Error("NaN metric should encode as null")
	}
	if len(got.Samples) != 2 || *got.Samples[0].Values[0] != 0.5 || got.Samples[1].Values[0] != nil {
		t.Errorf("samples = %+v", got.Samples)
	}
}
