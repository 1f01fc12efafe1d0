package storage

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/physlab/internal/dynamo"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStoreSaveLoad(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	run := &Run{
		Simulation: "pendulum",
		Integrator: "rk4",
		Dt:         0.016,
		Duration:   0.032,
		Frames:     2,
		Params:     map[string]float64{"angle": 45},
		Metrics:    map[string]float64{"energy_drift": 0.01, "bad": math.Inf(1)},
	}
	series := Series{
		Labels: []string{"theta", "omega"},
		Times:  []float64{0, 0.016, 0.032},
		States: []dynamo.State{{0.78, 0}, {0.77, -0.1}, {0.75, -0.2}},
	}

	id, err := st.Save(ctx, run, series)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id == "" || run.ID != id {
		t.Errorf("expected run id to be assigned, got %q", id)
	}

	got, err := st.Load(ctx, id[:8])
	if err != nil {
		t.Fatalf("load by prefix failed: %v", err)
	}
	if got.Simulation != "pendulum" || got.Params["angle"] != 45 {
		t.Errorf("unexpected run: %+v", got)
	}
	if got.Metrics["energy_drift"] != 0.01 {
		t.Errorf("expected drift 0.01, got %f", got.Metrics["energy_drift"])
	}
	if _, ok := got.Metrics["bad"]; ok {
		t.Error("non-finite metric should be dropped")
	}

	loaded, err := st.LoadSeries(id)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(loaded.States) != 3 || len(loaded.Times) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(loaded.States))
	}
	if loaded.Labels[1] != "omega" || loaded.States[2][1] != -0.2 {
		t.Errorf("series mismatch: %+v", loaded)
	}

	size, err := st.SeriesSize(id)
	if err != nil || size == 0 {
		t.Errorf("expected a non-empty series file, got %d (%v)", size, err)
	}
}

func TestStoreList(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, sim := range []string{"pendulum", "collisions", "pendulum"} {
		run := &Run{Simulation: sim, Integrator: "euler", Dt: 0.016, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if _, err := st.Save(ctx, run, Series{}); err != nil {
			t.Fatal(err)
		}
	}

	all, err := st.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(all))
	}
	if !all[0].CreatedAt.After(all[1].CreatedAt) {
		t.Error("expected newest first")
	}

	pend, err := st.List(ctx, "pendulum")
	if err != nil {
		t.Fatal(err)
	}
	if len(pend) != 2 {
		t.Errorf("expected 2 pendulum runs, got %d", len(pend))
	}
}

func TestStoreNotFound(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	if _, err := st.Load(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := st.LoadSeries("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := st.Delete(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreLoadPrefixIsLiteral(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	id, err := st.Save(ctx, &Run{Simulation: "ohms-law"}, Series{Times: []float64{0}, States: []dynamo.State{{3}}})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		id   string
		want error
	}{
		{"empty", "", ErrEmptyID},
		{"blank", "   ", ErrEmptyID},
		{"percent", "%", ErrNotFound},
		{"underscore", "_", ErrNotFound},
		{"wildcard after prefix", id[:4] + "%", ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := st.Load(ctx, tt.id); !errors.Is(err, tt.want) {
				t.Errorf("Load(%q) = %v, want %v", tt.id, err, tt.want)
			}
		})
	}

	got, err := st.Load(ctx, id[:6])
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != id {
		t.Errorf("ID = %s, want %s", got.ID, id)
	}
}

func TestStoreDelete(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	id, err := st.Save(ctx, &Run{Simulation: "heat-transfer"}, Series{Times: []float64{0}, States: []dynamo.State{{20}}})
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Delete(ctx, id); err != nil {
		t.Fatal(err)
	}
	if _, err := st.LoadSeries(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("series should be gone, got %v", err)
	}
}
