package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/param"
	"github.com/san-kum/physlab/internal/render"
)

// fall is a minimal integrated model: a body dropped from height h.
type fall struct {
	h, g   float64
	y, v   float64
	resets int
}

func (f *fall) Info() Info {
	return Info{Name: "fall", Title: "Fall", Kind: Euler, Width: 100, Height: 100}
}

func (f *fall) Specs() []param.Spec {
	return []param.Spec{
		{Key: "height", Label: "height", Min: 1, Max: 10, Default: 5, LockedWhileRunning: true},
		{Key: "gravity", Label: "gravity", Min: 1, Max: 20, Default: 10},
	}
}

func (f *fall) GetParams() map[string]float64 {
	return map[string]float64{"height": f.h, "gravity": f.g}
}

func (f *fall) SetParam(name string, v float64) error {
	switch name {
	case "height":
		f.h = v
	case "gravity":
		f.g = v
	default:
		return dynamo.UnknownParam(name)
	}
	return nil
}

func (f *fall) Reset() {
	f.y, f.v = f.h, 0
	f.resets++
}

func (f *fall) Step(dt float64) {
	f.v += f.g * dt
	f.y -= f.v * dt
	if f.y < 0 {
		f.y = 0
	}
}

func (f *fall) Finished() bool { return f.y <= 0 }

func (f *fall) Readings() []Reading {
	return []Reading{{Key: "y", Label: "height", Value: f.y, Unit: "m"}}
}

func (f *fall) Draw(s render.Surface) {
	s.FillCircle(50, 100-f.y*10, 3, render.Amber)
}

type recordListener struct {
	params  map[string]float64
	running []bool
}

func (r *recordListener) ParamChanged(k string, v float64) { r.params[k] = v }
func (r *recordListener) RunningChanged(b bool)            { r.running = append(r.running, b) }

func newFall(t *testing.T, opts ...Option) (*Session, *fall) {
	t.Helper()
	m := &fall{}
	s, err := NewSession(m, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return s, m
}

func TestNewSessionAppliesDefaults(t *testing.T) {
	s, m := newFall(t)
	if m.h != 5 || m.g != 10 {
		t.Errorf("model params = %v", m.GetParams())
	}
	if m.y != 5 {
		t.Errorf("y = %v, want 5 after reset", m.y)
	}
	if s.Running() {
		t.Error("euler session should start paused")
	}
}

func TestCommitRejectsOutOfRange(t *testing.T) {
	s, m := newFall(t)
	_, err := s.Commit("height", "50")
	if !errors.Is(err, param.ErrOutOfRange) {
		t.Fatalf("err = %v, want ErrOutOfRange", err)
	}
	if got := s.Params().Get("height"); got != 5 {
		t.Errorf("committed height = %v, want 5", got)
	}
	if m.h != 5 {
		t.Errorf("model height = %v, want 5", m.h)
	}
}

func TestCommitResetsAndPauses(t *testing.T) {
	s, m := newFall(t)
	s.Start()
	for i := 0; i < 10; i++ {
		if err := s.Tick(dynamo.FrameDt); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.Commit("gravity", "2"); err != nil {
		t.Fatal(err)
	}
	if s.Running() {
		t.Error("commit should pause an integrated view")
	}
	if m.y != 5 || s.Time() != 0 {
		t.Errorf("y=%v t=%v, want fresh state", m.y, s.Time())
	}
}

func TestLockedWhileRunning(t *testing.T) {
	s, _ := newFall(t)
	s.Start()
	if _, err := s.Commit("height", "3"); !errors.Is(err, ErrLocked) {
		t.Fatalf("err = %v, want ErrLocked", err)
	}
	if _, err := s.CommitAll(map[string]string{"gravity": "3", "height": "3"}); !errors.Is(err, ErrLocked) {
		t.Fatalf("CommitAll err = %v, want ErrLocked", err)
	}
	if s.Params().Get("gravity") != 10 {
		t.Error("CommitAll partially applied")
	}
	if _, err := s.Commit("gravity", "3"); err != nil {
		t.Errorf("unlocked param rejected: %v", err)
	}
}

func TestResetParamsHonoursLocks(t *testing.T) {
	s, m := newFall(t)
	if _, err := s.Commit("height", "8"); err != nil {
		t.Fatal(err)
	}
	s.Start()
	if err := s.ResetParams(); !errors.Is(err, ErrLocked) {
		t.Fatalf("err = %v, want ErrLocked", err)
	}
	if m.h != 8 || s.Params().Get("height") != 8 {
		t.Errorf("height changed while running: model %v, committed %v", m.h, s.Params().Get("height"))
	}
	if !s.Running() {
		t.Error("rejected reset should not pause")
	}

	s.Pause()
	if err := s.ResetParams(); err != nil {
		t.Fatal(err)
	}
	if m.h != 5 {
		t.Errorf("height = %v, want default 5", m.h)
	}
}

func TestResetParamsRunningUnlocked(t *testing.T) {
	s, m := newFall(t)
	if _, err := s.Commit("gravity", "15"); err != nil {
		t.Fatal(err)
	}
	s.Start()
	if err := s.ResetParams(); err != nil {
		t.Fatalf("unlocked reset while running: %v", err)
	}
	if m.g != 10 {
		t.Errorf("gravity = %v, want 10", m.g)
	}
}

func TestCommitAllAtomic(t *testing.T) {
	s, m := newFall(t)
	_, err := s.CommitAll(map[string]string{"height": "2", "gravity": "abc"})
	if !errors.Is(err, param.ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
	if m.h != 5 || m.g != 10 {
		t.Errorf("model changed: %v", m.GetParams())
	}
	vals, err := s.CommitAll(map[string]string{"height": "2", "gravity": "4"})
	if err != nil {
		t.Fatal(err)
	}
	if vals["height"] != 2 || m.y != 2 {
		t.Errorf("vals=%v y=%v", vals, m.y)
	}
}

func TestTickPausedKeepsState(t *testing.T) {
	s, m := newFall(t)
	if err := s.Tick(dynamo.FrameDt); err != nil {
		t.Fatal(err)
	}
	if m.y != 5 || s.Time() != 0 {
		t.Errorf("paused tick moved state: y=%v t=%v", m.y, s.Time())
	}
	if s.Frames() != 1 {
		t.Errorf("frames = %d", s.Frames())
	}
}

func TestTickRejectsBadDt(t *testing.T) {
	s, _ := newFall(t)
	for _, dt := range []float64{0, -0.1} {
		if err := s.Tick(dt); !errors.Is(err, dynamo.ErrBadTimestep) {
			t.Errorf("Tick(%v) err = %v", dt, err)
		}
	}
}

func TestFinishedPauses(t *testing.T) {
	s, m := newFall(t)
	s.Start()
	for i := 0; i < 1000 && s.Running(); i++ {
		if err := s.Tick(dynamo.FrameDt); err != nil {
			t.Fatal(err)
		}
	}
	if s.Running() || !m.Finished() {
		t.Fatal("session did not stop on landing")
	}

	before := m.resets
	s.Start()
	if m.resets != before+1 || m.y != 5 {
		t.Error("restarting a finished view should reset it")
	}
}

func TestListener(t *testing.T) {
	l := &recordListener{params: map[string]float64{}}
	s, _ := newFall(t, WithListener(l))
	if l.params["gravity"] != 10 {
		t.Errorf("defaults not announced: %v", l.params)
	}
	s.Toggle()
	s.Toggle()
	if len(l.running) != 2 || !l.running[0] || l.running[1] {
		t.Errorf("running = %v", l.running)
	}
	if _, err := s.Commit("gravity", "7.5"); err != nil {
		t.Fatal(err)
	}
	if l.params["gravity"] != 7.5 {
		t.Errorf("gravity = %v", l.params["gravity"])
	}
}

func TestRenderIsPure(t *testing.T) {
	s, _ := newFall(t)
	a, b := render.NewRecorder(200, 200), render.NewRecorder(200, 200)
	s.Render(a)
	s.Render(b)
	if !a.Equal(b) {
		t.Error("two renders of the same state differ")
	}
	if got := a.Ops[0].Args; got[0] != 100 || got[1] != 100 {
		t.Errorf("fit not applied: %v", got)
	}
}

func TestReadingDisplay(t *testing.T) {
	tests := []struct {
		r    Reading
		want string
	}{
		{Reading{Value: 3, Unit: "A"}, "3.00 A"},
		{Reading{Value: 0.001, Unit: "s"}, "0.001 s"},
		{Reading{Value: 123456}, "1.23e+05"},
		{Reading{Text: "∞"}, "∞"},
	}
	for _, tt := range tests {
		if got := tt.r.Display(); got != tt.want {
			t.Errorf("Display(%+v) = %q, want %q", tt.r, got, tt.want)
		}
	}
}

func TestLoopStops(t *testing.T) {
	s, _ := newFall(t)
	s.Start()
	loop := NewLoop(500)
	n := 0
	err := loop.Run(context.Background(), s, func(*Session) error {
		n++
		if n == 5 {
			return ErrStop
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.Frames() != 5 {
		t.Errorf("frames = %d", s.Frames())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := loop.Run(ctx, s, nil); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v", err)
	}
}

func TestSweep(t *testing.T) {
	sw := &Sweep{
		New:      func() Model { return &fall{} },
		Key:      "gravity",
		Base:     map[string]string{"height": "5"},
		Duration: 3,
	}
	res, err := sw.Run(context.Background(), []float64{5, 10, 20})
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range res {
		if r.Err != nil {
			t.Fatalf("run %d: %v", i, r.Err)
		}
		if r.Params["gravity"] != []float64{5, 10, 20}[i] {
			t.Errorf("run %d gravity = %v", i, r.Params["gravity"])
		}
	}
	// stronger gravity lands sooner
	if !(res[0].Time > res[1].Time && res[1].Time > res[2].Time) {
		t.Errorf("landing times not ordered: %v %v %v", res[0].Time, res[1].Time, res[2].Time)
	}

	bad, _ := sw.Run(context.Background(), []float64{99})
	if !errors.Is(bad[0].Err, param.ErrOutOfRange) {
		t.Errorf("err = %v", bad[0].Err)
	}
}
