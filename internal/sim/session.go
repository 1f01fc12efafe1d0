package sim

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/param"
	"github.com/san-kum/physlab/internal/render"
)

// Listener is told about committed parameters and run-state changes. The
// sound demo uses it to drive the tone output.
type Listener interface {
	ParamChanged(key string, value float64)
	RunningChanged(running bool)
}

type Option func(*Session)

func WithListener(l Listener) Option {
	return func(s *Session) { s.listeners = append(s.listeners, l) }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// Session is one simulation view.
type Session struct {
	model     Model
	info      Info
	params    *param.Set
	running   bool
	t         float64
	frames    int
	listeners []Listener
	log       *slog.Logger
}

func NewSession(m Model, opts ...Option) (*Session, error) {
	set, err := param.NewSet(m.Specs()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Info().Name, err)
	}
	s := &Session{
		model:  m,
		info:   m.Info(),
		params: set,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.push(set.Values()); err != nil {
		return nil, err
	}
	m.Reset()
	s.running = s.info.AutoRun
	return s, nil
}

func (s *Session) Model() Model        { return s.model }
func (s *Session) Info() Info          { return s.info }
func (s *Session) Params() *param.Set  { return s.params }
func (s *Session) Running() bool       { return s.running }
func (s *Session) Time() float64       { return s.t }
func (s *Session) Frames() int         { return s.frames }
func (s *Session) Readings() []Reading { return s.model.Readings() }

// Commit validates raw for key and applies it. A rejected value leaves both
// the committed parameters and the model untouched.
func (s *Session) Commit(key, raw string) (float64, error) {
	if err := s.checkLocked(key); err != nil {
		return 0, err
	}
	v, err := s.params.Commit(key, raw)
	if err != nil {
		return 0, err
	}
	if err := s.push(map[string]float64{key: v}); err != nil {
		return 0, err
	}
	s.applied()
	return v, nil
}

// CommitAll replaces several parameters at once, or none of them.
func (s *Session) CommitAll(raw map[string]string) (map[string]float64, error) {
	for key := range raw {
		if err := s.checkLocked(key); err != nil {
			return nil, err
		}
	}
	vals, err := s.params.CommitAll(raw)
	if err != nil {
		return nil, err
	}
	if err := s.push(vals); err != nil {
		return nil, err
	}
	s.applied()
	return vals, nil
}

func (s *Session) checkLocked(key string) error {
	spec, ok := s.params.Spec(key)
	if ok && s.running && spec.LockedWhileRunning {
		return fmt.Errorf("%s: %w", spec.Label, ErrLocked)
	}
	return nil
}

func (s *Session) push(vals map[string]float64) error {
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := s.model.SetParam(k, vals[k]); err != nil {
			return fmt.Errorf("%s: %w", s.info.Name, err)
		}
		s.log.Debug("param committed", "sim", s.info.Name, "key", k, "value", vals[k])
		for _, l := range s.listeners {
			l.ParamChanged(k, vals[k])
		}
	}
	return nil
}

// applied shows the new initial condition of integrated models.
func (s *Session) applied() {
	if s.info.Kind != Euler {
		return
	}
	s.model.Reset()
	s.t = 0
	s.setRunning(false)
}

func (s *Session) Start() {
	if f, ok := s.model.(Finisher); ok && f.Finished() {
		s.model.Reset()
		s.t = 0
	}
	s.setRunning(true)
}

func (s *Session) Pause() { s.setRunning(false) }

func (s *Session) Toggle() {
	if s.running {
		s.Pause()
	} else {
		s.Start()
	}
}

// Reset restores the model's initial state from the committed parameters.
func (s *Session) Reset() {
	s.model.Reset()
	s.t = 0
	if s.info.Kind == Euler {
		s.setRunning(false)
	}
}

// ResetParams restores every default and reinitializes the model. While
// running it fails if a locked parameter would change.
func (s *Session) ResetParams() error {
	for _, spec := range s.params.Specs() {
		if s.params.Get(spec.Key) == spec.Default {
			continue
		}
		if err := s.checkLocked(spec.Key); err != nil {
			return err
		}
	}
	s.params.Reset()
	if err := s.push(s.params.Values()); err != nil {
		return err
	}
	s.Reset()
	return nil
}

func (s *Session) setRunning(r bool) {
	if s.running == r {
		return
	}
	s.running = r
	s.log.Debug("run state", "sim", s.info.Name, "running", r, "t", s.t)
	for _, l := range s.listeners {
		l.RunningChanged(r)
	}
}

// Tick advances one frame. A paused session keeps its state.
func (s *Session) Tick(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("%w: %g", dynamo.ErrBadTimestep, dt)
	}
	s.frames++
	if !s.running {
		return nil
	}
	s.model.Step(dt)
	s.t += dt
	if f, ok := s.model.(Finisher); ok && f.Finished() {
		s.setRunning(false)
	}
	return nil
}

// Render paints the model scaled onto dst.
func (s *Session) Render(dst render.Surface) {
	if s.info.Width > 0 && s.info.Height > 0 {
		dst = render.Fit(dst, s.info.Width, s.info.Height)
	}
	s.model.Draw(dst)
}
