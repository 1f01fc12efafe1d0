package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/param"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/sim"
)

const (
	panelWidth  = 38
	historySize = 120
	graphHeight = 4
)

type sessionView struct {
	s        *sim.Session
	specs    []param.Spec
	selected int
	editing  bool
	input    string
	errMsg   string
	history  []float64
	caption  string
	cols     int
	rows     int
	paint    painter
}

func newSessionView(s *sim.Session) *sessionView {
	v := &sessionView{
		s:     s,
		specs: s.Params().Specs(),
		paint: painter{},
		cols:  60,
		rows:  18,
	}
	v.caption = v.traceLabel()
	return v
}

func (v *sessionView) resize(w, h int) {
	v.cols = max(20, w-panelWidth-6)
	v.rows = max(8, h-graphHeight-10)
}

func (v *sessionView) tick(dt float64) error {
	if err := v.s.Tick(dt); err != nil {
		return err
	}
	if !v.s.Running() {
		return nil
	}
	if y, ok := v.trace(); ok {
		v.history = append(v.history, y)
		if len(v.history) > historySize {
			v.history = v.history[len(v.history)-historySize:]
		}
	}
	return nil
}

// trace is the scalar plotted under the canvas: total energy when the model
// has one, else the first observed component, else the first reading.
func (v *sessionView) trace() (float64, bool) {
	m := v.s.Model()
	var y float64
	obs, isObs := m.(sim.Observable)
	switch h, isH := m.(dynamo.Hamiltonian); {
	case isH && isObs:
		y = h.Energy(obs.Observe())
	case isObs:
		x := obs.Observe()
		if len(x) == 0 {
			return 0, false
		}
		y = x[0]
	default:
		rs := v.s.Readings()
		if len(rs) == 0 {
			return 0, false
		}
		y = rs[0].Value
	}
	return y, !math.IsNaN(y) && !math.IsInf(y, 0)
}

func (v *sessionView) traceLabel() string {
	m := v.s.Model()
	obs, isObs := m.(sim.Observable)
	if _, ok := m.(dynamo.Hamiltonian); ok && isObs {
		return "energy"
	}
	if isObs {
		if ls := obs.Labels(); len(ls) > 0 {
			return ls[0]
		}
	}
	if rs := v.s.Readings(); len(rs) > 0 {
		return rs[0].Label
	}
	return ""
}

// key handles one key press and reports whether the user left the session.
func (v *sessionView) key(msg tea.KeyMsg) bool {
	if v.editing {
		v.editKey(msg)
		return false
	}
	switch msg.String() {
	case "q", "esc":
		return true
	case " ":
		v.s.Toggle()
	case "r":
		v.s.Reset()
		v.history = v.history[:0]
	case "d":
		if err := v.s.ResetParams(); err != nil {
			v.errMsg = err.Error()
		} else {
			v.errMsg = ""
		}
		v.history = v.history[:0]
	case "t":
		NextTheme()
		v.paint = painter{}
	case "tab", "j", "down":
		if len(v.specs) > 0 {
			v.selected = (v.selected + 1) % len(v.specs)
		}
	case "shift+tab", "k", "up":
		if len(v.specs) > 0 {
			v.selected = (v.selected + len(v.specs) - 1) % len(v.specs)
		}
	case "h", "left":
		v.nudge(-1)
	case "l", "right":
		v.nudge(1)
	case "enter":
		if spec, ok := v.current(); ok {
			v.editing = true
			v.input = spec.Format(v.s.Params().Get(spec.Key))
			v.errMsg = ""
		}
	}
	return false
}

func (v *sessionView) editKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		spec, _ := v.current()
		if err := v.commit(spec.Key, v.input); err != nil {
			return
		}
		v.editing = false
	case tea.KeyEsc:
		v.editing = false
		v.errMsg = ""
	case tea.KeyBackspace:
		if r := []rune(v.input); len(r) > 0 {
			v.input = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU:
		v.input = ""
	case tea.KeyRunes, tea.KeySpace:
		v.input += string(msg.Runes)
	}
}

func (v *sessionView) current() (param.Spec, bool) {
	if v.selected < 0 || v.selected >= len(v.specs) {
		return param.Spec{}, false
	}
	return v.specs[v.selected], true
}

// nudge steps the selected parameter by one option, one unit for integer
// specs, or a fiftieth of its range.
func (v *sessionView) nudge(dir float64) {
	spec, ok := v.current()
	if !ok {
		return
	}
	step := (spec.Max - spec.Min) / 50
	if spec.Integer {
		step = 1
	}
	next := spec.Clamp(v.s.Params().Get(spec.Key) + dir*step)
	if !spec.Integer {
		next = math.Round(next*1e6) / 1e6
	}
	v.commit(spec.Key, spec.Format(next))
}

func (v *sessionView) commit(key, raw string) error {
	if _, err := v.s.Commit(key, raw); err != nil {
		v.errMsg = err.Error()
		return err
	}
	v.errMsg = ""
	if v.s.Info().Kind == sim.Euler {
		v.history = v.history[:0]
	}
	return nil
}

func (v *sessionView) render(frame int) string {
	info := v.s.Info()

	status := StatusPaused.Render("■ PAUSED")
	if v.s.Running() {
		status = StatusRunning.Render(AnimatedSpinner(frame/4) + " RUNNING")
	}
	header := HeaderStyle.Render(fmt.Sprintf("%s  %s  t=%.2fs", info.Title, status, v.s.Time()))

	canvas := render.NewBraille(v.cols, v.rows)
	v.s.Render(canvas)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		strings.Join(canvas.Lines(v.paint.paint), "\n"),
		Panel.Render(v.panel()),
	)

	var b strings.Builder
	b.WriteString(header + "\n")
	b.WriteString(body + "\n")
	if len(v.history) > 1 {
		b.WriteString(asciigraph.Plot(v.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(min(v.cols, 80)),
			asciigraph.Caption(v.caption)))
		b.WriteString("\n")
	}
	if v.errMsg != "" {
		b.WriteString(ErrorText.Render("✗ "+v.errMsg) + "\n")
	}
	if v.editing {
		b.WriteString(KeyHint.Render("enter commit · esc cancel · ctrl+u clear"))
	} else {
		b.WriteString(KeyHint.Render("space run/pause · r reset · d defaults · tab select · enter edit · h/l step · t theme · q back"))
	}
	return b.String()
}

func (v *sessionView) panel() string {
	var b strings.Builder
	b.WriteString(Title.Render("Readings") + "\n")
	for _, r := range v.s.Readings() {
		b.WriteString(MetricLabel.Render(fmt.Sprintf("%-16s", r.Label)))
		b.WriteString(MetricValue.Render(r.Display()) + "\n")
	}
	if len(v.specs) == 0 {
		return b.String()
	}
	b.WriteString("\n" + Title.Render("Parameters") + "\n")
	for i, spec := range v.specs {
		val := v.s.Params().Get(spec.Key)
		text := spec.Format(val)
		if spec.Unit != "" {
			text += " " + spec.Unit
		}
		if i == v.selected && v.editing {
			text = v.input + "▏"
		}
		lock := ""
		if spec.LockedWhileRunning && v.s.Running() {
			lock = Subtle.Render(" locked")
		}
		label := fmt.Sprintf("%-14s", spec.Label)
		if i == v.selected {
			b.WriteString(Selected.Render("▸ "+label) + " " + Selected.Render(text) + lock + "\n")
		} else {
			b.WriteString("  " + MetricLabel.Render(label) + " " + MetricValue.Render(text) + lock + "\n")
		}
		if !spec.IsChoice() && spec.Max > spec.Min {
			b.WriteString("  " + ProgressBar((val-spec.Min)/(spec.Max-spec.Min), panelWidth-8) + "\n")
		}
	}
	return b.String()
}
