package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/physlab/internal/audio"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/sim"
)

const fps = 60

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type entry struct {
	name  string
	title string
	kind  sim.Kind
}

type Option func(*App)

// WithTone routes the sound-waves session to t.
func WithTone(t audio.Tone) Option {
	return func(a *App) { a.tone = t }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.log = l }
}

// App is the gallery plus the currently open simulation.
type App struct {
	entries []entry
	cursor  int
	view    *sessionView
	tone    audio.Tone
	log     *slog.Logger
	frame   int
	width   int
	height  int
	err     error
	quit    bool

	// direct apps were opened on one simulation and exit instead of
	// returning to the gallery.
	direct bool
}

func NewApp(opts ...Option) *App {
	a := &App{log: slog.Default(), width: 100, height: 32}
	for _, opt := range opts {
		opt(a)
	}
	for _, name := range physics.Names() {
		m, err := physics.New(name)
		if err != nil {
			continue
		}
		info := m.Info()
		a.entries = append(a.entries, entry{name: name, title: info.Title, kind: info.Kind})
	}
	return a
}

// Open starts a session on the named simulation.
func (a *App) Open(name string) error {
	m, err := physics.New(name)
	if err != nil {
		return err
	}
	opts := []sim.Option{sim.WithLogger(a.log)}
	if a.tone != nil && name == "sound-waves" {
		opts = append(opts, sim.WithListener(audio.NewBinding(a.tone, a.log)))
	}
	s, err := sim.NewSession(m, opts...)
	if err != nil {
		return err
	}
	a.view = newSessionView(s)
	a.view.resize(a.width, a.height)
	for i, e := range a.entries {
		if e.name == name {
			a.cursor = i
		}
	}
	a.log.Info("session opened", "sim", name)
	return nil
}

// Session is the open session, or nil in the gallery.
func (a *App) Session() *sim.Session {
	if a.view == nil {
		return nil
	}
	return a.view.s
}

func (a *App) close() {
	if a.view == nil {
		return
	}
	a.view.s.Pause()
	a.log.Info("session closed", "sim", a.view.s.Info().Name, "t", a.view.s.Time())
	a.view = nil
}

func (a *App) Init() tea.Cmd {
	return tick()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		if a.view != nil {
			a.view.resize(a.width, a.height)
		}
		return a, nil

	case tickMsg:
		a.frame++
		if a.view != nil {
			if err := a.view.tick(dynamo.FrameDt); err != nil {
				a.log.Error("tick", "sim", a.view.s.Info().Name, "err", err)
			}
		}
		return a, tick()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.close()
			a.quit = true
			return a, tea.Quit
		}
		if a.view != nil {
			if back := a.view.key(msg); back {
				a.close()
				if a.direct {
					a.quit = true
					return a, tea.Quit
				}
			}
			return a, nil
		}
		return a.galleryKey(msg)
	}
	return a, nil
}

func (a *App) galleryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		a.quit = true
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(a.entries)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "g", "home":
		a.cursor = 0
	case "G", "end":
		a.cursor = len(a.entries) - 1
	case "t":
		NextTheme()
	case "enter", " ":
		if len(a.entries) == 0 {
			break
		}
		a.err = a.Open(a.entries[a.cursor].name)
	}
	return a, nil
}

func (a *App) View() string {
	if a.quit {
		return ""
	}
	if a.view != nil {
		return a.view.render(a.frame)
	}
	return a.gallery()
}

func (a *App) gallery() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%s physlab", AnimatedSpinner(a.frame/4))))
	b.WriteString("\n\n")
	for i, e := range a.entries {
		line := fmt.Sprintf("%-26s %s", e.title, Subtle.Render(e.kind.String()))
		if i == a.cursor {
			b.WriteString(Selected.Render("▸ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	if a.err != nil {
		b.WriteString("\n" + ErrorText.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n" + Separator(min(a.width, 60)) + "\n")
	b.WriteString(KeyHint.Render(fmt.Sprintf("j/k select · enter open · t theme (%s) · q quit", CurrentTheme.Name)))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// Run shows the gallery until the user quits.
func Run(opts ...Option) error {
	_, err := tea.NewProgram(NewApp(opts...), tea.WithAltScreen()).Run()
	return err
}

// RunSimulation opens name directly; leaving the session exits.
func RunSimulation(name string, raw map[string]string, opts ...Option) error {
	a := NewApp(opts...)
	if err := a.Open(name); err != nil {
		return err
	}
	if len(raw) > 0 {
		if _, err := a.view.s.CommitAll(raw); err != nil {
			return err
		}
	}
	a.direct = true
	_, err := tea.NewProgram(a, tea.WithAltScreen()).Run()
	return err
}
