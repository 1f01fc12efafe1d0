package viz

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/physlab/internal/audio"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	ctrlU = tea.KeyMsg{Type: tea.KeyCtrlU}
)

func send(a *App, msgs ...tea.Msg) {
	for _, m := range msgs {
		a.Update(m)
	}
}

func TestGallery(t *testing.T) {
	a := NewApp()
	if len(a.entries) != 17 {
		t.Fatalf("entries = %d, want 17", len(a.entries))
	}
	send(a, runes("j"), runes("j"), runes("k"))
	if a.cursor != 1 {
		t.Errorf("cursor = %d, want 1", a.cursor)
	}
	send(a, runes("k"), runes("k"))
	if a.cursor != 0 {
		t.Errorf("cursor = %d, want 0", a.cursor)
	}
	if !strings.Contains(a.View(), a.entries[0].title) {
		t.Error("gallery view missing first title")
	}

	send(a, enter)
	if a.Session() == nil {
		t.Fatal("enter did not open a session")
	}
	if a.Session().Info().Name != a.entries[0].name {
		t.Errorf("opened %s, want %s", a.Session().Info().Name, a.entries[0].name)
	}
}

func TestSessionEditing(t *testing.T) {
	a := NewApp()
	if err := a.Open("pendulum"); err != nil {
		t.Fatal(err)
	}
	s := a.Session()

	send(a, enter, ctrlU, runes("120"), enter)
	if !a.view.editing {
		t.Error("rejected value closed the editor")
	}
	if a.view.errMsg == "" {
		t.Error("no validation message for out-of-range angle")
	}
	if got := s.Params().Get("angle"); got != 45 {
		t.Errorf("angle = %g after rejected input", got)
	}

	send(a, ctrlU, runes("3x"), enter)
	if a.view.errMsg == "" {
		t.Error("no validation message for unparsable angle")
	}

	send(a, esc)
	if a.view.editing || a.view.errMsg != "" {
		t.Error("esc did not cancel editing")
	}

	send(a, enter, ctrlU, runes("30"), enter)
	if got := s.Params().Get("angle"); got != 30 {
		t.Errorf("angle = %g, want 30", got)
	}

	send(a, runes("l"))
	if got := s.Params().Get("angle"); math.Abs(got-31.78) > 1e-9 {
		t.Errorf("angle = %g after step, want 31.78", got)
	}
}

func TestSessionRunning(t *testing.T) {
	a := NewApp()
	if err := a.Open("pendulum"); err != nil {
		t.Fatal(err)
	}
	s := a.Session()

	send(a, space)
	if !s.Running() {
		t.Fatal("space did not start the pendulum")
	}
	for range 30 {
		send(a, tickMsg{})
	}
	if s.Time() <= 0 {
		t.Error("time did not advance")
	}
	if len(a.view.history) != 30 {
		t.Errorf("history = %d, want 30", len(a.view.history))
	}

	send(a, enter, ctrlU, runes("20"), enter)
	if !strings.Contains(a.view.errMsg, "cannot change while running") {
		t.Errorf("errMsg = %q", a.view.errMsg)
	}
	send(a, esc)

	view := a.View()
	for _, want := range []string{"Simple Pendulum", "RUNNING", "Readings", "locked"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	send(a, runes("q"))
	if a.Session() != nil {
		t.Fatal("q did not return to the gallery")
	}
	if s.Running() {
		t.Error("leaving did not pause the session")
	}
}

func TestSoundBinding(t *testing.T) {
	tone := audio.NewNull()
	a := NewApp(WithTone(tone))
	if err := a.Open("sound-waves"); err != nil {
		t.Fatal(err)
	}
	send(a, enter, ctrlU, runes("880"), enter)
	if got := tone.Frequency(); got != 880 {
		t.Errorf("tone frequency = %g, want 880", got)
	}

	send(a, space)
	if !tone.Playing() {
		t.Error("tone not playing after start")
	}
	send(a, runes("q"))
	if tone.Playing() {
		t.Error("tone still playing after leaving")
	}
}

func TestThemeCycle(t *testing.T) {
	start := CurrentTheme.Name
	for range Themes {
		NextTheme()
	}
	if CurrentTheme.Name != start {
		t.Errorf("theme = %s after full cycle, want %s", CurrentTheme.Name, start)
	}
}
