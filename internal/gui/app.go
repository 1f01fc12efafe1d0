package gui

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/physlab/internal/audio"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/param"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/sim"
)

const (
	width  = 1280
	height = 720
	panelX = 920
)

var (
	ColBg      = col(render.Background)
	ColAccent  = col(render.Cyan)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = col(render.Text)
	ColTextDim = col(render.Muted)
	ColError   = col(render.Red)
)

type App struct {
	Models   []string
	Selected int
	InMenu   bool

	Session  *sim.Session
	Specs    []param.Spec
	ParamSel int
	Editing  bool
	Input    string
	ErrMsg   string

	Font   rl.Font
	Screen *Screen
	Tone   audio.Tone
	Log    *slog.Logger

	direct bool
	quit   bool
}

func initWindow() {
	rl.InitWindow(width, height, "physlab")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	const path = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
	if _, err := os.Stat(path); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(path, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(tone audio.Tone, log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	font := loadFont()
	return &App{
		Models: physics.Names(),
		InMenu: true,
		Font:   font,
		Screen: &Screen{X: 20, Y: 70, W: panelX - 40, H: height - 110, Font: font},
		Tone:   tone,
		Log:    log,
	}
}

// RunInteractive opens the window on the simulation menu and blocks until it
// is closed.
func RunInteractive(tone audio.Tone, log *slog.Logger) {
	initWindow()
	defer rl.CloseWindow()
	NewApp(tone, log).RunLoop()
}

// Run opens the window directly on one simulation.
func Run(name string, tone audio.Tone, log *slog.Logger) error {
	initWindow()
	defer rl.CloseWindow()
	app := NewApp(tone, log)
	if err := app.open(name); err != nil {
		return err
	}
	app.direct = true
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
	a.close()
}

func (a *App) open(name string) error {
	m, err := physics.New(name)
	if err != nil {
		return err
	}
	opts := []sim.Option{sim.WithLogger(a.Log)}
	if a.Tone != nil && name == "sound-waves" {
		opts = append(opts, sim.WithListener(audio.NewBinding(a.Tone, a.Log)))
	}
	s, err := sim.NewSession(m, opts...)
	if err != nil {
		return err
	}
	a.Session = s
	a.Specs = s.Params().Specs()
	a.ParamSel = 0
	a.Editing = false
	a.ErrMsg = ""
	a.InMenu = false
	return nil
}

func (a *App) close() {
	if a.Session != nil {
		a.Session.Pause()
		a.Session = nil
	}
	a.InMenu = true
}

func pressed(keys ...int32) bool {
	for _, k := range keys {
		if rl.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func (a *App) Update() {
	if a.InMenu {
		a.updateMenu()
		return
	}
	if a.Editing {
		a.updateEditor()
	} else {
		a.updateSession()
	}
	if a.Session == nil {
		return
	}
	dt := math.Min(float64(rl.GetFrameTime()), dynamo.MaxFrameDt)
	if dt <= 0 {
		dt = dynamo.FrameDt
	}
	if err := a.Session.Tick(dt); err != nil {
		a.Log.Error("tick", "sim", a.Session.Info().Name, "err", err)
	}
}

func (a *App) updateMenu() {
	if pressed(rl.KeyQ, rl.KeyEscape) {
		a.quit = true
		return
	}
	if pressed(rl.KeyDown, rl.KeyJ) {
		a.Selected = (a.Selected + 1) % len(a.Models)
	}
	if pressed(rl.KeyUp, rl.KeyK) {
		a.Selected = (a.Selected + len(a.Models) - 1) % len(a.Models)
	}
	if pressed(rl.KeyEnter, rl.KeySpace) {
		if err := a.open(a.Models[a.Selected]); err != nil {
			a.Log.Error("open", "sim", a.Models[a.Selected], "err", err)
		}
	}
}

func (a *App) updateSession() {
	switch {
	case pressed(rl.KeyQ):
		a.quit = true
	case pressed(rl.KeyEscape):
		a.close()
		a.quit = a.direct
	case pressed(rl.KeySpace):
		a.Session.Toggle()
	case pressed(rl.KeyR):
		a.Session.Reset()
	case pressed(rl.KeyD):
		if err := a.Session.ResetParams(); err != nil {
			a.ErrMsg = err.Error()
		} else {
			a.ErrMsg = ""
		}
	case len(a.Specs) == 0:
	case pressed(rl.KeyTab, rl.KeyDown, rl.KeyJ):
		a.ParamSel = (a.ParamSel + 1) % len(a.Specs)
	case pressed(rl.KeyUp, rl.KeyK):
		a.ParamSel = (a.ParamSel + len(a.Specs) - 1) % len(a.Specs)
	case pressed(rl.KeyRight, rl.KeyL):
		a.nudge(1)
	case pressed(rl.KeyLeft, rl.KeyH):
		a.nudge(-1)
	case pressed(rl.KeyEnter):
		spec := a.Specs[a.ParamSel]
		a.Editing = true
		a.Input = spec.Format(a.Session.Params().Get(spec.Key))
		a.ErrMsg = ""
	}
}

func (a *App) updateEditor() {
	for c := rl.GetCharPressed(); c > 0; c = rl.GetCharPressed() {
		a.Input += string(rune(c))
	}
	switch {
	case pressed(rl.KeyBackspace):
		if r := []rune(a.Input); len(r) > 0 {
			a.Input = string(r[:len(r)-1])
		}
	case pressed(rl.KeyEscape):
		a.Editing = false
		a.ErrMsg = ""
	case pressed(rl.KeyEnter):
		if a.commit(a.Specs[a.ParamSel].Key, a.Input) {
			a.Editing = false
		}
	}
}

func (a *App) nudge(dir float64) {
	spec := a.Specs[a.ParamSel]
	step := (spec.Max - spec.Min) / 50
	if spec.Integer {
		step = 1
	}
	if rl.IsKeyDown(rl.KeyLeftShift) {
		step *= 10
	}
	next := spec.Clamp(a.Session.Params().Get(spec.Key) + dir*step)
	if !spec.Integer {
		next = math.Round(next*1e6) / 1e6
	}
	a.commit(spec.Key, spec.Format(next))
}

func (a *App) commit(key, raw string) bool {
	if _, err := a.Session.Commit(key, raw); err != nil {
		a.ErrMsg = err.Error()
		return false
	}
	a.ErrMsg = ""
	return true
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	if a.InMenu || a.Session == nil {
		a.drawMenu()
	} else {
		a.drawSession()
	}
	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) drawMenu() {
	a.drawText("physlab", 60, 40, 32, ColSelect)
	a.drawText("select a simulation", 60, 80, 16, ColTextDim)
	for i, name := range a.Models {
		y := 120 + i*30
		if i == a.Selected {
			rl.DrawRectangle(50, int32(y-4), 400, 26, rl.NewColor(255, 255, 255, 20))
			a.drawText("> "+name, 60, y, 20, ColSelect)
		} else {
			a.drawText("  "+name, 60, y, 20, ColText)
		}
	}
	a.drawText("[J/K] SELECT  [ENTER] OPEN  [Q] QUIT", 60, height-40, 14, ColTextDim)
}

func (a *App) drawSession() {
	s := a.Session
	info := s.Info()

	a.Session.Render(a.Screen)

	a.drawText(info.Title, 20, 24, 24, ColSelect)
	status, c := "PAUSED", ColTextDim
	if s.Running() {
		status, c = "RUNNING", ColAccent
	}
	a.drawText(fmt.Sprintf("%s  t=%.2fs", status, s.Time()), panelX, 30, 16, c)

	y := 80
	a.drawText("READINGS", panelX, y, 14, ColTextDim)
	y += 24
	for _, r := range s.Readings() {
		a.drawText(fmt.Sprintf("%-16s %s", r.Label, r.Display()), panelX, y, 14, ColText)
		y += 20
	}

	y += 16
	a.drawText("PARAMETERS", panelX, y, 14, ColTextDim)
	y += 24
	for i, spec := range a.Specs {
		text := spec.Format(s.Params().Get(spec.Key)) + " " + spec.Unit
		if i == a.ParamSel && a.Editing {
			text = a.Input + "_"
		}
		line := fmt.Sprintf("%-14s %s", spec.Label, text)
		if spec.LockedWhileRunning && s.Running() {
			line += "  (locked)"
		}
		color := ColText
		if i == a.ParamSel {
			color = ColSelect
			line = "> " + line
		} else {
			line = "  " + line
		}
		a.drawText(line, panelX, y, 14, color)
		y += 20
	}
	if a.ErrMsg != "" {
		a.drawText(a.ErrMsg, panelX, y+10, 14, ColError)
	}

	a.drawText("[SPACE] RUN  [R] RESET  [D] DEFAULTS  [TAB] SELECT  [ENTER] EDIT  [H/L] STEP  [ESC] MENU", 20, height-30, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), width-80, height-30, 14, ColTextDim)
}
