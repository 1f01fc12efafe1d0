package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/physlab/internal/render"
)

var (
	Title         lipgloss.Style
	Subtle        lipgloss.Style
	Selected      lipgloss.Style
	StatusRunning lipgloss.Style
	StatusPaused  lipgloss.Style
	ErrorText     lipgloss.Style
	MetricValue   lipgloss.Style
	MetricLabel   lipgloss.Style
	KeyHint       lipgloss.Style
	HeaderStyle   lipgloss.Style
	Panel         lipgloss.Style
	SparkHigh     lipgloss.Style
	SparkMid      lipgloss.Style
	SparkLow      lipgloss.Style
)

func init() { applyTheme(CurrentTheme) }

func applyTheme(t Theme) {
	Title = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	Subtle = lipgloss.NewStyle().Foreground(t.Muted)
	Selected = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(t.Success)
	StatusPaused = lipgloss.NewStyle().Bold(true).Foreground(t.Warning)
	ErrorText = lipgloss.NewStyle().Foreground(t.Error)
	MetricValue = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	MetricLabel = lipgloss.NewStyle().Foreground(t.Muted)
	KeyHint = lipgloss.NewStyle().Italic(true).Foreground(t.Muted)
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Text).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Muted)
	Panel = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.Muted).
		Padding(0, 2).
		Width(panelWidth)
	SparkHigh = lipgloss.NewStyle().Foreground(t.Success)
	SparkMid = lipgloss.NewStyle().Foreground(t.Warning)
	SparkLow = lipgloss.NewStyle().Foreground(t.Error)
}

// AnimatedSpinner returns frame of animated spinner
func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}

// ProgressBar shows where a value sits inside its range.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	filled = max(0, min(width, filled))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if percent > 0.8 {
		return SparkHigh.Render(bar)
	} else if percent > 0.4 {
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}

func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(0, mid-3))
	right := strings.Repeat("─", max(0, width-mid-3))
	return Subtle.Render(left + " ◆ " + right)
}

// painter colors braille runs, caching one style per color.
type painter map[render.Color]lipgloss.Style

func (p painter) paint(c render.Color, s string) string {
	st, ok := p[c]
	if !ok {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
		p[c] = st
	}
	return st.Render(s)
}
