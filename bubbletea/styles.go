package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/agui"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	Run      lipgloss.Style
	Step     lipgloss.Style
	Thinking lipgloss.Style
	ToolCall lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Role     lipgloss.Style
	Panel    lipgloss.Style
	ErrorBar lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t agui.Theme) Styles {
	return Styles{
		Run:      lipgloss.NewStyle().Foreground(ansiColor(t.Run)).Bold(true),
		Step:     lipgloss.NewStyle().Foreground(ansiColor(t.Step)),
		Thinking: lipgloss.NewStyle().Foreground(ansiColor(t.Thinking)).Faint(true),
		ToolCall: lipgloss.NewStyle().Foreground(ansiColor(t.ToolCall)),
		Error:    lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success:  lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		Muted:    lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:   lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Role:     lipgloss.NewStyle().Foreground(ansiColor(t.Accent)),
		Panel:    lipgloss.NewStyle().Background(ansiColor(t.CodeBg)).PaddingLeft(1),
		ErrorBar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(ansiColor(t.Error)).
			PaddingLeft(1),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
