package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*StepBlock)(nil)

// StepBlock marks the start or end of a named step.
type StepBlock struct {
	name     string
	finished bool
	styles   Styles
}

// NewStepBlock creates a StepBlock. finished selects the STEP_FINISHED form.
func NewStepBlock(name string, finished bool, styles Styles) *StepBlock {
	return &StepBlock{name: name, finished: finished, styles: styles}
}

func (b *StepBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *StepBlock) View(width int) string {
	line := "▸ step " + b.name
	if b.finished {
		line = "▪ step " + b.name + " done"
	}
	return lipgloss.NewStyle().Width(width).Render(b.styles.Step.Render(line))
}
