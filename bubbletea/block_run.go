package bubbletea

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/agui"
)

var _ MessageBlock = (*RunBlock)(nil)

// RunBlock renders a run lifecycle event: RUN_STARTED, RUN_FINISHED or
// RUN_ERROR.
type RunBlock struct {
	event  agui.Event
	styles Styles
}

// NewRunBlock creates a RunBlock for a run lifecycle event.
func NewRunBlock(e agui.Event, styles Styles) *RunBlock {
	return &RunBlock{event: e, styles: styles}
}

func (b *RunBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *RunBlock) View(width int) string {
	var line string
	switch e := b.event.(type) {
	case agui.RunStarted:
		line = b.styles.Run.Render("● Run "+e.RunID) + b.styles.Muted.Render(" thread "+e.ThreadID)
	case agui.RunFinished:
		line = b.styles.Success.Render("✓ Run " + e.RunID + " finished")
		if len(e.Result) > 0 {
			line += " " + b.styles.Muted.Render(string(e.Result))
		}
	case agui.RunError:
		msg := e.Message
		if e.Code != "" {
			msg = fmt.Sprintf("%s (%s)", e.Message, e.Code)
		}
		line = b.styles.Error.Render("✗ Run error: " + msg)
	}
	return lipgloss.NewStyle().Width(width).Render(line)
}
