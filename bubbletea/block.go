package bubbletea

import tea "github.com/charmbracelet/bubbletea"

// MessageBlock is a renderable element of the event log.
// Unlike tea.Model, View takes a width parameter so the root model
// controls layout and blocks are testable in isolation.
type MessageBlock interface {
	Update(tea.Msg) (MessageBlock, tea.Cmd)
	View(width int) string
}

// ToggleMsg tells a collapsible block to toggle its collapsed state.
// Sent by the root model when the user presses the toggle key on a focused block.
type ToggleMsg struct{}

// SetCollapsedMsg sets the collapsed state of every collapsible block.
type SetCollapsedMsg struct {
	Collapsed bool
}

func collapsible(b MessageBlock) bool {
	switch b.(type) {
	case *ThinkingBlock, *ToolCallBlock, *ToolResultBlock, *PayloadBlock:
		return true
	}
	return false
}

func indicator(collapsed bool) string {
	if collapsed {
		return "▶"
	}
	return "▼"
}
