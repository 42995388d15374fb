package bubbletea

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"
)

var _ MessageBlock = (*ThinkingBlock)(nil)

// ThinkingBlock renders a thinking step with a collapsible toggle. The
// collapsed header shows the length of the reasoning in characters.
type ThinkingBlock struct {
	title     string
	content   strings.Builder
	collapsed bool
	styles    Styles
}

// NewThinkingBlock creates a ThinkingBlock that starts collapsed.
func NewThinkingBlock(title string, styles Styles) *ThinkingBlock {
	return &ThinkingBlock{title: title, collapsed: true, styles: styles}
}

// Append adds a thinking text delta.
func (b *ThinkingBlock) Append(text string) {
	b.content.WriteString(text)
}

func (b *ThinkingBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	switch msg := msg.(type) {
	case ToggleMsg:
		b.collapsed = !b.collapsed
	case SetCollapsedMsg:
		b.collapsed = msg.Collapsed
	}
	return b, nil
}

func (b *ThinkingBlock) View(width int) string {
	wrap := lipgloss.NewStyle().Width(width)

	label := "Thinking"
	if b.title != "" {
		label += ": " + b.title
	}
	if n := uniseg.GraphemeClusterCount(b.content.String()); n > 0 {
		label += fmt.Sprintf(" (%d chars)", n)
	}
	header := b.styles.Thinking.Render(wrap.Render(indicator(b.collapsed) + " " + label))
	if b.collapsed || b.content.Len() == 0 {
		return header
	}
	return header + "\n" + b.styles.Thinking.Render(wrap.Render(b.content.String()))
}
