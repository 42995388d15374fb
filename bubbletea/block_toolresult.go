package bubbletea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

var _ MessageBlock = (*ToolResultBlock)(nil)

const maxPreviewWidth = 60

// ToolResultBlock renders a TOOL_CALL_RESULT with a collapsible toggle.
// Collapsed results show the first line of content, truncated to fit.
type ToolResultBlock struct {
	toolName  string
	content   string
	collapsed bool
	styles    Styles
}

// NewToolResultBlock creates a ToolResultBlock that starts collapsed.
func NewToolResultBlock(toolName, content string, styles Styles) *ToolResultBlock {
	return &ToolResultBlock{
		toolName:  toolName,
		content:   content,
		collapsed: true,
		styles:    styles,
	}
}

func (b *ToolResultBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	switch msg := msg.(type) {
	case ToggleMsg:
		b.collapsed = !b.collapsed
	case SetCollapsedMsg:
		b.collapsed = msg.Collapsed
	}
	return b, nil
}

func (b *ToolResultBlock) View(width int) string {
	header := b.styles.ToolCall.Render(indicator(b.collapsed)+" "+b.toolName) + " " + b.styles.Success.Render("✓")
	content := header
	switch {
	case b.content == "":
	case b.collapsed:
		content += "  " + runewidth.Truncate(firstLine(b.content), maxPreviewWidth, "…")
	default:
		content += "\n" + b.content
	}
	return b.styles.Panel.Width(width).Render(content)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
