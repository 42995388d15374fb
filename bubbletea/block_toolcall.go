package bubbletea

import (
	"bytes"
	"encoding/json"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/agui"
	"github.com/fwojciec/agui/goldmark"
)

var _ MessageBlock = (*ToolCallBlock)(nil)

// ToolCallBlock renders a tool call with a collapsible toggle. Once the call
// has ended, arguments that form valid JSON are shown indented.
type ToolCallBlock struct {
	name      string
	id        string
	args      strings.Builder
	done      bool
	collapsed bool
	theme     agui.Theme
	styles    Styles
}

// NewToolCallBlock creates a ToolCallBlock that starts collapsed.
func NewToolCallBlock(name, id string, theme agui.Theme, styles Styles) *ToolCallBlock {
	return &ToolCallBlock{name: name, id: id, collapsed: true, theme: theme, styles: styles}
}

// ID returns the tool call ID for event correlation.
func (b *ToolCallBlock) ID() string { return b.id }

// Name returns the tool name.
func (b *ToolCallBlock) Name() string { return b.name }

// Args returns the argument text received so far.
func (b *ToolCallBlock) Args() string { return b.args.String() }

// AppendArgs adds an argument delta.
func (b *ToolCallBlock) AppendArgs(text string) {
	b.args.WriteString(text)
}

// Finish marks the call as ended.
func (b *ToolCallBlock) Finish() { b.done = true }

func (b *ToolCallBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	switch msg := msg.(type) {
	case ToggleMsg:
		b.collapsed = !b.collapsed
	case SetCollapsedMsg:
		b.collapsed = msg.Collapsed
	}
	return b, nil
}

func (b *ToolCallBlock) View(width int) string {
	header := b.styles.ToolCall.Render(indicator(b.collapsed)+" "+b.name) + " " + b.styles.Muted.Render(b.id)
	if !b.done {
		header += b.styles.Muted.Render(" …")
	}
	content := header
	if !b.collapsed && b.args.Len() > 0 {
		content = header + "\n" + b.renderArgs(width-b.styles.Panel.GetHorizontalFrameSize())
	}
	return b.styles.Panel.Width(width).Render(content)
}

func (b *ToolCallBlock) renderArgs(width int) string {
	raw := b.args.String()
	if !b.done || !json.Valid([]byte(raw)) {
		return b.styles.Muted.Render(raw)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(raw), "", "  "); err != nil {
		return b.styles.Muted.Render(raw)
	}
	return goldmark.RenderCode("json", pretty.String(), width, b.theme)
}
