package bubbletea

import (
	"bytes"
	"encoding/json"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/agui"
	"github.com/fwojciec/agui/goldmark"
)

var _ MessageBlock = (*PayloadBlock)(nil)

// PayloadBlock renders an event whose interest is its JSON payload: state
// snapshots and deltas, message snapshots, raw and custom events.
type PayloadBlock struct {
	label     string
	payload   []byte
	collapsed bool
	theme     agui.Theme
	styles    Styles
}

// NewPayloadBlock creates a collapsed PayloadBlock. payload is indented for
// display when it is valid JSON.
func NewPayloadBlock(label string, payload []byte, theme agui.Theme, styles Styles) *PayloadBlock {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, payload, "", "  "); err == nil {
		payload = pretty.Bytes()
	}
	return &PayloadBlock{label: label, payload: payload, collapsed: true, theme: theme, styles: styles}
}

func (b *PayloadBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	switch msg := msg.(type) {
	case ToggleMsg:
		b.collapsed = !b.collapsed
	case SetCollapsedMsg:
		b.collapsed = msg.Collapsed
	}
	return b, nil
}

func (b *PayloadBlock) View(width int) string {
	header := b.styles.Accent.Render(indicator(b.collapsed) + " " + b.label)
	if b.collapsed || len(b.payload) == 0 {
		return b.styles.Panel.Width(width).Render(header)
	}
	inner := width - b.styles.Panel.GetHorizontalFrameSize()
	return b.styles.Panel.Width(width).Render(header + "\n" + goldmark.RenderCode("json", string(b.payload), inner, b.theme))
}
