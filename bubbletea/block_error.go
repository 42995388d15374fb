package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
)

var _ MessageBlock = (*ErrorBlock)(nil)

// ErrorBlock renders a protocol violation, state error or stream failure.
type ErrorBlock struct {
	label  string
	err    error
	styles Styles
}

// NewErrorBlock creates an ErrorBlock. label names the kind of failure.
func NewErrorBlock(label string, err error, styles Styles) *ErrorBlock {
	return &ErrorBlock{label: label, err: err, styles: styles}
}

// Err returns the error shown by the block.
func (b *ErrorBlock) Err() error { return b.err }

func (b *ErrorBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *ErrorBlock) View(width int) string {
	content := b.styles.Error.Render(b.label+": ") + b.err.Error()
	return b.styles.ErrorBar.Width(width - b.styles.ErrorBar.GetHorizontalBorderSize()).Render(content)
}
