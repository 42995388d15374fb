package bubbletea_test

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/agui"
	bt "github.com/fwojciec/agui/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestNewStyles(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(agui.DefaultTheme())

	assert.Equal(t, lipgloss.Color("4"), styles.Run.GetForeground())
	assert.True(t, styles.Run.GetBold())

	assert.Equal(t, lipgloss.Color("6"), styles.Step.GetForeground())

	assert.Equal(t, lipgloss.Color("8"), styles.Thinking.GetForeground())
	assert.True(t, styles.Thinking.GetFaint())

	assert.Equal(t, lipgloss.Color("3"), styles.ToolCall.GetForeground())
	assert.Equal(t, lipgloss.Color("1"), styles.Error.GetForeground())
	assert.Equal(t, lipgloss.Color("2"), styles.Success.GetForeground())

	assert.Equal(t, lipgloss.Color("8"), styles.Muted.GetForeground())
	assert.True(t, styles.Muted.GetFaint())

	assert.Equal(t, lipgloss.Color("5"), styles.Accent.GetForeground())
	assert.True(t, styles.Accent.GetBold())

	assert.Equal(t, lipgloss.Color("0"), styles.Panel.GetBackground())
	assert.Equal(t, lipgloss.Color("1"), styles.ErrorBar.GetBorderLeftForeground())
}

func TestNewStylesNegativeIndexYieldsNoColor(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(agui.Theme{Run: -1})

	assert.Equal(t, lipgloss.NoColor{}, styles.Run.GetForeground())
}
