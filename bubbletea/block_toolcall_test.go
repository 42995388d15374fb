package bubbletea_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/agui"
	bt "github.com/fwojciec/agui/bubbletea"
	"github.com/stretchr/testify/assert"
)

func newToolCallBlock() *bt.ToolCallBlock {
	theme := agui.DefaultTheme()
	return bt.NewToolCallBlock("read", "tc-1", theme, bt.NewStyles(theme))
}

func TestToolCallBlock_View(t *testing.T) {
	t.Parallel()

	t.Run("collapsed shows tool name and id", func(t *testing.T) {
		t.Parallel()
		view := ansi.Strip(newToolCallBlock().View(80))
		assert.Contains(t, view, "▶ read")
		assert.Contains(t, view, "tc-1")
	})

	t.Run("open call is marked in progress", func(t *testing.T) {
		t.Parallel()
		block := newToolCallBlock()
		assert.Contains(t, ansi.Strip(block.View(80)), "…")
		block.Finish()
		assert.NotContains(t, ansi.Strip(block.View(80)), "…")
	})

	t.Run("expanded shows streamed arguments verbatim", func(t *testing.T) {
		t.Parallel()
		block := newToolCallBlock()
		block.AppendArgs(`{"path": `)
		block.AppendArgs(`"/tmp/foo"`)
		updated, _ := block.Update(bt.ToggleMsg{})
		view := ansi.Strip(updated.View(80))
		assert.Contains(t, view, "▼ read")
		assert.Contains(t, view, `{"path": "/tmp/foo"`)
	})

	t.Run("finished JSON arguments are indented", func(t *testing.T) {
		t.Parallel()
		block := newToolCallBlock()
		block.AppendArgs(`{"path":"/tmp/foo","limit":3}`)
		block.Finish()
		block.Update(bt.ToggleMsg{})
		view := ansi.Strip(block.View(80))
		assert.Contains(t, view, "json")
		assert.Contains(t, view, `│   "path": "/tmp/foo",`)
		assert.Contains(t, view, `│   "limit": 3`)
	})

	t.Run("lines fit the width", func(t *testing.T) {
		t.Parallel()
		block := newToolCallBlock()
		block.AppendArgs(`{"a":1}`)
		block.Finish()
		block.Update(bt.ToggleMsg{})
		for _, line := range strings.Split(block.View(40), "\n") {
			assert.LessOrEqual(t, ansi.StringWidth(line), 40)
		}
	})

	t.Run("set collapsed", func(t *testing.T) {
		t.Parallel()
		block := newToolCallBlock()
		block.Update(bt.SetCollapsedMsg{Collapsed: false})
		assert.Contains(t, ansi.Strip(block.View(80)), "▼")
		block.Update(bt.SetCollapsedMsg{Collapsed: true})
		assert.Contains(t, ansi.Strip(block.View(80)), "▶")
	})

	t.Run("accessors", func(t *testing.T) {
		t.Parallel()
		block := newToolCallBlock()
		block.AppendArgs("{}")
		assert.Equal(t, "tc-1", block.ID())
		assert.Equal(t, "read", block.Name())
		assert.Equal(t, "{}", block.Args())
	})
}
