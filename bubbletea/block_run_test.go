package bubbletea_test

import (
	"encoding/json"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/agui"
	bt "github.com/fwojciec/agui/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestRunBlock(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(agui.DefaultTheme())
	tests := []struct {
		name  string
		event agui.Event
		want  string
	}{
		{"started", agui.RunStarted{ThreadID: "thread-1", RunID: "run-1"}, "● Run run-1 thread thread-1"},
		{"finished", agui.RunFinished{ThreadID: "thread-1", RunID: "run-1"}, "✓ Run run-1 finished"},
		{"finished with result", agui.RunFinished{RunID: "run-1", Result: json.RawMessage(`{"ok":true}`)}, `✓ Run run-1 finished {"ok":true}`},
		{"error", agui.RunError{Message: "boom"}, "✗ Run error: boom"},
		{"error with code", agui.RunError{Message: "boom", Code: "E42"}, "✗ Run error: boom (E42)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Contains(t, ansi.Strip(bt.NewRunBlock(tt.event, styles).View(80)), tt.want)
		})
	}
}

func TestStepBlock(t *testing.T) {
	t.Parallel()
	styles := bt.NewStyles(agui.DefaultTheme())
	assert.Contains(t, ansi.Strip(bt.NewStepBlock("plan", false, styles).View(80)), "▸ step plan")
	assert.Contains(t, ansi.Strip(bt.NewStepBlock("plan", true, styles).View(80)), "▪ step plan done")
}

func TestPayloadBlock(t *testing.T) {
	t.Parallel()
	theme := agui.DefaultTheme()
	styles := bt.NewStyles(theme)

	t.Run("collapsed shows label only", func(t *testing.T) {
		t.Parallel()
		block := bt.NewPayloadBlock("STATE_SNAPSHOT", []byte(`{"count":1}`), theme, styles)
		view := ansi.Strip(block.View(80))
		assert.Contains(t, view, "▶ STATE_SNAPSHOT")
		assert.NotContains(t, view, "count")
	})

	t.Run("expanded shows indented payload", func(t *testing.T) {
		t.Parallel()
		block := bt.NewPayloadBlock("STATE_SNAPSHOT", []byte(`{"count":1}`), theme, styles)
		block.Update(bt.ToggleMsg{})
		view := ansi.Strip(block.View(80))
		assert.Contains(t, view, "▼ STATE_SNAPSHOT")
		assert.Contains(t, view, `│   "count": 1`)
	})

	t.Run("non-JSON payload is shown as is", func(t *testing.T) {
		t.Parallel()
		block := bt.NewPayloadBlock("RAW", []byte(`not json`), theme, styles)
		block.Update(bt.SetCollapsedMsg{Collapsed: false})
		assert.Contains(t, ansi.Strip(block.View(80)), "│ not json")
	})
}
