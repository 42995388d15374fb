package agui_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/agui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_Validate(t *testing.T) {
	t.Parallel()

	t.Run("minimal events are valid", func(t *testing.T) {
		t.Parallel()
		for _, e := range allEvents() {
			assert.NoError(t, e.Validate(), "%T", e)
		}
	})

	tests := []struct {
		name    string
		event   agui.Event
		wantMsg string
	}{
		{"run started without thread", agui.RunStarted{RunID: "r"}, "RUN_STARTED: threadId is required"},
		{"run started without run", agui.RunStarted{ThreadID: "t"}, "RUN_STARTED: runId is required"},
		{"run finished without run", agui.RunFinished{ThreadID: "t"}, "RUN_FINISHED: runId is required"},
		{"run error without message", agui.RunError{Code: "E1"}, "RUN_ERROR: message is required"},
		{"step started without name", agui.StepStarted{}, "STEP_STARTED: stepName is required"},
		{"step finished without name", agui.StepFinished{}, "STEP_FINISHED: stepName is required"},
		{"text start without id", agui.TextMessageStart{}, "TEXT_MESSAGE_START: messageId is required"},
		{"text start with unknown role", agui.TextMessageStart{MessageID: "m", Role: "robot"}, `TEXT_MESSAGE_START: unknown role "robot"`},
		{"text content without delta", agui.TextMessageContent{MessageID: "m"}, "TEXT_MESSAGE_CONTENT: delta is required"},
		{"text end without id", agui.TextMessageEnd{}, "TEXT_MESSAGE_END: messageId is required"},
		{"empty text chunk", agui.TextMessageChunk{}, "TEXT_MESSAGE_CHUNK: at least one of messageId, role or delta must be set"},
		{"tool start without name", agui.ToolCallStart{ToolCallID: "tc"}, "TOOL_CALL_START: toolCallName is required"},
		{"tool args without delta", agui.ToolCallArgs{ToolCallID: "tc"}, "TOOL_CALL_ARGS: delta is required"},
		{"tool end without id", agui.ToolCallEnd{}, "TOOL_CALL_END: toolCallId is required"},
		{"tool result without content", agui.ToolCallResult{MessageID: "m", ToolCallID: "tc"}, "TOOL_CALL_RESULT: content is required"},
		{"empty tool chunk", agui.ToolCallChunk{ParentMessageID: "m"}, "TOOL_CALL_CHUNK: at least one of toolCallId, toolCallName or delta must be set"},
		{"thinking content without delta", agui.ThinkingTextMessageContent{}, "THINKING_TEXT_MESSAGE_CONTENT: delta is required"},
		{"snapshot without body", agui.StateSnapshot{}, "STATE_SNAPSHOT: snapshot is required"},
		{"empty delta", agui.StateDelta{}, "STATE_DELTA: delta must contain at least one operation"},
		{"raw without event", agui.Raw{Source: "x"}, "RAW: event is required"},
		{"custom without name", agui.Custom{Value: json.RawMessage(`1`)}, "CUSTOM: name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.event.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, agui.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestStateDelta_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts every well-formed operation", func(t *testing.T) {
		t.Parallel()
		e := agui.StateDelta{Delta: []agui.PatchOperation{
			{Op: agui.PatchAdd, Path: "/a", Value: json.RawMessage(`1`)},
			{Op: agui.PatchRemove, Path: "/a"},
			{Op: agui.PatchReplace, Path: "/b", Value: json.RawMessage(`null`)},
			{Op: agui.PatchMove, Path: "/c", From: "/b"},
			{Op: agui.PatchCopy, Path: "/d", From: "/c"},
			{Op: agui.PatchTest, Path: "/d", Value: json.RawMessage(`"x"`)},
		}}
		assert.NoError(t, e.Validate())
	})

	tests := []struct {
		name    string
		op      agui.PatchOperation
		wantMsg string
	}{
		{"unknown op", agui.PatchOperation{Op: "merge", Path: "/a"}, `op must be one of add, remove, replace, move, copy, test, got "merge"`},
		{"missing path", agui.PatchOperation{Op: agui.PatchRemove}, "path is required"},
		{"add without value", agui.PatchOperation{Op: agui.PatchAdd, Path: "/a"}, "value is required for add"},
		{"test without value", agui.PatchOperation{Op: agui.PatchTest, Path: "/a"}, "value is required for test"},
		{"move without from", agui.PatchOperation{Op: agui.PatchMove, Path: "/a"}, "from is required for move"},
		{"copy without from", agui.PatchOperation{Op: agui.PatchCopy, Path: "/a"}, "from is required for copy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := agui.StateDelta{Delta: []agui.PatchOperation{
				{Op: agui.PatchRemove, Path: "/ok"},
				tt.op,
			}}
			err := e.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, agui.ErrValidation)
			assert.Contains(t, err.Error(), "STATE_DELTA: operation 1: "+tt.wantMsg)
		})
	}
}

func TestMessagesSnapshot_Validate(t *testing.T) {
	t.Parallel()

	valid := agui.Message{
		ID:   "m1",
		Role: agui.RoleAssistant,
		ToolCalls: []agui.ToolCall{
			{ID: "tc1", Type: "function", Function: agui.FunctionCall{Name: "read", Arguments: `{}`}},
		},
	}

	t.Run("valid snapshot", func(t *testing.T) {
		t.Parallel()
		e := agui.MessagesSnapshot{Messages: []agui.Message{valid, {ID: "m2", Role: agui.RoleUser, Content: "hi"}}}
		assert.NoError(t, e.Validate())
	})

	tests := []struct {
		name    string
		msg     agui.Message
		wantMsg string
	}{
		{"missing id", agui.Message{Role: agui.RoleUser}, "message 0: id is required"},
		{"missing role", agui.Message{ID: "m"}, "message 0: role is required"},
		{"unknown role", agui.Message{ID: "m", Role: "robot"}, `message 0: unknown role "robot"`},
		{
			"tool call without type",
			agui.Message{ID: "m", Role: agui.RoleAssistant, ToolCalls: []agui.ToolCall{{ID: "tc", Function: agui.FunctionCall{Name: "x"}}}},
			"message 0: tool call 0: type is required",
		},
		{
			"tool call without function name",
			agui.Message{ID: "m", Role: agui.RoleAssistant, ToolCalls: []agui.ToolCall{{ID: "tc", Type: "function"}}},
			"message 0: tool call 0: function name is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := agui.MessagesSnapshot{Messages: []agui.Message{tt.msg}}.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, agui.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
