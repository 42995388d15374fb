package agui_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/fwojciec/agui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchValidator_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		events []agui.Event
	}{
		{
			name: "single run",
			events: []agui.Event{
				runStarted,
				agui.TextMessageStart{MessageID: "msg-1"},
				agui.TextMessageContent{MessageID: "msg-1", Delta: "Hello"},
				agui.TextMessageEnd{MessageID: "msg-1"},
				runFinished,
			},
		},
		{
			name: "interleaved runs messages and tool calls",
			events: []agui.Event{
				agui.RunStarted{ThreadID: "t", RunID: "r1"},
				agui.RunStarted{ThreadID: "t", RunID: "r2"},
				agui.TextMessageStart{MessageID: "m1"},
				agui.TextMessageStart{MessageID: "m2"},
				agui.ToolCallStart{ToolCallID: "t1", ToolCallName: "a"},
				agui.ToolCallStart{ToolCallID: "t2", ToolCallName: "b"},
				agui.TextMessageContent{MessageID: "m2", Delta: "x"},
				agui.ToolCallArgs{ToolCallID: "t1", Delta: "{}"},
				agui.TextMessageEnd{MessageID: "m1"},
				agui.ToolCallEnd{ToolCallID: "t2"},
				agui.RunFinished{ThreadID: "t", RunID: "r2"},
				agui.RunError{Message: "boom", RunID: "r1"},
			},
		},
		{
			name: "run error without run id",
			events: []agui.Event{
				agui.RunError{Message: "boom"},
			},
		},
		{
			name: "unconstrained events without a run",
			events: []agui.Event{
				agui.StateSnapshot{Snapshot: json.RawMessage(`{}`)},
				agui.Custom{Name: "c"},
				agui.ThinkingEnd{},
				agui.ToolCallResult{MessageID: "m", ToolCallID: "t", Content: "ok"},
			},
		},
		{
			name: "message id reused after end",
			events: []agui.Event{
				agui.TextMessageStart{MessageID: "m1"},
				agui.TextMessageEnd{MessageID: "m1"},
				agui.TextMessageStart{MessageID: "m1"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.NoError(t, agui.BatchValidator{}.ValidateAll(tt.events))
		})
	}
}

func TestBatchValidator_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		events  []agui.Event
		wantMsg string
	}{
		{
			name:    "run started twice",
			events:  []agui.Event{runStarted, runStarted},
			wantMsg: "event 1 validation failed: run run-1 already started",
		},
		{
			name:    "restart finished run",
			events:  []agui.Event{runStarted, runFinished, runStarted},
			wantMsg: "event 2 validation failed: cannot restart finished run run-1",
		},
		{
			name:    "finish unknown run",
			events:  []agui.Event{runFinished},
			wantMsg: "event 0 validation failed: cannot finish run run-1 that was not started",
		},
		{
			name:    "error unknown run",
			events:  []agui.Event{agui.RunError{Message: "boom", RunID: "r9"}},
			wantMsg: "event 0 validation failed: cannot error run r9 that was not started",
		},
		{
			name:    "step started twice",
			events:  []agui.Event{agui.StepStarted{StepName: "s"}, agui.StepStarted{StepName: "s"}},
			wantMsg: "event 1 validation failed: step s already started",
		},
		{
			name:    "finish unknown step",
			events:  []agui.Event{agui.StepFinished{StepName: "s"}},
			wantMsg: "event 0 validation failed: cannot finish step s that was not started",
		},
		{
			name:    "message started twice",
			events:  []agui.Event{agui.TextMessageStart{MessageID: "m"}, agui.TextMessageStart{MessageID: "m"}},
			wantMsg: "event 1 validation failed: message m already started",
		},
		{
			name:    "content for unknown message",
			events:  []agui.Event{agui.TextMessageContent{MessageID: "m", Delta: "x"}},
			wantMsg: "event 0 validation failed: cannot add content to message m that was not started",
		},
		{
			name:    "end unknown message",
			events:  []agui.Event{agui.TextMessageEnd{MessageID: "m"}},
			wantMsg: "event 0 validation failed: cannot end message m that was not started",
		},
		{
			name: "tool call started twice",
			events: []agui.Event{
				agui.ToolCallStart{ToolCallID: "t", ToolCallName: "a"},
				agui.ToolCallStart{ToolCallID: "t", ToolCallName: "a"},
			},
			wantMsg: "event 1 validation failed: tool call t already started",
		},
		{
			name:    "args for unknown tool call",
			events:  []agui.Event{agui.ToolCallArgs{ToolCallID: "t", Delta: "{}"}},
			wantMsg: "event 0 validation failed: cannot add args to tool call t that was not started",
		},
		{
			name:    "end unknown tool call",
			events:  []agui.Event{agui.ToolCallEnd{ToolCallID: "t"}},
			wantMsg: "event 0 validation failed: cannot end tool call t that was not started",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := agui.BatchValidator{}.ValidateAll(tt.events)
			require.Error(t, err)
			assert.ErrorIs(t, err, agui.ErrSequence)
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestBatchValidator_FieldValidationFirst(t *testing.T) {
	t.Parallel()
	err := agui.BatchValidator{}.ValidateAll([]agui.Event{
		runStarted,
		agui.TextMessageStart{},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, agui.ErrValidation)
	assert.NotErrorIs(t, err, agui.ErrSequence)
	assert.Contains(t, err.Error(), "event 1 validation failed: TEXT_MESSAGE_START: messageId is required")
}

func TestBatchValidator_Reentrant(t *testing.T) {
	t.Parallel()
	events := []agui.Event{runStarted, runFinished}
	v := agui.BatchValidator{}
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, v.ValidateAll(events))
		}()
	}
	wg.Wait()
	// Fresh tracking sets per call: the same run may be validated again.
	assert.NoError(t, v.ValidateAll(events))
}

func TestValidator_Strategies(t *testing.T) {
	t.Parallel()
	// Two concurrent messages: accepted by the ID-keyed strategy only.
	events := []agui.Event{
		runStarted,
		agui.TextMessageStart{MessageID: "m1"},
		agui.TextMessageStart{MessageID: "m2"},
	}
	strategies := map[string]struct {
		v       agui.Validator
		wantErr bool
	}{
		"sequence": {agui.NewSequenceValidator(), true},
		"batch":    {agui.BatchValidator{}, false},
	}
	for name, s := range strategies {
		err := s.v.ValidateAll(events)
		if s.wantErr {
			assert.ErrorIs(t, err, agui.ErrSequence, name)
		} else {
			assert.NoError(t, err, name)
		}
	}
}

func TestBatchValidator_RejectsPointerEvents(t *testing.T) {
	t.Parallel()
	err := agui.BatchValidator{}.ValidateAll([]agui.Event{
		agui.RunStarted{ThreadID: "t", RunID: "r"},
		&agui.TextMessageEnd{MessageID: "m"},
	})
	require.ErrorIs(t, err, agui.ErrUnknownEventType)
	assert.Contains(t, err.Error(), "event 1 validation failed: ")
	assert.Contains(t, err.Error(), "*agui.TextMessageEnd")
}
