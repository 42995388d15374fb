package agui

import (
	"fmt"
	"slices"
	"strings"
)

// Phase is the lifecycle position of a run.
type Phase int

const (
	PhaseNotStarted  Phase = iota // No event seen yet.
	PhaseRunActive                // RUN_STARTED accepted.
	PhaseRunFinished              // RUN_FINISHED accepted; terminal.
	PhaseRunErrored               // RUN_ERROR accepted; terminal.
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not started"
	case PhaseRunActive:
		return "active"
	case PhaseRunFinished:
		return "finished"
	case PhaseRunErrored:
		return "errored"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// SequenceState is a snapshot of a SequenceValidator's tracking state.
type SequenceState struct {
	Phase           Phase
	MessageID       string   // Open text message, if any.
	ToolCallID      string   // Open tool call, if any.
	Thinking        bool     // A thinking step is open.
	ThinkingMessage bool     // A thinking message is open.
	Steps           []string // Active step names, sorted.
}

// SequenceValidator enforces protocol structure on a live event stream for a
// single run. It allows at most one open text message, one open tool call
// and one open thinking step at a time; a text message and a tool call may
// be open together.
//
// The first rejected event halts the validator: every later call returns
// the same error. SequenceValidator is not safe for concurrent use; validate
// independent runs with independent instances.
type SequenceValidator struct {
	phase           Phase
	messageID       string
	toolCallID      string
	thinking        bool
	thinkingMessage bool
	steps           map[string]struct{}
	err             error
}

// NewSequenceValidator returns a validator awaiting RUN_STARTED.
func NewSequenceValidator() *SequenceValidator {
	return &SequenceValidator{steps: make(map[string]struct{})}
}

// Validate checks e against the current state and advances it. On failure it
// returns a *ProtocolError wrapping ErrSequence and leaves the state as it
// was before e.
func (v *SequenceValidator) Validate(e Event) error {
	if v.err != nil {
		return v.err
	}
	if err := v.check(e); err != nil {
		v.err = err
		return err
	}
	return nil
}

// ValidateAll feeds events through the validator in order and returns the
// first rejection.
func (v *SequenceValidator) ValidateAll(events []Event) error {
	for i, e := range events {
		if err := v.Validate(e); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}

// Err returns the error that halted the validator, if any.
func (v *SequenceValidator) Err() error { return v.err }

// State returns a snapshot of the tracking state.
func (v *SequenceValidator) State() SequenceState {
	steps := make([]string, 0, len(v.steps))
	for name := range v.steps {
		steps = append(steps, name)
	}
	slices.Sort(steps)
	return SequenceState{
		Phase:           v.phase,
		MessageID:       v.messageID,
		ToolCallID:      v.toolCallID,
		Thinking:        v.thinking,
		ThinkingMessage: v.thinkingMessage,
		Steps:           steps,
	}
}

func (v *SequenceValidator) check(e Event) error {
	if !isVariant(e) {
		return variantError(e)
	}
	t := e.Type()
	switch v.phase {
	case PhaseNotStarted:
		if t != EventRunStarted {
			return sequenceError(t, fmt.Sprintf("First event must be RUN_STARTED, got %s", t))
		}
		v.phase = PhaseRunActive
		return nil
	case PhaseRunFinished:
		return sequenceError(t, fmt.Sprintf(
			"Cannot send event type %s: the run has already finished with RUN_FINISHED. Start a new run with RUN_STARTED.", t))
	case PhaseRunErrored:
		return sequenceError(t, fmt.Sprintf(
			"Cannot send event type %s: the run has already errored with RUN_ERROR. No further events can be sent.", t))
	}

	switch ev := e.(type) {
	case RunStarted:
		return sequenceError(t, "Cannot send multiple RUN_STARTED events: a RUN_STARTED event was already sent. "+
			"Each run must have exactly one RUN_STARTED event at the beginning.")
	case RunFinished:
		return v.finishRun(t)
	case RunError:
		v.phase = PhaseRunErrored
		return nil

	case StepStarted:
		if _, ok := v.steps[ev.StepName]; ok {
			return sequenceError(t, fmt.Sprintf("Step '%s' is already active for STEP_STARTED", ev.StepName))
		}
		v.steps[ev.StepName] = struct{}{}
		return nil
	case StepFinished:
		if _, ok := v.steps[ev.StepName]; !ok {
			return sequenceError(t, fmt.Sprintf("Cannot send STEP_FINISHED for step '%s' that was not started.", ev.StepName))
		}
		delete(v.steps, ev.StepName)
		return nil

	case TextMessageStart:
		if v.messageID != "" {
			return sequenceError(t, "Cannot send TEXT_MESSAGE_START event: a text message is already in progress. "+
				"Complete it with TEXT_MESSAGE_END first.")
		}
		v.messageID = ev.MessageID
		return nil
	case TextMessageContent:
		return v.matchMessage(t, ev.MessageID)
	case TextMessageEnd:
		if err := v.matchMessage(t, ev.MessageID); err != nil {
			return err
		}
		v.messageID = ""
		return nil

	case ToolCallStart:
		if v.toolCallID != "" {
			return sequenceError(t, "Cannot send TOOL_CALL_START event: a tool call is already in progress. "+
				"Complete it with TOOL_CALL_END first.")
		}
		v.toolCallID = ev.ToolCallID
		return nil
	case ToolCallArgs:
		return v.matchToolCall(t, ev.ToolCallID)
	case ToolCallEnd:
		if err := v.matchToolCall(t, ev.ToolCallID); err != nil {
			return err
		}
		v.toolCallID = ""
		return nil

	case ThinkingStart:
		if v.thinking {
			return sequenceError(t, "Cannot send THINKING_START event: a thinking step is already in progress. "+
				"End it with THINKING_END first.")
		}
		v.thinking = true
		return nil
	case ThinkingEnd:
		if !v.thinking {
			return sequenceError(t, "Cannot send THINKING_END event: no active thinking step found. "+
				"Start one with THINKING_START first.")
		}
		v.thinking, v.thinkingMessage = false, false
		return nil
	case ThinkingTextMessageStart:
		if !v.thinking {
			return sequenceError(t, "Cannot send THINKING_TEXT_MESSAGE_START event: a thinking step is not in progress. "+
				"Create one with THINKING_START first.")
		}
		if v.thinkingMessage {
			return sequenceError(t, "Cannot send THINKING_TEXT_MESSAGE_START event: a thinking message is already in progress. "+
				"Complete it with THINKING_TEXT_MESSAGE_END first.")
		}
		v.thinkingMessage = true
		return nil
	case ThinkingTextMessageContent:
		return v.requireThinkingMessage(t)
	case ThinkingTextMessageEnd:
		if err := v.requireThinkingMessage(t); err != nil {
			return err
		}
		v.thinkingMessage = false
		return nil

	case TextMessageChunk, ToolCallChunk, ToolCallResult,
		StateSnapshot, StateDelta, MessagesSnapshot, Raw, Custom:
		// No framing state of their own.
		return nil
	}
	return variantError(e)
}

func (v *SequenceValidator) finishRun(t EventType) error {
	if len(v.steps) > 0 {
		return sequenceError(t, fmt.Sprintf("Cannot send RUN_FINISHED while steps are still active: %s.",
			strings.Join(v.State().Steps, ", ")))
	}
	if v.messageID != "" {
		return sequenceError(t, fmt.Sprintf("Cannot send RUN_FINISHED while text message '%s' is still active. "+
			"Complete it with TEXT_MESSAGE_END first.", v.messageID))
	}
	if v.toolCallID != "" {
		return sequenceError(t, fmt.Sprintf("Cannot send RUN_FINISHED while tool call '%s' is still active. "+
			"Complete it with TOOL_CALL_END first.", v.toolCallID))
	}
	v.phase = PhaseRunFinished
	return nil
}

func (v *SequenceValidator) matchMessage(t EventType, id string) error {
	if v.messageID == "" {
		return sequenceError(t, fmt.Sprintf("Cannot send %s event: no active text message found. "+
			"Start a text message with TEXT_MESSAGE_START first.", t))
	}
	if id != v.messageID {
		return sequenceError(t, fmt.Sprintf("Cannot send %s event: message ID mismatch. "+
			"The ID '%s' doesn't match the active message ID '%s'.", t, id, v.messageID))
	}
	return nil
}

func (v *SequenceValidator) matchToolCall(t EventType, id string) error {
	if v.toolCallID == "" {
		return sequenceError(t, fmt.Sprintf("Cannot send %s event: no active tool call found. "+
			"Start a tool call with TOOL_CALL_START first.", t))
	}
	if id != v.toolCallID {
		return sequenceError(t, fmt.Sprintf("Cannot send %s event: tool call ID mismatch. "+
			"The ID '%s' doesn't match the active tool call ID '%s'.", t, id, v.toolCallID))
	}
	return nil
}

func (v *SequenceValidator) requireThinkingMessage(t EventType) error {
	if !v.thinkingMessage {
		return sequenceError(t, fmt.Sprintf("Cannot send %s event: no active thinking message found. "+
			"Start one with THINKING_TEXT_MESSAGE_START first.", t))
	}
	return nil
}
