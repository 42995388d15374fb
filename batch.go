package agui

import "fmt"

// Validator checks a materialized event list.
type Validator interface {
	ValidateAll(events []Event) error
}

// Interface compliance checks.
var (
	_ Validator = (*SequenceValidator)(nil)
	_ Validator = BatchValidator{}
)

// BatchValidator validates a complete event list in which several runs,
// messages and tool calls may be interleaved. Lifecycles are tracked per ID
// rather than through a single focal construct, so it accepts interleavings
// a SequenceValidator rejects.
//
// BatchValidator holds no state between calls and is safe for concurrent use.
type BatchValidator struct{}

type batchState struct {
	activeRuns      map[string]struct{}
	finishedRuns    map[string]struct{}
	activeMessages  map[string]struct{}
	activeToolCalls map[string]struct{}
	activeSteps     map[string]struct{}
}

// ValidateAll runs each event's field validation and then the ID-keyed
// lifecycle rules, stopping at the first failure. Errors name the index of
// the offending event.
func (BatchValidator) ValidateAll(events []Event) error {
	s := batchState{
		activeRuns:      make(map[string]struct{}),
		finishedRuns:    make(map[string]struct{}),
		activeMessages:  make(map[string]struct{}),
		activeToolCalls: make(map[string]struct{}),
		activeSteps:     make(map[string]struct{}),
	}
	for i, e := range events {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("event %d validation failed: %w", i, err)
		}
		if err := s.apply(e); err != nil {
			return fmt.Errorf("event %d validation failed: %w", i, err)
		}
	}
	return nil
}

func (s *batchState) apply(e Event) error {
	if !isVariant(e) {
		return variantError(e)
	}
	t := e.Type()
	switch ev := e.(type) {
	case RunStarted:
		if has(s.activeRuns, ev.RunID) {
			return sequenceError(t, fmt.Sprintf("run %s already started", ev.RunID))
		}
		if has(s.finishedRuns, ev.RunID) {
			return sequenceError(t, fmt.Sprintf("cannot restart finished run %s", ev.RunID))
		}
		s.activeRuns[ev.RunID] = struct{}{}
	case RunFinished:
		if !has(s.activeRuns, ev.RunID) {
			return sequenceError(t, fmt.Sprintf("cannot finish run %s that was not started", ev.RunID))
		}
		delete(s.activeRuns, ev.RunID)
		s.finishedRuns[ev.RunID] = struct{}{}
	case RunError:
		if ev.RunID == "" {
			return nil
		}
		if !has(s.activeRuns, ev.RunID) {
			return sequenceError(t, fmt.Sprintf("cannot error run %s that was not started", ev.RunID))
		}
		delete(s.activeRuns, ev.RunID)
		s.finishedRuns[ev.RunID] = struct{}{}

	case StepStarted:
		if has(s.activeSteps, ev.StepName) {
			return sequenceError(t, fmt.Sprintf("step %s already started", ev.StepName))
		}
		s.activeSteps[ev.StepName] = struct{}{}
	case StepFinished:
		if !has(s.activeSteps, ev.StepName) {
			return sequenceError(t, fmt.Sprintf("cannot finish step %s that was not started", ev.StepName))
		}
		delete(s.activeSteps, ev.StepName)

	case TextMessageStart:
		if has(s.activeMessages, ev.MessageID) {
			return sequenceError(t, fmt.Sprintf("message %s already started", ev.MessageID))
		}
		s.activeMessages[ev.MessageID] = struct{}{}
	case TextMessageContent:
		if !has(s.activeMessages, ev.MessageID) {
			return sequenceError(t, fmt.Sprintf("cannot add content to message %s that was not started", ev.MessageID))
		}
	case TextMessageEnd:
		if !has(s.activeMessages, ev.MessageID) {
			return sequenceError(t, fmt.Sprintf("cannot end message %s that was not started", ev.MessageID))
		}
		delete(s.activeMessages, ev.MessageID)

	case ToolCallStart:
		if has(s.activeToolCalls, ev.ToolCallID) {
			return sequenceError(t, fmt.Sprintf("tool call %s already started", ev.ToolCallID))
		}
		s.activeToolCalls[ev.ToolCallID] = struct{}{}
	case ToolCallArgs:
		if !has(s.activeToolCalls, ev.ToolCallID) {
			return sequenceError(t, fmt.Sprintf("cannot add args to tool call %s that was not started", ev.ToolCallID))
		}
	case ToolCallEnd:
		if !has(s.activeToolCalls, ev.ToolCallID) {
			return sequenceError(t, fmt.Sprintf("cannot end tool call %s that was not started", ev.ToolCallID))
		}
		delete(s.activeToolCalls, ev.ToolCallID)
	}
	return nil
}

func has(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
