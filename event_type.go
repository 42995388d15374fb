package agui

// EventType is the wire discriminator carried in every event's "type" field.
type EventType string

const (
	EventRunStarted   EventType = "RUN_STARTED"
	EventRunFinished  EventType = "RUN_FINISHED"
	EventRunError     EventType = "RUN_ERROR"
	EventStepStarted  EventType = "STEP_STARTED"
	EventStepFinished EventType = "STEP_FINISHED"

	EventTextMessageStart   EventType = "TEXT_MESSAGE_START"
	EventTextMessageContent EventType = "TEXT_MESSAGE_CONTENT"
	EventTextMessageEnd     EventType = "TEXT_MESSAGE_END"
	EventTextMessageChunk   EventType = "TEXT_MESSAGE_CHUNK"

	EventToolCallStart  EventType = "TOOL_CALL_START"
	EventToolCallArgs   EventType = "TOOL_CALL_ARGS"
	EventToolCallEnd    EventType = "TOOL_CALL_END"
	EventToolCallResult EventType = "TOOL_CALL_RESULT"
	EventToolCallChunk  EventType = "TOOL_CALL_CHUNK"

	EventThinkingStart              EventType = "THINKING_START"
	EventThinkingEnd                EventType = "THINKING_END"
	EventThinkingTextMessageStart   EventType = "THINKING_TEXT_MESSAGE_START"
	EventThinkingTextMessageContent EventType = "THINKING_TEXT_MESSAGE_CONTENT"
	EventThinkingTextMessageEnd     EventType = "THINKING_TEXT_MESSAGE_END"

	EventStateSnapshot    EventType = "STATE_SNAPSHOT"
	EventStateDelta       EventType = "STATE_DELTA"
	EventMessagesSnapshot EventType = "MESSAGES_SNAPSHOT"

	EventRaw    EventType = "RAW"
	EventCustom EventType = "CUSTOM"
)

var eventTypes = []EventType{
	EventRunStarted,
	EventRunFinished,
	EventRunError,
	EventStepStarted,
	EventStepFinished,
	EventTextMessageStart,
	EventTextMessageContent,
	EventTextMessageEnd,
	EventTextMessageChunk,
	EventToolCallStart,
	EventToolCallArgs,
	EventToolCallEnd,
	EventToolCallResult,
	EventToolCallChunk,
	EventThinkingStart,
	EventThinkingEnd,
	EventThinkingTextMessageStart,
	EventThinkingTextMessageContent,
	EventThinkingTextMessageEnd,
	EventStateSnapshot,
	EventStateDelta,
	EventMessagesSnapshot,
	EventRaw,
	EventCustom,
}

// EventTypes returns every known event type in declaration order.
func EventTypes() []EventType {
	out := make([]EventType, len(eventTypes))
	copy(out, eventTypes)
	return out
}

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	for _, et := range eventTypes {
		if et == t {
			return true
		}
	}
	return false
}

// Unconstrained reports whether events of this type are accepted in any
// phase of a run without affecting sequence state.
func (t EventType) Unconstrained() bool {
	switch t {
	case EventRaw, EventCustom, EventStateSnapshot, EventStateDelta, EventMessagesSnapshot:
		return true
	}
	return false
}

func (t EventType) String() string { return string(t) }
