package agui

import "encoding/json"

// Event is a sealed interface representing one protocol event.
// The unexported marker method prevents external implementations. Variants
// are passed by value; pointers to them also satisfy Event but are rejected
// by the normalizer and both validators.
type Event interface {
	event()
	Type() EventType
	Validate() error
	Metadata() Meta
}

// Meta carries the fields shared by every event.
type Meta struct {
	Timestamp int64           // Unix milliseconds; zero when unset.
	RawEvent  json.RawMessage // Producer-specific passthrough payload.
}

// Metadata returns the shared event fields.
func (m Meta) Metadata() Meta { return m }

// RunStarted opens a run.
type RunStarted struct {
	Meta
	ThreadID string
	RunID    string
}

func (RunStarted) event()          {}
func (RunStarted) Type() EventType { return EventRunStarted }

// RunFinished closes a run successfully.
type RunFinished struct {
	Meta
	ThreadID string
	RunID    string
	Result   json.RawMessage
}

func (RunFinished) event()          {}
func (RunFinished) Type() EventType { return EventRunFinished }

// RunError terminates a run with an error.
type RunError struct {
	Meta
	Message string
	Code    string
	RunID   string
}

func (RunError) event()          {}
func (RunError) Type() EventType { return EventRunError }

// StepStarted opens a named step within a run.
type StepStarted struct {
	Meta
	StepName string
}

func (StepStarted) event()          {}
func (StepStarted) Type() EventType { return EventStepStarted }

// StepFinished closes a named step.
type StepFinished struct {
	Meta
	StepName string
}

func (StepFinished) event()          {}
func (StepFinished) Type() EventType { return EventStepFinished }

// TextMessageStart opens a text message.
type TextMessageStart struct {
	Meta
	MessageID string
	Role      Role
}

func (TextMessageStart) event()          {}
func (TextMessageStart) Type() EventType { return EventTextMessageStart }

// TextMessageContent appends a delta to the open text message.
type TextMessageContent struct {
	Meta
	MessageID string
	Delta     string
}

func (TextMessageContent) event()          {}
func (TextMessageContent) Type() EventType { return EventTextMessageContent }

// TextMessageEnd closes a text message.
type TextMessageEnd struct {
	Meta
	MessageID string
}

func (TextMessageEnd) event()          {}
func (TextMessageEnd) Type() EventType { return EventTextMessageEnd }

// TextMessageChunk is the compact form of a text message. Every field is
// optional; a Normalizer expands chunks into start/content/end events.
type TextMessageChunk struct {
	Meta
	MessageID string
	Role      Role
	Delta     string
}

func (TextMessageChunk) event()          {}
func (TextMessageChunk) Type() EventType { return EventTextMessageChunk }

// ToolCallStart opens a tool call.
type ToolCallStart struct {
	Meta
	ToolCallID      string
	ToolCallName    string
	ParentMessageID string
}

func (ToolCallStart) event()          {}
func (ToolCallStart) Type() EventType { return EventToolCallStart }

// ToolCallArgs appends an argument fragment to the open tool call.
type ToolCallArgs struct {
	Meta
	ToolCallID string
	Delta      string
}

func (ToolCallArgs) event()          {}
func (ToolCallArgs) Type() EventType { return EventToolCallArgs }

// ToolCallEnd closes a tool call.
type ToolCallEnd struct {
	Meta
	ToolCallID string
}

func (ToolCallEnd) event()          {}
func (ToolCallEnd) Type() EventType { return EventToolCallEnd }

// ToolCallResult carries the output of an executed tool call.
type ToolCallResult struct {
	Meta
	MessageID  string
	ToolCallID string
	Content    string
	Role       Role
}

func (ToolCallResult) event()          {}
func (ToolCallResult) Type() EventType { return EventToolCallResult }

// ToolCallChunk is the compact form of a tool call.
type ToolCallChunk struct {
	Meta
	ToolCallID      string
	ToolCallName    string
	ParentMessageID string
	Delta           string
}

func (ToolCallChunk) event()          {}
func (ToolCallChunk) Type() EventType { return EventToolCallChunk }

// ThinkingStart opens a thinking step.
type ThinkingStart struct {
	Meta
	Title string
}

func (ThinkingStart) event()          {}
func (ThinkingStart) Type() EventType { return EventThinkingStart }

// ThinkingEnd closes a thinking step.
type ThinkingEnd struct {
	Meta
}

func (ThinkingEnd) event()          {}
func (ThinkingEnd) Type() EventType { return EventThinkingEnd }

// ThinkingTextMessageStart opens a thinking message inside a thinking step.
type ThinkingTextMessageStart struct {
	Meta
}

func (ThinkingTextMessageStart) event()          {}
func (ThinkingTextMessageStart) Type() EventType { return EventThinkingTextMessageStart }

// ThinkingTextMessageContent appends a delta to the open thinking message.
type ThinkingTextMessageContent struct {
	Meta
	Delta string
}

func (ThinkingTextMessageContent) event()          {}
func (ThinkingTextMessageContent) Type() EventType { return EventThinkingTextMessageContent }

// ThinkingTextMessageEnd closes a thinking message.
type ThinkingTextMessageEnd struct {
	Meta
}

func (ThinkingTextMessageEnd) event()          {}
func (ThinkingTextMessageEnd) Type() EventType { return EventThinkingTextMessageEnd }

// StateSnapshot replaces the consumer's state document.
type StateSnapshot struct {
	Meta
	Snapshot json.RawMessage
}

func (StateSnapshot) event()          {}
func (StateSnapshot) Type() EventType { return EventStateSnapshot }

// StateDelta patches the consumer's state document.
type StateDelta struct {
	Meta
	Delta []PatchOperation
}

func (StateDelta) event()          {}
func (StateDelta) Type() EventType { return EventStateDelta }

// MessagesSnapshot replaces the consumer's message history.
type MessagesSnapshot struct {
	Meta
	Messages []Message
}

func (MessagesSnapshot) event()          {}
func (MessagesSnapshot) Type() EventType { return EventMessagesSnapshot }

// Raw wraps an event from an external system.
type Raw struct {
	Meta
	Event  json.RawMessage
	Source string
}

func (Raw) event()          {}
func (Raw) Type() EventType { return EventRaw }

// Custom carries an application-defined event.
type Custom struct {
	Meta
	Name  string
	Value json.RawMessage
}

func (Custom) event()          {}
func (Custom) Type() EventType { return EventCustom }

// TextMessageOptions holds the optional fields of NewTextMessageStart.
type TextMessageOptions struct {
	Role Role // Defaults to RoleAssistant.
}

// NewTextMessageStart returns a TextMessageStart with defaults applied.
func NewTextMessageStart(messageID string, opts TextMessageOptions) TextMessageStart {
	role := opts.Role
	if role == "" {
		role = RoleAssistant
	}
	return TextMessageStart{MessageID: messageID, Role: role}
}

// NewToolCallResult returns a ToolCallResult with the tool role set.
func NewToolCallResult(messageID, toolCallID, content string) ToolCallResult {
	return ToolCallResult{
		MessageID:  messageID,
		ToolCallID: toolCallID,
		Content:    content,
		Role:       RoleTool,
	}
}

// Interface compliance checks.
var (
	_ Event = RunStarted{}
	_ Event = RunFinished{}
	_ Event = RunError{}
	_ Event = StepStarted{}
	_ Event = StepFinished{}
	_ Event = TextMessageStart{}
	_ Event = TextMessageContent{}
	_ Event = TextMessageEnd{}
	_ Event = TextMessageChunk{}
	_ Event = ToolCallStart{}
	_ Event = ToolCallArgs{}
	_ Event = ToolCallEnd{}
	_ Event = ToolCallResult{}
	_ Event = ToolCallChunk{}
	_ Event = ThinkingStart{}
	_ Event = ThinkingEnd{}
	_ Event = ThinkingTextMessageStart{}
	_ Event = ThinkingTextMessageContent{}
	_ Event = ThinkingTextMessageEnd{}
	_ Event = StateSnapshot{}
	_ Event = StateDelta{}
	_ Event = MessagesSnapshot{}
	_ Event = Raw{}
	_ Event = Custom{}
)

// isVariant reports whether e is one of the value types above.
func isVariant(e Event) bool {
	switch e.(type) {
	case RunStarted, RunFinished, RunError, StepStarted, StepFinished,
		TextMessageStart, TextMessageContent, TextMessageEnd, TextMessageChunk,
		ToolCallStart, ToolCallArgs, ToolCallEnd, ToolCallResult, ToolCallChunk,
		ThinkingStart, ThinkingEnd,
		ThinkingTextMessageStart, ThinkingTextMessageContent, ThinkingTextMessageEnd,
		StateSnapshot, StateDelta, MessagesSnapshot, Raw, Custom:
		return true
	}
	return false
}
