package json

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/agui"
)

// eventDTO is the JSON representation of an Event with a type discriminator.
// Field names follow the protocol's camelCase wire identifiers. Delta holds a
// JSON string for text and argument deltas and a patch array for STATE_DELTA.
type eventDTO struct {
	Type            string          `json:"type"`
	Timestamp       int64           `json:"timestamp,omitempty"`
	RawEvent        json.RawMessage `json:"rawEvent,omitempty"`
	ThreadID        string          `json:"threadId,omitempty"`
	RunID           string          `json:"runId,omitempty"`
	Result          json.RawMessage `json:"result,omitempty"`
	Message         string          `json:"message,omitempty"`
	Code            string          `json:"code,omitempty"`
	StepName        string          `json:"stepName,omitempty"`
	MessageID       string          `json:"messageId,omitempty"`
	Role            string          `json:"role,omitempty"`
	Delta           json.RawMessage `json:"delta,omitempty"`
	ToolCallID      string          `json:"toolCallId,omitempty"`
	ToolCallName    string          `json:"toolCallName,omitempty"`
	ParentMessageID string          `json:"parentMessageId,omitempty"`
	Content         string          `json:"content,omitempty"`
	Title           string          `json:"title,omitempty"`
	Snapshot        json.RawMessage `json:"snapshot,omitempty"`
	Messages        []messageDTO    `json:"messages,omitempty"`
	Event           json.RawMessage `json:"event,omitempty"`
	Source          string          `json:"source,omitempty"`
	Name            string          `json:"name,omitempty"`
	Value           json.RawMessage `json:"value,omitempty"`
}

type patchDTO struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
	From  string          `json:"from,omitempty"`
}

// MarshalEvent serializes an Event to its JSON wire form.
func MarshalEvent(e agui.Event) ([]byte, error) {
	dto, err := marshalEvent(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(dto)
}

// UnmarshalEvent deserializes an Event from its JSON wire form. An unknown or
// missing type yields an error wrapping agui.ErrUnknownEventType. Field
// validation is left to Event.Validate.
func UnmarshalEvent(data []byte) (agui.Event, error) {
	var dto eventDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	return unmarshalEvent(dto)
}

// MarshalEvents serializes a list of events as a JSON array.
func MarshalEvents(events []agui.Event) ([]byte, error) {
	dtos := make([]eventDTO, len(events))
	for i, e := range events {
		dto, err := marshalEvent(e)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		dtos[i] = dto
	}
	return json.MarshalIndent(dtos, "", "  ")
}

// UnmarshalEvents deserializes a JSON array of events.
func UnmarshalEvents(data []byte) ([]agui.Event, error) {
	var dtos []eventDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("unmarshal events: %w", err)
	}
	events := make([]agui.Event, len(dtos))
	for i, dto := range dtos {
		e, err := unmarshalEvent(dto)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events[i] = e
	}
	return events, nil
}

func marshalEvent(e agui.Event) (eventDTO, error) {
	m := e.Metadata()
	dto := eventDTO{Type: string(e.Type()), Timestamp: m.Timestamp, RawEvent: m.RawEvent}
	switch ev := e.(type) {
	case agui.RunStarted:
		dto.ThreadID, dto.RunID = ev.ThreadID, ev.RunID
	case agui.RunFinished:
		dto.ThreadID, dto.RunID, dto.Result = ev.ThreadID, ev.RunID, ev.Result
	case agui.RunError:
		dto.Message, dto.Code, dto.RunID = ev.Message, ev.Code, ev.RunID
	case agui.StepStarted:
		dto.StepName = ev.StepName
	case agui.StepFinished:
		dto.StepName = ev.StepName
	case agui.TextMessageStart:
		dto.MessageID, dto.Role = ev.MessageID, string(ev.Role)
	case agui.TextMessageContent:
		dto.MessageID, dto.Delta = ev.MessageID, marshalString(ev.Delta)
	case agui.TextMessageEnd:
		dto.MessageID = ev.MessageID
	case agui.TextMessageChunk:
		dto.MessageID, dto.Role, dto.Delta = ev.MessageID, string(ev.Role), marshalString(ev.Delta)
	case agui.ToolCallStart:
		dto.ToolCallID, dto.ToolCallName, dto.ParentMessageID = ev.ToolCallID, ev.ToolCallName, ev.ParentMessageID
	case agui.ToolCallArgs:
		dto.ToolCallID, dto.Delta = ev.ToolCallID, marshalString(ev.Delta)
	case agui.ToolCallEnd:
		dto.ToolCallID = ev.ToolCallID
	case agui.ToolCallResult:
		dto.MessageID, dto.ToolCallID, dto.Content, dto.Role = ev.MessageID, ev.ToolCallID, ev.Content, string(ev.Role)
	case agui.ToolCallChunk:
		dto.ToolCallID, dto.ToolCallName, dto.ParentMessageID = ev.ToolCallID, ev.ToolCallName, ev.ParentMessageID
		dto.Delta = marshalString(ev.Delta)
	case agui.ThinkingStart:
		dto.Title = ev.Title
	case agui.ThinkingEnd, agui.ThinkingTextMessageStart, agui.ThinkingTextMessageEnd:
	case agui.ThinkingTextMessageContent:
		dto.Delta = marshalString(ev.Delta)
	case agui.StateSnapshot:
		dto.Snapshot = ev.Snapshot
	case agui.StateDelta:
		data, err := MarshalPatch(ev.Delta)
		if err != nil {
			return eventDTO{}, err
		}
		dto.Delta = data
	case agui.MessagesSnapshot:
		dto.Messages = marshalMessages(ev.Messages)
	case agui.Raw:
		dto.Event, dto.Source = ev.Event, ev.Source
	case agui.Custom:
		dto.Name, dto.Value = ev.Name, ev.Value
	default:
		return eventDTO{}, fmt.Errorf("%w: %T", agui.ErrUnknownEventType, e)
	}
	return dto, nil
}

func unmarshalEvent(dto eventDTO) (agui.Event, error) {
	m := agui.Meta{Timestamp: dto.Timestamp, RawEvent: dto.RawEvent}
	t := agui.EventType(dto.Type)
	switch t {
	case agui.EventRunStarted:
		return agui.RunStarted{Meta: m, ThreadID: dto.ThreadID, RunID: dto.RunID}, nil
	case agui.EventRunFinished:
		return agui.RunFinished{Meta: m, ThreadID: dto.ThreadID, RunID: dto.RunID, Result: dto.Result}, nil
	case agui.EventRunError:
		return agui.RunError{Meta: m, Message: dto.Message, Code: dto.Code, RunID: dto.RunID}, nil
	case agui.EventStepStarted:
		return agui.StepStarted{Meta: m, StepName: dto.StepName}, nil
	case agui.EventStepFinished:
		return agui.StepFinished{Meta: m, StepName: dto.StepName}, nil
	case agui.EventTextMessageStart:
		return agui.TextMessageStart{Meta: m, MessageID: dto.MessageID, Role: agui.Role(dto.Role)}, nil
	case agui.EventTextMessageEnd:
		return agui.TextMessageEnd{Meta: m, MessageID: dto.MessageID}, nil
	case agui.EventToolCallStart:
		return agui.ToolCallStart{
			Meta:            m,
			ToolCallID:      dto.ToolCallID,
			ToolCallName:    dto.ToolCallName,
			ParentMessageID: dto.ParentMessageID,
		}, nil
	case agui.EventToolCallEnd:
		return agui.ToolCallEnd{Meta: m, ToolCallID: dto.ToolCallID}, nil
	case agui.EventToolCallResult:
		return agui.ToolCallResult{
			Meta:       m,
			MessageID:  dto.MessageID,
			ToolCallID: dto.ToolCallID,
			Content:    dto.Content,
			Role:       agui.Role(dto.Role),
		}, nil
	case agui.EventThinkingStart:
		return agui.ThinkingStart{Meta: m, Title: dto.Title}, nil
	case agui.EventThinkingEnd:
		return agui.ThinkingEnd{Meta: m}, nil
	case agui.EventThinkingTextMessageStart:
		return agui.ThinkingTextMessageStart{Meta: m}, nil
	case agui.EventThinkingTextMessageEnd:
		return agui.ThinkingTextMessageEnd{Meta: m}, nil
	case agui.EventStateSnapshot:
		return agui.StateSnapshot{Meta: m, Snapshot: dto.Snapshot}, nil
	case agui.EventStateDelta:
		var ops []agui.PatchOperation
		if len(dto.Delta) > 0 {
			var err error
			if ops, err = UnmarshalPatch(dto.Delta); err != nil {
				return nil, err
			}
		}
		return agui.StateDelta{Meta: m, Delta: ops}, nil
	case agui.EventMessagesSnapshot:
		return agui.MessagesSnapshot{Meta: m, Messages: unmarshalMessages(dto.Messages)}, nil
	case agui.EventRaw:
		return agui.Raw{Meta: m, Event: dto.Event, Source: dto.Source}, nil
	case agui.EventCustom:
		return agui.Custom{Meta: m, Name: dto.Name, Value: dto.Value}, nil
	}

	// Remaining types carry a string delta.
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %q", agui.ErrUnknownEventType, dto.Type)
	}
	delta, err := unmarshalString(dto.Delta)
	if err != nil {
		return nil, err
	}
	switch t {
	case agui.EventTextMessageContent:
		return agui.TextMessageContent{Meta: m, MessageID: dto.MessageID, Delta: delta}, nil
	case agui.EventTextMessageChunk:
		return agui.TextMessageChunk{Meta: m, MessageID: dto.MessageID, Role: agui.Role(dto.Role), Delta: delta}, nil
	case agui.EventToolCallArgs:
		return agui.ToolCallArgs{Meta: m, ToolCallID: dto.ToolCallID, Delta: delta}, nil
	case agui.EventToolCallChunk:
		return agui.ToolCallChunk{
			Meta:            m,
			ToolCallID:      dto.ToolCallID,
			ToolCallName:    dto.ToolCallName,
			ParentMessageID: dto.ParentMessageID,
			Delta:           delta,
		}, nil
	case agui.EventThinkingTextMessageContent:
		return agui.ThinkingTextMessageContent{Meta: m, Delta: delta}, nil
	}
	return nil, fmt.Errorf("%w: %q", agui.ErrUnknownEventType, dto.Type)
}

func marshalString(s string) json.RawMessage {
	if s == "" {
		return nil
	}
	data, _ := json.Marshal(s) // Strings always marshal.
	return data
}

func unmarshalString(data json.RawMessage) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("unmarshal delta: %w", err)
	}
	return s, nil
}

// MarshalPatch serializes operations as an RFC 6902 JSON Patch document.
func MarshalPatch(ops []agui.PatchOperation) ([]byte, error) {
	dtos := make([]patchDTO, len(ops))
	for i, op := range ops {
		dtos[i] = patchDTO{Op: string(op.Op), Path: op.Path, Value: op.Value, From: op.From}
	}
	data, err := json.Marshal(dtos)
	if err != nil {
		return nil, fmt.Errorf("marshal patch: %w", err)
	}
	return data, nil
}

// UnmarshalPatch deserializes an RFC 6902 JSON Patch document.
func UnmarshalPatch(data []byte) ([]agui.PatchOperation, error) {
	var dtos []patchDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("unmarshal patch: %w", err)
	}
	ops := make([]agui.PatchOperation, len(dtos))
	for i, d := range dtos {
		ops[i] = agui.PatchOperation{Op: agui.PatchOp(d.Op), Path: d.Path, Value: d.Value, From: d.From}
	}
	return ops, nil
}
