package agui

import "fmt"

// Validate checks RunStarted's required fields.
func (e RunStarted) Validate() error {
	if err := required(e.Type(), "threadId", e.ThreadID); err != nil {
		return err
	}
	return required(e.Type(), "runId", e.RunID)
}

// Validate checks RunFinished's required fields.
func (e RunFinished) Validate() error {
	if err := required(e.Type(), "threadId", e.ThreadID); err != nil {
		return err
	}
	return required(e.Type(), "runId", e.RunID)
}

// Validate checks RunError's required fields.
func (e RunError) Validate() error {
	return required(e.Type(), "message", e.Message)
}

// Validate checks StepStarted's required fields.
func (e StepStarted) Validate() error {
	return required(e.Type(), "stepName", e.StepName)
}

// Validate checks StepFinished's required fields.
func (e StepFinished) Validate() error {
	return required(e.Type(), "stepName", e.StepName)
}

// Validate checks TextMessageStart's required fields and role.
func (e TextMessageStart) Validate() error {
	if err := required(e.Type(), "messageId", e.MessageID); err != nil {
		return err
	}
	return validRole(e.Type(), e.Role)
}

// Validate checks TextMessageContent's required fields.
func (e TextMessageContent) Validate() error {
	if err := required(e.Type(), "messageId", e.MessageID); err != nil {
		return err
	}
	return required(e.Type(), "delta", e.Delta)
}

// Validate checks TextMessageEnd's required fields.
func (e TextMessageEnd) Validate() error {
	return required(e.Type(), "messageId", e.MessageID)
}

// Validate rejects a chunk that carries nothing at all.
func (e TextMessageChunk) Validate() error {
	if e.MessageID == "" && e.Role == "" && e.Delta == "" {
		return fmt.Errorf("%s: at least one of messageId, role or delta must be set: %w", e.Type(), ErrValidation)
	}
	return validRole(e.Type(), e.Role)
}

// Validate checks ToolCallStart's required fields.
func (e ToolCallStart) Validate() error {
	if err := required(e.Type(), "toolCallId", e.ToolCallID); err != nil {
		return err
	}
	return required(e.Type(), "toolCallName", e.ToolCallName)
}

// Validate checks ToolCallArgs's required fields.
func (e ToolCallArgs) Validate() error {
	if err := required(e.Type(), "toolCallId", e.ToolCallID); err != nil {
		return err
	}
	return required(e.Type(), "delta", e.Delta)
}

// Validate checks ToolCallEnd's required fields.
func (e ToolCallEnd) Validate() error {
	return required(e.Type(), "toolCallId", e.ToolCallID)
}

// Validate checks ToolCallResult's required fields.
func (e ToolCallResult) Validate() error {
	if err := required(e.Type(), "messageId", e.MessageID); err != nil {
		return err
	}
	if err := required(e.Type(), "toolCallId", e.ToolCallID); err != nil {
		return err
	}
	if err := required(e.Type(), "content", e.Content); err != nil {
		return err
	}
	return validRole(e.Type(), e.Role)
}

// Validate rejects a chunk that carries nothing at all.
func (e ToolCallChunk) Validate() error {
	if e.ToolCallID == "" && e.ToolCallName == "" && e.Delta == "" {
		return fmt.Errorf("%s: at least one of toolCallId, toolCallName or delta must be set: %w", e.Type(), ErrValidation)
	}
	return nil
}

// Validate always succeeds; the title is optional.
func (e ThinkingStart) Validate() error { return nil }

// Validate always succeeds.
func (e ThinkingEnd) Validate() error { return nil }

// Validate always succeeds.
func (e ThinkingTextMessageStart) Validate() error { return nil }

// Validate checks ThinkingTextMessageContent's required fields.
func (e ThinkingTextMessageContent) Validate() error {
	return required(e.Type(), "delta", e.Delta)
}

// Validate always succeeds.
func (e ThinkingTextMessageEnd) Validate() error { return nil }

// Validate checks that a snapshot is present.
func (e StateSnapshot) Validate() error {
	if len(e.Snapshot) == 0 {
		return fmt.Errorf("%s: snapshot is required: %w", e.Type(), ErrValidation)
	}
	return nil
}

// Validate checks that the delta holds at least one well-formed operation.
func (e StateDelta) Validate() error {
	if len(e.Delta) == 0 {
		return fmt.Errorf("%s: delta must contain at least one operation: %w", e.Type(), ErrValidation)
	}
	for i, op := range e.Delta {
		if err := op.validate(); err != nil {
			return fmt.Errorf("%s: operation %d: %w", e.Type(), i, err)
		}
	}
	return nil
}

func (op PatchOperation) validate() error {
	if !op.Op.Valid() {
		return fmt.Errorf("op must be one of add, remove, replace, move, copy, test, got %q: %w", op.Op, ErrValidation)
	}
	if op.Path == "" {
		return fmt.Errorf("path is required: %w", ErrValidation)
	}
	if op.Op.needsValue() && len(op.Value) == 0 {
		return fmt.Errorf("value is required for %s: %w", op.Op, ErrValidation)
	}
	if op.Op.needsFrom() && op.From == "" {
		return fmt.Errorf("from is required for %s: %w", op.Op, ErrValidation)
	}
	return nil
}

// Validate checks every message in the snapshot.
func (e MessagesSnapshot) Validate() error {
	for i, m := range e.Messages {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("%s: message %d: %w", e.Type(), i, err)
		}
	}
	return nil
}

// Validate checks a message's id, role and tool calls.
func (m Message) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("id is required: %w", ErrValidation)
	}
	if m.Role == "" {
		return fmt.Errorf("role is required: %w", ErrValidation)
	}
	if !m.Role.Valid() {
		return fmt.Errorf("unknown role %q: %w", m.Role, ErrValidation)
	}
	for i, tc := range m.ToolCalls {
		if err := tc.Validate(); err != nil {
			return fmt.Errorf("tool call %d: %w", i, err)
		}
	}
	return nil
}

// Validate checks a tool call's id, type and function name.
func (tc ToolCall) Validate() error {
	switch {
	case tc.ID == "":
		return fmt.Errorf("id is required: %w", ErrValidation)
	case tc.Type == "":
		return fmt.Errorf("type is required: %w", ErrValidation)
	case tc.Function.Name == "":
		return fmt.Errorf("function name is required: %w", ErrValidation)
	}
	return nil
}

// Validate checks that the wrapped event is present.
func (e Raw) Validate() error {
	if len(e.Event) == 0 {
		return fmt.Errorf("%s: event is required: %w", e.Type(), ErrValidation)
	}
	return nil
}

// Validate checks Custom's required fields.
func (e Custom) Validate() error {
	return required(e.Type(), "name", e.Name)
}

func required(t EventType, field, value string) error {
	if value == "" {
		return fmt.Errorf("%s: %s is required: %w", t, field, ErrValidation)
	}
	return nil
}

func validRole(t EventType, r Role) error {
	if r != "" && !r.Valid() {
		return fmt.Errorf("%s: unknown role %q: %w", t, r, ErrValidation)
	}
	return nil
}
