package agui

import (
	"encoding/json"
	"fmt"
)

// RunAgentInput is the request body that starts a run on a remote agent.
type RunAgentInput struct {
	ThreadID       string
	RunID          string
	State          json.RawMessage
	Messages       []Message
	Tools          []Tool
	Context        []Context
	ForwardedProps json.RawMessage
}

// Tool describes a tool the frontend offers to the agent.
type Tool struct {
	Name        string
	Description string
	Parameters  json.RawMessage // JSON Schema
}

// Context is a piece of application context passed to the agent.
type Context struct {
	Description string
	Value       string
}

// Validate checks the identifiers and every message.
func (in RunAgentInput) Validate() error {
	if err := required("RunAgentInput", "threadId", in.ThreadID); err != nil {
		return err
	}
	if err := required("RunAgentInput", "runId", in.RunID); err != nil {
		return err
	}
	for i, m := range in.Messages {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("RunAgentInput: message %d: %w", i, err)
		}
	}
	for i, t := range in.Tools {
		if t.Name == "" {
			return fmt.Errorf("RunAgentInput: tool %d: name is required: %w", i, ErrValidation)
		}
	}
	return nil
}
