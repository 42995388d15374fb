package json

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/agui"
)

type runAgentInputDTO struct {
	ThreadID       string          `json:"threadId"`
	RunID          string          `json:"runId"`
	State          json.RawMessage `json:"state,omitempty"`
	Messages       []messageDTO    `json:"messages"`
	Tools          []toolDTO       `json:"tools"`
	Context        []contextDTO    `json:"context"`
	ForwardedProps json.RawMessage `json:"forwardedProps,omitempty"`
}

type toolDTO struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

type contextDTO struct {
	Description string `json:"description"`
	Value       string `json:"value"`
}

// MarshalRunAgentInput serializes a run request. Empty lists are written as
// [] rather than omitted.
func MarshalRunAgentInput(in agui.RunAgentInput) ([]byte, error) {
	dto := runAgentInputDTO{
		ThreadID:       in.ThreadID,
		RunID:          in.RunID,
		State:          in.State,
		Messages:       marshalMessages(in.Messages),
		Tools:          make([]toolDTO, len(in.Tools)),
		Context:        make([]contextDTO, len(in.Context)),
		ForwardedProps: in.ForwardedProps,
	}
	if dto.Messages == nil {
		dto.Messages = []messageDTO{}
	}
	for i, t := range in.Tools {
		dto.Tools[i] = toolDTO{Name: t.Name, Description: t.Description, Parameters: t.Parameters}
	}
	for i, c := range in.Context {
		dto.Context[i] = contextDTO{Description: c.Description, Value: c.Value}
	}
	return json.Marshal(dto)
}

// UnmarshalRunAgentInput deserializes a run request.
func UnmarshalRunAgentInput(data []byte) (agui.RunAgentInput, error) {
	var dto runAgentInputDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return agui.RunAgentInput{}, fmt.Errorf("unmarshal run input: %w", err)
	}
	in := agui.RunAgentInput{
		ThreadID:       dto.ThreadID,
		RunID:          dto.RunID,
		State:          dto.State,
		Messages:       unmarshalMessages(dto.Messages),
		ForwardedProps: dto.ForwardedProps,
	}
	for _, t := range dto.Tools {
		in.Tools = append(in.Tools, agui.Tool{Name: t.Name, Description: t.Description, Parameters: t.Parameters})
	}
	for _, c := range dto.Context {
		in.Context = append(in.Context, agui.Context{Description: c.Description, Value: c.Value})
	}
	return in, nil
}
