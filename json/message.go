package json

import "github.com/fwojciec/agui"

type messageDTO struct {
	ID         string        `json:"id"`
	Role       string        `json:"role"`
	Content    string        `json:"content,omitempty"`
	Name       string        `json:"name,omitempty"`
	ToolCalls  []toolCallDTO `json:"toolCalls,omitempty"`
	ToolCallID string        `json:"toolCallId,omitempty"`
}

type toolCallDTO struct {
	ID       string      `json:"id"`
	Type     string      `json:"type"`
	Function functionDTO `json:"function"`
}

type functionDTO struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

func marshalMessages(msgs []agui.Message) []messageDTO {
	if msgs == nil {
		return nil
	}
	dtos := make([]messageDTO, len(msgs))
	for i, m := range msgs {
		dto := messageDTO{
			ID:         m.ID,
			Role:       string(m.Role),
			Content:    m.Content,
			Name:       m.Name,
			ToolCallID: m.ToolCallID,
		}
		for _, tc := range m.ToolCalls {
			dto.ToolCalls = append(dto.ToolCalls, toolCallDTO{
				ID:       tc.ID,
				Type:     tc.Type,
				Function: functionDTO{Name: tc.Function.Name, Arguments: tc.Function.Arguments},
			})
		}
		dtos[i] = dto
	}
	return dtos
}

func unmarshalMessages(dtos []messageDTO) []agui.Message {
	if dtos == nil {
		return nil
	}
	msgs := make([]agui.Message, len(dtos))
	for i, d := range dtos {
		m := agui.Message{
			ID:         d.ID,
			Role:       agui.Role(d.Role),
			Content:    d.Content,
			Name:       d.Name,
			ToolCallID: d.ToolCallID,
		}
		for _, tc := range d.ToolCalls {
			m.ToolCalls = append(m.ToolCalls, agui.ToolCall{
				ID:       tc.ID,
				Type:     tc.Type,
				Function: agui.FunctionCall{Name: tc.Function.Name, Arguments: tc.Function.Arguments},
			})
		}
		msgs[i] = m
	}
	return msgs
}
