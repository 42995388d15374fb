// Package anthropic runs the Anthropic Messages API as an AG-UI agent.
//
// It posts AG-UI run input to the Messages API and translates the SSE
// response into a pull-based [agui.Stream]. Content blocks map one to one
// onto AG-UI start, content and end events, so the output is canonical and
// needs no normalization. The SSE parser drives one frame at a time.
package anthropic

import "encoding/json"

const (
	defaultBaseURL   = "https://api.anthropic.com"
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 8192
	apiVersion       = "2023-06-01"
	messagesPath     = "/v1/messages"

	// ErrorCode is the RunError code used for transport and parse failures.
	// API error events carry their own error type as the code.
	ErrorCode = "ANTHROPIC_ERROR"
)

// cacheMarker is a prompt caching breakpoint.
type cacheMarker struct {
	Type string `json:"type"`
}

var ephemeral = &cacheMarker{Type: "ephemeral"}

// request is the Messages API body built from a RunAgentInput.
type request struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	Stream    bool         `json:"stream"`
	System    []block      `json:"system,omitempty"`
	Messages  []turn       `json:"messages"`
	Tools     []toolSchema `json:"tools,omitempty"`
	Cache     *cacheMarker `json:"cache_control,omitempty"`
}

// turn is one conversation message. AG-UI tool messages become user turns
// holding tool_result blocks.
type turn struct {
	Role    string  `json:"role"`
	Content []block `json:"content"`
}

// block is a request content block: text, tool_use or tool_result.
type block struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   []block         `json:"content,omitempty"`
	Cache     *cacheMarker    `json:"cache_control,omitempty"`
}

func textBlock(s string) block { return block{Type: "text", Text: s} }

// toolSchema is an AG-UI tool as the API declares it.
type toolSchema struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`
	Cache       *cacheMarker    `json:"cache_control,omitempty"`
}

// frame is the data of any SSE event. Each event type fills its own subset:
// message for message_start, index and content_block for block starts,
// delta for block and message deltas, usage for message_delta and error for
// error events. Non-200 responses share the error shape.
type frame struct {
	Type    string `json:"type"`
	Index   int    `json:"index"`
	Message struct {
		Usage usage `json:"usage"`
	} `json:"message"`
	ContentBlock struct {
		Type     string `json:"type"`
		Text     string `json:"text"`
		Thinking string `json:"thinking"`
		ID       string `json:"id"`
		Name     string `json:"name"`
	} `json:"content_block"`
	Delta struct {
		Type        string  `json:"type"`
		Text        string  `json:"text"`
		PartialJSON string  `json:"partial_json"`
		Thinking    string  `json:"thinking"`
		StopReason  *string `json:"stop_reason"`
	} `json:"delta"`
	Usage usage `json:"usage"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// usage counters may be absent or null in a message_delta.
type usage struct {
	InputTokens              *int `json:"input_tokens"`
	OutputTokens             *int `json:"output_tokens"`
	CacheCreationInputTokens *int `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     *int `json:"cache_read_input_tokens"`
}
