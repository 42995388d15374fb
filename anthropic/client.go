package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fwojciec/agui"
)

// Client runs Anthropic models as AG-UI agents.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	model      string
	maxTokens  int
	ids        agui.IDGenerator
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithModel sets the model ID.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithMaxTokens sets the output token limit.
func WithMaxTokens(n int) Option {
	return func(c *Client) { c.maxTokens = n }
}

// New creates a new Anthropic [Client]. ids mints AG-UI message IDs for text
// blocks.
func New(apiKey string, ids agui.IDGenerator, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		model:      defaultModel,
		maxTokens:  defaultMaxTokens,
		ids:        ids,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Run sends a streaming request for in and returns its events. HTTP failures
// are returned directly; failures after the response starts arrive as a
// RunError event.
func (c *Client) Run(ctx context.Context, in agui.RunAgentInput) (agui.Stream, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}
	body, err := c.buildRequestBody(in)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", apiVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, parseHTTPError(resp)
	}

	return newStream(ctx, resp.Body, in.ThreadID, in.RunID, c.ids), nil
}

func (c *Client) buildRequestBody(in agui.RunAgentInput) ([]byte, error) {
	req := request{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Stream:    true,
		System:    convertSystem(in.Messages),
		Messages:  convertMessages(in.Messages),
		Tools:     convertTools(in.Tools),
	}
	injectCacheMarkers(&req)
	return json.Marshal(req)
}

// convertSystem joins system and developer messages into one system block.
// Returns nil when there are none.
func convertSystem(msgs []agui.Message) []block {
	var parts []string
	for _, m := range msgs {
		if (m.Role == agui.RoleSystem || m.Role == agui.RoleDeveloper) && m.Content != "" {
			parts = append(parts, m.Content)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return []block{textBlock(strings.Join(parts, "\n\n"))}
}

// injectCacheMarkers places cache breakpoints on the conversation window, the
// last system block and the last tool.
func injectCacheMarkers(req *request) {
	req.Cache = ephemeral
	if len(req.System) > 0 {
		req.System[len(req.System)-1].Cache = ephemeral
	}
	if len(req.Tools) > 0 {
		req.Tools[len(req.Tools)-1].Cache = ephemeral
	}
}

func convertMessages(msgs []agui.Message) []turn {
	var result []turn
	for _, m := range msgs {
		switch m.Role {
		case agui.RoleUser:
			if m.Content == "" {
				continue
			}
			result = append(result, turn{Role: "user", Content: []block{textBlock(m.Content)}})
		case agui.RoleAssistant:
			var blocks []block
			if m.Content != "" {
				blocks = append(blocks, textBlock(m.Content))
			}
			for _, tc := range m.ToolCalls {
				blocks = append(blocks, block{
					Type:  "tool_use",
					ID:    tc.ID,
					Name:  tc.Function.Name,
					Input: toolInput(tc.Function.Arguments),
				})
			}
			if len(blocks) == 0 {
				continue
			}
			result = append(result, turn{Role: "assistant", Content: blocks})
		case agui.RoleTool:
			res := block{Type: "tool_result", ToolUseID: m.ToolCallID}
			if m.Content != "" {
				res.Content = []block{textBlock(m.Content)}
			}
			// Merge consecutive tool results into the same user message.
			if n := len(result); n > 0 && result[n-1].Role == "user" && isToolResultMessage(result[n-1]) {
				result[n-1].Content = append(result[n-1].Content, res)
			} else {
				result = append(result, turn{Role: "user", Content: []block{res}})
			}
		}
	}
	return result
}

func isToolResultMessage(msg turn) bool {
	return len(msg.Content) > 0 && msg.Content[0].Type == "tool_result"
}

// toolInput returns args when it is a JSON object and "{}" otherwise.
func toolInput(args string) json.RawMessage {
	trimmed := strings.TrimSpace(args)
	if strings.HasPrefix(trimmed, "{") && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}
	return json.RawMessage("{}")
}

func convertTools(tools []agui.Tool) []toolSchema {
	if len(tools) == 0 {
		return nil
	}
	result := make([]toolSchema, len(tools))
	for i, t := range tools {
		schema := t.Parameters
		if len(bytes.TrimSpace(schema)) == 0 {
			schema = json.RawMessage(`{"type":"object"}`)
		}
		result[i] = toolSchema{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: schema,
		}
	}
	return result
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("anthropic: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	var f frame
	if err := json.Unmarshal(body, &f); err != nil {
		return fmt.Errorf("anthropic: HTTP %d: %s", resp.StatusCode, string(body))
	}
	return fmt.Errorf("anthropic: %s: %s", f.Error.Type, f.Error.Message)
}
