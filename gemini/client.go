package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/agui"
	"google.golang.org/genai"
)

// Client runs Gemini models as AG-UI agents.
type Client struct {
	client    *genai.Client
	model     string
	maxTokens int
	ids       agui.IDGenerator
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the model ID. Default is gemini-3.1-pro-preview.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithMaxTokens sets the output token limit.
func WithMaxTokens(n int) Option {
	return func(c *Client) { c.maxTokens = n }
}

// New creates a new Gemini [Client]. ids mints message and tool call IDs the
// API does not provide.
func New(ctx context.Context, apiKey string, ids agui.IDGenerator, opts ...Option) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	c := &Client{
		client:    gc,
		model:     defaultModel,
		maxTokens: defaultMaxTokens,
		ids:       ids,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Run starts a streaming generation for in and returns its events.
func (c *Client) Run(ctx context.Context, in agui.RunAgentInput) (agui.Stream, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	system, contents := ConvertMessages(in.Messages)
	config := &genai.GenerateContentConfig{
		MaxOutputTokens:   int32(c.maxTokens),
		SystemInstruction: system,
		Tools:             ConvertTools(in.Tools),
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: true,
		},
	}
	seq := c.client.Models.GenerateContentStream(ctx, c.model, contents, config)
	return NewStreamFromIter(ctx, seq, RunInfo{ThreadID: in.ThreadID, RunID: in.RunID}, c.ids), nil
}

// ConvertMessages converts AG-UI messages to a genai system instruction and
// conversation contents. System and developer messages become the system
// instruction. Exported for testing.
func ConvertMessages(msgs []agui.Message) (*genai.Content, []*genai.Content) {
	var system *genai.Content
	var result []*genai.Content
	toolNames := make(map[string]string)
	for _, m := range msgs {
		switch m.Role {
		case agui.RoleSystem, agui.RoleDeveloper:
			if system == nil {
				system = &genai.Content{}
			}
			system.Parts = append(system.Parts, &genai.Part{Text: m.Content})
		case agui.RoleUser:
			result = append(result, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{{Text: m.Content}},
			})
		case agui.RoleAssistant:
			var parts []*genai.Part
			if m.Content != "" {
				parts = append(parts, &genai.Part{Text: m.Content})
			}
			for _, tc := range m.ToolCalls {
				toolNames[tc.ID] = tc.Function.Name
				// Malformed arguments are sent as an empty object.
				var args map[string]any
				_ = json.Unmarshal([]byte(tc.Function.Arguments), &args)
				parts = append(parts, &genai.Part{
					FunctionCall: &genai.FunctionCall{
						ID:   tc.ID,
						Name: tc.Function.Name,
						Args: args,
					},
				})
			}
			result = append(result, &genai.Content{Role: "model", Parts: parts})
		case agui.RoleTool:
			result = append(result, &genai.Content{
				Role: "user",
				Parts: []*genai.Part{{
					FunctionResponse: &genai.FunctionResponse{
						ID:       m.ToolCallID,
						Name:     toolNames[m.ToolCallID],
						Response: map[string]any{"output": m.Content},
					},
				}},
			})
		}
	}
	return system, result
}

// ConvertTools converts AG-UI tools to genai tools.
// Exported for testing.
func ConvertTools(tools []agui.Tool) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}
	decls := make([]*genai.FunctionDeclaration, len(tools))
	for i, t := range tools {
		decl := &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
		}
		var schema map[string]any
		if err := json.Unmarshal(t.Parameters, &schema); err == nil && schema != nil {
			decl.ParametersJsonSchema = schema
		}
		decls[i] = decl
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}
