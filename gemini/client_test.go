package gemini_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/agui"
	"github.com/fwojciec/agui/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMessages_UserMessage(t *testing.T) {
	t.Parallel()
	system, got := gemini.ConvertMessages([]agui.Message{
		{ID: "m1", Role: agui.RoleUser, Content: "Hello"},
	})
	assert.Nil(t, system)
	require.Len(t, got, 1)
	assert.Equal(t, "user", got[0].Role)
	require.Len(t, got[0].Parts, 1)
	assert.Equal(t, "Hello", got[0].Parts[0].Text)
}

func TestConvertMessages_SystemAndDeveloper(t *testing.T) {
	t.Parallel()
	system, got := gemini.ConvertMessages([]agui.Message{
		{ID: "s1", Role: agui.RoleSystem, Content: "Be brief."},
		{ID: "d1", Role: agui.RoleDeveloper, Content: "Use Go."},
		{ID: "m1", Role: agui.RoleUser, Content: "hi"},
	})
	require.NotNil(t, system)
	require.Len(t, system.Parts, 2)
	assert.Equal(t, "Be brief.", system.Parts[0].Text)
	assert.Equal(t, "Use Go.", system.Parts[1].Text)
	assert.Len(t, got, 1)
}

func TestConvertMessages_ToolCallAndResult(t *testing.T) {
	t.Parallel()
	_, got := gemini.ConvertMessages([]agui.Message{
		{ID: "m1", Role: agui.RoleAssistant, Content: "Reading.", ToolCalls: []agui.ToolCall{
			{ID: "call_123", Type: "function", Function: agui.FunctionCall{Name: "read", Arguments: `{"path":"foo.go"}`}},
		}},
		{ID: "m2", Role: agui.RoleTool, Content: "file contents", ToolCallID: "call_123"},
	})
	require.Len(t, got, 2)

	assert.Equal(t, "model", got[0].Role)
	require.Len(t, got[0].Parts, 2)
	assert.Equal(t, "Reading.", got[0].Parts[0].Text)
	fc := got[0].Parts[1].FunctionCall
	require.NotNil(t, fc)
	assert.Equal(t, "call_123", fc.ID)
	assert.Equal(t, "read", fc.Name)
	assert.Equal(t, "foo.go", fc.Args["path"])

	assert.Equal(t, "user", got[1].Role)
	require.Len(t, got[1].Parts, 1)
	fr := got[1].Parts[0].FunctionResponse
	require.NotNil(t, fr)
	assert.Equal(t, "call_123", fr.ID)
	assert.Equal(t, "read", fr.Name)
	assert.Equal(t, map[string]any{"output": "file contents"}, fr.Response)
}

func TestConvertMessages_MalformedArguments(t *testing.T) {
	t.Parallel()
	_, got := gemini.ConvertMessages([]agui.Message{
		{ID: "m1", Role: agui.RoleAssistant, ToolCalls: []agui.ToolCall{
			{ID: "c1", Type: "function", Function: agui.FunctionCall{Name: "ls", Arguments: `{not json`}},
		}},
	})
	require.Len(t, got, 1)
	require.Len(t, got[0].Parts, 1)
	assert.Empty(t, got[0].Parts[0].FunctionCall.Args)
}

func TestConvertTools(t *testing.T) {
	t.Parallel()
	got := gemini.ConvertTools([]agui.Tool{{
		Name:        "read",
		Description: "Read a file",
		Parameters:  json.RawMessage(`{"type":"object","properties":{"path":{"type":"string"}}}`),
	}})
	require.Len(t, got, 1)
	require.Len(t, got[0].FunctionDeclarations, 1)
	decl := got[0].FunctionDeclarations[0]
	assert.Equal(t, "read", decl.Name)
	assert.Equal(t, "Read a file", decl.Description)
	schema, ok := decl.ParametersJsonSchema.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", schema["type"])
}

func TestConvertTools_Empty(t *testing.T) {
	t.Parallel()
	assert.Nil(t, gemini.ConvertTools(nil))
}
