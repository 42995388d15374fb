package agui

// Message is one entry of a MessagesSnapshot.
type Message struct {
	ID         string
	Role       Role
	Content    string
	Name       string
	ToolCalls  []ToolCall
	ToolCallID string
}

// ToolCall is a tool invocation recorded on an assistant message.
type ToolCall struct {
	ID       string
	Type     string // Always "function" on the wire today.
	Function FunctionCall
}

// FunctionCall names the function a ToolCall invokes and its JSON arguments.
type FunctionCall struct {
	Name      string
	Arguments string
}
