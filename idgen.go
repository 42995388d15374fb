package agui

// IDGenerator mints identifiers for producer-side events. Implementations
// are passed explicitly to the code that needs them.
type IDGenerator interface {
	RunID() string
	ThreadID() string
	MessageID() string
	ToolCallID() string
	StepID() string
}
