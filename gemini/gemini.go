// Package gemini runs the Google Gemini API as an AG-UI agent.
//
// It wraps the google.golang.org/genai SDK, translating AG-UI run input into
// Gemini requests and the SDK's streaming iterator into a pull-based
// [agui.Stream]. Text and tool calls are emitted as chunk events, so the
// stream is meant to be consumed through [agui.Check].
package gemini

const (
	defaultModel     = "gemini-3.1-pro-preview"
	defaultMaxTokens = 65536

	// ErrorCode is the RunError code used for SDK and API failures.
	ErrorCode = "GEMINI_ERROR"
)
