// Package mock provides test doubles for agui interfaces using function fields.
package mock

import (
	"strconv"

	"github.com/fwojciec/agui"
)

// Interface compliance checks.
var (
	_ agui.Stream      = (*Stream)(nil)
	_ agui.IDGenerator = (*IDGenerator)(nil)
)

// Stream is a test double for agui.Stream.
// NextFn panics when nil to catch missing setup. CloseFn is nil-safe because
// test code commonly calls defer stream.Close().
type Stream struct {
	NextFn  func() (agui.Event, error)
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (agui.Event, error) {
	return s.NextFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// IDGenerator is a test double for agui.IDGenerator.
// Set the function fields for the IDs the code under test mints.
type IDGenerator struct {
	RunIDFn      func() string
	ThreadIDFn   func() string
	MessageIDFn  func() string
	ToolCallIDFn func() string
	StepIDFn     func() string
}

// RunID delegates to RunIDFn.
func (g *IDGenerator) RunID() string { return g.RunIDFn() }

// ThreadID delegates to ThreadIDFn.
func (g *IDGenerator) ThreadID() string { return g.ThreadIDFn() }

// MessageID delegates to MessageIDFn.
func (g *IDGenerator) MessageID() string { return g.MessageIDFn() }

// ToolCallID delegates to ToolCallIDFn.
func (g *IDGenerator) ToolCallID() string { return g.ToolCallIDFn() }

// StepID delegates to StepIDFn.
func (g *IDGenerator) StepID() string { return g.StepIDFn() }

// Sequence returns a function yielding prefix-1, prefix-2, ... on successive
// calls. It is handy for the IDGenerator fields.
func Sequence(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}
