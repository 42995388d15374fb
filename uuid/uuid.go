// Package uuid implements [agui.IDGenerator] with random UUIDs.
package uuid

import (
	"github.com/fwojciec/agui"
	"github.com/google/uuid"
)

// Interface compliance check.
var _ agui.IDGenerator = (*Generator)(nil)

// Generator mints prefixed version 4 UUIDs such as "msg-<uuid>".
type Generator struct{}

// NewGenerator returns a Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// RunID returns "run-<uuid>".
func (g *Generator) RunID() string { return "run-" + uuid.NewString() }

// ThreadID returns "thread-<uuid>".
func (g *Generator) ThreadID() string { return "thread-" + uuid.NewString() }

// MessageID returns "msg-<uuid>".
func (g *Generator) MessageID() string { return "msg-" + uuid.NewString() }

// ToolCallID returns "tool-<uuid>".
func (g *Generator) ToolCallID() string { return "tool-" + uuid.NewString() }

// StepID returns "step-<uuid>".
func (g *Generator) StepID() string { return "step-" + uuid.NewString() }
