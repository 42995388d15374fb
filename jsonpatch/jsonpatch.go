// Package jsonpatch applies AG-UI state events to a JSON document using the
// RFC 6902 implementation from gopkg.in/evanphx/json-patch.v4.
package jsonpatch

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/agui"
	aguijson "github.com/fwojciec/agui/json"
	jsonpatch "gopkg.in/evanphx/json-patch.v4"
)

// ErrTestFailed indicates a "test" operation did not match the document.
var ErrTestFailed = jsonpatch.ErrTestFailed

// ApplyPatch applies ops to doc and returns the patched document. doc is not
// modified.
func ApplyPatch(doc json.RawMessage, ops []agui.PatchOperation) (json.RawMessage, error) {
	data, err := aguijson.MarshalPatch(ops)
	if err != nil {
		return nil, err
	}
	patch, err := jsonpatch.DecodePatch(data)
	if err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	out, err := patch.Apply(doc)
	if err != nil {
		return nil, fmt.Errorf("apply patch: %w", err)
	}
	return out, nil
}

// State holds the agent state document a frontend reconstructs from
// STATE_SNAPSHOT and STATE_DELTA events.
type State struct {
	doc json.RawMessage
}

// NewState returns a State holding initial, or an empty object when initial
// is empty.
func NewState(initial json.RawMessage) *State {
	if len(initial) == 0 {
		initial = json.RawMessage(`{}`)
	}
	return &State{doc: bytes.Clone(initial)}
}

// Apply updates the document from a state event and reports whether e was a
// state event. A failed delta leaves the document unchanged.
func (s *State) Apply(e agui.Event) (bool, error) {
	switch ev := e.(type) {
	case agui.StateSnapshot:
		if !json.Valid(ev.Snapshot) {
			return true, fmt.Errorf("apply snapshot: invalid JSON document")
		}
		s.doc = bytes.Clone(ev.Snapshot)
		return true, nil
	case agui.StateDelta:
		doc, err := ApplyPatch(s.doc, ev.Delta)
		if err != nil {
			return true, err
		}
		s.doc = doc
		return true, nil
	}
	return false, nil
}

// Document returns a copy of the current document.
func (s *State) Document() json.RawMessage {
	return bytes.Clone(s.doc)
}

// Equal reports whether the current document is semantically equal to doc.
func (s *State) Equal(doc json.RawMessage) bool {
	return jsonpatch.Equal(s.doc, doc)
}
