package agui

import "encoding/json"

// PatchOp is a JSON Patch (RFC 6902) operation name.
type PatchOp string

const (
	PatchAdd     PatchOp = "add"
	PatchRemove  PatchOp = "remove"
	PatchReplace PatchOp = "replace"
	PatchMove    PatchOp = "move"
	PatchCopy    PatchOp = "copy"
	PatchTest    PatchOp = "test"
)

// PatchOperation is a single JSON Patch operation carried by StateDelta.
// Value is nil when absent; a JSON null value is the literal "null".
type PatchOperation struct {
	Op    PatchOp
	Path  string
	Value json.RawMessage
	From  string
}

// needsValue reports whether op requires a value.
func (op PatchOp) needsValue() bool {
	return op == PatchAdd || op == PatchReplace || op == PatchTest
}

// needsFrom reports whether op requires a source path.
func (op PatchOp) needsFrom() bool {
	return op == PatchMove || op == PatchCopy
}

// Valid reports whether op is a known operation.
func (op PatchOp) Valid() bool {
	switch op {
	case PatchAdd, PatchRemove, PatchReplace, PatchMove, PatchCopy, PatchTest:
		return true
	}
	return false
}
