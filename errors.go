package agui

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates an event failed its own field validation.
	ErrValidation = errors.New("validation error")

	// ErrSequence indicates an event violated ordering or nesting rules.
	ErrSequence = errors.New("sequence error")

	// ErrInvalidChunk indicates a chunk event could not be framed.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrUnknownEventType indicates a decoded event carried an unknown type.
	ErrUnknownEventType = errors.New("unknown event type")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")
)

// ProtocolError reports a sequence or framing violation caused by a single
// event. Kind is ErrSequence, ErrInvalidChunk or, for an event that is not
// one of the package's value variants, ErrUnknownEventType.
type ProtocolError struct {
	Type    EventType
	Message string
	Kind    error
}

func (e *ProtocolError) Error() string { return e.Message }

// Unwrap returns the error kind so errors.Is matches the sentinel.
func (e *ProtocolError) Unwrap() error { return e.Kind }

func sequenceError(t EventType, msg string) *ProtocolError {
	return &ProtocolError{Type: t, Message: msg, Kind: ErrSequence}
}

func chunkError(t EventType, msg string) *ProtocolError {
	return &ProtocolError{Type: t, Message: msg, Kind: ErrInvalidChunk}
}

func variantError(e Event) *ProtocolError {
	return &ProtocolError{
		Type:    e.Type(),
		Message: fmt.Sprintf("Unsupported event value %T: events must be passed by value", e),
		Kind:    ErrUnknownEventType,
	}
}
