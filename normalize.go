package agui

import "fmt"

type openKind int

const (
	openNone openKind = iota
	openText
	openTool
)

// Normalizer expands TextMessageChunk and ToolCallChunk events into
// canonical start/content/end events. It tracks at most one open construct
// and passes every other event through unchanged.
//
// A Normalizer stops at the first framing error; later calls to Push return
// that error. Use one Normalizer per stream.
type Normalizer struct {
	open openKind
	id   string
	err  error
}

// NewNormalizer returns a Normalizer with nothing open.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Push consumes one event and returns the canonical events derived from it,
// in emission order.
func (n *Normalizer) Push(e Event) ([]Event, error) {
	if n.err != nil {
		return nil, n.err
	}
	if !isVariant(e) {
		n.err = variantError(e)
		return nil, n.err
	}
	var (
		out []Event
		err error
	)
	switch c := e.(type) {
	case TextMessageChunk:
		out, err = n.textChunk(c)
	case ToolCallChunk:
		out, err = n.toolChunk(c)
	default:
		out = append(n.close(Meta{}), e)
	}
	if err != nil {
		n.err = err
		return nil, err
	}
	return out, nil
}

// Open reports the kind and id of the construct currently open, if any.
// kind is EventTextMessageStart, EventToolCallStart or empty.
func (n *Normalizer) Open() (kind EventType, id string) {
	switch n.open {
	case openText:
		return EventTextMessageStart, n.id
	case openTool:
		return EventToolCallStart, n.id
	}
	return "", ""
}

func (n *Normalizer) textChunk(c TextMessageChunk) ([]Event, error) {
	var out []Event
	if n.open == openTool {
		out = append(out, n.close(c.Meta)...)
	}
	continuing := n.open == openText && (c.MessageID == "" || c.MessageID == n.id)
	if !continuing {
		if c.MessageID == "" {
			return nil, chunkError(c.Type(), "First TEXT_MESSAGE_CHUNK must have a messageId")
		}
		out = append(out, n.close(c.Meta)...)
		start := NewTextMessageStart(c.MessageID, TextMessageOptions{Role: c.Role})
		start.Meta = c.Meta
		out = append(out, start)
		n.open, n.id = openText, c.MessageID
	}
	if c.Delta != "" {
		out = append(out, TextMessageContent{Meta: c.Meta, MessageID: n.id, Delta: c.Delta})
	}
	return out, nil
}

func (n *Normalizer) toolChunk(c ToolCallChunk) ([]Event, error) {
	var out []Event
	if n.open == openText {
		out = append(out, n.close(c.Meta)...)
	}
	continuing := n.open == openTool && (c.ToolCallID == "" || c.ToolCallID == n.id)
	if !continuing {
		if c.ToolCallID == "" || c.ToolCallName == "" {
			return nil, chunkError(c.Type(), "First TOOL_CALL_CHUNK must have a toolCallId and toolCallName")
		}
		out = append(out, n.close(c.Meta)...)
		out = append(out, ToolCallStart{
			Meta:            c.Meta,
			ToolCallID:      c.ToolCallID,
			ToolCallName:    c.ToolCallName,
			ParentMessageID: c.ParentMessageID,
		})
		n.open, n.id = openTool, c.ToolCallID
	}
	if c.Delta != "" {
		out = append(out, ToolCallArgs{Meta: c.Meta, ToolCallID: n.id, Delta: c.Delta})
	}
	return out, nil
}

// close emits the End event for the open construct and clears the slot.
func (n *Normalizer) close(m Meta) []Event {
	var out []Event
	switch n.open {
	case openText:
		out = []Event{TextMessageEnd{Meta: m, MessageID: n.id}}
	case openTool:
		out = []Event{ToolCallEnd{Meta: m, ToolCallID: n.id}}
	}
	n.open, n.id = openNone, ""
	return out
}

// NormalizeAll normalizes a materialized event list. A construct still open
// at the end of the list is left open.
func NormalizeAll(events []Event) ([]Event, error) {
	n := NewNormalizer()
	out := make([]Event, 0, len(events))
	for i, e := range events {
		derived, err := n.Push(e)
		if err != nil {
			return out, fmt.Errorf("event %d: %w", i, err)
		}
		out = append(out, derived...)
	}
	return out, nil
}

// Normalize wraps s so that chunk events are replaced by canonical events.
// The returned stream stops at the first framing error.
func Normalize(s Stream) Stream {
	return &normalizeStream{src: s, n: NewNormalizer()}
}

type normalizeStream struct {
	src     Stream
	n       *Normalizer
	pending []Event
	err     error
}

func (s *normalizeStream) Next() (Event, error) {
	for len(s.pending) == 0 {
		if s.err != nil {
			return nil, s.err
		}
		e, err := s.src.Next()
		if err != nil {
			s.err = err
			return nil, err
		}
		s.pending, err = s.n.Push(e)
		if err != nil {
			s.err = err
			return nil, err
		}
	}
	e := s.pending[0]
	s.pending = s.pending[1:]
	return e, nil
}

func (s *normalizeStream) Close() error {
	if s.err == nil {
		s.err = ErrStreamClosed
	}
	s.pending = nil
	return s.src.Close()
}
