package agui

import (
	"errors"
	"io"
)

// Stream uses a pull-based iterator pattern. Next returns io.EOF once the
// producer has no more events; any other error ends the stream and is
// returned again by later calls. Close releases the underlying producer.
type Stream interface {
	Next() (Event, error)
	Close() error
}

// SliceStream is a Stream over a materialized event list.
type SliceStream struct {
	events []Event
	closed bool
}

// NewSliceStream returns a Stream that yields events in order.
func NewSliceStream(events []Event) *SliceStream {
	return &SliceStream{events: events}
}

// Next returns the next event or io.EOF.
func (s *SliceStream) Next() (Event, error) {
	if s.closed {
		return nil, ErrStreamClosed
	}
	if len(s.events) == 0 {
		return nil, io.EOF
	}
	e := s.events[0]
	s.events = s.events[1:]
	return e, nil
}

// Close marks the stream closed.
func (s *SliceStream) Close() error {
	s.closed = true
	return nil
}

// Collect drains s and closes it. It returns the events read before the
// first non-EOF error together with that error.
func Collect(s Stream) ([]Event, error) {
	defer s.Close()
	var events []Event
	for {
		e, err := s.Next()
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, e)
	}
}

var _ Stream = (*SliceStream)(nil)
