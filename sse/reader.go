package sse

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/agui"
	aguijson "github.com/fwojciec/agui/json"
)

// maxFrameSize bounds a single SSE line.
const maxFrameSize = 1 << 20

// Interface compliance check.
var _ agui.Stream = (*Reader)(nil)

// Reader implements [agui.Stream] by parsing SSE frames from a body.
// Each frame's data lines are joined with newlines and decoded as one event.
type Reader struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	err     error // terminal error, if any
}

// NewReader returns a Reader over body. Close closes body.
func NewReader(body io.ReadCloser) *Reader {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)
	return &Reader{body: body, scanner: scanner}
}

// Next reads the next event. Returns io.EOF when the body ends.
func (r *Reader) Next() (agui.Event, error) {
	if r.err != nil {
		return nil, r.err
	}
	data, err := r.readFrame()
	if err != nil {
		r.err = err
		return nil, err
	}
	e, err := aguijson.UnmarshalEvent([]byte(data))
	if err != nil {
		r.err = fmt.Errorf("sse: %w", err)
		return nil, r.err
	}
	return e, nil
}

// Close closes the underlying body.
func (r *Reader) Close() error {
	if r.err == nil {
		r.err = agui.ErrStreamClosed
	}
	return r.body.Close()
}

// readFrame reads lines until a frame with data is assembled.
func (r *Reader) readFrame() (string, error) {
	var dataBuf strings.Builder
	hasData := false

	for r.scanner.Scan() {
		line := r.scanner.Text()

		if line == "" {
			// Empty line ends the frame.
			if hasData {
				return dataBuf.String(), nil
			}
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		if field == "data" {
			if hasData {
				dataBuf.WriteByte('\n')
			}
			dataBuf.WriteString(value)
			hasData = true
		}
		// Ignore comments (empty field name), event names, ids and retry hints.
	}

	if err := r.scanner.Err(); err != nil {
		return "", fmt.Errorf("sse: %w", err)
	}
	if hasData {
		return dataBuf.String(), nil
	}
	return "", io.EOF
}
