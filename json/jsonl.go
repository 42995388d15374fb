package json

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/fwojciec/agui"
)

// MaxLineSize is the longest JSON Lines record a Decoder accepts.
const MaxLineSize = 1 << 20

// Encoder writes events as JSON Lines.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes one event followed by a newline.
func (e *Encoder) Encode(ev agui.Event) error {
	data, err := MarshalEvent(ev)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := e.w.Write(data); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

// Interface compliance check.
var _ agui.Stream = (*Decoder)(nil)

// Decoder reads JSON Lines events and implements agui.Stream. Blank lines
// are skipped.
type Decoder struct {
	r       io.Reader
	scanner *bufio.Scanner
	line    int
	err     error
}

// NewDecoder returns a Decoder reading from r. Close closes r when it
// implements io.Closer.
func NewDecoder(r io.Reader) *Decoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &Decoder{r: r, scanner: scanner}
}

// Next returns the next decoded event or io.EOF.
func (d *Decoder) Next() (agui.Event, error) {
	if d.err != nil {
		return nil, d.err
	}
	for d.scanner.Scan() {
		d.line++
		line := bytes.TrimSpace(d.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		e, err := UnmarshalEvent(line)
		if err != nil {
			d.err = fmt.Errorf("line %d: %w", d.line, err)
			return nil, d.err
		}
		return e, nil
	}
	if err := d.scanner.Err(); err != nil {
		d.err = fmt.Errorf("line %d: %w", d.line+1, err)
		return nil, d.err
	}
	d.err = io.EOF
	return nil, io.EOF
}

// Close stops decoding and closes the underlying reader if possible.
func (d *Decoder) Close() error {
	if d.err == nil {
		d.err = agui.ErrStreamClosed
	}
	if c, ok := d.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
