package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/agui"
	aguijson "github.com/fwojciec/agui/json"
	"github.com/fwojciec/agui/sse"
)

// openEvents opens an event file as a stream. ".json" files hold a JSON
// array; anything else is read as JSON Lines, or as Server-Sent Events when
// asSSE is set.
func openEvents(path string, asSSE bool) (agui.Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch {
	case asSSE:
		return sse.NewReader(f), nil
	case strings.EqualFold(filepath.Ext(path), ".json"):
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		events, err := aguijson.UnmarshalEvents(data)
		if err != nil {
			return nil, err
		}
		return agui.NewSliceStream(events), nil
	default:
		return aguijson.NewDecoder(f), nil
	}
}
