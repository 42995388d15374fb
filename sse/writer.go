package sse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/fwojciec/agui"
	aguijson "github.com/fwojciec/agui/json"
)

// Writer frames events as Server-Sent Events.
type Writer struct {
	logger *slog.Logger
}

// NewWriter returns a Writer that reports failures to logger.
// A nil logger uses slog.Default().
func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

type flusher interface {
	Flush() error
}

// WriteEvent writes e as "data: <json>\n\n" and flushes w when it supports
// flushing.
func (sw *Writer) WriteEvent(ctx context.Context, w io.Writer, e agui.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := aguijson.MarshalEvent(e)
	if err != nil {
		sw.logger.ErrorContext(ctx, "marshal event", "type", e.Type(), "error", err)
		return fmt.Errorf("sse: %w", err)
	}
	frame := make([]byte, 0, len(data)+8)
	frame = append(frame, "data: "...)
	frame = append(frame, data...)
	frame = append(frame, '\n', '\n')
	if _, err := w.Write(frame); err != nil {
		sw.logger.ErrorContext(ctx, "write frame", "type", e.Type(), "error", err)
		return fmt.Errorf("sse: write: %w", err)
	}
	switch f := w.(type) {
	case flusher:
		if err := f.Flush(); err != nil {
			sw.logger.ErrorContext(ctx, "flush frame", "type", e.Type(), "error", err)
			return fmt.Errorf("sse: flush: %w", err)
		}
	case http.Flusher:
		f.Flush()
	}
	sw.logger.DebugContext(ctx, "wrote event", "type", e.Type(), "bytes", len(frame))
	return nil
}

// WriteStream drains s into w, one frame per event, and closes s. It stops
// at the first stream or write error.
func (sw *Writer) WriteStream(ctx context.Context, w io.Writer, s agui.Stream) error {
	defer s.Close()
	for {
		e, err := s.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := sw.WriteEvent(ctx, w, e); err != nil {
			return err
		}
	}
}

// Handler returns an http.Handler that serves the stream produced by run for
// each request.
func (sw *Writer) Handler(run func(r *http.Request) agui.Stream) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", ContentType)
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		if err := sw.WriteStream(r.Context(), w, run(r)); err != nil {
			sw.logger.ErrorContext(r.Context(), "serve stream", "error", err)
		}
	})
}
