package sse_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/agui"
	"github.com/fwojciec/agui/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type flushBuffer struct {
	bytes.Buffer
	flushes int
}

func (b *flushBuffer) Flush() error {
	b.flushes++
	return nil
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriter_WriteEvent(t *testing.T) {
	t.Parallel()

	t.Run("frames and flushes", func(t *testing.T) {
		t.Parallel()
		var buf flushBuffer
		w := sse.NewWriter(discardLogger())
		require.NoError(t, w.WriteEvent(context.Background(), &buf, agui.StepStarted{StepName: "plan"}))
		assert.Equal(t, "data: {\"type\":\"STEP_STARTED\",\"stepName\":\"plan\"}\n\n", buf.String())
		assert.Equal(t, 1, buf.flushes)
	})

	t.Run("honours cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var buf bytes.Buffer
		err := sse.NewWriter(discardLogger()).WriteEvent(ctx, &buf, agui.ThinkingEnd{})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, buf.Len())
	})

	t.Run("logs and wraps write failures", func(t *testing.T) {
		t.Parallel()
		var logs bytes.Buffer
		w := sse.NewWriter(slog.New(slog.NewTextHandler(&logs, nil)))
		err := w.WriteEvent(context.Background(), failingWriter{}, agui.ThinkingEnd{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sse: write: disk full")
		assert.Contains(t, logs.String(), "write frame")
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		assert.NoError(t, sse.NewWriter(nil).WriteEvent(context.Background(), &buf, agui.ThinkingEnd{}))
	})
}

func TestWriter_ReaderRoundTrip(t *testing.T) {
	t.Parallel()
	events := []agui.Event{
		agui.RunStarted{ThreadID: "t", RunID: "r"},
		agui.TextMessageChunk{MessageID: "m", Delta: "two\nlines"},
		agui.RunFinished{ThreadID: "t", RunID: "r"},
	}
	var buf bytes.Buffer
	w := sse.NewWriter(discardLogger())
	require.NoError(t, w.WriteStream(context.Background(), &buf, agui.NewSliceStream(events)))

	got, err := agui.Collect(sse.NewReader(io.NopCloser(&buf)))
	require.NoError(t, err)
	assert.Equal(t, events, got)
}

func TestWriter_Handler(t *testing.T) {
	t.Parallel()
	w := sse.NewWriter(discardLogger())
	h := w.Handler(func(r *http.Request) agui.Stream {
		return agui.NewSliceStream([]agui.Event{agui.RunStarted{ThreadID: "t", RunID: "r"}})
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/agent", strings.NewReader("{}")))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sse.ContentType, rec.Header().Get("Content-Type"))
	assert.True(t, rec.Flushed)
	assert.Equal(t, "data: {\"type\":\"RUN_STARTED\",\"threadId\":\"t\",\"runId\":\"r\"}\n\n", rec.Body.String())
}
