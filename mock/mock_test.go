package mock_test

import (
	"errors"
	"io"
	"testing"

	"github.com/fwojciec/agui"
	"github.com/fwojciec/agui/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_Next(t *testing.T) {
	t.Parallel()
	t.Run("delegates to NextFn", func(t *testing.T) {
		t.Parallel()
		want := agui.TextMessageContent{MessageID: "m1", Delta: "hello"}
		s := mock.Stream{
			NextFn: func() (agui.Event, error) {
				return want, nil
			},
		}
		got, err := s.Next()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("returns EOF", func(t *testing.T) {
		t.Parallel()
		s := mock.Stream{
			NextFn: func() (agui.Event, error) {
				return nil, io.EOF
			},
		}
		_, err := s.Next()
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("panics when NextFn not set", func(t *testing.T) {
		t.Parallel()
		s := mock.Stream{}
		assert.Panics(t, func() {
			_, _ = s.Next()
		})
	})
}

func TestStream_Close(t *testing.T) {
	t.Parallel()
	t.Run("delegates to CloseFn", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("close failed")
		s := mock.Stream{
			CloseFn: func() error {
				return wantErr
			},
		}
		assert.ErrorIs(t, s.Close(), wantErr)
	})

	t.Run("nil CloseFn is a no-op", func(t *testing.T) {
		t.Parallel()
		s := mock.Stream{}
		assert.NoError(t, s.Close())
	})
}

func TestIDGenerator(t *testing.T) {
	t.Parallel()
	g := mock.IDGenerator{
		RunIDFn:      mock.Sequence("run"),
		ThreadIDFn:   mock.Sequence("thread"),
		MessageIDFn:  mock.Sequence("msg"),
		ToolCallIDFn: mock.Sequence("tool"),
		StepIDFn:     mock.Sequence("step"),
	}
	assert.Equal(t, "run-1", g.RunID())
	assert.Equal(t, "thread-1", g.ThreadID())
	assert.Equal(t, "msg-1", g.MessageID())
	assert.Equal(t, "msg-2", g.MessageID())
	assert.Equal(t, "tool-1", g.ToolCallID())
	assert.Equal(t, "step-1", g.StepID())
}
