package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"

	"github.com/fwojciec/agui"
	"google.golang.org/genai"
)

// RunInfo identifies the run a stream reports on.
type RunInfo struct {
	ThreadID string
	RunID    string
}

// stream implements [agui.Stream] by wrapping the genai SDK's streaming
// iterator. Each response chunk is translated into zero or more events that
// are queued and handed out one per Next call.
type stream struct {
	ctx      context.Context
	pull     func() (*genai.GenerateContentResponse, error, bool)
	stop     func()
	run      RunInfo
	ids      agui.IDGenerator
	started  bool
	done     bool
	closed   bool
	pending  []agui.Event
	thinking bool
	msgID    string // current assistant message; minted lazily
	finish   genai.FinishReason
	usage    *genai.GenerateContentResponseUsageMetadata
}

// Interface compliance check.
var _ agui.Stream = (*stream)(nil)

// NewStreamFromIter creates an [agui.Stream] from a genai streaming iterator.
// Exported for testing with mock iterators.
func NewStreamFromIter(ctx context.Context, seq iter.Seq2[*genai.GenerateContentResponse, error], run RunInfo, ids agui.IDGenerator) agui.Stream {
	next, stop := iter.Pull2(seq)
	return &stream{
		ctx:  ctx,
		pull: next,
		stop: stop,
		run:  run,
		ids:  ids,
	}
}

func (s *stream) Next() (agui.Event, error) {
	if s.closed {
		return nil, agui.ErrStreamClosed
	}
	if !s.started {
		s.started = true
		return agui.RunStarted{ThreadID: s.run.ThreadID, RunID: s.run.RunID}, nil
	}
	for len(s.pending) == 0 {
		if s.done {
			return nil, io.EOF
		}
		s.advance()
	}
	e := s.pending[0]
	s.pending = s.pending[1:]
	return e, nil
}

func (s *stream) Close() error {
	s.closed = true
	s.stop()
	return nil
}

// advance pulls one response chunk and queues the events derived from it.
func (s *stream) advance() {
	resp, err, ok := s.pull()
	if !ok {
		s.closeThinking()
		s.pending = append(s.pending, agui.RunFinished{
			ThreadID: s.run.ThreadID,
			RunID:    s.run.RunID,
			Result:   s.result(),
		})
		s.done = true
		return
	}
	if err != nil {
		s.closeThinking()
		if ctxErr := s.ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		s.pending = append(s.pending, agui.RunError{
			Message: fmt.Sprintf("gemini: %v", err),
			Code:    ErrorCode,
			RunID:   s.run.RunID,
		})
		s.done = true
		return
	}
	if resp.UsageMetadata != nil {
		s.usage = resp.UsageMetadata
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return
	}
	cand := resp.Candidates[0]
	if cand.FinishReason != "" {
		s.finish = cand.FinishReason
	}
	for _, p := range cand.Content.Parts {
		s.part(p)
	}
}

func (s *stream) part(p *genai.Part) {
	switch {
	case p.FunctionCall != nil:
		s.closeThinking()
		fc := p.FunctionCall
		id := fc.ID
		if id == "" {
			id = s.ids.ToolCallID()
		}
		args, err := json.Marshal(fc.Args)
		if err != nil || fc.Args == nil {
			args = []byte("{}")
		}
		s.pending = append(s.pending, agui.ToolCallChunk{
			ToolCallID:      id,
			ToolCallName:    fc.Name,
			ParentMessageID: s.msgID,
			Delta:           string(args),
		})
		// Text after a tool call belongs to a new message.
		s.msgID = ""
	case p.Thought && p.Text != "":
		if !s.thinking {
			s.thinking = true
			// Thinking closes the open text message; later text starts a new one.
			s.msgID = ""
			s.pending = append(s.pending, agui.ThinkingStart{}, agui.ThinkingTextMessageStart{})
		}
		s.pending = append(s.pending, agui.ThinkingTextMessageContent{Delta: p.Text})
	case p.Text != "":
		s.closeThinking()
		if s.msgID == "" {
			s.msgID = s.ids.MessageID()
		}
		s.pending = append(s.pending, agui.TextMessageChunk{MessageID: s.msgID, Delta: p.Text})
	}
}

func (s *stream) closeThinking() {
	if !s.thinking {
		return
	}
	s.thinking = false
	s.pending = append(s.pending, agui.ThinkingTextMessageEnd{}, agui.ThinkingEnd{})
}

type resultDTO struct {
	FinishReason string `json:"finishReason,omitempty"`
	InputTokens  int32  `json:"inputTokens,omitempty"`
	OutputTokens int32  `json:"outputTokens,omitempty"`
}

func (s *stream) result() json.RawMessage {
	r := resultDTO{FinishReason: string(s.finish)}
	if s.usage != nil {
		r.InputTokens = s.usage.PromptTokenCount
		r.OutputTokens = s.usage.CandidatesTokenCount
	}
	if r == (resultDTO{}) {
		return nil
	}
	data, _ := json.Marshal(r) // Plain struct always marshals.
	return data
}
