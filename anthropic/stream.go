package anthropic

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/agui"
)

// maxLineSize bounds a single SSE line.
const maxLineSize = 1 << 20

// stream implements [agui.Stream] by parsing SSE events from an HTTP response
// body. Each SSE event yields zero or more AG-UI events, queued in pending.
type stream struct {
	body     io.ReadCloser
	scanner  *bufio.Scanner
	ctx      context.Context
	threadID string
	runID    string
	ids      agui.IDGenerator
	started  bool
	done     bool
	closed   bool
	pending  []agui.Event
	blocks   map[int]*blockState
	msgID    string // last text message, parent of later tool calls
	result   resultDTO
}

// blockState tracks an open content block.
type blockState struct {
	blockType string
	id        string // message ID for text, tool call ID for tool_use
}

// Interface compliance check.
var _ agui.Stream = (*stream)(nil)

func newStream(ctx context.Context, body io.ReadCloser, threadID, runID string, ids agui.IDGenerator) *stream {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &stream{
		body:     body,
		scanner:  scanner,
		ctx:      ctx,
		threadID: threadID,
		runID:    runID,
		ids:      ids,
		blocks:   make(map[int]*blockState),
	}
}

// Next returns the next AG-UI event. The run always opens with RunStarted
// and ends with RunFinished or RunError, after which Next returns io.EOF.
func (s *stream) Next() (agui.Event, error) {
	if s.closed {
		return nil, agui.ErrStreamClosed
	}
	if !s.started {
		s.started = true
		return agui.RunStarted{ThreadID: s.threadID, RunID: s.runID}, nil
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

// Close closes the underlying HTTP response body.
func (s *stream) Close() error {
	s.closed = true
	s.pending = nil
	return s.body.Close()
}

// advance reads one SSE event and queues what it translates to.
func (s *stream) advance() {
	eventType, data, err := s.readSSEEvent()
	if err != nil {
		if errors.Is(err, io.EOF) {
			// message_stop ends the run before the body does.
			err = errors.New("unexpected end of stream")
		}
		s.fail(ErrorCode, err)
		return
	}
	if err := s.processEvent(eventType, data); err != nil {
		s.fail(ErrorCode, err)
	}
}

// fail ends the run with a RunError. Cancellation wins over the read error
// it causes.
func (s *stream) fail(code string, err error) {
	if ctxErr := s.ctx.Err(); ctxErr != nil {
		err = ctxErr
	}
	s.pending = append(s.pending, agui.RunError{
		Message: fmt.Sprintf("anthropic: %v", err),
		Code:    code,
		RunID:   s.runID,
	})
	s.done = true
}

// readSSEEvent reads lines until a complete SSE event is assembled.
// Returns the event type and the data payload.
func (s *stream) readSSEEvent() (string, string, error) {
	var eventType string
	var dataBuf strings.Builder

	for s.scanner.Scan() {
		line := s.scanner.Text()

		if line == "" {
			if dataBuf.Len() > 0 {
				return eventType, dataBuf.String(), nil
			}
			continue
		}

		if strings.HasPrefix(line, "event: ") {
			eventType = strings.TrimPrefix(line, "event: ")
		} else if strings.HasPrefix(line, "data: ") {
			if dataBuf.Len() > 0 {
				dataBuf.WriteByte('\n')
			}
			dataBuf.WriteString(strings.TrimPrefix(line, "data: "))
		}
		// Ignore comments (lines starting with ':') and unknown fields.
	}

	if err := s.scanner.Err(); err != nil {
		return "", "", err
	}
	if dataBuf.Len() > 0 {
		return eventType, dataBuf.String(), nil
	}
	return "", "", io.EOF
}

// processEvent translates one SSE event into AG-UI events.
func (s *stream) processEvent(eventType, data string) error {
	switch eventType {
	case "message_start", "content_block_start", "content_block_delta",
		"content_block_stop", "message_delta", "error":
	case "message_stop":
		s.pending = append(s.pending, agui.RunFinished{
			ThreadID: s.threadID,
			RunID:    s.runID,
			Result:   s.result.marshal(),
		})
		s.done = true
		return nil
	default:
		// ping and unknown event types carry nothing for the run.
		return nil
	}

	var f frame
	if err := json.Unmarshal([]byte(data), &f); err != nil {
		return fmt.Errorf("failed to parse %s: %w", eventType, err)
	}
	switch eventType {
	case "message_start":
		s.result.addUsage(f.Message.Usage)
	case "content_block_start":
		s.blockStart(f)
	case "content_block_delta":
		return s.blockDelta(f)
	case "content_block_stop":
		return s.blockStop(f.Index)
	case "message_delta":
		s.result.addUsage(f.Usage)
		if f.Delta.StopReason != nil {
			s.result.StopReason = *f.Delta.StopReason
		}
	case "error":
		s.fail(f.Error.Type, errors.New(f.Error.Message))
	}
	return nil
}

func (s *stream) blockStart(f frame) {
	cb := f.ContentBlock
	bs := &blockState{blockType: cb.Type}
	s.blocks[f.Index] = bs

	switch cb.Type {
	case "text":
		bs.id = s.ids.MessageID()
		s.msgID = bs.id
		s.pending = append(s.pending, agui.TextMessageStart{MessageID: bs.id, Role: agui.RoleAssistant})
		s.text(bs, cb.Text)
	case "thinking":
		s.pending = append(s.pending, agui.ThinkingStart{}, agui.ThinkingTextMessageStart{})
		s.thinking(cb.Thinking)
	case "tool_use":
		bs.id = cb.ID
		if bs.id == "" {
			bs.id = s.ids.ToolCallID()
		}
		s.pending = append(s.pending, agui.ToolCallStart{
			ToolCallID:      bs.id,
			ToolCallName:    cb.Name,
			ParentMessageID: s.msgID,
		})
	}
}

func (s *stream) blockDelta(f frame) error {
	bs := s.blocks[f.Index]
	if bs == nil {
		return fmt.Errorf("delta for unknown block index %d", f.Index)
	}
	switch f.Delta.Type {
	case "text_delta":
		s.text(bs, f.Delta.Text)
	case "input_json_delta":
		if bs.blockType == "tool_use" && f.Delta.PartialJSON != "" {
			s.pending = append(s.pending, agui.ToolCallArgs{ToolCallID: bs.id, Delta: f.Delta.PartialJSON})
		}
	case "thinking_delta":
		if bs.blockType == "thinking" {
			s.thinking(f.Delta.Thinking)
		}
	}
	// signature_delta is for replaying thinking to the API; AG-UI has no slot for it.
	return nil
}

func (s *stream) blockStop(index int) error {
	bs := s.blocks[index]
	if bs == nil {
		return fmt.Errorf("stop for unknown block index %d", index)
	}
	delete(s.blocks, index)

	switch bs.blockType {
	case "text":
		s.pending = append(s.pending, agui.TextMessageEnd{MessageID: bs.id})
	case "thinking":
		s.pending = append(s.pending, agui.ThinkingTextMessageEnd{}, agui.ThinkingEnd{})
	case "tool_use":
		s.pending = append(s.pending, agui.ToolCallEnd{ToolCallID: bs.id})
	}
	return nil
}

// text queues a content event for a text block. Empty deltas are dropped.
func (s *stream) text(bs *blockState, delta string) {
	if bs.blockType == "text" && delta != "" {
		s.pending = append(s.pending, agui.TextMessageContent{MessageID: bs.id, Delta: delta})
	}
}

func (s *stream) thinking(delta string) {
	if delta != "" {
		s.pending = append(s.pending, agui.ThinkingTextMessageContent{Delta: delta})
	}
}

// resultDTO is the RunFinished result: stop reason and cumulative usage.
type resultDTO struct {
	StopReason               string `json:"stopReason,omitempty"`
	InputTokens              int    `json:"inputTokens,omitempty"`
	OutputTokens             int    `json:"outputTokens,omitempty"`
	CacheCreationInputTokens int    `json:"cacheCreationInputTokens,omitempty"`
	CacheReadInputTokens     int    `json:"cacheReadInputTokens,omitempty"`
}

// addUsage overwrites the counters u reports. The API sends cumulative
// values, so later events win.
func (r *resultDTO) addUsage(u usage) {
	set := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	set(&r.InputTokens, u.InputTokens)
	set(&r.OutputTokens, u.OutputTokens)
	set(&r.CacheCreationInputTokens, u.CacheCreationInputTokens)
	set(&r.CacheReadInputTokens, u.CacheReadInputTokens)
}

func (r resultDTO) marshal() json.RawMessage {
	if r == (resultDTO{}) {
		return nil
	}
	data, _ := json.Marshal(r) // Plain struct always marshals.
	return data
}
