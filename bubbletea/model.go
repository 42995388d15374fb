package bubbletea

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/agui"
	aguijson "github.com/fwojciec/agui/json"
	"github.com/fwojciec/agui/jsonpatch"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the event stream inspector.
type Model struct {
	// Viewport is the scrollable event log. Exported for test access.
	Viewport viewport.Model

	source SourceFunc
	theme  agui.Theme
	styles Styles

	blocks      []MessageBlock
	blockFocus  int // index of focused collapsible block (-1 = none)
	allExpanded bool

	// Open constructs keyed by their protocol IDs. Maps are shared between
	// model copies, like the blocks they point to.
	messages  map[string]*TextMessageBlock
	toolCalls map[string]*ToolCallBlock
	thinking  *ThinkingBlock

	validator *agui.SequenceValidator
	state     *jsonpatch.State
	events    int
	violation error

	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	eventCh chan agui.Event
	doneCh  chan error
	err     error
	ready   bool
}

// New creates an inspector Model that reads from source once started.
func New(source SourceFunc, theme agui.Theme) Model {
	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		source:     source,
		theme:      theme,
		styles:     NewStyles(theme),
		blockFocus: -1,
		messages:   make(map[string]*TextMessageBlock),
		toolCalls:  make(map[string]*ToolCallBlock),
		validator:  agui.NewSequenceValidator(),
		state:      jsonpatch.NewState(nil),
		running:    true,
		ctx:        ctx,
		cancel:     cancel,
		eventCh:    make(chan agui.Event, 256),
		doneCh:     make(chan error, 1),
	}
	m.Viewport = viewport.New(0, 0)
	return m
}

// Running reports whether the stream is still being read.
func (m Model) Running() bool { return m.running }

// Err returns the error that ended the stream, if any.
func (m Model) Err() error { return m.err }

// Violation returns the first protocol violation seen, if any.
func (m Model) Violation() error { return m.violation }

// Events returns the number of events received.
func (m Model) Events() int { return m.events }

// Phase returns the run phase tracked by the sequence validator.
func (m Model) Phase() agui.Phase { return m.validator.State().Phase }

// State returns the agent state document rebuilt from state events.
func (m Model) State() json.RawMessage { return m.state.Document() }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		startStream(m.ctx, m.source, m.eventCh, m.doneCh),
		listenForEvent(m.eventCh, m.doneCh),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StreamEventMsg:
		m = m.processEvent(msg.Event)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		return m, listenForEvent(m.eventCh, m.doneCh)

	case StreamDoneMsg:
		m.running = false
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.err = msg.Err
			m.blocks = append(m.blocks, NewErrorBlock("stream", msg.Err, m.styles))
		}
		m = m.updateBlockFocus()
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.Viewport.View() + "\n" + m.statusLine()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	statusHeight := 1
	borderHeight := 1 // newline between viewport and status
	vpHeight := msg.Height - statusHeight - borderHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	m.Viewport.Width = msg.Width
	m.Viewport.Height = vpHeight
	m.Viewport.SetContent(m.renderContent())
	if !m.ready {
		m.Viewport.GotoBottom()
		m.ready = true
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.running && m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case "tab":
		if m.blockFocus >= 0 {
			block, cmd := m.blocks[m.blockFocus].Update(ToggleMsg{})
			m.blocks[m.blockFocus] = block
			m.Viewport.SetContent(m.renderContent())
			return m, cmd
		}
		return m, nil

	case "shift+tab":
		m = m.cycleFocusPrev()
		m.Viewport.SetContent(m.renderContent())
		return m, nil

	case "e":
		m.allExpanded = !m.allExpanded
		for i, b := range m.blocks {
			m.blocks[i], _ = b.Update(SetCollapsedMsg{Collapsed: !m.allExpanded})
		}
		m.Viewport.SetContent(m.renderContent())
		return m, nil
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m Model) renderContent() string {
	if len(m.blocks) == 0 {
		return ""
	}
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString(blockSeparator(m.blocks[i-1], block))
		}
		view := block.View(m.Viewport.Width)
		if i == m.blockFocus {
			view = m.styles.Accent.Render("›") + view
		}
		b.WriteString(view)
	}
	return b.String()
}

// blockSeparator puts a blank line around message bodies and run
// boundaries; other blocks are stacked.
func blockSeparator(prev, curr MessageBlock) string {
	if spaced(prev) || spaced(curr) {
		return "\n\n"
	}
	return "\n"
}

func spaced(b MessageBlock) bool {
	switch b.(type) {
	case *TextMessageBlock, *RunBlock:
		return true
	}
	return false
}

// processEvent checks an event against the protocol and routes it to the
// appropriate block.
func (m Model) processEvent(evt agui.Event) Model {
	m.events++
	if m.violation == nil {
		err := evt.Validate()
		if err == nil {
			err = m.validator.Validate(evt)
		}
		if err != nil {
			m.violation = err
			m.blocks = append(m.blocks, NewErrorBlock("protocol violation", err, m.styles))
		}
	}

	switch e := evt.(type) {
	case agui.RunStarted, agui.RunFinished, agui.RunError:
		m.thinking = nil
		m.blocks = append(m.blocks, NewRunBlock(e, m.styles))
	case agui.StepStarted:
		m.blocks = append(m.blocks, NewStepBlock(e.StepName, false, m.styles))
	case agui.StepFinished:
		m.blocks = append(m.blocks, NewStepBlock(e.StepName, true, m.styles))
	case agui.TextMessageStart:
		m = m.addMessage(e.MessageID, e.Role)
	case agui.TextMessageContent:
		b, ok := m.messages[e.MessageID]
		if !ok {
			m = m.addMessage(e.MessageID, agui.RoleAssistant)
			b = m.messages[e.MessageID]
		}
		b.Append(e.Delta)
	case agui.ToolCallStart:
		b := NewToolCallBlock(e.ToolCallName, e.ToolCallID, m.theme, m.styles)
		m.toolCalls[e.ToolCallID] = b
		m.blocks = append(m.blocks, b)
		m = m.updateBlockFocus()
	case agui.ToolCallArgs:
		if b, ok := m.toolCalls[e.ToolCallID]; ok {
			b.AppendArgs(e.Delta)
		}
	case agui.ToolCallEnd:
		if b, ok := m.toolCalls[e.ToolCallID]; ok {
			b.Finish()
		}
	case agui.ToolCallResult:
		name := e.ToolCallID
		if b, ok := m.toolCalls[e.ToolCallID]; ok {
			name = b.Name()
		}
		m.blocks = append(m.blocks, NewToolResultBlock(name, e.Content, m.styles))
		m = m.updateBlockFocus()
	case agui.ThinkingStart:
		m = m.addThinking(e.Title)
	case agui.ThinkingTextMessageContent:
		if m.thinking == nil {
			m = m.addThinking("")
		}
		m.thinking.Append(e.Delta)
	case agui.ThinkingEnd:
		m.thinking = nil
	case agui.TextMessageEnd, agui.ThinkingTextMessageStart, agui.ThinkingTextMessageEnd:
		// Framing only.
	case agui.StateSnapshot, agui.StateDelta:
		if _, err := m.state.Apply(e); err != nil {
			m.blocks = append(m.blocks, NewErrorBlock("state", err, m.styles))
		}
		m = m.addPayload(evt)
	default:
		m = m.addPayload(evt)
	}
	return m
}

func (m Model) addMessage(id string, role agui.Role) Model {
	b := NewTextMessageBlock(id, role, m.theme, m.styles)
	m.messages[id] = b
	m.blocks = append(m.blocks, b)
	return m
}

func (m Model) addThinking(title string) Model {
	m.thinking = NewThinkingBlock(title, m.styles)
	m.blocks = append(m.blocks, m.thinking)
	return m.updateBlockFocus()
}

func (m Model) addPayload(e agui.Event) Model {
	label := e.Type().String()
	if c, ok := e.(agui.Custom); ok {
		label += " " + c.Name
	}
	data, err := aguijson.MarshalEvent(e)
	if err != nil {
		m.blocks = append(m.blocks, NewErrorBlock(label, err, m.styles))
		return m
	}
	m.blocks = append(m.blocks, NewPayloadBlock(label, data, m.theme, m.styles))
	return m.updateBlockFocus()
}

// updateBlockFocus focuses the last collapsible block.
func (m Model) updateBlockFocus() Model {
	m.blockFocus = -1
	for i := len(m.blocks) - 1; i >= 0; i-- {
		if collapsible(m.blocks[i]) {
			m.blockFocus = i
			return m
		}
	}
	return m
}

// cycleFocusPrev moves blockFocus to the previous collapsible block, wrapping around.
func (m Model) cycleFocusPrev() Model {
	start := m.blockFocus - 1
	if start < 0 {
		start = len(m.blocks) - 1
	}
	for i := range len(m.blocks) {
		idx := (start - i + len(m.blocks)) % len(m.blocks)
		if collapsible(m.blocks[idx]) {
			m.blockFocus = idx
			return m
		}
	}
	m.blockFocus = -1
	return m
}

func (m Model) statusLine() string {
	summary := fmt.Sprintf("%s · %d events", m.Phase(), m.events)
	switch {
	case m.err != nil:
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	case m.violation != nil:
		return m.styles.Error.Render("Protocol violation · " + summary)
	case m.running:
		return m.styles.Muted.Render("Streaming… " + summary)
	default:
		return m.styles.Muted.Render("Done · " + summary + " · Tab toggle, e expand all, q quit")
	}
}

// startStream reads the source on a goroutine, forwarding normalized events
// until the stream ends, and reports how it ended on doneCh.
func startStream(ctx context.Context, source SourceFunc, eventCh chan<- agui.Event, doneCh chan<- error) tea.Cmd {
	return func() tea.Msg {
		doneCh <- pump(ctx, source, eventCh)
		close(eventCh)
		return nil
	}
}

func pump(ctx context.Context, source SourceFunc, eventCh chan<- agui.Event) error {
	s, err := source(ctx)
	if err != nil {
		return err
	}
	s = agui.Normalize(s)
	defer s.Close()
	for {
		e, err := s.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		select {
		case eventCh <- e:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// listenForEvent waits for the next event from the channel.
// When the channel closes, it reads the error from doneCh and returns StreamDoneMsg.
func listenForEvent(ch <-chan agui.Event, doneCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return StreamDoneMsg{Err: <-doneCh}
		}
		return StreamEventMsg{Event: evt}
	}
}
