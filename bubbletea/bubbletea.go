// Package bubbletea provides a Bubble Tea inspector for AG-UI event streams.
//
// The inspector reads a stream on a background goroutine, normalizes chunk
// events, renders each construct as a block and checks the sequence as it
// goes. The first protocol violation is shown inline and in the status bar;
// later events are still displayed.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/agui"
)

// SourceFunc opens the stream to inspect. The stream is read until EOF, an
// error or cancellation of ctx.
type SourceFunc func(ctx context.Context) (agui.Stream, error)

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits. When ctx is cancelled the program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	stop := quitOnCancel(ctx, p.Quit)
	defer stop()
	_, err := p.Run()
	return err
}

// quitOnCancel calls quit when ctx is cancelled. The watcher exits when stop
// is called, so a program that quits on its own does not leak it.
func quitOnCancel(ctx context.Context, quit func()) (stop func()) {
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		select {
		case <-ctx.Done():
			quit()
		case <-done:
		}
	}()
	return func() {
		close(done)
		<-exited
	}
}

// StreamEventMsg wraps a stream event for delivery to the model.
type StreamEventMsg struct {
	Event agui.Event
}

// StreamDoneMsg signals that the stream has ended. Err is nil on a clean EOF.
type StreamDoneMsg struct {
	Err error
}
