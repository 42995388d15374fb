package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/agui"
	bt "github.com/fwojciec/agui/bubbletea"
	"github.com/fwojciec/agui/sse"
	"github.com/fwojciec/agui/uuid"
)

func runView(ctx context.Context, env *env, args []string) error {
	fs := newFlagSet(env, "view")
	asSSE := fs.Bool("sse", false, "Read FILE as Server-Sent Events instead of JSON Lines")
	url := fs.String("url", "", "Run an agent over HTTP and inspect its event stream")
	prompt := fs.String("prompt", "", "User message sent with -url")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var source bt.SourceFunc
	switch {
	case *url != "":
		source = remoteSource(*url, *prompt)
	case fs.NArg() == 1:
		path := fs.Arg(0)
		source = func(context.Context) (agui.Stream, error) {
			return openEvents(path, *asSSE)
		}
	default:
		return fmt.Errorf("view: exactly one FILE or -url is required")
	}

	if err := bt.Run(ctx, bt.New(source, agui.DefaultTheme())); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

// remoteSource posts a fresh run to an AG-UI endpoint.
func remoteSource(url, prompt string) bt.SourceFunc {
	return func(ctx context.Context) (agui.Stream, error) {
		return sse.NewClient(url).Run(ctx, newRunInput(uuid.NewGenerator(), prompt))
	}
}

// newRunInput starts a new thread holding prompt as its only user message.
func newRunInput(ids agui.IDGenerator, prompt string) agui.RunAgentInput {
	in := agui.RunAgentInput{
		ThreadID: ids.ThreadID(),
		RunID:    ids.RunID(),
	}
	if prompt != "" {
		in.Messages = []agui.Message{{ID: ids.MessageID(), Role: agui.RoleUser, Content: prompt}}
	}
	return in
}
