package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fwojciec/agui"
	"github.com/fwojciec/agui/sse"
)

func runServe(ctx context.Context, env *env, args []string) error {
	fs := newFlagSet(env, "serve")
	addr := fs.String("addr", "localhost:8080", "Listen address")
	asSSE := fs.Bool("sse", false, "Read FILE as Server-Sent Events instead of JSON Lines")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("serve: exactly one FILE is required")
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           replayHandler(env, fs.Arg(0), *asSSE),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	env.logger.InfoContext(ctx, "serving", "addr", *addr, "file", fs.Arg(0))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// replayHandler serves the checked contents of path to every request. A
// file that breaks the protocol ends the response early.
func replayHandler(env *env, path string, asSSE bool) http.Handler {
	return sse.NewWriter(env.logger).Handler(func(r *http.Request) agui.Stream {
		env.logger.DebugContext(r.Context(), "replay", "remote", r.RemoteAddr, "file", path)
		s, err := openEvents(path, asSSE)
		if err != nil {
			env.logger.ErrorContext(r.Context(), "open events", "file", path, "error", err)
			return agui.NewSliceStream(nil)
		}
		return agui.Check(s)
	})
}
