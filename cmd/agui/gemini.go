package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/agui"
	"github.com/fwojciec/agui/gemini"
	aguijson "github.com/fwojciec/agui/json"
	"github.com/fwojciec/agui/sse"
	"github.com/fwojciec/agui/uuid"
)

func runGemini(ctx context.Context, env *env, args []string) error {
	fs := newFlagSet(env, "gemini")
	prompt := fs.String("prompt", "", "User message")
	model := fs.String("model", "", "Model ID (default: gemini default)")
	format := fs.String("format", "jsonl", "Output format: jsonl or sse")
	apiKey := fs.String("api-key", "", "API key (overrides GEMINI_API_KEY)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *prompt == "" {
		return fmt.Errorf("gemini: -prompt is required")
	}
	write, err := streamWriter(*format, env)
	if err != nil {
		return err
	}
	key := *apiKey
	if key == "" {
		key = env.cfg.geminiKey
	}
	if key == "" {
		return fmt.Errorf("GEMINI_API_KEY not set (use -api-key flag or environment variable)")
	}

	ids := uuid.NewGenerator()
	var opts []gemini.Option
	if *model != "" {
		opts = append(opts, gemini.WithModel(*model))
	}
	client, err := gemini.New(ctx, key, ids, opts...)
	if err != nil {
		return err
	}
	in := newRunInput(ids, *prompt)
	env.logger.InfoContext(ctx, "run", "provider", "gemini", "thread", in.ThreadID, "run", in.RunID)
	s, err := client.Run(ctx, in)
	if err != nil {
		return err
	}
	return write(ctx, env.stdout, agui.Check(s))
}

type writeFunc func(ctx context.Context, w io.Writer, s agui.Stream) error

// streamWriter picks the output framing for a checked stream.
func streamWriter(format string, env *env) (writeFunc, error) {
	switch format {
	case "jsonl":
		return writeJSONL, nil
	case "sse":
		return sse.NewWriter(env.logger).WriteStream, nil
	default:
		return nil, fmt.Errorf("unknown format %q: must be \"jsonl\" or \"sse\"", format)
	}
}

func writeJSONL(ctx context.Context, w io.Writer, s agui.Stream) error {
	defer s.Close()
	enc := aguijson.NewEncoder(w)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		e, err := s.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
}
