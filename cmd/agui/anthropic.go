package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/agui"
	"github.com/fwojciec/agui/anthropic"
	"github.com/fwojciec/agui/uuid"
)

func runAnthropic(ctx context.Context, env *env, args []string) error {
	fs := newFlagSet(env, "anthropic")
	prompt := fs.String("prompt", "", "User message")
	model := fs.String("model", "", "Model ID (default: anthropic default)")
	maxTokens := fs.Int("max-tokens", 0, "Output token limit (default: anthropic default)")
	format := fs.String("format", "jsonl", "Output format: jsonl or sse")
	apiKey := fs.String("api-key", "", "API key (overrides ANTHROPIC_API_KEY)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *prompt == "" {
		return fmt.Errorf("anthropic: -prompt is required")
	}
	write, err := streamWriter(*format, env)
	if err != nil {
		return err
	}
	key := *apiKey
	if key == "" {
		key = env.cfg.anthropicKey
	}
	if key == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY not set (use -api-key flag or environment variable)")
	}

	ids := uuid.NewGenerator()
	var opts []anthropic.Option
	if *model != "" {
		opts = append(opts, anthropic.WithModel(*model))
	}
	if *maxTokens > 0 {
		opts = append(opts, anthropic.WithMaxTokens(*maxTokens))
	}
	in := newRunInput(ids, *prompt)
	env.logger.InfoContext(ctx, "run", "provider", "anthropic", "thread", in.ThreadID, "run", in.RunID)
	s, err := anthropic.New(key, ids, opts...).Run(ctx, in)
	if err != nil {
		return err
	}
	return write(ctx, env.stdout, agui.Check(s))
}
