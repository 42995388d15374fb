// Command agui checks, normalizes, inspects and produces AG-UI event streams.
//
// Usage:
//
//	agui validate [-mode stream|batch] [-normalize] PATTERN...
//	agui normalize [-in FILE] [-out FILE]
//	agui view [-sse] FILE
//	agui view -url URL [-prompt TEXT]
//	agui serve [-addr ADDR] FILE
//	GEMINI_API_KEY=gk-... agui gemini -prompt TEXT [-model M] [-format jsonl|sse]
//	ANTHROPIC_API_KEY=sk-ant-... agui anthropic -prompt TEXT [-model M] [-format jsonl|sse]
//
// Event files are JSON Lines (.jsonl, one event per line) or a JSON array
// (.json). Patterns use doublestar syntax, so "testdata/**/*.jsonl" matches
// recursively.
//
// Environment:
//
//	AGUI_LOG_LEVEL     debug, info, warn or error (default info)
//	AGUI_LOG_FORMAT    text or json (default text)
//	GEMINI_API_KEY     API key for the gemini command
//	ANTHROPIC_API_KEY  API key for the anthropic command
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "agui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := resolveConfig(os.Getenv)
	if err != nil {
		return err
	}
	env := &env{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		cfg:    cfg,
		logger: newLogger(os.Stderr, cfg),
	}
	return dispatch(ctx, env, os.Args[1:])
}

// env carries the process surroundings a command runs in.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cfg    config
	logger *slog.Logger
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, env *env, args []string) error
}

var commands = []command{
	{"validate", "check event files against the protocol", runValidate},
	{"normalize", "expand chunk events into start/content/end triads", runNormalize},
	{"view", "inspect an event stream in the terminal", runView},
	{"serve", "replay an event file over Server-Sent Events", runServe},
	{"gemini", "run a Gemini model and emit its event stream", runGemini},
	{"anthropic", "run an Anthropic model and emit its event stream", runAnthropic},
}

var errUsage = errors.New("usage")

func dispatch(ctx context.Context, env *env, args []string) error {
	if len(args) == 0 {
		printUsage(env.stderr)
		return errUsage
	}
	for _, c := range commands {
		if c.name == args[0] {
			err := c.run(ctx, env, args[1:])
			if errors.Is(err, flag.ErrHelp) {
				return nil
			}
			return err
		}
	}
	printUsage(env.stderr)
	return fmt.Errorf("unknown command %q", args[0])
}

func printUsage(w io.Writer) {
	var b strings.Builder
	b.WriteString("usage: agui <command> [flags]\n\ncommands:\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "  %-10s %s\n", c.name, c.usage)
	}
	io.WriteString(w, b.String())
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func newFlagSet(env *env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet("agui "+name, flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	return fs
}
