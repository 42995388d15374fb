package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/agui"
	aguijson "github.com/fwojciec/agui/json"
)

func runNormalize(ctx context.Context, env *env, args []string) error {
	fs := newFlagSet(env, "normalize")
	in := fs.String("in", "", "Input JSON Lines file (default stdin)")
	out := fs.String("out", "", "Output JSON Lines file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var r io.Reader = env.stdin
	if *in != "" {
		f, err := os.Open(*in)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	w := env.stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	n, err := normalize(ctx, r, w)
	env.logger.InfoContext(ctx, "normalized", "events", n)
	return err
}

// normalize copies JSON Lines events from r to w with chunks expanded and
// returns the number of events written.
func normalize(ctx context.Context, r io.Reader, w io.Writer) (int, error) {
	s := agui.Normalize(aguijson.NewDecoder(r))
	defer s.Close()
	enc := aguijson.NewEncoder(w)
	n := 0
	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		e, err := s.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("normalize: %w", err)
		}
		if err := enc.Encode(e); err != nil {
			return n, err
		}
		n++
	}
}
