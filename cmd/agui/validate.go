package main

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/agui"
)

var errValidationFailed = errors.New("validation failed")

func runValidate(ctx context.Context, env *env, args []string) error {
	fs := newFlagSet(env, "validate")
	mode := fs.String("mode", "stream", "Validator: stream (single run, strict nesting) or batch (ID-keyed, interleaving allowed)")
	normalize := fs.Bool("normalize", false, "Expand chunk events before validating")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *mode != "stream" && *mode != "batch" {
		return fmt.Errorf("unknown mode %q: must be \"stream\" or \"batch\"", *mode)
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("validate: at least one file pattern is required")
	}

	paths, err := expandPatterns(fs.Args())
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := validateFile(path, *mode, *normalize)
		if err != nil {
			failed++
			env.logger.DebugContext(ctx, "file rejected", "path", path, "mode", *mode, "error", err)
			fmt.Fprintf(env.stdout, "FAIL %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(env.stdout, "ok   %s (%d events)\n", path, n)
	}
	env.logger.InfoContext(ctx, "validated", "files", len(paths), "failed", failed, "mode", *mode)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", errValidationFailed, failed, len(paths))
	}
	return nil
}

// expandPatterns resolves doublestar patterns to a sorted, de-duplicated list
// of files. A pattern without matches is an error.
func expandPatterns(patterns []string) ([]string, error) {
	var paths []string
	for _, p := range patterns {
		if !doublestar.ValidatePathPattern(p) {
			return nil, fmt.Errorf("invalid glob pattern: %s", p)
		}
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %s", p)
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}

// validateFile checks one event file and returns the number of events read.
// Stream mode verifies while decoding; batch mode needs the whole list.
func validateFile(path, mode string, normalize bool) (int, error) {
	s, err := openEvents(path, false)
	if err != nil {
		return 0, err
	}
	if normalize {
		s = agui.Normalize(s)
	}
	if mode == "stream" {
		events, err := agui.Collect(agui.Verify(s, agui.NewSequenceValidator()))
		if err != nil {
			return len(events), fmt.Errorf("event %d: %w", len(events), err)
		}
		return len(events), nil
	}
	events, err := agui.Collect(s)
	if err != nil {
		return len(events), err
	}
	var v agui.Validator = agui.BatchValidator{}
	return len(events), v.ValidateAll(events)
}
