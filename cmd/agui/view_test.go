package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunView_RequiresSource(t *testing.T) {
	t.Parallel()
	env, _, _ := testEnv(t, "")

	err := runView(context.Background(), env, nil)
	assert.ErrorContains(t, err, "exactly one FILE or -url is required")

	err = runView(context.Background(), env, []string{"a.jsonl", "b.jsonl"})
	assert.ErrorContains(t, err, "exactly one FILE or -url is required")
}
