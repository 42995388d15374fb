package sse

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/fwojciec/agui"
	aguijson "github.com/fwojciec/agui/json"
)

// Client runs agents exposed over the AG-UI HTTP binding: a POST of the run
// input answered with an SSE stream of events.
type Client struct {
	endpoint   string
	headers    http.Header
	httpClient *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers.Add(key, value) }
}

// NewClient creates a [Client] for the agent at endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		headers:    make(http.Header),
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Run starts a run and returns the raw event stream. Wrap it with
// [agui.Check] to normalize and verify it.
func (c *Client) Run(ctx context.Context, in agui.RunAgentInput) (agui.Stream, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("sse: %w", err)
	}
	body, err := aguijson.MarshalRunAgentInput(in)
	if err != nil {
		return nil, fmt.Errorf("sse: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("sse: %w", err)
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", ContentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sse: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, parseHTTPError(resp)
	}
	return NewReader(resp.Body), nil
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("sse: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("sse: HTTP %d", resp.StatusCode)
	}
	return fmt.Errorf("sse: HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(body))
}
