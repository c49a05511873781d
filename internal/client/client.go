// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client talks to a remote binconv API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/binconv/internal/convert"
	"github.com/pdiddy/binconv/internal/httputil"
	"github.com/pdiddy/binconv/internal/server"
	"github.com/pdiddy/binconv/pkg/types"
)

// Client calls the conversion API at a base URL.
type Client struct {
	base      string
	token     string
	userAgent string
	retrier   *httputil.Retrier
}

// New creates a Client for baseURL (e.g. "http://127.0.0.1:8080").
func New(baseURL string, cfg types.ClientConfig, token string, log zerolog.Logger) *Client {
	hc := &http.Client{Timeout: cfg.Timeout}
	return &Client{
		base:      strings.TrimRight(baseURL, "/"),
		token:     token,
		userAgent: cfg.UserAgent,
		retrier:   httputil.NewRetrier(hc, cfg.MaxRetries, log),
	}
}

// Convert asks the server to convert input. A 422 answer is returned as a
// *convert.InvalidInputError.
func (c *Client) Convert(ctx context.Context, dir types.Direction, input string) (string, error) {
	body, err := json.Marshal(server.ConvertRequest{Direction: dir, Input: input})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+server.PathConvert, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out server.ConvertResponse
	status, err := c.do(ctx, req, &out)
	if err != nil {
		if status == http.StatusUnprocessableEntity {
			return "", &convert.InvalidInputError{Direction: dir, Input: input}
		}
		return "", err
	}
	return out.Output, nil
}

// Validate asks the server whether input is acceptable for dir.
func (c *Client) Validate(ctx context.Context, dir types.Direction, input string) (bool, error) {
	q := url.Values{}
	q.Set("direction", string(dir))
	q.Set("input", input)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+server.PathValidate+"?"+q.Encode(), nil)
	if err != nil {
		return false, fmt.Errorf("building request: %w", err)
	}

	var out server.ValidateResponse
	if _, err := c.do(ctx, req, &out); err != nil {
		return false, err
	}
	return out.Valid, nil
}

// do sends req and decodes a 200 JSON body into v. For other statuses it
// returns the status together with an error carrying the server's message.
func (c *Client) do(ctx context.Context, req *http.Request, v any) (int, error) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.retrier.Do(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("calling %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var er server.ErrorResponse
		if json.Unmarshal(data, &er) == nil && er.Error != "" {
			return resp.StatusCode, fmt.Errorf("%s: %s", resp.Status, er.Error)
		}
		return resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
	}
	return resp.StatusCode, nil
}
