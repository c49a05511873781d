// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for talking to a binconv API.
package httputil

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseDelay is the first backoff delay after an HTTP 429.
const DefaultBaseDelay = time.Second

const defaultMaxRetries = 5

// Retrier executes requests and retries on HTTP 429 (Too Many Requests).
// The delay is the server's Retry-After when given in seconds, otherwise
// BaseDelay doubled on each attempt.
type Retrier struct {
	Client     *http.Client
	MaxRetries int
	BaseDelay  time.Duration
	Log        zerolog.Logger
}

// NewRetrier returns a Retrier using client. A zero maxRetries uses the
// default (5).
func NewRetrier(client *http.Client, maxRetries int, log zerolog.Logger) *Retrier {
	if client == nil {
		client = http.DefaultClient
	}
	return &Retrier{
		Client:     client,
		MaxRetries: maxRetries,
		BaseDelay:  DefaultBaseDelay,
		Log:        log,
	}
}

// Do sends req, retrying on 429. Request bodies are replayed through
// req.GetBody, so requests built by http.NewRequest with an in-memory body
// are safe to retry. If ctx is cancelled during a backoff wait Do returns
// ctx.Err(). After exhausting retries the last 429 response is returned so
// the caller can inspect it.
func (r *Retrier) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	maxRetries := r.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		attemptReq := req.Clone(ctx)
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("rewinding request body: %w", err)
			}
			attemptReq.Body = body
		}

		resp, err := r.Client.Do(attemptReq)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		backoff := r.backoff(attempt, resp.Header.Get("Retry-After"))
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		r.Log.Debug().
			Dur("backoff", backoff).
			Int("attempt", attempt+1).
			Int("max_retries", maxRetries).
			Msg("rate limited, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func (r *Retrier) backoff(attempt int, retryAfter string) time.Duration {
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	base := r.BaseDelay
	if base <= 0 {
		base = DefaultBaseDelay
	}
	return time.Duration(math.Pow(2, float64(attempt))) * base
}
