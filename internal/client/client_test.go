// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/binconv/internal/convert"
	"github.com/pdiddy/binconv/internal/server"
	"github.com/pdiddy/binconv/pkg/types"
)

func testClient(t *testing.T, token string, opts ...server.Option) *Client {
	t.Helper()
	s := server.New(types.ServerConfig{}, zerolog.Nop(), opts...)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	cfg := types.ClientConfig{Timeout: 5 * time.Second, MaxRetries: 2, UserAgent: "binconv-test"}
	return New(ts.URL+"/", cfg, token, zerolog.Nop())
}

func TestConvert(t *testing.T) {
	c := testClient(t, "")
	ctx := context.Background()

	out, err := c.Convert(ctx, types.BinaryToDecimal, "1000101")
	require.NoError(t, err)
	assert.Equal(t, "69", out)

	out, err = c.Convert(ctx, types.DecimalToBinary, "0")
	require.NoError(t, err)
	assert.Equal(t, "0", out)
}

func TestConvert_InvalidInput(t *testing.T) {
	c := testClient(t, "")

	_, err := c.Convert(context.Background(), types.BinaryToDecimal, "1021")
	require.Error(t, err)
	assert.ErrorIs(t, err, convert.ErrInvalidInput)
	assert.Equal(t, `invalid binary value "1021"`, err.Error())
}

func TestConvert_Token(t *testing.T) {
	ctx := context.Background()

	c := testClient(t, "secret", server.WithToken("secret"))
	out, err := c.Convert(ctx, types.DecimalToBinary, "5")
	require.NoError(t, err)
	assert.Equal(t, "101", out)

	bad := testClient(t, "wrong", server.WithToken("secret"))
	_, err = bad.Convert(ctx, types.DecimalToBinary, "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid bearer token")
	assert.NotErrorIs(t, err, convert.ErrInvalidInput)
}

func TestValidate(t *testing.T) {
	c := testClient(t, "")
	ctx := context.Background()

	ok, err := c.Validate(ctx, types.BinaryToDecimal, "0101")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Validate(ctx, types.BinaryToDecimal, "1 0")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConvert_RetriesOnRateLimit(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		assert.Equal(t, "binconv-test", r.UserAgent())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"direction":"dec2bin","input":"2","output":"10"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, types.ClientConfig{Timeout: time.Second, MaxRetries: 3, UserAgent: "binconv-test"}, "", zerolog.Nop())
	out, err := c.Convert(context.Background(), types.DecimalToBinary, "2")
	require.NoError(t, err)
	assert.Equal(t, "10", out)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestConvert_UnexpectedStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := New(ts.URL, types.ClientConfig{Timeout: time.Second}, "", zerolog.Nop())
	_, err := c.Convert(context.Background(), types.DecimalToBinary, "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}
