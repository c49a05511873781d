// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the converter over a small JSON HTTP API.
package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/binconv/internal/convert"
	"github.com/pdiddy/binconv/pkg/types"
)

// maxBodyBytes bounds the size of a convert request body.
const maxBodyBytes = 1 << 20

// Recorder stores conversions served by the API.
type Recorder interface {
	Record(ctx context.Context, c types.Conversion) error
}

// Server serves the conversion API.
type Server struct {
	cfg      types.ServerConfig
	log      zerolog.Logger
	token    string
	recorder Recorder
}

// Option configures a Server.
type Option func(*Server)

// WithToken requires every /v1 request to carry "Authorization: Bearer <token>".
// An empty token leaves the API open.
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

// WithRecorder records every conversion the API performs.
func WithRecorder(r Recorder) Option {
	return func(s *Server) { s.recorder = r }
}

// New creates a Server.
func New(cfg types.ServerConfig, log zerolog.Logger, opts ...Option) *Server {
	s := &Server{cfg: cfg, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the API routes wrapped with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+PathConvert, s.requireToken(s.handleConvert))
	mux.HandleFunc("GET "+PathValidate, s.requireToken(s.handleValidate))
	mux.HandleFunc("GET "+PathHealth, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, "ok")
	})
	return s.logRequests(mux)
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("serving conversion API")
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		s.log.Info().Msg("server stopped")
		return nil
	}
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("malformed request body: %v", err))
		return
	}
	dir, err := types.ParseDirection(string(req.Direction))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c := convert.Record(dir, req.Input)
	s.record(r.Context(), c)
	if c.Failed() {
		writeError(w, http.StatusUnprocessableEntity, c.Error)
		return
	}
	writeJSON(w, http.StatusOK, ConvertResponse{Direction: dir, Input: c.Input, Output: c.Output})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dirName := q.Get("direction")
	if dirName == "" {
		dirName = string(types.BinaryToDecimal)
	}
	dir, err := types.ParseDirection(dirName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	input := q.Get("input")
	writeJSON(w, http.StatusOK, ValidateResponse{
		Direction: dir,
		Input:     input,
		Valid:     convert.Valid(dir, input),
	})
}

func (s *Server) record(ctx context.Context, c types.Conversion) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, c); err != nil {
		s.log.Warn().Err(err).Str("input", c.Input).Msg("recording conversion failed")
	}
}

func (s *Server) requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(s.token)) != 1 {
				writeError(w, http.StatusUnauthorized, "missing or invalid bearer token")
				return
			}
		}
		next(w, r)
	}
}

// statusWriter captures the response status for request logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
