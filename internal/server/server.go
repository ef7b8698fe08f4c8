// Package server exposes the extraction engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bharm16/prompt-builder-sub009/internal/engine"
	"github.com/bharm16/prompt-builder-sub009/internal/metrics"
	"github.com/bharm16/prompt-builder-sub009/internal/model"
)

const maxRequestBytes = 1 << 20

// Server wraps chi and the stdlib http.Server around an engine.
type Server struct {
	engine *engine.Engine
	mux    *chi.Mux
	srv    *http.Server
}

// New creates a server for the given engine, listening on addr.
func New(eng *engine.Engine, addr string) *Server {
	s := &Server{
		engine: eng,
		mux:    chi.NewRouter(),
	}
	s.mux.Use(RequestID, AccessLog)
	s.mux.Post("/v1/extract", s.handleExtract)
	s.mux.Get("/healthz", s.handleHealthz)
	s.mux.Method(http.MethodGet, "/metrics", metrics.Handler())

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run starts the server and blocks until it stops.
func (s *Server) Run() error {
	slog.Info("http listening", "addr", s.srv.Addr)
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// extractRequest is the body of POST /v1/extract. Options, when present,
// override the engine's configured tier defaults.
type extractRequest struct {
	ID      string          `json:"id"`
	Text    string          `json:"text"`
	Options *engine.Options `json:"options,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text is required"})
		return
	}

	res, err := s.engine.Extract(r.Context(), req.Text, req.Options)
	if err != nil {
		slog.Error("extract failed", "request_id", requestID(r.Context()), "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "extraction failed"})
		return
	}
	metrics.RecordExtraction(len(res.Spans), res.Stats)

	writeJSON(w, http.StatusOK, model.Extraction{
		ID:    req.ID,
		Text:  req.Text,
		Spans: res.Spans,
		Stats: res.Stats,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("response encode failed", "error", err)
	}
}
