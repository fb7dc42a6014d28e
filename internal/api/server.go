// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package api exposes the naming commands over a local HTTP API so that
// editor plugins can request suggestions and manage the API key without
// driving the terminal UI.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"better-naming/internal/commands"
	"better-naming/internal/logger"

	"github.com/gorilla/mux"
)

const (
	maxRequestBytes = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Server serves the naming API. Requests that touch the session or the
// secret store run one at a time.
type Server struct {
	cmds *commands.Commands
	mu   sync.Mutex
}

func NewServer(cmds *commands.Commands) *Server {
	return &Server{cmds: cmds}
}

// RegisterRoutes adds the API routes to router.
func (s *Server) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/suggest", s.suggestHandler).Methods("POST")
	router.HandleFunc("/api/apply", s.applyHandler).Methods("POST")
	router.HandleFunc("/api/key", s.getKeyHandler).Methods("GET")
	router.HandleFunc("/api/key", s.putKeyHandler).Methods("PUT")
	router.HandleFunc("/api/key", s.deleteKeyHandler).Methods("DELETE")
	router.HandleFunc("/api/commands", s.listCommandsHandler).Methods("GET")
}

// Handler returns a router with every API route registered.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	s.RegisterRoutes(router)
	router.Use(logRequests)
	return router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("api server listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("api request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// writeJSONResponse writes a JSON response with CORS headers
func writeJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSONResponse(w, status, errorResponse{Error: msg})
}

// decodeJSON reads a JSON body into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
