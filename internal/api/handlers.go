// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"better-naming/internal/commands"
	"better-naming/internal/logger"
	"better-naming/internal/naming"
	"better-naming/internal/secrets"
)

type suggestRequest struct {
	Text string `json:"text"`
}

type applyRequest struct {
	Text string `json:"text"`
	Name string `json:"name"`
}

type applyResponse struct {
	Text string `json:"text"`
}

type keyRequest struct {
	Key string `json:"key"`
}

type keyStatusResponse struct {
	Configured bool `json:"configured"`
}

// suggestHandler runs one completion round trip for the posted text. A
// response without suggestions still carries the prompt that was sent.
func (s *Server) suggestHandler(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	apiKey, err := s.cmds.StoredAPIKey()
	if errors.Is(err, commands.ErrMissingCredential) {
		writeError(w, http.StatusUnauthorized, commands.MsgSetAPIKey)
		return
	}
	if err != nil {
		logger.Error("failed to read api key", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read api key")
		return
	}

	suggestion, err := s.cmds.Suggest(r.Context(), apiKey, req.Text)
	if errors.Is(err, naming.ErrNoSuggestions) {
		suggestion.Names = []string{}
		writeJSONResponse(w, http.StatusOK, suggestion)
		return
	}
	if err != nil {
		logger.Error("suggest request failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSONResponse(w, http.StatusOK, suggestion)
}

// applyHandler returns text with the placeholder identifier replaced by name.
func (s *Server) applyHandler(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	writeJSONResponse(w, http.StatusOK, applyResponse{Text: naming.ApplyName(req.Text, req.Name)})
}

func (s *Server) getKeyHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.cmds.HasAPIKey()
	if err != nil {
		logger.Error("failed to read api key", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read api key")
		return
	}
	writeJSONResponse(w, http.StatusOK, keyStatusResponse{Configured: ok})
}

func (s *Server) putKeyHandler(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	key := strings.TrimSpace(req.Key)
	if key == "" {
		writeError(w, http.StatusBadRequest, commands.MsgAPIKeyRequired)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cmds.Secrets.Store(secrets.APIKeyName, key); err != nil {
		logger.Error("error storing api key", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store api key")
		return
	}
	s.cmds.Output.AppendLine(commands.MsgLoggedIn)
	writeJSONResponse(w, http.StatusOK, keyStatusResponse{Configured: true})
}

func (s *Server) deleteKeyHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cmds.Secrets.Delete(secrets.APIKeyName); err != nil {
		logger.Error("error deleting api key", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete api key")
		return
	}
	s.cmds.Output.AppendLine(commands.MsgLoggedOut)
	writeJSONResponse(w, http.StatusOK, keyStatusResponse{Configured: false})
}

type commandInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// listCommandsHandler lists the command identifiers an editor can bind.
func (s *Server) listCommandsHandler(w http.ResponseWriter, r *http.Request) {
	registered := commands.Activate(s.cmds).Commands()
	out := make([]commandInfo, len(registered))
	for i, c := range registered {
		out[i] = commandInfo{ID: c.ID, Title: c.Title}
	}
	writeJSONResponse(w, http.StatusOK, out)
}
