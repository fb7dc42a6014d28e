// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"better-naming/internal/commands"
	"better-naming/internal/completion"
	"better-naming/internal/logger"
	"better-naming/internal/naming"
	"better-naming/internal/secrets"

	qt "github.com/frankban/quicktest"
)

func TestMain(m *testing.M) {
	logger.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

type stubCompleter struct {
	mu       sync.Mutex
	text     string
	err      error
	keys     []string
	requests []completion.Request
}

func (s *stubCompleter) calls() ([]string, []completion.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.keys...), append([]completion.Request(nil), s.requests...)
}

func (s *stubCompleter) CreateCompletion(ctx context.Context, req completion.Request) (*completion.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return &completion.Response{Choices: []completion.Choice{{Text: s.text}}}, nil
}

type lineRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (l *lineRecorder) AppendLine(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
}

func (l *lineRecorder) Show(bool) {}

func (l *lineRecorder) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

type fixture struct {
	srv       *httptest.Server
	store     *secrets.MemoryStore
	completer *stubCompleter
	output    *lineRecorder
}

func newFixture(c *qt.C) *fixture {
	f := &fixture{
		store:     secrets.NewMemoryStore(),
		completer: &stubCompleter{},
		output:    &lineRecorder{},
	}
	cmds := &commands.Commands{
		Secrets: f.store,
		Output:  f.output,
		Session: naming.NewSession(),
		NewClient: func(apiKey string) commands.Completer {
			f.completer.mu.Lock()
			f.completer.keys = append(f.completer.keys, apiKey)
			f.completer.mu.Unlock()
			return f.completer
		},
		Settings: commands.Settings{Model: "text-davinci-003", Suggestions: 3, MaxTokens: 256},
	}
	f.srv = httptest.NewServer(NewServer(cmds).Handler())
	c.Cleanup(f.srv.Close)
	return f
}

func (f *fixture) do(c *qt.C, method, path, body string) (*http.Response, map[string]interface{}) {
	req, err := http.NewRequest(method, f.srv.URL+path, strings.NewReader(body))
	c.Assert(err, qt.IsNil)
	resp, err := f.srv.Client().Do(req)
	c.Assert(err, qt.IsNil)
	defer resp.Body.Close()

	var out map[string]interface{}
	c.Assert(json.NewDecoder(resp.Body).Decode(&out), qt.IsNil)
	return resp, out
}

func TestSuggestReturnsNamesAndPrompt(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	c.Assert(f.store.Store(secrets.APIKeyName, "sk-test"), qt.IsNil)
	f.completer.text = "\n\nrunningTotal, sum, \"grand total\""

	resp, body := f.do(c, http.MethodPost, "/api/suggest", `{"text":"let foo = a + b"}`)
	c.Assert(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Assert(resp.Header.Get("Content-Type"), qt.Equals, "application/json")
	c.Assert(body["names"], qt.DeepEquals, []interface{}{"runningTotal", "sum", `"grand total"`})
	c.Assert(body["prompt"], qt.Equals, naming.BuildPrompt("let foo = a + b", ""))
	keys, requests := f.completer.calls()
	c.Assert(keys, qt.DeepEquals, []string{"sk-test"})
	c.Assert(requests[0].N, qt.Equals, 3)

	_, body = f.do(c, http.MethodPost, "/api/suggest", `{"text":"let foo = a + b"}`)
	c.Assert(body["prompt"], qt.Equals, naming.BuildPrompt("let foo = a + b", "let foo = a + b"))
}

func TestSuggestWithoutKey(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)

	resp, body := f.do(c, http.MethodPost, "/api/suggest", `{"text":"x"}`)
	c.Assert(resp.StatusCode, qt.Equals, http.StatusUnauthorized)
	c.Assert(body["error"], qt.Equals, commands.MsgSetAPIKey)
	_, requests := f.completer.calls()
	c.Assert(requests, qt.HasLen, 0)
}

func TestSuggestRejectsBadBodies(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	c.Assert(f.store.Store(secrets.APIKeyName, "sk-test"), qt.IsNil)

	for _, body := range []string{`{"text":""}`, `not json`, `{"txt":"x"}`} {
		resp, out := f.do(c, http.MethodPost, "/api/suggest", body)
		c.Assert(resp.StatusCode, qt.Equals, http.StatusBadRequest, qt.Commentf("body %s", body))
		c.Assert(out["error"], qt.Not(qt.Equals), "")
	}
	_, requests := f.completer.calls()
	c.Assert(requests, qt.HasLen, 0)
}

func TestSuggestNoNames(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	c.Assert(f.store.Store(secrets.APIKeyName, "sk-test"), qt.IsNil)
	f.completer.text = "   "

	resp, body := f.do(c, http.MethodPost, "/api/suggest", `{"text":"x"}`)
	c.Assert(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Assert(body["names"], qt.DeepEquals, []interface{}{})
}

func TestSuggestUpstreamFailure(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	c.Assert(f.store.Store(secrets.APIKeyName, "sk-test"), qt.IsNil)
	f.completer.err = errors.New("connection refused")

	resp, body := f.do(c, http.MethodPost, "/api/suggest", `{"text":"x"}`)
	c.Assert(resp.StatusCode, qt.Equals, http.StatusBadGateway)
	c.Assert(body["error"], qt.Matches, ".*connection refused")
}

func TestApply(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)

	resp, body := f.do(c, http.MethodPost, "/api/apply", `{"text":"const foo = 1; foo++","name":"counter"}`)
	c.Assert(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Assert(body["text"], qt.Equals, "const counter = 1; foo++")

	resp, _ = f.do(c, http.MethodPost, "/api/apply", `{"text":"foo"}`)
	c.Assert(resp.StatusCode, qt.Equals, http.StatusBadRequest)
}

func TestKeyLifecycle(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)

	_, body := f.do(c, http.MethodGet, "/api/key", "")
	c.Assert(body["configured"], qt.Equals, false)

	resp, _ := f.do(c, http.MethodPut, "/api/key", `{"key":"   "}`)
	c.Assert(resp.StatusCode, qt.Equals, http.StatusBadRequest)

	resp, body = f.do(c, http.MethodPut, "/api/key", `{"key":"  sk-abc  "}`)
	c.Assert(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Assert(body["configured"], qt.Equals, true)
	stored, err := f.store.Get(secrets.APIKeyName)
	c.Assert(err, qt.IsNil)
	c.Assert(stored, qt.Equals, "sk-abc")

	_, body = f.do(c, http.MethodGet, "/api/key", "")
	c.Assert(body["configured"], qt.Equals, true)

	resp, _ = f.do(c, http.MethodDelete, "/api/key", "")
	c.Assert(resp.StatusCode, qt.Equals, http.StatusOK)
	_, err = f.store.Get(secrets.APIKeyName)
	c.Assert(err, qt.ErrorIs, secrets.ErrNotFound)

	c.Assert(f.output.Lines(), qt.DeepEquals, []string{commands.MsgLoggedIn, commands.MsgLoggedOut})
}

func TestListCommands(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)

	resp, err := f.srv.Client().Get(f.srv.URL + "/api/commands")
	c.Assert(err, qt.IsNil)
	defer resp.Body.Close()

	var out []commandInfo
	c.Assert(json.NewDecoder(resp.Body).Decode(&out), qt.IsNil)
	c.Assert(out, qt.HasLen, 3)
	c.Assert(out[0].ID, qt.Equals, commands.SuggestNamesID)
	c.Assert(out[1].ID, qt.Equals, commands.SetAPIKeyID)
	c.Assert(out[2].ID, qt.Equals, commands.DeleteAPIKeyID)
}

func TestWrongMethod(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)

	resp, err := f.srv.Client().Get(f.srv.URL + "/api/suggest")
	c.Assert(err, qt.IsNil)
	resp.Body.Close()
	c.Assert(resp.StatusCode, qt.Equals, http.StatusMethodNotAllowed)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	c := qt.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewServer(&commands.Commands{Secrets: secrets.NewMemoryStore()}).ListenAndServe(ctx, "127.0.0.1:0")
	}()
	cancel()
	c.Assert(<-done, qt.IsNil)
}
