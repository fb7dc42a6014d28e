// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestCreateCompletionSendsRequest(t *testing.T) {
	c := qt.New(t)

	var got Request
	var auth, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cmpl-1","choices":[{"text":"\n\nfooBar, bazQux","index":0}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/v1/", "sk-test")
	resp, err := client.CreateCompletion(context.Background(), Request{
		Model:  "text-davinci-003",
		Prompt: "Suggest names",
		N:      3,
	})
	c.Assert(err, qt.IsNil)
	c.Assert(auth, qt.Equals, "Bearer sk-test")
	c.Assert(path, qt.Equals, "/v1/completions")
	c.Assert(got, qt.DeepEquals, Request{Model: "text-davinci-003", Prompt: "Suggest names", N: 3})
	c.Assert(resp.Choices, qt.HasLen, 1)
	c.Assert(resp.Choices[0].Text, qt.Equals, "\n\nfooBar, bazQux")
}

func TestCreateCompletionTemperature(t *testing.T) {
	c := qt.New(t)

	var bodies []map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		bodies = append(bodies, body)
		w.Write([]byte(`{"choices":[{"text":"sum"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk-test")
	zero := 0.0
	_, err := client.CreateCompletion(context.Background(), Request{Model: "m", Prompt: "p", Temperature: &zero})
	c.Assert(err, qt.IsNil)
	_, err = client.CreateCompletion(context.Background(), Request{Model: "m", Prompt: "p"})
	c.Assert(err, qt.IsNil)

	c.Assert(bodies, qt.HasLen, 2)
	c.Assert(bodies[0]["temperature"], qt.Equals, 0.0)
	_, sent := bodies[1]["temperature"]
	c.Assert(sent, qt.IsFalse)
}

func TestCreateCompletionStatusError(t *testing.T) {
	c := qt.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "bad").CreateCompletion(context.Background(), Request{Model: "m", Prompt: "p"})
	var apiErr *APIError
	c.Assert(errors.As(err, &apiErr), qt.IsTrue)
	c.Assert(apiErr.StatusCode, qt.Equals, http.StatusUnauthorized)
	c.Assert(err, qt.ErrorMatches, `API error \(status 401\): Incorrect API key provided`)
}

func TestCreateCompletionPlainTextError(t *testing.T) {
	c := qt.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k").CreateCompletion(context.Background(), Request{})
	c.Assert(err, qt.ErrorMatches, `API error \(status 502\): upstream down`)
}

func TestCreateCompletionBodyError(t *testing.T) {
	c := qt.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"model overloaded"}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k").CreateCompletion(context.Background(), Request{})
	c.Assert(err, qt.ErrorMatches, "API error: model overloaded")
}

func TestCreateCompletionMalformedJSON(t *testing.T) {
	c := qt.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k").CreateCompletion(context.Background(), Request{})
	c.Assert(err, qt.ErrorMatches, `failed to parse response: .* \(body: not json\)`)
}

func TestCreateCompletionNoChoices(t *testing.T) {
	c := qt.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k").CreateCompletion(context.Background(), Request{})
	c.Assert(err, qt.ErrorIs, ErrNoChoices)
}

func TestCreateCompletionTimeout(t *testing.T) {
	c := qt.New(t)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(srv.URL, "k", WithTimeout(50*time.Millisecond))
	_, err := client.CreateCompletion(context.Background(), Request{})
	c.Assert(err, qt.IsNotNil)
}
