// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package commands implements the three user-invocable actions: suggest
// names for the current selection, set the API key and delete it. Every
// error is handled here and turned into a notification; nothing propagates
// to the caller.
package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"better-naming/internal/completion"
	"better-naming/internal/host"
	"better-naming/internal/logger"
	"better-naming/internal/naming"
	"better-naming/internal/secrets"
)

// User-facing messages.
const (
	MsgSetAPIKey       = "BetterNaming: Set your OpenAI API key"
	MsgSelectCode      = "BetterNaming: Select code to generate variable names"
	MsgNoSuggestions   = "BetterNaming: No suggestions found. Please try again."
	MsgSomethingWrong  = "BetterNaming: Something went wrong, please retry command"
	MsgLoggedIn        = "BetterNaming: Logged in"
	MsgLoggedOut       = "BetterNaming: Logged out"
	MsgEnterAPIKey     = "Enter you OpenAI secret API key"
	MsgAPIKeyRequired  = "Please enter your OpenAI secret API key"
	MsgAPIKeyLocation  = "You can get your API key from https://platform.openai.com/account/api-keys"
	MsgPickName        = "Pick a name"
	outputPrefix       = "BetterNaming: "
	pendingRequestText = " Asking for names..."
)

// ErrMissingCredential is returned when no API key is stored and the user
// did not supply one.
var ErrMissingCredential = errors.New("couldn't get api key")

// Completer performs one completion round trip.
type Completer interface {
	CreateCompletion(ctx context.Context, req completion.Request) (*completion.Response, error)
}

// ClientFactory builds a Completer authenticated with apiKey.
type ClientFactory func(apiKey string) Completer

// Settings are the request parameters sent with every completion.
type Settings struct {
	Model       string
	Suggestions int
	MaxTokens   int
	// Temperature is omitted from requests when nil.
	Temperature *float64
}

// Commands holds the host primitives the actions drive.
type Commands struct {
	Secrets host.SecretStore
	// Editor may be nil when there is no active document.
	Editor    host.Editor
	UI        host.UI
	Output    host.OutputChannel
	Session   *naming.Session
	NewClient ClientFactory
	Settings  Settings

	// Busy, when set, is called while the completion request is pending and
	// returns a function that ends the busy indication.
	Busy func(message string) (stop func())
}

// Suggestion is the outcome of one completion round trip.
type Suggestion struct {
	Prompt string   `json:"prompt"`
	Names  []string `json:"names"`
}

// SuggestNames asks for names for the current selection, lets the user pick
// one and applies it to the selection.
func (c *Commands) SuggestNames(ctx context.Context) {
	apiKey, err := c.apiKey(ctx)
	if err != nil {
		logger.Error("no api key available", "error", err)
		c.UI.ShowInformationMessage(MsgSetAPIKey)
		return
	}

	sel, ok := c.selection()
	if !ok {
		c.UI.ShowInformationMessage(MsgSelectCode)
		return
	}
	input := sel.Text

	suggestion, err := c.Suggest(ctx, apiKey, input)
	if errors.Is(err, naming.ErrNoSuggestions) {
		c.UI.ShowInformationMessage(MsgNoSuggestions)
		return
	}
	if err != nil {
		c.fail(err)
		return
	}

	host.PrintChannelOutput(c.Output, outputPrefix+strings.Join(suggestion.Names, ","), true)

	var editErr error
	_, _, err = c.UI.ShowQuickPick(suggestion.Names, host.QuickPickOptions{
		Title:       MsgPickName,
		Placeholder: input,
		OnDidSelectItem: func(item string) {
			editErr = c.Editor.Replace(sel.Range, naming.ApplyName(input, item))
		},
	})
	if err == nil {
		err = editErr
	}
	if err != nil {
		c.fail(err)
	}
}

// Suggest runs one completion round trip for input. The session records
// input as the previous selection whether or not the request succeeds.
func (c *Commands) Suggest(ctx context.Context, apiKey, input string) (Suggestion, error) {
	defer c.Session.Remember(input)

	prompt := c.Session.Prompt(input)
	s := Suggestion{Prompt: prompt}

	stop := func() {}
	if c.Busy != nil {
		stop = c.Busy(pendingRequestText)
	}
	resp, err := c.NewClient(apiKey).CreateCompletion(ctx, completion.Request{
		Model:       c.Settings.Model,
		Prompt:      prompt,
		N:           c.Settings.Suggestions,
		MaxTokens:   c.Settings.MaxTokens,
		Temperature: c.Settings.Temperature,
	})
	stop()
	if err != nil {
		return s, fmt.Errorf("completion request: %w", err)
	}
	logger.Debug("completion received", "id", resp.ID, "choices", len(resp.Choices))

	names, err := naming.Parse(resp.Choices[0].Text)
	if err != nil {
		return s, err
	}
	if len(names) == 0 {
		return s, naming.ErrNoSuggestions
	}
	s.Names = names
	return s, nil
}

// SetAPIKey prompts for the API key and stores it. It returns the stored key,
// or "" when the user cancelled or storing failed.
func (c *Commands) SetAPIKey(ctx context.Context) string {
	value, ok, err := c.UI.ShowInputBox(host.InputBoxOptions{
		Title:          MsgEnterAPIKey,
		Placeholder:    MsgEnterAPIKey,
		Prompt:         MsgAPIKeyLocation,
		Password:       true,
		IgnoreFocusOut: true,
		ValidateInput:  validateAPIKey,
	})
	if err != nil {
		logger.Error("error setting api key", "error", err)
		return ""
	}
	apiKey := strings.TrimSpace(value)
	if !ok || apiKey == "" {
		logger.Info("api key prompt dismissed")
		return ""
	}

	if err := c.Secrets.Store(secrets.APIKeyName, apiKey); err != nil {
		logger.Error("error storing api key", "error", err)
		return ""
	}
	host.PrintChannelOutput(c.Output, MsgLoggedIn, true)
	return apiKey
}

// DeleteAPIKey removes the stored API key.
func (c *Commands) DeleteAPIKey(ctx context.Context) {
	if err := c.Secrets.Delete(secrets.APIKeyName); err != nil {
		logger.Error("error deleting api key", "error", err)
		return
	}
	host.PrintChannelOutput(c.Output, MsgLoggedOut, true)
}

// HasAPIKey reports whether a non-empty API key is stored.
func (c *Commands) HasAPIKey() (bool, error) {
	key, err := c.Secrets.Get(secrets.APIKeyName)
	if errors.Is(err, secrets.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return key != "", nil
}

// StoredAPIKey returns the stored API key or ErrMissingCredential.
func (c *Commands) StoredAPIKey() (string, error) {
	key, err := c.Secrets.Get(secrets.APIKeyName)
	if errors.Is(err, secrets.ErrNotFound) || (err == nil && key == "") {
		return "", ErrMissingCredential
	}
	return key, err
}

func validateAPIKey(value string) string {
	if strings.TrimSpace(value) == "" {
		return MsgAPIKeyRequired
	}
	return ""
}

// apiKey returns the stored key, prompting for one when none is stored.
func (c *Commands) apiKey(ctx context.Context) (string, error) {
	key, err := c.StoredAPIKey()
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, ErrMissingCredential) {
		return "", err
	}
	if key = c.SetAPIKey(ctx); key == "" {
		return "", ErrMissingCredential
	}
	return key, nil
}

func (c *Commands) selection() (host.Selection, bool) {
	if c.Editor == nil {
		return host.Selection{}, false
	}
	sel, err := c.Editor.Selection()
	if err != nil {
		logger.Warn("no active selection", "error", err)
		return host.Selection{}, false
	}
	if sel.IsEmpty() {
		return host.Selection{}, false
	}
	return sel, true
}

// fail reports err with one notification and one output channel line, and
// reveals the channel so the detail is visible next to the notification.
func (c *Commands) fail(err error) {
	c.UI.ShowErrorMessage(MsgSomethingWrong)
	host.PrintChannelOutput(c.Output, outputPrefix+err.Error(), true)
}
