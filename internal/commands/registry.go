// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package commands

import (
	"context"
	"fmt"
)

// Command identifiers, as an editor would bind them.
const (
	SuggestNamesID = "betterNaming.suggestNames"
	SetAPIKeyID    = "betterNaming.setApiKey"
	DeleteAPIKeyID = "betterNaming.deleteApiKey"
)

// Handler runs a command. Commands take no arguments and return nothing;
// their effects are UI side effects.
type Handler func(ctx context.Context)

// Command describes a registered command.
type Command struct {
	ID    string
	Title string
}

// Registry maps command identifiers to handlers, preserving registration
// order for display.
type Registry struct {
	order    []Command
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a command. Registering an identifier twice is an error.
func (r *Registry) Register(id, title string, h Handler) error {
	if _, exists := r.handlers[id]; exists {
		return fmt.Errorf("command %q already registered", id)
	}
	r.handlers[id] = h
	r.order = append(r.order, Command{ID: id, Title: title})
	return nil
}

// Execute runs the command registered under id.
func (r *Registry) Execute(ctx context.Context, id string) error {
	h, ok := r.handlers[id]
	if !ok {
		return fmt.Errorf("command %q not found", id)
	}
	h(ctx)
	return nil
}

// Commands lists registered commands in registration order.
func (r *Registry) Commands() []Command {
	out := make([]Command, len(r.order))
	copy(out, r.order)
	return out
}

// Activate registers the three naming commands backed by c.
func Activate(c *Commands) *Registry {
	r := NewRegistry()
	// The identifiers are distinct constants, so registration cannot fail.
	_ = r.Register(SuggestNamesID, "Suggest names for the selection", c.SuggestNames)
	_ = r.Register(SetAPIKeyID, "Set OpenAI API key", func(ctx context.Context) { c.SetAPIKey(ctx) })
	_ = r.Register(DeleteAPIKeyID, "Delete OpenAI API key", c.DeleteAPIKey)
	return r
}
