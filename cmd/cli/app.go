// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"os"

	"better-naming/internal/commands"
	"better-naming/internal/completion"
	"better-naming/internal/config"
	"better-naming/internal/host"
	"better-naming/internal/naming"
	"better-naming/internal/secrets"
	"better-naming/internal/ui"
)

// outputChannelName labels lines printed by the output channel.
const outputChannelName = "BetterNaming"

// app bundles the pieces every subcommand works with.
type app struct {
	cfg      config.Config
	ui       *ui.TerminalUI
	output   *ui.OutputChannel
	cmds     *commands.Commands
	registry *commands.Registry
}

// newApp wires the commands to the terminal UI, the configured secret store
// and the completion client. editor may be nil, and so may spinnerOut, which
// turns the busy indicator off.
func newApp(cfg config.Config, editor host.Editor, spinnerOut *os.File) (*app, error) {
	store, err := secrets.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open secret store: %w", err)
	}

	term := ui.NewTerminalUI()
	output := ui.NewOutputChannel(outputChannelName, os.Stderr)
	cmds := &commands.Commands{
		Secrets:   store,
		Editor:    editor,
		UI:        term,
		Output:    output,
		Session:   naming.NewSession(),
		NewClient: clientFactory(cfg),
		Settings:  settingsFromConfig(cfg),
		Busy:      busyIndicator(spinnerOut),
	}
	return &app{
		cfg:      cfg,
		ui:       term,
		output:   output,
		cmds:     cmds,
		registry: commands.Activate(cmds),
	}, nil
}

func (a *app) Close() {
	if err := a.ui.Close(); err != nil {
		errorColor.Fprintf(os.Stderr, "Error closing terminal: %v\n", err)
	}
}

func busyIndicator(f *os.File) func(message string) func() {
	if f == nil {
		return nil
	}
	return ui.Busy(f)
}

// clientFactory builds completion clients for the configured endpoint.
func clientFactory(cfg config.Config) commands.ClientFactory {
	baseURL := config.ResolveBaseURL(cfg)
	timeout := cfg.Timeout()
	return func(apiKey string) commands.Completer {
		return completion.NewClient(baseURL, apiKey, completion.WithTimeout(timeout))
	}
}

func settingsFromConfig(cfg config.Config) commands.Settings {
	return commands.Settings{
		Model:       config.ResolveModel(cfg),
		Suggestions: config.ResolveSuggestions(cfg),
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}
}
