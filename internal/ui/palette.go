// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"errors"

	"better-naming/internal/commands"

	"github.com/charmbracelet/huh"
)

// ErrPaletteDismissed is returned when the user leaves the palette without
// choosing a command.
var ErrPaletteDismissed = errors.New("no command chosen")

// paletteOptions builds one option per registered command.
func paletteOptions(cmds []commands.Command) []huh.Option[string] {
	opts := make([]huh.Option[string], len(cmds))
	for i, c := range cmds {
		opts[i] = huh.NewOption(c.Title, c.ID)
	}
	return opts
}

// PickCommand shows the registered commands and returns the chosen ID.
func (u *TerminalUI) PickCommand(cmds []commands.Command) (string, error) {
	var id string
	sel := huh.NewSelect[string]().
		Title("BetterNaming").
		Description("Run a command").
		Options(paletteOptions(cmds)...).
		Value(&id)

	form := huh.NewForm(huh.NewGroup(sel)).
		WithShowHelp(true).
		WithOutput(u.out)
	if u.in != nil {
		form = form.WithInput(u.in)
	}
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrPaletteDismissed
		}
		return "", err
	}
	if id == "" {
		return "", ErrPaletteDismissed
	}
	return id, nil
}
