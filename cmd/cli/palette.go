// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"errors"
	"fmt"
	"os"

	"better-naming/internal/ui"

	"github.com/spf13/cobra"
)

var listCommands bool

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Pick a command from a palette and run it",
	Long: `Shows the registered commands in a palette and runs the chosen one.
This is what bn does when started without arguments.

With --list, prints the command identifiers instead, for binding them in an
editor.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ed, err := editorFromFlags(cmd)
		if err != nil {
			return err
		}
		a, err := newApp(cfg, ed.editor, os.Stderr)
		if err != nil {
			return err
		}
		defer a.Close()

		if listCommands {
			for _, c := range a.registry.Commands() {
				fmt.Printf("%s  %s\n", identifierColor.Sprint(c.ID), c.Title)
			}
			return nil
		}

		id, err := a.ui.PickCommand(a.registry.Commands())
		if errors.Is(err, ui.ErrPaletteDismissed) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := a.registry.Execute(cmd.Context(), id); err != nil {
			return err
		}
		return ed.flush()
	},
}

func init() {
	editorFlags(commandsCmd)
	commandsCmd.Flags().BoolVarP(&listCommands, "list", "l", false, "print command identifiers and exit")
}
