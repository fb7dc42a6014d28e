// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"better-naming/internal/commands"
	"better-naming/internal/config"
	"better-naming/internal/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfg             config.Config
	ephemeral       bool
	statusColor     = color.New(color.FgCyan)
	errorColor      = color.New(color.FgRed)
	successColor    = color.New(color.FgGreen)
	identifierColor = color.New(color.FgBlue)
)

var rootCmd = &cobra.Command{
	Use:   "bn",
	Short: "BetterNaming CLI",
	Long: `Suggests better identifier names for a selected block of code.

The selection is sent to an OpenAI-compatible completion API, the suggested
names are offered in a list, and the picked name replaces the placeholder
identifier (foo) in the selection. The API key is kept in the OS keyring.
Settings are read from ~/.config/better-naming/config.yaml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.EnsureConfigDir(); err != nil {
			return fmt.Errorf("failed to ensure config directory: %w", err)
		}
		loaded, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if ephemeral {
			loaded.SecretBackend = config.SecretBackendMemory
		}
		cfg = loaded
		// Everything except the API server draws prompts on the terminal.
		logger.InitLogger(cmd.Name() != serveCmdName, config.ResolveLogLevel(cfg))
		return nil
	},
}

// RunCLI executes the command line and exits non-zero on failure.
func RunCLI() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError reports a command failure. Logging may be going only to the log
// file, so failures are always printed.
func printError(w io.Writer, err error) {
	errorColor.Fprintf(w, "Error: %v\n", err)
}

// RunPalette runs the command palette as if "bn commands" had been typed.
func RunPalette() {
	rootCmd.SetArgs([]string{commandsCmd.Name()})
	RunCLI()
}

// runCommand builds the app around the editor described by the flags and
// executes one registered command.
func runCommand(cmd *cobra.Command, id string) error {
	ed, err := editorFromFlags(cmd)
	if err != nil {
		return err
	}
	a, err := newApp(cfg, ed.editor, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.registry.Execute(cmd.Context(), id); err != nil {
		return err
	}
	return ed.flush()
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Prompt for the OpenAI API key and store it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, commands.SetAPIKeyID)
	},
}

var deleteKeyCmd = &cobra.Command{
	Use:   "delete-key",
	Short: "Remove the stored OpenAI API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, commands.DeleteAPIKeyID)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep the API key in memory for this run only")

	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(setKeyCmd)
	rootCmd.AddCommand(deleteKeyCmd)
	rootCmd.AddCommand(commandsCmd)
}
