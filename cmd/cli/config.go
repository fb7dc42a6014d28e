// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"os"
	"strings"

	"better-naming/internal/commands"
	"better-naming/internal/config"
	"better-naming/internal/secrets"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// dimColor is used for less important/secondary text in the CLI output
var dimColor = color.New(color.Faint)

// configCmd is the parent command for all configuration-related subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage better-naming configuration",
	Long: `Provides subcommands to show and change the better-naming configuration:
the completion endpoint and model, the number of suggestions, the secret
store backend and the API server address.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show every setting and where the API key is kept",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to determine config path: %w", err)
		}
		fmt.Printf("Config file: %s\n\n", identifierColor.Sprint(path))

		defaults := config.Default()
		for _, key := range config.Keys {
			value, _ := cfg.Get(key)
			def, _ := defaults.Get(key)
			line := fmt.Sprintf("  %-16s %s", key, value)
			if value == def {
				line += dimColor.Sprint(" (default)")
			}
			fmt.Println(line)
		}

		if effective := effectiveOverrides(); len(effective) > 0 {
			fmt.Println()
			fmt.Println("Environment overrides:")
			for _, o := range effective {
				fmt.Printf("  %-16s %s\n", o[0], o[1])
			}
		}

		fmt.Println()
		store, err := secrets.Open(cfg)
		if err != nil {
			return fmt.Errorf("failed to open secret store: %w", err)
		}
		c := &commands.Commands{Secrets: store}
		ok, err := c.HasAPIKey()
		switch {
		case err != nil:
			errorColor.Printf("API key: could not be read (%v)\n", err)
		case ok:
			successColor.Printf("API key: stored in %s\n", cfg.SecretBackend)
		default:
			fmt.Printf("API key: not set %s\n", dimColor.Sprint("(run 'bn set-key')"))
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print a single setting",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: configKeyCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := cfg.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a single setting",
	Long: `Changes a single setting and saves the configuration file.
Valid keys: ` + strings.Join(config.Keys, ", "),
	Example:           "  bn config set model gpt-3.5-turbo-instruct\n  bn config set suggestions 5\n  bn config set secret_backend file",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: configKeyCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		// Start from the file, not the env-adjusted settings in cfg.
		fileCfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := fileCfg.Set(key, value); err != nil {
			return err
		}
		if err := config.SaveConfig(fileCfg); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}

		saved, _ := fileCfg.Get(key)
		successColor.Printf("%s set to: %s\n", key, saved)
		if key == "secret_backend" {
			fmt.Println("\nTip: the API key is not moved between backends. Run 'bn set-key' to store it in the new one.")
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path of the configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to determine config path: %w", err)
		}
		fmt.Println(path)
		return nil
	},
}

// effectiveOverrides lists the BN_* variables that change a setting.
func effectiveOverrides() [][2]string {
	var out [][2]string
	for _, name := range []string{"BN_BASE_URL", "BN_MODEL", "BN_SUGGESTIONS", "BN_LOG_LEVEL", "BN_CONFIG_DIR"} {
		if v := os.Getenv(name); v != "" {
			out = append(out, [2]string{name, v})
		}
	}
	return out
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	// Add the config command to root
	rootCmd.AddCommand(configCmd)
}
