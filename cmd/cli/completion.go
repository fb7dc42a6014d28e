// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"strings"

	"better-naming/internal/config"

	"github.com/spf13/cobra"
)

// configValueHints suggests values for settings with a fixed set of choices.
var configValueHints = map[string][]string{
	"secret_backend": {config.SecretBackendKeyring, config.SecretBackendFile, config.SecretBackendMemory},
	"log_level":      {"debug", "info", "warn", "error"},
}

// configKeyCompletionFunc completes the key argument of "config get|set" and,
// for "config set", the value of keys with a fixed set of choices.
func configKeyCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return filterPrefix(config.Keys, toComplete), cobra.ShellCompDirectiveNoFileComp
	case 1:
		if cmd.Name() != "set" {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return filterPrefix(configValueHints[args[0]], toComplete), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func filterPrefix(candidates []string, prefix string) []string {
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}
