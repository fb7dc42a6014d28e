// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"better-naming/internal/api"

	"github.com/spf13/cobra"
)

const serveCmdName = "serve"

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   serveCmdName,
	Short: "Start the local API server for editor plugins",
	Long: `Starts an HTTP server that exposes name suggestions and API key management
as a JSON API. Listens on serve_addr from the configuration unless --addr is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Requests run concurrently and the server logs to stderr.
		a, err := newApp(cfg, nil, nil)
		if err != nil {
			return err
		}
		defer a.Close()

		addr := cfg.ServeAddr
		if serveAddr != "" {
			addr = serveAddr
		}
		statusColor.Printf("Starting API server on %s\n", identifierColor.Sprint(addr))
		return api.NewServer(a.cmds).ListenAndServe(cmd.Context(), addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}
