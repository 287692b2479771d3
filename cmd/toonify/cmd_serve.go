package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/toonify/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the TOON converter over HTTP",
		Long: `Start an HTTP API exposing the converter:

  GET  /health
  POST /v1/encode    {"input": "<json>", "compact": false}
  POST /v1/decode    {"input": "<toon>"}
  POST /v1/validate  {"input": "<toon>"}
  POST /v1/tokens    {"input": "<text>"}

The port and CORS origins come from configuration (server.port,
server.cors_origins) or TOONIFY_PORT and TOONIFY_CORS_ORIGINS.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port, _ = cmd.Flags().GetString("port")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := server.New(cfg.Server).Start(cmd.Context()); err != nil {
				return fmt.Errorf("HTTP server error: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("port", "", "Port to listen on (overrides configuration)")

	return cmd
}
