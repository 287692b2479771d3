package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nvandessel/toonify/internal/mcp"
	"github.com/nvandessel/toonify/internal/store"
)

func newMCPServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp-server",
		Short: "Run toonify as an MCP (Model Context Protocol) server",
		Long: `Start an MCP server that exposes toonify functionality over stdio.

The MCP server allows AI tools to convert data without shelling out:

  • toon_encode          - Convert JSON text to TOON
  • toon_decode          - Convert TOON text to JSON
  • toon_validate        - Check TOON text for structural problems
  • toon_estimate_tokens - Estimate the token count of a text
  • toon_convert_file    - Convert a file on disk and record it in history

The server communicates via JSON-RPC 2.0 over stdin/stdout, following the
Model Context Protocol specification.

Example usage in an MCP client config.json:

  {
    "mcpServers": {
      "toonify": {
        "command": "toonify",
        "args": ["mcp-server"]
      }
    }
  }
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			var history store.HistoryStore
			sqliteHistory, err := openHistory(cmd, cfg)
			if err != nil {
				slog.Warn("conversion history unavailable", "error", err)
			} else if sqliteHistory != nil {
				history = sqliteHistory
			}

			server, err := mcp.NewServer(&mcp.Config{
				Name:    "toonify",
				Version: version,
				History: history,
			})
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}
			defer server.Close()

			// Run server (blocks until client disconnects or SIGTERM/SIGINT)
			if err := server.Run(cmd.Context()); err != nil {
				return fmt.Errorf("MCP server error: %w", err)
			}

			return nil
		},
	}

	return cmd
}
