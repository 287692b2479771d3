// Package mcp exposes the TOON codec as Model Context Protocol tools.
package mcp

import (
	"context"
	"log/slog"
	"sync"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nvandessel/toonify/internal/store"
)

// Config configures the MCP server.
type Config struct {
	Name    string
	Version string

	// History records file conversions. Nil disables recording.
	History store.HistoryStore
}

// Server wraps the SDK server and the resources its tools use.
type Server struct {
	server    *sdk.Server
	history   store.HistoryStore
	closeOnce sync.Once
	closeErr  error
}

// NewServer creates a server with every tool registered. The server takes
// ownership of cfg.History and closes it in Close.
func NewServer(cfg *Config) (*Server, error) {
	impl := &sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}

	s := &Server{
		server:  sdk.NewServer(impl, nil),
		history: cfg.History,
	}
	s.registerTools()
	return s, nil
}

// Run serves over stdin/stdout until the client disconnects or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("mcp server starting", "transport", "stdio")
	defer slog.Info("mcp server stopped")
	return s.server.Run(ctx, &sdk.StdioTransport{})
}

// Close releases the history store. Safe to call more than once.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		if s.history != nil {
			s.closeErr = s.history.Close()
		}
	})
	return s.closeErr
}
