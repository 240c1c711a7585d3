// Package mcp exposes encounter generation as Model Context Protocol tools
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/KirkDiggler/encounter-forge/internal/errors"
	"github.com/KirkDiggler/encounter-forge/internal/orchestrators/encounter"
)

// Config holds dependencies for the MCP server
type Config struct {
	Service encounter.Service
	Version string
}

// Validate ensures all required dependencies are present
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.Service == nil {
		vb.RequiredField("service")
	}
	return vb.Build()
}

// Server wraps an MCP server with the encounter tools registered
type Server struct {
	service encounter.Service
	mcp     *sdk.Server
}

// NewServer creates an MCP server and registers its tools
func NewServer(cfg *Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		service: cfg.Service,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "encounter-forge",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s, nil
}

// Run serves the tools over transport until ctx is done or the client disconnects
func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}

// Connect starts a session over transport without blocking
func (s *Server) Connect(ctx context.Context, transport sdk.Transport) (*sdk.ServerSession, error) {
	return s.mcp.Connect(ctx, transport, nil)
}
