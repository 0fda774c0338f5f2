// Package mcp exposes the preset over the Model Context Protocol.
package mcp

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mamaar/ngessentials/pkg/essentials"
	"github.com/mamaar/ngessentials/pkg/tree"
	"github.com/mamaar/ngessentials/pkg/types"
)

// Server holds the shared state for the MCP tool handlers.
type Server struct {
	// mu serializes runs; two presets staged against the same directory
	// would overwrite each other on commit.
	mu     sync.Mutex
	engine *essentials.Engine
	logger *slog.Logger
}

// NewServer creates a Server that runs engine.
func NewServer(engine *essentials.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if engine == nil {
		engine = essentials.NewEngine(nil, nil, logger)
	}
	return &Server{engine: engine, logger: logger}
}

// MCPServer builds a protocol server with every tool and resource registered.
func (s *Server) MCPServer(name, version string) *server.MCPServer {
	srv := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
		server.WithLogging(),
		server.WithRecovery(),
	)
	RegisterAll(srv, s)
	return srv
}

// openWorkspace returns a staging tree over dir, which must be an existing
// directory.
func openWorkspace(dir string) (*tree.Tree, string, error) {
	if dir == "" {
		return nil, "", types.NewError(types.UsageError, "", "path is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", types.WrapError(types.UsageError, dir, "invalid workspace path", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", types.NewError(types.UsageError, abs, "workspace does not exist")
		}
		return nil, "", types.WrapError(types.FileSystemError, abs, "cannot open workspace", err)
	}
	if !info.IsDir() {
		return nil, "", types.NewError(types.UsageError, abs, "workspace is not a directory")
	}
	return tree.New(tree.NewOSHost(abs)), abs, nil
}
