package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// VersionsURI names the resource that serves the pinned version table.
const VersionsURI = "essentials://versions"

func registerVersionResources(srv *server.MCPServer, state *Server) {
	versions := mcp.NewResource(VersionsURI,
		"Pinned Versions",
		mcp.WithResourceDescription("Package versions and resolutions the preset writes to package.json"),
		mcp.WithMIMEType("application/json"),
	)
	srv.AddResource(versions, state.handleVersions)
}

func (s *Server) handleVersions(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(s.engine.Versions(), "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      VersionsURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
