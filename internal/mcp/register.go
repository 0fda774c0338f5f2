package mcp

import "github.com/mark3labs/mcp-go/server"

// RegisterAll wires every ng-essentials tool and resource into srv.
func RegisterAll(srv *server.MCPServer, state *Server) {
	registerPresetTools(srv, state)
	registerVersionResources(srv, state)
}
