package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mamaar/ngessentials/pkg/types"
)

// ApplyResult is the structured output of apply_essentials.
type ApplyResult struct {
	*types.Report
	Workspace string `json:"workspace"`
	DryRun    bool   `json:"dry_run"`
	Diff      string `json:"diff,omitempty"`
}

// StatusResult is the structured output of essentials_status.
type StatusResult struct {
	Workspace      string `json:"workspace"`
	Applied        bool   `json:"applied"`
	Jest           bool   `json:"jest"`
	Cypress        bool   `json:"cypress"`
	DefaultProject string `json:"default_project,omitempty"`
}

// textResult marshals v to indented JSON and wraps it in a text result.
func textResult(v any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err))
	}
	return mcp.NewToolResultText(string(b))
}

// errorResult reports err to the client with its kind so callers can tell a
// bad path from a malformed workspace.
func errorResult(action string, err error) *mcp.CallToolResult {
	if kind, ok := types.KindOf(err); ok {
		return mcp.NewToolResultError(fmt.Sprintf("%s failed (%s): %v", action, kind, err))
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", action, err))
}
