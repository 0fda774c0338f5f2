package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mamaar/ngessentials/pkg/types"
	"github.com/mamaar/ngessentials/pkg/workspace"
)

func registerPresetTools(srv *server.MCPServer, state *Server) {
	applyTool := mcp.NewTool("apply_essentials",
		mcp.WithDescription("Apply the ng-essentials preset to an Angular workspace on disk"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Workspace root containing angular.json"),
		),
		mcp.WithBoolean("jest",
			mcp.Description("The workspace uses Jest; launch.json is not created"),
			mcp.DefaultBool(false),
		),
		mcp.WithBoolean("cypress",
			mcp.Description("The workspace uses Cypress"),
			mcp.DefaultBool(false),
		),
		mcp.WithBoolean("first_run",
			mcp.Description("Run the preset; false changes nothing"),
			mcp.DefaultBool(true),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Return a unified diff instead of writing files"),
			mcp.DefaultBool(false),
		),
	)
	srv.AddTool(applyTool, state.handleApply)

	statusTool := mcp.NewTool("essentials_status",
		mcp.WithDescription("Report whether the preset options block exists in angular.json"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Workspace root containing angular.json"),
		),
	)
	srv.AddTool(statusTool, state.handleStatus)
}

func boolArg(args map[string]any, name string, def bool) bool {
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

func (s *Server) handleApply(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	path, _ := args["path"].(string)
	opts := types.Options{
		FirstRun: boolArg(args, "first_run", true),
		Jest:     boolArg(args, "jest", false),
		Cypress:  boolArg(args, "cypress", false),
	}
	dryRun := boolArg(args, "dry_run", false)

	s.mu.Lock()
	defer s.mu.Unlock()

	t, dir, err := openWorkspace(path)
	if err != nil {
		return errorResult("apply", err), nil
	}

	s.logger.Info("apply_essentials", "workspace", dir, "dry_run", dryRun)
	report, err := s.engine.Apply(ctx, t, opts)
	if err != nil {
		return errorResult("apply", err), nil
	}

	result := ApplyResult{Report: report, Workspace: dir, DryRun: dryRun}
	if dryRun {
		result.Diff = t.Diff()
	} else if err := t.Commit(ctx); err != nil {
		return errorResult("apply", err), nil
	}
	return textResult(result), nil
}

func (s *Server) handleStatus(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, _ := request.GetArguments()["path"].(string)

	t, dir, err := openWorkspace(path)
	if err != nil {
		return errorResult("status", err), nil
	}
	opts, applied, err := workspace.PresetOptions(t)
	if err != nil {
		return errorResult("status", err), nil
	}
	project, err := workspace.DefaultProjectName(t)
	if err != nil {
		return errorResult("status", err), nil
	}

	return textResult(StatusResult{
		Workspace:      dir,
		Applied:        applied,
		Jest:           opts.Jest,
		Cypress:        opts.Cypress,
		DefaultProject: project,
	}), nil
}
