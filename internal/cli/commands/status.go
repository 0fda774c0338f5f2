package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mamaar/ngessentials/internal/cli"
	"github.com/mamaar/ngessentials/pkg/workspace"
)

type statusResult struct {
	Workspace      string `json:"workspace"`
	Applied        bool   `json:"applied"`
	Jest           bool   `json:"jest"`
	Cypress        bool   `json:"cypress"`
	DefaultProject string `json:"default_project,omitempty"`
}

// NewStatusCommand reports whether the preset block exists in angular.json
func NewStatusCommand(app *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:   "status [path]",
		Short: "Show whether the preset was applied to a workspace",
		Args:  cli.UsageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, dir, err := app.WorkspaceTree(args)
			if err != nil {
				return err
			}
			opts, applied, err := workspace.PresetOptions(t)
			if err != nil {
				return err
			}
			project, err := workspace.DefaultProjectName(t)
			if err != nil {
				return err
			}

			result := statusResult{
				Workspace:      dir,
				Applied:        applied,
				Jest:           opts.Jest,
				Cypress:        opts.Cypress,
				DefaultProject: project,
			}
			w := cmd.OutOrStdout()
			if app.Flags.Json {
				return OutputJSON(w, result)
			}

			fmt.Fprintf(w, "Workspace: %s\n", dir)
			if project != "" {
				fmt.Fprintf(w, "Default project: %s\n", project)
			}
			if !applied {
				fmt.Fprintln(w, "Preset: not applied")
				return nil
			}
			fmt.Fprintf(w, "Preset: applied (jest=%t, cypress=%t)\n", opts.Jest, opts.Cypress)
			return nil
		},
	}
}
