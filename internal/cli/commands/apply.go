package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mamaar/ngessentials/internal/cli"
	"github.com/mamaar/ngessentials/pkg/types"
)

type applyResult struct {
	*types.Report
	Workspace string `json:"workspace"`
	DryRun    bool   `json:"dry_run"`
	Diff      string `json:"diff,omitempty"`
}

// NewApplyCommand runs the preset against a workspace
func NewApplyCommand(app *cli.App) *cobra.Command {
	var opts types.Options

	cmd := &cobra.Command{
		Use:   "apply [path]",
		Short: "Apply the preset to an Angular workspace",
		Long: `Apply pins dependency versions, rewrites tslint.json, clears the tsconfig
path aliases, creates .vscode/launch.json, copies editor config files and,
when the workspace has a default application, removes the protractor
scaffold and registers ENV_PROVIDERS in src/app/app.module.ts.

With --first-run=false nothing is changed.`,
		Example: `  ng-essentials apply ./my-app
  ng-essentials apply --jest --dry-run`,
		Args: cli.UsageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := app.Logger()

			t, dir, err := app.WorkspaceTree(args)
			if err != nil {
				return err
			}
			engine, err := app.CreateEngineWithFlags(logger)
			if err != nil {
				return err
			}

			logger.Debug("applying preset", "workspace", dir, "jest", opts.Jest, "cypress", opts.Cypress, "first_run", opts.FirstRun)
			report, err := engine.Apply(cmd.Context(), t, opts)
			if err != nil {
				return err
			}

			result := applyResult{Report: report, Workspace: dir, DryRun: app.Flags.DryRun}
			if app.Flags.DryRun {
				result.Diff = t.Diff()
			} else if err := t.Commit(cmd.Context()); err != nil {
				return err
			}

			return writeApplyResult(cmd.OutOrStdout(), app.Flags, result)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.FirstRun, "first-run", true, "Run the preset; false skips every step")
	f.BoolVar(&opts.Jest, "jest", false, "The workspace uses Jest; skips launch.json")
	f.BoolVar(&opts.Cypress, "cypress", false, "The workspace uses Cypress")
	return cmd
}

func writeApplyResult(w io.Writer, flags *cli.Flags, result applyResult) error {
	if flags.Json {
		return OutputJSON(w, result)
	}
	if result.Diff != "" {
		fmt.Fprint(w, result.Diff)
		fmt.Fprintln(w)
	}
	PrintReport(w, result.Report, flags.Verbose, result.DryRun)
	return nil
}
