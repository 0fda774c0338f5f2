package commands

import (
	"github.com/spf13/cobra"

	"github.com/mamaar/ngessentials/internal/cli"
)

// NewVersionCommand shows the application version
func NewVersionCommand(app *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the ng-essentials version",
		Args:  cli.UsageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, _ []string) {
			cli.ShowVersion(cmd.OutOrStdout())
		},
	}
}
