package commands

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mamaar/ngessentials/internal/cli"
	"github.com/mamaar/ngessentials/pkg/versions"
)

// NewVersionsCommand prints the effective version table
func NewVersionsCommand(app *cli.App) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "Print the package versions the preset pins",
		Long: `Print the effective version table as YAML. The output can be edited and
passed back with --versions to pin different versions.`,
		Args: cli.UsageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := versions.Default()
			if app.Flags.Versions != "" {
				loaded, err := versions.Load(app.Flags.Versions)
				if err != nil {
					return err
				}
				table = loaded
			}

			w := cmd.OutOrStdout()
			if app.Flags.Json {
				return OutputJSON(w, table)
			}
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(table); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
