package cli

import "github.com/spf13/cobra"

// Flags holds the command line flags shared by every command
type Flags struct {
	Workspace string
	DryRun    bool
	Json      bool
	Verbose   bool
	Versions  string
	Templates string
}

// Bind registers the flags as persistent flags of cmd.
func (f *Flags) Bind(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.Workspace, "workspace", "w", ".", "Path to the Angular workspace root")
	pf.BoolVar(&f.DryRun, "dry-run", false, "Print a diff of the changes instead of writing them")
	pf.BoolVar(&f.Json, "json", false, "Output results in JSON format")
	pf.BoolVarP(&f.Verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&f.Versions, "versions", "", "YAML file overriding the pinned package versions")
	pf.StringVar(&f.Templates, "templates", "", "Directory of config files to copy instead of the built-in set")
}
