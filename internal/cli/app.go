package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mamaar/ngessentials/pkg/essentials"
	"github.com/mamaar/ngessentials/pkg/tree"
	"github.com/mamaar/ngessentials/pkg/types"
	"github.com/mamaar/ngessentials/pkg/versions"
)

// App represents the ng-essentials application
type App struct {
	Flags  *Flags
	Out    io.Writer
	ErrOut io.Writer
	root   *cobra.Command
}

// NewApp creates the root command and binds the global flags.
func NewApp(out, errOut io.Writer) *App {
	app := &App{Flags: &Flags{}, Out: out, ErrOut: errOut}
	app.root = &cobra.Command{
		Use:   "ng-essentials",
		Short: "Apply the ng-essentials preset to an Angular workspace",
		Long: `ng-essentials pins package versions, replaces the lint rules, removes the
protractor scaffold and registers environment providers in an existing
Angular workspace. Changes are staged in memory and written only when the
whole preset succeeds.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	app.root.SetOut(out)
	app.root.SetErr(errOut)
	app.root.SetVersionTemplate("ng-essentials version {{.Version}}\n")
	app.root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return types.WrapError(types.UsageError, "", err.Error(), err)
	})
	app.Flags.Bind(app.root)
	return app
}

// RegisterCommand adds a subcommand
func (app *App) RegisterCommand(cmds ...*cobra.Command) {
	app.root.AddCommand(cmds...)
}

// Execute runs the command line args.
func (app *App) Execute(ctx context.Context, args []string) error {
	app.root.SetArgs(args)
	return app.root.ExecuteContext(ctx)
}

// Logger returns a text logger on ErrOut, at debug level with --verbose.
func (app *App) Logger() *slog.Logger {
	level := slog.LevelInfo
	if app.Flags.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(app.ErrOut, &slog.HandlerOptions{Level: level}))
}

// CreateEngineWithFlags builds an engine from --versions and --templates.
func (app *App) CreateEngineWithFlags(logger *slog.Logger) (*essentials.Engine, error) {
	table := versions.Default()
	if app.Flags.Versions != "" {
		loaded, err := versions.Load(app.Flags.Versions)
		if err != nil {
			return nil, err
		}
		table = loaded
	}

	var tmpl fs.FS
	if app.Flags.Templates != "" {
		info, err := os.Stat(app.Flags.Templates)
		if err != nil {
			return nil, types.WrapError(types.UsageError, app.Flags.Templates, "cannot open templates directory", err)
		}
		if !info.IsDir() {
			return nil, types.NewError(types.UsageError, app.Flags.Templates, "templates must be a directory")
		}
		tmpl = os.DirFS(app.Flags.Templates)
	}
	return essentials.NewEngine(table, tmpl, logger), nil
}

// WorkspaceTree opens a staging tree over the workspace named by args[0],
// falling back to --workspace.
func (app *App) WorkspaceTree(args []string) (*tree.Tree, string, error) {
	dir := app.Flags.Workspace
	if len(args) > 0 {
		dir = args[0]
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

// UsageArgs wraps a positional argument validator so its failures map to
// the usage exit code.
func UsageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return types.WrapError(types.UsageError, "", err.Error(), err)
		}
		return nil
	}
}
