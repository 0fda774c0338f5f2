package essentials

import (
	"context"

	"github.com/mamaar/ngessentials/pkg/manifest"
	"github.com/mamaar/ngessentials/pkg/templates"
	"github.com/mamaar/ngessentials/pkg/tree"
	"github.com/mamaar/ngessentials/pkg/types"
	"github.com/mamaar/ngessentials/pkg/workspace"
)

var (
	removedDevDependencies = []string{"@types/jasminewd2", "protractor"}

	dependencies = []string{
		"@angular/animations",
		"@angular/common",
		"@angular/compiler",
		"@angular/core",
		"@angular/forms",
		"@angular/platform-browser",
		"@angular/platform-browser-dynamic",
		"@angular/router",
		"rxjs",
		"tslib",
		"zone.js",
	}

	devDependencies = []string{
		"@angular-devkit/build-angular",
		"@angular/cli",
		"@angular/compiler-cli",
		"@angular/language-service",
		"@types/node",
		"codelyzer",
		"ts-node",
		"tslint",
		"typescript",
		"prettier",
		"tslint-angular",
		"tslint-config-prettier",
	}

	resolutions = []string{"acorn", "kind-of", "minimist"}

	scripts = []struct{ name, command string }{
		{"preinstall", "npx npm-force-resolutions"},
		{"format", `prettier --write "./**/*{.ts,.js,.json,.css,.scss}"`},
	}
)

type runFunc = func(ctx context.Context, t *tree.Tree) error

func step(name string, run runFunc) Step {
	return Step{Name: name, run: run}
}

// gated returns a no-op placeholder when enabled is false.
func gated(enabled bool, name string, run runFunc) Step {
	if !enabled {
		return Step{Name: name, Skip: true, run: func(context.Context, *tree.Tree) error { return nil }}
	}
	return step(name, run)
}

func (e *Engine) steps(app, prefix string, opts types.Options) ([]Step, error) {
	hasApp := app != ""

	steps := []Step{
		step("add default collection", func(_ context.Context, t *tree.Tree) error {
			return workspace.AddDefaultCollection(t)
		}),
		step("add preset options", func(_ context.Context, t *tree.Tree) error {
			return workspace.AddPresetOptions(t, opts)
		}),
	}

	for _, name := range removedDevDependencies {
		steps = append(steps, step("remove devDependency "+name, func(_ context.Context, t *tree.Tree) error {
			return manifest.RemovePackage(t, manifest.DevDependencies, name)
		}))
	}
	steps = append(steps,
		step("remove script e2e", func(_ context.Context, t *tree.Tree) error {
			return manifest.RemoveScript(t, "e2e")
		}),
		step("remove automatic update symbols", func(_ context.Context, t *tree.Tree) error {
			return manifest.RemoveAutomaticUpdateSymbols(t)
		}),
		step("remove dependency @angular/http", func(_ context.Context, t *tree.Tree) error {
			return manifest.RemovePackage(t, manifest.Dependencies, "@angular/http")
		}),
	)

	pins := []struct {
		section manifest.Section
		names   []string
		lookup  func(string) (string, bool)
	}{
		{manifest.Dependencies, dependencies, e.table.Essential},
		{manifest.DevDependencies, devDependencies, e.table.Essential},
		{manifest.Resolutions, resolutions, e.table.Resolution},
	}
	for _, pin := range pins {
		for _, name := range pin.names {
			version, ok := pin.lookup(name)
			if !ok {
				return nil, types.NewError(types.InvalidVersion, "", "no %s version for %s", pin.section, name)
			}
			section := pin.section
			steps = append(steps, step("add "+string(section)+" "+name+"@"+version, func(_ context.Context, t *tree.Tree) error {
				return manifest.AddPackage(t, section, name, version)
			}))
		}
	}

	for _, s := range scripts {
		steps = append(steps, step("add script "+s.name, func(_ context.Context, t *tree.Tree) error {
			return manifest.AddScript(t, s.name, s.command)
		}))
	}

	steps = append(steps,
		step("edit tslint.json", func(_ context.Context, t *tree.Tree) error {
			return workspace.EditTSLint(t, prefix)
		}),
		step("edit tsconfig.json", func(_ context.Context, t *tree.Tree) error {
			return workspace.EditTSConfig(t)
		}),
		step("create launch.json", func(_ context.Context, t *tree.Tree) error {
			return templates.CreateLaunchJSON(t, opts)
		}),
		step("copy config files", func(_ context.Context, t *tree.Tree) error {
			copied, err := templates.CopyConfigFiles(t, e.templates)
			if err == nil {
				e.logger.Debug("copied config files", "files", copied)
			}
			return err
		}),
		gated(hasApp, "remove e2e tsConfig", func(_ context.Context, t *tree.Tree) error {
			return workspace.RemoveEndToEndTsConfig(t, app)
		}),
		gated(hasApp, "remove e2e files", func(_ context.Context, t *tree.Tree) error {
			removed, err := templates.RemoveEndToEndTestFiles(t)
			if err == nil {
				e.logger.Debug("removed e2e files", "files", removed)
			}
			return err
		}),
		gated(hasApp, "remove architect target e2e", func(_ context.Context, t *tree.Tree) error {
			return workspace.RemoveArchitectTarget(t, app, "e2e")
		}),
		gated(hasApp, "update development environment", func(_ context.Context, t *tree.Tree) error {
			return templates.UpdateDevelopmentEnvironment(t, SourceDir)
		}),
		gated(hasApp, "update production environment", func(_ context.Context, t *tree.Tree) error {
			return templates.UpdateProductionEnvironment(t, SourceDir)
		}),
		gated(hasApp, "add ENV_PROVIDERS to app module", func(ctx context.Context, t *tree.Tree) error {
			return e.parser.AddEnvProviders(ctx, t, SourceDir)
		}),
	)
	return steps, nil
}
