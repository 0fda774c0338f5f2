package analysis

import (
	"context"
	"path"

	"github.com/mamaar/ngessentials/pkg/tree"
	"github.com/mamaar/ngessentials/pkg/types"
)

const (
	EnvProvidersSymbol = "ENV_PROVIDERS"
	// Relative to src/app/app.module.ts
	EnvProvidersImport = "../environments/environment"
	ngModuleDecorator  = "NgModule"
)

// AppModulePath returns the root module of the application under srcDir
func AppModulePath(srcDir string) string {
	return path.Join(srcDir, "app", "app.module.ts")
}

// AddEnvProviders registers ENV_PROVIDERS in the root module under srcDir.
// Only insertions are applied; any other edit is dropped.
func (p *Parser) AddEnvProviders(ctx context.Context, t *tree.Tree, srcDir string) error {
	modulePath := AppModulePath(srcDir)
	content, ok, err := t.Read(modulePath)
	if err != nil {
		return err
	}
	if !ok {
		return types.NewError(types.SourceNotFound, modulePath, "file does not exist")
	}

	edits, err := p.ProviderInsertions(ctx, modulePath, content, ngModuleDecorator, EnvProvidersSymbol, EnvProvidersImport)
	if err != nil {
		return err
	}

	rec, err := t.BeginUpdate(modulePath)
	if err != nil {
		return err
	}
	for _, e := range edits {
		if e.Kind != types.Insert {
			p.logger.Debug("skipping non-insert edit", "path", modulePath, "kind", e.Kind.String(), "description", e.Description)
			continue
		}
		rec.InsertLeft(e.Pos, e.Text)
	}
	return t.CommitUpdate(rec)
}
