// Package workspace edits the Angular workspace descriptor and the lint and
// compiler configuration next to it.
package workspace

import (
	"github.com/spf13/cast"

	"github.com/mamaar/ngessentials/pkg/jsonedit"
	"github.com/mamaar/ngessentials/pkg/tree"
	"github.com/mamaar/ngessentials/pkg/types"
)

// lintTsConfigs replaces the lint target's tsConfig once the e2e project is gone.
var lintTsConfigs = []string{"tsconfig.app.json", "tsconfig.spec.json"}

type presetBlock struct {
	Jest    bool `json:"jest"`
	Cypress bool `json:"cypress"`
}

// AddDefaultCollection registers the preset as the default schematic
// collection unless the workspace already names one.
func AddDefaultCollection(t *tree.Tree) error {
	return jsonedit.UpdateJSON(t, types.AngularJSON, func(d *jsonedit.Document) error {
		if !d.Truthy("cli") {
			if err := d.Set(map[string]any{}, "cli"); err != nil {
				return err
			}
		}
		if !d.IsObject("cli") {
			return types.NewError(types.MalformedDocument, types.AngularJSON, "cli is not an object")
		}
		if d.Truthy("cli", "defaultCollection") {
			return nil
		}
		return d.Set(types.CollectionName, "cli", "defaultCollection")
	})
}

// AddPresetOptions records opts under schematics.ng-essentials. An existing
// block is never touched, so options a user edited survive later runs.
func AddPresetOptions(t *tree.Tree, opts types.Options) error {
	return jsonedit.UpdateJSON(t, types.AngularJSON, func(d *jsonedit.Document) error {
		if d.Truthy("schematics", types.CollectionName) {
			return nil
		}
		if !d.Truthy("schematics") {
			if err := d.Set(map[string]any{}, "schematics"); err != nil {
				return err
			}
		}
		return d.Set(presetBlock{Jest: opts.Jest, Cypress: opts.Cypress}, "schematics", types.CollectionName)
	})
}

// RemoveEndToEndTsConfig points the lint target of app at the app and spec
// configs only. Whatever the option held before is discarded.
func RemoveEndToEndTsConfig(t *tree.Tree, app string) error {
	if app == "" {
		return nil
	}
	return jsonedit.UpdateJSON(t, types.AngularJSON, func(d *jsonedit.Document) error {
		keys := []string{"projects", app, "architect", "lint", "options", "tsConfig"}
		if !d.Truthy(keys...) {
			return nil
		}
		return d.Set(lintTsConfigs, keys...)
	})
}

// RemoveArchitectTarget deletes projects[app].architect[target] if present.
func RemoveArchitectTarget(t *tree.Tree, app, target string) error {
	if app == "" {
		return nil
	}
	return jsonedit.UpdateJSON(t, types.AngularJSON, func(d *jsonedit.Document) error {
		d.Delete("projects", app, "architect", target)
		return nil
	})
}

// DefaultProjectName returns defaultProject when it names a project of the
// workspace, and "" otherwise.
func DefaultProjectName(t *tree.Tree) (string, error) {
	d, err := jsonedit.Read(t, types.AngularJSON)
	if err != nil {
		return "", err
	}
	name, ok := d.GetString("defaultProject")
	if !ok || name == "" || !d.IsObject("projects", name) {
		return "", nil
	}
	return name, nil
}

// ElementPrefix returns the selector prefix of app, "app" when unset.
func ElementPrefix(t *tree.Tree, app string) (string, error) {
	if app == "" {
		return types.DefaultElementPrefix, nil
	}
	d, err := jsonedit.Read(t, types.AngularJSON)
	if err != nil {
		return "", err
	}
	if prefix, ok := d.GetString("projects", app, "prefix"); ok && prefix != "" {
		return prefix, nil
	}
	return types.DefaultElementPrefix, nil
}

// PresetOptions reads back the preset block. The boolean reports whether the
// block exists; string and numeric flags are coerced the lenient way.
func PresetOptions(t *tree.Tree) (types.Options, bool, error) {
	d, err := jsonedit.Read(t, types.AngularJSON)
	if err != nil {
		return types.Options{}, false, err
	}
	v, ok := d.Value("schematics", types.CollectionName)
	if !ok || v == nil {
		return types.Options{}, false, nil
	}
	block, err := cast.ToStringMapE(v)
	if err != nil {
		return types.Options{}, false, types.WrapError(types.MalformedDocument, types.AngularJSON,
			"schematics."+types.CollectionName+" is not an object", err)
	}
	return types.Options{
		Jest:    cast.ToBool(block["jest"]),
		Cypress: cast.ToBool(block["cypress"]),
	}, true, nil
}
