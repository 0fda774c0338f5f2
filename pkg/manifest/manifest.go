// Package manifest edits the dependency and script sections of package.json.
package manifest

import (
	"strings"

	"github.com/mamaar/ngessentials/pkg/jsonedit"
	"github.com/mamaar/ngessentials/pkg/tree"
	"github.com/mamaar/ngessentials/pkg/types"
)

// Section names a package.json object holding name to string entries.
type Section string

const (
	Dependencies    Section = "dependencies"
	DevDependencies Section = "devDependencies"
	Resolutions     Section = "resolutions"
	Scripts         Section = "scripts"
)

// updateSymbols are the range prefixes npm and yarn treat as "allow updates".
const updateSymbols = "^~"

// AddPackage pins name to version in section. An existing entry is
// overwritten; the section is created when missing, null or otherwise falsy.
func AddPackage(t *tree.Tree, section Section, name, version string) error {
	return jsonedit.UpdateJSON(t, types.PackageJSON, func(d *jsonedit.Document) error {
		if current, ok := d.GetString(string(section), name); ok && current == version {
			return nil
		}
		if !d.Truthy(string(section)) {
			if err := d.Set(map[string]any{}, string(section)); err != nil {
				return err
			}
		}
		return d.Set(version, string(section), name)
	})
}

// RemovePackage deletes name from section if present.
func RemovePackage(t *tree.Tree, section Section, name string) error {
	return jsonedit.UpdateJSON(t, types.PackageJSON, func(d *jsonedit.Document) error {
		d.Delete(string(section), name)
		return nil
	})
}

// AddScript sets an npm script, overwriting an existing one of the same name.
func AddScript(t *tree.Tree, name, command string) error {
	return AddPackage(t, Scripts, name, command)
}

// RemoveScript deletes an npm script if present.
func RemoveScript(t *tree.Tree, name string) error {
	return RemovePackage(t, Scripts, name)
}

// RemoveAutomaticUpdateSymbols turns every range in dependencies and
// devDependencies into an exact pin by stripping leading ^ and ~.
func RemoveAutomaticUpdateSymbols(t *tree.Tree) error {
	return jsonedit.UpdateJSON(t, types.PackageJSON, func(d *jsonedit.Document) error {
		for _, section := range []Section{Dependencies, DevDependencies} {
			pinned := map[string]string{}
			var order []string
			err := d.EachString(func(name, version string) {
				if stripped := strings.TrimLeft(version, updateSymbols); stripped != version {
					pinned[name] = stripped
					order = append(order, name)
				}
			}, string(section))
			if err != nil {
				return err
			}
			for _, name := range order {
				if err := d.Set(pinned[name], string(section), name); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
