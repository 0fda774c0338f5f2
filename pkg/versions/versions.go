// Package versions holds the package versions the preset pins.
package versions

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/mamaar/ngessentials/pkg/types"
)

//go:embed versions.yaml
var defaultTable []byte

// Table maps package names to exact versions. It is read-only once loaded.
type Table struct {
	essentials  map[string]string
	resolutions map[string]string
}

type tableFile struct {
	Essentials  map[string]string `yaml:"essentials" json:"essentials"`
	Resolutions map[string]string `yaml:"resolutions" json:"resolutions"`
}

// Default returns the built-in table.
func Default() *Table {
	t, err := Parse(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("embedded version table: %v", err))
	}
	return t
}

// Parse decodes and validates a YAML table.
func Parse(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, types.WrapError(types.InvalidVersion, "", "cannot decode version table", err)
	}
	t := &Table{essentials: f.Essentials, resolutions: f.Resolutions}
	if t.essentials == nil {
		t.essentials = map[string]string{}
	}
	if t.resolutions == nil {
		t.resolutions = map[string]string{}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Load reads an override file and layers it over the defaults. Packages the
// file does not mention keep their built-in version.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.WrapError(types.FileSystemError, path, "cannot read version table", err)
	}
	override, err := Parse(data)
	if err != nil {
		var e *types.Error
		if errors.As(err, &e) && e.Path == "" {
			e.Path = path
		}
		return nil, err
	}
	return Default().Merge(override), nil
}

// Merge returns a new table with the entries of other replacing those of t.
func (t *Table) Merge(other *Table) *Table {
	merged := &Table{
		essentials:  maps.Clone(t.essentials),
		resolutions: maps.Clone(t.resolutions),
	}
	maps.Copy(merged.essentials, other.essentials)
	maps.Copy(merged.resolutions, other.resolutions)
	return merged
}

// Validate checks that every entry is an exact semantic version.
func (t *Table) Validate() error {
	for _, section := range []struct {
		name    string
		entries map[string]string
	}{
		{"essentials", t.essentials},
		{"resolutions", t.resolutions},
	} {
		for _, name := range slices.Sorted(maps.Keys(section.entries)) {
			v := section.entries[name]
			if !semver.IsValid("v" + v) {
				return types.NewError(types.InvalidVersion, "", "%s.%s: %q is not a semantic version", section.name, name, v)
			}
		}
	}
	return nil
}

// Essential returns the pinned version of a direct dependency.
func (t *Table) Essential(name string) (string, bool) {
	v, ok := t.essentials[name]
	return v, ok
}

// Resolution returns the forced version of a transitive dependency.
func (t *Table) Resolution(name string) (string, bool) {
	v, ok := t.resolutions[name]
	return v, ok
}

// Essentials returns a copy of the direct dependency versions.
func (t *Table) Essentials() map[string]string {
	return maps.Clone(t.essentials)
}

// Resolutions returns a copy of the forced resolution versions.
func (t *Table) Resolutions() map[string]string {
	return maps.Clone(t.resolutions)
}

// MarshalYAML renders the table in the same shape Load accepts.
func (t *Table) MarshalYAML() (any, error) {
	return tableFile{Essentials: t.essentials, Resolutions: t.resolutions}, nil
}

// MarshalJSON renders the table as {"essentials":{...},"resolutions":{...}}.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(tableFile{Essentials: t.essentials, Resolutions: t.resolutions})
}
