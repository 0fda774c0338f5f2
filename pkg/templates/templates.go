// Package templates materializes the preset's static files into a project
// tree and removes the files the preset makes obsolete.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/mamaar/ngessentials/pkg/tree"
	"github.com/mamaar/ngessentials/pkg/types"
)

//go:embed all:files
var embedded embed.FS

// Default returns the built-in template set, rooted at the project root.
func Default() fs.FS {
	sub, err := fs.Sub(embedded, "files")
	if err != nil {
		panic(err)
	}
	return sub
}

// EndToEndTestFiles are the protractor scaffold files removed for the
// default application.
var EndToEndTestFiles = []string{
	"e2e/src/app.e2e-spec.ts",
	"e2e/src/app.po.ts",
	"e2e/protractor.conf.js",
	"e2e/tsconfig.json",
}

// CopyConfigFiles writes every regular file of src to the same relative path
// in t, replacing existing files. It returns the written paths sorted.
func CopyConfigFiles(t *tree.Tree, src fs.FS) ([]string, error) {
	var copied []string
	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		data, err := fs.ReadFile(src, p)
		if err != nil {
			return err
		}
		if err := t.Write(p, data); err != nil {
			return err
		}
		copied = append(copied, tree.Clean(p))
		return nil
	})
	if err != nil {
		if _, ok := types.KindOf(err); ok {
			return nil, err
		}
		return nil, types.WrapError(types.FileSystemError, "", "failed to read templates", err)
	}
	sort.Strings(copied)
	return copied, nil
}

// RemoveEndToEndTestFiles deletes the protractor scaffold. Missing files are
// skipped; the paths that existed are returned.
func RemoveEndToEndTestFiles(t *tree.Tree) ([]string, error) {
	var removed []string
	for _, p := range EndToEndTestFiles {
		existed, err := t.Delete(p)
		if err != nil {
			return removed, err
		}
		if existed {
			removed = append(removed, p)
		}
	}
	return removed, nil
}

const launchJSON = `{
  "version": "0.2.0",
  "configurations": [
    {
      "name": "ng serve",
      "type": "chrome",
      "request": "launch",
      "url": "http://localhost:4200/#",
      "webRoot": "${workspaceFolder}"
    },
    {
      "name": "ng test",
      "type": "chrome",
      "request": "launch",
      "url": "http://localhost:9876/debug.html",
      "webRoot": "${workspaceFolder}"
    }
  ]
}`

// CreateLaunchJSON creates .vscode/launch.json with Chrome debug targets for
// ng serve and ng test. Jest projects bring their own, so nothing happens
// when opts.Jest is set.
func CreateLaunchJSON(t *tree.Tree, opts types.Options) error {
	if opts.Jest {
		return nil
	}
	return t.Create(types.LaunchJSON, []byte(launchJSON))
}

const environmentSource = `const providers: any[] = [
  { provide: 'environment', useValue: '%s' },
  { provide: 'baseUrl', useValue: 'http://localhost:3000' }
];

export const ENV_PROVIDERS = providers;

export const environment = {
  production: %t
};
`

// EnvironmentFile renders the environment module for one build flavour.
func EnvironmentFile(label string, production bool) []byte {
	return []byte(fmt.Sprintf(environmentSource, label, production))
}

// UpdateDevelopmentEnvironment overwrites <srcDir>/environments/environment.ts.
func UpdateDevelopmentEnvironment(t *tree.Tree, srcDir string) error {
	return t.Overwrite(path.Join(srcDir, "environments", "environment.ts"), EnvironmentFile("Development", false))
}

// UpdateProductionEnvironment overwrites <srcDir>/environments/environment.prod.ts.
func UpdateProductionEnvironment(t *tree.Tree, srcDir string) error {
	return t.Overwrite(path.Join(srcDir, "environments", "environment.prod.ts"), EnvironmentFile("Production", true))
}
