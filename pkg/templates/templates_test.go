package templates

import (
	"encoding/json"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamaar/ngessentials/pkg/tree"
	"github.com/mamaar/ngessentials/pkg/types"
)

func TestCopyConfigFiles_Default(t *testing.T) {
	tr := tree.New(tree.NewMemHost(map[string]string{".editorconfig": "root = false\n"}))

	copied, err := CopyConfigFiles(tr, Default())
	require.NoError(t, err)
	assert.Equal(t, []string{
		".editorconfig",
		".prettierignore",
		".prettierrc",
		".vscode/extensions.json",
		".vscode/settings.json",
	}, copied)

	assert.Equal(t, []types.Action{
		{Kind: types.OverwriteAction, Path: ".editorconfig"},
		{Kind: types.CreateAction, Path: ".prettierignore"},
		{Kind: types.CreateAction, Path: ".prettierrc"},
		{Kind: types.CreateAction, Path: ".vscode/extensions.json"},
		{Kind: types.CreateAction, Path: ".vscode/settings.json"},
	}, tr.Actions())

	for _, p := range []string{".prettierrc", ".vscode/extensions.json", ".vscode/settings.json"} {
		data, _, err := tr.Read(p)
		require.NoError(t, err)
		assert.True(t, json.Valid(data), p)
	}
}

func TestCopyConfigFiles_CustomSource(t *testing.T) {
	tr := tree.New(tree.NewMemHost(nil))
	src := fstest.MapFS{
		"tools/lint.sh": {Data: []byte("#!/bin/sh\n")},
	}

	copied, err := CopyConfigFiles(tr, src)
	require.NoError(t, err)
	assert.Equal(t, []string{"tools/lint.sh"}, copied)
}

func TestRemoveEndToEndTestFiles(t *testing.T) {
	tr := tree.New(tree.NewMemHost(map[string]string{
		"e2e/src/app.po.ts":      "",
		"e2e/tsconfig.json":      "{}",
		"e2e/src/custom.spec.ts": "",
	}))

	removed, err := RemoveEndToEndTestFiles(tr)
	require.NoError(t, err)
	assert.Equal(t, []string{"e2e/src/app.po.ts", "e2e/tsconfig.json"}, removed)
	assert.True(t, tr.Exists("e2e/src/custom.spec.ts"))

	removed, err = RemoveEndToEndTestFiles(tr)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestCreateLaunchJSON_Jest(t *testing.T) {
	tr := tree.New(tree.NewMemHost(nil))

	require.NoError(t, CreateLaunchJSON(tr, types.Options{Jest: true}))
	assert.Empty(t, tr.Actions())
}

func TestCreateLaunchJSON(t *testing.T) {
	tr := tree.New(tree.NewMemHost(nil))

	require.NoError(t, CreateLaunchJSON(tr, types.Options{}))

	data, ok, err := tr.Read(types.LaunchJSON)
	require.NoError(t, err)
	require.True(t, ok)

	var launch struct {
		Version        string `json:"version"`
		Configurations []struct {
			Name    string `json:"name"`
			URL     string `json:"url"`
			WebRoot string `json:"webRoot"`
		} `json:"configurations"`
	}
	require.NoError(t, json.Unmarshal(data, &launch))
	require.Len(t, launch.Configurations, 2)
	assert.Equal(t, "ng serve", launch.Configurations[0].Name)
	assert.Equal(t, "ng test", launch.Configurations[1].Name)
	assert.Equal(t, "${workspaceFolder}", launch.Configurations[0].WebRoot)
}

func TestCreateLaunchJSON_Exists(t *testing.T) {
	tr := tree.New(tree.NewMemHost(map[string]string{types.LaunchJSON: "{}"}))

	assert.ErrorIs(t, CreateLaunchJSON(tr, types.Options{}), types.ErrFileExists)
}

func TestUpdateProductionEnvironment(t *testing.T) {
	tr := tree.New(tree.NewMemHost(map[string]string{
		"src/environments/environment.prod.ts": "export const environment = { production: true };\n",
	}))

	require.NoError(t, UpdateProductionEnvironment(tr, "src"))

	data, _, err := tr.Read("src/environments/environment.prod.ts")
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "production: true")
	assert.Contains(t, content, "{ provide: 'environment', useValue: 'Production' }")
	assert.Contains(t, content, "{ provide: 'baseUrl', useValue: 'http://localhost:3000' }")
	assert.Contains(t, content, "export const ENV_PROVIDERS = providers;")
}

func TestUpdateDevelopmentEnvironment(t *testing.T) {
	tr := tree.New(tree.NewMemHost(map[string]string{"src/environments/environment.ts": ""}))

	require.NoError(t, UpdateDevelopmentEnvironment(tr, "src"))

	data, _, err := tr.Read("src/environments/environment.ts")
	require.NoError(t, err)
	assert.Contains(t, string(data), "production: false")
	assert.Contains(t, string(data), "'Development'")
	assert.False(t, strings.Contains(string(data), "Production"))
}

func TestUpdateEnvironment_MissingFile(t *testing.T) {
	tr := tree.New(tree.NewMemHost(nil))

	assert.ErrorIs(t, UpdateDevelopmentEnvironment(tr, "src"), types.ErrMissingFile)
	assert.ErrorIs(t, UpdateProductionEnvironment(tr, "src"), types.ErrMissingFile)
}
