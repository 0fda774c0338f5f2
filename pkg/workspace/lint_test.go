package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamaar/ngessentials/pkg/types"
)

func TestEditTSLint(t *testing.T) {
	tr := newWorkspaceTree(map[string]string{
		types.TSLintJSON: `{"extends":"tslint:latest","rules":{"quotemark":[true,"single"]},"linterOptions":{"exclude":[]}}`,
	})

	require.NoError(t, EditTSLint(tr, "acme"))

	doc := readDoc(t, tr, types.TSLintJSON)
	keys, err := doc.ObjectKeys()
	require.NoError(t, err)
	assert.Equal(t, []string{"extends", "rules", "linterOptions", "rulesDirectory"}, keys)

	rules, err := doc.ObjectKeys("rules")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"directive-selector", "component-selector", "no-console",
		"interface-name", "max-classes-per-file", "ordered-imports",
	}, rules)

	raw, ok := doc.GetRaw("rules", "directive-selector")
	require.True(t, ok)
	assert.JSONEq(t, `[true,"attribute","acme","camelCase"]`, string(raw))

	raw, ok = doc.GetRaw("rules", "component-selector")
	require.True(t, ok)
	assert.JSONEq(t, `[true,"element","acme","kebab-case"]`, string(raw))

	raw, ok = doc.GetRaw("rules", "ordered-imports")
	require.True(t, ok)
	assert.JSONEq(t, `[true,{"grouped-imports":true,"groups":[
		{"name":"angular","match":"^@angular","order":1},
		{"name":"scoped_paths","match":"^@","order":3},
		{"name":"node_modules","match":"^[a-zA-Z]","order":2},
		{"name":"parent","match":"^../","order":4},
		{"name":"silbing","match":"^./","order":5},
		{"match":null,"order":5}
	]}]`, string(raw))

	raw, ok = doc.GetRaw("extends")
	require.True(t, ok)
	assert.JSONEq(t, `["tslint:recommended","tslint-angular","tslint-config-prettier"]`, string(raw))
}

func TestEditTSLint_MissingFile(t *testing.T) {
	assert.ErrorIs(t, EditTSLint(newWorkspaceTree(nil), "app"), types.ErrMissingFile)
}

func TestEditTSConfig(t *testing.T) {
	tr := newWorkspaceTree(map[string]string{
		types.TSConfigJSON: `{"compileOnSave":false,"compilerOptions":{"baseUrl":"./","paths":{"@env/*":["src/environments/*"]},"target":"es2015"}}`,
	})

	require.NoError(t, EditTSConfig(tr))

	doc := readDoc(t, tr, types.TSConfigJSON)
	raw, ok := doc.GetRaw("compilerOptions")
	require.True(t, ok)
	assert.JSONEq(t, `{"baseUrl":"./","paths":{},"target":"es2015"}`, string(raw))

	// A second pass has nothing left to change.
	staged, _, err := tr.Read(types.TSConfigJSON)
	require.NoError(t, err)
	require.NoError(t, EditTSConfig(tr))
	again, _, err := tr.Read(types.TSConfigJSON)
	require.NoError(t, err)
	assert.Equal(t, string(staged), string(again))
}

func TestEditTSConfig_NoCompilerOptions(t *testing.T) {
	tr := newWorkspaceTree(map[string]string{types.TSConfigJSON: `{"files":[]}`})

	require.NoError(t, EditTSConfig(tr))

	raw, ok := readDoc(t, tr, types.TSConfigJSON).GetRaw("compilerOptions")
	require.True(t, ok)
	assert.JSONEq(t, `{"paths":{}}`, string(raw))
}
