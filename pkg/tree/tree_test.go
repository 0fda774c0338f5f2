package tree

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamaar/ngessentials/pkg/types"
)

func newTestTree(files map[string]string) (*Tree, *MemHost) {
	host := NewMemHost(files)
	return New(host), host
}

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"./.vscode/launch.json", ".vscode/launch.json"},
		{"/angular.json", "angular.json"},
		{"src//app/../app/app.module.ts", "src/app/app.module.ts"},
		{"e2e\\tsconfig.json", "e2e/tsconfig.json"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clean(tt.in), tt.in)
	}
}

func TestTree_ReadFallsThroughToHost(t *testing.T) {
	tr, _ := newTestTree(map[string]string{"package.json": `{"name":"app"}`})

	data, ok, err := tr.Read("./package.json")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"name":"app"}`, string(data))

	_, ok, err = tr.Read("missing.json")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTree_CreateFailsWhenPresent(t *testing.T) {
	tr, _ := newTestTree(map[string]string{".vscode/launch.json": "{}"})

	err := tr.Create(".vscode/launch.json", []byte("{}"))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrFileExists)

	require.NoError(t, tr.Create(".vscode/settings.json", []byte("{}")))
	assert.True(t, tr.Exists(".vscode/settings.json"))
}

func TestTree_OverwriteFailsWhenMissing(t *testing.T) {
	tr, _ := newTestTree(nil)

	err := tr.Overwrite("src/environments/environment.ts", []byte("x"))
	assert.ErrorIs(t, err, types.ErrMissingFile)
}

func TestTree_DeleteIsBestEffort(t *testing.T) {
	tr, _ := newTestTree(map[string]string{"e2e/tsconfig.json": "{}"})

	existed, err := tr.Delete("e2e/tsconfig.json")
	require.NoError(t, err)
	assert.True(t, existed)
	assert.False(t, tr.Exists("e2e/tsconfig.json"))

	existed, err = tr.Delete("e2e/protractor.conf.js")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestTree_ActionsAndCommit(t *testing.T) {
	tr, host := newTestTree(map[string]string{
		"angular.json":      "{}",
		"e2e/tsconfig.json": "{}",
		"unchanged.txt":     "same",
	})

	require.NoError(t, tr.Overwrite("angular.json", []byte(`{"a":1}`)))
	require.NoError(t, tr.Create("new.txt", []byte("hello")))
	_, err := tr.Delete("e2e/tsconfig.json")
	require.NoError(t, err)
	require.NoError(t, tr.Write("unchanged.txt", []byte("same")))
	require.NoError(t, tr.Create("transient.txt", []byte("x")))
	_, err = tr.Delete("transient.txt")
	require.NoError(t, err)

	assert.Equal(t, []types.Action{
		{Kind: types.OverwriteAction, Path: "angular.json"},
		{Kind: types.DeleteAction, Path: "e2e/tsconfig.json"},
		{Kind: types.CreateAction, Path: "new.txt"},
	}, tr.Actions())

	// Nothing reaches the host before Commit.
	assert.Equal(t, "{}", host.Files()["angular.json"])

	require.NoError(t, tr.Commit(context.Background()))
	assert.Equal(t, map[string]string{
		"angular.json":  `{"a":1}`,
		"new.txt":       "hello",
		"unchanged.txt": "same",
	}, host.Files())
	assert.False(t, tr.HasChanges())
}

func TestTree_CommitHonoursContext(t *testing.T) {
	tr, host := newTestTree(nil)
	require.NoError(t, tr.Create("a.txt", []byte("a")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, tr.Commit(ctx), context.Canceled)
	assert.Empty(t, host.Files())
}

func TestOSHost_WriteReadRemove(t *testing.T) {
	root := t.TempDir()
	host := NewOSHost(root)
	tr := New(host)

	require.NoError(t, tr.Write(".vscode/launch.json", []byte("{}")))
	require.NoError(t, tr.Commit(context.Background()))

	data, err := os.ReadFile(filepath.Join(root, ".vscode", "launch.json"))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	entries, err := os.ReadDir(filepath.Join(root, ".vscode"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	require.NoError(t, host.Remove(".vscode/launch.json"))
	require.NoError(t, host.Remove(".vscode/launch.json"))
}
