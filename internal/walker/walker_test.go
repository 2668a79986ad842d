package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestWalkFindsFilesAtAnyDepth(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"App.tsx":                      "",
		"main.ts":                      "",
		"styles.css":                   "",
		"README.md":                    "",
		"components/ui/button.tsx":     "",
		"components/ui/button.test.js": "",
		"lib/deep/er/still/utils.ts":   "",
		"types/global.d.ts":            "",
	})

	got, err := Walk(root, Options{})
	require.NoError(t, err)

	want := []string{
		filepath.Join(root, "App.tsx"),
		filepath.Join(root, "components", "ui", "button.tsx"),
		filepath.Join(root, "lib", "deep", "er", "still", "utils.ts"),
		filepath.Join(root, "main.ts"),
		filepath.Join(root, "types", "global.d.ts"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Walk() mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkCustomExtensions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.js":  "",
		"b.jsx": "",
		"c.ts":  "",
	})

	got, err := Walk(root, Options{Extensions: []string{".js", ".jsx"}})
	require.NoError(t, err)

	want := []string{filepath.Join(root, "a.js"), filepath.Join(root, "b.jsx")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Walk() mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkSkipsNamedDirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.ts":                   "",
		"node_modules/pkg/index.ts":  "",
		"nested/node_modules/x/y.ts": "",
		"nested/component.tsx":       "",
	})

	got, err := Walk(root, Options{Skip: []string{"node_modules"}})
	require.NoError(t, err)

	want := []string{
		filepath.Join(root, "index.ts"),
		filepath.Join(root, "nested", "component.tsx"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Walk() mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkEmptyDirectory(t *testing.T) {
	got, err := Walk(t.TempDir(), Options{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "missing"), Options{})
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestWalkRootIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.ts")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := Walk(path, Options{})
	assert.ErrorContains(t, err, "not a directory")
}

func TestHasExtension(t *testing.T) {
	exts := []string{".ts", ".tsx"}
	assert.True(t, HasExtension("a.ts", exts))
	assert.True(t, HasExtension("a.tsx", exts))
	assert.False(t, HasExtension("a.TS", exts))
	assert.False(t, HasExtension("a.js", exts))
	assert.False(t, HasExtension("a.ts", []string{""}))
}
