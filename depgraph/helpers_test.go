package depgraph

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTree creates files relative to root and returns root.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

// walkEnumerator lists every regular file under root, ignoring patterns.
type walkEnumerator struct{}

func (walkEnumerator) Enumerate(root string, _ []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == "node_modules" {
			return filepath.SkipDir
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func modulePath(root, rel string) ModulePath {
	return ModulePath(filepath.Join(root, filepath.FromSlash(rel)))
}

func modulePaths(root string, rels ...string) []ModulePath {
	paths := make([]ModulePath, len(rels))
	for i, rel := range rels {
		paths[i] = modulePath(root, rel)
	}
	return paths
}
