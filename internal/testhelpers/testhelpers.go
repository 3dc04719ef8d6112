// Package testhelpers holds fixtures and golden-file helpers shared by tests.
package testhelpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LegacyCodeHQ/deadfiles/depgraph"
	"github.com/LegacyCodeHQ/deadfiles/enumerate"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// DotGoldie returns a goldie instance for DOT golden files.
func DotGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t, goldie.WithNameSuffix(".gold.dot"))
}

// MermaidGoldie returns a goldie instance for Mermaid golden files.
func MermaidGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t, goldie.WithNameSuffix(".gold.mmd"))
}

// WriteTree creates files, keyed by slash-separated relative path, under a fresh
// temporary directory and returns it.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// Analyze runs a default analysis of root.
func Analyze(t *testing.T, root string, entries ...string) *depgraph.Result {
	t.Helper()

	result, err := depgraph.Analyze(depgraph.Options{
		SearchRoot: root,
		Entries:    entries,
		Enumerator: enumerate.NewGlob(depgraph.DefaultVendorDirs),
	})
	require.NoError(t, err)
	return result
}

// SimpleTree is a script project with one unreferenced module.
func SimpleTree() map[string]string {
	return map[string]string{
		"a.js": "import b from './b'\nconsole.log(b)\n",
		"b.js": "export default 1\n",
		"c.js": "export default 2\n",
	}
}

// MixedTree mixes scripts, stylesheets and assets, with one cycle and one
// unreferenced stylesheet.
func MixedTree() map[string]string {
	return map[string]string{
		"main.js":  "import './app'\nimport './site.css'\n",
		"app.js":   "import './util'\n",
		"util.js":  "import './app'\n",
		"site.css": "body { background: url(logo.png); }\n",
		"logo.png": "png",
		"old.css":  ".old { color: red; }\n",
	}
}
