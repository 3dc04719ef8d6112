package depgraph

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceEnumerator []string

func (s sliceEnumerator) Enumerate(_ string, _ []string) ([]string, error) {
	return s, nil
}

func analyze(t *testing.T, root string, entries ...string) *Result {
	t.Helper()

	result, err := Analyze(Options{
		SearchRoot: root,
		Entries:    entries,
		Enumerator: walkEnumerator{},
	})
	require.NoError(t, err)
	return result
}

func TestAnalyze_UnreferencedFileIsUnused(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.js": "import b from './b'\nconsole.log(b)\n",
		"b.js": "export default 1\n",
		"c.js": "export default 2\n",
	})

	result := analyze(t, root, "a.js")

	assert.Equal(t, modulePaths(root, "a.js"), result.Entries)
	assert.Equal(t, modulePaths(root, "b.js"), result.Used)
	assert.Equal(t, modulePaths(root, "c.js"), result.Unused)
	assert.Equal(t, modulePaths(root, "a.js", "b.js", "c.js"), result.All)
	assert.NotEmpty(t, result.RunID)
}

func TestAnalyze_StylesheetImportsAndURLs(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.js":              "import './styles/site.scss'\n",
		"styles/site.scss":     "@import \"x\";\n\n.hero {\n  background: url(asset.png);\n  src: url('fonts/a.woff2?v=1');\n}\n",
		"styles/x.scss":        "$brand: red;\n",
		"styles/asset.png":     "png",
		"styles/fonts/a.woff2": "woff",
		"styles/orphan.css":    ".unused {}\n",
	})

	result := analyze(t, root, "main.js")

	assert.Equal(t, modulePaths(root,
		"styles/site.scss",
		"styles/x.scss",
		"styles/asset.png",
		"styles/fonts/a.woff2",
	), result.Used)
	assert.Equal(t, modulePaths(root, "styles/orphan.css"), result.Unused)
}

func TestAnalyze_EveryImportTargetIsUsed(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.js":               "import './styles/site.scss'\n",
		"styles/site.scss":      "@import \"variables\", \"mixins\";\n\n.hero {\n  background: url(\"hero(1).png\");\n}\n",
		"styles/variables.scss": "$brand: red;\n",
		"styles/mixins.scss":    "@mixin x {}\n",
		"styles/hero(1).png":    "png",
	})

	result := analyze(t, root, "main.js")

	assert.Equal(t, modulePaths(root,
		"styles/site.scss",
		"styles/variables.scss",
		"styles/mixins.scss",
		"styles/hero(1).png",
	), result.Used)
	assert.Empty(t, result.Unused)
}

func TestAnalyze_EmptyURLAbortsRun(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.css": ".a {\n  background: url();\n}\n",
	})

	result, err := Analyze(Options{
		SearchRoot: root,
		Entries:    []string{"main.css"},
		Enumerator: walkEnumerator{},
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrEmptyURLReference))

	var emptyURL *EmptyURLReferenceError
	require.True(t, errors.As(err, &emptyURL))
	assert.Equal(t, string(modulePath(root, "main.css")), emptyURL.File)
}

func TestAnalyze_MissingModuleAbortsRun(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.js": "import './missing'\n",
	})

	_, err := Analyze(Options{SearchRoot: root, Entries: []string{"a.js"}, Enumerator: walkEnumerator{}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModuleNotFound))
}

func TestAnalyze_MissingEntryIsModuleNotFound(t *testing.T) {
	root := writeTree(t, map[string]string{"a.js": ""})

	_, err := Analyze(Options{SearchRoot: root, Entries: []string{"nope"}, Enumerator: walkEnumerator{}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModuleNotFound))
}

func TestAnalyze_CyclesTerminate(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.js": "import './b'\n",
		"b.js": "import './c'\nimport './a'\n",
		"c.js": "import './b'\nimport './c'\n",
	})

	result := analyze(t, root, "a.js")

	assert.Equal(t, modulePaths(root, "b.js", "c.js"), result.Used)
	assert.Empty(t, result.Unused)
	require.Len(t, result.Cycles, 1)
	assert.Equal(t, modulePaths(root, "a.js", "b.js", "c.js"), result.Cycles[0].Modules)
}

func TestAnalyze_SelfReferenceIsCycle(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.js": "import './b'\n",
		"b.js": "import './b'\n",
	})

	result := analyze(t, root, "a.js")

	require.Len(t, result.Cycles, 1)
	assert.Equal(t, modulePaths(root, "b.js"), result.Cycles[0].Modules)
}

func TestAnalyze_ScriptReferenceForms(t *testing.T) {
	root := writeTree(t, map[string]string{
		"app.js": `import React from 'react'
import fs from 'fs'
import data from './config'
export { helper } from './reexport'
const req = require('./req')
import('./lazy').then(() => {})
`,
		"config.json":                 "{}",
		"reexport.ts":                 "export const helper = 1\n",
		"req.jsx":                     "module.exports = <div />\n",
		"lazy.tsx":                    "export default function Lazy() { return <span /> }\n",
		"node_modules/react/index.js": "module.exports = {}\n",
	})

	result := analyze(t, root, "app.js")

	assert.Equal(t, modulePaths(root, "config.json", "reexport.ts", "req.jsx", "lazy.tsx"), result.Used)
	assert.Empty(t, result.Unused)
}

func TestAnalyze_EntryReachedFromAnotherEntryIsNotUsed(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.js": "import './b'\n",
		"b.js": "import './c'\n",
		"c.js": "",
		"d.js": "",
	})

	result := analyze(t, root, "a.js", "b", "./a.js")

	assert.Equal(t, modulePaths(root, "a.js", "b.js"), result.Entries)
	assert.Equal(t, modulePaths(root, "c.js"), result.Used)
	assert.Equal(t, modulePaths(root, "d.js"), result.Unused)
}

func TestAnalyze_ClassificationIsExhaustiveAndDisjoint(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/index.js":               "import './app'\nimport './styles.css'\n",
		"src/app.jsx":                "import Button from './components'\nexport default () => <Button />\n",
		"src/components/index.ts":    "export { default } from './Button'\n",
		"src/components/Button.tsx":  "import './Button.less'\nexport default function Button() { return <button /> }\n",
		"src/components/Button.less": "@import \"../theme\";\n.btn { color: red; }\n",
		"src/theme.less":             "@brand: red;\n",
		"src/styles.css":             "body { background: url(bg.jpg); }\n",
		"src/bg.jpg":                 "jpg",
		"src/legacy/old.js":          "import '../app'\n",
		"src/legacy/old.css":         "",
		"README.md":                  "# readme\n",
	})

	result := analyze(t, root, "src/index.js")

	seen := make(map[ModulePath]int)
	for _, group := range [][]ModulePath{result.Entries, result.Used, result.Unused} {
		for _, path := range group {
			seen[path]++
		}
	}
	for _, path := range result.All {
		assert.Equal(t, 1, seen[path], "%s must be in exactly one group", path)
	}
	assert.Equal(t, modulePaths(root, "README.md", "src/legacy/old.css", "src/legacy/old.js"), result.Unused)
}

func TestAnalyze_Idempotent(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.js": "import './b'\nrequire('./c')\n",
		"b.js": "import './a'\n",
		"c.js": "",
		"d.js": "",
	})

	first := analyze(t, root, "a.js")
	second := analyze(t, root, "a.js")

	assert.Equal(t, first.Used, second.Used)
	assert.Equal(t, first.Unused, second.Unused)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestAnalyze_OverrideHook(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/main.ts":         "import { api } from '@/services/api'\n",
		"src/services/api.ts": "export const api = 1\n",
	})

	result, err := Analyze(Options{
		SearchRoot: root,
		Entries:    []string{"src/main.ts"},
		Enumerator: walkEnumerator{},
		ModuleOverrideHook: func(_, specifier string) string {
			if len(specifier) > 2 && specifier[:2] == "@/" {
				return filepath.Join(root, "src", specifier[2:])
			}
			return ""
		},
	})

	require.NoError(t, err)
	assert.Equal(t, modulePaths(root, "src/services/api.ts"), result.Used)
}

func TestAnalyze_UnderscorePartialsAreUnsupported(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.scss":     "@import \"partial\";\n",
		"_partial.scss": "$x: 1;\n",
	})

	_, err := Analyze(Options{SearchRoot: root, Entries: []string{"main.scss"}, Enumerator: walkEnumerator{}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModuleNotFound))
}

func TestAnalyze_PackageManifestsAreUnsupported(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.js":          "import './pkg'\n",
		"pkg/package.json": "{\"main\": \"lib.js\"}\n",
		"pkg/lib.js":       "",
	})

	_, err := Analyze(Options{SearchRoot: root, Entries: []string{"main.js"}, Enumerator: walkEnumerator{}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModuleNotFound))
}

func TestAnalyze_IgnoreTestFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.js":      "",
		"a.test.js": "import './a'\n",
		"b.spec.ts": "",
		"orphan.js": "",
	})

	result, err := Analyze(Options{
		SearchRoot:      root,
		Entries:         []string{"a.js"},
		Enumerator:      walkEnumerator{},
		IgnoreTestFiles: true,
	})

	require.NoError(t, err)
	assert.Equal(t, modulePaths(root, "orphan.js"), result.Unused)
}

func TestAnalyze_NormalizesAndDeduplicatesCorpus(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.js": "",
		"b.js": "",
	})

	result, err := Analyze(Options{
		SearchRoot: root,
		Entries:    []string{"a.js"},
		Enumerator: sliceEnumerator{
			filepath.Join(root, "b.js"),
			root + "/sub/../a.js",
			filepath.Join(root, "b.js"),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, modulePaths(root, "b.js", "a.js"), result.All)
	assert.Equal(t, modulePaths(root, "b.js"), result.Unused)
}

func TestAnalyze_RequiresEnumerator(t *testing.T) {
	_, err := Analyze(Options{Entries: []string{"a.js"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "file enumerator is required")
}

func TestAnalyze_LogsSummary(t *testing.T) {
	root := writeTree(t, map[string]string{"a.js": "", "b.js": ""})
	var buf bytes.Buffer

	result, err := Analyze(Options{
		SearchRoot: root,
		Entries:    []string{"a.js"},
		Enumerator: walkEnumerator{},
		Logger:     log.New(&buf),
	})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "analysis complete")
	assert.Contains(t, buf.String(), result.RunID)
}

func TestResult_ImportChain(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.js": "import './b'\nimport './d'\n",
		"b.js": "import './c'\n",
		"c.js": "",
		"d.js": "import './c'\n",
		"e.js": "",
	})

	result := analyze(t, root, "a.js")

	chain, ok := result.ImportChain(modulePath(root, "b.js"))
	require.True(t, ok)
	assert.Equal(t, modulePaths(root, "a.js", "b.js"), chain)

	chain, ok = result.ImportChain(modulePath(root, "a.js"))
	require.True(t, ok)
	assert.Equal(t, modulePaths(root, "a.js"), chain)

	chain, ok = result.ImportChain(modulePath(root, "c.js"))
	require.True(t, ok)
	assert.Len(t, chain, 3)

	_, ok = result.ImportChain(modulePath(root, "e.js"))
	assert.False(t, ok)
	assert.True(t, result.IsUnused(modulePath(root, "e.js")))
	assert.True(t, result.IsEntry(modulePath(root, "a.js")))
}

func TestUnusedFiles_PreservesCorpusOrder(t *testing.T) {
	all := []ModulePath{"/p/z.js", "/p/a.js", "/p/m.js", "/p/b.js"}

	unused := UnusedFiles(all, []ModulePath{"/p/a.js"}, []ModulePath{"/p/b.js"})

	assert.Equal(t, []ModulePath{"/p/z.js", "/p/m.js"}, unused)
}
