package typescript

import (
	"path/filepath"

	"github.com/LegacyCodeHQ/deadfiles/depgraph/langsupport"
	"github.com/LegacyCodeHQ/deadfiles/depgraph/languages/javascript"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ParseTypeScriptImports parses TypeScript source code and extracts the specifiers it references.
// Type-only imports are kept: they still make the imported file reachable.
func ParseTypeScriptImports(sourceCode []byte, isTSX bool) ([]langsupport.Specifier, error) {
	var lang *sitter.Language
	if isTSX {
		lang = tsx.GetLanguage()
	} else {
		lang = typescript.GetLanguage()
	}

	return javascript.ParseScriptSpecifiers(sourceCode, lang)
}

func isTSXPath(filePath string) bool {
	return filepath.Ext(filePath) == ".tsx"
}
