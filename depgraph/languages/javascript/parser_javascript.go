package javascript

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/deadfiles/depgraph/langsupport"
	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// nodeBuiltins contains known Node.js built-in module names
var nodeBuiltins = map[string]bool{
	"assert":         true,
	"buffer":         true,
	"child_process":  true,
	"cluster":        true,
	"crypto":         true,
	"dgram":          true,
	"dns":            true,
	"events":         true,
	"fs":             true,
	"http":           true,
	"https":          true,
	"net":            true,
	"os":             true,
	"path":           true,
	"querystring":    true,
	"readline":       true,
	"stream":         true,
	"string_decoder": true,
	"timers":         true,
	"tls":            true,
	"tty":            true,
	"url":            true,
	"util":           true,
	"v8":             true,
	"vm":             true,
	"zlib":           true,
	"worker_threads": true,
	"perf_hooks":     true,
	"async_hooks":    true,
	"fs/promises":    true,
	"path/posix":     true,
	"path/win32":     true,
}

// IsExternalSpecifier reports whether a script specifier names a Node.js built-in
// or an npm package rather than a file in the project.
func IsExternalSpecifier(importPath string) bool {
	if strings.HasPrefix(importPath, "node:") || nodeBuiltins[importPath] {
		return true
	}

	if importPath == "." || importPath == ".." ||
		strings.HasPrefix(importPath, "./") || strings.HasPrefix(importPath, "../") {
		return false
	}

	if strings.HasPrefix(importPath, "/") || filepath.IsAbs(importPath) {
		return false
	}

	return true
}

// ParseJavaScriptImports parses JavaScript source code and extracts the specifiers it references.
// The javascript grammar parses JSX too, so .js and .jsx share it.
func ParseJavaScriptImports(sourceCode []byte) ([]langsupport.Specifier, error) {
	return ParseScriptSpecifiers(sourceCode, javascript.GetLanguage())
}

// ParseScriptSpecifiers parses script source with the given grammar and returns the
// import, re-export, dynamic import and require specifiers in source order.
func ParseScriptSpecifiers(sourceCode []byte, lang *sitter.Language) ([]langsupport.Specifier, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse script")
	}
	defer tree.Close()

	root := tree.RootNode()
	if err := SyntaxError(root); err != nil {
		return nil, err
	}

	return extractSpecifiersFromTree(root, sourceCode), nil
}

// SyntaxError returns an error locating the first syntax error in the tree, or nil.
func SyntaxError(root *sitter.Node) error {
	if !root.HasError() {
		return nil
	}

	var bad *sitter.Node
	var find func(*sitter.Node)
	find = func(n *sitter.Node) {
		if bad != nil || n == nil {
			return
		}
		if n.IsError() || n.IsMissing() {
			bad = n
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			find(n.Child(i))
		}
	}
	find(root)

	if bad == nil {
		return errors.New("syntax error")
	}
	point := bad.StartPoint()
	return errors.Newf("syntax error at line %d, column %d", point.Row+1, point.Column+1)
}

// extractSpecifiersFromTree walks the AST in document order.
func extractSpecifiersFromTree(root *sitter.Node, sourceCode []byte) []langsupport.Specifier {
	var specifiers []langsupport.Specifier

	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}

		switch n.Type() {
		case "import_statement":
			specifiers = appendSourceSpecifier(specifiers, n.ChildByFieldName("source"), sourceCode, langsupport.OriginImport)
		case "export_statement":
			specifiers = appendSourceSpecifier(specifiers, n.ChildByFieldName("source"), sourceCode, langsupport.OriginReExport)
		case "import_require_clause":
			// TypeScript: import x = require('./x')
			source := n.ChildByFieldName("source")
			if source == nil {
				source = firstNamedChildOfType(n, "string")
			}
			specifiers = appendSourceSpecifier(specifiers, source, sourceCode, langsupport.OriginRequire)
		case "call_expression":
			if specifier, ok := callSpecifier(n, sourceCode); ok {
				specifiers = append(specifiers, specifier)
			}
		}

		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}

	walk(root)
	return specifiers
}

func appendSourceSpecifier(specifiers []langsupport.Specifier, source *sitter.Node, sourceCode []byte, origin langsupport.Origin) []langsupport.Specifier {
	if source == nil || source.Type() != "string" {
		return specifiers
	}

	importPath := cleanImportPath(source.Content(sourceCode))
	if importPath == "" {
		return specifiers
	}

	return append(specifiers, newSpecifier(importPath, origin))
}

func firstNamedChildOfType(n *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child != nil && child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// callSpecifier extracts the first string-literal argument of require(...) and import(...).
func callSpecifier(call *sitter.Node, sourceCode []byte) (langsupport.Specifier, bool) {
	function := call.ChildByFieldName("function")
	arguments := call.ChildByFieldName("arguments")
	if function == nil || arguments == nil {
		return langsupport.Specifier{}, false
	}

	var origin langsupport.Origin
	switch {
	case function.Type() == "identifier" && function.Content(sourceCode) == "require":
		origin = langsupport.OriginRequire
	case function.Type() == "import":
		origin = langsupport.OriginDynamicImport
	default:
		return langsupport.Specifier{}, false
	}

	if arguments.NamedChildCount() == 0 {
		return langsupport.Specifier{}, false
	}

	first := arguments.NamedChild(0)
	if first == nil || first.Type() != "string" {
		return langsupport.Specifier{}, false
	}

	importPath := cleanImportPath(first.Content(sourceCode))
	if importPath == "" {
		return langsupport.Specifier{}, false
	}

	return newSpecifier(importPath, origin), true
}

func newSpecifier(importPath string, origin langsupport.Origin) langsupport.Specifier {
	return langsupport.Specifier{
		Value:    importPath,
		Origin:   origin,
		External: IsExternalSpecifier(importPath),
	}
}

// cleanImportPath removes quotes from import path strings
func cleanImportPath(raw string) string {
	cleaned := strings.Trim(raw, "'\"`")
	return strings.TrimSpace(cleaned)
}
