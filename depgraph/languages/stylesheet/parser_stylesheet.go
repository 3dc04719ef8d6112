package stylesheet

import (
	"context"
	"regexp"
	"strings"

	"github.com/LegacyCodeHQ/deadfiles/depgraph/langsupport"
	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"
)

// Dialect selects how stylesheet source is prepared before parsing.
type Dialect int

const (
	DialectCSS Dialect = iota
	DialectSCSS
	DialectLESS
)

func (d Dialect) String() string {
	switch d {
	case DialectSCSS:
		return "scss"
	case DialectLESS:
		return "less"
	default:
		return "css"
	}
}

// DialectForExtension returns the dialect for a stylesheet file extension.
func DialectForExtension(ext string) Dialect {
	switch strings.ToLower(ext) {
	case ".scss":
		return DialectSCSS
	case ".less":
		return DialectLESS
	default:
		return DialectCSS
	}
}

// urlTokenPattern matches url() tokens. Quoted arguments may contain ")".
var urlTokenPattern = regexp.MustCompile(`url\(\s*(?:"([^"]*)"|'([^']*)'|([^)]*?))\s*\)`)

// ParseStylesheetSpecifiers parses stylesheet source and returns @import targets and
// declaration url() arguments in source order. A blank url() argument fails with
// an *langsupport.EmptyURLReferenceError.
func ParseStylesheetSpecifiers(sourceCode []byte, dialect Dialect) ([]langsupport.Specifier, error) {
	if dialect != DialectCSS {
		sourceCode = blankLineComments(sourceCode)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(css.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", dialect)
	}
	defer tree.Close()

	return extractSpecifiersFromTree(tree.RootNode(), sourceCode)
}

func extractSpecifiersFromTree(root *sitter.Node, sourceCode []byte) ([]langsupport.Specifier, error) {
	var specifiers []langsupport.Specifier

	var walk func(*sitter.Node) error
	walk = func(n *sitter.Node) error {
		if n == nil {
			return nil
		}

		switch n.Type() {
		case "import_statement":
			targets, err := importTargets(n, n.Content(sourceCode), sourceCode)
			if err != nil {
				return err
			}
			specifiers = append(specifiers, targets...)
			return nil
		case "ERROR":
			// An @import the grammar could not parse still names its targets. The
			// rule may continue past the error node, up to its ";".
			if strings.HasPrefix(strings.TrimSpace(n.Content(sourceCode)), "@import") && !hasDescendant(n, "import_statement") {
				targets, err := importTargets(n, string(sourceCode[n.StartByte():]), sourceCode)
				if err != nil {
					return err
				}
				specifiers = append(specifiers, targets...)
			}
		case "declaration":
			urls, err := declarationURLs(n, sourceCode)
			if err != nil {
				return err
			}
			specifiers = append(specifiers, urls...)
			return nil
		}

		for i := 0; i < int(n.NamedChildCount()); i++ {
			if err := walk(n.NamedChild(i)); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}
	return specifiers, nil
}

// importTargets returns every string or url() target of an @import rule in source
// order. Media queries and LESS import options are skipped.
func importTargets(n *sitter.Node, rule string, sourceCode []byte) ([]langsupport.Specifier, error) {
	params := strings.TrimPrefix(strings.TrimSpace(rule), "@import")
	params = stripImportOptions(params)

	var specifiers []langsupport.Specifier
	for _, target := range splitImportTargets(params) {
		value, ok := importTargetValue(target)
		if !ok {
			continue
		}
		if value == "" {
			if isURLToken(target) {
				return nil, emptyURLError(n, sourceCode)
			}
			continue
		}
		specifiers = append(specifiers, newSpecifier(value, langsupport.OriginAtImport))
	}
	return specifiers, nil
}

// splitImportTargets splits @import parameters on commas outside quotes and
// parentheses. It stops at the ";" ending the rule.
func splitImportTargets(params string) []string {
	var targets []string
	var quote byte
	depth := 0
	start := 0
	for i := 0; i < len(params); i++ {
		c := params[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',', ';':
			if depth > 0 {
				continue
			}
			targets = append(targets, strings.TrimSpace(params[start:i]))
			if c == ';' {
				return targets
			}
			start = i + 1
		}
	}
	return append(targets, strings.TrimSpace(params[start:]))
}

// importTargetValue returns the target named at the start of one @import parameter.
// The boolean is false when the parameter is a media query rather than a target.
func importTargetValue(target string) (string, bool) {
	if target == "" {
		return "", false
	}
	switch target[0] {
	case '"', '\'':
		end := strings.IndexByte(target[1:], target[0])
		if end < 0 {
			return cleanValue(target), true
		}
		return cleanValue(target[1 : end+1]), true
	}
	if !isURLToken(target) {
		return "", false
	}
	match := urlTokenPattern.FindStringSubmatch(target)
	if match == nil {
		return "", false
	}
	return urlArgument(match), true
}

func isURLToken(target string) bool {
	return strings.HasPrefix(strings.ToLower(target), "url(")
}

// urlArgument returns the cleaned argument of a urlTokenPattern match.
func urlArgument(match []string) string {
	return cleanValue(match[1] + match[2] + match[3])
}

func hasDescendant(n *sitter.Node, nodeType string) bool {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		if child.Type() == nodeType || hasDescendant(child, nodeType) {
			return true
		}
	}
	return false
}

// declarationURLs extracts every url() argument of a declaration's value.
func declarationURLs(n *sitter.Node, sourceCode []byte) ([]langsupport.Specifier, error) {
	text := n.Content(sourceCode)
	if !strings.Contains(text, "url(") {
		return nil, nil
	}

	value := text
	if idx := strings.Index(text, ":"); idx >= 0 {
		value = text[idx+1:]
	}

	var specifiers []langsupport.Specifier
	for _, match := range urlTokenPattern.FindAllStringSubmatch(value, -1) {
		arg := urlArgument(match)
		if arg == "" {
			return nil, emptyURLError(n, sourceCode)
		}
		specifiers = append(specifiers, newSpecifier(arg, langsupport.OriginURL))
	}
	return specifiers, nil
}

func emptyURLError(n *sitter.Node, sourceCode []byte) error {
	return &langsupport.EmptyURLReferenceError{
		Declaration: strings.TrimSpace(n.Content(sourceCode)),
		Line:        int(n.StartPoint().Row) + 1,
	}
}

func newSpecifier(value string, origin langsupport.Origin) langsupport.Specifier {
	if IsExternalReference(value) {
		return langsupport.Specifier{Value: value, Origin: origin, External: true}
	}
	return langsupport.Specifier{Value: stripQueryAndFragment(value), Origin: origin}
}

// IsExternalReference reports whether a stylesheet reference points outside the tree:
// remote URLs, data URIs, fragment-only references and ~package imports.
func IsExternalReference(value string) bool {
	lower := strings.ToLower(value)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return true
	case strings.HasPrefix(lower, "//"):
		return true
	case strings.HasPrefix(lower, "data:"):
		return true
	case strings.HasPrefix(lower, "#"):
		return true
	case strings.HasPrefix(lower, "~"):
		return true
	}
	return strings.Contains(lower, "://")
}

func stripQueryAndFragment(value string) string {
	if idx := strings.IndexAny(value, "?#"); idx > 0 {
		return value[:idx]
	}
	return value
}

// stripImportOptions drops a leading LESS option list such as "(reference)".
func stripImportOptions(params string) string {
	params = strings.TrimSpace(params)
	if !strings.HasPrefix(params, "(") {
		return params
	}
	if idx := strings.Index(params, ")"); idx >= 0 {
		return strings.TrimSpace(params[idx+1:])
	}
	return params
}

func cleanValue(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.Trim(cleaned, "'\"")
	return strings.TrimSpace(cleaned)
}

// blankLineComments replaces SCSS/LESS "//" comments with spaces so the CSS grammar
// accepts the source. Byte offsets and line numbers are preserved.
func blankLineComments(sourceCode []byte) []byte {
	out := make([]byte, len(sourceCode))
	copy(out, sourceCode)

	var quote byte
	parenDepth := 0
	for i := 0; i < len(out); i++ {
		c := out[i]

		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote || c == '\n' {
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'':
			quote = c
		case '(':
			parenDepth++
		case ')':
			if parenDepth > 0 {
				parenDepth--
			}
		case '/':
			if i+1 < len(out) && out[i+1] == '*' {
				end := strings.Index(string(out[i+2:]), "*/")
				if end < 0 {
					return out
				}
				i += end + 3
				continue
			}
			if i+1 < len(out) && out[i+1] == '/' && parenDepth == 0 && (i == 0 || out[i-1] != ':') {
				for i < len(out) && out[i] != '\n' {
					out[i] = ' '
					i++
				}
			}
		}
	}

	return out
}
