package langsupport

// Extractor yields the specifiers a module references, in source order.
type Extractor interface {
	ExtractSpecifiers(absPath string) ([]Specifier, error)
}

// LeafExtractor is the extractor for kinds that reference nothing.
type LeafExtractor struct{}

func (LeafExtractor) ExtractSpecifiers(_ string) ([]Specifier, error) {
	return nil, nil
}

// ScriptExtensions is the fixed completion priority for extension-less references.
var ScriptExtensions = []string{".json", ".js", ".jsx", ".ts", ".tsx"}

// ScriptCandidateExtensions returns a copy of ScriptExtensions.
func ScriptCandidateExtensions() []string {
	return append([]string(nil), ScriptExtensions...)
}
