package javascript

import (
	"github.com/LegacyCodeHQ/deadfiles/depgraph/langsupport"
	"github.com/LegacyCodeHQ/deadfiles/vcs"
	"github.com/cockroachdb/errors"
)

type Module struct{}

func (Module) Name() string {
	return "JavaScript"
}

func (Module) Kind() langsupport.ModuleKind {
	return langsupport.KindScript
}

func (Module) Extensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs"}
}

func (Module) Maturity() langsupport.MaturityLevel {
	return langsupport.MaturityActivelyTested
}

func (Module) CandidateExtensions(_ string) []string {
	return langsupport.ScriptCandidateExtensions()
}

func (Module) NewExtractor(contentReader vcs.ContentReader) langsupport.Extractor {
	return extractor{contentReader: contentReader}
}

func (Module) IsTestFile(filePath string) bool {
	return IsTestFile(filePath)
}

type extractor struct {
	contentReader vcs.ContentReader
}

func (e extractor) ExtractSpecifiers(absPath string) ([]langsupport.Specifier, error) {
	content, err := e.contentReader(absPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", absPath)
	}

	specifiers, err := ParseJavaScriptImports(content)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse imports in %s", absPath)
	}
	return specifiers, nil
}
