package stylesheet

import (
	"path/filepath"

	"github.com/LegacyCodeHQ/deadfiles/depgraph/langsupport"
	"github.com/LegacyCodeHQ/deadfiles/vcs"
	"github.com/cockroachdb/errors"
)

var stylesheetExtensions = []string{".css", ".scss", ".less"}

type Module struct{}

func (Module) Name() string {
	return "CSS"
}

func (Module) Kind() langsupport.ModuleKind {
	return langsupport.KindStylesheet
}

func (Module) Extensions() []string {
	return []string{".css", ".less", ".scss"}
}

func (Module) Maturity() langsupport.MaturityLevel {
	return langsupport.MaturityBasicTests
}

// CandidateExtensions tries the importer's own dialect first.
func (Module) CandidateExtensions(importerExt string) []string {
	candidates := []string{importerExt}
	for _, ext := range stylesheetExtensions {
		if ext != importerExt {
			candidates = append(candidates, ext)
		}
	}
	return candidates
}

func (Module) NewExtractor(contentReader vcs.ContentReader) langsupport.Extractor {
	return extractor{contentReader: contentReader}
}

type extractor struct {
	contentReader vcs.ContentReader
}

func (e extractor) ExtractSpecifiers(absPath string) ([]langsupport.Specifier, error) {
	content, err := e.contentReader(absPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", absPath)
	}

	specifiers, err := ParseStylesheetSpecifiers(content, DialectForExtension(filepath.Ext(absPath)))
	if err != nil {
		var emptyURL *langsupport.EmptyURLReferenceError
		if errors.As(err, &emptyURL) {
			emptyURL.File = absPath
			return nil, emptyURL
		}
		return nil, errors.Wrapf(err, "failed to parse imports in %s", absPath)
	}
	return specifiers, nil
}
