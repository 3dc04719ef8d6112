package data

import (
	"github.com/LegacyCodeHQ/deadfiles/depgraph/langsupport"
	"github.com/LegacyCodeHQ/deadfiles/vcs"
)

// Module covers structured data files. They can be imported but reference nothing.
type Module struct{}

func (Module) Name() string {
	return "JSON"
}

func (Module) Kind() langsupport.ModuleKind {
	return langsupport.KindData
}

func (Module) Extensions() []string {
	return []string{".json"}
}

func (Module) Maturity() langsupport.MaturityLevel {
	return langsupport.MaturityStable
}

func (Module) CandidateExtensions(_ string) []string {
	return nil
}

func (Module) NewExtractor(_ vcs.ContentReader) langsupport.Extractor {
	return langsupport.LeafExtractor{}
}
