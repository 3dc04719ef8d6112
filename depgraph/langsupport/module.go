package langsupport

import "github.com/LegacyCodeHQ/deadfiles/vcs"

// Module describes pluggable language support.
type Module interface {
	Name() string
	Kind() ModuleKind
	Extensions() []string
	Maturity() MaturityLevel
	// CandidateExtensions lists, in priority order, the extensions tried when a
	// module of this language references a path without one.
	CandidateExtensions(importerExt string) []string
	NewExtractor(contentReader vcs.ContentReader) Extractor
}
