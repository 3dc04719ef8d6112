package registry

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/LegacyCodeHQ/deadfiles/depgraph/langsupport"
	"github.com/LegacyCodeHQ/deadfiles/depgraph/languages/data"
	"github.com/LegacyCodeHQ/deadfiles/depgraph/languages/javascript"
	"github.com/LegacyCodeHQ/deadfiles/depgraph/languages/stylesheet"
	"github.com/LegacyCodeHQ/deadfiles/depgraph/languages/typescript"
)

var modules = []langsupport.Module{
	stylesheet.Module{},
	javascript.Module{},
	data.Module{},
	typescript.Module{},
}

// LanguageSupport describes one supported language and the extensions that map to it.
type LanguageSupport struct {
	Name       string
	Kind       langsupport.ModuleKind
	Extensions []string
	Maturity   langsupport.MaturityLevel
}

// Modules returns supported language modules in deterministic order.
func Modules() []langsupport.Module {
	return append([]langsupport.Module(nil), modules...)
}

// ModuleForExtension returns the module registered for the provided extension.
// Matching is case-insensitive.
func ModuleForExtension(ext string) (langsupport.Module, bool) {
	ext = strings.ToLower(ext)
	for _, module := range modules {
		for _, moduleExt := range module.Extensions() {
			if moduleExt == ext {
				return module, true
			}
		}
	}

	return nil, false
}

// ModuleForPath returns the module for the file's extension.
func ModuleForPath(filePath string) (langsupport.Module, bool) {
	return ModuleForExtension(filepath.Ext(filePath))
}

// IsSupportedLanguageExtension reports whether files with the extension are parsed for references.
func IsSupportedLanguageExtension(ext string) bool {
	_, ok := ModuleForExtension(ext)
	return ok
}

// SupportedLanguages returns a copy of all supported languages and their extensions.
func SupportedLanguages() []LanguageSupport {
	languages := make([]LanguageSupport, len(modules))
	for i, module := range modules {
		languages[i] = LanguageSupport{
			Name:       module.Name(),
			Kind:       module.Kind(),
			Extensions: append([]string(nil), module.Extensions()...),
			Maturity:   module.Maturity(),
		}
	}
	return languages
}

// SupportedLanguageExtensions returns all supported extensions in sorted order.
func SupportedLanguageExtensions() []string {
	var extensions []string
	for _, module := range modules {
		extensions = append(extensions, module.Extensions()...)
	}
	sort.Strings(extensions)
	return extensions
}

// IsTestFile reports whether a file path should be treated as a test file.
// Detection is delegated to language-specific implementations.
func IsTestFile(filePath string) bool {
	module, ok := ModuleForPath(filePath)
	if !ok {
		return false
	}

	detector, ok := module.(langsupport.TestFileDetector)
	if !ok {
		return false
	}
	return detector.IsTestFile(filePath)
}
