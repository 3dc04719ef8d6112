package depgraph

import (
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/deadfiles/depgraph/langsupport"
	"github.com/cockroachdb/errors"
)

// ErrModuleNotFound marks a reference that no existing file satisfies.
var ErrModuleNotFound = errors.New("module not found")

// ErrEmptyURLReference marks a stylesheet url() token with a blank argument.
var ErrEmptyURLReference = langsupport.ErrEmptyURLReference

// EmptyURLReferenceError reports the file and declaration holding a blank url().
type EmptyURLReferenceError = langsupport.EmptyURLReferenceError

// ModuleNotFoundError describes a failed extension completion.
type ModuleNotFoundError struct {
	// Specifier is the reference as written; empty for entry modules.
	Specifier string
	// Importer is the module holding the reference; empty for entry modules.
	Importer ModulePath
	// Path is the joined, normalized path before completion.
	Path  string
	Tried []string
}

func (e *ModuleNotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "module not found: %s", e.Path)
	if e.Importer != "" {
		fmt.Fprintf(&b, " (imported as %q from %s)", e.Specifier, e.Importer)
	}
	if len(e.Tried) > 0 {
		fmt.Fprintf(&b, "; tried %s", strings.Join(e.Tried, ", "))
	}
	return b.String()
}

func (e *ModuleNotFoundError) Is(target error) bool {
	return target == ErrModuleNotFound
}
