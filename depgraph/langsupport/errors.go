package langsupport

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrEmptyURLReference marks a stylesheet url() token whose argument is blank.
var ErrEmptyURLReference = errors.New("empty url() reference")

// EmptyURLReferenceError reports where a blank url() argument was found.
type EmptyURLReferenceError struct {
	File string
	// Declaration is the source text of the declaration or at-rule holding the token.
	Declaration string
	Line        int
}

func (e *EmptyURLReferenceError) Error() string {
	return fmt.Sprintf("empty url() reference in %s:%d: %s", e.File, e.Line, e.Declaration)
}

func (e *EmptyURLReferenceError) Is(target error) bool {
	return target == ErrEmptyURLReference
}
