package depgraph

import (
	"path/filepath"

	"github.com/LegacyCodeHQ/deadfiles/depgraph/langsupport"
	"github.com/LegacyCodeHQ/deadfiles/depgraph/registry"
)

// TraverseEntry completes an entry path relative to root, claims it and traverses
// everything it references. The boolean is false when the entry had already been
// reached, in which case its references were traversed then.
func (r *Run) TraverseEntry(root, entry string, onVisit func(ModulePath)) (ModulePath, bool, error) {
	joined := filepath.FromSlash(entry)
	if !filepath.IsAbs(joined) {
		joined = filepath.Join(root, joined)
	}
	normalized, err := NormalizePath(joined)
	if err != nil {
		return "", false, err
	}

	path, err := Complete(string(normalized), langsupport.ScriptCandidateExtensions())
	if err != nil {
		return "", false, err
	}

	if err := addVertex(r.graph, path); err != nil {
		return "", false, err
	}
	if !r.claim(path) {
		r.logger.Debug("entry already reached", "entry", path)
		return path, false, nil
	}

	r.logger.Debug("traversing entry", "entry", path)
	if err := r.Traverse(path, onVisit); err != nil {
		return "", false, err
	}
	return path, true, nil
}

// Traverse extracts the specifiers of path, resolves each one and recurses into
// every module not visited before, depth-first and in source order. onVisit is
// called once per newly visited module before its own references are traversed.
// Data and unknown modules are leaves and are never read.
func (r *Run) Traverse(path ModulePath, onVisit func(ModulePath)) error {
	if err := addVertex(r.graph, path); err != nil {
		return err
	}

	module, ok := registry.ModuleForPath(string(path))
	if !ok || module.Kind().IsLeaf() {
		return nil
	}

	specifiers, err := module.NewExtractor(r.contentReader).ExtractSpecifiers(string(path))
	if err != nil {
		return err
	}

	for _, specifier := range specifiers {
		target, ok, err := r.resolver.Resolve(path, specifier)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		r.logger.Debug("visited", "module", target, "from", path, "specifier", specifier.Value)
		if onVisit != nil {
			onVisit(target)
		}
		if err := r.Traverse(target, onVisit); err != nil {
			return err
		}
	}

	return nil
}
