package depgraph

// UnusedFiles returns the members of all that are neither entries nor used,
// preserving the order of all.
func UnusedFiles(all, entries, used []ModulePath) []ModulePath {
	reached := make(map[ModulePath]bool, len(entries)+len(used))
	for _, path := range entries {
		reached[path] = true
	}
	for _, path := range used {
		reached[path] = true
	}

	unused := make([]ModulePath, 0, len(all))
	for _, path := range all {
		if !reached[path] {
			unused = append(unused, path)
		}
	}
	return unused
}
