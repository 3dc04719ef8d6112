package formatters

import (
	"path/filepath"
	"strings"
)

// BuildNodeNames returns stable, distinct display names for file paths.
// Paths that share the same base name are disambiguated by increasing path suffix depth.
func BuildNodeNames(paths []string) map[string]string {
	names := make(map[string]string, len(paths))
	groupedByBase := make(map[string][]string, len(paths))
	for _, path := range paths {
		base := filepath.Base(path)
		groupedByBase[base] = append(groupedByBase[base], path)
	}

	for base, groupedPaths := range groupedByBase {
		if len(groupedPaths) == 1 {
			names[groupedPaths[0]] = base
			continue
		}

		for depth := 2; ; depth++ {
			if suffixes, ok := distinctSuffixes(groupedPaths, depth); ok {
				for path, suffix := range suffixes {
					names[path] = suffix
				}
				break
			}
		}
	}

	return names
}

// distinctSuffixes returns the last depth segments of every path, or false when two
// paths still share a suffix. Paths shorter than depth keep all their segments, so
// identical paths terminate once depth exceeds their length.
func distinctSuffixes(paths []string, depth int) (map[string]string, bool) {
	suffixes := make(map[string]string, len(paths))
	counts := make(map[string]int, len(paths))
	longest := 0
	for _, path := range paths {
		suffix, segments := pathSuffix(path, depth)
		suffixes[path] = suffix
		counts[suffix]++
		if segments > longest {
			longest = segments
		}
	}

	for _, suffix := range suffixes {
		if counts[suffix] > 1 && depth <= longest {
			return nil, false
		}
	}
	return suffixes, true
}

func pathSuffix(path string, depth int) (string, int) {
	normalized := filepath.ToSlash(filepath.Clean(path))
	parts := strings.Split(strings.TrimPrefix(normalized, "/"), "/")
	if depth > len(parts) {
		depth = len(parts)
	}
	return strings.Join(parts[len(parts)-depth:], "/"), len(parts)
}
