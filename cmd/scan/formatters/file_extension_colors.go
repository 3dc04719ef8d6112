package formatters

import (
	"path/filepath"
	"sort"
)

// Fill colors for node statuses. Extension colors never reuse them.
const (
	EntryColor   = "palegreen"
	UnusedColor  = "mistyrose"
	DefaultColor = "white"
)

var extensionPalette = []string{
	"lightblue", "lightyellow", "lightsalmon", "lightpink", "lavender",
	"peachpuff", "plum", "powderblue", "khaki", "palegoldenrod", "thistle",
}

// ExtensionColors assigns a palette color to every extension found in fileNames,
// in sorted extension order.
func ExtensionColors(fileNames []string) map[string]string {
	uniqueExtensions := make(map[string]bool)
	for _, fileName := range fileNames {
		ext := filepath.Ext(fileName)
		if ext != "" {
			uniqueExtensions[ext] = true
		}
	}

	sortedExtensions := make([]string, 0, len(uniqueExtensions))
	for ext := range uniqueExtensions {
		sortedExtensions = append(sortedExtensions, ext)
	}
	sort.Strings(sortedExtensions)

	extensionColors := make(map[string]string, len(sortedExtensions))
	for i, ext := range sortedExtensions {
		extensionColors[ext] = extensionPalette[i%len(extensionPalette)]
	}

	return extensionColors
}

// MajorityExtension returns the most common extension, breaking ties by sort order.
func MajorityExtension(fileNames []string) string {
	counts := make(map[string]int)
	for _, fileName := range fileNames {
		counts[filepath.Ext(fileName)]++
	}

	extensions := make([]string, 0, len(counts))
	for ext := range counts {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)

	majority := ""
	maxCount := 0
	for _, ext := range extensions {
		if counts[ext] > maxCount {
			maxCount = counts[ext]
			majority = ext
		}
	}
	return majority
}
