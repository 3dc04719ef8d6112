package javascript

import (
	"path/filepath"
	"strings"
)

var testFileExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".mjs": true,
	".cjs": true,
}

// IsTestFile reports whether the given JavaScript path is a test file.
func IsTestFile(filePath string) bool {
	fileName := filepath.Base(filePath)
	ext := filepath.Ext(fileName)
	if !testFileExtensions[ext] {
		return false
	}

	if strings.HasSuffix(fileName, ".test"+ext) || strings.HasSuffix(fileName, ".spec"+ext) {
		return true
	}

	return strings.Contains(filepath.ToSlash(filePath), "/__tests__/")
}
