package langsupport

// TestFileDetector is implemented by modules that can recognize test files.
type TestFileDetector interface {
	IsTestFile(filePath string) bool
}
