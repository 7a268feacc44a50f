package document_scanner

import (
	"path/filepath"
	"sort"
	"strings"
)

// FormatTag identifies a supported document format category. Tags are the
// normalized (lower-case) file extensions themselves.
type FormatTag string

// supportedExtensions is the closed set of document extensions docparser
// recognizes. Anything outside this set is invisible to the scanner.
var supportedExtensions = map[string]struct{}{
	".doc":      {},
	".docx":     {},
	".pdf":      {},
	".txt":      {},
	".html":     {},
	".htm":      {},
	".md":       {},
	".markdown": {},
	".xlsx":     {},
	".xls":      {},
	".xml":      {},
}

// Classify maps a path to its format tag by extension, case-insensitively.
// The second return value is false for unsupported and extension-less paths.
func Classify(path string) (FormatTag, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := supportedExtensions[ext]; !ok {
		return "", false
	}
	return FormatTag(ext), true
}

// SupportedExtensions returns the recognized extensions in sorted order.
func SupportedExtensions() []string {
	extensions := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}
