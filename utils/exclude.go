package utils

import (
	"path/filepath"
	"strings"
)

// IsExcluded reports whether a root-relative path matches any user-supplied
// exclude pattern. No patterns means nothing is excluded. A pattern matches
// when it equals or globs the full relative path, one of its path segments,
// or, for "dir/" style patterns, a leading directory.
func IsExcluded(relativePath string, patterns []string) bool {
	if len(patterns) == 0 || relativePath == "" {
		return false
	}
	relativePath = strings.ReplaceAll(relativePath, "\\", "/")
	segments := strings.Split(relativePath, "/")

	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		if strings.HasSuffix(pattern, "/") {
			dir := strings.TrimSuffix(pattern, "/")
			if relativePath == dir || strings.HasPrefix(relativePath, dir+"/") {
				return true
			}
			continue
		}

		if matched, _ := filepath.Match(pattern, relativePath); matched {
			return true
		}
		for _, segment := range segments {
			if matched, _ := filepath.Match(pattern, segment); matched {
				return true
			}
		}
	}
	return false
}
