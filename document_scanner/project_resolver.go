package document_scanner

import (
	"path/filepath"
	"strings"
)

// ResolveProjectPath derives the project grouping fields for a file under the
// scan root. A file directly inside the root belongs to a synthetic project
// named after the root directory itself. Deeper files take their first path
// segment as the project name and the segments between project and file name,
// joined with "/", as the subfolder path.
//
// A path that does not resolve to a location inside the root yields three
// empty strings; callers keep the record but leave it out of project grouping.
func ResolveProjectPath(rootDir string, path string) (projectName string, relativePath string, subfolderPath string) {
	relative, err := filepath.Rel(rootDir, path)
	if err != nil {
		return "", "", ""
	}
	relative = strings.ReplaceAll(relative, "\\", "/")
	if relative == "." || relative == ".." || strings.HasPrefix(relative, "../") {
		return "", "", ""
	}

	segments := strings.Split(relative, "/")
	if len(segments) == 1 {
		return filepath.Base(rootDir), relative, ""
	}
	return segments[0], relative, strings.Join(segments[1:len(segments)-1], "/")
}
