package document_scanner

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/giarcheuli/docparser/document_scanner/contracts"
	"github.com/giarcheuli/docparser/document_scanner/models"
	"github.com/giarcheuli/docparser/utils"
)

// DocumentScanner discovers supported documents under a root directory and
// groups them by project.
type DocumentScanner struct {
	ExcludePatterns []string
}

// NewDocumentScanner initializes a new DocumentScanner. Exclude patterns are
// optional; by default every subdirectory is walked.
func NewDocumentScanner(excludePatterns []string) contracts.IDocumentScanner {
	return &DocumentScanner{ExcludePatterns: excludePatterns}
}

// Scan walks rootDir and returns the discovered documents in walk order. An
// invalid or unreadable root yields an empty result rather than an error, and
// a single unreadable entry never aborts the walk.
func (scanner *DocumentScanner) Scan(rootDir string) *models.ScanResult {
	result := &models.ScanResult{
		Root:     rootDir,
		Projects: make(map[string][]models.FileRecord),
	}

	rootInfo, err := os.Stat(rootDir)
	if err != nil || !rootInfo.IsDir() {
		log.Printf("Warning: scan root %q is not a readable directory", rootDir)
		return result
	}

	walkErr := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("Warning: skipping %s: %v", path, err)
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relativePath, relErr := filepath.Rel(rootDir, path)
		if relErr == nil {
			relativePath = strings.ReplaceAll(relativePath, "\\", "/")
		}
		if relativePath != "." && utils.IsExcluded(relativePath, scanner.ExcludePatterns) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			return nil
		}
		if _, supported := Classify(path); !supported {
			return nil
		}

		record := scanner.buildRecord(rootDir, path, entry)
		result.Records = append(result.Records, record)
		if record.ProjectName != "" {
			if _, seen := result.Projects[record.ProjectName]; !seen {
				result.ProjectNames = append(result.ProjectNames, record.ProjectName)
			}
			result.Projects[record.ProjectName] = append(result.Projects[record.ProjectName], record)
		}
		return nil
	})
	if walkErr != nil {
		log.Printf("Warning: walk of %s ended early: %v", rootDir, walkErr)
	}

	return result
}

func (scanner *DocumentScanner) buildRecord(rootDir string, path string, entry fs.DirEntry) models.FileRecord {
	record := models.FileRecord{
		Path:      path,
		Name:      filepath.Base(path),
		Extension: strings.ToLower(filepath.Ext(path)),
	}
	record.ProjectName, record.RelativePath, record.SubfolderPath = ResolveProjectPath(rootDir, path)

	info, err := entry.Info()
	if err != nil {
		now := time.Now()
		record.Created = now
		record.Modified = now
		record.ErrorMessage = err.Error()
		return record
	}
	record.Size = info.Size()
	// Creation time is not portable, so both fields carry the mtime.
	record.Created = info.ModTime()
	record.Modified = info.ModTime()

	file, err := os.Open(path)
	if err != nil {
		record.ErrorMessage = err.Error()
		return record
	}
	file.Close()
	record.IsReadable = true
	return record
}
