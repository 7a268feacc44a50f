package models

import "time"

// FileRecord holds everything the scanner learns about a single document
// without opening its content.
type FileRecord struct {
	Path          string
	Name          string
	Extension     string
	Size          int64
	Created       time.Time
	Modified      time.Time
	ProjectName   string
	RelativePath  string
	SubfolderPath string
	IsReadable    bool
	ErrorMessage  string
}

// ScanResult bundles the outcome of one scan run. Records preserves discovery
// order; Projects groups the same records by project name, with ProjectNames
// keeping the order in which projects were first seen.
type ScanResult struct {
	Root         string
	Records      []FileRecord
	Projects     map[string][]FileRecord
	ProjectNames []string
}

// DirectoryStats summarizes a whole scan.
type DirectoryStats struct {
	TotalFiles    int
	TotalSize     int64
	TotalProjects int
	Extensions    map[string]int
}

// ProjectStats summarizes a single project's records.
type ProjectStats struct {
	FileCount  int
	TotalSize  int64
	Extensions map[string]int
	Subfolders []string
}
