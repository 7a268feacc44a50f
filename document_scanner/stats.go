package document_scanner

import (
	"sort"

	"github.com/giarcheuli/docparser/document_scanner/models"
)

// DirectoryStats aggregates totals over a record set: file count, combined
// size, distinct project count and an extension histogram.
func DirectoryStats(records []models.FileRecord) models.DirectoryStats {
	stats := models.DirectoryStats{Extensions: make(map[string]int)}
	projects := make(map[string]struct{})

	for _, record := range records {
		stats.TotalFiles++
		stats.TotalSize += record.Size
		stats.Extensions[record.Extension]++
		if record.ProjectName != "" {
			projects[record.ProjectName] = struct{}{}
		}
	}
	stats.TotalProjects = len(projects)
	return stats
}

// ProjectStats aggregates per-project totals. Subfolder lists are distinct
// and sorted; the project-root pseudo subfolder ("") is not listed.
func ProjectStats(projects map[string][]models.FileRecord) map[string]models.ProjectStats {
	stats := make(map[string]models.ProjectStats, len(projects))

	for name, records := range projects {
		projectStats := models.ProjectStats{Extensions: make(map[string]int)}
		subfolders := make(map[string]struct{})

		for _, record := range records {
			projectStats.FileCount++
			projectStats.TotalSize += record.Size
			projectStats.Extensions[record.Extension]++
			if record.SubfolderPath != "" {
				subfolders[record.SubfolderPath] = struct{}{}
			}
		}

		projectStats.Subfolders = make([]string, 0, len(subfolders))
		for subfolder := range subfolders {
			projectStats.Subfolders = append(projectStats.Subfolders, subfolder)
		}
		sort.Strings(projectStats.Subfolders)
		stats[name] = projectStats
	}
	return stats
}
