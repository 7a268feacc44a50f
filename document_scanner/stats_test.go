package document_scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/giarcheuli/docparser/document_scanner/models"
)

func statsFixture() []models.FileRecord {
	return []models.FileRecord{
		{Name: "a.txt", Extension: ".txt", Size: 100, ProjectName: "alpha"},
		{Name: "b.txt", Extension: ".txt", Size: 200, ProjectName: "alpha", SubfolderPath: "notes"},
		{Name: "c.pdf", Extension: ".pdf", Size: 1000, ProjectName: "beta"},
		{Name: "d.md", Extension: ".md", Size: 50},
	}
}

// TestDirectoryStatsTotals verifies file, size and project totals along with
// the extension histogram.
func TestDirectoryStatsTotals(t *testing.T) {
	stats := DirectoryStats(statsFixture())

	assert.Equal(t, 4, stats.TotalFiles)
	assert.Equal(t, int64(1350), stats.TotalSize)
	assert.Equal(t, 2, stats.TotalProjects)
	assert.Equal(t, map[string]int{".txt": 2, ".pdf": 1, ".md": 1}, stats.Extensions)
}

// TestDirectoryStatsEmpty verifies the zero case keeps a usable histogram.
func TestDirectoryStatsEmpty(t *testing.T) {
	stats := DirectoryStats(nil)

	assert.Zero(t, stats.TotalFiles)
	assert.Zero(t, stats.TotalSize)
	assert.Zero(t, stats.TotalProjects)
	assert.NotNil(t, stats.Extensions)
}

// TestProjectStatsPerProject verifies per-project aggregation and the sorted,
// distinct subfolder list.
func TestProjectStatsPerProject(t *testing.T) {
	projects := map[string][]models.FileRecord{
		"alpha": {
			{Extension: ".txt", Size: 100, SubfolderPath: "notes"},
			{Extension: ".txt", Size: 200, SubfolderPath: "notes"},
			{Extension: ".pdf", Size: 700, SubfolderPath: "archive/2024"},
			{Extension: ".md", Size: 10},
		},
		"beta": {
			{Extension: ".xml", Size: 5},
		},
	}

	stats := ProjectStats(projects)

	alpha := stats["alpha"]
	assert.Equal(t, 4, alpha.FileCount)
	assert.Equal(t, int64(1010), alpha.TotalSize)
	assert.Equal(t, map[string]int{".txt": 2, ".pdf": 1, ".md": 1}, alpha.Extensions)
	assert.Equal(t, []string{"archive/2024", "notes"}, alpha.Subfolders)

	beta := stats["beta"]
	assert.Equal(t, 1, beta.FileCount)
	assert.Empty(t, beta.Subfolders)
}
