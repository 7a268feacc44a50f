package ai_analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/giarcheuli/docparser/ai_analyzer/contracts"
	analyzerModels "github.com/giarcheuli/docparser/document_analyzer/models"
	scannerModels "github.com/giarcheuli/docparser/document_scanner/models"
)

// TestProjectOverview verifies the per-project prompt context: stats line,
// subfolders and one line per document with its reusable summary.
func TestProjectOverview(t *testing.T) {
	stats := scannerModels.ProjectStats{
		FileCount:  2,
		TotalSize:  3000,
		Subfolders: []string{"design"},
	}
	results := []analyzerModels.AnalysisResult{
		{
			FileInfo:  scannerModels.FileRecord{Name: "intro.md", ProjectName: "alpha"},
			WordCount: 120,
			Summary:   "Introduces the alpha project.",
		},
		{
			FileInfo:  scannerModels.FileRecord{Name: "scratch.txt", ProjectName: "alpha"},
			WordCount: 5,
			Summary:   "Content too short for meaningful summary",
		},
		{
			FileInfo:  scannerModels.FileRecord{Name: "other.md", ProjectName: "beta"},
			WordCount: 40,
			Summary:   "Belongs elsewhere.",
		},
	}

	overview := ProjectOverview("alpha", stats, results)

	assert.Contains(t, overview, "Project: alpha\n")
	assert.Contains(t, overview, "Documents: 2, total size: 3000 bytes\n")
	assert.Contains(t, overview, "Subfolders: design\n")
	assert.Contains(t, overview, "- intro.md (120 words): Introduces the alpha project.\n")
	assert.Contains(t, overview, "- scratch.txt (5 words)\n")
	assert.NotContains(t, overview, "Content too short")
	assert.NotContains(t, overview, "other.md")
}

// TestProjectOverviewSkipsUnavailableSummaries verifies placeholder summaries
// never leak into the prompt context.
func TestProjectOverviewSkipsUnavailableSummaries(t *testing.T) {
	results := []analyzerModels.AnalysisResult{
		{
			FileInfo:  scannerModels.FileRecord{Name: "a.txt", ProjectName: "alpha"},
			WordCount: 9,
			Summary:   contracts.AnalysisUnavailableMessage,
		},
	}

	overview := ProjectOverview("alpha", scannerModels.ProjectStats{FileCount: 1}, results)

	assert.Contains(t, overview, "- a.txt (9 words)\n")
	assert.NotContains(t, overview, contracts.AnalysisUnavailableMessage)
}

// TestPortfolioOverview verifies the one-line-per-project portfolio context.
func TestPortfolioOverview(t *testing.T) {
	directoryStats := scannerModels.DirectoryStats{
		TotalFiles:    5,
		TotalSize:     9000,
		TotalProjects: 2,
	}
	projectStats := map[string]scannerModels.ProjectStats{
		"alpha": {FileCount: 3, Subfolders: []string{"design", "docs"}, Extensions: map[string]int{".md": 2, ".txt": 1}},
		"beta":  {FileCount: 2, Extensions: map[string]int{".pdf": 2}},
	}

	overview := PortfolioOverview(directoryStats, projectStats, []string{"alpha", "beta"})

	assert.Contains(t, overview, "Portfolio: 2 projects, 5 documents, 9000 bytes total\n")
	assert.Contains(t, overview, "- alpha: 3 documents, 2 subfolders, types: .md (2), .txt (1)\n")
	assert.Contains(t, overview, "- beta: 2 documents, 0 subfolders, types: .pdf (2)\n")
}

// TestExtensionSummary verifies sorted rendering and the empty case.
func TestExtensionSummary(t *testing.T) {
	assert.Equal(t, "none", extensionSummary(nil))
	assert.Equal(t, ".md (2), .txt (1)", extensionSummary(map[string]int{".txt": 1, ".md": 2}))
}

// TestClip verifies the character based cutoff.
func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abc...", clip("abcdef", 3))
}
