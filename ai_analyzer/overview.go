package ai_analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/giarcheuli/docparser/ai_analyzer/contracts"
	analyzerModels "github.com/giarcheuli/docparser/document_analyzer/models"
	scannerModels "github.com/giarcheuli/docparser/document_scanner/models"
)

// ProjectOverview renders the prompt context for one project: a stats line
// plus a per-document listing that reuses the per-file summaries already
// produced in this run.
func ProjectOverview(projectName string, stats scannerModels.ProjectStats, results []analyzerModels.AnalysisResult) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Project: %s\n", projectName))
	builder.WriteString(fmt.Sprintf("Documents: %d, total size: %d bytes\n", stats.FileCount, stats.TotalSize))
	if len(stats.Subfolders) > 0 {
		builder.WriteString("Subfolders: " + strings.Join(stats.Subfolders, ", ") + "\n")
	}

	builder.WriteString("\nDocuments:\n")
	for _, result := range results {
		if result.FileInfo.ProjectName != projectName {
			continue
		}
		line := fmt.Sprintf("- %s (%d words)", result.FileInfo.Name, result.WordCount)
		if usableSummary(result.Summary) {
			line += ": " + clip(result.Summary, 200)
		}
		builder.WriteString(line + "\n")
	}
	return builder.String()
}

// PortfolioOverview renders the prompt context for a whole run, one line per
// project.
func PortfolioOverview(directoryStats scannerModels.DirectoryStats, projectStats map[string]scannerModels.ProjectStats, projectNames []string) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Portfolio: %d projects, %d documents, %d bytes total\n\n",
		directoryStats.TotalProjects, directoryStats.TotalFiles, directoryStats.TotalSize))

	for _, name := range projectNames {
		stats := projectStats[name]
		builder.WriteString(fmt.Sprintf("- %s: %d documents, %d subfolders, types: %s\n",
			name, stats.FileCount, len(stats.Subfolders), extensionSummary(stats.Extensions)))
	}
	return builder.String()
}

func usableSummary(summary string) bool {
	return summary != "" &&
		summary != contracts.AnalysisUnavailableMessage &&
		summary != shortSummaryMessage
}

func extensionSummary(extensions map[string]int) string {
	if len(extensions) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(extensions))
	for ext := range extensions {
		keys = append(keys, ext)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, ext := range keys {
		parts = append(parts, fmt.Sprintf("%s (%d)", ext, extensions[ext]))
	}
	return strings.Join(parts, ", ")
}

func clip(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
