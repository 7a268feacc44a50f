package report_generator

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	analyzerModels "github.com/giarcheuli/docparser/document_analyzer/models"
	scannerModels "github.com/giarcheuli/docparser/document_scanner/models"
	"github.com/giarcheuli/docparser/report_generator/contracts"
	"github.com/giarcheuli/docparser/report_generator/models"
)

const (
	comprehensiveReportName = "COMPREHENSIVE_AI_REPORT.md"
	overviewReportName      = "OVERVIEW_AI_REPORT.md"
	crossProjectReportName  = "CROSS_PROJECT_ANALYSIS.md"

	largestFileCount = 3
)

// ReportGenerator writes one markdown report session per run. Every session
// lives in its own directory named after the scan root and the start time, so
// repeated runs never overwrite each other.
type ReportGenerator struct {
	reportsDir string
	runID      string
}

// NewReportGenerator returns a generator writing sessions under reportsDir.
func NewReportGenerator(reportsDir string) contracts.IReportGenerator {
	if reportsDir == "" {
		reportsDir = "Reports"
	}
	return &ReportGenerator{
		reportsDir: reportsDir,
		runID:      uuid.NewString(),
	}
}

// GenerateReports renders the full report set and returns the session
// directory it was written to.
func (generator *ReportGenerator) GenerateReports(data *models.ReportData) (string, error) {
	if data == nil || data.ScanResult == nil {
		return "", errors.New("nothing to report")
	}

	sessionName := fmt.Sprintf("%s_%s", filepath.Base(data.ScanResult.Root), time.Now().Format("02_01_06_15_04"))
	sessionDir := filepath.Join(generator.reportsDir, sessionName)
	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create session directory: %w", err)
	}

	reports := map[string]string{
		comprehensiveReportName: generator.comprehensiveReport(data),
		overviewReportName:      generator.overviewReport(data),
	}
	for _, project := range data.ScanResult.ProjectNames {
		reports[projectReportName(project)] = generator.projectReport(project, data)
	}
	if data.AIEnabled && data.CrossAnalysis != "" {
		reports[crossProjectReportName] = generator.crossProjectReport(data)
	}

	for name, content := range reports {
		if err := os.WriteFile(filepath.Join(sessionDir, name), []byte(content), 0644); err != nil {
			return "", fmt.Errorf("failed to write report %s: %w", name, err)
		}
	}

	log.Printf("Generated %d reports in %s", len(reports), sessionDir)
	return sessionDir, nil
}

func (generator *ReportGenerator) comprehensiveReport(data *models.ReportData) string {
	var builder strings.Builder
	root := data.ScanResult.Root

	builder.WriteString("# Comprehensive Document Analysis Report\n")
	builder.WriteString(fmt.Sprintf("## %s\n\n", filepath.Base(root)))
	generator.writeHeader(&builder, data)

	totalWords := 0
	for _, result := range data.Results {
		totalWords += result.WordCount
	}

	builder.WriteString("## Executive Summary\n\n")
	builder.WriteString(fmt.Sprintf("This analysis covers **%d projects** containing **%d documents** (%s, %s words).\n\n",
		data.DirectoryStats.TotalProjects, data.DirectoryStats.TotalFiles,
		humanize.Bytes(uint64(data.DirectoryStats.TotalSize)), humanize.Comma(int64(totalWords))))

	builder.WriteString("### Projects Overview\n\n")
	for _, project := range data.ScanResult.ProjectNames {
		stats := data.ProjectStats[project]
		builder.WriteString(fmt.Sprintf("- **%s:** %d files, %d sections, %s\n",
			project, stats.FileCount, len(stats.Subfolders), humanize.Bytes(uint64(stats.TotalSize))))
	}
	builder.WriteString("\n---\n\n")

	for _, project := range data.ScanResult.ProjectNames {
		builder.WriteString(fmt.Sprintf("## Project: %s\n\n", project))
		if analysis := data.ProjectAnalyses[project]; analysis != "" {
			builder.WriteString("### AI Project Analysis\n\n")
			builder.WriteString(analysis)
			builder.WriteString("\n\n")
		}
		for _, result := range data.Results {
			if result.FileInfo.ProjectName != project {
				continue
			}
			writeDocument(&builder, result)
		}
	}

	var unassigned []analyzerModels.AnalysisResult
	for _, result := range data.Results {
		if result.FileInfo.ProjectName == "" {
			unassigned = append(unassigned, result)
		}
	}
	if len(unassigned) > 0 {
		builder.WriteString("## Unassigned Documents\n\n")
		for _, result := range unassigned {
			writeDocument(&builder, result)
		}
	}

	generator.writeTechnicalAppendix(&builder, data)
	return builder.String()
}

func (generator *ReportGenerator) overviewReport(data *models.ReportData) string {
	var builder strings.Builder
	root := data.ScanResult.Root

	builder.WriteString("# Portfolio Overview Report\n")
	builder.WriteString(fmt.Sprintf("## %s\n\n", filepath.Base(root)))
	generator.writeHeader(&builder, data)

	totalWords := 0
	for _, result := range data.Results {
		totalWords += result.WordCount
	}

	builder.WriteString("## Portfolio Summary\n\n")
	builder.WriteString("| Metric | Value |\n|---|---|\n")
	builder.WriteString(fmt.Sprintf("| Projects | %d |\n", data.DirectoryStats.TotalProjects))
	builder.WriteString(fmt.Sprintf("| Documents | %d |\n", data.DirectoryStats.TotalFiles))
	builder.WriteString(fmt.Sprintf("| Total size | %s |\n", humanize.Bytes(uint64(data.DirectoryStats.TotalSize))))
	builder.WriteString(fmt.Sprintf("| Total words | %s |\n\n", humanize.Comma(int64(totalWords))))

	if len(data.DirectoryStats.Extensions) > 0 {
		builder.WriteString("### File Types\n\n")
		for _, extension := range sortedStringKeys(data.DirectoryStats.Extensions) {
			builder.WriteString(fmt.Sprintf("- %s: %d\n", strings.ToUpper(extension), data.DirectoryStats.Extensions[extension]))
		}
		builder.WriteString("\n")
	}

	builder.WriteString("### Project Breakdown\n")
	for _, project := range data.ScanResult.ProjectNames {
		stats := data.ProjectStats[project]
		projectWords := 0
		for _, result := range data.Results {
			if result.FileInfo.ProjectName == project {
				projectWords += result.WordCount
			}
		}
		builder.WriteString(fmt.Sprintf("\n#### %s\n", project))
		builder.WriteString(fmt.Sprintf("- **Documents:** %d\n", stats.FileCount))
		builder.WriteString(fmt.Sprintf("- **Sections:** %d\n", len(stats.Subfolders)))
		builder.WriteString(fmt.Sprintf("- **Word Count:** %s\n", humanize.Comma(int64(projectWords))))
		builder.WriteString(fmt.Sprintf("- **File Types:** %s\n", strings.Join(sortedStringKeys(stats.Extensions), ", ")))
	}

	largest := LargestFiles(data.ScanResult.Records, largestFileCount)
	if len(largest) > 0 {
		builder.WriteString("\n### Largest Files\n\n")
		for i, record := range largest {
			builder.WriteString(fmt.Sprintf("%d. **%s** (%s)", i+1, record.Name, humanize.Bytes(uint64(record.Size))))
			if record.ProjectName != "" {
				builder.WriteString(" in " + record.ProjectName)
			}
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

func (generator *ReportGenerator) projectReport(project string, data *models.ReportData) string {
	var builder strings.Builder
	stats := data.ProjectStats[project]

	var projectResults []analyzerModels.AnalysisResult
	projectWords := 0
	for _, result := range data.Results {
		if result.FileInfo.ProjectName != project {
			continue
		}
		projectResults = append(projectResults, result)
		projectWords += result.WordCount
	}

	builder.WriteString(fmt.Sprintf("# Project Report: %s\n\n", project))
	generator.writeHeader(&builder, data)

	builder.WriteString("## Project Overview\n\n")
	builder.WriteString(fmt.Sprintf("**Files:** %d  \n", stats.FileCount))
	builder.WriteString(fmt.Sprintf("**Sections:** %s  \n", sectionList(stats.Subfolders)))
	builder.WriteString(fmt.Sprintf("**File Types:** %s  \n", strings.Join(sortedStringKeys(stats.Extensions), ", ")))
	builder.WriteString(fmt.Sprintf("**Total Words:** %s\n\n", humanize.Comma(int64(projectWords))))

	if analysis := data.ProjectAnalyses[project]; analysis != "" {
		builder.WriteString("## Project Analysis\n\n")
		builder.WriteString(analysis)
		builder.WriteString("\n\n")
	}

	builder.WriteString("## Document Details\n\n")
	bySubfolder := make(map[string][]analyzerModels.AnalysisResult)
	for _, result := range projectResults {
		bySubfolder[result.FileInfo.SubfolderPath] = append(bySubfolder[result.FileInfo.SubfolderPath], result)
	}
	for _, subfolder := range sortedSubfolders(bySubfolder) {
		heading := subfolder
		if heading == "" {
			heading = "Top level"
		}
		builder.WriteString(fmt.Sprintf("### %s\n\n", heading))
		for _, result := range bySubfolder[subfolder] {
			writeDocument(&builder, result)
		}
	}
	return builder.String()
}

func (generator *ReportGenerator) crossProjectReport(data *models.ReportData) string {
	var builder strings.Builder

	builder.WriteString("# Cross-Project Analysis Report\n")
	builder.WriteString(fmt.Sprintf("## %s\n\n", filepath.Base(data.ScanResult.Root)))
	generator.writeHeader(&builder, data)

	builder.WriteString("## Portfolio Analysis\n\n")
	builder.WriteString(data.CrossAnalysis)
	builder.WriteString("\n\n## Comparative Analysis\n\n")

	builder.WriteString("### Project Size Comparison\n\n")
	type projectSize struct {
		name  string
		files int
	}
	sizes := make([]projectSize, 0, len(data.ProjectStats))
	for _, project := range data.ScanResult.ProjectNames {
		sizes = append(sizes, projectSize{name: project, files: data.ProjectStats[project].FileCount})
	}
	sort.SliceStable(sizes, func(i, j int) bool { return sizes[i].files > sizes[j].files })
	for _, entry := range sizes {
		builder.WriteString(fmt.Sprintf("- **%s:** %d files\n", entry.name, entry.files))
	}

	builder.WriteString("\n### File Type Distribution\n\n")
	type extensionCount struct {
		extension string
		count     int
	}
	distribution := make([]extensionCount, 0, len(data.DirectoryStats.Extensions))
	for extension, count := range data.DirectoryStats.Extensions {
		distribution = append(distribution, extensionCount{extension: extension, count: count})
	}
	sort.Slice(distribution, func(i, j int) bool {
		if distribution[i].count != distribution[j].count {
			return distribution[i].count > distribution[j].count
		}
		return distribution[i].extension < distribution[j].extension
	})
	for _, entry := range distribution {
		builder.WriteString(fmt.Sprintf("- **%s:** %d files\n", strings.ToUpper(entry.extension), entry.count))
	}
	return builder.String()
}

func (generator *ReportGenerator) writeHeader(builder *strings.Builder, data *models.ReportData) {
	builder.WriteString(fmt.Sprintf("**Generated:** %s  \n", time.Now().Format("2006-01-02 15:04:05")))
	builder.WriteString(fmt.Sprintf("**Directory:** `%s`  \n", data.ScanResult.Root))
	mode := "extraction only"
	if data.AIEnabled {
		mode = data.AnalysisMode + " (AI enabled)"
	}
	builder.WriteString(fmt.Sprintf("**Analysis Mode:** %s\n\n---\n\n", mode))
}

func (generator *ReportGenerator) writeTechnicalAppendix(builder *strings.Builder, data *models.ReportData) {
	builder.WriteString("## Technical Appendix\n\n")
	builder.WriteString(fmt.Sprintf("**Run ID:** `%s`\n\n", generator.runID))

	var failed []analyzerModels.AnalysisResult
	for _, result := range data.Results {
		if result.Error != "" {
			failed = append(failed, result)
		}
	}
	if len(failed) > 0 {
		builder.WriteString("### Processing Errors\n\n")
		for _, result := range failed {
			builder.WriteString(fmt.Sprintf("- **%s:** %s\n", result.FileInfo.Name, result.Error))
		}
		builder.WriteString("\n")
	}

	builder.WriteString("### Detailed Statistics\n\n")
	for _, project := range data.ScanResult.ProjectNames {
		stats := data.ProjectStats[project]
		builder.WriteString(fmt.Sprintf("#### %s\n", project))
		builder.WriteString(fmt.Sprintf("- Files: %d\n", stats.FileCount))
		builder.WriteString(fmt.Sprintf("- Total size: %s\n", humanize.Bytes(uint64(stats.TotalSize))))
		builder.WriteString(fmt.Sprintf("- Sections: %s\n", sectionList(stats.Subfolders)))
		if len(stats.Extensions) > 0 {
			builder.WriteString("- File types:\n")
			for _, extension := range sortedStringKeys(stats.Extensions) {
				builder.WriteString(fmt.Sprintf("  - %s: %d\n", strings.ToUpper(extension), stats.Extensions[extension]))
			}
		}
		builder.WriteString("\n")
	}
}

// writeDocument renders one analysis result, error results as a short error
// block and successful ones with their full detail.
func writeDocument(builder *strings.Builder, result analyzerModels.AnalysisResult) {
	builder.WriteString(fmt.Sprintf("#### %s\n", result.FileInfo.Name))
	if result.Error != "" {
		builder.WriteString(fmt.Sprintf("**Error:** %s\n\n---\n\n", result.Error))
		return
	}

	builder.WriteString(fmt.Sprintf("**Location:** `%s`  \n", result.FileInfo.RelativePath))
	builder.WriteString(fmt.Sprintf("**Type:** %s  \n", strings.ToUpper(result.FileInfo.Extension)))
	builder.WriteString(fmt.Sprintf("**Size:** %s  \n", humanize.Bytes(uint64(result.FileInfo.Size))))
	builder.WriteString(fmt.Sprintf("**Words:** %s\n\n", humanize.Comma(int64(result.WordCount))))

	if result.Summary != "" {
		builder.WriteString(fmt.Sprintf("**Summary:** %s\n\n", result.Summary))
	}
	if result.AIInsights != "" {
		builder.WriteString(fmt.Sprintf("**Analysis:** %s\n\n", result.AIInsights))
	}
	if result.ContentPreview != "" {
		builder.WriteString("**Preview:**\n\n```\n")
		builder.WriteString(result.ContentPreview)
		builder.WriteString("\n```\n\n")
	}
	if len(result.Metadata) > 0 {
		builder.WriteString("**Metadata:**\n")
		keys := make([]string, 0, len(result.Metadata))
		for key := range result.Metadata {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			builder.WriteString(fmt.Sprintf("- %s: %v\n", key, result.Metadata[key]))
		}
		builder.WriteString("\n")
	}
	builder.WriteString("---\n\n")
}

// LargestFiles returns the limit biggest records by byte size, largest first.
func LargestFiles(records []scannerModels.FileRecord, limit int) []scannerModels.FileRecord {
	sorted := make([]scannerModels.FileRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Size > sorted[j].Size })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// projectReportName maps a project name to a filesystem safe report name.
func projectReportName(project string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, project)
	return sanitized + "_PROJECT_REPORT.md"
}

func sectionList(subfolders []string) string {
	if len(subfolders) == 0 {
		return "top level"
	}
	return strings.Join(subfolders, ", ")
}

func sortedStringKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedSubfolders(groups map[string][]analyzerModels.AnalysisResult) []string {
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
