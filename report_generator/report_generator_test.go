package report_generator

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyzerModels "github.com/giarcheuli/docparser/document_analyzer/models"
	scannerModels "github.com/giarcheuli/docparser/document_scanner/models"
	"github.com/giarcheuli/docparser/report_generator/models"
)

func reportFixture() *models.ReportData {
	records := []scannerModels.FileRecord{
		{Path: "/data/docs/alpha/intro.md", Name: "intro.md", Extension: ".md", Size: 2048, ProjectName: "alpha", RelativePath: "alpha/intro.md", IsReadable: true},
		{Path: "/data/docs/alpha/design/layout.html", Name: "layout.html", Extension: ".html", Size: 8192, ProjectName: "alpha", RelativePath: "alpha/design/layout.html", SubfolderPath: "design", IsReadable: true},
		{Path: "/data/docs/beta/data.xml", Name: "data.xml", Extension: ".xml", Size: 512, ProjectName: "beta", RelativePath: "beta/data.xml", IsReadable: false, ErrorMessage: "permission denied"},
	}

	return &models.ReportData{
		ScanResult: &scannerModels.ScanResult{
			Root:    "/data/docs",
			Records: records,
			Projects: map[string][]scannerModels.FileRecord{
				"alpha": records[:2],
				"beta":  records[2:],
			},
			ProjectNames: []string{"alpha", "beta"},
		},
		Results: []analyzerModels.AnalysisResult{
			{
				FileInfo:       records[0],
				ContentPreview: "# Alpha intro",
				WordCount:      120,
				Metadata:       map[string]interface{}{"line_count": 12},
				Summary:        "Introduces alpha.",
				AIInsights:     "- well organized",
			},
			{
				FileInfo:       records[1],
				ContentPreview: "layout text",
				WordCount:      300,
			},
			{
				FileInfo: records[2],
				Error:    "File not readable: permission denied",
			},
		},
		DirectoryStats: scannerModels.DirectoryStats{
			TotalFiles:    3,
			TotalSize:     10752,
			TotalProjects: 2,
			Extensions:    map[string]int{".md": 1, ".html": 1, ".xml": 1},
		},
		ProjectStats: map[string]scannerModels.ProjectStats{
			"alpha": {FileCount: 2, TotalSize: 10240, Extensions: map[string]int{".md": 1, ".html": 1}, Subfolders: []string{"design"}},
			"beta":  {FileCount: 1, TotalSize: 512, Extensions: map[string]int{".xml": 1}},
		},
		AnalysisMode:    "qualitative",
		AIEnabled:       true,
		ProjectAnalyses: map[string]string{"alpha": "Alpha looks like a design project."},
		CrossAnalysis:   "Alpha and beta share little.",
	}
}

func readReport(t *testing.T, sessionDir string, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(sessionDir, name))
	require.NoError(t, err)
	return string(content)
}

// TestGenerateReportsWritesFullSession verifies the session directory naming
// and the complete report set of an AI run.
func TestGenerateReportsWritesFullSession(t *testing.T) {
	reportsDir := t.TempDir()
	generator := NewReportGenerator(reportsDir)

	sessionDir, err := generator.GenerateReports(reportFixture())
	require.NoError(t, err)

	assert.Equal(t, reportsDir, filepath.Dir(sessionDir))
	assert.Regexp(t, regexp.MustCompile(`^docs_\d{2}_\d{2}_\d{2}_\d{2}_\d{2}$`), filepath.Base(sessionDir))

	for _, name := range []string{
		"COMPREHENSIVE_AI_REPORT.md",
		"OVERVIEW_AI_REPORT.md",
		"alpha_PROJECT_REPORT.md",
		"beta_PROJECT_REPORT.md",
		"CROSS_PROJECT_ANALYSIS.md",
	} {
		_, err := os.Stat(filepath.Join(sessionDir, name))
		assert.NoError(t, err, "expected report %s", name)
	}
}

// TestComprehensiveReportContent verifies per-project document detail, error
// surfacing and the technical appendix.
func TestComprehensiveReportContent(t *testing.T) {
	generator := NewReportGenerator(t.TempDir())
	sessionDir, err := generator.GenerateReports(reportFixture())
	require.NoError(t, err)

	content := readReport(t, sessionDir, "COMPREHENSIVE_AI_REPORT.md")

	assert.Contains(t, content, "# Comprehensive Document Analysis Report")
	assert.Contains(t, content, "**Analysis Mode:** qualitative (AI enabled)")
	assert.Contains(t, content, "**2 projects** containing **3 documents**")
	assert.Contains(t, content, "## Project: alpha")
	assert.Contains(t, content, "### AI Project Analysis")
	assert.Contains(t, content, "Alpha looks like a design project.")
	assert.Contains(t, content, "#### intro.md")
	assert.Contains(t, content, "**Summary:** Introduces alpha.")
	assert.Contains(t, content, "**Analysis:** - well organized")
	assert.Contains(t, content, "- line_count: 12")
	assert.Contains(t, content, "**Error:** File not readable: permission denied")
	assert.Contains(t, content, "## Technical Appendix")
	assert.Contains(t, content, "**Run ID:** `")
	assert.Contains(t, content, "### Processing Errors")
	assert.Contains(t, content, "- **data.xml:** File not readable: permission denied")
}

// TestOverviewReportContent verifies the stats table, project breakdown and
// largest file ranking.
func TestOverviewReportContent(t *testing.T) {
	generator := NewReportGenerator(t.TempDir())
	sessionDir, err := generator.GenerateReports(reportFixture())
	require.NoError(t, err)

	content := readReport(t, sessionDir, "OVERVIEW_AI_REPORT.md")

	assert.Contains(t, content, "| Projects | 2 |")
	assert.Contains(t, content, "| Documents | 3 |")
	assert.Contains(t, content, "| Total words | 420 |")
	assert.Contains(t, content, "- .HTML: 1")
	assert.Contains(t, content, "#### alpha")
	assert.Contains(t, content, "- **File Types:** .html, .md")
	assert.Contains(t, content, "### Largest Files")
	assert.Contains(t, content, "1. **layout.html**")
	assert.Contains(t, content, "in alpha")
}

// TestProjectReportGroupsBySubfolder verifies top level documents come before
// subfolder sections and empty projects list "top level".
func TestProjectReportGroupsBySubfolder(t *testing.T) {
	generator := NewReportGenerator(t.TempDir())
	sessionDir, err := generator.GenerateReports(reportFixture())
	require.NoError(t, err)

	alpha := readReport(t, sessionDir, "alpha_PROJECT_REPORT.md")
	assert.Contains(t, alpha, "# Project Report: alpha")
	assert.Contains(t, alpha, "**Sections:** design")
	assert.Contains(t, alpha, "## Project Analysis")
	topLevel := strings.Index(alpha, "### Top level")
	design := strings.Index(alpha, "### design")
	require.GreaterOrEqual(t, topLevel, 0)
	require.GreaterOrEqual(t, design, 0)
	assert.Less(t, topLevel, design)

	beta := readReport(t, sessionDir, "beta_PROJECT_REPORT.md")
	assert.Contains(t, beta, "**Sections:** top level")
	assert.NotContains(t, beta, "## Project Analysis")
}

// TestCrossProjectReportContent verifies the AI comparison plus comparative
// rankings.
func TestCrossProjectReportContent(t *testing.T) {
	generator := NewReportGenerator(t.TempDir())
	sessionDir, err := generator.GenerateReports(reportFixture())
	require.NoError(t, err)

	content := readReport(t, sessionDir, "CROSS_PROJECT_ANALYSIS.md")

	assert.Contains(t, content, "Alpha and beta share little.")
	alphaLine := strings.Index(content, "- **alpha:** 2 files")
	betaLine := strings.Index(content, "- **beta:** 1 files")
	require.GreaterOrEqual(t, alphaLine, 0)
	require.GreaterOrEqual(t, betaLine, 0)
	assert.Less(t, alphaLine, betaLine)
	assert.Contains(t, content, "### File Type Distribution")
}

// TestGenerateReportsWithoutAI verifies extraction-only runs skip the cross
// project report and label the mode accordingly.
func TestGenerateReportsWithoutAI(t *testing.T) {
	data := reportFixture()
	data.AIEnabled = false
	data.ProjectAnalyses = nil
	data.CrossAnalysis = ""

	generator := NewReportGenerator(t.TempDir())
	sessionDir, err := generator.GenerateReports(data)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(sessionDir, "CROSS_PROJECT_ANALYSIS.md"))
	assert.True(t, os.IsNotExist(err))

	content := readReport(t, sessionDir, "COMPREHENSIVE_AI_REPORT.md")
	assert.Contains(t, content, "**Analysis Mode:** extraction only")
	assert.NotContains(t, content, "### AI Project Analysis")
}

// TestGenerateReportsRejectsEmptyData verifies the guard against a missing
// scan result.
func TestGenerateReportsRejectsEmptyData(t *testing.T) {
	generator := NewReportGenerator(t.TempDir())

	_, err := generator.GenerateReports(nil)
	assert.Error(t, err)

	_, err = generator.GenerateReports(&models.ReportData{})
	assert.Error(t, err)
}

// TestLargestFiles verifies ordering and limiting.
func TestLargestFiles(t *testing.T) {
	records := []scannerModels.FileRecord{
		{Name: "small.txt", Size: 5},
		{Name: "big.pdf", Size: 10},
		{Name: "tiny.md", Size: 1},
		{Name: "medium.doc", Size: 7},
	}

	largest := LargestFiles(records, 3)

	require.Len(t, largest, 3)
	assert.Equal(t, "big.pdf", largest[0].Name)
	assert.Equal(t, "medium.doc", largest[1].Name)
	assert.Equal(t, "small.txt", largest[2].Name)

	assert.Len(t, LargestFiles(records, 10), 4)
}

// TestProjectReportName verifies filesystem unsafe characters are replaced.
func TestProjectReportName(t *testing.T) {
	assert.Equal(t, "alpha_PROJECT_REPORT.md", projectReportName("alpha"))
	assert.Equal(t, "Client_Alpha_2025_PROJECT_REPORT.md", projectReportName("Client Alpha/2025"))
}
