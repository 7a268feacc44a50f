package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/giarcheuli/docparser/ai_analyzer"
	aiContracts "github.com/giarcheuli/docparser/ai_analyzer/contracts"
	"github.com/giarcheuli/docparser/config"
	"github.com/giarcheuli/docparser/constants/lipgloss"
	"github.com/giarcheuli/docparser/document_analyzer"
	analyzerModels "github.com/giarcheuli/docparser/document_analyzer/models"
	"github.com/giarcheuli/docparser/document_scanner"
	"github.com/giarcheuli/docparser/report_generator"
	reportModels "github.com/giarcheuli/docparser/report_generator/models"
	"github.com/giarcheuli/docparser/utils"
)

// analyzeCmd: docparser analyze [directory]
var analyzeCmd = &cobra.Command{
	Use:   "analyze [directory]",
	Short: "Scan a directory, analyze every supported document and write markdown reports.",
	Long: `The 'analyze' subcommand walks the given directory (default: current working
directory), extracts the content of every supported document, groups results
by project and writes a session of markdown reports. With '--ai' each document
is additionally summarized and analyzed by the configured AI provider chain,
including one analysis per project and a cross-project comparison.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			return
		}
		noSummary, _ := cmd.Flags().GetBool("no-summary")
		handleAnalyzeCommand(rootDependencies, resolveRootDir(args, rootDependencies.Cwd), noSummary)
	},
}

func init() {
	analyzeCmd.Flags().Bool("no-summary", false, "Skip the terminal summary after reports are written")
	rootCmd.AddCommand(analyzeCmd)
}

// analysisOutcome bundles what one completed run produced.
type analysisOutcome struct {
	Data       *reportModels.ReportData
	SessionDir string
}

func handleAnalyzeCommand(rootDependencies *RootDependencies, rootDir string, noSummary bool) {
	// Create a context with cancel function
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := validateRootDir(rootDir); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}
	if err := validateAnalysisMode(rootDependencies.Config.AnalysisMode); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}

	displayBanner(rootDependencies, rootDir)

	outcome, err := runAnalysis(ctx, rootDependencies, rootDir)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}

	if !noSummary {
		displaySummary(outcome)
	}

	if rootDependencies.Config.Verbose {
		displayVerboseDetails(ctx, rootDependencies, outcome)
	}
}

// runAnalysis performs one full scan-extract-annotate-report cycle. It is
// shared between 'analyze' and 'watch'.
func runAnalysis(ctx context.Context, rootDependencies *RootDependencies, rootDir string) (*analysisOutcome, error) {
	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").WithDelay(100).WithRemoveWhenDone(true)

	spinnerScan, _ := spinner.Start("Scanning documents...")
	scanResult := rootDependencies.Scanner.Scan(rootDir)
	spinnerScan.Stop()
	fmt.Print("\r")

	if len(scanResult.Records) == 0 {
		return nil, fmt.Errorf("no supported documents found in %s", rootDir)
	}

	aiAnalyzer := buildAIAnalyzer(rootDependencies)
	aiEnabled := aiAnalyzer != nil

	// pterm printers are not safe for concurrent use
	var progressMutex sync.Mutex
	progressbar, _ := pterm.DefaultProgressbar.WithTotal(len(scanResult.Records)).WithTitle("Analyzing documents").WithRemoveWhenDone(true).Start()
	onProgress := func(completed int, total int) {
		progressMutex.Lock()
		defer progressMutex.Unlock()
		progressbar.Increment()
	}

	documentAnalyzer := document_analyzer.NewDocumentAnalyzer(
		rootDependencies.Registry,
		aiAnalyzer,
		rootDependencies.Cache,
		rootDependencies.Config.Parallelism,
		onProgress,
	)
	results := documentAnalyzer.Analyze(ctx, scanResult.Records, aiEnabled)
	_, _ = progressbar.Stop()

	directoryStats := document_scanner.DirectoryStats(scanResult.Records)
	projectStats := document_scanner.ProjectStats(scanResult.Projects)

	data := &reportModels.ReportData{
		ScanResult:      scanResult,
		Results:         results,
		DirectoryStats:  directoryStats,
		ProjectStats:    projectStats,
		AnalysisMode:    rootDependencies.Config.AnalysisMode,
		AIEnabled:       aiEnabled,
		ProjectAnalyses: map[string]string{},
	}

	if aiEnabled {
		spinnerAI, _ := spinner.Start("Generating project analyses...")
		byProject := resultsByProject(results)
		for _, projectName := range scanResult.ProjectNames {
			overview := ai_analyzer.ProjectOverview(projectName, projectStats[projectName], byProject[projectName])
			data.ProjectAnalyses[projectName] = aiAnalyzer.AnalyzeProject(ctx, projectName, overview)
		}
		if len(scanResult.ProjectNames) > 1 {
			overview := ai_analyzer.PortfolioOverview(directoryStats, projectStats, scanResult.ProjectNames)
			data.CrossAnalysis = aiAnalyzer.AnalyzeCrossProject(ctx, overview)
		}
		spinnerAI.Stop()
		fmt.Print("\r")
	}

	spinnerReport, _ := spinner.Start("Writing reports...")
	generator := report_generator.NewReportGenerator(rootDependencies.Config.ReportsDir)
	sessionDir, err := generator.GenerateReports(data)
	spinnerReport.Stop()
	fmt.Print("\r")
	if err != nil {
		return nil, fmt.Errorf("failed to generate reports: %w", err)
	}

	return &analysisOutcome{Data: data, SessionDir: sessionDir}, nil
}

// buildAIAnalyzer constructs the AI chain when the run has AI enabled.
// Returns nil when AI is off or no provider could be configured, in which
// case the run degrades to extraction only.
func buildAIAnalyzer(rootDependencies *RootDependencies) aiContracts.IAIAnalyzer {
	if !rootDependencies.Config.AIEnabled {
		return nil
	}
	analyzer, err := ai_analyzer.NewAIAnalyzer(
		rootDependencies.Config.AIProviderConfig,
		rootDependencies.Config.AnalysisMode,
		rootDependencies.TokenManagement,
	)
	if err != nil {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: AI disabled for this run: %v", err)))
		return nil
	}
	return analyzer
}

// resultsByProject groups analysis results by the project of their scanned
// record.
func resultsByProject(results []analyzerModels.AnalysisResult) map[string][]analyzerModels.AnalysisResult {
	grouped := make(map[string][]analyzerModels.AnalysisResult)
	for _, result := range results {
		grouped[result.FileInfo.ProjectName] = append(grouped[result.FileInfo.ProjectName], result)
	}
	return grouped
}

func displayBanner(rootDependencies *RootDependencies, rootDir string) {
	aiState := "Disabled"
	if rootDependencies.Config.AIEnabled {
		aiState = "Enabled"
	}
	banner := fmt.Sprintf("📄 docparser %s\n📁 Directory: %s\n🤖 AI Analysis: %s\n📊 Analysis Mode: %s",
		config.DefaultConfig.Version, rootDir, aiState, rootDependencies.Config.AnalysisMode)
	fmt.Println(lipgloss.BoxStyle.Render(banner))
}

func displaySummary(outcome *analysisOutcome) {
	data := outcome.Data

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Documents analyzed: %s (%s)\n",
		humanize.Comma(int64(data.DirectoryStats.TotalFiles)),
		humanize.Bytes(uint64(data.DirectoryStats.TotalSize))))
	builder.WriteString(fmt.Sprintf("Projects: %d\n", data.DirectoryStats.TotalProjects))

	if failed := failedResults(data.Results); failed > 0 {
		builder.WriteString(fmt.Sprintf("Failed documents: %d\n", failed))
	}

	largest := report_generator.LargestFiles(data.ScanResult.Records, 3)
	if len(largest) > 0 {
		builder.WriteString("Largest files:\n")
		for _, record := range largest {
			builder.WriteString(fmt.Sprintf("  %s (%s)\n", record.RelativePath, humanize.Bytes(uint64(record.Size))))
		}
	}
	builder.WriteString(fmt.Sprintf("Reports: %s", outcome.SessionDir))

	fmt.Println(lipgloss.BoxStyle.Render(builder.String()))
}

func displayVerboseDetails(ctx context.Context, rootDependencies *RootDependencies, outcome *analysisOutcome) {
	data := outcome.Data

	overview := ai_analyzer.PortfolioOverview(data.DirectoryStats, data.ProjectStats, data.ScanResult.ProjectNames)
	if err := utils.RenderMarkdown(ctx, overview, rootDependencies.Config.Theme); err != nil {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: failed to render overview: %v", err)))
	}

	if rootDependencies.Cache != nil {
		displayCacheStats(rootDependencies.Cache)
	}

	if data.AIEnabled {
		providerConfig := rootDependencies.Config.AIProviderConfig
		model := ""
		if settings, ok := providerConfig.Providers[providerConfig.DefaultProvider]; ok {
			model = settings.Model
		}
		rootDependencies.TokenManagement.DisplayTokens(providerConfig.DefaultProvider, model)
	}
}

func displayCacheStats(cache *document_analyzer.ExtractionCache) {
	fmt.Println(lipgloss.Info.Render("Cache Statistics:"))
	if stats, err := cache.Stats(); err == nil {
		if dir, ok := stats["cache_dir"].(string); ok {
			fmt.Printf("  Cache Directory: %s\n", dir)
		}
		if files, ok := stats["cache_files"].(int); ok {
			fmt.Printf("  Cached Files: %d\n", files)
		}
		if size, ok := stats["total_size"].(int64); ok {
			fmt.Printf("  Total Size: %.2f MB\n", float64(size)/(1024*1024))
		}
		if hitRate, ok := stats["hit_rate"].(float64); ok {
			fmt.Printf("  Hit Rate: %.1f%%\n", hitRate)
		}
	} else {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: Could not show statistics: %v", err)))
	}
}

func failedResults(results []analyzerModels.AnalysisResult) int {
	failed := 0
	for _, result := range results {
		if result.Error != "" {
			failed++
		}
	}
	return failed
}

// resolveRootDir picks the directory argument, falling back to the current
// working directory.
func resolveRootDir(args []string, cwd string) string {
	if len(args) == 0 {
		return cwd
	}
	if filepath.IsAbs(args[0]) {
		return filepath.Clean(args[0])
	}
	return filepath.Join(cwd, args[0])
}

func validateRootDir(rootDir string) error {
	info, err := os.Stat(rootDir)
	if err != nil {
		return fmt.Errorf("cannot analyze %s: %w", rootDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot analyze %s: not a directory", rootDir)
	}
	return nil
}

func validateAnalysisMode(mode string) error {
	switch mode {
	case ai_analyzer.AnalysisModeQualitative, ai_analyzer.AnalysisModeQuantitative:
		return nil
	}
	return fmt.Errorf("invalid analysis mode %q: use 'qualitative' or 'quantitative'", mode)
}
