package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/giarcheuli/docparser/constants/lipgloss"
	"github.com/giarcheuli/docparser/document_scanner"
	"github.com/giarcheuli/docparser/watcher"
)

// watchCmd: docparser watch [directory]
var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and re-run the full analysis whenever documents change.",
	Long: `The 'watch' subcommand runs one full analysis, then keeps watching the
directory tree for changes to supported documents. Changes arriving close
together are batched, and each batch triggers a fresh analysis run with a new
report session. Press Ctrl+C to stop watching.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			return
		}
		handleWatchCommand(rootDependencies, resolveRootDir(args, rootDependencies.Cwd))
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func handleWatchCommand(rootDependencies *RootDependencies, rootDir string) {
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

	// Generated reports are markdown documents themselves; when the reports
	// directory lives inside the watched tree they must be excluded or every
	// run would trigger the next one.
	excludePatterns := watchExcludePatterns(rootDependencies, rootDir)
	rootDependencies.Scanner = document_scanner.NewDocumentScanner(excludePatterns)

	fileWatcher, err := watcher.NewWatcher(rootDir, excludePatterns)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}
	defer fileWatcher.Close()

	batches := fileWatcher.Watch(ctx)

	// Start from a fresh analysis so the session always has current reports.
	if outcome, err := runAnalysis(ctx, rootDependencies, rootDir); err != nil {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: initial analysis failed: %v", err)))
	} else {
		displaySummary(outcome)
	}

	fmt.Println(lipgloss.Info.Render("Watching for document changes... press Ctrl+C to stop"))

	for batch := range batches {
		fmt.Println(lipgloss.Gray.Render(fmt.Sprintf("%d document(s) changed, re-analyzing...", len(batch))))
		outcome, err := runAnalysis(ctx, rootDependencies, rootDir)
		if err != nil {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: analysis failed: %v", err)))
			continue
		}
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("Reports updated: %s", outcome.SessionDir)))
	}

	fmt.Println(lipgloss.Yellow.Render("\n🔄 Watch stopped."))
}

// watchExcludePatterns extends the configured exclude patterns with the
// reports directory when it falls inside the watched root.
func watchExcludePatterns(rootDependencies *RootDependencies, rootDir string) []string {
	patterns := append([]string{}, rootDependencies.Config.ExcludePatterns...)

	reportsDir := rootDependencies.Config.ReportsDir
	if !filepath.IsAbs(reportsDir) {
		reportsDir = filepath.Join(rootDependencies.Cwd, reportsDir)
	}
	relative, err := filepath.Rel(rootDir, reportsDir)
	if err != nil || relative == "." || strings.HasPrefix(relative, "..") {
		return patterns
	}
	return append(patterns, filepath.ToSlash(relative)+"/")
}
