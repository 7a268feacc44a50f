package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/giarcheuli/docparser/analyzers"
	"github.com/giarcheuli/docparser/config"
	"github.com/giarcheuli/docparser/constants/lipgloss"
	"github.com/giarcheuli/docparser/document_analyzer"
	"github.com/giarcheuli/docparser/document_scanner"
	scannerContracts "github.com/giarcheuli/docparser/document_scanner/contracts"
	"github.com/giarcheuli/docparser/token_management"
	tokenContracts "github.com/giarcheuli/docparser/token_management/contracts"

	// Register the built-in AI providers.
	_ "github.com/giarcheuli/docparser/providers/anthropic"
	_ "github.com/giarcheuli/docparser/providers/ollama"
	_ "github.com/giarcheuli/docparser/providers/openai"
)

// RootDependencies holds the shared dependencies built once per invocation
// and handed to every subcommand.
type RootDependencies struct {
	Config          *config.Config
	Cwd             string
	Scanner         scannerContracts.IDocumentScanner
	Registry        *analyzers.Registry
	Cache           *document_analyzer.ExtractionCache
	TokenManagement tokenContracts.ITokenManagement
}

// rootCmd: docparser
var rootCmd = &cobra.Command{
	Use:   "docparser",
	Short: "Scan and analyze document collections, organized by project.",
	Long: `docparser scans a directory tree for supported documents (text, markdown, PDF,
Word, Excel, HTML and XML), groups them by top-level project folder, extracts
their content and writes a set of markdown reports. With AI enabled, each
document additionally gets a summary and insights from a configurable chain
of AI providers.`,
	Run: func(cmd *cobra.Command, args []string) {
		if version, _ := cmd.Flags().GetBool("version"); version {
			fmt.Println(config.DefaultConfig.Version)
			return
		}
		_ = cmd.Help()
	},
}

// handleRootCommand loads the configuration and builds the dependencies every
// subcommand needs. Returns nil when the environment is unusable.
func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	rootDependencies := &RootDependencies{}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current working directory: %v", err)))
		return nil
	}
	rootDependencies.Cwd = cwd

	rootDependencies.Config = config.LoadConfigs(cmd.Root(), cwd)
	rootDependencies.TokenManagement = token_management.NewTokenManager()
	rootDependencies.Scanner = document_scanner.NewDocumentScanner(rootDependencies.Config.ExcludePatterns)
	rootDependencies.Registry = analyzers.NewRegistry()

	if rootDependencies.Config.EnableCache {
		cache, err := document_analyzer.NewExtractionCache("")
		if err != nil {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: extraction cache disabled: %v", err)))
		} else {
			rootDependencies.Cache = cache
		}
	}

	return rootDependencies
}

// Execute runs the root command and is the single entry point used by main.
func Execute() {
	// Pick up API keys from a .env file when present
	_ = godotenv.Load()

	config.InitFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}
