package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/giarcheuli/docparser/constants/lipgloss"
	"github.com/giarcheuli/docparser/providers"
)

// providersCmd: docparser providers
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Show the configured AI provider chain and whether each provider is ready.",
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			return
		}
		handleProvidersCommand(rootDependencies)
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func handleProvidersCommand(rootDependencies *RootDependencies) {
	providerConfig := rootDependencies.Config.AIProviderConfig
	if providerConfig == nil || len(providerConfig.ChainOrder()) == 0 {
		fmt.Println(lipgloss.Yellow.Render("No AI providers configured"))
		return
	}

	fmt.Println(lipgloss.Info.Render("AI provider chain:"))
	for position, name := range providerConfig.ChainOrder() {
		settings := providerConfig.Providers[name]
		fmt.Printf("  %d. %-12s %-28s %s\n", position+1, name, providerModel(settings), providerStatus(name, settings))
	}
	fmt.Println(lipgloss.Gray.Render(fmt.Sprintf("Registered providers: %s", strings.Join(providers.Names(), ", "))))
}

func providerModel(settings *providers.ProviderSettings) string {
	if settings == nil || settings.Model == "" {
		return "-"
	}
	return settings.Model
}

func providerStatus(name string, settings *providers.ProviderSettings) string {
	switch {
	case settings == nil:
		return lipgloss.Gray.Render("not configured")
	case !settings.Enabled:
		return lipgloss.Gray.Render("disabled")
	case settings.Resolvable(name):
		return lipgloss.Green.Render("ready")
	default:
		return lipgloss.Yellow.Render("no API key")
	}
}
