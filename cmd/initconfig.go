package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/giarcheuli/docparser/config"
	"github.com/giarcheuli/docparser/constants/lipgloss"
	"github.com/giarcheuli/docparser/utils"
)

// initCmd: docparser init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter docparser-config.yml with all defaults into the current directory.",
	Run: func(cmd *cobra.Command, args []string) {
		handleInitCommand()
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func handleInitCommand() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current working directory: %v", err)))
		return
	}

	path := filepath.Join(cwd, "docparser-config.yml")
	if _, err := os.Stat(path); err == nil {
		confirmed, err := utils.ConfirmPrompt(bufio.NewReader(os.Stdin), fmt.Sprintf("%s already exists. Overwrite it", path))
		if err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
			return
		}
		if !confirmed {
			fmt.Println(lipgloss.Yellow.Render("Init cancelled."))
			return
		}
	}

	if err := config.WriteDefault(path); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}
	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ Configuration written to %s", path)))
}
