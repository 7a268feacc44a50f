package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/giarcheuli/docparser/constants/lipgloss"
	"github.com/giarcheuli/docparser/document_scanner"
	scannerModels "github.com/giarcheuli/docparser/document_scanner/models"
)

// listCmd: docparser list [directory]
var listCmd = &cobra.Command{
	Use:   "list [directory]",
	Short: "Show the supported documents in a directory, grouped by project, without analyzing them.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			return
		}
		handleListCommand(rootDependencies, resolveRootDir(args, rootDependencies.Cwd))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func handleListCommand(rootDependencies *RootDependencies, rootDir string) {
	if err := validateRootDir(rootDir); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}

	scanResult := rootDependencies.Scanner.Scan(rootDir)
	if len(scanResult.Records) == 0 {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("No supported documents found in %s", rootDir)))
		return
	}

	directoryStats := document_scanner.DirectoryStats(scanResult.Records)
	projectStats := document_scanner.ProjectStats(scanResult.Projects)

	root := pterm.TreeNode{
		Text: fmt.Sprintf("%s (%d documents, %s, %d projects)",
			filepath.Base(rootDir),
			directoryStats.TotalFiles,
			humanize.Bytes(uint64(directoryStats.TotalSize)),
			directoryStats.TotalProjects),
	}
	for _, projectName := range scanResult.ProjectNames {
		stats := projectStats[projectName]
		label := fmt.Sprintf("%s (%d documents, %s)", projectName, stats.FileCount, humanize.Bytes(uint64(stats.TotalSize)))
		root.Children = append(root.Children, documentsTreeNode(label, scanResult.Projects[projectName]))
	}
	if unassigned := unassignedRecords(scanResult.Records); len(unassigned) > 0 {
		root.Children = append(root.Children, documentsTreeNode(fmt.Sprintf("(unassigned, %d documents)", len(unassigned)), unassigned))
	}

	if err := pterm.DefaultTree.WithRoot(root).Render(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error rendering document tree: %v", err)))
	}
}

// documentsTreeNode renders one project's records, grouped by subfolder with
// top-level files first.
func documentsTreeNode(label string, records []scannerModels.FileRecord) pterm.TreeNode {
	bySubfolder := make(map[string][]scannerModels.FileRecord)
	for _, record := range records {
		bySubfolder[record.SubfolderPath] = append(bySubfolder[record.SubfolderPath], record)
	}
	subfolders := make([]string, 0, len(bySubfolder))
	for subfolder := range bySubfolder {
		subfolders = append(subfolders, subfolder)
	}
	sort.Strings(subfolders)

	node := pterm.TreeNode{Text: label}
	for _, subfolder := range subfolders {
		leaves := make([]pterm.TreeNode, 0, len(bySubfolder[subfolder]))
		for _, record := range bySubfolder[subfolder] {
			leaves = append(leaves, pterm.TreeNode{Text: documentLabel(record)})
		}
		if subfolder == "" {
			node.Children = append(node.Children, leaves...)
		} else {
			node.Children = append(node.Children, pterm.TreeNode{Text: subfolder + "/", Children: leaves})
		}
	}
	return node
}

func documentLabel(record scannerModels.FileRecord) string {
	label := fmt.Sprintf("%s (%s)", record.Name, humanize.Bytes(uint64(record.Size)))
	if !record.IsReadable {
		label += " " + lipgloss.Red.Render("unreadable")
	}
	return label
}

func unassignedRecords(records []scannerModels.FileRecord) []scannerModels.FileRecord {
	var unassigned []scannerModels.FileRecord
	for _, record := range records {
		if record.ProjectName == "" {
			unassigned = append(unassigned, record)
		}
	}
	return unassigned
}
