package models

import (
	analyzerModels "github.com/giarcheuli/docparser/document_analyzer/models"
	scannerModels "github.com/giarcheuli/docparser/document_scanner/models"
)

// ReportData carries everything one analysis run produced, ready to render.
// ProjectAnalyses and CrossAnalysis hold the project-level AI output and are
// empty when the run had AI disabled.
type ReportData struct {
	ScanResult      *scannerModels.ScanResult
	Results         []analyzerModels.AnalysisResult
	DirectoryStats  scannerModels.DirectoryStats
	ProjectStats    map[string]scannerModels.ProjectStats
	AnalysisMode    string
	AIEnabled       bool
	ProjectAnalyses map[string]string
	CrossAnalysis   string
}
