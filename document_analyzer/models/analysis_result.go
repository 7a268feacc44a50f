package models

import scannerModels "github.com/giarcheuli/docparser/document_scanner/models"

// AnalysisResult is the per-document outcome of an analysis run. FileInfo is
// the scanner's record, carried through untouched; the remaining fields are
// derived from the document's content.
type AnalysisResult struct {
	FileInfo       scannerModels.FileRecord
	ContentPreview string
	WordCount      int
	Metadata       map[string]interface{}
	Summary        string
	AIInsights     string
	Error          string
}
