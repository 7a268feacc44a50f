package contracts

import (
	"context"

	"github.com/giarcheuli/docparser/document_analyzer/models"
	scannerModels "github.com/giarcheuli/docparser/document_scanner/models"
)

// IDocumentAnalyzer turns scanned records into analysis results. The result
// slice is index-aligned with the input records regardless of how the work
// was parallelized, and a failure on one document never affects the others.
type IDocumentAnalyzer interface {
	Analyze(ctx context.Context, records []scannerModels.FileRecord, aiEnabled bool) []models.AnalysisResult
}
