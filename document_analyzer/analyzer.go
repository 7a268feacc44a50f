package document_analyzer

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	aiContracts "github.com/giarcheuli/docparser/ai_analyzer/contracts"
	analyzerContracts "github.com/giarcheuli/docparser/analyzers/contracts"
	"github.com/giarcheuli/docparser/document_analyzer/contracts"
	"github.com/giarcheuli/docparser/document_analyzer/models"
	"github.com/giarcheuli/docparser/document_scanner"
	scannerModels "github.com/giarcheuli/docparser/document_scanner/models"
)

// previewLimit caps the stored content preview.
const previewLimit = 500

// FormatRegistry resolves a format tag to its analyzer.
type FormatRegistry interface {
	Get(tag document_scanner.FormatTag) (analyzerContracts.IFormatAnalyzer, bool)
}

// DocumentAnalyzer orchestrates per-document analysis: format extraction,
// optional cached reuse of earlier extractions, and optional AI annotation.
type DocumentAnalyzer struct {
	registry    FormatRegistry
	aiAnalyzer  aiContracts.IAIAnalyzer
	cache       *ExtractionCache
	parallelism int
	onProgress  func(completed int, total int)
}

// NewDocumentAnalyzer wires the orchestrator. aiAnalyzer and cache may be
// nil; onProgress, when set, is called after each finished document and must
// be safe for concurrent use.
func NewDocumentAnalyzer(registry FormatRegistry, aiAnalyzer aiContracts.IAIAnalyzer, cache *ExtractionCache, parallelism int, onProgress func(completed int, total int)) contracts.IDocumentAnalyzer {
	if parallelism < 1 {
		parallelism = 1
	}
	return &DocumentAnalyzer{
		registry:    registry,
		aiAnalyzer:  aiAnalyzer,
		cache:       cache,
		parallelism: parallelism,
		onProgress:  onProgress,
	}
}

// Analyze processes every record and returns results aligned with the input
// order: results[i] belongs to records[i].
func (analyzer *DocumentAnalyzer) Analyze(ctx context.Context, records []scannerModels.FileRecord, aiEnabled bool) []models.AnalysisResult {
	results := make([]models.AnalysisResult, len(records))
	var completed int64

	workers := pool.New().WithMaxGoroutines(analyzer.parallelism)
	for i := range records {
		i := i
		workers.Go(func() {
			results[i] = analyzer.analyzeRecord(ctx, records[i], aiEnabled)
			if analyzer.onProgress != nil {
				analyzer.onProgress(int(atomic.AddInt64(&completed, 1)), len(records))
			}
		})
	}
	workers.Wait()

	return results
}

func (analyzer *DocumentAnalyzer) analyzeRecord(ctx context.Context, record scannerModels.FileRecord, aiEnabled bool) (result models.AnalysisResult) {
	result = models.AnalysisResult{FileInfo: record}

	// a misbehaving parser may only fail its own document
	defer func() {
		if r := recover(); r != nil {
			result = models.AnalysisResult{
				FileInfo: record,
				Error:    fmt.Sprintf("Analysis failed: %v", r),
			}
		}
	}()

	if !record.IsReadable {
		result.Error = fmt.Sprintf("File not readable: %s", record.ErrorMessage)
		return result
	}

	formatAnalyzer, ok := analyzer.registry.Get(document_scanner.FormatTag(record.Extension))
	if !ok {
		result.Error = fmt.Sprintf("No analyzer available for %s files", record.Extension)
		return result
	}

	content, metadata := analyzer.extract(formatAnalyzer, record)
	result.Metadata = metadata
	result.WordCount = len(strings.Fields(content))
	result.ContentPreview = Preview(content)

	if aiEnabled && content != "" {
		result.Summary, result.AIInsights = analyzer.annotate(ctx, record, content)
	}
	return result
}

// extract serves content and metadata from the extraction cache when the
// file is unchanged, and populates it otherwise.
func (analyzer *DocumentAnalyzer) extract(formatAnalyzer analyzerContracts.IFormatAnalyzer, record scannerModels.FileRecord) (string, map[string]interface{}) {
	if analyzer.cache != nil {
		if entry, found := analyzer.cache.Get(record.Path); found {
			return entry.Content, entry.Metadata
		}
	}

	content := formatAnalyzer.ExtractText(record.Path)
	metadata := formatAnalyzer.ExtractMetadata(record.Path)

	if analyzer.cache != nil {
		analyzer.cache.Set(record.Path, ExtractionEntry{Content: content, Metadata: metadata})
	}
	return content, metadata
}

// annotate asks the AI analyzer for a summary and insights. Each call
// degrades on its own to the unavailable placeholder, never into a failed
// result.
func (analyzer *DocumentAnalyzer) annotate(ctx context.Context, record scannerModels.FileRecord, content string) (string, string) {
	if analyzer.aiAnalyzer == nil {
		return aiContracts.AnalysisUnavailableMessage, aiContracts.AnalysisUnavailableMessage
	}
	summary := guarded(func() string {
		return analyzer.aiAnalyzer.SummarizeContent(ctx, content, record.ProjectName)
	})
	insights := guarded(func() string {
		return analyzer.aiAnalyzer.AnalyzeContent(ctx, content, record.Name, record.ProjectName, record.SubfolderPath)
	})
	return summary, insights
}

// guarded turns a panicking AI call into the unavailable placeholder.
func guarded(annotate func() string) (annotation string) {
	defer func() {
		if r := recover(); r != nil {
			annotation = aiContracts.AnalysisUnavailableMessage
		}
	}()
	return annotate()
}

// Preview clips content to the first 500 characters for display and reports.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLimit {
		return content
	}
	return string(runes[:previewLimit]) + "..."
}
