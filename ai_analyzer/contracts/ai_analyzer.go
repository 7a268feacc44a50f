package contracts

import "context"

// AnalysisUnavailableMessage is the placeholder recorded when AI annotation
// was requested but no provider could serve it.
const AnalysisUnavailableMessage = "AI analysis unavailable"

// IAIAnalyzer produces AI-generated annotations for document content. Every
// method returns a usable string: when no provider in the chain answers, a
// deterministic fallback is returned instead of an error.
type IAIAnalyzer interface {
	SummarizeContent(ctx context.Context, content string, projectContext string) string
	AnalyzeContent(ctx context.Context, content string, fileName string, projectContext string, subfolderContext string) string
	AnalyzeProject(ctx context.Context, projectName string, overview string) string
	AnalyzeCrossProject(ctx context.Context, overview string) string
}
