package ai_analyzer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/xxh3"

	"github.com/giarcheuli/docparser/ai_analyzer/contracts"
	"github.com/giarcheuli/docparser/embed_data"
	"github.com/giarcheuli/docparser/providers"
	providerContracts "github.com/giarcheuli/docparser/providers/contracts"
	"github.com/giarcheuli/docparser/providers/models"
	tokenContracts "github.com/giarcheuli/docparser/token_management/contracts"
)

const (
	AnalysisModeQualitative  = "qualitative"
	AnalysisModeQuantitative = "quantitative"
)

const (
	// maxPromptContentChars caps how much document content goes into a
	// single prompt.
	maxPromptContentChars = 4000

	minSummaryContentChars  = 50
	minAnalysisContentChars = 20

	shortSummaryMessage  = "Content too short for meaningful summary"
	shortAnalysisMessage = "Content too short for analysis"

	responseCacheSize = 256
	requestTimeout    = 60 * time.Second

	systemPrompt = "You are a document analysis assistant. Be precise and concise."
)

var (
	summarizeTemplate    = template.Must(template.New("summarize").Parse(string(embed_data.SummarizePrompt)))
	qualitativeTemplate  = template.Must(template.New("qualitative").Parse(string(embed_data.AnalyzeQualitativePrompt)))
	quantitativeTemplate = template.Must(template.New("quantitative").Parse(string(embed_data.AnalyzeQuantitativePrompt)))
	projectTemplate      = template.Must(template.New("project").Parse(string(embed_data.ProjectAnalysisPrompt)))
	crossProjectTemplate = template.Must(template.New("cross_project").Parse(string(embed_data.CrossProjectPrompt)))
)

type chainEntry struct {
	name     string
	provider providerContracts.IChatAIProvider
}

// AIAnalyzer runs prompts over the configured provider chain, first
// configured provider first, and memoizes responses for identical prompts
// within the run.
type AIAnalyzer struct {
	chain           []chainEntry
	mode            string
	cache           *lru.Cache[uint64, string]
	tokenManagement tokenContracts.ITokenManagement
}

type promptData struct {
	Content          string
	FileName         string
	ProjectContext   string
	SubfolderContext string
}

// NewAIAnalyzer builds the provider chain from config. It fails when no
// configured provider is enabled and resolvable, so callers can decide
// whether to run without AI instead.
func NewAIAnalyzer(config *providers.AIProviderConfig, mode string, tokenManagement tokenContracts.ITokenManagement) (contracts.IAIAnalyzer, error) {
	if config == nil {
		return nil, errors.New("no AI providers configured")
	}

	var chain []chainEntry
	for _, name := range config.ChainOrder() {
		settings := config.Providers[name]
		if !settings.Resolvable(name) {
			continue
		}
		provider, err := providers.NewChatProvider(name, settings, tokenManagement)
		if err != nil {
			log.Printf("Warning: skipping AI provider %s: %v", name, err)
			continue
		}
		chain = append(chain, chainEntry{name: name, provider: provider})
	}
	if len(chain) == 0 {
		return nil, errors.New("no AI providers configured")
	}

	cache, err := lru.New[uint64, string](responseCacheSize)
	if err != nil {
		return nil, err
	}
	if mode != AnalysisModeQuantitative {
		mode = AnalysisModeQualitative
	}
	return &AIAnalyzer{
		chain:           chain,
		mode:            mode,
		cache:           cache,
		tokenManagement: tokenManagement,
	}, nil
}

func (analyzer *AIAnalyzer) SummarizeContent(ctx context.Context, content string, projectContext string) string {
	trimmed := strings.TrimSpace(content)
	if utf8.RuneCountInString(trimmed) < minSummaryContentChars {
		return shortSummaryMessage
	}

	prompt := renderPrompt(summarizeTemplate, promptData{
		Content:        truncateContent(trimmed),
		ProjectContext: projectContext,
	})
	if answer, ok := analyzer.complete(ctx, prompt); ok {
		return answer
	}
	return fallbackSummary(trimmed)
}

func (analyzer *AIAnalyzer) AnalyzeContent(ctx context.Context, content string, fileName string, projectContext string, subfolderContext string) string {
	trimmed := strings.TrimSpace(content)
	if utf8.RuneCountInString(trimmed) < minAnalysisContentChars {
		return shortAnalysisMessage
	}

	prompt := renderPrompt(analyzer.analysisTemplate(), promptData{
		Content:          truncateContent(trimmed),
		FileName:         fileName,
		ProjectContext:   projectContext,
		SubfolderContext: subfolderContext,
	})
	if answer, ok := analyzer.complete(ctx, prompt); ok {
		return answer
	}
	return fallbackAnalysis(trimmed)
}

func (analyzer *AIAnalyzer) AnalyzeProject(ctx context.Context, projectName string, overview string) string {
	prompt := renderPrompt(projectTemplate, struct {
		ProjectName string
		Overview    string
	}{ProjectName: projectName, Overview: overview})

	if answer, ok := analyzer.complete(ctx, prompt); ok {
		return answer
	}
	return contracts.AnalysisUnavailableMessage
}

func (analyzer *AIAnalyzer) AnalyzeCrossProject(ctx context.Context, overview string) string {
	prompt := renderPrompt(crossProjectTemplate, struct{ Overview string }{Overview: overview})

	if answer, ok := analyzer.complete(ctx, prompt); ok {
		return answer
	}
	return contracts.AnalysisUnavailableMessage
}

func (analyzer *AIAnalyzer) analysisTemplate() *template.Template {
	if analyzer.mode == AnalysisModeQuantitative {
		return quantitativeTemplate
	}
	return qualitativeTemplate
}

// complete walks the provider chain until one returns a non-empty answer.
// Identical prompts within a run are served from the response cache without
// touching a provider.
func (analyzer *AIAnalyzer) complete(ctx context.Context, prompt string) (string, bool) {
	key := xxh3.HashString(prompt)
	if cached, ok := analyzer.cache.Get(key); ok {
		return cached, true
	}

	for _, entry := range analyzer.chain {
		if ctx.Err() != nil {
			return "", false
		}

		requestCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		answer, err := drainResponse(entry.provider.ChatCompletionRequest(requestCtx, prompt, systemPrompt))
		cancel()
		if err != nil {
			log.Printf("Warning: AI provider %s failed: %v", entry.name, err)
			continue
		}

		answer = strings.TrimSpace(answer)
		if answer == "" {
			continue
		}
		analyzer.cache.Add(key, answer)
		return answer, true
	}
	return "", false
}

func drainResponse(responseChan <-chan models.StreamResponse) (string, error) {
	var builder strings.Builder
	for response := range responseChan {
		if response.Err != nil {
			return "", response.Err
		}
		builder.WriteString(response.Content)
		if response.Done {
			break
		}
	}
	return builder.String(), nil
}

func renderPrompt(promptTemplate *template.Template, data interface{}) string {
	var buffer bytes.Buffer
	if err := promptTemplate.Execute(&buffer, data); err != nil {
		log.Printf("Warning: rendering %s prompt: %v", promptTemplate.Name(), err)
	}
	return buffer.String()
}

func truncateContent(content string) string {
	runes := []rune(content)
	if len(runes) <= maxPromptContentChars {
		return content
	}
	return string(runes[:maxPromptContentChars]) + "..."
}

// fallbackSummary derives a summary from the content itself: its first
// sentence, clipped to 150 characters.
func fallbackSummary(content string) string {
	flat := strings.Join(strings.Fields(content), " ")
	sentence := flat
	if idx := strings.Index(flat, ". "); idx >= 0 {
		sentence = flat[:idx+1]
	}
	runes := []rune(sentence)
	if len(runes) > 150 {
		sentence = string(runes[:150]) + "..."
	}
	return sentence
}

// fallbackAnalysis derives basic statistics from the content itself.
func fallbackAnalysis(content string) string {
	words := len(strings.Fields(content))
	characters := utf8.RuneCountInString(content)
	lines := 0
	if content != "" {
		lines = strings.Count(content, "\n")
		if !strings.HasSuffix(content, "\n") {
			lines++
		}
	}
	return fmt.Sprintf("Basic analysis (AI unavailable): %d words, %d characters, %d lines.", words, characters, lines)
}
