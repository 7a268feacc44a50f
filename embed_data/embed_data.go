package embed_data

import _ "embed"

//go:embed prompts/summarize.tmpl
var SummarizePrompt []byte

//go:embed prompts/analyze_qualitative.tmpl
var AnalyzeQualitativePrompt []byte

//go:embed prompts/analyze_quantitative.tmpl
var AnalyzeQuantitativePrompt []byte

//go:embed prompts/project_analysis.tmpl
var ProjectAnalysisPrompt []byte

//go:embed prompts/cross_project.tmpl
var CrossProjectPrompt []byte
