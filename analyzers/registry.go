package analyzers

import (
	"sort"

	"github.com/giarcheuli/docparser/analyzers/contracts"
	"github.com/giarcheuli/docparser/analyzers/excel"
	"github.com/giarcheuli/docparser/analyzers/html"
	"github.com/giarcheuli/docparser/analyzers/pdf"
	"github.com/giarcheuli/docparser/analyzers/text"
	"github.com/giarcheuli/docparser/analyzers/word"
	"github.com/giarcheuli/docparser/analyzers/xml"
	"github.com/giarcheuli/docparser/document_scanner"
)

// Registry resolves a document's format tag to the analyzer responsible for
// it.
type Registry struct {
	analyzers map[document_scanner.FormatTag]contracts.IFormatAnalyzer
}

// NewRegistry wires every compiled-in analyzer to the extensions it serves.
func NewRegistry() *Registry {
	registry := &Registry{analyzers: make(map[document_scanner.FormatTag]contracts.IFormatAnalyzer)}
	registry.register(text.NewTextAnalyzer(), ".txt", ".md", ".markdown")
	registry.register(pdf.NewPDFAnalyzer(), ".pdf")
	registry.register(word.NewWordAnalyzer(), ".doc", ".docx")
	registry.register(excel.NewExcelAnalyzer(), ".xlsx", ".xls")
	registry.register(html.NewHTMLAnalyzer(), ".html", ".htm")
	registry.register(xml.NewXMLAnalyzer(), ".xml")
	return registry
}

func (registry *Registry) register(analyzer contracts.IFormatAnalyzer, tags ...document_scanner.FormatTag) {
	for _, tag := range tags {
		registry.analyzers[tag] = analyzer
	}
}

// Get returns the analyzer registered for tag, if any.
func (registry *Registry) Get(tag document_scanner.FormatTag) (contracts.IFormatAnalyzer, bool) {
	analyzer, ok := registry.analyzers[tag]
	return analyzer, ok
}

// Tags returns every registered format tag in sorted order.
func (registry *Registry) Tags() []document_scanner.FormatTag {
	tags := make([]document_scanner.FormatTag, 0, len(registry.analyzers))
	for tag := range registry.analyzers {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}
