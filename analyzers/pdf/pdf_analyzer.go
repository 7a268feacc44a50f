package pdf

import (
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/giarcheuli/docparser/analyzers/contracts"
)

// PDFAnalyzer extracts page text and trailer metadata from PDF documents.
type PDFAnalyzer struct{}

// NewPDFAnalyzer initializes a new PDFAnalyzer.
func NewPDFAnalyzer() contracts.IFormatAnalyzer {
	return &PDFAnalyzer{}
}

func (analyzer *PDFAnalyzer) ExtractText(path string) (result string) {
	// the pdf library panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			result = fmt.Sprintf("Error extracting PDF text: %v", r)
		}
	}()

	file, reader, err := pdflib.Open(path)
	if err != nil {
		return fmt.Sprintf("Error opening PDF: %v", err)
	}
	defer file.Close()

	var builder strings.Builder
	for pageNumber := 1; pageNumber <= reader.NumPage(); pageNumber++ {
		page := reader.Page(pageNumber)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			builder.WriteString(fmt.Sprintf("--- Page %d ---\n[Error extracting page: %v]\n\n", pageNumber, err))
			continue
		}
		builder.WriteString(fmt.Sprintf("--- Page %d ---\n%s\n\n", pageNumber, content))
	}
	return strings.TrimSpace(builder.String())
}

func (analyzer *PDFAnalyzer) ExtractMetadata(path string) (metadata map[string]interface{}) {
	metadata = make(map[string]interface{})
	defer func() {
		if r := recover(); r != nil {
			metadata["error"] = fmt.Sprintf("PDF metadata extraction failed: %v", r)
		}
	}()

	file, reader, err := pdflib.Open(path)
	if err != nil {
		metadata["error"] = err.Error()
		return metadata
	}
	defer file.Close()

	metadata["page_count"] = reader.NumPage()

	trailer := reader.Trailer()
	metadata["encrypted"] = !trailer.Key("Encrypt").IsNull()

	info := trailer.Key("Info")
	if info.IsNull() {
		return metadata
	}
	for _, key := range []string{"Title", "Author", "Subject", "Creator", "Producer"} {
		value := info.Key(key)
		if value.Kind() != pdflib.String {
			continue
		}
		if text := strings.TrimSpace(value.Text()); text != "" {
			metadata[strings.ToLower(key)] = text
		}
	}
	return metadata
}
