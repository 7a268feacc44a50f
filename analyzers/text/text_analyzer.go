package text

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"

	"github.com/giarcheuli/docparser/analyzers/contracts"
)

// TextAnalyzer handles plain text and markdown documents. Non-UTF-8 input is
// detected and decoded before use.
type TextAnalyzer struct{}

// NewTextAnalyzer initializes a new TextAnalyzer.
func NewTextAnalyzer() contracts.IFormatAnalyzer {
	return &TextAnalyzer{}
}

func (analyzer *TextAnalyzer) ExtractText(path string) string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("Error reading file: %v", err)
	}
	content, _ := decode(raw)
	return content
}

func (analyzer *TextAnalyzer) ExtractMetadata(path string) map[string]interface{} {
	metadata := make(map[string]interface{})

	raw, err := os.ReadFile(path)
	if err != nil {
		metadata["error"] = err.Error()
		return metadata
	}
	content, encoding := decode(raw)

	ext := strings.ToLower(filepath.Ext(path))
	metadata["encoding"] = encoding
	metadata["line_count"] = lineCount(content)
	metadata["word_count"] = len(strings.Fields(content))
	metadata["is_markdown"] = ext == ".md" || ext == ".markdown"
	return metadata
}

// decode returns raw as a UTF-8 string along with the encoding it was read
// as. Detection failures fall back to the raw bytes rather than erroring out.
func decode(raw []byte) (string, string) {
	if utf8.Valid(raw) {
		return string(raw), "UTF-8"
	}

	detector := chardet.NewTextDetector()
	best, err := detector.DetectBest(raw)
	if err != nil {
		return string(raw), "unknown"
	}
	reader, err := charset.NewReaderLabel(best.Charset, bytes.NewReader(raw))
	if err != nil {
		return string(raw), best.Charset
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return string(raw), best.Charset
	}
	return string(decoded), best.Charset
}

func lineCount(content string) int {
	if content == "" {
		return 0
	}
	count := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		count++
	}
	return count
}
