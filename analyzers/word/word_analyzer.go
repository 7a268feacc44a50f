package word

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/fumiama/go-docx"

	"github.com/giarcheuli/docparser/analyzers/contracts"
)

const legacyDocMessage = "Legacy .doc files not supported. Please convert to .docx format."

// WordAnalyzer extracts paragraph and table text from .docx documents along
// with the core document properties. Legacy binary .doc files are reported,
// not parsed.
type WordAnalyzer struct{}

// NewWordAnalyzer initializes a new WordAnalyzer.
func NewWordAnalyzer() contracts.IFormatAnalyzer {
	return &WordAnalyzer{}
}

func (analyzer *WordAnalyzer) ExtractText(path string) (result string) {
	if isLegacyDoc(path) {
		return legacyDocMessage
	}
	defer func() {
		if r := recover(); r != nil {
			result = fmt.Sprintf("Error extracting Word text: %v", r)
		}
	}()

	file, err := os.Open(path)
	if err != nil {
		return fmt.Sprintf("Error opening document: %v", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Sprintf("Error reading document: %v", err)
	}
	document, err := docx.Parse(file, info.Size())
	if err != nil {
		return fmt.Sprintf("Error parsing document: %v", err)
	}

	var parts []string
	for _, item := range document.Document.Body.Items {
		switch item.(type) {
		case *docx.Paragraph, *docx.Table:
			block, ok := item.(fmt.Stringer)
			if !ok {
				continue
			}
			if text := strings.TrimSpace(block.String()); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, "\n")
}

func (analyzer *WordAnalyzer) ExtractMetadata(path string) (metadata map[string]interface{}) {
	metadata = make(map[string]interface{})
	if isLegacyDoc(path) {
		metadata["error"] = legacyDocMessage
		return metadata
	}
	defer func() {
		if r := recover(); r != nil {
			metadata["error"] = fmt.Sprintf("Word metadata extraction failed: %v", r)
		}
	}()

	paragraphs, tables, err := countBlocks(path)
	if err != nil {
		metadata["error"] = err.Error()
		return metadata
	}
	metadata["paragraph_count"] = paragraphs
	metadata["table_count"] = tables

	readCoreProperties(path, metadata)
	return metadata
}

func isLegacyDoc(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".doc")
}

func countBlocks(path string) (paragraphs int, tables int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, 0, err
	}
	document, err := docx.Parse(file, info.Size())
	if err != nil {
		return 0, 0, err
	}
	for _, item := range document.Document.Body.Items {
		switch item.(type) {
		case *docx.Paragraph:
			paragraphs++
		case *docx.Table:
			tables++
		}
	}
	return paragraphs, tables, nil
}

// readCoreProperties pulls title, author and friends out of the OPC package's
// docProps/core.xml part. Missing parts are simply skipped.
func readCoreProperties(path string, metadata map[string]interface{}) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return
	}
	defer archive.Close()

	for _, part := range archive.File {
		if part.Name != "docProps/core.xml" {
			continue
		}
		reader, err := part.Open()
		if err != nil {
			return
		}
		data, err := io.ReadAll(reader)
		reader.Close()
		if err != nil {
			return
		}

		document := etree.NewDocument()
		if err := document.ReadFromBytes(data); err != nil {
			return
		}
		root := document.Root()
		if root == nil {
			return
		}
		for _, child := range root.ChildElements() {
			value := strings.TrimSpace(child.Text())
			if value == "" {
				continue
			}
			switch child.Tag {
			case "title":
				metadata["title"] = value
			case "creator":
				metadata["author"] = value
			case "subject":
				metadata["subject"] = value
			case "keywords":
				metadata["keywords"] = value
			case "lastModifiedBy":
				metadata["last_modified_by"] = value
			case "created":
				metadata["created"] = value
			case "modified":
				metadata["modified"] = value
			}
		}
		return
	}
}
