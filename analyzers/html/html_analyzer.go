package html

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/giarcheuli/docparser/analyzers/contracts"
)

const (
	linkLimit  = 20
	imageLimit = 10
)

// HTMLAnalyzer extracts visible text and document structure from HTML files.
// Script and style contents never leak into the extracted text.
type HTMLAnalyzer struct{}

// NewHTMLAnalyzer initializes a new HTMLAnalyzer.
func NewHTMLAnalyzer() contracts.IFormatAnalyzer {
	return &HTMLAnalyzer{}
}

func (analyzer *HTMLAnalyzer) ExtractText(path string) string {
	document, errMessage := parse(path)
	if errMessage != "" {
		return errMessage
	}
	document.Find("script, style, noscript").Remove()

	var builder strings.Builder
	if title := strings.TrimSpace(document.Find("title").First().Text()); title != "" {
		builder.WriteString("Title: " + title + "\n\n")
	}

	scope := document.Selection
	if body := document.Find("body"); body.Length() > 0 {
		scope = body
	}
	builder.WriteString(cleanText(scope.Text()))
	return strings.TrimSpace(builder.String())
}

func (analyzer *HTMLAnalyzer) ExtractMetadata(path string) map[string]interface{} {
	metadata := make(map[string]interface{})

	document, errMessage := parse(path)
	if errMessage != "" {
		metadata["error"] = errMessage
		return metadata
	}

	if title := strings.TrimSpace(document.Find("title").First().Text()); title != "" {
		metadata["title"] = title
	}

	meta := make(map[string]string)
	document.Find("meta").Each(func(_ int, selection *goquery.Selection) {
		name, hasName := selection.Attr("name")
		content, hasContent := selection.Attr("content")
		if hasName && hasContent && name != "" {
			meta[name] = content
		}
	})
	metadata["meta_tags"] = meta

	tagCounts := make(map[string]int)
	document.Find("*").Each(func(_ int, selection *goquery.Selection) {
		tagCounts[goquery.NodeName(selection)]++
	})
	metadata["tag_counts"] = tagCounts

	var links []string
	document.Find("a[href]").Each(func(_ int, selection *goquery.Selection) {
		if len(links) >= linkLimit {
			return
		}
		if href, ok := selection.Attr("href"); ok && href != "" {
			links = append(links, href)
		}
	})
	metadata["links"] = links
	metadata["link_count"] = document.Find("a[href]").Length()

	var images []string
	document.Find("img[src]").Each(func(_ int, selection *goquery.Selection) {
		if len(images) >= imageLimit {
			return
		}
		if src, ok := selection.Attr("src"); ok && src != "" {
			images = append(images, src)
		}
	})
	metadata["images"] = images
	metadata["image_count"] = document.Find("img[src]").Length()

	return metadata
}

func parse(path string) (*goquery.Document, string) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Sprintf("Error opening file: %v", err)
	}
	defer file.Close()

	document, err := goquery.NewDocumentFromReader(file)
	if err != nil {
		return nil, fmt.Sprintf("Error parsing HTML: %v", err)
	}
	return document, ""
}

// cleanText collapses the parser's raw text into stripped, non-empty lines.
func cleanText(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, strings.Join(strings.Fields(trimmed), " "))
		}
	}
	return strings.Join(lines, "\n")
}
