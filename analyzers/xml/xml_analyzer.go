package xml

import (
	"fmt"
	"sort"
	"strings"

	"github.com/beevik/etree"

	"github.com/giarcheuli/docparser/analyzers/contracts"
)

const (
	maxOutlineDepth  = 6
	maxElementText   = 100
	maxOutlineHeight = 200
)

// XMLAnalyzer renders an indented element outline of XML documents and
// collects structural metadata.
type XMLAnalyzer struct{}

// NewXMLAnalyzer initializes a new XMLAnalyzer.
func NewXMLAnalyzer() contracts.IFormatAnalyzer {
	return &XMLAnalyzer{}
}

func (analyzer *XMLAnalyzer) ExtractText(path string) string {
	document := etree.NewDocument()
	if err := document.ReadFromFile(path); err != nil {
		return fmt.Sprintf("Error parsing XML: %v", err)
	}
	root := document.Root()
	if root == nil {
		return "Error parsing XML: document has no root element"
	}

	var builder strings.Builder
	lines := 0
	writeOutline(&builder, root, 0, &lines)
	return strings.TrimRight(builder.String(), "\n")
}

func (analyzer *XMLAnalyzer) ExtractMetadata(path string) map[string]interface{} {
	metadata := make(map[string]interface{})

	document := etree.NewDocument()
	if err := document.ReadFromFile(path); err != nil {
		metadata["error"] = err.Error()
		return metadata
	}
	root := document.Root()
	if root == nil {
		metadata["error"] = "document has no root element"
		return metadata
	}

	tagCounts := make(map[string]int)
	namespaces := make(map[string]struct{})
	elements, depth := survey(root, 1, tagCounts, namespaces)

	metadata["root_tag"] = root.Tag
	metadata["element_count"] = elements
	metadata["max_depth"] = depth
	metadata["tag_counts"] = tagCounts
	metadata["document_type"] = documentType(root.Tag)

	prefixes := make([]string, 0, len(namespaces))
	for prefix := range namespaces {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)
	metadata["namespaces"] = prefixes

	return metadata
}

func writeOutline(builder *strings.Builder, element *etree.Element, depth int, lines *int) {
	if depth > maxOutlineDepth || *lines >= maxOutlineHeight {
		return
	}
	line := strings.Repeat("  ", depth) + element.Tag
	if text := strings.Join(strings.Fields(element.Text()), " "); text != "" {
		if len([]rune(text)) > maxElementText {
			text = string([]rune(text)[:maxElementText]) + "..."
		}
		line += ": " + text
	}
	builder.WriteString(line + "\n")
	*lines++

	for _, child := range element.ChildElements() {
		writeOutline(builder, child, depth+1, lines)
	}
}

func survey(element *etree.Element, depth int, tagCounts map[string]int, namespaces map[string]struct{}) (elements int, maxDepth int) {
	elements = 1
	maxDepth = depth
	tagCounts[element.Tag]++
	if element.Space != "" {
		namespaces[element.Space] = struct{}{}
	}
	for _, child := range element.ChildElements() {
		childElements, childDepth := survey(child, depth+1, tagCounts, namespaces)
		elements += childElements
		if childDepth > maxDepth {
			maxDepth = childDepth
		}
	}
	return elements, maxDepth
}

func documentType(rootTag string) string {
	switch strings.ToLower(rootTag) {
	case "rss":
		return "RSS feed"
	case "feed":
		return "Atom feed"
	case "svg":
		return "SVG image"
	case "html":
		return "XHTML document"
	case "project":
		return "Project file"
	default:
		return "XML document"
	}
}
