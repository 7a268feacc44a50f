package xml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Engineering Blog</title>
    <item>
      <title>Post one</title>
      <dc:creator xmlns:dc="http://purl.org/dc/elements/1.1/">alice</dc:creator>
    </item>
    <item>
      <title>Post two</title>
    </item>
  </channel>
</rss>`

func writeXML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestExtractTextOutline verifies the indented tag outline carries element
// text.
func TestExtractTextOutline(t *testing.T) {
	analyzer := NewXMLAnalyzer()

	text := analyzer.ExtractText(writeXML(t, rssFixture))

	assert.Contains(t, text, "rss")
	assert.Contains(t, text, "title: Engineering Blog")
	assert.Contains(t, text, "title: Post one")
	assert.Contains(t, text, "creator: alice")
}

// TestExtractMetadata verifies structural counts, namespaces and the feed
// heuristic.
func TestExtractMetadata(t *testing.T) {
	analyzer := NewXMLAnalyzer()

	metadata := analyzer.ExtractMetadata(writeXML(t, rssFixture))

	assert.Equal(t, "rss", metadata["root_tag"])
	assert.Equal(t, "RSS feed", metadata["document_type"])
	assert.Equal(t, 4, metadata["max_depth"])
	assert.Equal(t, 8, metadata["element_count"])
	assert.Equal(t, []string{"dc"}, metadata["namespaces"])

	tagCounts, ok := metadata["tag_counts"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 2, tagCounts["item"])
	assert.Equal(t, 3, tagCounts["title"])
}

// TestExtractTextMalformed verifies parse errors come back inline.
func TestExtractTextMalformed(t *testing.T) {
	analyzer := NewXMLAnalyzer()

	text := analyzer.ExtractText(writeXML(t, "<open><unclosed></open>"))

	assert.Contains(t, text, "Error parsing XML:")
}

// TestExtractMetadataGenericDocument verifies the fallback document type.
func TestExtractMetadataGenericDocument(t *testing.T) {
	analyzer := NewXMLAnalyzer()

	metadata := analyzer.ExtractMetadata(writeXML(t, "<inventory><part>bolt</part></inventory>"))

	assert.Equal(t, "XML document", metadata["document_type"])
	assert.Equal(t, "inventory", metadata["root_tag"])
	assert.Equal(t, 2, metadata["element_count"])
}
