package text

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractTextUTF8 verifies plain UTF-8 content passes through untouched.
func TestExtractTextUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("first line\nsecond line\n"), 0644))

	analyzer := NewTextAnalyzer()

	assert.Equal(t, "first line\nsecond line\n", analyzer.ExtractText(path))
}

// TestExtractTextDecodesLatin1 verifies non-UTF-8 input is run through
// charset detection instead of being rejected.
func TestExtractTextDecodesLatin1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin.txt")
	// "café" in ISO-8859-1, with enough ASCII context for the detector
	content := append([]byte("the little coffee shop called caf"), 0xE9)
	content = append(content, []byte(" was open all night long")...)
	require.NoError(t, os.WriteFile(path, content, 0644))

	analyzer := NewTextAnalyzer()
	text := analyzer.ExtractText(path)

	assert.Contains(t, text, "coffee shop")
	assert.Contains(t, text, "was open all night long")
	assert.NotContains(t, analyzer.ExtractMetadata(path)["encoding"], "UTF-8")
}

// TestExtractTextMissingFile verifies read failures come back as an inline
// message.
func TestExtractTextMissingFile(t *testing.T) {
	analyzer := NewTextAnalyzer()

	text := analyzer.ExtractText(filepath.Join(t.TempDir(), "absent.txt"))

	assert.Contains(t, text, "Error reading file:")
}

// TestExtractMetadata verifies line and word counts plus the markdown flag.
func TestExtractMetadata(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "plain.txt")
	markdownPath := filepath.Join(dir, "readme.md")
	require.NoError(t, os.WriteFile(textPath, []byte("one two three\nfour five"), 0644))
	require.NoError(t, os.WriteFile(markdownPath, []byte("# Title\n"), 0644))

	analyzer := NewTextAnalyzer()

	metadata := analyzer.ExtractMetadata(textPath)
	assert.Equal(t, "UTF-8", metadata["encoding"])
	assert.Equal(t, 2, metadata["line_count"])
	assert.Equal(t, 5, metadata["word_count"])
	assert.Equal(t, false, metadata["is_markdown"])

	metadata = analyzer.ExtractMetadata(markdownPath)
	assert.Equal(t, 1, metadata["line_count"])
	assert.Equal(t, true, metadata["is_markdown"])
}

// TestExtractMetadataEmptyFile verifies the zero-line case.
func TestExtractMetadataEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	analyzer := NewTextAnalyzer()
	metadata := analyzer.ExtractMetadata(path)

	assert.Equal(t, 0, metadata["line_count"])
	assert.Equal(t, 0, metadata["word_count"])
}

// TestExtractMetadataMissingFile verifies failures surface under the error
// key instead of panicking.
func TestExtractMetadataMissingFile(t *testing.T) {
	analyzer := NewTextAnalyzer()

	metadata := analyzer.ExtractMetadata(filepath.Join(t.TempDir(), "absent.txt"))

	assert.Contains(t, metadata, "error")
}
