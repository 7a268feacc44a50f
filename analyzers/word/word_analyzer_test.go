package word

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractTextLegacyDoc verifies binary .doc files get the conversion
// notice instead of a parse attempt.
func TestExtractTextLegacyDoc(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.doc")
	require.NoError(t, os.WriteFile(path, []byte{0xD0, 0xCF, 0x11, 0xE0}, 0644))

	analyzer := NewWordAnalyzer()

	assert.Equal(t, "Legacy .doc files not supported. Please convert to .docx format.", analyzer.ExtractText(path))
}

// TestExtractMetadataLegacyDoc verifies the same notice lands under the
// error key.
func TestExtractMetadataLegacyDoc(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.DOC")
	require.NoError(t, os.WriteFile(path, []byte("legacy"), 0644))

	analyzer := NewWordAnalyzer()
	metadata := analyzer.ExtractMetadata(path)

	assert.Equal(t, "Legacy .doc files not supported. Please convert to .docx format.", metadata["error"])
}

// TestExtractTextMissingFile verifies open failures come back inline.
func TestExtractTextMissingFile(t *testing.T) {
	analyzer := NewWordAnalyzer()

	text := analyzer.ExtractText(filepath.Join(t.TempDir(), "absent.docx"))

	assert.Contains(t, text, "Error opening document:")
}

// TestExtractTextCorruptDocx verifies a non-zip .docx fails with a message,
// not a panic.
func TestExtractTextCorruptDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("this is not a zip archive"), 0644))

	analyzer := NewWordAnalyzer()

	assert.Contains(t, analyzer.ExtractText(path), "Error")
	assert.Contains(t, analyzer.ExtractMetadata(path), "error")
}
