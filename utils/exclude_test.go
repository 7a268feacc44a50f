package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIsExcludedWithoutPatterns verifies the default is to exclude nothing.
func TestIsExcludedWithoutPatterns(t *testing.T) {
	assert.False(t, IsExcluded("alpha/notes/todo.md", nil))
	assert.False(t, IsExcluded("alpha/notes/todo.md", []string{}))
}

// TestIsExcludedMatchesSegments verifies a bare name matches any path
// segment.
func TestIsExcludedMatchesSegments(t *testing.T) {
	patterns := []string{"archive"}

	assert.True(t, IsExcluded("archive/old.txt", patterns))
	assert.True(t, IsExcluded("alpha/archive/old.txt", patterns))
	assert.False(t, IsExcluded("alpha/archives/old.txt", patterns))
}

// TestIsExcludedMatchesGlobs verifies glob patterns apply to segments and the
// full relative path.
func TestIsExcludedMatchesGlobs(t *testing.T) {
	assert.True(t, IsExcluded("alpha/draft.tmp.txt", []string{"*.tmp.txt"}))
	assert.True(t, IsExcluded("alpha/sub/backup.xml", []string{"alpha/*/backup.xml"}))
	assert.False(t, IsExcluded("alpha/final.txt", []string{"*.tmp.txt"}))
}

// TestIsExcludedDirectoryPatterns verifies "dir/" patterns exclude the whole
// subtree rooted at that relative directory.
func TestIsExcludedDirectoryPatterns(t *testing.T) {
	patterns := []string{"beta/old/"}

	assert.True(t, IsExcluded("beta/old", patterns))
	assert.True(t, IsExcluded("beta/old/deep/file.txt", patterns))
	assert.False(t, IsExcluded("beta/older/file.txt", patterns))
	assert.False(t, IsExcluded("alpha/beta/old/file.txt", patterns))
}
