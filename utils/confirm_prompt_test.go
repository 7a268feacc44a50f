package utils

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test that explicit yes answers are accepted in any casing.
func TestConfirmPromptAccepts(t *testing.T) {
	for _, answer := range []string{"y\n", "Y\n", "yes\n", "YES\n", "  yes  \n"} {
		ok, err := ConfirmPrompt(bufio.NewReader(strings.NewReader(answer)), "Overwrite?")
		require.NoError(t, err)
		assert.True(t, ok, "answer %q should confirm", answer)
	}
}

// Test that anything other than yes declines, including empty input.
func TestConfirmPromptDeclines(t *testing.T) {
	for _, answer := range []string{"n\n", "no\n", "\n", "maybe\n"} {
		ok, err := ConfirmPrompt(bufio.NewReader(strings.NewReader(answer)), "Overwrite?")
		require.NoError(t, err)
		assert.False(t, ok, "answer %q should decline", answer)
	}
}

// Test that EOF on the input counts as declining rather than an error.
func TestConfirmPromptEOF(t *testing.T) {
	ok, err := ConfirmPrompt(bufio.NewReader(strings.NewReader("")), "Overwrite?")
	require.NoError(t, err)
	assert.False(t, ok)
}
