package utils

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// RenderMarkdown highlights markdown content and prints it to the terminal,
// honoring cancellation between lines so long reports stay interruptible.
func RenderMarkdown(ctx context.Context, content string, theme string) error {
	lines := strings.Split(content, "\n")

	for _, line := range lines {
		// Check for context cancellation before each line
		select {
		case <-ctx.Done():
			fmt.Printf("\n\n🔄 Output interrupted...\n")
			return ctx.Err()
		default:
		}

		// Use a buffer to capture the highlight output
		var buf bytes.Buffer
		if err := quick.Highlight(&buf, line+"\n", "markdown", "terminal256", theme); err != nil {
			return err
		}
		fmt.Print(buf.String())
	}

	return nil
}
