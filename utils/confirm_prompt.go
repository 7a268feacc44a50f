package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/giarcheuli/docparser/constants/lipgloss"
)

// ConfirmPrompt asks the user a yes/no question and returns true only for an
// explicit yes. Empty input and EOF count as no.
func ConfirmPrompt(reader *bufio.Reader, question string) (bool, error) {
	fmt.Print(lipgloss.BlueSky.Render(fmt.Sprintf("%s [y/N]: ", question)))

	answer, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read input: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
