package token_management

import (
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/giarcheuli/docparser/constants/lipgloss"
	"github.com/giarcheuli/docparser/token_management/contracts"
)

// TokenManager implementation. Analysis workers report usage concurrently,
// so the counters sit behind a mutex.
type tokenManager struct {
	mutex           sync.Mutex
	usedToken       int
	usedInputToken  int
	usedOutputToken int
}

// NewTokenManager creates a new token manager.
func NewTokenManager() contracts.ITokenManagement {
	return &tokenManager{}
}

// UsedTokens accumulates the token count for the session.
func (tm *tokenManager) UsedTokens(inputTokens int, outputTokens int) {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()
	tm.usedInputToken += inputTokens
	tm.usedOutputToken += outputTokens
	tm.usedToken += inputTokens + outputTokens
}

func (tm *tokenManager) GetCurrentTokenUsage() (total int, input int, output int) {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()
	return tm.usedToken, tm.usedInputToken, tm.usedOutputToken
}

// DisplayTokens prints the session usage in a framed one-liner.
func (tm *tokenManager) DisplayTokens(providerName string, model string) {
	total, input, output := tm.GetCurrentTokenUsage()

	tokenInfo := fmt.Sprintf("Token Used: %s (Input: %s / Output: %s) - Provider: %s - Model: %s",
		humanize.Comma(int64(total)), humanize.Comma(int64(input)), humanize.Comma(int64(output)), providerName, model)
	fmt.Println(lipgloss.BoxStyle.Render(tokenInfo))
}

func (tm *tokenManager) ClearToken() {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()
	tm.usedToken = 0
	tm.usedInputToken = 0
	tm.usedOutputToken = 0
}
