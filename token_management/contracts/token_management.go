package contracts

// ITokenManagement tallies AI token usage across one run so an analysis
// session can report what it consumed. Implementations are safe for use from
// concurrent workers.
type ITokenManagement interface {
	UsedTokens(inputTokens int, outputTokens int)
	GetCurrentTokenUsage() (total int, input int, output int)
	DisplayTokens(providerName string, model string)
	ClearToken()
}
