package contracts

import (
	"context"

	"github.com/giarcheuli/docparser/providers/models"
)

// IChatAIProvider streams a chat completion for a user input under a system
// prompt. The returned channel is closed once the stream ends, errors out or
// the context is cancelled.
type IChatAIProvider interface {
	ChatCompletionRequest(ctx context.Context, userInput string, prompt string) <-chan models.StreamResponse
}
