package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/giarcheuli/docparser/providers"
	anthropic_models "github.com/giarcheuli/docparser/providers/anthropic/models"
	"github.com/giarcheuli/docparser/providers/contracts"
	"github.com/giarcheuli/docparser/providers/models"
	tokenContracts "github.com/giarcheuli/docparser/token_management/contracts"
)

// AnthropicConfig implements the chat provider interface against the
// Anthropic messages API.
type AnthropicConfig struct {
	BaseURL         string
	Model           string
	ApiKey          string
	Temperature     *float32
	MaxTokens       int
	TokenManagement tokenContracts.ITokenManagement
}

const (
	defaultBaseURL   = "https://api.anthropic.com"
	apiVersion       = "2023-06-01"
	defaultMaxTokens = 1024
)

func init() {
	providers.Register("anthropic", func(settings *providers.ProviderSettings, tokenManagement tokenContracts.ITokenManagement) contracts.IChatAIProvider {
		return NewAnthropicChatProvider(&AnthropicConfig{
			BaseURL:         settings.BaseURL,
			Model:           settings.Model,
			ApiKey:          settings.ResolveAPIKey(),
			Temperature:     settings.Temperature,
			MaxTokens:       settings.MaxTokens,
			TokenManagement: tokenManagement,
		})
	})
}

// NewAnthropicChatProvider initializes a new AnthropicConfig.
func NewAnthropicChatProvider(config *AnthropicConfig) contracts.IChatAIProvider {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		// the messages API requires an explicit budget
		maxTokens = defaultMaxTokens
	}
	return &AnthropicConfig{
		BaseURL:         baseURL,
		Model:           config.Model,
		ApiKey:          config.ApiKey,
		Temperature:     config.Temperature,
		MaxTokens:       maxTokens,
		TokenManagement: config.TokenManagement,
	}
}

func (anthropicProvider *AnthropicConfig) ChatCompletionRequest(ctx context.Context, userInput string, prompt string) <-chan models.StreamResponse {
	responseChan := make(chan models.StreamResponse)

	go func() {
		defer close(responseChan)

		reqBody := anthropic_models.MessagesRequest{
			Model:     anthropicProvider.Model,
			MaxTokens: anthropicProvider.MaxTokens,
			System:    prompt,
			Messages: []anthropic_models.Message{
				{Role: "user", Content: userInput},
			},
			Stream:      true,
			Temperature: anthropicProvider.Temperature,
		}

		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			responseChan <- models.StreamResponse{Err: fmt.Errorf("error marshalling request body: %v", err)}
			return
		}

		req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/v1/messages", anthropicProvider.BaseURL), bytes.NewBuffer(jsonData))
		if err != nil {
			responseChan <- models.StreamResponse{Err: fmt.Errorf("error creating request: %v", err)}
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-api-key", anthropicProvider.ApiKey)
		req.Header.Set("anthropic-version", apiVersion)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				responseChan <- models.StreamResponse{Err: fmt.Errorf("request canceled: %v", err)}
				return
			}
			responseChan <- models.StreamResponse{Err: fmt.Errorf("error sending request: %v", err)}
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			var apiError models.AIError
			if err := json.Unmarshal(body, &apiError); err != nil {
				responseChan <- models.StreamResponse{Err: fmt.Errorf("error parsing error response: %v", err)}
				return
			}
			responseChan <- models.StreamResponse{Err: fmt.Errorf("API request failed with status code '%d' - %s\n", resp.StatusCode, apiError.Error.Message)}
			return
		}

		var inputTokens, outputTokens int
		scanner := newSSEScanner(resp.Body)
		for scanner.Next() {
			event := scanner.Event()
			switch event.Event {
			case "message_start":
				var start anthropic_models.MessageStart
				if err := json.Unmarshal([]byte(event.Data), &start); err == nil {
					inputTokens = start.Message.Usage.InputTokens
				}
			case "content_block_delta":
				var delta anthropic_models.ContentBlockDelta
				if err := json.Unmarshal([]byte(event.Data), &delta); err != nil {
					responseChan <- models.StreamResponse{Err: fmt.Errorf("error unmarshalling chunk: %v", err)}
					return
				}
				if delta.Delta.Type == "text_delta" && delta.Delta.Text != "" {
					responseChan <- models.StreamResponse{Content: delta.Delta.Text}
				}
			case "message_delta":
				var messageDelta anthropic_models.MessageDelta
				if err := json.Unmarshal([]byte(event.Data), &messageDelta); err == nil {
					outputTokens = messageDelta.Usage.OutputTokens
				}
			case "message_stop":
				if anthropicProvider.TokenManagement != nil && inputTokens+outputTokens > 0 {
					anthropicProvider.TokenManagement.UsedTokens(inputTokens, outputTokens)
				}
				responseChan <- models.StreamResponse{Done: true}
				return
			case "error":
				var streamError anthropic_models.StreamError
				if err := json.Unmarshal([]byte(event.Data), &streamError); err != nil {
					responseChan <- models.StreamResponse{Err: fmt.Errorf("error unmarshalling error event: %v", err)}
					return
				}
				responseChan <- models.StreamResponse{Err: fmt.Errorf("stream error: %s", streamError.Error.Message)}
				return
			}
		}
		if err := scanner.Err(); err != nil {
			responseChan <- models.StreamResponse{Err: fmt.Errorf("error reading stream: %v", err)}
		}
	}()

	return responseChan
}
