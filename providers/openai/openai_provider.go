package openai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/giarcheuli/docparser/providers"
	"github.com/giarcheuli/docparser/providers/contracts"
	"github.com/giarcheuli/docparser/providers/models"
	openai_models "github.com/giarcheuli/docparser/providers/openai/models"
	tokenContracts "github.com/giarcheuli/docparser/token_management/contracts"
)

// OpenAIConfig implements the chat provider interface against the OpenAI
// chat completions API and compatible servers.
type OpenAIConfig struct {
	BaseURL         string
	Model           string
	ApiKey          string
	Temperature     *float32
	MaxTokens       int
	TokenManagement tokenContracts.ITokenManagement
}

const defaultBaseURL = "https://api.openai.com/v1"

func init() {
	providers.Register("openai", func(settings *providers.ProviderSettings, tokenManagement tokenContracts.ITokenManagement) contracts.IChatAIProvider {
		return NewOpenAIChatProvider(&OpenAIConfig{
			BaseURL:         settings.BaseURL,
			Model:           settings.Model,
			ApiKey:          settings.ResolveAPIKey(),
			Temperature:     settings.Temperature,
			MaxTokens:       settings.MaxTokens,
			TokenManagement: tokenManagement,
		})
	})
}

// NewOpenAIChatProvider initializes a new OpenAIConfig.
func NewOpenAIChatProvider(config *OpenAIConfig) contracts.IChatAIProvider {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OpenAIConfig{
		BaseURL:         baseURL,
		Model:           config.Model,
		ApiKey:          config.ApiKey,
		Temperature:     config.Temperature,
		MaxTokens:       config.MaxTokens,
		TokenManagement: config.TokenManagement,
	}
}

func (openAIProvider *OpenAIConfig) ChatCompletionRequest(ctx context.Context, userInput string, prompt string) <-chan models.StreamResponse {
	responseChan := make(chan models.StreamResponse)

	go func() {
		defer close(responseChan)

		reqBody := openai_models.ChatCompletionRequest{
			Model: openAIProvider.Model,
			Messages: []openai_models.Message{
				{Role: "system", Content: prompt},
				{Role: "user", Content: userInput},
			},
			Stream:        true,
			Temperature:   openAIProvider.Temperature,
			MaxTokens:     openAIProvider.MaxTokens,
			StreamOptions: &openai_models.StreamOptions{IncludeUsage: true},
		}

		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			responseChan <- models.StreamResponse{Err: fmt.Errorf("error marshalling request body: %v", err)}
			return
		}

		req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/chat/completions", openAIProvider.BaseURL), bytes.NewBuffer(jsonData))
		if err != nil {
			responseChan <- models.StreamResponse{Err: fmt.Errorf("error creating request: %v", err)}
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+openAIProvider.ApiKey)

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

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			data := strings.TrimPrefix(line, "data: ")
			if data == "[DONE]" {
				responseChan <- models.StreamResponse{Done: true}
				return
			}

			var chunk openai_models.ChatCompletionChunk
			if err := json.Unmarshal([]byte(data), &chunk); err != nil {
				responseChan <- models.StreamResponse{Err: fmt.Errorf("error unmarshalling chunk: %v", err)}
				return
			}

			if chunk.Usage != nil && chunk.Usage.TotalTokens > 0 && openAIProvider.TokenManagement != nil {
				openAIProvider.TokenManagement.UsedTokens(chunk.Usage.PromptTokens, chunk.Usage.CompletionTokens)
			}
			if len(chunk.Choices) == 0 {
				continue
			}
			if content := chunk.Choices[0].Delta.Content; content != "" {
				responseChan <- models.StreamResponse{Content: content}
			}
		}
		if err := scanner.Err(); err != nil {
			responseChan <- models.StreamResponse{Err: fmt.Errorf("error reading stream: %v", err)}
		}
	}()

	return responseChan
}
