package llm

import (
	"context"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

type openAIBackend struct {
	client *openai.Client
}

// newOpenAIBackend targets an OpenAI-compatible server. Ollama serves this API
// under /v1, so a bare endpoint gets /v1 appended.
func newOpenAIBackend(endpoint, apiKey string, httpClient *http.Client) *openAIBackend {
	clientConfig := openai.DefaultConfig(apiKey)
	if !strings.HasSuffix(endpoint, "/v1") {
		endpoint += "/v1"
	}
	clientConfig.BaseURL = endpoint
	clientConfig.HTTPClient = httpClient
	return &openAIBackend{client: openai.NewClientWithConfig(clientConfig)}
}

func (b *openAIBackend) generate(ctx context.Context, prompt, model string) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func (b *openAIBackend) models(ctx context.Context) ([]string, error) {
	list, err := b.client.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		names = append(names, m.ID)
	}
	return names, nil
}
