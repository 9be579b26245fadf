package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const maxErrorBody = 4 * 1024

type ollamaBackend struct {
	endpoint   string
	httpClient *http.Client
}

func (b *ollamaBackend) generate(ctx context.Context, prompt, model string) (text string, err error) {
	client, err := ollama.New(
		ollama.WithServerURL(b.endpoint),
		ollama.WithModel(model),
		ollama.WithHTTPClient(b.httpClient),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create Ollama client: %w", err)
	}

	// langchaingo dereferences the reply message without a nil check when the
	// server answers 2xx with no body.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed Ollama response: %v", r)
		}
	}()

	resp, err := client.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	})
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", errEmptyResponse
	}
	return resp.Choices[0].Content, nil
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// models lists installed models via /api/tags, which langchaingo does not expose.
func (b *ollamaBackend) models(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.endpoint+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("ollama tags request: %w", err)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama tags: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if text := strings.TrimSpace(string(msg)); text != "" {
			return nil, fmt.Errorf("ollama tags: HTTP %d: %s", resp.StatusCode, text)
		}
		return nil, fmt.Errorf("ollama tags: HTTP %d", resp.StatusCode)
	}

	var body ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("ollama tags: parse response: %w", err)
	}
	names := make([]string, 0, len(body.Models))
	for _, m := range body.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
