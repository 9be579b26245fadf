// Package llm sends generation prompts to a local or remote model server.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/samzong/gitai/internal/config"
	"github.com/samzong/gitai/internal/errs"
)

var errEmptyResponse = errors.New("LLM returned empty response")

// Options configures a Client.
type Options struct {
	Provider string
	Endpoint string
	Model    string
	APIKey   string
	// Timeout bounds a whole request. Zero means no client-side timeout.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// CheckResult reports endpoint reachability and whether a model is served.
type CheckResult struct {
	Reachable    bool
	ModelPresent bool
	ModelNames   []string
}

type backend interface {
	generate(ctx context.Context, prompt, model string) (string, error)
	models(ctx context.Context) ([]string, error)
}

// Client issues single, synchronous generation requests.
type Client struct {
	model   string
	backend backend
}

// NewClient builds a client for opts.Provider (ollama when empty).
func NewClient(opts Options) (*Client, error) {
	endpoint := strings.TrimSuffix(strings.TrimSpace(opts.Endpoint), "/")
	if endpoint == "" {
		endpoint = config.DefaultEndpoint
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	var b backend
	switch opts.Provider {
	case "", config.ProviderOllama:
		b = &ollamaBackend{endpoint: endpoint, httpClient: httpClient}
	case config.ProviderOpenAI:
		b = newOpenAIBackend(endpoint, opts.APIKey, httpClient)
	default:
		return nil, fmt.Errorf("unsupported provider %q", opts.Provider)
	}

	return &Client{model: opts.Model, backend: b}, nil
}

// GenerateCommitMessage sends prompt to the model and returns the completion
// with surrounding whitespace trimmed. An empty model falls back to the
// client's configured model. Every failure is an errs.GenerationFailure.
func (c *Client) GenerateCommitMessage(ctx context.Context, prompt, model string) (string, error) {
	if model == "" {
		model = c.model
	}
	if model == "" {
		return "", errs.New(errs.GenerationFailure, "no model configured", nil)
	}

	text, err := c.backend.generate(ctx, prompt, model)
	if err != nil {
		return "", errs.New(errs.GenerationFailure, "failed to call LLM", err)
	}
	return strings.TrimSpace(text), nil
}

// Check verifies the endpoint answers and lists whether model is available.
func (c *Client) Check(ctx context.Context, model string) (*CheckResult, error) {
	if model == "" {
		model = c.model
	}
	names, err := c.backend.models(ctx)
	if err != nil {
		return nil, errs.New(errs.GenerationFailure, "generation endpoint unreachable", err)
	}

	present := false
	for _, n := range names {
		if n == model || strings.TrimSuffix(n, ":latest") == model {
			present = true
			break
		}
	}
	return &CheckResult{Reachable: true, ModelPresent: present, ModelNames: names}, nil
}
