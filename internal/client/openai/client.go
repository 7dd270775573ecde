package openai

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	httpclient "github.com/planpay/planpay-api/internal/client/http"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

// Config carries the credentials and model selection for the chat
// completions API.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client calls the OpenAI chat completions endpoint.
type Client struct {
	httpClient *httpclient.HTTPClient
	model      string
}

// NewClient validates the config and builds a completions client.
func NewClient(cfg Config, collector httpclient.MetricsCollector) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	opts := []httpclient.ClientOption{
		httpclient.WithBaseURL(baseURL),
		httpclient.WithDefaultHeader("Authorization", "Bearer "+apiKey),
	}
	if collector != nil {
		opts = append(opts, httpclient.WithMetricsCollector(collector))
	}

	return &Client{
		httpClient: httpclient.NewHTTPClient(opts...),
		model:      model,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// CompletionParams shapes a single system+user completion call.
type CompletionParams struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
}

// Complete sends one chat completion and returns the assistant's
// message content.
func (c *Client) Complete(ctx context.Context, params CompletionParams) (string, error) {
	req := chatCompletionRequest{
		Model:       c.model,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: params.SystemPrompt},
			{Role: "user", Content: params.UserPrompt},
		},
	}

	resp, err := c.httpClient.Post(ctx, "/chat/completions", req)
	if err != nil {
		return "", errors.Wrap(err, "chat completion request failed")
	}

	var decoded chatCompletionResponse
	if err := c.httpClient.ProcessJSONResponse(resp, &decoded); err != nil {
		return "", errors.Wrap(err, "failed to decode chat completion response")
	}
	if len(decoded.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	content := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("chat completion returned empty content")
	}
	return content, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}
