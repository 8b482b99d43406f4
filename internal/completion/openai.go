package completion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultDeepSeekModel = "deepseek-chat"
	DeepSeekBaseURL      = "https://api.deepseek.com/v1"
)

type OpenAIConfig struct {
	Name       string // provider label used in logs and metrics
	APIKey     string
	BaseURL    string // empty for api.openai.com
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client // optional (tests)
}

// OpenAIClient talks to any OpenAI-compatible chat completions API,
// which covers both OpenAI and DeepSeek.
type OpenAIClient struct {
	name   string
	model  string
	client openai.Client
}

func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.Name == "" {
		cfg.Name = "openai"
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	// Retries are owned by the Router.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIClient{
		name:   cfg.Name,
		model:  cfg.Model,
		client: openai.NewClient(opts...),
	}
}

func (c *OpenAIClient) Name() string { return c.name }

func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	req = req.withDefaults()

	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
	}
	if req.SessionID != "" {
		params.User = openai.String(req.SessionID)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", mapOpenAIError(c.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", c.name)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%s returned empty content", c.name)
	}
	return text, nil
}

// mapOpenAIError marks client errors other than rate limiting as not worth
// retrying.
func mapOpenAIError(name string, err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		wrapped := fmt.Errorf("%s error (status %d): %w", name, apiErr.StatusCode, err)
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 && apiErr.StatusCode != http.StatusTooManyRequests {
			return retry.Unrecoverable(wrapped)
		}
		return wrapped
	}
	return fmt.Errorf("failed to call %s: %w", name, err)
}
