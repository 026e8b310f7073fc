// Package cerebras is a client for the Cerebras inference API, which
// speaks the OpenAI chat completions protocol.
package cerebras

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rotisserie/eris"
)

const (
	defaultBaseURL = "https://api.cerebras.ai/v1"
	defaultModel   = "llama-3.3-70b"
)

// Client performs chat completions against the Cerebras API.
type Client interface {
	ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error)
}

// Message represents a single message in the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest mirrors the subset of the OpenAI request shape
// the research pipeline uses.
type ChatCompletionRequest struct {
	Model       string
	Messages    []Message
	Temperature *float64
	MaxTokens   *int
}

// ChatCompletionResponse carries the first choice plus token usage.
type ChatCompletionResponse struct {
	ID               string
	Content          string
	PromptTokens     int
	CompletionTokens int
}

// APIError is a non-2xx response. Callers inspect StatusCode to
// classify throttling.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cerebras: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Option configures the client.
type Option func(*apiClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *apiClient) {
		c.baseURL = url
	}
}

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *apiClient) {
		c.model = model
	}
}

type apiClient struct {
	apiKey  string
	baseURL string
	model   string
	openai  *openai.Client
}

// NewClient creates a Cerebras API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &apiClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   defaultModel,
	}
	for _, o := range opts {
		o(c)
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = c.baseURL
	c.openai = openai.NewClientWithConfig(cfg)
	return c
}

func (c *apiClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	oaReq := openai.ChatCompletionRequest{
		Model:    model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(req.Messages)),
	}
	for _, m := range req.Messages {
		oaReq.Messages = append(oaReq.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	if req.Temperature != nil {
		oaReq.Temperature = float32(*req.Temperature)
	}
	if req.MaxTokens != nil {
		oaReq.MaxTokens = *req.MaxTokens
	}

	resp, err := c.openai.CreateChatCompletion(ctx, oaReq)
	if err != nil {
		var oaErr *openai.APIError
		if errors.As(err, &oaErr) {
			return nil, &APIError{StatusCode: oaErr.HTTPStatusCode, Body: oaErr.Message}
		}
		return nil, eris.Wrap(err, "cerebras: chat completion")
	}
	if len(resp.Choices) == 0 {
		return nil, eris.New("cerebras: empty choices in response")
	}

	return &ChatCompletionResponse{
		ID:               resp.ID,
		Content:          resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}
