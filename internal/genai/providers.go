package genai

import (
	"context"
	"errors"
	"net/http"

	"github.com/sells-group/prospect-cli/internal/resilience"
	"github.com/sells-group/prospect-cli/pkg/anthropic"
	"github.com/sells-group/prospect-cli/pkg/cerebras"
	"github.com/sells-group/prospect-cli/pkg/perplexity"
)

// PerplexityProvider runs generations through Perplexity's web-search
// models. It is the research provider: responses carry citations.
type PerplexityProvider struct {
	Client        perplexity.Client
	Model         string
	RecencyFilter string
}

func (p *PerplexityProvider) Name() string { return "perplexity" }

func (p *PerplexityProvider) Complete(ctx context.Context, req Request) (*Result, error) {
	msgs := make([]perplexity.Message, 0, 2)
	if req.System != "" {
		msgs = append(msgs, perplexity.Message{Role: "system", Content: req.System})
	}
	msgs = append(msgs, perplexity.Message{Role: "user", Content: req.Prompt})

	resp, err := p.Client.ChatCompletion(ctx, perplexity.ChatCompletionRequest{
		Model:               p.Model,
		Messages:            msgs,
		Temperature:         req.Temperature,
		MaxTokens:           req.MaxTokens,
		SearchRecencyFilter: p.RecencyFilter,
	})
	if err != nil {
		var apiErr *perplexity.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			return nil, resilience.NewRateLimitError(err, apiErr.StatusCode)
		}
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("perplexity: empty choices in response")
	}

	return &Result{
		Content:          resp.Choices[0].Message.Content,
		Sources:          resp.Citations,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}

// CerebrasProvider runs generations through Cerebras inference. It is
// the default structuring provider.
type CerebrasProvider struct {
	Client cerebras.Client
	Model  string
}

func (p *CerebrasProvider) Name() string { return "cerebras" }

func (p *CerebrasProvider) Complete(ctx context.Context, req Request) (*Result, error) {
	msgs := make([]cerebras.Message, 0, 2)
	if req.System != "" {
		msgs = append(msgs, cerebras.Message{Role: "system", Content: req.System})
	}
	msgs = append(msgs, cerebras.Message{Role: "user", Content: req.Prompt})

	resp, err := p.Client.ChatCompletion(ctx, cerebras.ChatCompletionRequest{
		Model:       p.Model,
		Messages:    msgs,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		var apiErr *cerebras.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			return nil, resilience.NewRateLimitError(err, apiErr.StatusCode)
		}
		return nil, err
	}

	return &Result{
		Content:          resp.Content,
		PromptTokens:     resp.PromptTokens,
		CompletionTokens: resp.CompletionTokens,
	}, nil
}

// AnthropicProvider runs generations through the Anthropic API. It is
// the alternative structuring provider and the drafting provider for
// reports and outreach.
type AnthropicProvider struct {
	Client    anthropic.Client
	Model     string
	MaxTokens int64
	// Phase labels cost-attribution log lines.
	Phase string
	// CacheSystem caches the system block across calls when set.
	CacheSystem bool
}

func (p *AnthropicProvider) Name() string { return "anthropic" }

func (p *AnthropicProvider) Complete(ctx context.Context, req Request) (*Result, error) {
	maxTokens := p.MaxTokens
	if req.MaxTokens != nil {
		maxTokens = int64(*req.MaxTokens)
	}

	msgReq := anthropic.MessageRequest{
		Model:       p.Model,
		MaxTokens:   maxTokens,
		Messages:    []anthropic.Message{{Role: "user", Content: req.Prompt}},
		Temperature: req.Temperature,
	}
	if req.System != "" {
		if p.CacheSystem {
			msgReq.System = anthropic.BuildCachedSystemBlocks(req.System)
		} else {
			msgReq.System = []anthropic.SystemBlock{{Text: req.System}}
		}
	}

	resp, err := p.Client.CreateMessage(ctx, msgReq)
	if err != nil {
		var apiErr *anthropic.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			return nil, resilience.NewRateLimitError(err, apiErr.StatusCode)
		}
		return nil, err
	}

	if p.Phase != "" {
		resp.Usage.LogCost(p.Model, p.Phase)
	}

	return &Result{
		Content:          resp.Text(),
		PromptTokens:     int(resp.Usage.InputTokens),
		CompletionTokens: int(resp.Usage.OutputTokens),
	}, nil
}
