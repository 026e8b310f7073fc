package genai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/resilience"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

type fakeProvider struct {
	calls     int
	failFirst int
	failWith  error
	content   string
	sources   []string
	lastReq   Request
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(_ context.Context, req Request) (*Result, error) {
	f.calls++
	f.lastReq = req
	if f.calls <= f.failFirst {
		return nil, f.failWith
	}
	return &Result{Content: f.content, Sources: f.sources}, nil
}

func fastRetry() resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxRetries:  3,
		BaseBackoff: time.Millisecond,
		MaxBackoff:  5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestGenerate_CorrelatesPrompt(t *testing.T) {
	p := &fakeProvider{content: "answer"}
	svc := NewService(p, WithRetryConfig(fastRetry()))

	res, err := svc.Generate(context.Background(), Request{
		Context: "Company: Acme",
		Prompt:  "Research the company.",
	})
	require.NoError(t, err)
	assert.Equal(t, "answer", res.Content)

	sent := p.lastReq.Prompt
	assert.True(t, strings.HasPrefix(sent, "Request ID: "), "prompt starts with a request ID")
	assert.Contains(t, sent, "===== CONTEXT =====\nCompany: Acme")
	assert.Contains(t, sent, "===== INSTRUCTIONS =====\nResearch the company.")
}

func TestGenerate_OmitsEmptyContext(t *testing.T) {
	p := &fakeProvider{content: "answer"}
	svc := NewService(p, WithRetryConfig(fastRetry()))

	_, err := svc.Generate(context.Background(), Request{Prompt: "Go."})
	require.NoError(t, err)
	assert.NotContains(t, p.lastReq.Prompt, "===== CONTEXT =====")
	assert.Contains(t, p.lastReq.Prompt, "===== INSTRUCTIONS =====\nGo.")
}

func TestGenerate_RetriesRateLimits(t *testing.T) {
	p := &fakeProvider{
		failFirst: 3,
		failWith:  resilience.NewRateLimitError(errors.New("429 too many requests"), 429),
		content:   "recovered",
	}
	svc := NewService(p, WithRetryConfig(fastRetry()))

	res, err := svc.Generate(context.Background(), Request{Prompt: "Go."})
	require.NoError(t, err)
	assert.Equal(t, "recovered", res.Content)
	assert.Equal(t, 4, p.calls)
}

func TestGenerate_ExhaustsRetries(t *testing.T) {
	p := &fakeProvider{
		failFirst: 10,
		failWith:  resilience.NewRateLimitError(errors.New("request_quota_exceeded"), 429),
	}
	svc := NewService(p, WithRetryConfig(fastRetry()))

	_, err := svc.Generate(context.Background(), Request{Prompt: "Go."})
	require.Error(t, err)
	assert.True(t, resilience.IsRateLimited(err))
	assert.Equal(t, 4, p.calls, "initial attempt plus three retries")
}

func TestGenerate_DoesNotRetryOtherErrors(t *testing.T) {
	p := &fakeProvider{
		failFirst: 10,
		failWith:  errors.New("invalid api key"),
	}
	svc := NewService(p, WithRetryConfig(fastRetry()))

	_, err := svc.Generate(context.Background(), Request{Prompt: "Go."})
	require.Error(t, err)
	assert.Equal(t, 1, p.calls)
}

func TestGenerate_StripsThinking(t *testing.T) {
	p := &fakeProvider{content: "<think>\nlet me reason about this\n</think>\n  {\"name\": \"Acme\"}  "}
	svc := NewService(p, WithRetryConfig(fastRetry()))

	res, err := svc.Generate(context.Background(), Request{Prompt: "Go."})
	require.NoError(t, err)
	assert.Equal(t, `{"name": "Acme"}`, res.Content)
}

func TestGenerate_EmptyPrompt(t *testing.T) {
	p := &fakeProvider{}
	svc := NewService(p)

	_, err := svc.Generate(context.Background(), Request{Prompt: "   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty prompt")
	assert.Zero(t, p.calls)
}

func TestGenerate_FreshIDPerRequest(t *testing.T) {
	p := &fakeProvider{content: "ok"}
	svc := NewService(p, WithRetryConfig(fastRetry()))

	_, err := svc.Generate(context.Background(), Request{Prompt: "one"})
	require.NoError(t, err)
	first := p.lastReq.Prompt[:len("Request ID: ")+8]

	_, err = svc.Generate(context.Background(), Request{Prompt: "two"})
	require.NoError(t, err)
	second := p.lastReq.Prompt[:len("Request ID: ")+8]

	assert.NotEqual(t, first, second)
}

func TestCleanOutput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no tags", "plain text", "plain text"},
		{"single block", "<think>hmm</think>answer", "answer"},
		{"multiline block", "<think>\nstep 1\nstep 2\n</think>\nanswer", "answer"},
		{"multiple blocks", "<think>a</think>x<think>b</think>y", "xy"},
		{"whitespace trimmed", "  answer  \n", "answer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanOutput(tt.in))
		})
	}
}

func TestGenerate_RateLimiterHonorsContext(t *testing.T) {
	p := &fakeProvider{content: "ok"}
	svc := NewService(p,
		WithRetryConfig(fastRetry()),
		WithRateLimit(0.001, 1),
	)

	// First call consumes the burst.
	_, err := svc.Generate(context.Background(), Request{Prompt: "one"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = svc.Generate(ctx, Request{Prompt: "two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
}
