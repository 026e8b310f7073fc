package genai

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/prospect-cli/internal/resilience"
)

// thinkPattern matches reasoning traces some models emit before the
// answer. Everything inside the tags is discarded.
var thinkPattern = regexp.MustCompile(`(?s)<think>.*?</think>`)

// Service wraps a Provider with request correlation, client-side rate
// limiting, and rate-limit retry. One Service per provider role.
type Service struct {
	provider Provider
	limiter  *rate.Limiter
	retry    resilience.RetryConfig
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithRateLimit caps outbound request rate. Zero or negative rps
// disables the limiter.
func WithRateLimit(rps float64, burst int) ServiceOption {
	return func(s *Service) {
		if rps > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithRetryConfig overrides the default retry policy.
func WithRetryConfig(cfg resilience.RetryConfig) ServiceOption {
	return func(s *Service) {
		s.retry = cfg
	}
}

// NewService creates a Service over the given provider.
func NewService(provider Provider, opts ...ServiceOption) *Service {
	s := &Service{
		provider: provider,
		retry:    resilience.DefaultRetryConfig(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.retry.OnRetry == nil {
		s.retry.OnRetry = resilience.RetryLogger(provider.Name(), "generate")
	}
	return s
}

// Generate runs one correlated generation. The prompt sent upstream is
// prefixed with a fresh request ID; inline reasoning traces are
// stripped from the output and the result is trimmed.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, eris.New("genai: empty prompt")
	}

	requestID := uuid.NewString()[:8]
	req.Prompt = correlate(requestID, req.Context, req.Prompt)
	req.Context = ""

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "genai: rate limiter wait")
		}
	}

	zap.L().Debug("generation request",
		zap.String("provider", s.provider.Name()),
		zap.String("request_id", requestID),
		zap.Int("prompt_chars", len(req.Prompt)),
	)

	res, err := resilience.DoVal(ctx, s.retry, func(ctx context.Context) (*Result, error) {
		return s.provider.Complete(ctx, req)
	})
	if err != nil {
		return nil, eris.Wrapf(err, "genai: generate via %s", s.provider.Name())
	}

	res.Content = CleanOutput(res.Content)

	zap.L().Debug("generation response",
		zap.String("provider", s.provider.Name()),
		zap.String("request_id", requestID),
		zap.Int("content_chars", len(res.Content)),
		zap.Int("completion_tokens", res.CompletionTokens),
	)
	return res, nil
}

// correlate builds the upstream prompt: a fresh request ID so provider
// logs can be tied back to ours, the caller's background material, and
// the instructions in clearly fenced sections.
func correlate(requestID, contextBlock, instructions string) string {
	var b strings.Builder
	b.WriteString("Request ID: ")
	b.WriteString(requestID)
	b.WriteString("\n\n")
	if strings.TrimSpace(contextBlock) != "" {
		b.WriteString("===== CONTEXT =====\n")
		b.WriteString(contextBlock)
		b.WriteString("\n\n")
	}
	b.WriteString("===== INSTRUCTIONS =====\n")
	b.WriteString(instructions)
	return b.String()
}

// CleanOutput removes inline reasoning traces and surrounding
// whitespace from model output.
func CleanOutput(content string) string {
	return strings.TrimSpace(thinkPattern.ReplaceAllString(content, ""))
}
