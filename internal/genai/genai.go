// Package genai fronts the language-model providers behind one
// generation surface: request correlation, client-side rate limiting,
// rate-limit retry, and output cleanup live here so callers see plain
// text in and plain text out.
package genai

import "context"

// Request is a single generation request.
type Request struct {
	// System frames the model's role. Optional.
	System string
	// Context is background material the instructions refer to. Optional.
	Context string
	// Prompt carries the instructions.
	Prompt string

	Temperature *float64
	MaxTokens   *int
}

// Result is the cleaned output of one generation.
type Result struct {
	Content string
	// Sources are citation URLs when the provider returns them.
	Sources []string

	PromptTokens     int
	CompletionTokens int
}

// Provider executes one generation against a concrete backend.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (*Result, error)
}
