// Package discovery turns the offerings catalog into a list of
// companies worth researching.
package discovery

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/genai"
	"github.com/sells-group/prospect-cli/internal/offerings"
)

// Generator produces text for a prompt. Satisfied by *genai.Service.
type Generator interface {
	Generate(ctx context.Context, req genai.Request) (*genai.Result, error)
}

// fallbackCustomers is returned when generation fails outright, so a
// discover call always yields something to research.
var fallbackCustomers = []string{
	"OpenAI", "Anthropic", "Cohere", "Stability AI", "Hugging Face",
	"NVIDIA", "Microsoft", "Google", "Amazon", "Meta",
	"Tesla", "Uber", "Airbnb", "Netflix", "Spotify",
	"Goldman Sachs", "JPMorgan Chase", "Morgan Stanley", "BlackRock", "Citadel",
	"Mayo Clinic", "Johns Hopkins", "Pfizer", "Moderna", "Illumina",
}

var (
	numberingPrefix = regexp.MustCompile(`^\d+\.?\s*`)
	bulletPrefix    = regexp.MustCompile(`^[-*•]\s*`)
)

// Finder suggests potential customers for the seller's catalog.
type Finder struct {
	gen     Generator
	catalog *offerings.Catalog
}

func New(gen Generator, catalog *offerings.Catalog) *Finder {
	return &Finder{gen: gen, catalog: catalog}
}

// FindPotentialCustomers returns up to count company names. A
// generation failure falls back to a curated list rather than
// returning nothing.
func (f *Finder) FindPotentialCustomers(ctx context.Context, count int) []string {
	if count <= 0 {
		return nil
	}

	res, err := f.gen.Generate(ctx, f.discoverRequest(count))
	if err != nil {
		zap.L().Warn("discovery: generation failed, using fallback list", zap.Error(err))
		return capNames(fallbackCustomers, count)
	}

	names := ParseNames(res.Content, count)
	if len(names) == 0 {
		zap.L().Warn("discovery: no names parsed, using fallback list")
		return capNames(fallbackCustomers, count)
	}

	zap.L().Info("discovery: found potential customers", zap.Int("count", len(names)))
	return names
}

func (f *Finder) discoverRequest(count int) genai.Request {
	temp := 0.3
	context := fmt.Sprintf(`You are an expert sales analyst for %s. Based on the following product offerings,
identify %d potential customer companies that would be excellent fits for these products.
Exclude direct competitors; suggest companies who would buy these offerings, not build competing ones.

Product Offerings:
%s

Consider companies across different industries and use cases that would benefit from these offerings.

Focus on companies that likely have:
- Significant AI/ML workloads or ambitions
- Budget for enterprise technology solutions
- Technical teams capable of adopting advanced systems`,
		f.catalog.Company, count, f.catalog.PromptBlock())

	prompt := fmt.Sprintf(`Please provide exactly %d company names (one per line) that would be ideal potential customers
for these offerings. Include a mix of:
- Large tech companies
- AI startups
- Financial services firms
- Healthcare/biotech companies
- Research institutions
- E-commerce companies
- Automotive companies

Format: Just the company names, one per line, no numbering or bullets.`, count)

	return genai.Request{Prompt: prompt, Context: context, Temperature: &temp}
}

// ParseNames extracts up to max company names from line-oriented
// generation output, stripping numbering and bullet markers.
func ParseNames(text string, max int) []string {
	var names []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		line = numberingPrefix.ReplaceAllString(line, "")
		line = bulletPrefix.ReplaceAllString(line, "")
		if line == "" {
			continue
		}
		names = append(names, line)
		if len(names) == max {
			break
		}
	}
	return names
}

func capNames(names []string, count int) []string {
	if count < len(names) {
		return names[:count]
	}
	return names
}
