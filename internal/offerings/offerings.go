// Package offerings loads the product catalog that research prompts
// and fit analysis are framed around. The catalog is opaque to the
// pipeline; it only ever renders into prompt text.
package offerings

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Offering is one sellable product or service line.
type Offering struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	IdealFor    []string `yaml:"ideal_for,omitempty"`
	PriceRange  string   `yaml:"price_range,omitempty"`
}

// Catalog is the full set of offerings.
type Catalog struct {
	Company   string     `yaml:"company"`
	Offerings []Offering `yaml:"offerings"`
}

// Load reads a catalog from a yaml file. An empty path returns the
// built-in default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "offerings: read %s", path)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, eris.Wrapf(err, "offerings: parse %s", path)
	}
	if len(c.Offerings) == 0 {
		return nil, eris.Errorf("offerings: %s contains no offerings", path)
	}
	return &c, nil
}

// Default returns the catalog used when no file is configured.
func Default() *Catalog {
	return &Catalog{
		Company: "Sells Group",
		Offerings: []Offering{
			{
				Name:        "AI Readiness Assessment",
				Description: "Audit of data infrastructure, team skills, and candidate use cases with a prioritized adoption roadmap.",
				IdealFor:    []string{"companies early in AI adoption", "leadership seeking an AI strategy"},
			},
			{
				Name:        "ML Platform Buildout",
				Description: "Design and implementation of training and inference infrastructure, from data pipelines to model serving.",
				IdealFor:    []string{"teams productionizing models", "companies outgrowing notebook workflows"},
			},
			{
				Name:        "LLM Integration Services",
				Description: "Production integration of large language models: retrieval pipelines, evaluation harnesses, and cost controls.",
				IdealFor:    []string{"product teams shipping AI features", "companies with domain-specific corpora"},
			},
			{
				Name:        "AI Team Staffing",
				Description: "Embedded ML engineers and data scientists to accelerate delivery alongside the client's team.",
				IdealFor:    []string{"companies hiring ahead of AI roadmaps", "teams with a delivery gap"},
			},
		},
	}
}

// PromptBlock renders the catalog as plain text for inclusion in
// generation prompts.
func (c *Catalog) PromptBlock() string {
	var b strings.Builder
	if c.Company != "" {
		b.WriteString(c.Company)
		b.WriteString(" offerings:\n")
	}
	for i, o := range c.Offerings {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(o.Name)
		b.WriteString(": ")
		b.WriteString(o.Description)
		if len(o.IdealFor) > 0 {
			b.WriteString(" Ideal for: ")
			b.WriteString(strings.Join(o.IdealFor, "; "))
			b.WriteString(".")
		}
	}
	return b.String()
}

// Names lists offering names, used to constrain recommendations.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Offerings))
	for _, o := range c.Offerings {
		names = append(names, o.Name)
	}
	return names
}
