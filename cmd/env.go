package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-cli/internal/discovery"
	"github.com/sells-group/prospect-cli/internal/genai"
	"github.com/sells-group/prospect-cli/internal/offerings"
	"github.com/sells-group/prospect-cli/internal/outreach"
	"github.com/sells-group/prospect-cli/internal/pipeline"
	"github.com/sells-group/prospect-cli/internal/prospect"
	"github.com/sells-group/prospect-cli/internal/report"
	anthropicpkg "github.com/sells-group/prospect-cli/pkg/anthropic"
	"github.com/sells-group/prospect-cli/pkg/cerebras"
	"github.com/sells-group/prospect-cli/pkg/perplexity"
)

// env bundles everything a research command needs: the store, the
// generation services, and the feature layers built on them.
type env struct {
	Store    prospect.Store
	Catalog  *offerings.Catalog
	Pipeline *pipeline.Pipeline
	Finder   *discovery.Finder
	Reports  *report.Service
	Drafter  *outreach.Drafter
}

func (e *env) Close() {
	_ = e.Store.Close()
}

func initStore(ctx context.Context) (prospect.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return prospect.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return prospect.NewSQLite(cfg.Store.SQLitePath)
	}
}

// initEnv validates config, opens the store, and wires the generation
// services. Research phases go through Perplexity; structuring,
// reports, and outreach go through the configured structurer.
func initEnv(ctx context.Context) (*env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := initStore(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "init store")
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	catalog, err := offerings.Load(cfg.Offerings.Path)
	if err != nil {
		_ = store.Close()
		return nil, eris.Wrap(err, "load offerings")
	}

	research := genai.NewService(
		&genai.PerplexityProvider{
			Client: perplexity.NewClient(cfg.Perplexity.Key,
				perplexity.WithBaseURL(cfg.Perplexity.BaseURL),
				perplexity.WithModel(cfg.Perplexity.Model),
			),
			Model: cfg.Perplexity.Model,
		},
		genai.WithRateLimit(cfg.Perplexity.RatePerSecond, 1),
	)

	structure := genai.NewService(
		structurerProvider(),
		genai.WithRateLimit(cfg.Cerebras.RatePerSecond, 1),
	)

	e := &env{
		Store:   store,
		Catalog: catalog,
		Pipeline: pipeline.New(research, structure, store, catalog,
			pipeline.WithMaxConcurrency(cfg.Batch.MaxConcurrent),
		),
		Finder:  discovery.New(research, catalog),
		Drafter: outreach.New(structure, catalog),
		Reports: report.NewService(structure, store, catalog,
			report.WithCacheTTL(time.Duration(cfg.Report.CacheTTLMinutes)*time.Minute),
		),
	}
	return e, nil
}

func structurerProvider() genai.Provider {
	if cfg.Pipeline.Structurer == "anthropic" {
		return &genai.AnthropicProvider{
			Client:      anthropicpkg.NewClient(cfg.Anthropic.Key),
			Model:       cfg.Anthropic.Model,
			MaxTokens:   int64(cfg.Pipeline.MaxOutputTokens),
			Phase:       "structure",
			CacheSystem: true,
		}
	}
	return &genai.CerebrasProvider{
		Client: cerebras.NewClient(cfg.Cerebras.Key,
			cerebras.WithBaseURL(cfg.Cerebras.BaseURL),
			cerebras.WithModel(cfg.Cerebras.Model),
		),
		Model: cfg.Cerebras.Model,
	}
}
