// Package pipeline orchestrates company research: ordered generation
// stages, response sanitization, structuring, entity resolution, and
// persistence, plus the bounded-concurrency batch scheduler on top.
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/genai"
	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/offerings"
	"github.com/sells-group/prospect-cli/internal/prospect"
)

// Generator produces text for a prompt. Satisfied by *genai.Service.
type Generator interface {
	Generate(ctx context.Context, req genai.Request) (*genai.Result, error)
}

// Pipeline runs the research state machine for one target at a time.
// The research generator handles the web-grounded text stages; the
// structure generator turns accumulated text into schema JSON.
type Pipeline struct {
	research  Generator
	structure Generator
	persist   *Persister
	catalog   *offerings.Catalog

	targetRoles    []string
	maxConcurrency int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTargetRoles overrides the leadership roles contact research
// looks for.
func WithTargetRoles(roles []string) Option {
	return func(p *Pipeline) {
		p.targetRoles = roles
	}
}

// WithMaxConcurrency caps how many targets a batch researches at once.
func WithMaxConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxConcurrency = n
		}
	}
}

func New(research, structure Generator, store prospect.Store, catalog *offerings.Catalog, opts ...Option) *Pipeline {
	p := &Pipeline{
		research:       research,
		structure:      structure,
		persist:        NewPersister(store),
		catalog:        catalog,
		maxConcurrency: DefaultMaxConcurrency,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes every phase for one target. Text and structuring
// phases degrade on failure and the pipeline continues; only an
// organization persist failure ends the run early, since nothing
// downstream can be saved without a company record. The returned
// outcome carries per-phase results either way.
func (p *Pipeline) Run(ctx context.Context, name string) model.Outcome {
	log := zap.L().With(zap.String("company", name))
	outcome := model.Outcome{Name: name}

	track := func(phase string, fn func() error) error {
		start := time.Now()
		err := fn()
		duration := time.Since(start).Milliseconds()

		pr := model.PhaseResult{Name: phase, Status: model.PhaseStatusComplete, Duration: duration}
		if err != nil {
			pr.Status = model.PhaseStatusFailed
			pr.Error = err.Error()
			log.Warn("pipeline: phase failed",
				zap.String("phase", phase),
				zap.Int64("duration_ms", duration),
				zap.Error(err),
			)
		} else {
			log.Info("pipeline: phase complete",
				zap.String("phase", phase),
				zap.Int64("duration_ms", duration),
			)
		}
		outcome.Phases = append(outcome.Phases, pr)
		return err
	}

	// A failed text stage contributes an empty section.
	textStage := func(phase string, req genai.Request) string {
		var text string
		_ = track(phase, func() error {
			res, err := p.research.Generate(ctx, req)
			if err != nil {
				return err
			}
			text = res.Content
			return nil
		})
		return text
	}

	broad := textStage(model.PhaseBroadResearch, broadResearchRequest(name, p.catalog))
	contactText := textStage(model.PhaseContactResearch, contactResearchRequest(name, p.targetRoles))
	competitors := textStage(model.PhaseCompetitiveAnalysis, competitorAnalysisRequest(name, p.catalog))
	news := textStage(model.PhaseRecentActivity, recentNewsRequest(name))

	combined := combineResearch(broad, competitors, news)

	parsed := &model.CompanyResearch{BasicInfo: model.CompanyBasicInfo{Name: name}}
	_ = track(model.PhaseStructureOrg, func() error {
		res, err := p.structure.Generate(ctx, structureCompanyRequest(name, combined, p.catalog))
		if err != nil {
			parsed.ParseError = err.Error()
			return err
		}
		parsed = ParseCompanyResearch(name, res.Content)
		if parsed.ParseError != "" {
			return eris.New("structured company data did not parse")
		}
		return nil
	})

	var company *prospect.Company
	if err := track(model.PhasePersistOrg, func() error {
		var err error
		company, err = p.persist.SaveCompany(ctx, parsed, name, combined)
		return err
	}); err != nil {
		outcome.Error = err.Error()
		// Contact phases never ran; record them so the outcome still
		// carries one result per phase.
		outcome.Phases = append(outcome.Phases,
			model.PhaseResult{Name: model.PhaseStructureContacts, Status: model.PhaseStatusSkipped},
			model.PhaseResult{Name: model.PhasePersistContacts, Status: model.PhaseStatusSkipped},
		)
		return outcome
	}

	outcome.CompanyID = company.ID
	outcome.FitScore = company.FitScore
	outcome.RecommendedProduct = company.RecommendedProduct
	outcome.Priority = company.Priority
	outcome.QualityScore = company.QualityScore
	outcome.Readiness = company.Readiness()

	var contacts []model.ContactResearch
	_ = track(model.PhaseStructureContacts, func() error {
		res, err := p.structure.Generate(ctx, structureContactsRequest(name, contactText))
		if err != nil {
			return err
		}
		contacts = ParseContactResearch(name, res.Content)
		return nil
	})

	_ = track(model.PhasePersistContacts, func() error {
		outcome.ContactsSaved = p.persist.SaveContacts(ctx, company, contacts)
		return nil
	})

	log.Info("pipeline: research complete",
		zap.Int64("company_id", outcome.CompanyID),
		zap.Int("contacts_saved", outcome.ContactsSaved),
	)
	return outcome
}
