package pipeline

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/prospect-cli/internal/model"
)

// DefaultMaxConcurrency caps simultaneous pipeline runs in a batch.
const DefaultMaxConcurrency = 5

// RunBatch researches every target concurrently, at most
// min(len(names), maxConcurrency) at a time. Every input name yields
// exactly one outcome; a run that fails or panics is converted into a
// placeholder outcome and never disturbs its siblings. Outcome order
// is completion order, not input order.
func (p *Pipeline) RunBatch(ctx context.Context, names []string) []model.Outcome {
	if len(names) == 0 {
		return nil
	}

	limit := p.maxConcurrency
	if limit > len(names) {
		limit = len(names)
	}

	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	g.SetLimit(limit)
	out := make([]model.Outcome, 0, len(names))

	for _, name := range names {
		g.Go(func() error {
			outcome := p.runIsolated(ctx, name)
			mu.Lock()
			out = append(out, outcome)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// runIsolated shields the batch from a single run's failure: a panic
// or a run error becomes a minimal placeholder record.
func (p *Pipeline) runIsolated(ctx context.Context, name string) (outcome model.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("pipeline: run panicked",
				zap.String("company", name),
				zap.Any("panic", r),
			)
			outcome = model.Outcome{Name: name, Error: fmt.Sprintf("research panicked: %v", r)}
			p.recordPlaceholder(ctx, &outcome)
		}
	}()

	outcome = p.Run(ctx, name)
	if outcome.Failed() {
		p.recordPlaceholder(ctx, &outcome)
	}
	return outcome
}

// recordPlaceholder persists a bare company for a failed target so the
// batch result still points at a stored record. Best effort.
func (p *Pipeline) recordPlaceholder(ctx context.Context, outcome *model.Outcome) {
	company, err := p.persist.SavePlaceholder(ctx, outcome.Name, "research failed: "+outcome.Error)
	if err != nil {
		zap.L().Warn("pipeline: failed to record placeholder",
			zap.String("company", outcome.Name),
			zap.Error(err),
		)
		return
	}
	outcome.CompanyID = company.ID
	outcome.QualityScore = company.QualityScore
	outcome.Priority = company.Priority
}
