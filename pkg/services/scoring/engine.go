package scoring

import (
	"context"
	"errors"
	"time"

	"github.com/kothscore/helios/pkg/models/domain"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	// Parallel bounds how many records are evaluated at once. Values below 2
	// evaluate records one after another.
	Parallel int
}

type Engine struct {
	opts Options
	now  func() time.Time
}

func NewEngine(opts Options) *Engine {
	return &Engine{
		opts: opts,
		now:  time.Now,
	}
}

// Score validates the configuration, evaluates each record and returns the
// outcomes of the passing ones in declaration order. An invalid configuration
// is rejected before any condition is evaluated; a failing condition never
// aborts the run.
func (e *Engine) Score(ctx context.Context, cfg *domain.Configuration) (*domain.Report, error) {
	if cfg == nil {
		return nil, errors.New("configuration is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	start := e.now()

	passed := e.evaluate(ctx, cfg.Records)

	report := &domain.Report{
		Title:       cfg.Title,
		Outcomes:    make([]domain.ScoredOutcome, 0, len(cfg.Records)),
		GeneratedAt: e.now(),
	}
	for i, rec := range cfg.Records {
		logger.Debug().
			Str("identifier", rec.Identifier).
			Bool("passed", passed[i]).
			Msg("record evaluated")
		if !passed[i] {
			continue
		}
		report.Add(domain.ScoredOutcome{
			Message:    rec.Message,
			Identifier: rec.Identifier,
			Points:     rec.Points,
		})
	}

	logger.Info().
		Int("records", len(cfg.Records)).
		Int("found", report.Count).
		Int("total", report.Total).
		Dur("elapsed", report.GeneratedAt.Sub(start)).
		Msg("scoring finished")

	return report, nil
}

func (e *Engine) evaluate(ctx context.Context, records []domain.Record) []bool {
	passed := make([]bool, len(records))

	if e.opts.Parallel < 2 {
		for i, rec := range records {
			passed[i] = RecordPasses(ctx, rec)
		}
		return passed
	}

	// Each goroutine owns one slot, so no locking is needed and the
	// declaration order survives.
	var g errgroup.Group
	g.SetLimit(e.opts.Parallel)
	for i, rec := range records {
		g.Go(func() error {
			passed[i] = RecordPasses(ctx, rec)
			return nil
		})
	}
	_ = g.Wait()
	return passed
}
