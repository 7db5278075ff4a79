package jobs

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cvgen/internal/types"
)

// DefaultConcurrency bounds parallel fetches in a batch
const DefaultConcurrency = 4

// BatchOptions tunes AnalyzeBatch
type BatchOptions struct {
	Options
	Concurrency int
}

// Batch is the outcome of analyzing several postings. Results keep the
// order of the input URLs.
type Batch struct {
	ID      string                      `json:"id"`
	Results []*types.JobPostingAnalysis `json:"results"`
	Failed  int                         `json:"failed"`
}

// AllFailed reports whether no posting could be fetched
func (b *Batch) AllFailed() bool {
	return len(b.Results) > 0 && b.Failed == len(b.Results)
}

// AnalyzeBatch analyzes urls with bounded concurrency. A failed posting never
// stops the others; it is recorded in its own result slot.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, urls []string, opts *BatchOptions) *Batch {
	if opts == nil {
		opts = &BatchOptions{}
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	batch := &Batch{
		ID:      uuid.NewString(),
		Results: make([]*types.JobPostingAnalysis, len(urls)),
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, u := range urls {
		g.Go(func() error {
			batch.Results[i] = a.Analyze(ctx, u, &opts.Options)
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range batch.Results {
		if r.Failed() {
			batch.Failed++
		}
	}
	a.logger.Info("job batch complete",
		zap.String("batch_id", batch.ID),
		zap.Int("urls", len(urls)),
		zap.Int("failed", batch.Failed),
	)
	return batch
}
