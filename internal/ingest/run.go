package ingest

import (
	"context"
	"fmt"

	"placegraph-backend/internal/domain"
	"placegraph-backend/internal/platform/logger"
	"placegraph-backend/internal/takeout"
)

// Store is the slice of the graph layer the pipeline needs. Injected so
// tests run against an in-memory fake instead of a live database.
type Store interface {
	EnsureSchema(ctx context.Context) error
	WriteBatch(ctx context.Context, batch []domain.Place) error
	Reset(ctx context.Context) error
}

// Runner sequences one full ingestion: load, normalize, then batched writes
// behind the uniqueness constraints. Batches commit strictly in input order;
// a failed batch stops the run and leaves earlier batches in place, which a
// re-run safely overwrites.
type Runner struct {
	Store     Store
	Log       *logger.Logger
	InputFile string
	BatchSize int
	Reset     bool
}

// Summary aggregates one run. Rejected counts are keyed by reason; rejected
// records are never reported individually.
type Summary struct {
	Total    int
	Accepted int
	Rejected map[string]int
	Batches  int
}

func (r *Runner) Run(ctx context.Context) (Summary, error) {
	sum := Summary{Rejected: map[string]int{}}

	doc, err := takeout.LoadDocument(r.InputFile)
	if err != nil {
		return sum, fmt.Errorf("load: %w", err)
	}
	sum.Total = len(doc.Features)

	places := make([]domain.Place, 0, len(doc.Features))
	for _, f := range doc.Features {
		p, err := takeout.Normalize(f)
		if err != nil {
			sum.Rejected[err.Error()]++
			continue
		}
		places = append(places, p)
	}
	sum.Accepted = len(places)
	r.Log.Info("normalized saved places",
		"file", r.InputFile,
		"total", sum.Total,
		"accepted", sum.Accepted,
		"rejected", sum.Total-sum.Accepted,
	)

	if r.Reset {
		if err := r.Store.Reset(ctx); err != nil {
			return sum, fmt.Errorf("reset: %w", err)
		}
		r.Log.Info("cleared existing place graph")
	}

	if len(places) == 0 {
		r.Log.Info("no importable places; nothing to do")
		return sum, nil
	}

	if err := r.Store.EnsureSchema(ctx); err != nil {
		return sum, fmt.Errorf("ensure schema: %w", err)
	}

	batches := takeout.Chunk(places, r.BatchSize)
	for i, batch := range batches {
		if err := r.Store.WriteBatch(ctx, batch); err != nil {
			return sum, fmt.Errorf("write batch %d/%d: %w", i+1, len(batches), err)
		}
		sum.Batches++
		r.Log.Info("imported batch", "batch", i+1, "batches", len(batches), "size", len(batch))
	}
	return sum, nil
}
