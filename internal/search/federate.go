package search

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"partsearch/internal/catalog"
	"partsearch/internal/domain"
)

// DefaultParallelism bounds concurrent requests in Federate
const DefaultParallelism = 8

// Federate runs query against every category of the catalog and returns
// one result set per category in catalog order. A failing category comes
// back empty with its error recorded; it never fails the whole call.
func Federate(ctx context.Context, p Provider, cat *catalog.Catalog, query string, hitsPerPage int) []domain.ResultSet {
	sets := make([]domain.ResultSet, cat.Len())
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultParallelism)

	for i, c := range cat.Categories() {
		limit := cat.Limit(c.Name, hitsPerPage)
		g.Go(func() error {
			items, err := p.Search(gctx, c.Name, query, limit)
			if err != nil {
				slog.Warn("category_search_failed",
					slog.String("category", c.Name),
					slog.String("query", query),
					slog.String("error", err.Error()))
				sets[i] = domain.ResultSet{Category: c.Name, Query: query, Err: err}
				return nil
			}
			if limit > 0 && len(items) > limit {
				items = items[:limit]
			}
			sets[i] = domain.ResultSet{Category: c.Name, Query: query, Items: items}
			return nil
		})
	}

	// Workers never return errors
	_ = g.Wait()

	slog.Debug("federate_complete",
		slog.String("query", query),
		slog.Int("categories", len(sets)),
		slog.Duration("duration", time.Since(start)))

	return sets
}
