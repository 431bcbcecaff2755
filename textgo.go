package textgo

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/textgo/aggregate"
	"github.com/hupe1980/textgo/core"
	"github.com/hupe1980/textgo/filters"
	"github.com/hupe1980/textgo/postings"
	"github.com/hupe1980/textgo/table"
)

// Engine exposes the posting-list algebra with structured logging and
// metrics collection. The underlying packages are pure; the Engine only adds
// observability and the parallel prefilter stage, so a zero-cost path is
// always available by calling the packages directly.
type Engine struct {
	logger      *Logger
	metrics     MetricsCollector
	parallelism int
}

// New creates an Engine. Without options it logs nothing and collects no
// metrics.
func New(optFns ...Option) *Engine {
	o := applyOptions(optFns)
	return &Engine{
		logger:      o.logger,
		metrics:     o.metricsCollector,
		parallelism: o.parallelism,
	}
}

// FilterByRange returns the postings whose word id lies in [lo, hi].
func (e *Engine) FilterByRange(ctx context.Context, lo, hi core.WordID, pre postings.Postings) postings.Postings {
	start := time.Now()
	out := postings.FilterByRange(lo, hi, pre)
	e.metrics.RecordFilter(pre.Len(), out.Len(), time.Since(start))
	e.logger.LogFilter(ctx, pre.Len(), out.Len())
	return out
}

// FilterAllByRange applies FilterByRange to every block concurrently and
// returns the filtered blocks in input order. The number of goroutines is
// bounded by the engine's parallelism option. It returns early when ctx is
// cancelled.
func (e *Engine) FilterAllByRange(ctx context.Context, lo, hi core.WordID, blocks []postings.Postings) ([]postings.Postings, error) {
	start := time.Now()
	out := make([]postings.Postings, len(blocks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for i, block := range blocks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = postings.FilterByRange(lo, hi, block)
			return nil
		})
	}
	err := g.Wait()
	e.logger.LogParallelFilter(ctx, len(blocks), err)
	if err != nil {
		return nil, err
	}

	in, kept := 0, 0
	for i := range blocks {
		in += blocks[i].Len()
		kept += out[i].Len()
	}
	e.metrics.RecordFilter(in, kept, time.Since(start))
	return out, nil
}

// Intersect restricts a posting block to the given sorted context list.
func (e *Engine) Intersect(ctx context.Context, contexts []core.ContextID, block postings.Postings) postings.Postings {
	start := time.Now()
	out := postings.Intersect(contexts, block)
	e.metrics.RecordIntersect(2, out.Len(), time.Since(start))
	e.logger.LogIntersect(ctx, "intersect", 2, out.Len())
	return out
}

// IntersectTwoPostingLists pairs two posting lists positionally on shared
// contexts, summing scores.
func (e *Engine) IntersectTwoPostingLists(ctx context.Context, a, b postings.Postings) postings.Postings {
	start := time.Now()
	out := postings.IntersectTwoPostingLists(a, b)
	e.metrics.RecordIntersect(2, out.Len(), time.Since(start))
	e.logger.LogIntersect(ctx, "two-lists", 2, out.Len())
	return out
}

// CrossIntersect joins two posting lists on shared contexts with full
// cross-product expansion of co-occurring postings.
func (e *Engine) CrossIntersect(ctx context.Context, a, b postings.Postings) postings.Postings {
	start := time.Now()
	out := postings.CrossIntersect(a, b)
	e.metrics.RecordIntersect(2, out.Len(), time.Since(start))
	e.logger.LogIntersect(ctx, "cross", 2, out.Len())
	return out
}

// IntersectKWay intersects k posting lists on shared contexts. A non-nil
// entities column belongs to the last list and is expanded per match.
func (e *Engine) IntersectKWay(ctx context.Context, lists []postings.Postings, entities []core.EntityID) postings.Postings {
	start := time.Now()
	out := postings.IntersectKWay(lists, entities)
	e.metrics.RecordIntersect(len(lists), out.Len(), time.Since(start))
	e.logger.LogIntersect(ctx, "k-way", len(lists), out.Len())
	return out
}

// CrossIntersectKWay intersects k posting lists with cross-product expansion
// of each matched context's postings, keeping one word column per list.
func (e *Engine) CrossIntersectKWay(ctx context.Context, lists []postings.Postings, entities []core.EntityID) postings.Postings {
	start := time.Now()
	out := postings.CrossIntersectKWay(lists, entities)
	e.metrics.RecordIntersect(len(lists), out.Len(), time.Since(start))
	e.logger.LogIntersect(ctx, "cross-k-way", len(lists), out.Len())
	return out
}

// TopKContexts aggregates scores per entity, keeping the k best contexts.
func (e *Engine) TopKContexts(ctx context.Context, wep postings.Postings, k int, out *table.Table) {
	start := time.Now()
	before := out.Len()
	aggregate.TopKContexts(wep, k, out)
	e.metrics.RecordAggregate(wep.Len(), out.Len()-before, time.Since(start))
	e.logger.LogAggregate(ctx, "top-k", wep.Len(), k, out.Len()-before)
}

// TopKByScore selects the k highest-scoring context ids.
func (e *Engine) TopKByScore(ctx context.Context, cids []core.ContextID, scores []core.Score, k int, out *table.Table) {
	start := time.Now()
	before := out.Len()
	aggregate.TopKByScore(cids, scores, k, out)
	e.metrics.RecordAggregate(len(cids), out.Len()-before, time.Since(start))
	e.logger.LogAggregate(ctx, "top-k-by-score", len(cids), k, out.Len()-before)
}

// AggregateRows compacts a materialized row table, keeping at most k rows
// per group and rewriting the count column.
func (e *Engine) AggregateRows(ctx context.Context, in *table.Table, k int, out *table.Table) {
	start := time.Now()
	aggregate.AggregateRows(in, k, out)
	e.metrics.RecordAggregate(in.Len(), out.Len(), time.Since(start))
	e.logger.LogAggregate(ctx, "rows", in.Len(), k, out.Len())
}

// MultiVarTopKContexts aggregates scores per entity tuple over nofVars
// variable positions, keeping the k best contexts per tuple.
func (e *Engine) MultiVarTopKContexts(ctx context.Context, wep postings.Postings, nofVars, k int, out *table.Table) {
	start := time.Now()
	before := out.Len()
	aggregate.MultiVarTopKContexts(wep, nofVars, k, out)
	e.metrics.RecordAggregate(wep.Len(), out.Len()-before, time.Since(start))
	e.logger.LogAggregate(ctx, "multi-var", wep.Len(), k, out.Len()-before)
}

// FilterTopKContexts is TopKContexts restricted to entities in the set.
func (e *Engine) FilterTopKContexts(ctx context.Context, wep postings.Postings, set *filters.EntitySet, k int, out *table.Table) {
	start := time.Now()
	before := out.Len()
	aggregate.FilterTopKContexts(wep, set, k, out)
	e.metrics.RecordAggregate(wep.Len(), out.Len()-before, time.Since(start))
	e.logger.LogAggregate(ctx, "filter-top-k", wep.Len(), k, out.Len()-before)
}

// FilterRowsTopKContexts is TopKContexts restricted to entities in the row
// map, cross-joined with their filter rows.
func (e *Engine) FilterRowsTopKContexts(ctx context.Context, wep postings.Postings, rows *filters.RowMap, k int, out *table.Table) {
	start := time.Now()
	before := out.Len()
	aggregate.FilterRowsTopKContexts(wep, rows, k, out)
	e.metrics.RecordAggregate(wep.Len(), out.Len()-before, time.Since(start))
	e.logger.LogAggregate(ctx, "filter-rows-top-k", wep.Len(), k, out.Len()-before)
}

// MultiVarFilterTopKContexts is MultiVarTopKContexts with the first tuple
// position restricted to the row map, cross-joined with its filter rows.
func (e *Engine) MultiVarFilterTopKContexts(ctx context.Context, wep postings.Postings, rows *filters.RowMap, nofVars, k int, out *table.Table) {
	start := time.Now()
	before := out.Len()
	aggregate.MultiVarFilterTopKContexts(wep, rows, nofVars, k, out)
	e.metrics.RecordAggregate(wep.Len(), out.Len()-before, time.Since(start))
	e.logger.LogAggregate(ctx, "multi-var-filter", wep.Len(), k, out.Len()-before)
}

// MultiVarFilterSetTopKContexts is the set-filtered form of
// MultiVarFilterTopKContexts.
func (e *Engine) MultiVarFilterSetTopKContexts(ctx context.Context, wep postings.Postings, set *filters.EntitySet, nofVars, k int, out *table.Table) {
	start := time.Now()
	before := out.Len()
	aggregate.MultiVarFilterSetTopKContexts(wep, set, nofVars, k, out)
	e.metrics.RecordAggregate(wep.Len(), out.Len()-before, time.Since(start))
	e.logger.LogAggregate(ctx, "multi-var-filter-set", wep.Len(), k, out.Len()-before)
}

// AppendCrossProduct appends the window's cross product with two entity
// subresults.
func (e *Engine) AppendCrossProduct(ctx context.Context, wep postings.Postings, from, to int, set1, set2 *filters.EntitySet, out *table.Table) {
	start := time.Now()
	before := out.Len()
	aggregate.AppendCrossProduct(wep, from, to, set1, set2, out)
	e.metrics.RecordCrossProduct(to-from, out.Len()-before, time.Since(start))
	e.logger.LogCrossProduct(ctx, to-from, out.Len()-before)
}

// AppendCrossProductRows appends the window's cross product with any number
// of row-valued subresults.
func (e *Engine) AppendCrossProductRows(ctx context.Context, wep postings.Postings, from, to int, maps []*filters.RowMap, out *table.Table) {
	start := time.Now()
	before := out.Len()
	aggregate.AppendCrossProductRows(wep, from, to, maps, out)
	e.metrics.RecordCrossProduct(to-from, out.Len()-before, time.Since(start))
	e.logger.LogCrossProduct(ctx, to-from, out.Len()-before)
}
