// Package textgo provides the posting-list algebra behind full-text search
// with entity bindings.
//
// Textgo operates on columnar posting lists: context ids sorted ascending,
// per-term word id columns, and optional entity and score columns. The
// algebra narrows candidate words by range, intersects posting lists over
// shared contexts (two-way and k-way, with or without cross-product
// expansion of co-occurrences), and aggregates scores per entity or entity
// tuple while keeping the k best contexts each.
//
// # Quick Start
//
//	engine := textgo.New()
//
//	// Narrow a prefix's posting block to one word range.
//	wep := engine.FilterByRange(ctx, lo, hi, block)
//
//	// Join two terms over shared contexts.
//	joined := engine.CrossIntersect(ctx, wep, other)
//
//	// Keep the 3 best contexts per entity.
//	out := table.New(3 + len(joined.Words))
//	engine.TopKContexts(ctx, joined, 3, out)
//
// # Layers
//
// The packages under the root are usable without the Engine facade:
//
//   - postings — the columnar container plus range filtering and all
//     intersection variants.
//   - aggregate — per-entity and per-tuple top-k score aggregation,
//     filtered variants, and cross-product row appenders.
//   - table — the variable-width id table the aggregators emit into.
//   - filters — entity sets and entity-to-rows maps used to restrict
//     aggregation to a subresult.
//
// The Engine adds structured logging, metrics collection, and a parallel
// prefilter stage on top of the pure algorithms.
package textgo
