package textgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    filterCounter      prometheus.Counter
//	    intersectHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordFilter(in, out int, duration time.Duration) {
//	    p.filterCounter.Inc()
//	    // ... record selectivity, duration, etc.
//	}
type MetricsCollector interface {
	// RecordFilter is called after each range filter.
	// in and out are the posting counts before and after filtering.
	RecordFilter(in, out int, duration time.Duration)

	// RecordIntersect is called after each intersection.
	// lists is the number of input lists, out the result posting count.
	RecordIntersect(lists, out int, duration time.Duration)

	// RecordAggregate is called after each score aggregation.
	// in is the input posting count, rows the emitted row count.
	RecordAggregate(in, rows int, duration time.Duration)

	// RecordCrossProduct is called after each cross-product append.
	// window is the posting window size, rows the appended row count.
	RecordCrossProduct(window, rows int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFilter(int, int, time.Duration)       {}
func (NoopMetricsCollector) RecordIntersect(int, int, time.Duration)    {}
func (NoopMetricsCollector) RecordAggregate(int, int, time.Duration)    {}
func (NoopMetricsCollector) RecordCrossProduct(int, int, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FilterCount         atomic.Int64
	FilterIn            atomic.Int64
	FilterOut           atomic.Int64
	FilterTotalNanos    atomic.Int64
	IntersectCount      atomic.Int64
	IntersectOut        atomic.Int64
	IntersectTotalNanos atomic.Int64
	AggregateCount      atomic.Int64
	AggregateRows       atomic.Int64
	AggregateTotalNanos atomic.Int64
	CrossProductCount   atomic.Int64
	CrossProductRows    atomic.Int64
}

// RecordFilter implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFilter(in, out int, duration time.Duration) {
	b.FilterCount.Add(1)
	b.FilterIn.Add(int64(in))
	b.FilterOut.Add(int64(out))
	b.FilterTotalNanos.Add(duration.Nanoseconds())
}

// RecordIntersect implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIntersect(lists, out int, duration time.Duration) {
	b.IntersectCount.Add(1)
	b.IntersectOut.Add(int64(out))
	b.IntersectTotalNanos.Add(duration.Nanoseconds())
}

// RecordAggregate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAggregate(in, rows int, duration time.Duration) {
	b.AggregateCount.Add(1)
	b.AggregateRows.Add(int64(rows))
	b.AggregateTotalNanos.Add(duration.Nanoseconds())
}

// RecordCrossProduct implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCrossProduct(window, rows int, duration time.Duration) {
	b.CrossProductCount.Add(1)
	b.CrossProductRows.Add(int64(rows))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		FilterCount:       b.FilterCount.Load(),
		FilterIn:          b.FilterIn.Load(),
		FilterOut:         b.FilterOut.Load(),
		FilterAvgNanos:    avgNanos(b.FilterTotalNanos.Load(), b.FilterCount.Load()),
		IntersectCount:    b.IntersectCount.Load(),
		IntersectOut:      b.IntersectOut.Load(),
		IntersectAvgNanos: avgNanos(b.IntersectTotalNanos.Load(), b.IntersectCount.Load()),
		AggregateCount:    b.AggregateCount.Load(),
		AggregateRows:     b.AggregateRows.Load(),
		AggregateAvgNanos: avgNanos(b.AggregateTotalNanos.Load(), b.AggregateCount.Load()),
		CrossProductCount: b.CrossProductCount.Load(),
		CrossProductRows:  b.CrossProductRows.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	FilterCount       int64
	FilterIn          int64
	FilterOut         int64
	FilterAvgNanos    int64
	IntersectCount    int64
	IntersectOut      int64
	IntersectAvgNanos int64
	AggregateCount    int64
	AggregateRows     int64
	AggregateAvgNanos int64
	CrossProductCount int64
	CrossProductRows  int64
}
