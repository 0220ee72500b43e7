package pagecluster

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems;
// metrics/prometheus provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordAdd is called after each page or vector is buffered.
	// pending is the buffer length afterwards.
	RecordAdd(pending int)

	// RecordFlush is called after each flush. rows is the batch size,
	// outliers the number of rejected rows, dimension the feature dimension
	// after reconciliation. err is nil if successful.
	RecordFlush(rows, outliers, dimension int, duration time.Duration, err error)

	// RecordClassify is called after each classification.
	RecordClassify(outlier bool, duration time.Duration, err error)

	// RecordCheckpoint is called after each checkpoint that was attempted.
	RecordCheckpoint(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(int)                                   {}
func (NoopMetricsCollector) RecordFlush(int, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordClassify(bool, time.Duration, error)       {}
func (NoopMetricsCollector) RecordCheckpoint(time.Duration, error)           {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount             atomic.Int64
	Pending              atomic.Int64
	FlushCount           atomic.Int64
	FlushErrors          atomic.Int64
	FlushRows            atomic.Int64
	Outliers             atomic.Int64
	Dimension            atomic.Int64
	FlushTotalNanos      atomic.Int64
	ClassifyCount        atomic.Int64
	ClassifyOutliers     atomic.Int64
	ClassifyErrors       atomic.Int64
	ClassifyTotalNanos   atomic.Int64
	CheckpointCount      atomic.Int64
	CheckpointErrors     atomic.Int64
	CheckpointTotalNanos atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(pending int) {
	b.AddCount.Add(1)
	b.Pending.Store(int64(pending))
}

// RecordFlush implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFlush(rows, outliers, dimension int, duration time.Duration, err error) {
	b.FlushCount.Add(1)
	b.FlushTotalNanos.Add(duration.Nanoseconds())
	b.Dimension.Store(int64(dimension))
	if err != nil {
		b.FlushErrors.Add(1)
		return
	}
	b.FlushRows.Add(int64(rows))
	b.Outliers.Add(int64(outliers))
	b.Pending.Store(0)
}

// RecordClassify implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClassify(outlier bool, duration time.Duration, err error) {
	b.ClassifyCount.Add(1)
	b.ClassifyTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ClassifyErrors.Add(1)
	} else if outlier {
		b.ClassifyOutliers.Add(1)
	}
}

// RecordCheckpoint implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCheckpoint(duration time.Duration, err error) {
	b.CheckpointCount.Add(1)
	b.CheckpointTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CheckpointErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:         b.AddCount.Load(),
		Pending:          b.Pending.Load(),
		FlushCount:       b.FlushCount.Load(),
		FlushErrors:      b.FlushErrors.Load(),
		FlushRows:        b.FlushRows.Load(),
		Outliers:         b.Outliers.Load(),
		Dimension:        b.Dimension.Load(),
		FlushAvgNanos:    avg(b.FlushTotalNanos.Load(), b.FlushCount.Load()),
		ClassifyCount:    b.ClassifyCount.Load(),
		ClassifyOutliers: b.ClassifyOutliers.Load(),
		ClassifyErrors:   b.ClassifyErrors.Load(),
		ClassifyAvgNanos: avg(b.ClassifyTotalNanos.Load(), b.ClassifyCount.Load()),
		CheckpointCount:  b.CheckpointCount.Load(),
		CheckpointErrors: b.CheckpointErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddCount         int64
	Pending          int64
	FlushCount       int64
	FlushErrors      int64
	FlushRows        int64
	Outliers         int64
	Dimension        int64
	FlushAvgNanos    int64
	ClassifyCount    int64
	ClassifyOutliers int64
	ClassifyErrors   int64
	ClassifyAvgNanos int64
	CheckpointCount  int64
	CheckpointErrors int64
}
