// Package prometheus exports session metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	mc, _ := pcprom.New(reg)
//	c, _ := pagecluster.New(5, pagecluster.WithMetricsCollector(mc))
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/pagecluster"
)

const namespace = "pagecluster"

var _ pagecluster.MetricsCollector = (*Collector)(nil)

// Collector implements pagecluster.MetricsCollector with Prometheus
// counters, gauges and histograms.
type Collector struct {
	adds        prometheus.Counter
	pending     prometheus.Gauge
	flushes     *prometheus.CounterVec
	flushRows   prometheus.Counter
	outliers    prometheus.Counter
	dimension   prometheus.Gauge
	latency     *prometheus.HistogramVec
	classified  *prometheus.CounterVec
	checkpoints *prometheus.CounterVec
}

// New creates a Collector and registers it on reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		adds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_added_total",
			Help:      "Pages and vectors buffered for clustering.",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_pages",
			Help:      "Buffered pages not yet folded into the clusters.",
		}),
		flushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flushes_total",
			Help:      "Batch flushes by status.",
		}, []string{"status"}),
		flushRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flushed_rows_total",
			Help:      "Rows processed by successful flushes, outliers included.",
		}),
		outliers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outliers_total",
			Help:      "Rows rejected by the outlier gate during flushes.",
		}),
		dimension: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "feature_dimension",
			Help:      "Current feature dimension of the cluster centers.",
		}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of session operations.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"op", "status"}),
		classified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Classifications by result.",
		}, []string{"result"}),
		checkpoints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkpoints_total",
			Help:      "Checkpoints written by status.",
		}, []string{"status"}),
	}

	for _, col := range []prometheus.Collector{
		c.adds, c.pending, c.flushes, c.flushRows, c.outliers,
		c.dimension, c.latency, c.classified, c.checkpoints,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// RecordAdd implements pagecluster.MetricsCollector.
func (c *Collector) RecordAdd(pending int) {
	c.adds.Inc()
	c.pending.Set(float64(pending))
}

// RecordFlush implements pagecluster.MetricsCollector.
func (c *Collector) RecordFlush(rows, outliers, dimension int, d time.Duration, err error) {
	st := status(err)
	c.flushes.WithLabelValues(st).Inc()
	c.latency.WithLabelValues("flush", st).Observe(d.Seconds())
	c.dimension.Set(float64(dimension))
	if err != nil {
		return
	}
	c.flushRows.Add(float64(rows))
	c.outliers.Add(float64(outliers))
	c.pending.Set(0)
}

// RecordClassify implements pagecluster.MetricsCollector.
func (c *Collector) RecordClassify(outlier bool, d time.Duration, err error) {
	c.latency.WithLabelValues("classify", status(err)).Observe(d.Seconds())

	result := "cluster"
	switch {
	case err != nil:
		result = "error"
	case outlier:
		result = "outlier"
	}
	c.classified.WithLabelValues(result).Inc()
}

// RecordCheckpoint implements pagecluster.MetricsCollector.
func (c *Collector) RecordCheckpoint(d time.Duration, err error) {
	st := status(err)
	c.checkpoints.WithLabelValues(st).Inc()
	c.latency.WithLabelValues("checkpoint", st).Observe(d.Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
