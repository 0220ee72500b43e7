package pagecluster

import (
	"log/slog"

	"github.com/hupe1980/pagecluster/features"
	"github.com/hupe1980/pagecluster/internal/dense"
)

// Defaults applied by New.
const (
	DefaultMaxStdDev        = 5.0
	DefaultMinClusterPoints = 30
	DefaultRandSeed         = 42

	// DefaultBatchSizeFactor times the number of clusters is the default
	// batch size.
	DefaultBatchSizeFactor = 10
)

type options struct {
	batchSize        int
	batchSizeSet     bool
	maxStdDev        float64
	outlierDetection bool
	minClusterPoints int64
	vectorizer       features.Vectorizer
	seed             [][]float32
	randSeed         int64
	logger           *Logger
	metricsCollector MetricsCollector
	checkpointer     Checkpointer
}

func defaultOptions() options {
	return options{
		maxStdDev:        DefaultMaxStdDev,
		outlierDetection: true,
		minClusterPoints: DefaultMinClusterPoints,
		randSeed:         DefaultRandSeed,
	}
}

// Option configures a Clusterer.
type Option func(*options)

// WithBatchSize sets how many pages are buffered before the centers are
// updated. Default: 10 x number of clusters.
func WithBatchSize(n int) Option {
	return func(o *options) {
		o.batchSize = n
		o.batchSizeSet = true
	}
}

// WithMaxStdDev sets the outlier threshold: a point farther than maxStdDev
// standard deviations from its center is not clustered. Default: 5.
// It also turns outlier detection back on after WithoutOutlierDetection.
func WithMaxStdDev(maxStdDev float64) Option {
	return func(o *options) {
		o.maxStdDev = maxStdDev
		o.outlierDetection = true
	}
}

// WithoutOutlierDetection accepts every point into the clusters.
func WithoutOutlierDetection() Option {
	return func(o *options) {
		o.outlierDetection = false
	}
}

// WithMinClusterPoints sets how many points a cluster needs before outlier
// detection applies to it. Default: 30.
func WithMinClusterPoints(n int64) Option {
	return func(o *options) {
		o.minClusterPoints = n
	}
}

// WithVectorizer replaces the default tag-frequency vectorizer. A
// vectorizer must not be shared between sessions.
func WithVectorizer(v features.Vectorizer) Option {
	return func(o *options) {
		o.vectorizer = v
	}
}

// WithSeedCenters initializes the clusters from the given rows instead of
// k-means++. There must be one row per cluster; shorter rows are
// zero-padded to the longest one.
func WithSeedCenters(rows [][]float32) Option {
	return func(o *options) {
		o.seed = rows
	}
}

// WithRandSeed sets the seed of the k-means++ random source. Default: 42.
func WithRandSeed(seed int64) Option {
	return func(o *options) {
		o.randSeed = seed
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &pagecluster.BasicMetricsCollector{}
//	c, _ := pagecluster.New(8, pagecluster.WithMetricsCollector(metrics))
//	// ... add pages ...
//	stats := metrics.GetStats()
//	fmt.Printf("Flushes: %d, Outliers: %d\n", stats.FlushCount, stats.Outliers)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := pagecluster.NewJSONLogger(slog.LevelInfo)
//	c, _ := pagecluster.New(8, pagecluster.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithCheckpointer persists the session after every flush, subject to the
// checkpointer's own throttling. Failures are logged and reported to the
// metrics collector; they never fail the add that triggered them.
func WithCheckpointer(cp Checkpointer) Option {
	return func(o *options) {
		o.checkpointer = cp
	}
}

// validate fills in the default batch size and checks the options.
// Unseeded sessions initialize from their first batch, so it must hold at
// least one point per cluster.
func (o *options) validate(nClusters int, seeded bool) error {
	if !o.batchSizeSet {
		o.batchSize = DefaultBatchSizeFactor * nClusters
	}

	switch {
	case nClusters <= 0:
		return invalidConfig("number of clusters must be positive, got %d", nClusters)
	case o.batchSize <= 0:
		return invalidConfig("batch size must be positive, got %d", o.batchSize)
	case !seeded && o.batchSize < nClusters:
		return invalidConfig("batch size %d smaller than %d clusters without seed centers", o.batchSize, nClusters)
	case o.maxStdDev < 0:
		return invalidConfig("max std dev must not be negative, got %g", o.maxStdDev)
	case o.minClusterPoints < 0:
		return invalidConfig("min cluster points must not be negative, got %d", o.minClusterPoints)
	}
	return nil
}

func (o *options) seedMatrix() *dense.Matrix {
	if o.seed == nil {
		return nil
	}
	rows := make([]dense.Vector, len(o.seed))
	for i, r := range o.seed {
		rows[i] = r
	}
	return dense.Stack(rows)
}
