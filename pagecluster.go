package pagecluster

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/pagecluster/features"
	"github.com/hupe1980/pagecluster/htmlpage"
	"github.com/hupe1980/pagecluster/internal/batch"
	"github.com/hupe1980/pagecluster/internal/dense"
	"github.com/hupe1980/pagecluster/internal/kmeans"
	"github.com/hupe1980/pagecluster/internal/outlier"
	"github.com/hupe1980/pagecluster/snapshot"
)

// Outlier is the label Classify returns for pages too far from every cluster.
const Outlier = -1

// Checkpointer persists session state after flushes. snapshot.Checkpointer
// implements it.
type Checkpointer interface {
	// Checkpoint may call snap and persist the result. It reports whether
	// a snapshot was written.
	Checkpoint(ctx context.Context, snap func() *snapshot.State) (bool, error)
}

// Clusterer groups a stream of pages into a fixed number of clusters.
//
// Pages are vectorized as they arrive and buffered; every BatchSize pages
// the buffer is folded into the cluster centers with one mini-batch k-means
// step, after dropping statistical outliers.
//
// A Clusterer is not safe for concurrent use. Callers serialize access.
type Clusterer struct {
	id           uuid.UUID
	config       snapshot.Config
	vectorizer   features.Vectorizer
	state        *kmeans.State
	acc          *batch.Accumulator
	gate         outlier.Gate
	rng          *rand.Rand
	logger       *Logger
	metrics      MetricsCollector
	checkpointer Checkpointer
}

// New creates a Clusterer with nClusters clusters.
func New(nClusters int, optFns ...Option) (*Clusterer, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	if err := o.validate(nClusters, o.seed != nil); err != nil {
		return nil, err
	}

	state, err := kmeans.NewState(nClusters, o.seedMatrix())
	if err != nil {
		return nil, translateError(err)
	}

	c := newClusterer(uuid.New(), &o, state)
	c.state.Grow(c.vectorizer.Dimension())
	return c, nil
}

func newClusterer(id uuid.UUID, o *options, state *kmeans.State) *Clusterer {
	if o.vectorizer == nil {
		o.vectorizer = features.NewTagFrequency()
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}

	return &Clusterer{
		id: id,
		config: snapshot.Config{
			BatchSize:        o.batchSize,
			MaxStdDev:        o.maxStdDev,
			OutlierDetection: o.outlierDetection,
			MinClusterPoints: o.minClusterPoints,
			RandSeed:         o.randSeed,
		},
		vectorizer: o.vectorizer,
		state:      state,
		acc:        batch.New(o.batchSize),
		gate: outlier.Gate{
			Enabled:          o.outlierDetection,
			MaxStdDev:        o.maxStdDev,
			MinClusterPoints: o.minClusterPoints,
		},
		rng:          rand.New(rand.NewSource(o.randSeed)),
		logger:       o.logger.WithSession(id.String()),
		metrics:      o.metricsCollector,
		checkpointer: o.checkpointer,
	}
}

// AddPage vectorizes page and buffers it. When the buffer reaches BatchSize
// the clusters are updated.
//
// A flush error leaves the buffer intact, so the next AddPage retries it.
// The only flush error in practice is ErrTooFewPoints.
func (c *Clusterer) AddPage(ctx context.Context, page *htmlpage.Page) error {
	return c.AddVector(ctx, c.vectorizer.Vectorize(page))
}

// AddVector buffers a copy of a precomputed feature vector. Its coordinates
// must follow the vectorizer's token order; shorter vectors are zero-padded.
func (c *Clusterer) AddVector(ctx context.Context, v dense.Vector) error {
	ready := c.acc.Add(v.Clone())
	c.metrics.RecordAdd(c.acc.Len())
	if !ready {
		return nil
	}
	return c.flush(ctx)
}

// Flush folds the buffer into the clusters now, regardless of its size.
// It is a no-op on an empty buffer.
func (c *Clusterer) Flush(ctx context.Context) error {
	if c.acc.Len() == 0 {
		return nil
	}
	return c.flush(ctx)
}

func (c *Clusterer) flush(ctx context.Context) error {
	start := time.Now()

	m := c.acc.Matrix()
	c.state.Grow(m.Cols)
	m.PadCols(c.state.Dim)

	rejected := c.gate.Find(m, c.state)
	kept := outlier.Keep(m, rejected)
	outliers := int(rejected.GetCardinality())

	wasInitialized := c.state.Phase == kmeans.Initialized
	seeded := c.state.Seed != nil

	err := c.state.Partial(kept, c.rng)

	duration := time.Since(start)
	c.logger.LogFlush(ctx, m.Rows, outliers, c.state.Dim, duration, err)
	c.metrics.RecordFlush(m.Rows, outliers, c.state.Dim, duration, err)
	if err != nil {
		return err
	}

	c.acc.Reset()

	if !wasInitialized && c.state.Phase == kmeans.Initialized {
		c.logger.LogInit(ctx, c.state.K, c.state.Dim, seeded)
	}

	c.checkpoint(ctx)
	return nil
}

func (c *Clusterer) checkpoint(ctx context.Context) {
	if c.checkpointer == nil {
		return
	}

	start := time.Now()
	written, err := c.checkpointer.Checkpoint(ctx, c.Snapshot)
	if !written && err == nil {
		return
	}

	duration := time.Since(start)
	c.logger.WithDimension(c.state.Dim).LogCheckpoint(ctx, duration, err)
	c.metrics.RecordCheckpoint(duration, err)
}

// Classify returns the cluster page belongs to, or Outlier.
//
// Vectorizing may add unseen tokens to the vocabulary; the cluster state is
// never modified. Before the first flush the seed centers are used if
// present, otherwise ErrNotFitted is returned.
func (c *Clusterer) Classify(page *htmlpage.Page) (int, error) {
	return c.ClassifyVector(c.vectorizer.Vectorize(page))
}

// ClassifyVector is Classify for a precomputed feature vector. Vectors are
// truncated or zero-padded to Dimension.
func (c *Clusterer) ClassifyVector(v dense.Vector) (int, error) {
	start := time.Now()

	if c.state.Active() == nil {
		c.metrics.RecordClassify(false, time.Since(start), ErrNotFitted)
		return Outlier, ErrNotFitted
	}

	cluster, isOutlier := c.gate.Check(v.Resize(c.state.Dim), c.state)
	c.metrics.RecordClassify(isOutlier, time.Since(start), nil)
	if isOutlier {
		return Outlier, nil
	}
	return cluster, nil
}

// ID returns the session id. It survives Snapshot/Restore.
func (c *Clusterer) ID() uuid.UUID { return c.id }

// NumClusters returns the number of clusters.
func (c *Clusterer) NumClusters() int { return c.state.K }

// Dimension returns the current feature dimension. It never decreases.
func (c *Clusterer) Dimension() int { return c.state.Dim }

// BatchSize returns the flush threshold.
func (c *Clusterer) BatchSize() int { return c.acc.Size() }

// Pending returns the number of buffered, not yet clustered vectors.
func (c *Clusterer) Pending() int { return c.acc.Len() }

// Initialized reports whether cluster centers exist.
func (c *Clusterer) Initialized() bool { return c.state.Phase == kmeans.Initialized }

// Vectorizer returns the session's vectorizer.
func (c *Clusterer) Vectorizer() features.Vectorizer { return c.vectorizer }

// Centers returns a copy of the cluster centers, or nil before the first
// flush.
func (c *Clusterer) Centers() [][]float32 {
	if c.state.Phase != kmeans.Initialized {
		return nil
	}
	return c.state.Centers.ToRows()
}

// Counts returns a copy of the number of points in each cluster.
func (c *Clusterer) Counts() []int64 {
	return append([]int64(nil), c.state.Counts...)
}

// Variances returns the per-point variance estimate of each cluster.
// Clusters without points report 0.
func (c *Clusterer) Variances() []float64 {
	out := make([]float64, c.state.K)
	for i := range out {
		if c.state.Counts[i] > 0 {
			out[i] = c.state.Variance(i)
		}
	}
	return out
}

// OutlierDetection reports whether outliers are filtered.
func (c *Clusterer) OutlierDetection() bool { return c.gate.Enabled }

// MaxStdDev returns the outlier threshold in standard deviations.
func (c *Clusterer) MaxStdDev() float64 { return c.gate.MaxStdDev }

// SetMaxStdDev changes the outlier threshold and enables outlier detection.
func (c *Clusterer) SetMaxStdDev(maxStdDev float64) error {
	if maxStdDev < 0 {
		return invalidConfig("max std dev must not be negative, got %g", maxStdDev)
	}
	c.gate.MaxStdDev = maxStdDev
	c.gate.Enabled = true
	c.config.MaxStdDev = maxStdDev
	c.config.OutlierDetection = true
	return nil
}

// DisableOutlierDetection accepts every subsequent point into the clusters.
func (c *Clusterer) DisableOutlierDetection() {
	c.gate.Enabled = false
	c.config.OutlierDetection = false
}
