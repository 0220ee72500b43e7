package pagecluster

import (
	"context"
	"fmt"

	"github.com/hupe1980/pagecluster/blobstore"
	"github.com/hupe1980/pagecluster/features"
	"github.com/hupe1980/pagecluster/internal/dense"
	"github.com/hupe1980/pagecluster/internal/kmeans"
	"github.com/hupe1980/pagecluster/snapshot"
)

// vocabularyHolder is implemented by vectorizers whose vocabulary can be
// persisted, such as features.TagFrequency.
type vocabularyHolder interface {
	Vocabulary() *features.Vocabulary
}

// Snapshot exports the complete session state: configuration, vocabulary,
// centers, counts, variance sums and the pending buffer.
func (c *Clusterer) Snapshot() *snapshot.State {
	s := c.state
	st := &snapshot.State{
		SessionID:   c.id,
		Config:      c.config,
		NumClusters: s.K,
		Dimension:   s.Dim,
		Initialized: s.Phase == kmeans.Initialized,
		Counts:      append([]int64(nil), s.Counts...),
		SumSqrDist:  append([]float64(nil), s.SumSqrDist...),
	}

	if vh, ok := c.vectorizer.(vocabularyHolder); ok {
		st.Vocabulary = vh.Vocabulary().Tokens()
	}
	if s.Centers != nil {
		st.Centers = s.Centers.ToRows()
	}
	if s.Seed != nil {
		st.Seed = s.Seed.ToRows()
	}
	for _, v := range c.acc.Vectors() {
		st.Pending = append(st.Pending, v.Clone())
	}

	return st
}

// Restore rebuilds a session from a snapshot. The persisted configuration
// applies unless overridden by opts; loggers, metrics collectors and
// checkpointers are never persisted and must be passed again.
//
// Without WithVectorizer, a TagFrequency vectorizer is rebuilt from the
// persisted vocabulary.
func Restore(st *snapshot.State, optFns ...Option) (*Clusterer, error) {
	o := defaultOptions()
	o.batchSize = st.Config.BatchSize
	o.batchSizeSet = true
	o.maxStdDev = st.Config.MaxStdDev
	o.outlierDetection = st.Config.OutlierDetection
	o.minClusterPoints = st.Config.MinClusterPoints
	o.randSeed = st.Config.RandSeed
	for _, fn := range optFns {
		fn(&o)
	}
	if err := o.validate(st.NumClusters, st.Initialized || st.Seed != nil); err != nil {
		return nil, err
	}

	state, err := restoreState(st)
	if err != nil {
		return nil, err
	}

	if o.vectorizer == nil {
		tf := features.NewTagFrequency()
		tf.Vocabulary().Restore(st.Vocabulary)
		o.vectorizer = tf
	}

	c := newClusterer(st.SessionID, &o, state)

	pending := make([]dense.Vector, len(st.Pending))
	for i, v := range st.Pending {
		pending[i] = v
	}
	c.acc.Restore(pending)

	return c, nil
}

func restoreState(st *snapshot.State) (*kmeans.State, error) {
	k, dim := st.NumClusters, st.Dimension

	if len(st.Counts) != k {
		return nil, &ErrDimensionMismatch{Expected: k, Actual: len(st.Counts)}
	}
	if len(st.SumSqrDist) != k {
		return nil, &ErrDimensionMismatch{Expected: k, Actual: len(st.SumSqrDist)}
	}

	s := &kmeans.State{
		K:          k,
		Dim:        dim,
		Counts:     append([]int64(nil), st.Counts...),
		SumSqrDist: append([]float64(nil), st.SumSqrDist...),
	}

	var err error
	if st.Initialized {
		s.Phase = kmeans.Initialized
		if s.Centers, err = restoreMatrix(st.Centers, k, dim); err != nil {
			return nil, fmt.Errorf("centers: %w", err)
		}
	} else if st.Seed != nil {
		if s.Seed, err = restoreMatrix(st.Seed, k, dim); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	return s, nil
}

func restoreMatrix(rows [][]float32, k, dim int) (*dense.Matrix, error) {
	if len(rows) != k {
		return nil, &ErrDimensionMismatch{Expected: k, Actual: len(rows)}
	}
	m := dense.NewMatrix(k, dim)
	for i, r := range rows {
		if len(r) != dim {
			return nil, &ErrDimensionMismatch{Expected: dim, Actual: len(r)}
		}
		copy(m.Row(i), r)
	}
	return m, nil
}

// Save writes a snapshot of the session to store under name.
func (c *Clusterer) Save(ctx context.Context, store blobstore.Store, name string, optFns ...snapshot.Option) error {
	return snapshot.Write(ctx, store, name, c.Snapshot(), optFns...)
}

// Load restores a session saved with Save.
func Load(ctx context.Context, store blobstore.Store, name string, optFns ...Option) (*Clusterer, error) {
	st, err := snapshot.Read(ctx, store, name)
	if err != nil {
		return nil, err
	}
	return Restore(st, optFns...)
}
