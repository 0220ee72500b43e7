// Package outlier implements the statistical gate that keeps far-away points
// out of cluster centers.
package outlier

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/pagecluster/internal/dense"
	"github.com/hupe1980/pagecluster/internal/kmeans"
)

// Gate decides whether a point is too far from its nearest center.
//
// A point assigned to cluster c at squared distance d is an outlier iff
// Counts[c] > MinClusterPoints and d / Variance(c) > MaxStdDev². Clusters
// with too few points never reject, which also keeps the variance
// denominator non-zero.
type Gate struct {
	Enabled          bool
	MaxStdDev        float64
	MinClusterPoints int64
}

// Find returns the rows of batch rejected against s. batch must have s.Dim
// columns. Nothing is rejected while s is uninitialized or the gate is off.
func (g Gate) Find(batch *dense.Matrix, s *kmeans.State) *roaring.Bitmap {
	rejected := roaring.New()
	if !g.Enabled || s.Phase != kmeans.Initialized {
		return rejected
	}

	for i := 0; i < batch.Rows; i++ {
		c, d := kmeans.Nearest(batch.Row(i), s.Centers)
		if g.reject(s, c, d) {
			rejected.Add(uint32(i))
		}
	}

	return rejected
}

// Check assigns v to its nearest active center (the pending seed before
// initialization) and reports whether the gate rejects it. v must have
// s.Dim coordinates and s must have an active matrix.
func (g Gate) Check(v dense.Vector, s *kmeans.State) (cluster int, outlier bool) {
	c, d := kmeans.Nearest(v, s.Active())
	if !g.Enabled || s.Phase != kmeans.Initialized {
		return c, false
	}
	return c, g.reject(s, c, d)
}

func (g Gate) reject(s *kmeans.State, c int, d float32) bool {
	if s.Counts[c] <= g.MinClusterPoints {
		return false
	}
	return float64(d)/s.Variance(c) > g.MaxStdDev*g.MaxStdDev
}

// Keep returns the rows of batch not in rejected, in their original order.
func Keep(batch *dense.Matrix, rejected *roaring.Bitmap) *dense.Matrix {
	if rejected.IsEmpty() {
		return batch
	}
	return batch.Filter(func(i int) bool {
		return !rejected.Contains(uint32(i))
	})
}
