package kmeans

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/hupe1980/pagecluster/distance"
	"github.com/hupe1980/pagecluster/internal/dense"
)

var (
	// ErrTooFewPoints is returned when k-means++ seeding has fewer points than clusters.
	ErrTooFewPoints = errors.New("kmeans: fewer points than clusters")

	// ErrInvalidK is returned when the number of clusters is not positive.
	ErrInvalidK = errors.New("kmeans: number of clusters must be positive")
)

// ErrSeedShape indicates a seed matrix whose row count does not match K.
type ErrSeedShape struct {
	K    int
	Rows int
}

func (e *ErrSeedShape) Error() string {
	return fmt.Sprintf("kmeans: seed matrix has %d rows, want %d", e.Rows, e.K)
}

// Phase is the lifecycle stage of a State.
type Phase uint8

const (
	// Uninitialized means no centers exist yet. A seed matrix may be pending.
	Uninitialized Phase = iota
	// Initialized means centers exist and are updated incrementally.
	Initialized
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	default:
		return fmt.Sprintf("Phase(%d)", p)
	}
}

// State is the mutable clustering state.
//
// Invariants: Dim never decreases; Centers (once set) and Seed (while pending)
// have exactly Dim columns and K rows; len(Counts) == len(SumSqrDist) == K.
type State struct {
	K     int
	Dim   int
	Phase Phase

	// Centers are the cluster centers, nil while Uninitialized.
	Centers *dense.Matrix

	// Seed replaces k-means++ seeding on the first batch when set.
	Seed *dense.Matrix

	// Counts is the number of points accepted into each cluster.
	Counts []int64

	// SumSqrDist accumulates the squared distance of accepted points to
	// their center, measured right after each update.
	SumSqrDist []float64
}

// NewState creates an uninitialized state for k clusters. seed may be nil;
// otherwise it must have k rows and becomes the initial centers.
func NewState(k int, seed *dense.Matrix) (*State, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}

	s := &State{
		K:          k,
		Counts:     make([]int64, k),
		SumSqrDist: make([]float64, k),
	}

	if seed != nil {
		if err := seed.Validate(); err != nil {
			return nil, err
		}
		if seed.Rows != k {
			return nil, &ErrSeedShape{K: k, Rows: seed.Rows}
		}
		s.Seed = seed.Clone()
		s.Dim = seed.Cols
	}

	return s, nil
}

// Grow widens all stored centers to dim columns. New columns are zero:
// an existing center has no affinity for tokens it has never seen.
func (s *State) Grow(dim int) {
	if dim <= s.Dim {
		return
	}
	if s.Centers != nil {
		s.Centers.PadCols(dim)
	} else if s.Seed != nil {
		s.Seed.PadCols(dim)
	}
	s.Dim = dim
}

// Active returns the matrix points are compared against: the centers once
// initialized, otherwise the pending seed (which may be nil).
func (s *State) Active() *dense.Matrix {
	if s.Phase == Initialized {
		return s.Centers
	}
	return s.Seed
}

// Variance returns the per-point variance estimate of cluster c.
// The result is NaN or +Inf for clusters without accepted points.
func (s *State) Variance(c int) float64 {
	return s.SumSqrDist[c] / float64(s.Counts[c])
}

// Partial folds a batch into the state. batch must have Dim columns.
//
// On the first non-empty batch the centers are initialized from the seed or
// by k-means++ using rng. Each row is then assigned to its nearest center,
// touched centers move to the weighted mean of their previous position and
// the new points, and each row's squared distance to its updated center is
// added to that center's SumSqrDist.
//
// If seeding fails the state is left unchanged.
func (s *State) Partial(batch *dense.Matrix, rng *rand.Rand) error {
	if batch.Rows == 0 {
		return nil
	}
	if batch.Cols != s.Dim {
		return fmt.Errorf("kmeans: batch has %d columns, state has %d", batch.Cols, s.Dim)
	}

	if s.Phase == Uninitialized {
		if err := s.initialize(batch, rng); err != nil {
			return err
		}
	}

	dim := s.Dim
	sums := make([]float64, s.K*dim)
	added := make([]int64, s.K)

	for i := 0; i < batch.Rows; i++ {
		row := batch.Row(i)
		c, _ := Nearest(row, s.Centers)
		added[c]++
		acc := sums[c*dim : (c+1)*dim]
		for d, v := range row {
			acc[d] += float64(v)
		}
	}

	for c := 0; c < s.K; c++ {
		if added[c] == 0 {
			continue
		}
		prev := float64(s.Counts[c])
		total := prev + float64(added[c])
		center := s.Centers.Row(c)
		acc := sums[c*dim : (c+1)*dim]
		for d := range center {
			center[d] = float32((prev*float64(center[d]) + acc[d]) / total)
		}
		s.Counts[c] += added[c]
	}

	for i := 0; i < batch.Rows; i++ {
		c, dist := Nearest(batch.Row(i), s.Centers)
		s.SumSqrDist[c] += float64(dist)
	}

	return nil
}

func (s *State) initialize(batch *dense.Matrix, rng *rand.Rand) error {
	if s.Seed != nil {
		s.Centers = s.Seed
		s.Seed = nil
	} else {
		centers, err := SeedPlusPlus(batch, s.K, rng)
		if err != nil {
			return err
		}
		s.Centers = centers
	}
	s.Phase = Initialized
	return nil
}

// Nearest returns the index of the center closest to v and the squared
// distance to it. Ties resolve to the lowest index. v must have
// centers.Cols coordinates.
func Nearest(v dense.Vector, centers *dense.Matrix) (int, float32) {
	best := -1
	minDist := float32(math.MaxFloat32)

	for j := 0; j < centers.Rows; j++ {
		d := distance.SquaredL2(v, centers.Row(j))
		if best == -1 || d < minDist {
			minDist = d
			best = j
		}
	}

	return best, minDist
}

// SeedPlusPlus picks k initial centers from the rows of points using
// k-means++: the first uniformly at random, each next one with probability
// proportional to its squared distance from the closest center chosen so far.
func SeedPlusPlus(points *dense.Matrix, k int, rng *rand.Rand) (*dense.Matrix, error) {
	n := points.Rows
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if n < k {
		return nil, fmt.Errorf("%w: %d points for %d clusters", ErrTooFewPoints, n, k)
	}

	centers := dense.NewMatrix(k, points.Cols)

	idx := rng.Intn(n)
	copy(centers.Row(0), points.Row(idx))

	minDists := make([]float64, n)
	for j := range minDists {
		minDists[j] = math.Inf(1)
	}

	for i := 1; i < k; i++ {
		last := centers.Row(i - 1)

		var total float64
		for j := 0; j < n; j++ {
			d := float64(distance.SquaredL2(points.Row(j), last))
			if d < minDists[j] {
				minDists[j] = d
			}
			total += minDists[j]
		}

		if total == 0 {
			idx = rng.Intn(n)
		} else {
			target := rng.Float64() * total
			var cumulative float64
			idx = n - 1 // Default to last if rounding leaves target unreached
			for j := 0; j < n; j++ {
				cumulative += minDists[j]
				if minDists[j] > 0 && cumulative >= target {
					idx = j
					break
				}
			}
		}

		copy(centers.Row(i), points.Row(idx))
	}

	return centers, nil
}
