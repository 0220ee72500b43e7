package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/pagecluster/internal/dense"
)

// RNG is a seeded, mutex-guarded random source. Generators drawing from the
// same RNG produce the same output for the same seed and call order.
type RNG struct {
	mu   sync.Mutex
	src  *rand.Rand
	seed int64
}

// NewRNG returns an RNG seeded with seed.
func NewRNG(seed int64) *RNG {
	return &RNG{src: rand.New(rand.NewSource(seed)), seed: seed}
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 { return r.seed }

// IntRange returns a number in [lo, hi].
func (r *RNG) IntRange(lo, hi int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.src.Intn(hi-lo+1)
}

// Blobs draws n points around k centroids placed uniformly in [0, 10)^dim,
// with Gaussian noise of standard deviation spread. Point i belongs to blob
// labels[i] == i % k.
func (r *RNG) Blobs(n, dim, k int, spread float32) (points []dense.Vector, labels []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	centroids := dense.NewMatrix(k, dim)
	for i := range centroids.Data {
		centroids.Data[i] = 10 * r.src.Float32()
	}

	points = make([]dense.Vector, n)
	labels = make([]int, n)
	for i := range points {
		labels[i] = i % k
		p := centroids.Row(labels[i]).Clone()
		for j := range p {
			p[j] += spread * float32(r.src.NormFloat64())
		}
		points[i] = p
	}

	return points, labels
}
