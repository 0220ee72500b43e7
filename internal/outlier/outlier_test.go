package outlier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pagecluster/internal/dense"
	"github.com/hupe1980/pagecluster/internal/kmeans"
)

// fitted returns a one-dimensional state with centers at 0 and 100, each
// with the given count and a variance of 1.
func fitted(t *testing.T, count int64) *kmeans.State {
	t.Helper()

	s, err := kmeans.NewState(2, dense.FromRows([]dense.Vector{{0}, {100}}, 1))
	require.NoError(t, err)
	require.NoError(t, s.Partial(dense.FromRows([]dense.Vector{{0}, {100}}, 1), nil))

	s.Counts = []int64{count, count}
	s.SumSqrDist = []float64{float64(count), float64(count)}
	return s
}

func TestGate_Find(t *testing.T) {
	s := fitted(t, 31)
	g := Gate{Enabled: true, MaxStdDev: 5, MinClusterPoints: 30}

	// d/var must exceed 25: 5² = 25 passes, 6² = 36 is rejected.
	batch := dense.FromRows([]dense.Vector{{5}, {6}, {100}, {94}}, 1)
	rejected := g.Find(batch, s)

	assert.Equal(t, []uint32{1, 3}, rejected.ToArray())

	kept := Keep(batch, rejected)
	assert.Equal(t, []float32{5, 100}, kept.Data)
}

func TestGate_MinClusterPointsIsExclusive(t *testing.T) {
	s := fitted(t, 30)
	g := Gate{Enabled: true, MaxStdDev: 5, MinClusterPoints: 30}

	rejected := g.Find(dense.FromRows([]dense.Vector{{49}}, 1), s)
	assert.True(t, rejected.IsEmpty())

	_, out := g.Check(dense.Vector{49}, s)
	assert.False(t, out)
}

func TestGate_Disabled(t *testing.T) {
	s := fitted(t, 1000)
	g := Gate{Enabled: false, MaxStdDev: 5, MinClusterPoints: 30}

	assert.True(t, g.Find(dense.FromRows([]dense.Vector{{49}}, 1), s).IsEmpty())

	c, out := g.Check(dense.Vector{49}, s)
	assert.Equal(t, 0, c)
	assert.False(t, out)
}

func TestGate_UninitializedPassesEverything(t *testing.T) {
	s, err := kmeans.NewState(2, dense.FromRows([]dense.Vector{{0}, {100}}, 1))
	require.NoError(t, err)
	g := Gate{Enabled: true, MaxStdDev: 0.1, MinClusterPoints: 0}

	assert.True(t, g.Find(dense.FromRows([]dense.Vector{{1000}}, 1), s).IsEmpty())

	c, out := g.Check(dense.Vector{90}, s)
	assert.Equal(t, 1, c)
	assert.False(t, out)
}

func TestGate_Check(t *testing.T) {
	s := fitted(t, 31)
	g := Gate{Enabled: true, MaxStdDev: 5, MinClusterPoints: 30}

	c, out := g.Check(dense.Vector{97}, s)
	assert.Equal(t, 1, c)
	assert.False(t, out)

	c, out = g.Check(dense.Vector{80}, s)
	assert.Equal(t, 1, c)
	assert.True(t, out)
}

func TestKeep_NothingRejected(t *testing.T) {
	batch := dense.FromRows([]dense.Vector{{1}, {2}}, 1)
	g := Gate{}
	assert.Same(t, batch, Keep(batch, g.Find(batch, &kmeans.State{})))
}
