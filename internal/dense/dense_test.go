package dense

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector_Resize(t *testing.T) {
	v := Vector{1, 2, 3}

	assert.Equal(t, Vector{1, 2}, v.Resize(2))
	assert.Equal(t, Vector{1, 2, 3, 0, 0}, v.Resize(5))
	assert.Equal(t, Vector{}, v.Resize(0))

	// Resize never aliases the source.
	r := v.Resize(3)
	r[0] = 42
	assert.Equal(t, float32(1), v[0])
}

func TestStack_ZeroPadsShorterRows(t *testing.T) {
	m := Stack([]Vector{{1}, {1, 2}, {1, 2, 3}})

	require.Equal(t, 3, m.Rows)
	require.Equal(t, 3, m.Cols)
	assert.Equal(t, Vector{1, 0, 0}, m.Row(0))
	assert.Equal(t, Vector{1, 2, 0}, m.Row(1))
	assert.Equal(t, Vector{1, 2, 3}, m.Row(2))
	require.NoError(t, m.Validate())
}

func TestStack_Empty(t *testing.T) {
	m := Stack(nil)
	assert.Equal(t, 0, m.Rows)
	assert.Equal(t, 0, m.Cols)
}

func TestMatrix_PadCols(t *testing.T) {
	m := FromRows([]Vector{{1, 2}, {3, 4}}, 2)

	m.PadCols(4)
	require.Equal(t, 4, m.Cols)
	assert.Equal(t, Vector{1, 2, 0, 0}, m.Row(0))
	assert.Equal(t, Vector{3, 4, 0, 0}, m.Row(1))

	// Never shrinks.
	m.PadCols(1)
	assert.Equal(t, 4, m.Cols)
	require.NoError(t, m.Validate())
}

func TestMatrix_RowIsView(t *testing.T) {
	m := NewMatrix(2, 2)
	m.Row(1)[0] = 7
	assert.Equal(t, float32(7), m.Data[2])

	// Appending to a row must not clobber the next one.
	r := append(m.Row(0), 9)
	assert.Len(t, r, 3)
	assert.Equal(t, float32(7), m.Data[2])
}

func TestMatrix_Filter(t *testing.T) {
	m := FromRows([]Vector{{1}, {2}, {3}, {4}}, 1)

	out := m.Filter(func(i int) bool { return i%2 == 1 })
	require.Equal(t, 2, out.Rows)
	assert.Equal(t, []float32{2, 4}, out.Data)
	assert.Equal(t, 4, m.Rows)
}

func TestMatrix_CloneAndToRows(t *testing.T) {
	m := FromRows([]Vector{{1, 2}, {3}}, 2)
	c := m.Clone()
	c.Data[0] = 100

	assert.Equal(t, float32(1), m.Data[0])
	assert.Equal(t, [][]float32{{1, 2}, {3, 0}}, m.ToRows())
}

func TestMatrix_Validate(t *testing.T) {
	m := &Matrix{Rows: 2, Cols: 2, Data: []float32{1, 2, 3}}
	assert.Error(t, m.Validate())
}
