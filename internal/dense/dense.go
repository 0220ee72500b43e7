package dense

import "fmt"

// Vector is a feature vector. Its length is the vocabulary size at the
// moment it was produced.
type Vector []float32

// Len returns the number of coordinates.
func (v Vector) Len() int { return len(v) }

// Clone returns a copy of v.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Resize returns a copy of v with exactly n coordinates. Longer vectors are
// truncated, shorter ones zero-padded on the right.
func (v Vector) Resize(n int) Vector {
	out := make(Vector, n)
	copy(out, v)
	return out
}

// Matrix is a row-major dense matrix.
// Layout: Data[i*Cols : (i+1)*Cols] is row i.
type Matrix struct {
	Rows int
	Cols int
	Data []float32
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{
		Rows: rows,
		Cols: cols,
		Data: make([]float32, rows*cols),
	}
}

// FromRows builds a matrix with the given column count, zero-padding or
// truncating every row to fit.
func FromRows(rows []Vector, cols int) *Matrix {
	m := NewMatrix(len(rows), cols)
	for i, r := range rows {
		copy(m.Row(i), r)
	}
	return m
}

// Stack builds a matrix from vectors of non-decreasing length. The column
// count is the longest row, which for a vocabulary-ordered batch is the most
// recently produced one; shorter rows are zero-padded.
func Stack(rows []Vector) *Matrix {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	return FromRows(rows, cols)
}

// Row returns row i as a view into the matrix data.
func (m *Matrix) Row(i int) Vector {
	return m.Data[i*m.Cols : (i+1)*m.Cols : (i+1)*m.Cols]
}

// PadCols widens the matrix to n columns, filling new columns with zeros.
// It is a no-op when n <= Cols; columns are never removed.
func (m *Matrix) PadCols(n int) {
	if n <= m.Cols {
		return
	}
	data := make([]float32, m.Rows*n)
	for i := 0; i < m.Rows; i++ {
		copy(data[i*n:i*n+m.Cols], m.Data[i*m.Cols:(i+1)*m.Cols])
	}
	m.Data = data
	m.Cols = n
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	if m == nil {
		return nil
	}
	data := make([]float32, len(m.Data))
	copy(data, m.Data)
	return &Matrix{Rows: m.Rows, Cols: m.Cols, Data: data}
}

// Filter returns a new matrix holding only the rows for which keep returns true,
// in their original order.
func (m *Matrix) Filter(keep func(i int) bool) *Matrix {
	out := &Matrix{Cols: m.Cols, Data: make([]float32, 0, len(m.Data))}
	for i := 0; i < m.Rows; i++ {
		if !keep(i) {
			continue
		}
		out.Data = append(out.Data, m.Row(i)...)
		out.Rows++
	}
	return out
}

// ToRows copies the matrix into a slice of rows.
func (m *Matrix) ToRows() [][]float32 {
	out := make([][]float32, m.Rows)
	for i := range out {
		out[i] = m.Row(i).Clone()
	}
	return out
}

// Validate checks that the data length matches the declared shape.
func (m *Matrix) Validate() error {
	if m.Rows < 0 || m.Cols < 0 {
		return fmt.Errorf("dense: negative shape %dx%d", m.Rows, m.Cols)
	}
	if len(m.Data) != m.Rows*m.Cols {
		return fmt.Errorf("dense: shape %dx%d needs %d values, got %d", m.Rows, m.Cols, m.Rows*m.Cols, len(m.Data))
	}
	return nil
}
