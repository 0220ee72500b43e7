// Package batch buffers feature vectors until a flush threshold is reached.
package batch

import "github.com/hupe1980/pagecluster/internal/dense"

// Accumulator is an ordered buffer of feature vectors released as a whole.
//
// Vectors are appended in production order, so their lengths are
// non-decreasing and the last one is the widest.
type Accumulator struct {
	size int
	buf  []dense.Vector
}

// New creates an accumulator that reports Ready once it holds size vectors.
func New(size int) *Accumulator {
	return &Accumulator{
		size: size,
		buf:  make([]dense.Vector, 0, size),
	}
}

// Size returns the flush threshold.
func (a *Accumulator) Size() int { return a.size }

// Len returns the number of buffered vectors.
func (a *Accumulator) Len() int { return len(a.buf) }

// Add appends v and reports whether the buffer reached the threshold.
func (a *Accumulator) Add(v dense.Vector) bool {
	a.buf = append(a.buf, v)
	return a.Ready()
}

// Ready reports whether the buffer holds at least Size vectors.
func (a *Accumulator) Ready() bool {
	return len(a.buf) >= a.size
}

// Matrix stacks the buffered vectors into a matrix as wide as the widest
// one. The buffer is not modified.
func (a *Accumulator) Matrix() *dense.Matrix {
	return dense.Stack(a.buf)
}

// Vectors returns the buffered vectors. The slice must not be modified.
func (a *Accumulator) Vectors() []dense.Vector {
	return a.buf
}

// Reset drops all buffered vectors.
func (a *Accumulator) Reset() {
	clear(a.buf)
	a.buf = a.buf[:0]
}

// Restore replaces the buffer with copies of vs.
func (a *Accumulator) Restore(vs []dense.Vector) {
	a.Reset()
	for _, v := range vs {
		a.buf = append(a.buf, v.Clone())
	}
}
