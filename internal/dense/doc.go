// Package dense provides the length-tagged vectors and row-major matrices
// that carry clustering state.
//
// Feature vectors are produced against a vocabulary that only grows, so
// vectors created at different times have different lengths. Resizing is
// always explicit: Vector.Resize for single points, Stack for batches and
// Matrix.PadCols for stored centers.
package dense
