// Package distance provides the vector distance used for cluster assignment.
//
// Clustering compares tag-count vectors by squared Euclidean distance. The
// square root is never taken: nearest-center search only needs the ordering,
// and the outlier gate compares squared distances against a variance.
//
// # Usage
//
//	d := distance.SquaredL2(a, b)
package distance
