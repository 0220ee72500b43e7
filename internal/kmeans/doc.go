// Package kmeans implements the online mini-batch k-means engine behind
// page clustering.
//
// A State holds K centers over a dimension that may grow between batches.
// Partial folds one batch into the centers with the running weighted-mean
// update and keeps per-cluster squared-distance sums, from which the outlier
// gate derives a variance estimate.
//
// The first batch initializes the centers, either from a caller-supplied seed
// matrix or with k-means++ seeding drawn from the batch itself.
package kmeans
