// Package testutil provides testing utilities for pagecluster.
//
// This package is intended for use in tests and benchmarks only.
// All generators are deterministic for a given seed.
//
// # Synthetic Pages
//
//	rng := testutil.NewRNG(seed)
//	groups := rng.PageGroups(5, 15) // groups[g][i] is an HTML body
//
// Pages of one group share a layout (the same tags and classes with
// varying repetition counts); different groups share only the page chrome.
//
// # Random Vectors
//
//	points, labels := rng.Blobs(100, 16, 4, 0.1)
package testutil
