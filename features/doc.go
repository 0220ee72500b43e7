// Package features turns pages into tag-frequency feature vectors.
//
// Every distinct (tag, class set) pair seen so far owns one coordinate. The
// vocabulary only grows, so vectors produced later are never shorter than
// vectors produced earlier; consumers zero-pad the older ones.
package features
