// Package graphio reads and writes weighted matching graphs and syndrome
// batches as JSON, with transparent lz4 compression for files carrying the
// .lz4 suffix.
//
// The on-disk graph format mirrors the wgraph builder API: a node count, an
// observable count, and a flat edge list where an absent "v" marks a
// boundary edge. Parallel edges in a file merge on load exactly as repeated
// AddOrMergeEdge calls would.
package graphio
