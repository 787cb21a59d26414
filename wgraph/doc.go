// Package wgraph builds weighted matching graphs from floating-point
// log-likelihood weights and converts them to the integer graphs the
// decoder runs on.
//
// Parallel edges between the same pair of nodes (or the same node and the
// boundary) are merged with the log-likelihood-ratio rule for two
// independent error channels acting on the same edge. Conversion to a
// runtime graph discretizes weights to a fixed number of integer buckets
// and absorbs negative weights by pre-flipping the incident detection
// events and recording an observable correction mask.
package wgraph
