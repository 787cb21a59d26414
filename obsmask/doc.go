// Package obsmask provides the observable parity mask used throughout the
// decoder.
//
// Every edge of a matching graph may flip a subset of logical observables
// when an error mechanism on that edge fires. The decoder's only output is
// the XOR of those subsets along every matched path, so the representation
// must make XOR essentially free. With at most 64 observables the whole
// subset fits in one machine word, and XOR is a single instruction.
//
// Wider observable sets belong to the search-graph decoding path, which is
// a separate subsystem; graphs declaring more than MaxObservables are
// rejected at construction time.
package obsmask
