// Package core defines the runtime data model shared by the flooder and the
// matching manager: the static MatchingGraph with its DetectorNode adjacency,
// the GraphFillRegion growth state, piecewise-linear radii, compressed path
// edges, tentative and MWPM events, the alternating-tree node type, and the
// region arena.
//
// Everything in this package is passive state plus small invariant-preserving
// methods. The continuous-time simulation lives in package flooder; the
// alternating-tree surgery lives in package mwpm. Keeping the mutually
// referential types (node ↔ region ↔ tree node ↔ event) in one package is
// what lets the other two stay acyclic.
//
// Units: edge weights handed to AddEdge are doubled on storage, so all
// internal distances, radii and times are measured in half-weight ticks.
// Two regions growing toward each other at unit rate therefore always meet
// at an integer tick. This convention never leaks: the decoder's outputs are
// observable masks and matched pairs, not weights.
package core
