// SPDX-License-Identifier: MIT
// Package: floodmatch/builder
//
// Package builder constructs deterministic weighted-graph fixtures for
// decoder tests, benchmarks and examples.
//
// Design contract (strict):
//   - All factories return a fresh wgraph.WeightedGraph; no shared state.
//   - Functional options (Option) resolve into an immutable config.
//   - Determinism: same factory, size and options ⇒ identical graphs.
//   - Safety: never panic; return sentinel errors on invalid parameters.
//
// Factories:
//   - Chain(n): n nodes in a line, optional boundary edges at both ends.
//   - Cycle(n): n nodes in a ring.
//   - RepetitionCode(d): the distance-d repetition code's matching graph,
//     derived from its parity check matrix.
package builder
