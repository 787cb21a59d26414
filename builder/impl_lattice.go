// SPDX-License-Identifier: MIT
// Package: floodmatch/builder
//
// impl_lattice.go — Lattice(d) fixture.
//
// Contract:
//   • d ≥ 2 (else ErrTooFewNodes); d ≤ mask width (else ErrTooManyEdges).
//   • Builds the d-round phenomenological matching graph of the distance-d
//     repetition code: a grid of d×(d−1) detectors, node (t,i) at index
//     t·(d−1)+i for round t and check i.
//   • Space edges (t,i)↔(t,i+1) carry observable bit i+1; each round's end
//     checks carry boundary edges with bits 0 and d−1. A horizontal defect
//     pair maps directly onto the flipped data bits, exactly as in
//     RepetitionCode.
//   • Time edges (t,i)↔(t+1,i) model measurement errors and carry no
//     observables.
//   • WithWeight sets both space and time edge weights; WithBoundaryWeight
//     sets the boundary edges. WithBoundaries is implied and ignored.
//
// Determinism:
//   • Fixed emission order (per round: space, boundary; then time) ⇒
//     identical graphs for identical inputs.

package builder

import (
	"fmt"

	"github.com/katalvlaran/floodmatch/obsmask"
	"github.com/katalvlaran/floodmatch/wgraph"
)

// Lattice builds the d-round detector grid of the distance-d repetition
// code, measurement errors included.
func Lattice(d int, opts ...Option) (*wgraph.WeightedGraph, error) {
	if d < minCodeDistance {
		return nil, fmt.Errorf("Lattice: d=%d < min=%d: %w", d, minCodeDistance, ErrTooFewNodes)
	}
	if d > obsmask.MaxObservables {
		return nil, fmt.Errorf("Lattice: %d observables: %w", d, ErrTooManyEdges)
	}
	cfg := resolve(opts)

	checks := d - 1
	g, err := wgraph.New(d*checks, d)
	if err != nil {
		return nil, fmt.Errorf("Lattice: %w", err)
	}

	node := func(t, i int) int { return t*checks + i }
	for t := 0; t < d; t++ {
		for i := 0; i < checks-1; i++ {
			obs, _ := obsmask.FromIndices([]int{i + 1})
			if err := g.AddOrMergeEdge(node(t, i), node(t, i+1), cfg.edgeWeight, obs); err != nil {
				return nil, fmt.Errorf("Lattice: space edge round %d: %w", t, err)
			}
		}
		left, _ := obsmask.FromIndices([]int{0})
		if err := g.AddOrMergeBoundaryEdge(node(t, 0), cfg.boundaryWeight, left); err != nil {
			return nil, fmt.Errorf("Lattice: left boundary round %d: %w", t, err)
		}
		right, _ := obsmask.FromIndices([]int{d - 1})
		if err := g.AddOrMergeBoundaryEdge(node(t, checks-1), cfg.boundaryWeight, right); err != nil {
			return nil, fmt.Errorf("Lattice: right boundary round %d: %w", t, err)
		}
	}
	for t := 0; t < d-1; t++ {
		for i := 0; i < checks; i++ {
			if err := g.AddOrMergeEdge(node(t, i), node(t+1, i), cfg.edgeWeight, 0); err != nil {
				return nil, fmt.Errorf("Lattice: time edge round %d: %w", t, err)
			}
		}
	}

	return g, nil
}
