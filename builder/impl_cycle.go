// SPDX-License-Identifier: MIT
// Package: floodmatch/builder
//
// impl_cycle.go — Cycle(n) fixture.
//
// Contract:
//   • n ≥ 3 (else ErrTooFewNodes).
//   • Edges i↔(i+1)%n for i=0..n-1, in increasing i order.
//   • Edge i carries observable bit i (n ≤ mask width, else ErrTooManyEdges).
//   • Boundary options are ignored: a ring has no ends.
//
// Determinism:
//   • Fixed edge emission order ⇒ identical graphs for identical inputs.

package builder

import (
	"fmt"

	"github.com/katalvlaran/floodmatch/obsmask"
	"github.com/katalvlaran/floodmatch/wgraph"
)

const minCycleNodes = 3

// Cycle builds an n-node ring with one observable per edge.
func Cycle(n int, opts ...Option) (*wgraph.WeightedGraph, error) {
	if n < minCycleNodes {
		return nil, fmt.Errorf("Cycle: n=%d < min=%d: %w", n, minCycleNodes, ErrTooFewNodes)
	}
	if n > obsmask.MaxObservables {
		return nil, fmt.Errorf("Cycle: %d observables: %w", n, ErrTooManyEdges)
	}
	cfg := resolve(opts)

	g, err := wgraph.New(n, n)
	if err != nil {
		return nil, fmt.Errorf("Cycle: %w", err)
	}
	for i := 0; i < n; i++ {
		obs, _ := obsmask.FromIndices([]int{i})
		if err := g.AddOrMergeEdge(i, (i+1)%n, cfg.edgeWeight, obs); err != nil {
			return nil, fmt.Errorf("Cycle: edge %d↔%d: %w", i, (i+1)%n, err)
		}
	}

	return g, nil
}
