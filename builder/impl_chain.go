// SPDX-License-Identifier: MIT
// Package: floodmatch/builder
//
// impl_chain.go — Chain(n) fixture.
//
// Contract:
//   • n ≥ 2 (else ErrTooFewNodes).
//   • Edges i↔(i+1) for i=0..n-2, in increasing i order.
//   • Edge i carries observable bit i; with boundaries, the boundary edge
//     at node 0 carries bit n-1 and the one at node n-1 carries bit n.
//   • Total observable count must fit the mask width (else ErrTooManyEdges).
//
// Determinism:
//   • Fixed edge emission order ⇒ identical graphs for identical inputs.

package builder

import (
	"fmt"

	"github.com/katalvlaran/floodmatch/obsmask"
	"github.com/katalvlaran/floodmatch/wgraph"
)

const minChainNodes = 2

// Chain builds an n-node path graph with one observable per edge.
func Chain(n int, opts ...Option) (*wgraph.WeightedGraph, error) {
	if n < minChainNodes {
		return nil, fmt.Errorf("Chain: n=%d < min=%d: %w", n, minChainNodes, ErrTooFewNodes)
	}
	cfg := resolve(opts)

	numObs := n - 1
	if cfg.withBoundaries {
		numObs = n + 1
	}
	if numObs > obsmask.MaxObservables {
		return nil, fmt.Errorf("Chain: %d observables: %w", numObs, ErrTooManyEdges)
	}

	g, err := wgraph.New(n, numObs)
	if err != nil {
		return nil, fmt.Errorf("Chain: %w", err)
	}

	for i := 0; i < n-1; i++ {
		obs, _ := obsmask.FromIndices([]int{i})
		if err := g.AddOrMergeEdge(i, i+1, cfg.edgeWeight, obs); err != nil {
			return nil, fmt.Errorf("Chain: edge %d↔%d: %w", i, i+1, err)
		}
	}
	if cfg.withBoundaries {
		left, _ := obsmask.FromIndices([]int{n - 1})
		if err := g.AddOrMergeBoundaryEdge(0, cfg.boundaryWeight, left); err != nil {
			return nil, fmt.Errorf("Chain: boundary at 0: %w", err)
		}
		right, _ := obsmask.FromIndices([]int{n})
		if err := g.AddOrMergeBoundaryEdge(n-1, cfg.boundaryWeight, right); err != nil {
			return nil, fmt.Errorf("Chain: boundary at %d: %w", n-1, err)
		}
	}

	return g, nil
}
