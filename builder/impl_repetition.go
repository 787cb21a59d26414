// SPDX-License-Identifier: MIT
// Package: floodmatch/builder
//
// impl_repetition.go — RepetitionCode(d) fixture.
//
// Contract:
//   • d ≥ 2 (else ErrTooFewNodes); d ≤ mask width (else ErrTooManyEdges).
//   • Builds the matching graph of the distance-d bit-flip repetition code
//     from its parity check matrix: d data bits, d−1 checks; data bit j
//     flips checks j−1 and j, the end bits flip a single check each and
//     become boundary edges.
//   • Observable bit j reports data bit j, so a decode's mask is directly
//     comparable against the injected error vector.
//
// Determinism:
//   • The check matrix is a pure function of d.

package builder

import (
	"fmt"

	"github.com/katalvlaran/floodmatch/checkmatrix"
	"github.com/katalvlaran/floodmatch/obsmask"
	"github.com/katalvlaran/floodmatch/wgraph"
)

const minCodeDistance = 2

// RepetitionCode builds the weighted matching graph of the distance-d
// repetition code. Every data bit gets the same weight (WithWeight).
func RepetitionCode(d int, opts ...Option) (*wgraph.WeightedGraph, error) {
	h, err := RepetitionCodeCheckMatrix(d)
	if err != nil {
		return nil, err
	}
	cfg := resolve(opts)

	g, err := checkmatrix.FromDense(h, nil)
	if err != nil {
		return nil, fmt.Errorf("RepetitionCode: %w", err)
	}
	if cfg.edgeWeight == 1 {
		return g, nil
	}

	// Rebuild with the requested weight: column j is an edge or boundary
	// edge exactly as FromDense laid it out.
	g, err = wgraph.New(d-1, d)
	if err != nil {
		return nil, fmt.Errorf("RepetitionCode: %w", err)
	}
	for j := 0; j < d; j++ {
		obs, _ := obsmask.FromIndices([]int{j})
		switch {
		case j == 0:
			err = g.AddOrMergeBoundaryEdge(0, cfg.edgeWeight, obs)
		case j == d-1:
			err = g.AddOrMergeBoundaryEdge(d-2, cfg.edgeWeight, obs)
		default:
			err = g.AddOrMergeEdge(j-1, j, cfg.edgeWeight, obs)
		}
		if err != nil {
			return nil, fmt.Errorf("RepetitionCode: column %d: %w", j, err)
		}
	}

	return g, nil
}

// RepetitionCodeCheckMatrix returns the (d−1)×d parity check matrix of the
// distance-d repetition code.
func RepetitionCodeCheckMatrix(d int) ([][]uint8, error) {
	if d < minCodeDistance {
		return nil, fmt.Errorf("RepetitionCode: d=%d < min=%d: %w", d, minCodeDistance, ErrTooFewNodes)
	}
	if d > obsmask.MaxObservables {
		return nil, fmt.Errorf("RepetitionCode: %d observables: %w", d, ErrTooManyEdges)
	}

	h := make([][]uint8, d-1)
	for i := range h {
		h[i] = make([]uint8, d)
		h[i][i] = 1
		h[i][i+1] = 1
	}

	return h, nil
}
