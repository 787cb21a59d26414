package checkmatrix

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/floodmatch/obsmask"
	"github.com/katalvlaran/floodmatch/wgraph"
)

var (
	// ErrBadColumnWeight marks a check matrix column touching zero or more
	// than two checks.
	ErrBadColumnWeight = errors.New("checkmatrix: column must touch 1 or 2 checks")

	// ErrRaggedMatrix marks rows of unequal length.
	ErrRaggedMatrix = errors.New("checkmatrix: rows must all have the same length")

	// ErrDimensionMismatch marks a probability vector whose length differs
	// from the column count.
	ErrDimensionMismatch = errors.New("checkmatrix: probabilities must have one entry per column")
)

// FromDense converts a dense binary check matrix into a weighted graph with
// one node per row. probs gives each column's error probability; pass nil
// for uniform unit weights. Column j is assigned observable bit j, so the
// column count is capped at obsmask.MaxObservables.
func FromDense(h [][]uint8, probs []float64) (*wgraph.WeightedGraph, error) {
	numChecks := len(h)
	numCols := 0
	if numChecks > 0 {
		numCols = len(h[0])
	}
	for r, row := range h {
		if len(row) != numCols {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrRaggedMatrix, r, len(row), numCols)
		}
	}
	if probs != nil && len(probs) != numCols {
		return nil, fmt.Errorf("%w: got %d probabilities for %d columns", ErrDimensionMismatch, len(probs), numCols)
	}

	g, err := wgraph.New(numChecks, numCols)
	if err != nil {
		return nil, err
	}

	for j := 0; j < numCols; j++ {
		var touched []int
		for i := 0; i < numChecks; i++ {
			if h[i][j]%2 == 1 {
				touched = append(touched, i)
			}
		}

		weight := 1.0
		if probs != nil {
			weight, err = wgraph.WeightFromProbability(probs[j])
			if err != nil {
				return nil, fmt.Errorf("column %d: %w", j, err)
			}
		}
		obs, err := obsmask.FromIndices([]int{j})
		if err != nil {
			return nil, err
		}

		switch len(touched) {
		case 1:
			err = g.AddOrMergeBoundaryEdge(touched[0], weight, obs)
		case 2:
			err = g.AddOrMergeEdge(touched[0], touched[1], weight, obs)
		default:
			return nil, fmt.Errorf("%w: column %d touches %d", ErrBadColumnWeight, j, len(touched))
		}
		if err != nil {
			return nil, err
		}
	}

	return g, nil
}

// SyndromeOf applies the check matrix to an error vector, returning the
// indices of unsatisfied checks. Useful for round-trip tests: decode the
// syndrome of a known error and compare observable masks.
func SyndromeOf(h [][]uint8, errVec []uint8) ([]int, error) {
	if len(h) == 0 {
		return nil, nil
	}
	if len(errVec) != len(h[0]) {
		return nil, fmt.Errorf("%w: error vector length %d for %d columns", ErrDimensionMismatch, len(errVec), len(h[0]))
	}

	var syndrome []int
	for i, row := range h {
		var parity uint8
		for j, v := range row {
			parity ^= v & errVec[j] & 1
		}
		if parity == 1 {
			syndrome = append(syndrome, i)
		}
	}

	return syndrome, nil
}
