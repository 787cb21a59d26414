package wgraph

import (
	"errors"

	"github.com/katalvlaran/floodmatch/obsmask"
)

var (
	// ErrInvalidProbability marks an error probability outside (0, 1).
	ErrInvalidProbability = errors.New("wgraph: probability must be in (0, 1)")

	// ErrNoEdges is returned when converting a graph without any edges.
	ErrNoEdges = errors.New("wgraph: graph has no edges")

	// ErrBadWeightBuckets marks a num_distinct_weights below 2.
	ErrBadWeightBuckets = errors.New("wgraph: need at least 2 distinct weight buckets")

	// ErrNonFiniteWeight marks a NaN or infinite edge weight.
	ErrNonFiniteWeight = errors.New("wgraph: edge weight must be finite")
)

// DefaultNumDistinctWeights is the discretization resolution used when the
// caller has no reason to pick another: weights scale to [0, 2^24).
const DefaultNumDistinctWeights = 1 << 24

// edge is one adjacency entry. to == boundaryTo encodes the boundary edge.
type edge struct {
	to     int
	weight float64
	obs    obsmask.Mask
}

const boundaryTo = -1
