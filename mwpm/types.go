package mwpm

import (
	"errors"

	"github.com/katalvlaran/floodmatch/obsmask"
)

var (
	// ErrGraphNotInitialized is returned by Decode on a graph with no edges.
	ErrGraphNotInitialized = errors.New("mwpm: graph has no edges")

	// ErrNoPerfectMatching is returned when the event queue drains with
	// unmatched detection events left over (an odd number of defects with
	// no boundary any of them can reach).
	ErrNoPerfectMatching = errors.New("mwpm: detection events cannot be perfectly matched")
)

// MatchedPair is one link of the final matching: two detection event node
// indices, or one index and the boundary. Obs is the XOR of edge observables
// along the matched path.
type MatchedPair struct {
	Defect1 int
	Defect2 int // BoundaryDefect when matched to the boundary
	Obs     obsmask.Mask
}

// BoundaryDefect is the Defect2 value of a boundary match.
const BoundaryDefect = -1
