package core

import (
	"fmt"

	"github.com/katalvlaran/floodmatch/obsmask"
)

// boundaryBack is the reverse-index placeholder for boundary edges, which
// have no far endpoint and therefore no reverse slot.
const boundaryBack = -1

// DetectorNode is one vertex of the matching graph: the static adjacency
// built once at construction, plus the per-decode flooding state.
//
// Adjacency is stored as parallel slices (neighbor, weight, observables,
// reverse index, schedule slot) so the flooder's hot loop walks flat arrays.
// A nil entry in Neighbors is the boundary sentinel; a node carries at most
// one boundary edge.
type DetectorNode struct {
	// Index is this node's position in MatchingGraph.Nodes.
	Index int

	// Neighbors holds the far endpoint of each incident edge, nil meaning
	// the virtual boundary.
	Neighbors []*DetectorNode

	// NeighborWeights holds each edge's weight in half-ticks (2× the weight
	// passed to AddEdge), parallel to Neighbors.
	NeighborWeights []int64

	// NeighborObservables holds each edge's observable mask, parallel to
	// Neighbors.
	NeighborObservables []obsmask.Mask

	// NeighborBack[i] is the index of the reverse edge in Neighbors[i]'s own
	// adjacency, or boundaryBack for the boundary edge. It lets the flooder
	// address the shared per-edge schedule slot from either endpoint.
	NeighborBack []int

	// NeighborSchedules[i] is the tentative event currently scheduled for
	// edge i, shared with the far endpoint's slot, or nil. Invalidation
	// marks the event stale and clears both slots.
	NeighborSchedules []*TentativeEvent

	// OwningRegion is the region whose shell directly holds this node, or
	// nil while the node is unflooded. The region actually covering the
	// node is OwningRegion.Top().
	OwningRegion *GraphFillRegion

	// ReachedFromSource is the detection-event node whose flood first
	// entered this node.
	ReachedFromSource *DetectorNode

	// ObservablesCrossed is the XOR of edge observables along the flood
	// path from ReachedFromSource to this node.
	ObservablesCrossed obsmask.Mask

	// DistanceFromSource is the cumulative half-tick weight along that path.
	DistanceFromSource int64

	// WrappedRadius is the sum of the frozen radii of every region from the
	// node's owning region up to, but excluding, the top region, cached so
	// reach computations stay O(1).
	WrappedRadius int64
}

// Top returns the outermost region covering this node, or nil when the node
// is unflooded.
func (n *DetectorNode) Top() *GraphFillRegion {
	if n.OwningRegion == nil {
		return nil
	}

	return n.OwningRegion.Top()
}

// ReachAt returns how far past this node its covering region has flooded at
// time t: top radius + wrapped radius − distance from source. Negative reach
// means the node is past the region frontier, which the scheduler prevents.
func (n *DetectorNode) ReachAt(t int64) int64 {
	top := n.Top()
	if top == nil {
		return 0
	}

	return top.Radius.Value(t) + n.WrappedRadius - n.DistanceFromSource
}

// ReachRadius returns the node's reach as a VaryingRadius (the top region's
// radius law shifted by the node's wrapped radius and source distance).
func (n *DetectorNode) ReachRadius() (VaryingRadius, bool) {
	top := n.Top()
	if top == nil {
		return VaryingRadius{}, false
	}
	r := top.Radius
	r.Base += n.WrappedRadius - n.DistanceFromSource

	return r, true
}

// HasBoundaryEdge reports whether the node already carries its (single
// permitted) boundary edge, and at which adjacency slot.
func (n *DetectorNode) HasBoundaryEdge() (int, bool) {
	for i, nb := range n.Neighbors {
		if nb == nil {
			return i, true
		}
	}

	return 0, false
}

// ResetFloodState clears the per-decode fields, returning the node to the
// unflooded state. Adjacency is untouched.
func (n *DetectorNode) ResetFloodState() {
	n.OwningRegion = nil
	n.ReachedFromSource = nil
	n.ObservablesCrossed = 0
	n.DistanceFromSource = 0
	n.WrappedRadius = 0
	for i := range n.NeighborSchedules {
		n.NeighborSchedules[i] = nil
	}
}

// MatchingGraph is the static weighted graph the decoder runs on. Nodes and
// edges are fixed after construction; all mutable flooding state lives in
// the DetectorNode runtime fields and is session-local.
type MatchingGraph struct {
	// Nodes is the fixed node sequence. Indexed by detector id.
	Nodes []DetectorNode

	// NumObservables is the width of the observable masks, ≤ obsmask.MaxObservables.
	NumObservables int

	// NormalisingConstant is the discretization scale recorded by the
	// weight-conversion layer. Opaque to the core.
	NormalisingConstant float64

	// NegativeWeightObservables is XORed into every decode result, absorbing
	// edges whose input weight was negative.
	NegativeWeightObservables obsmask.Mask

	// NegativeWeightDetectionEvents lists nodes whose detection state must
	// be flipped before decoding, for the same reason.
	NegativeWeightDetectionEvents []int

	numEdges int
}

// NewMatchingGraph allocates a graph with numNodes detector nodes and
// numObservables observables and no edges.
func NewMatchingGraph(numNodes, numObservables int) (*MatchingGraph, error) {
	if numNodes < 0 {
		return nil, fmt.Errorf("%w: num_nodes=%d", ErrInvalidNodeIndex, numNodes)
	}
	if numObservables < 0 || numObservables > obsmask.MaxObservables {
		return nil, fmt.Errorf("%w: num_observables=%d", ErrTooManyObservables, numObservables)
	}
	g := &MatchingGraph{
		Nodes:          make([]DetectorNode, numNodes),
		NumObservables: numObservables,
	}
	for i := range g.Nodes {
		g.Nodes[i].Index = i
	}

	return g, nil
}

// NumNodes returns the number of detector nodes.
func (g *MatchingGraph) NumNodes() int { return len(g.Nodes) }

// NumEdges returns the number of edges added so far, boundary edges included.
func (g *MatchingGraph) NumEdges() int { return g.numEdges }

// AddEdge appends an undirected edge u↔v of the given weight and observable
// mask to both adjacency lists. Weight must be non-negative; it is stored
// doubled (see the package comment on half-tick units).
func (g *MatchingGraph) AddEdge(u, v int, weight int64, obs obsmask.Mask) error {
	if u < 0 || u >= len(g.Nodes) {
		return fmt.Errorf("%w: u=%d, num_nodes=%d", ErrInvalidNodeIndex, u, len(g.Nodes))
	}
	if v < 0 || v >= len(g.Nodes) {
		return fmt.Errorf("%w: v=%d, num_nodes=%d", ErrInvalidNodeIndex, v, len(g.Nodes))
	}
	if u == v {
		return fmt.Errorf("%w: u=v=%d", ErrSelfLoop, u)
	}
	if weight < 0 {
		return fmt.Errorf("%w: edge %d↔%d weight=%d", ErrNegativeWeight, u, v, weight)
	}

	nu, nv := &g.Nodes[u], &g.Nodes[v]
	iu, iv := len(nu.Neighbors), len(nv.Neighbors)
	half := weight * 2

	nu.Neighbors = append(nu.Neighbors, nv)
	nu.NeighborWeights = append(nu.NeighborWeights, half)
	nu.NeighborObservables = append(nu.NeighborObservables, obs)
	nu.NeighborBack = append(nu.NeighborBack, iv)
	nu.NeighborSchedules = append(nu.NeighborSchedules, nil)

	nv.Neighbors = append(nv.Neighbors, nu)
	nv.NeighborWeights = append(nv.NeighborWeights, half)
	nv.NeighborObservables = append(nv.NeighborObservables, obs)
	nv.NeighborBack = append(nv.NeighborBack, iu)
	nv.NeighborSchedules = append(nv.NeighborSchedules, nil)

	g.numEdges++

	return nil
}

// AddBoundaryEdge attaches the boundary edge of node u. A node carries at
// most one: a second call overwrites the first in place. (Merging of
// repeated boundary mechanisms happens in the float-weight layer before
// discretization; by the time weights are integers there is exactly one
// number left to keep.)
func (g *MatchingGraph) AddBoundaryEdge(u int, weight int64, obs obsmask.Mask) error {
	if u < 0 || u >= len(g.Nodes) {
		return fmt.Errorf("%w: u=%d, num_nodes=%d", ErrInvalidNodeIndex, u, len(g.Nodes))
	}
	if weight < 0 {
		return fmt.Errorf("%w: boundary edge at %d weight=%d", ErrNegativeWeight, u, weight)
	}

	nu := &g.Nodes[u]
	half := weight * 2
	if i, ok := nu.HasBoundaryEdge(); ok {
		nu.NeighborWeights[i] = half
		nu.NeighborObservables[i] = obs

		return nil
	}

	nu.Neighbors = append(nu.Neighbors, nil)
	nu.NeighborWeights = append(nu.NeighborWeights, half)
	nu.NeighborObservables = append(nu.NeighborObservables, obs)
	nu.NeighborBack = append(nu.NeighborBack, boundaryBack)
	nu.NeighborSchedules = append(nu.NeighborSchedules, nil)
	g.numEdges++

	return nil
}
