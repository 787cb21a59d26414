package core

import "github.com/katalvlaran/floodmatch/obsmask"

// CompressedEdge summarizes a path between two detection-event nodes as a
// single logical edge: the two source defects and the XOR of all edge
// observables along the path. LocTo == nil encodes a path ending at the
// boundary. Compressed edges are what the matching manager reasons about;
// the underlying node-by-node paths are only reconstructed on demand by the
// search package.
type CompressedEdge struct {
	LocFrom *DetectorNode
	LocTo   *DetectorNode
	Obs     obsmask.Mask
}

// Reversed returns the same path walked the other way.
func (e CompressedEdge) Reversed() CompressedEdge {
	return CompressedEdge{LocFrom: e.LocTo, LocTo: e.LocFrom, Obs: e.Obs}
}

// MergedWith concatenates two paths sharing an interior endpoint
// (e.LocTo == other.LocFrom) into one compressed edge.
func (e CompressedEdge) MergedWith(other CompressedEdge) CompressedEdge {
	return CompressedEdge{LocFrom: e.LocFrom, LocTo: other.LocTo, Obs: e.Obs ^ other.Obs}
}

// ToBoundary reports whether the path ends at the boundary.
func (e CompressedEdge) ToBoundary() bool { return e.LocTo == nil }

// RegionEdge pairs a blossom child with the compressed edge leading to the
// next child around the blossom cycle.
type RegionEdge struct {
	Region *GraphFillRegion
	Edge   CompressedEdge
}

// Match records a region's matched partner. Region == nil with Valid true
// encodes a match to the boundary; Edge always connects the two source
// defects (or defect and boundary) with the full path observable mask.
type Match struct {
	Valid  bool
	Region *GraphFillRegion
	Edge   CompressedEdge
}

// GraphFillRegion is a growing, shrinking or frozen region of the flooded
// graph: either a primal region around a single detection event, or a
// blossom contracted from an odd cycle of regions.
//
// Ownership: regions live in a RegionArena; every other link (node owners,
// tree nodes, queued events) borrows. Lifecycle transitions are driven by
// the flooder (growth, absorption, shrink schedule) and the matching
// manager (tree membership, match assignment, blossom create/expand).
type GraphFillRegion struct {
	// ID and Gen identify this region's arena slot; Gen increments on free
	// so stale handles are detectable.
	ID  int
	Gen uint64

	// BlossomParent is the blossom directly containing this region, or nil
	// when the region is a top region.
	BlossomParent *GraphFillRegion

	// TreeNode is the alternating-tree node whose inner or outer slot holds
	// this region, or nil when the region is matched or blossom-internal.
	TreeNode *AltTreeNode

	// Radius is the region's own radius component. For a node inside the
	// region, coverage depth adds the frozen radii of the regions from the
	// node's owning region up to, but excluding, this one (the node's
	// WrappedRadius).
	Radius VaryingRadius

	// ShrinkEvent tracks the queued shrink event so it can be invalidated,
	// nil when none is scheduled.
	ShrinkEvent *TentativeEvent

	// Match is the region's matched partner, if any.
	Match Match

	// BlossomChildren is the odd child cycle, empty for primal regions.
	// Children[i].Edge connects child i's area to child i+1's (mod n).
	BlossomChildren []RegionEdge

	// ShellArea lists the nodes this region absorbed while it was the top
	// region, in absorption order (outermost last). Shrinking peels from
	// the tail.
	ShellArea []*DetectorNode
}

// Top follows the blossom-parent chain to the outermost region.
func (r *GraphFillRegion) Top() *GraphFillRegion {
	top := r
	for top.BlossomParent != nil {
		top = top.BlossomParent
	}

	return top
}

// IsBlossom reports whether the region is a contracted odd cycle.
func (r *GraphFillRegion) IsBlossom() bool { return len(r.BlossomChildren) > 0 }

// GrowthSign returns the region's current growth direction.
func (r *GraphFillRegion) GrowthSign() GrowthSign { return r.Radius.Slope }

// ChildOwning returns the direct blossom child of r whose subtree holds
// node n, or nil when n is in r's own shell (or not under r at all).
func (r *GraphFillRegion) ChildOwning(n *DetectorNode) *GraphFillRegion {
	if n == nil || n.OwningRegion == nil {
		return nil
	}
	for cur := n.OwningRegion; cur != nil; cur = cur.BlossomParent {
		if cur.BlossomParent == r {
			return cur
		}
	}

	return nil
}

// IterTotalArea visits every node covered by the region: its own shell plus
// all descendant blossom children's shells.
func (r *GraphFillRegion) IterTotalArea(fn func(*DetectorNode)) {
	for _, n := range r.ShellArea {
		fn(n)
	}
	for _, child := range r.BlossomChildren {
		child.Region.IterTotalArea(fn)
	}
}

// SetMatch records a mutual match between r and other via edge (oriented
// r → other). Pass other == nil for a boundary match.
func (r *GraphFillRegion) SetMatch(other *GraphFillRegion, edge CompressedEdge) {
	r.Match = Match{Valid: true, Region: other, Edge: edge}
	if other != nil {
		other.Match = Match{Valid: true, Region: r, Edge: edge.Reversed()}
	}
}

// ClearMatch removes the match on both sides.
func (r *GraphFillRegion) ClearMatch() {
	if r.Match.Valid && r.Match.Region != nil {
		r.Match.Region.Match = Match{}
	}
	r.Match = Match{}
}
