package core

import "fmt"

// TentativeEventKind discriminates the two queued event shapes.
type TentativeEventKind uint8

const (
	// EventNeighborInteraction is a predicted edge collision, node
	// absorption, or boundary arrival.
	EventNeighborInteraction TentativeEventKind = iota
	// EventRegionShrink is a predicted shell peel, region vanish, or
	// blossom implosion.
	EventRegionShrink
)

// TentativeEvent is one entry of the flooder's priority queue. Events are
// never removed eagerly: invalidation marks them stale and the dispatcher
// discards stale entries on pop (lazy deletion, same discipline the
// shortest-path code uses for its decrease-key).
//
// Ordering is (Time, Seq): Seq is the monotone insertion number, which makes
// equal-time pops deterministic and is part of the decoder's reproducibility
// contract.
type TentativeEvent struct {
	Kind TentativeEventKind
	Time int64
	Seq  uint64

	// Stale marks an invalidated entry; flipped once, never cleared.
	Stale bool

	// Neighbor interaction payload: the edge (NodeA, EdgeIdxA). NodeB is
	// the far endpoint (nil for boundary) with EdgeIdxB its reverse slot.
	NodeA    *DetectorNode
	EdgeIdxA int
	NodeB    *DetectorNode
	EdgeIdxB int

	// Region shrink payload.
	Region    *GraphFillRegion
	RegionGen uint64
}

// Invalidate marks the event stale so the dispatcher skips it.
func (e *TentativeEvent) Invalidate() { e.Stale = true }

// MwpmEventKind discriminates the events the flooder emits to the matching
// manager.
type MwpmEventKind uint8

const (
	// EventNone is the terminal sentinel: no valid events remain.
	EventNone MwpmEventKind = iota
	// EventRegionHitRegion reports two distinct regions colliding at an edge.
	EventRegionHitRegion
	// EventRegionHitBoundary reports a region reaching the boundary.
	EventRegionHitBoundary
	// EventBlossomImplode reports a shrinking blossom retracting to its
	// children's boundary.
	EventBlossomImplode
)

// MwpmEvent is the flooder → manager message. Field usage by kind:
//
//	RegionHitRegion:   Region1, Region2, Edge (Region1's defect → Region2's).
//	RegionHitBoundary: Region1, Edge (defect → boundary).
//	BlossomImplode:    Region1 (the blossom), InChild, OutChild (the children
//	                   touched by the tree edges above and below it).
type MwpmEvent struct {
	Kind     MwpmEventKind
	Region1  *GraphFillRegion
	Region2  *GraphFillRegion
	Edge     CompressedEdge
	InChild  *GraphFillRegion
	OutChild *GraphFillRegion
}

// NoEvent is the terminal sentinel value.
var NoEvent = MwpmEvent{Kind: EventNone}

// String implements fmt.Stringer for log and failure messages.
func (e MwpmEvent) String() string {
	switch e.Kind {
	case EventNone:
		return "MwpmEvent{none}"
	case EventRegionHitRegion:
		return fmt.Sprintf("MwpmEvent{hit-region r%d↔r%d}", e.Region1.ID, e.Region2.ID)
	case EventRegionHitBoundary:
		return fmt.Sprintf("MwpmEvent{hit-boundary r%d}", e.Region1.ID)
	case EventBlossomImplode:
		return fmt.Sprintf("MwpmEvent{implode r%d}", e.Region1.ID)
	default:
		return fmt.Sprintf("MwpmEvent{kind=%d}", e.Kind)
	}
}
