package flooder

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/floodmatch/core"
)

// GraphFlooder drives region growth over a single MatchingGraph. It owns the
// event queue, the global clock and the region arena; the matching layer
// steers it through CreateRegion, SetRegionGrowth, CreateBlossom and
// ShatterBlossom, and consumes its output through NextEvent.
//
// A flooder is single-threaded: no method may be called concurrently with
// another.
type GraphFlooder struct {
	graph *core.MatchingGraph
	arena *core.RegionArena

	time  int64
	seq   uint64
	queue eventQueue

	// touched records every node whose flood state was written this
	// session, so Reset restores O(touched) nodes instead of the whole
	// graph.
	touched []*core.DetectorNode
}

// New returns a flooder over g with a fresh region arena and clock at zero.
func New(g *core.MatchingGraph) *GraphFlooder {
	return &GraphFlooder{graph: g, arena: core.NewRegionArena()}
}

// Graph returns the underlying matching graph.
func (f *GraphFlooder) Graph() *core.MatchingGraph { return f.graph }

// Arena exposes the region arena (the matching layer iterates live regions
// during extraction).
func (f *GraphFlooder) Arena() *core.RegionArena { return f.arena }

// Time returns the current clock value in half-tick units.
func (f *GraphFlooder) Time() int64 { return f.time }

// Reset restores every touched node to the unflooded state, drops all queued
// events and frees all regions. The graph adjacency is untouched, so the
// flooder is immediately reusable for the next decode.
func (f *GraphFlooder) Reset() {
	for _, n := range f.touched {
		n.ResetFloodState()
	}
	f.touched = f.touched[:0]
	for i := range f.queue {
		f.queue[i] = nil
	}
	f.queue = f.queue[:0]
	f.time = 0
	f.seq = 0
	f.arena.Reset()
}

// CreateRegion starts a radius-zero growing region at node and schedules its
// expansion along every incident edge. The node must not be flooded already.
func (f *GraphFlooder) CreateRegion(node *core.DetectorNode) (*core.GraphFillRegion, error) {
	if node.OwningRegion != nil {
		return nil, fmt.Errorf("%w: node %d already flooded", core.ErrInconsistentState, node.Index)
	}

	region := f.arena.Alloc()
	region.Radius = core.NewVaryingRadius(0, core.Growing, f.time)
	node.OwningRegion = region
	node.ReachedFromSource = node
	region.ShellArea = append(region.ShellArea, node)
	f.touched = append(f.touched, node)

	f.rescheduleEventsAtNode(node)

	return region, nil
}

// SetRegionGrowth changes region's growth sign, preserving its current
// radius, and reschedules every affected edge collision and the region's
// shrink event.
func (f *GraphFlooder) SetRegionGrowth(region *core.GraphFillRegion, sign core.GrowthSign) {
	region.Radius = region.Radius.WithSlopeAt(sign, f.time)
	region.IterTotalArea(f.rescheduleEventsAtNode)
	f.updateShrinkEvent(region)
}

// CreateBlossom contracts an odd cycle of regions into a single growing
// blossom. Each child is frozen at its current radius, its frozen value is
// folded into the wrapped radius of every node it covers, and the new
// blossom takes over as the top region.
//
// cycle[i].Edge must connect child i's area to child i+1's (mod len).
func (f *GraphFlooder) CreateBlossom(cycle []core.RegionEdge) *core.GraphFillRegion {
	blossom := f.arena.Alloc()
	blossom.Radius = core.NewVaryingRadius(0, core.Growing, f.time)
	blossom.BlossomChildren = append(blossom.BlossomChildren, cycle...)

	for _, child := range cycle {
		r := child.Region
		r.Radius = r.Radius.WithSlopeAt(core.Frozen, f.time)
		if r.ShrinkEvent != nil {
			r.ShrinkEvent.Invalidate()
			r.ShrinkEvent = nil
		}
		r.BlossomParent = blossom
		frozen := r.Radius.Base
		r.IterTotalArea(func(n *core.DetectorNode) {
			n.WrappedRadius += frozen
		})
	}

	blossom.IterTotalArea(f.rescheduleEventsAtNode)

	return blossom
}

// ShatterBlossom expands an imploded blossom back into its children and
// frees it. The blossom must have retracted to radius zero with an empty
// shell; the caller re-links the children into the tree or matching and sets
// their growth afterwards.
func (f *GraphFlooder) ShatterBlossom(blossom *core.GraphFillRegion) error {
	if blossom.Radius.Value(f.time) != 0 || len(blossom.ShellArea) != 0 {
		return fmt.Errorf("%w: shatter of region %d at radius %d with %d shell nodes",
			core.ErrInconsistentState, blossom.ID, blossom.Radius.Value(f.time), len(blossom.ShellArea))
	}
	if blossom.ShrinkEvent != nil {
		blossom.ShrinkEvent.Invalidate()
		blossom.ShrinkEvent = nil
	}

	for _, child := range blossom.BlossomChildren {
		r := child.Region
		r.BlossomParent = nil
		frozen := r.Radius.Base
		r.IterTotalArea(func(n *core.DetectorNode) {
			n.WrappedRadius -= frozen
		})
	}
	children := blossom.BlossomChildren
	blossom.BlossomChildren = nil
	f.arena.Free(blossom)

	for _, child := range children {
		child.Region.IterTotalArea(f.rescheduleEventsAtNode)
	}

	return nil
}

// NextEvent advances the clock to the next valid event and returns the
// matching-layer event it produces. Absorptions, peels and internal-edge
// collisions are consumed silently. Returns NoEvent when the queue drains.
func (f *GraphFlooder) NextEvent() (core.MwpmEvent, error) {
	for f.queue.Len() > 0 {
		ev := heap.Pop(&f.queue).(*core.TentativeEvent)
		if !f.validate(ev) {
			continue
		}
		if ev.Time < f.time {
			return core.NoEvent, fmt.Errorf("%w: event at t=%d behind clock t=%d",
				core.ErrInconsistentState, ev.Time, f.time)
		}
		f.time = ev.Time

		var out core.MwpmEvent
		var err error
		switch ev.Kind {
		case core.EventNeighborInteraction:
			out = f.dispatchNeighborEvent(ev)
		case core.EventRegionShrink:
			out, err = f.dispatchShrinkEvent(ev)
		}
		if err != nil {
			return core.NoEvent, err
		}
		if out.Kind != core.EventNone {
			return out, nil
		}
	}

	return core.NoEvent, nil
}

// validate filters stale queue entries and, for live ones, detaches them
// from their schedule slots so a later invalidation cannot touch a popped
// event.
func (f *GraphFlooder) validate(ev *core.TentativeEvent) bool {
	if ev.Stale {
		return false
	}
	switch ev.Kind {
	case core.EventNeighborInteraction:
		if ev.NodeA.NeighborSchedules[ev.EdgeIdxA] != ev {
			return false
		}
		ev.NodeA.NeighborSchedules[ev.EdgeIdxA] = nil
		if ev.NodeB != nil {
			ev.NodeB.NeighborSchedules[ev.EdgeIdxB] = nil
		}

		return true
	case core.EventRegionShrink:
		if !f.arena.IsLive(ev.Region, ev.RegionGen) || ev.Region.ShrinkEvent != ev {
			return false
		}
		ev.Region.ShrinkEvent = nil

		return true
	default:
		return false
	}
}

// dispatchNeighborEvent classifies an edge collision against the current
// flood state. It returns NoEvent for absorptions and internal edges.
func (f *GraphFlooder) dispatchNeighborEvent(ev *core.TentativeEvent) core.MwpmEvent {
	a, b := ev.NodeA, ev.NodeB
	edgeObs := a.NeighborObservables[ev.EdgeIdxA]

	if b == nil {
		return core.MwpmEvent{
			Kind:    core.EventRegionHitBoundary,
			Region1: a.Top(),
			Edge: core.CompressedEdge{
				LocFrom: a.ReachedFromSource,
				Obs:     a.ObservablesCrossed ^ edgeObs,
			},
		}
	}

	topA, topB := a.Top(), b.Top()
	if topB == nil {
		f.absorbNode(topA, a, b, ev.EdgeIdxA)

		return core.NoEvent
	}
	if topA == topB {
		return core.NoEvent
	}

	return core.MwpmEvent{
		Kind:    core.EventRegionHitRegion,
		Region1: topA,
		Region2: topB,
		Edge: core.CompressedEdge{
			LocFrom: a.ReachedFromSource,
			LocTo:   b.ReachedFromSource,
			Obs:     a.ObservablesCrossed ^ edgeObs ^ b.ObservablesCrossed,
		},
	}
}

// absorbNode floods node via the edge from crossing (adjacency slot edgeIdx)
// and reschedules the node's edges under its new owner.
func (f *GraphFlooder) absorbNode(region *core.GraphFillRegion, crossing, node *core.DetectorNode, edgeIdx int) {
	node.OwningRegion = region
	node.ReachedFromSource = crossing.ReachedFromSource
	node.ObservablesCrossed = crossing.ObservablesCrossed ^ crossing.NeighborObservables[edgeIdx]
	node.DistanceFromSource = crossing.DistanceFromSource + crossing.NeighborWeights[edgeIdx]
	node.WrappedRadius = crossing.WrappedRadius
	region.ShellArea = append(region.ShellArea, node)
	f.touched = append(f.touched, node)

	f.rescheduleEventsAtNode(node)
}

// dispatchShrinkEvent handles a region whose frontier just hit a shrink
// deadline: peel the outermost shell node, or emit the implosion event once
// the shell is exhausted.
func (f *GraphFlooder) dispatchShrinkEvent(ev *core.TentativeEvent) (core.MwpmEvent, error) {
	region := ev.Region
	shell := len(region.ShellArea)

	if shell > 1 || (shell == 1 && region.IsBlossom()) {
		f.peelShellNode(region)
		f.updateShrinkEvent(region)

		return core.NoEvent, nil
	}

	if region.IsBlossom() {
		node := region.TreeNode
		if node == nil || node.Parent == nil {
			return core.NoEvent, fmt.Errorf("%w: imploding blossom %d is not an inner tree region",
				core.ErrInconsistentState, region.ID)
		}

		return core.MwpmEvent{
			Kind:     core.EventBlossomImplode,
			Region1:  region,
			InChild:  region.ChildOwning(node.ParentEdge.LocTo),
			OutChild: region.ChildOwning(node.InnerToOuterEdge.LocFrom),
		}, nil
	}

	// A primal region retracted to its source: fuse the outer regions
	// above and below it by reporting their collision through the
	// zero-radius middle.
	node := region.TreeNode
	if node == nil || node.Parent == nil {
		return core.NoEvent, fmt.Errorf("%w: degenerate implosion of region %d outside a tree",
			core.ErrInconsistentState, region.ID)
	}

	return core.MwpmEvent{
		Kind:    core.EventRegionHitRegion,
		Region1: node.Parent.Outer,
		Region2: node.Outer,
		Edge:    node.ParentEdge.MergedWith(node.InnerToOuterEdge),
	}, nil
}

// peelShellNode evicts the most recently absorbed node of a shrinking
// region, returning it to the unflooded state and letting neighboring
// regions re-plan their expansion into it.
func (f *GraphFlooder) peelShellNode(region *core.GraphFillRegion) {
	last := len(region.ShellArea) - 1
	node := region.ShellArea[last]
	region.ShellArea[last] = nil
	region.ShellArea = region.ShellArea[:last]

	for i := range node.Neighbors {
		f.invalidateEdgeSchedule(node, i)
	}
	node.ResetFloodState()

	for i, nb := range node.Neighbors {
		if nb != nil && nb.OwningRegion != nil {
			f.rescheduleEdge(nb, node.NeighborBack[i])
		}
	}
}

// updateShrinkEvent re-derives the shrink deadline of region: the moment its
// outermost shell node's reach hits zero, or, with an empty shell, the
// moment its own radius does. No event is queued unless the region is
// shrinking.
func (f *GraphFlooder) updateShrinkEvent(region *core.GraphFillRegion) {
	if region.ShrinkEvent != nil {
		region.ShrinkEvent.Invalidate()
		region.ShrinkEvent = nil
	}
	if region.GrowthSign() != core.Shrinking {
		return
	}

	var t int64
	var ok bool
	if n := len(region.ShellArea); n > 0 {
		r, live := region.ShellArea[n-1].ReachRadius()
		if !live {
			return
		}
		t, ok = r.TimeOfZero()
	} else {
		t, ok = region.Radius.TimeOfZero()
	}
	if !ok {
		return
	}

	ev := &core.TentativeEvent{
		Kind:      core.EventRegionShrink,
		Time:      t,
		Seq:       f.seq,
		Region:    region,
		RegionGen: region.Gen,
	}
	f.seq++
	region.ShrinkEvent = ev
	heap.Push(&f.queue, ev)
}

// rescheduleEventsAtNode re-derives the tentative collision on every edge
// incident to node.
func (f *GraphFlooder) rescheduleEventsAtNode(node *core.DetectorNode) {
	for i := range node.Neighbors {
		f.rescheduleEdge(node, i)
	}
}

// rescheduleEdge invalidates the schedule slot of edge (node, i) and queues
// a fresh collision prediction from the two endpoints' current radii, when
// one exists.
func (f *GraphFlooder) rescheduleEdge(node *core.DetectorNode, i int) {
	f.invalidateEdgeSchedule(node, i)

	t, ok := f.nextEventAtEdge(node, i)
	if !ok {
		return
	}

	nb := node.Neighbors[i]
	ev := &core.TentativeEvent{
		Kind:     core.EventNeighborInteraction,
		Time:     t,
		Seq:      f.seq,
		NodeA:    node,
		EdgeIdxA: i,
		NodeB:    nb,
		EdgeIdxB: node.NeighborBack[i],
	}
	f.seq++
	node.NeighborSchedules[i] = ev
	if nb != nil {
		nb.NeighborSchedules[node.NeighborBack[i]] = ev
	}
	heap.Push(&f.queue, ev)
}

// invalidateEdgeSchedule marks the edge's queued event stale and clears the
// schedule slot at both endpoints.
func (f *GraphFlooder) invalidateEdgeSchedule(node *core.DetectorNode, i int) {
	ev := node.NeighborSchedules[i]
	if ev == nil {
		return
	}
	ev.Invalidate()
	node.NeighborSchedules[i] = nil
	if nb := node.Neighbors[i]; nb != nil {
		nb.NeighborSchedules[node.NeighborBack[i]] = nil
	}
}

// nextEventAtEdge computes the collision time on edge (node, i) from the
// current radii, or ok=false when no finite collision is pending. The
// prediction uses only the flooded side(s); an edge whose two endpoints
// share a top region is internal and never collides.
func (f *GraphFlooder) nextEventAtEdge(node *core.DetectorNode, i int) (int64, bool) {
	ra, flooded := node.ReachRadius()
	if !flooded {
		return 0, false
	}
	w := node.NeighborWeights[i]

	nb := node.Neighbors[i]
	if nb == nil {
		if ra.Slope != core.Growing {
			return 0, false
		}

		return ra.TimeOfValue(w)
	}

	rb, nbFlooded := nb.ReachRadius()
	if !nbFlooded {
		if ra.Slope != core.Growing {
			return 0, false
		}

		return ra.TimeOfValue(w)
	}

	if node.Top() == nb.Top() {
		return 0, false
	}
	rate := int64(ra.Slope) + int64(rb.Slope)
	if rate <= 0 {
		return 0, false
	}
	gap := w - ra.Value(f.time) - rb.Value(f.time)
	if gap < 0 {
		gap = 0
	}

	return f.time + gap/rate, true
}
