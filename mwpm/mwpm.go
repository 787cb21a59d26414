package mwpm

import (
	"fmt"

	"github.com/katalvlaran/floodmatch/core"
	"github.com/katalvlaran/floodmatch/flooder"
)

// Manager owns the alternating-tree forest and reacts to flooder events.
// Tree invariants: roots hold a single growing (outer) region; every other
// node pairs a shrinking (inner) region with a growing (outer) one; matched
// regions are frozen and outside the forest.
type Manager struct {
	fl *flooder.GraphFlooder
}

// NewManager returns a manager steering fl.
func NewManager(fl *flooder.GraphFlooder) *Manager {
	return &Manager{fl: fl}
}

// Flooder returns the driven flooder.
func (m *Manager) Flooder() *flooder.GraphFlooder { return m.fl }

// AddDetectionEvent starts a new one-node tree around a defect.
func (m *Manager) AddDetectionEvent(node *core.DetectorNode) error {
	region, err := m.fl.CreateRegion(node)
	if err != nil {
		return err
	}
	core.NewAltTreeRoot(region)

	return nil
}

// ProcessEvent applies one flooder event to the forest.
func (m *Manager) ProcessEvent(ev core.MwpmEvent) error {
	switch ev.Kind {
	case core.EventRegionHitRegion:
		return m.handleRegionHitRegion(ev.Region1, ev.Region2, ev.Edge)
	case core.EventRegionHitBoundary:
		return m.handleRegionHitBoundary(ev.Region1, ev.Edge)
	case core.EventBlossomImplode:
		return m.handleBlossomImplode(ev.Region1, ev.InChild, ev.OutChild)
	default:
		return fmt.Errorf("%w: unhandled event %s", core.ErrInconsistentState, ev)
	}
}

// handleRegionHitRegion dispatches a collision between two distinct top
// regions. At least one side is a growing tree region; the other is either
// another tree region (augment or blossom) or a frozen matched region
// (tree grow, or augment through its boundary match).
func (m *Manager) handleRegionHitRegion(r1, r2 *core.GraphFillRegion, edge core.CompressedEdge) error {
	if r1.TreeNode == nil {
		r1, r2 = r2, r1
		edge = edge.Reversed()
	}
	n1 := r1.TreeNode
	if n1 == nil {
		return fmt.Errorf("%w: collision r%d↔r%d with neither region in a tree",
			core.ErrInconsistentState, r1.ID, r2.ID)
	}

	if n2 := r2.TreeNode; n2 != nil {
		if n1.Root() == n2.Root() {
			m.formBlossom(n1, n2, edge)

			return nil
		}
		m.augmentTrees(n1, n2, edge)

		return nil
	}

	if !r2.Match.Valid {
		return fmt.Errorf("%w: collision with region %d which is neither in a tree nor matched",
			core.ErrInconsistentState, r2.ID)
	}
	if r2.Match.Region == nil {
		// The far region holds a boundary match; stealing it augments the
		// whole tree through r2.
		r2.ClearMatch()
		n1.BecomeRoot()
		r1.SetMatch(r2, edge)
		m.dissolveTree(n1)

		return nil
	}
	m.growTree(n1, r2, edge)

	return nil
}

// handleRegionHitBoundary augments the region's tree against the boundary.
func (m *Manager) handleRegionHitBoundary(region *core.GraphFillRegion, edge core.CompressedEdge) error {
	node := region.TreeNode
	if node == nil {
		return fmt.Errorf("%w: boundary hit by region %d outside any tree",
			core.ErrInconsistentState, region.ID)
	}
	node.BecomeRoot()
	region.SetMatch(nil, edge)
	m.dissolveTree(node)

	return nil
}

// augmentTrees joins two trees through the colliding edge and dissolves both
// into matched pairs.
func (m *Manager) augmentTrees(n1, n2 *core.AltTreeNode, edge core.CompressedEdge) {
	n1.BecomeRoot()
	n2.BecomeRoot()
	n1.Outer.SetMatch(n2.Outer, edge)
	m.dissolveTree(n1)
	m.dissolveTree(n2)
}

// dissolveTree pairs every remaining (inner, outer) couple of the tree into
// the matching, detaches all regions from the forest and freezes them. The
// root's outer region must already hold its match.
func (m *Manager) dissolveTree(root *core.AltTreeNode) {
	root.Walk(func(n *core.AltTreeNode) {
		if n.Inner != nil {
			n.Inner.SetMatch(n.Outer, n.InnerToOuterEdge)
		}
	})
	root.Walk(func(n *core.AltTreeNode) {
		if n.Inner != nil {
			n.Inner.TreeNode = nil
			m.fl.SetRegionGrowth(n.Inner, core.Frozen)
		}
		n.Outer.TreeNode = nil
		m.fl.SetRegionGrowth(n.Outer, core.Frozen)
	})
}

// growTree adopts the matched pair (inner, inner's partner) below n1: the
// hit region starts shrinking, its partner starts growing as the new leaf.
func (m *Manager) growTree(n1 *core.AltTreeNode, inner *core.GraphFillRegion, edge core.CompressedEdge) {
	outer := inner.Match.Region
	matchEdge := inner.Match.Edge
	inner.ClearMatch()

	child := &core.AltTreeNode{
		Inner:            inner,
		Outer:            outer,
		InnerToOuterEdge: matchEdge,
	}
	inner.TreeNode = child
	outer.TreeNode = child
	n1.AddChild(child, edge)

	m.fl.SetRegionGrowth(inner, core.Shrinking)
	m.fl.SetRegionGrowth(outer, core.Growing)
}

// formBlossom contracts the odd cycle closed by an in-tree collision: the
// two branch paths up to the common ancestor plus the colliding edge. The
// new blossom takes the ancestor's place in the tree and keeps growing.
func (m *Manager) formBlossom(n1, n2 *core.AltTreeNode, edge core.CompressedEdge) {
	ancestor := n1.FindCommonAncestor(n2)

	cycle := []core.RegionEdge{{Region: n1.Outer, Edge: edge}}
	for n := n2; n != ancestor; n = n.Parent {
		cycle = append(cycle,
			core.RegionEdge{Region: n.Outer, Edge: n.InnerToOuterEdge.Reversed()},
			core.RegionEdge{Region: n.Inner, Edge: n.ParentEdge.Reversed()},
		)
	}
	if n1 != ancestor {
		path := n1.PathTo(ancestor)
		cycle = append(cycle, core.RegionEdge{Region: ancestor.Outer, Edge: path[len(path)-2].ParentEdge})
		for i := len(path) - 2; i >= 1; i-- {
			n := path[i]
			cycle = append(cycle,
				core.RegionEdge{Region: n.Inner, Edge: n.InnerToOuterEdge},
				core.RegionEdge{Region: n.Outer, Edge: path[i-1].ParentEdge},
			)
		}
		cycle = append(cycle, core.RegionEdge{Region: n1.Inner, Edge: n1.InnerToOuterEdge})
	}

	cycleNodes := n1.PathTo(ancestor)
	for n := n2; n != ancestor; n = n.Parent {
		cycleNodes = append(cycleNodes, n)
	}
	inCycle := make(map[*core.AltTreeNode]struct{}, len(cycleNodes))
	for _, n := range cycleNodes {
		inCycle[n] = struct{}{}
	}

	blossom := m.fl.CreateBlossom(cycle)
	bnode := &core.AltTreeNode{
		Inner:            ancestor.Inner,
		InnerToOuterEdge: ancestor.InnerToOuterEdge,
		Outer:            blossom,
	}
	blossom.TreeNode = bnode
	if bnode.Inner != nil {
		bnode.Inner.TreeNode = bnode
	}

	// External children of cycle nodes keep their subtrees; their parent
	// edges still end at defects now covered by the blossom.
	for _, cn := range cycleNodes {
		for _, child := range append([]*core.AltTreeNode(nil), cn.Children...) {
			if _, internal := inCycle[child]; internal {
				continue
			}
			pe := child.ParentEdge
			cn.RemoveChild(child)
			bnode.AddChild(child, pe)
		}
	}
	if parent := ancestor.Parent; parent != nil {
		pe := ancestor.ParentEdge
		parent.RemoveChild(ancestor)
		parent.AddChild(bnode, pe)
	}

	for _, ce := range cycle {
		ce.Region.TreeNode = nil
	}
}

// handleBlossomImplode expands a shrunken inner blossom back into its
// children. The odd arc between the children touched by the tree edges
// above and below rejoins the tree with alternating growth; the even
// remainder pairs off into matches.
func (m *Manager) handleBlossomImplode(blossom, inChild, outChild *core.GraphFillRegion) error {
	node := blossom.TreeNode
	if node == nil || node.Parent == nil || inChild == nil || outChild == nil {
		return fmt.Errorf("%w: implosion of region %d without tree context",
			core.ErrInconsistentState, blossom.ID)
	}
	parent := node.Parent
	parentEdge := node.ParentEdge
	innerToOuter := node.InnerToOuterEdge
	outer := node.Outer
	children := append([]core.RegionEdge(nil), blossom.BlossomChildren...)
	grandchildren := append([]*core.AltTreeNode(nil), node.Children...)

	if err := m.fl.ShatterBlossom(blossom); err != nil {
		return err
	}

	n := len(children)
	idx := func(r *core.GraphFillRegion) int {
		for i, ce := range children {
			if ce.Region == r {
				return i
			}
		}

		return -1
	}
	iIn, iOut := idx(inChild), idx(outChild)
	if iIn < 0 || iOut < 0 {
		return fmt.Errorf("%w: implosion children not found in blossom %d cycle",
			core.ErrInconsistentState, blossom.ID)
	}

	// Walk the cycle in whichever direction gives an odd-length arc from
	// inChild to outChild; that arc alternates inner/outer on the tree path.
	forward := (iOut-iIn+n)%n + 1
	arc := make([]core.RegionEdge, 0, n)
	if forward%2 == 1 {
		for k := 0; k < forward; k++ {
			i := (iIn + k) % n
			arc = append(arc, core.RegionEdge{Region: children[i].Region, Edge: children[i].Edge})
		}
	} else {
		backward := n - forward + 2
		for k := 0; k < backward; k++ {
			i := (iIn - k + n) % n
			prev := (i - 1 + n) % n
			arc = append(arc, core.RegionEdge{Region: children[i].Region, Edge: children[prev].Edge.Reversed()})
		}
	}
	// arc[k].Edge leads from arc[k] to arc[k+1]; the last entry's edge is
	// unused (outChild connects onward via the old inner-to-outer edge).

	parent.RemoveChild(node)
	attach := parent
	attachEdge := parentEdge
	for k := 0; k+1 < len(arc); k += 2 {
		tn := &core.AltTreeNode{
			Inner:            arc[k].Region,
			Outer:            arc[k+1].Region,
			InnerToOuterEdge: arc[k].Edge,
		}
		tn.Inner.TreeNode = tn
		tn.Outer.TreeNode = tn
		attach.AddChild(tn, attachEdge)
		attach = tn
		attachEdge = arc[k+1].Edge
	}
	last := &core.AltTreeNode{
		Inner:            arc[len(arc)-1].Region,
		Outer:            outer,
		InnerToOuterEdge: innerToOuter,
	}
	last.Inner.TreeNode = last
	outer.TreeNode = last
	attach.AddChild(last, attachEdge)
	for _, gc := range grandchildren {
		last.AddChild(gc, gc.ParentEdge)
	}

	// The complementary even arc leaves the tree as matched pairs.
	rest := n - len(arc)
	start := (iIn + len(arc)) % n
	if forward%2 != 1 {
		start = (iIn + 1) % n
	}
	for k := 0; k < rest; k += 2 {
		i := (start + k) % n
		j := (start + k + 1) % n
		children[i].Region.SetMatch(children[j].Region, children[i].Edge)
	}

	for k := 0; k+1 < len(arc); k += 2 {
		m.fl.SetRegionGrowth(arc[k].Region, core.Shrinking)
		m.fl.SetRegionGrowth(arc[k+1].Region, core.Growing)
	}
	m.fl.SetRegionGrowth(arc[len(arc)-1].Region, core.Shrinking)

	return nil
}
