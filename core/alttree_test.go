package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/floodmatch/core"
)

// chainTree builds root ── n1 ── n2 where each non-root node holds an
// (inner, outer) pair of freshly allocated regions.
func chainTree(arena *core.RegionArena) (root, n1, n2 *core.AltTreeNode) {
	root = core.NewAltTreeRoot(arena.Alloc())

	n1 = &core.AltTreeNode{Inner: arena.Alloc(), Outer: arena.Alloc()}
	n1.Inner.TreeNode = n1
	n1.Outer.TreeNode = n1
	root.AddChild(n1, core.CompressedEdge{})

	n2 = &core.AltTreeNode{Inner: arena.Alloc(), Outer: arena.Alloc()}
	n2.Inner.TreeNode = n2
	n2.Outer.TreeNode = n2
	n1.AddChild(n2, core.CompressedEdge{})

	return root, n1, n2
}

func TestAltTreeNode_AddRemoveChild(t *testing.T) {
	arena := core.NewRegionArena()
	root, n1, n2 := chainTree(arena)

	assert.True(t, root.IsRoot())
	assert.False(t, n1.IsRoot())
	assert.Same(t, root, n2.Root())
	assert.Equal(t, 3, root.TreeSize())

	n1.RemoveChild(n2)
	assert.Nil(t, n2.Parent)
	assert.Empty(t, n1.Children)
	assert.Equal(t, 2, root.TreeSize())
	assert.Same(t, n2, n2.Root(), "a removed child roots its own subtree")
}

func TestAltTreeNode_Walk(t *testing.T) {
	arena := core.NewRegionArena()
	root, n1, n2 := chainTree(arena)

	var order []*core.AltTreeNode
	root.Walk(func(n *core.AltTreeNode) { order = append(order, n) })
	assert.Equal(t, []*core.AltTreeNode{root, n1, n2}, order)
}

func TestAltTreeNode_FindCommonAncestor(t *testing.T) {
	arena := core.NewRegionArena()
	root, n1, _ := chainTree(arena)

	other := &core.AltTreeNode{Inner: arena.Alloc(), Outer: arena.Alloc()}
	root.AddChild(other, core.CompressedEdge{})

	assert.Same(t, root, n1.FindCommonAncestor(other))
	assert.Same(t, n1, n1.FindCommonAncestor(n1))
	assert.Same(t, root, root.FindCommonAncestor(n1), "an endpoint may itself be the ancestor")

	// Repeated calls must see clean scratch state.
	assert.Same(t, root, n1.FindCommonAncestor(other))
}

func TestAltTreeNode_PathTo(t *testing.T) {
	arena := core.NewRegionArena()
	root, n1, n2 := chainTree(arena)

	path := n2.PathTo(root)
	assert.Equal(t, []*core.AltTreeNode{n2, n1, root}, path)
	assert.Equal(t, []*core.AltTreeNode{n1}, n1.PathTo(n1))
}

func TestAltTreeNode_BecomeRoot(t *testing.T) {
	arena := core.NewRegionArena()
	g, err := core.NewMatchingGraph(6, 1)
	require.NoError(t, err)

	root := core.NewAltTreeRoot(arena.Alloc())
	n1 := &core.AltTreeNode{
		Inner:            arena.Alloc(),
		Outer:            arena.Alloc(),
		InnerToOuterEdge: core.CompressedEdge{LocFrom: &g.Nodes[1], LocTo: &g.Nodes[2]},
	}
	n1.Inner.TreeNode = n1
	n1.Outer.TreeNode = n1
	root.AddChild(n1, core.CompressedEdge{LocFrom: &g.Nodes[0], LocTo: &g.Nodes[1]})

	oldRootOuter := root.Outer
	oldInner := n1.Inner

	n1.BecomeRoot()

	assert.True(t, n1.IsRoot())
	assert.Nil(t, n1.Inner, "the new root carries no inner region")
	require.Len(t, n1.Children, 1)
	assert.Same(t, root, n1.Children[0])

	// The old root inherits the flipped inner region and reversed edges.
	assert.Same(t, oldInner, root.Inner)
	assert.Same(t, oldRootOuter, root.Outer)
	assert.Same(t, root, root.Inner.TreeNode)
	assert.Same(t, &g.Nodes[1], root.InnerToOuterEdge.LocFrom)
	assert.Same(t, &g.Nodes[0], root.InnerToOuterEdge.LocTo)
	assert.Same(t, &g.Nodes[2], root.ParentEdge.LocFrom)
	assert.Same(t, &g.Nodes[1], root.ParentEdge.LocTo)
}

func TestAltTreeNode_BecomeRoot_Deep(t *testing.T) {
	arena := core.NewRegionArena()
	root, n1, n2 := chainTree(arena)

	n2.BecomeRoot()

	assert.True(t, n2.IsRoot())
	assert.Nil(t, n2.Inner)
	assert.Equal(t, 3, n2.TreeSize())
	assert.Same(t, n2, root.Root())
	assert.Same(t, n2, n1.Root())

	// Every non-root node still pairs an inner and an outer region.
	n2.Walk(func(n *core.AltTreeNode) {
		if n == n2 {
			return
		}
		assert.NotNil(t, n.Inner)
		assert.NotNil(t, n.Outer)
		assert.Same(t, n, n.Inner.TreeNode)
	})
}
