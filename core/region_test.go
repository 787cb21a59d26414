package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/floodmatch/core"
	"github.com/katalvlaran/floodmatch/obsmask"
)

func twoNodes(t *testing.T) (*core.MatchingGraph, *core.DetectorNode, *core.DetectorNode) {
	t.Helper()
	g, err := core.NewMatchingGraph(2, 4)
	require.NoError(t, err)

	return g, &g.Nodes[0], &g.Nodes[1]
}

func TestCompressedEdge(t *testing.T) {
	_, a, b := twoNodes(t)
	e := core.CompressedEdge{LocFrom: a, LocTo: b, Obs: 0b101}

	rev := e.Reversed()
	assert.Same(t, b, rev.LocFrom)
	assert.Same(t, a, rev.LocTo)
	assert.Equal(t, e.Obs, rev.Obs)

	assert.False(t, e.ToBoundary())
	assert.True(t, core.CompressedEdge{LocFrom: a}.ToBoundary())

	tail := core.CompressedEdge{LocFrom: b, LocTo: nil, Obs: 0b110}
	merged := e.MergedWith(tail)
	assert.Same(t, a, merged.LocFrom)
	assert.Nil(t, merged.LocTo)
	assert.Equal(t, obsmask.Mask(0b011), merged.Obs, "observables XOR along the joined path")
}

func TestGraphFillRegion_TopAndBlossom(t *testing.T) {
	arena := core.NewRegionArena()
	child := arena.Alloc()
	mid := arena.Alloc()
	top := arena.Alloc()
	child.BlossomParent = mid
	mid.BlossomParent = top

	assert.Same(t, top, child.Top())
	assert.Same(t, top, top.Top())
	assert.False(t, child.IsBlossom())

	top.BlossomChildren = []core.RegionEdge{{Region: mid}}
	assert.True(t, top.IsBlossom())
}

func TestGraphFillRegion_ChildOwning(t *testing.T) {
	_, a, b := twoNodes(t)
	arena := core.NewRegionArena()
	blossom := arena.Alloc()
	child := arena.Alloc()
	child.BlossomParent = blossom
	blossom.BlossomChildren = []core.RegionEdge{{Region: child}}

	a.OwningRegion = child
	b.OwningRegion = blossom

	assert.Same(t, child, blossom.ChildOwning(a))
	assert.Nil(t, blossom.ChildOwning(b), "a node in the blossom's own shell has no owning child")
	assert.Nil(t, blossom.ChildOwning(nil))

	// Deep nesting resolves to the direct child.
	grandchild := arena.Alloc()
	grandchild.BlossomParent = child
	a.OwningRegion = grandchild
	assert.Same(t, child, blossom.ChildOwning(a))
}

func TestGraphFillRegion_IterTotalArea(t *testing.T) {
	g, err := core.NewMatchingGraph(4, 1)
	require.NoError(t, err)
	arena := core.NewRegionArena()

	blossom := arena.Alloc()
	c0 := arena.Alloc()
	c1 := arena.Alloc()
	c0.BlossomParent = blossom
	c1.BlossomParent = blossom
	blossom.BlossomChildren = []core.RegionEdge{{Region: c0}, {Region: c1}}

	blossom.ShellArea = []*core.DetectorNode{&g.Nodes[0]}
	c0.ShellArea = []*core.DetectorNode{&g.Nodes[1], &g.Nodes[2]}
	c1.ShellArea = []*core.DetectorNode{&g.Nodes[3]}

	var got []int
	blossom.IterTotalArea(func(n *core.DetectorNode) { got = append(got, n.Index) })
	assert.Equal(t, []int{0, 1, 2, 3}, got)
}

func TestGraphFillRegion_Match(t *testing.T) {
	_, a, b := twoNodes(t)
	arena := core.NewRegionArena()
	r1 := arena.Alloc()
	r2 := arena.Alloc()

	edge := core.CompressedEdge{LocFrom: a, LocTo: b, Obs: 0b1}
	r1.SetMatch(r2, edge)

	require.True(t, r1.Match.Valid)
	require.True(t, r2.Match.Valid)
	assert.Same(t, r2, r1.Match.Region)
	assert.Same(t, r1, r2.Match.Region)
	assert.Same(t, b, r2.Match.Edge.LocFrom, "partner sees the edge reversed")
	assert.Same(t, a, r2.Match.Edge.LocTo)

	r1.ClearMatch()
	assert.False(t, r1.Match.Valid)
	assert.False(t, r2.Match.Valid)

	// Boundary match: nil partner.
	r1.SetMatch(nil, core.CompressedEdge{LocFrom: a})
	require.True(t, r1.Match.Valid)
	assert.Nil(t, r1.Match.Region)
	r1.ClearMatch()
	assert.False(t, r1.Match.Valid)
}
