package mwpm_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/floodmatch/builder"
	"github.com/katalvlaran/floodmatch/core"
	"github.com/katalvlaran/floodmatch/mwpm"
	"github.com/katalvlaran/floodmatch/obsmask"
	"github.com/katalvlaran/floodmatch/wgraph"
)

// bits builds an observable mask from indices, panicking on bad input.
func bits(indices ...int) obsmask.Mask {
	m, err := obsmask.FromIndices(indices)
	if err != nil {
		panic(err)
	}

	return m
}

// mustMatchingGraph discretizes g with the given bucket count.
func mustMatchingGraph(t *testing.T, g *wgraph.WeightedGraph, buckets int) *core.MatchingGraph {
	t.Helper()
	mg, err := g.ToMatchingGraph(buckets)
	require.NoError(t, err, "discretizing graph")

	return mg
}

// normalized returns the pairs with each pair's lower defect first and the
// list re-sorted, so tests do not depend on edge orientation.
func normalized(pairs []mwpm.MatchedPair) []mwpm.MatchedPair {
	out := append([]mwpm.MatchedPair(nil), pairs...)
	for i, p := range out {
		if p.Defect2 != mwpm.BoundaryDefect && p.Defect2 < p.Defect1 {
			out[i].Defect1, out[i].Defect2 = p.Defect2, p.Defect1
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Defect1 != out[j].Defect1 {
			return out[i].Defect1 < out[j].Defect1
		}

		return out[i].Defect2 < out[j].Defect2
	})

	return out
}

// TestDecode_AdjacentPair matches two neighboring defects on a chain and
// checks pair, mask and total weight.
func TestDecode_AdjacentPair(t *testing.T) {
	g, err := builder.Chain(5)
	require.NoError(t, err)
	dec := mwpm.NewDecoder(mustMatchingGraph(t, g, 2))

	res, err := dec.Decode([]int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []mwpm.MatchedPair{{Defect1: 1, Defect2: 2, Obs: bits(1)}}, normalized(res.Pairs))
	assert.Equal(t, bits(1), res.ObservableMask)
	assert.Equal(t, int64(1), res.Weight)
}

// TestDecode_SingleDefectToBoundary matches a lone defect to its nearest
// boundary edge.
func TestDecode_SingleDefectToBoundary(t *testing.T) {
	g, err := builder.Chain(2, builder.WithBoundaries())
	require.NoError(t, err)
	dec := mwpm.NewDecoder(mustMatchingGraph(t, g, 2))

	res, err := dec.Decode([]int{0})
	require.NoError(t, err)
	assert.Equal(t, []mwpm.MatchedPair{{Defect1: 0, Defect2: mwpm.BoundaryDefect, Obs: bits(1)}}, normalized(res.Pairs))
	assert.Equal(t, bits(1), res.ObservableMask)
	assert.Equal(t, int64(1), res.Weight)
}

// TestDecode_ThreeDefectsWithBoundary runs three defects on a chain with
// boundaries. The middle defect pairs with the left one (rematching it away
// from the boundary it reached first), and the right defect exits through
// the right boundary.
func TestDecode_ThreeDefectsWithBoundary(t *testing.T) {
	g, err := builder.Chain(5, builder.WithBoundaries())
	require.NoError(t, err)
	dec := mwpm.NewDecoder(mustMatchingGraph(t, g, 2))

	res, err := dec.Decode([]int{0, 2, 4})
	require.NoError(t, err)
	assert.Equal(t, []mwpm.MatchedPair{
		{Defect1: 0, Defect2: 2, Obs: bits(0, 1)},
		{Defect1: 4, Defect2: mwpm.BoundaryDefect, Obs: bits(5)},
	}, normalized(res.Pairs))
	assert.Equal(t, bits(0, 1, 5), res.ObservableMask)
	assert.Equal(t, int64(3), res.Weight)
}

// TestDecode_OddDefectsNoBoundary verifies that an odd defect count on a
// boundaryless graph is reported as unmatchable rather than looping or
// returning a partial matching.
func TestDecode_OddDefectsNoBoundary(t *testing.T) {
	g, err := builder.Cycle(5)
	require.NoError(t, err)
	dec := mwpm.NewDecoder(mustMatchingGraph(t, g, 2))

	_, err = dec.Decode([]int{0, 2, 4})
	assert.ErrorIs(t, err, mwpm.ErrNoPerfectMatching)
}

// TestDecode_ZeroRadiusRematch exercises the degenerate implosion path: the
// middle of three consecutive defects shrinks back to zero radius inside an
// alternating tree and the outer regions re-pair through it.
func TestDecode_ZeroRadiusRematch(t *testing.T) {
	g, err := builder.Chain(4, builder.WithBoundaries())
	require.NoError(t, err)
	dec := mwpm.NewDecoder(mustMatchingGraph(t, g, 2))

	res, err := dec.Decode([]int{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, []mwpm.MatchedPair{
		{Defect1: 0, Defect2: mwpm.BoundaryDefect, Obs: bits(3)},
		{Defect1: 1, Defect2: 2, Obs: bits(1)},
	}, normalized(res.Pairs))
	assert.Equal(t, bits(1, 3), res.ObservableMask)
	assert.Equal(t, int64(2), res.Weight)
}

// TestDecode_NegativeWeights verifies the negative-weight absorption: the
// edge's endpoints become implicit detection events and its observables are
// pre-folded into every result.
func TestDecode_NegativeWeights(t *testing.T) {
	g, err := wgraph.New(3, 2)
	require.NoError(t, err)
	require.NoError(t, g.AddOrMergeEdge(0, 1, -2, bits(0)))
	require.NoError(t, g.AddOrMergeEdge(1, 2, 3, bits(1)))
	dec := mwpm.NewDecoder(mustMatchingGraph(t, g, 4))

	// No observed events: the flipped endpoints alone form the defect set,
	// and matching them along the negative edge cancels its mask.
	res, err := dec.Decode(nil)
	require.NoError(t, err)
	assert.Equal(t, []mwpm.MatchedPair{{Defect1: 0, Defect2: 1, Obs: bits(0)}}, normalized(res.Pairs))
	assert.Equal(t, obsmask.Mask(0), res.ObservableMask)
	assert.Equal(t, int64(2), res.Weight)

	// Observing exactly the flipped endpoints cancels them out: nothing to
	// match, and the pre-fold mask surfaces alone.
	res, err = dec.Decode([]int{0, 1})
	require.NoError(t, err)
	assert.Empty(t, res.Pairs)
	assert.Equal(t, bits(0), res.ObservableMask)
	assert.Equal(t, int64(0), res.Weight)
}

// TestDecode_BlossomCycle puts three mutually adjacent defects in a unit
// triangle with two heavier escape routes. The triangle contracts into a
// blossom, later implodes, and the optimal matching pairs inside the
// triangle plus along both escapes.
func TestDecode_BlossomCycle(t *testing.T) {
	g, err := wgraph.New(5, 6)
	require.NoError(t, err)
	require.NoError(t, g.AddOrMergeEdge(0, 1, 1, bits(0)))
	require.NoError(t, g.AddOrMergeEdge(1, 2, 1, bits(1)))
	require.NoError(t, g.AddOrMergeEdge(0, 2, 1, bits(2)))
	require.NoError(t, g.AddOrMergeEdge(2, 3, 3, bits(3)))
	require.NoError(t, g.AddOrMergeEdge(0, 4, 3, bits(4)))
	require.NoError(t, g.AddOrMergeBoundaryEdge(4, 1, bits(5)))
	dec := mwpm.NewDecoder(mustMatchingGraph(t, g, 4))

	res, err := dec.Decode([]int{0, 1, 2, 3, 4})
	require.NoError(t, err)

	pairs := normalized(res.Pairs)
	require.Len(t, pairs, 3)
	assert.Equal(t, [2]int{0, 1}, [2]int{pairs[0].Defect1, pairs[0].Defect2})
	assert.Equal(t, [2]int{2, 3}, [2]int{pairs[1].Defect1, pairs[1].Defect2})
	assert.Equal(t, [2]int{4, mwpm.BoundaryDefect}, [2]int{pairs[2].Defect1, pairs[2].Defect2})
	assert.Equal(t, int64(5), res.Weight)

	// The 0-1 correction can run directly or around the triangle; both are
	// parity-equivalent corrections of the same error.
	direct := bits(0, 3, 5)
	around := bits(1, 2, 3, 5)
	assert.Contains(t, []obsmask.Mask{direct, around}, res.ObservableMask)
}

// TestDecode_LatticeTimePair matches the same check firing in two adjacent
// measurement rounds: a pure measurement error, corrected with an empty
// observable mask.
func TestDecode_LatticeTimePair(t *testing.T) {
	g, err := builder.Lattice(3)
	require.NoError(t, err)
	dec := mwpm.NewDecoder(mustMatchingGraph(t, g, 2))

	res, err := dec.Decode([]int{0, 2})
	require.NoError(t, err)
	assert.Equal(t, []mwpm.MatchedPair{{Defect1: 0, Defect2: 2, Obs: 0}}, normalized(res.Pairs))
	assert.Equal(t, obsmask.Mask(0), res.ObservableMask, "time edges flip no data bits")
	assert.Equal(t, int64(1), res.Weight)
}

// TestDecode_TogglesAndValidation covers the input edge cases: duplicate
// indices cancel, out-of-range indices error, and an edgeless graph refuses
// to decode.
func TestDecode_TogglesAndValidation(t *testing.T) {
	g, err := builder.Chain(5)
	require.NoError(t, err)
	dec := mwpm.NewDecoder(mustMatchingGraph(t, g, 2))

	res, err := dec.Decode([]int{1, 1, 3, 3})
	require.NoError(t, err)
	assert.Empty(t, res.Pairs, "duplicate indices must cancel pairwise")
	assert.Equal(t, obsmask.Mask(0), res.ObservableMask)
	assert.Equal(t, int64(0), res.Weight)

	_, err = dec.Decode([]int{7})
	assert.ErrorIs(t, err, core.ErrInvalidNodeIndex)

	empty, err := core.NewMatchingGraph(3, 1)
	require.NoError(t, err)
	_, err = mwpm.NewDecoder(empty).Decode([]int{0})
	assert.ErrorIs(t, err, mwpm.ErrGraphNotInitialized)
}

// TestDecode_DeterministicAndReusable decodes the same syndrome repeatedly,
// interleaved with a different one, and requires bit-identical results: the
// decoder must fully reset between calls and break all ties the same way.
func TestDecode_DeterministicAndReusable(t *testing.T) {
	g, err := builder.Chain(5, builder.WithBoundaries())
	require.NoError(t, err)
	dec := mwpm.NewDecoder(mustMatchingGraph(t, g, 2))

	first, err := dec.Decode([]int{0, 2, 4})
	require.NoError(t, err)
	_, err = dec.Decode([]int{1, 3})
	require.NoError(t, err)
	again, err := dec.Decode([]int{0, 2, 4})
	require.NoError(t, err)
	assert.Equal(t, first, again, "repeat decodes must be identical")
}
