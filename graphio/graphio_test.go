package graphio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/floodmatch/builder"
	"github.com/katalvlaran/floodmatch/graphio"
	"github.com/katalvlaran/floodmatch/obsmask"
	"github.com/katalvlaran/floodmatch/wgraph"
)

// edgeRec is one edge flattened for comparison.
type edgeRec struct {
	U, V   int
	Weight float64
	Obs    obsmask.Mask
}

// flatten collects a graph's edges in canonical iteration order.
func flatten(g *wgraph.WeightedGraph) []edgeRec {
	var out []edgeRec
	g.IterEdges(func(u, v int, w float64, obs obsmask.Mask) {
		out = append(out, edgeRec{U: u, V: v, Weight: w, Obs: obs})
	})

	return out
}

// TestSaveLoadGraph_RoundTrip writes a boundary-attached chain to disk and
// reads it back, plain and lz4-compressed.
func TestSaveLoadGraph_RoundTrip(t *testing.T) {
	g, err := builder.Chain(4, builder.WithBoundaries())
	require.NoError(t, err)

	for _, name := range []string{"graph.json", "graph.json.lz4"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, graphio.SaveGraph(path, g), "saving %s", name)

		loaded, err := graphio.LoadGraph(path)
		require.NoError(t, err, "loading %s", name)
		assert.Equal(t, g.NumNodes(), loaded.NumNodes())
		assert.Equal(t, g.NumObservables(), loaded.NumObservables())
		assert.Equal(t, flatten(g), flatten(loaded), "edges must survive the %s round trip", name)
	}
}

// TestLoadGraph_BoundaryEncodings accepts both an omitted and a negative "v"
// as the boundary marker.
func TestLoadGraph_BoundaryEncodings(t *testing.T) {
	raw := `{
		"num_nodes": 2,
		"num_observables": 3,
		"edges": [
			{"u": 0, "v": 1, "weight": 1.5, "observables": [0]},
			{"u": 0, "weight": 2, "observables": [1]},
			{"u": 1, "v": -1, "weight": 3, "observables": [2]}
		]
	}`
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	g, err := graphio.LoadGraph(path)
	require.NoError(t, err)
	assert.Equal(t, 3, g.NumEdges())
	w, ok := g.EdgeWeight(0, -1)
	require.True(t, ok, "omitted v is a boundary edge")
	assert.Equal(t, 2.0, w)
	w, ok = g.EdgeWeight(1, -1)
	require.True(t, ok, "negative v is a boundary edge")
	assert.Equal(t, 3.0, w)
	w, ok = g.EdgeWeight(0, 1)
	require.True(t, ok)
	assert.Equal(t, 1.5, w)
}

// TestLoadSyndromes reads a syndrome batch, one row per decode.
func TestLoadSyndromes(t *testing.T) {
	raw := `{"syndromes": [[0, 2], [1], []]}`
	path := filepath.Join(t.TempDir(), "syndromes.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	rows, err := graphio.LoadSyndromes(path)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 2}, {1}, {}}, rows)
}

// TestLoadGraph_Errors surfaces missing files and malformed JSON.
func TestLoadGraph_Errors(t *testing.T) {
	_, err := graphio.LoadGraph(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = graphio.LoadGraph(path)
	assert.Error(t, err)
}
