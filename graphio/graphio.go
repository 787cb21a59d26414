package graphio

import (
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"

	"github.com/katalvlaran/floodmatch/obsmask"
	"github.com/katalvlaran/floodmatch/wgraph"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EdgeSpec is one edge of the on-disk format. V omitted (or negative)
// encodes a boundary edge.
type EdgeSpec struct {
	U           int     `json:"u"`
	V           *int    `json:"v,omitempty"`
	Weight      float64 `json:"weight"`
	Observables []int   `json:"observables,omitempty"`
}

// GraphFile is the on-disk graph description.
type GraphFile struct {
	NumNodes       int        `json:"num_nodes"`
	NumObservables int        `json:"num_observables"`
	Edges          []EdgeSpec `json:"edges"`
}

// SyndromeFile is a batch of decode inputs, one detection event index list
// per row.
type SyndromeFile struct {
	Syndromes [][]int `json:"syndromes"`
}

// LoadGraph reads a graph description from path and builds the weighted
// graph. Files ending in .lz4 are decompressed on the fly.
func LoadGraph(path string) (*wgraph.WeightedGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening graph file")
	}
	defer f.Close()

	var gf GraphFile
	if err := decode(f, path, &gf); err != nil {
		return nil, err
	}

	g, err := wgraph.New(gf.NumNodes, gf.NumObservables)
	if err != nil {
		return nil, errors.Wrap(err, "allocating graph")
	}
	for i, e := range gf.Edges {
		obs, err := obsmask.FromIndices(e.Observables)
		if err != nil {
			return nil, errors.Wrapf(err, "edge %d", i)
		}
		if e.V == nil || *e.V < 0 {
			err = g.AddOrMergeBoundaryEdge(e.U, e.Weight, obs)
		} else {
			err = g.AddOrMergeEdge(e.U, *e.V, e.Weight, obs)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "edge %d", i)
		}
	}

	return g, nil
}

// SaveGraph writes the graph description to path, compressing when the path
// ends in .lz4.
func SaveGraph(path string, g *wgraph.WeightedGraph) error {
	gf := GraphFile{NumNodes: g.NumNodes(), NumObservables: g.NumObservables()}
	g.IterEdges(func(u, v int, weight float64, obs obsmask.Mask) {
		spec := EdgeSpec{U: u, Weight: weight, Observables: obs.Indices()}
		if v >= 0 {
			vv := v
			spec.V = &vv
		}
		gf.Edges = append(gf.Edges, spec)
	})

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating graph file")
	}
	defer f.Close()

	if err := encode(f, path, &gf); err != nil {
		return err
	}

	return errors.Wrap(f.Close(), "closing graph file")
}

// LoadSyndromes reads a syndrome batch from path (.lz4 aware).
func LoadSyndromes(path string) ([][]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening syndrome file")
	}
	defer f.Close()

	var sf SyndromeFile
	if err := decode(f, path, &sf); err != nil {
		return nil, err
	}

	return sf.Syndromes, nil
}

func decode(r io.Reader, path string, v any) error {
	if strings.HasSuffix(path, ".lz4") {
		r = lz4.NewReader(r)
	}

	return errors.Wrapf(json.NewDecoder(r).Decode(v), "decoding %s", path)
}

func encode(w io.Writer, path string, v any) error {
	if strings.HasSuffix(path, ".lz4") {
		zw := lz4.NewWriter(w)
		if err := json.NewEncoder(zw).Encode(v); err != nil {
			return errors.Wrapf(err, "encoding %s", path)
		}

		return errors.Wrap(zw.Close(), "flushing lz4 stream")
	}

	return errors.Wrapf(json.NewEncoder(w).Encode(v), "encoding %s", path)
}
