package wgraph

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/floodmatch/core"
	"github.com/katalvlaran/floodmatch/obsmask"
)

// WeightedGraph is the mutable float-weight builder that precedes the
// runtime MatchingGraph. Weights are log-likelihood ratios log((1−p)/p);
// negative weights (p > 1/2) are legal here and absorbed at conversion.
type WeightedGraph struct {
	nodes          [][]edge
	numObservables int
	numEdges       int
}

// New returns an empty weighted graph with numNodes nodes.
func New(numNodes, numObservables int) (*WeightedGraph, error) {
	if numNodes < 0 {
		return nil, fmt.Errorf("%w: num_nodes=%d", core.ErrInvalidNodeIndex, numNodes)
	}
	if numObservables < 0 || numObservables > obsmask.MaxObservables {
		return nil, fmt.Errorf("%w: num_observables=%d", core.ErrTooManyObservables, numObservables)
	}

	return &WeightedGraph{nodes: make([][]edge, numNodes), numObservables: numObservables}, nil
}

// NumNodes returns the node count.
func (g *WeightedGraph) NumNodes() int { return len(g.nodes) }

// NumObservables returns the observable mask width.
func (g *WeightedGraph) NumObservables() int { return g.numObservables }

// NumEdges returns the number of distinct edges, boundary edges included.
func (g *WeightedGraph) NumEdges() int { return g.numEdges }

// WeightFromProbability converts an independent error probability to a
// log-likelihood weight, log((1−p)/p). Probabilities above one half give
// negative weights.
func WeightFromProbability(p float64) (float64, error) {
	if !(p > 0 && p < 1) {
		return 0, fmt.Errorf("%w: p=%v", ErrInvalidProbability, p)
	}

	return math.Log((1 - p) / p), nil
}

// MergeWeights combines the log-likelihood weights of two independent error
// channels acting on the same edge.
func MergeWeights(a, b float64) float64 {
	sgn := 1.0
	if a < 0 {
		sgn = -sgn
	}
	if b < 0 {
		sgn = -sgn
	}

	return sgn*math.Min(math.Abs(a), math.Abs(b)) +
		math.Log1p(math.Exp(-math.Abs(a+b))) -
		math.Log1p(math.Exp(-math.Abs(a-b)))
}

// AddOrMergeEdge adds the edge u↔v, or merges the weight into the existing
// edge when one is already present. The first call's observables win; later
// merges only adjust the weight.
func (g *WeightedGraph) AddOrMergeEdge(u, v int, weight float64, obs obsmask.Mask) error {
	if err := g.checkNode(u); err != nil {
		return err
	}
	if err := g.checkNode(v); err != nil {
		return err
	}
	if u == v {
		return fmt.Errorf("%w: u=v=%d", core.ErrSelfLoop, u)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("%w: edge %d↔%d weight=%v", ErrNonFiniteWeight, u, v, weight)
	}

	if i, ok := g.findEdge(u, v); ok {
		merged := MergeWeights(g.nodes[u][i].weight, weight)
		g.nodes[u][i].weight = merged
		j, _ := g.findEdge(v, u)
		g.nodes[v][j].weight = merged

		return nil
	}
	g.nodes[u] = append(g.nodes[u], edge{to: v, weight: weight, obs: obs})
	g.nodes[v] = append(g.nodes[v], edge{to: u, weight: weight, obs: obs})
	g.numEdges++

	return nil
}

// AddOrMergeBoundaryEdge adds or merges the boundary edge of node u.
func (g *WeightedGraph) AddOrMergeBoundaryEdge(u int, weight float64, obs obsmask.Mask) error {
	if err := g.checkNode(u); err != nil {
		return err
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("%w: boundary edge at %d weight=%v", ErrNonFiniteWeight, u, weight)
	}

	if i, ok := g.findEdge(u, boundaryTo); ok {
		g.nodes[u][i].weight = MergeWeights(g.nodes[u][i].weight, weight)

		return nil
	}
	g.nodes[u] = append(g.nodes[u], edge{to: boundaryTo, weight: weight, obs: obs})
	g.numEdges++

	return nil
}

// EdgeWeight reports the current weight of edge u↔v (v == -1 for the
// boundary edge), if present.
func (g *WeightedGraph) EdgeWeight(u, v int) (float64, bool) {
	if u < 0 || u >= len(g.nodes) {
		return 0, false
	}
	if i, ok := g.findEdge(u, v); ok {
		return g.nodes[u][i].weight, true
	}

	return 0, false
}

// MaxAbsWeight returns the largest absolute edge weight.
func (g *WeightedGraph) MaxAbsWeight() float64 {
	var maxAbs float64
	g.iterEdges(func(_, _ int, w float64, _ obsmask.Mask) {
		if a := math.Abs(w); a > maxAbs {
			maxAbs = a
		}
	})

	return maxAbs
}

// ToMatchingGraph discretizes the graph into the runtime form. Weights are
// scaled so the largest maps to numDistinctWeights−1, rounded to integers;
// each negative-weight edge is stored with its absolute weight while its
// observables are folded into the graph's correction mask and its endpoints
// into the pre-flipped detection event list.
func (g *WeightedGraph) ToMatchingGraph(numDistinctWeights int) (*core.MatchingGraph, error) {
	if g.numEdges == 0 {
		return nil, ErrNoEdges
	}
	if numDistinctWeights < 2 {
		return nil, fmt.Errorf("%w: num_distinct_weights=%d", ErrBadWeightBuckets, numDistinctWeights)
	}

	out, err := core.NewMatchingGraph(len(g.nodes), g.numObservables)
	if err != nil {
		return nil, err
	}

	maxAbs := g.MaxAbsWeight()
	scale := 1.0
	if maxAbs > 0 {
		scale = float64(numDistinctWeights-1) / maxAbs
	}
	out.NormalisingConstant = scale

	flipped := make(map[int]bool)
	var iterErr error
	g.iterEdges(func(u, v int, w float64, obs obsmask.Mask) {
		if iterErr != nil {
			return
		}
		wInt := int64(math.Round(math.Abs(w) * scale))
		if w < 0 {
			out.NegativeWeightObservables ^= obs
			flipped[u] = !flipped[u]
			if v != boundaryTo {
				flipped[v] = !flipped[v]
			}
		}
		if v == boundaryTo {
			iterErr = out.AddBoundaryEdge(u, wInt, obs)
		} else {
			iterErr = out.AddEdge(u, v, wInt, obs)
		}
	})
	if iterErr != nil {
		return nil, iterErr
	}

	for idx, on := range flipped {
		if on {
			out.NegativeWeightDetectionEvents = append(out.NegativeWeightDetectionEvents, idx)
		}
	}
	sort.Ints(out.NegativeWeightDetectionEvents)

	return out, nil
}

// IterEdges visits every distinct edge once, with u < v for internal edges
// and v == -1 for boundary edges, in node order.
func (g *WeightedGraph) IterEdges(fn func(u, v int, weight float64, obs obsmask.Mask)) {
	g.iterEdges(fn)
}

// iterEdges visits every distinct edge once, with u < v for internal edges.
func (g *WeightedGraph) iterEdges(fn func(u, v int, w float64, obs obsmask.Mask)) {
	for u, adj := range g.nodes {
		for _, e := range adj {
			if e.to == boundaryTo || e.to > u {
				fn(u, e.to, e.weight, e.obs)
			}
		}
	}
}

func (g *WeightedGraph) checkNode(u int) error {
	if u < 0 || u >= len(g.nodes) {
		return fmt.Errorf("%w: u=%d, num_nodes=%d", core.ErrInvalidNodeIndex, u, len(g.nodes))
	}

	return nil
}

func (g *WeightedGraph) findEdge(u, to int) (int, bool) {
	for i, e := range g.nodes[u] {
		if e.to == to {
			return i, true
		}
	}

	return 0, false
}
