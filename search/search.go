package search

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/katalvlaran/floodmatch/core"
	"github.com/katalvlaran/floodmatch/mwpm"
)

// ErrNoPath is returned when the requested endpoints are disconnected.
var ErrNoPath = errors.New("search: no path between endpoints")

// Boundary is the endpoint value selecting the virtual boundary.
const Boundary = -1

// Edge is one physical graph edge on a recovered path. V == Boundary for a
// boundary edge.
type Edge struct {
	U, V int
}

// item is a frontier entry of the shortest-path search. Entries are never
// re-keyed; outdated ones are skipped on pop.
type item struct {
	node int
	dist int64
	seq  uint64
}

type itemPQ []item

func (q itemPQ) Len() int { return len(q) }
func (q itemPQ) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}

	return q[i].seq < q[j].seq
}
func (q itemPQ) Swap(i, j int)  { q[i], q[j] = q[j], q[i] }
func (q *itemPQ) Push(x any)    { *q = append(*q, x.(item)) }
func (q *itemPQ) Pop() any {
	old := *q
	n := len(old) - 1
	it := old[n]
	*q = old[:n]

	return it
}

// PathBetween returns the minimum-weight edge path from src to dst on g.
// Pass dst == Boundary to find the cheapest route to any boundary edge.
// The returned edges run in order from src.
func PathBetween(g *core.MatchingGraph, src, dst int) ([]Edge, error) {
	if src < 0 || src >= g.NumNodes() {
		return nil, fmt.Errorf("%w: src=%d, num_nodes=%d", core.ErrInvalidNodeIndex, src, g.NumNodes())
	}
	if dst != Boundary && (dst < 0 || dst >= g.NumNodes()) {
		return nil, fmt.Errorf("%w: dst=%d, num_nodes=%d", core.ErrInvalidNodeIndex, dst, g.NumNodes())
	}
	if src == dst {
		return nil, nil
	}

	const unreached = int64(-1)
	dist := make([]int64, g.NumNodes())
	prev := make([]int, g.NumNodes())
	for i := range dist {
		dist[i] = unreached
	}
	dist[src] = 0
	prev[src] = src

	var seq uint64
	pq := itemPQ{{node: src}}
	heap.Init(&pq)

	boundaryVia := -1
	var boundaryDist int64 = -1

	for pq.Len() > 0 {
		cur := heap.Pop(&pq).(item)
		if cur.dist != dist[cur.node] {
			continue
		}
		if cur.node == dst {
			break
		}
		if boundaryDist >= 0 && cur.dist >= boundaryDist {
			break
		}

		n := &g.Nodes[cur.node]
		for i, nb := range n.Neighbors {
			w := n.NeighborWeights[i]
			if nb == nil {
				if dst == Boundary && (boundaryDist < 0 || cur.dist+w < boundaryDist) {
					boundaryDist = cur.dist + w
					boundaryVia = cur.node
				}

				continue
			}
			alt := cur.dist + w
			if dist[nb.Index] == unreached || alt < dist[nb.Index] {
				dist[nb.Index] = alt
				prev[nb.Index] = cur.node
				seq++
				heap.Push(&pq, item{node: nb.Index, dist: alt, seq: seq})
			}
		}
	}

	var tail []Edge
	end := dst
	if dst == Boundary {
		if boundaryVia < 0 {
			return nil, fmt.Errorf("%w: node %d to boundary", ErrNoPath, src)
		}
		tail = append(tail, Edge{U: boundaryVia, V: Boundary})
		end = boundaryVia
	} else if dist[dst] == unreached {
		return nil, fmt.Errorf("%w: node %d to node %d", ErrNoPath, src, dst)
	}

	var path []Edge
	for at := end; at != src; at = prev[at] {
		path = append(path, Edge{U: prev[at], V: at})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return append(path, tail...), nil
}

// EdgesForPairs expands every matched pair into its shortest edge path.
func EdgesForPairs(g *core.MatchingGraph, pairs []mwpm.MatchedPair) ([]Edge, error) {
	var out []Edge
	for _, p := range pairs {
		dst := p.Defect2
		if dst == mwpm.BoundaryDefect {
			dst = Boundary
		}
		path, err := PathBetween(g, p.Defect1, dst)
		if err != nil {
			return nil, err
		}
		out = append(out, path...)
	}

	return out, nil
}

// DecodeToEdges decodes the detection events and expands the matching into
// explicit physical edges.
func DecodeToEdges(dec *mwpm.Decoder, detectionEvents []int) (mwpm.Result, []Edge, error) {
	res, err := dec.Decode(detectionEvents)
	if err != nil {
		return mwpm.Result{}, nil, err
	}
	edges, err := EdgesForPairs(dec.Graph(), res.Pairs)
	if err != nil {
		return mwpm.Result{}, nil, err
	}

	return res, edges, nil
}
