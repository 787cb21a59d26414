package mwpm

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/floodmatch/core"
	"github.com/katalvlaran/floodmatch/flooder"
	"github.com/katalvlaran/floodmatch/obsmask"
)

// Result is the outcome of one decode: the observable correction mask, the
// matched pairs behind it and the total matching weight in the caller's
// integer weight units.
type Result struct {
	ObservableMask obsmask.Mask
	Pairs          []MatchedPair
	Weight         int64
}

// Decoder is the one-call decoding front end over a MatchingGraph. It is
// reusable: each Decode resets only the state the previous call touched.
// Not safe for concurrent use.
type Decoder struct {
	fl  *flooder.GraphFlooder
	mgr *Manager
}

// NewDecoder returns a decoder over g.
func NewDecoder(g *core.MatchingGraph) *Decoder {
	fl := flooder.New(g)

	return &Decoder{fl: fl, mgr: NewManager(fl)}
}

// Graph returns the decoded graph.
func (d *Decoder) Graph() *core.MatchingGraph { return d.fl.Graph() }

// Decode matches the given detection events pairwise (or to the boundary)
// with minimum total weight and returns the XOR of edge observables along
// the matched paths. Duplicate indices toggle: a node listed twice is not a
// defect.
func (d *Decoder) Decode(detectionEvents []int) (Result, error) {
	g := d.fl.Graph()
	if g.NumEdges() == 0 {
		return Result{}, ErrGraphNotInitialized
	}

	flagged := make(map[int]bool, len(detectionEvents))
	for _, idx := range detectionEvents {
		if idx < 0 || idx >= g.NumNodes() {
			return Result{}, fmt.Errorf("%w: detection event %d, num_nodes=%d",
				core.ErrInvalidNodeIndex, idx, g.NumNodes())
		}
		flagged[idx] = !flagged[idx]
	}
	for _, idx := range g.NegativeWeightDetectionEvents {
		flagged[idx] = !flagged[idx]
	}
	defects := make([]int, 0, len(flagged))
	for idx, on := range flagged {
		if on {
			defects = append(defects, idx)
		}
	}
	sort.Ints(defects)

	defer d.fl.Reset()

	for _, idx := range defects {
		if err := d.mgr.AddDetectionEvent(&g.Nodes[idx]); err != nil {
			return Result{}, err
		}
	}

	for {
		ev, err := d.fl.NextEvent()
		if err != nil {
			return Result{}, err
		}
		if ev.Kind == core.EventNone {
			break
		}
		if err := d.mgr.ProcessEvent(ev); err != nil {
			return Result{}, err
		}
	}

	return d.extract()
}

// workPair is an extraction frontier entry: regions a and b are matched via
// edge (oriented a → b); b == nil encodes the boundary.
type workPair struct {
	a, b *core.GraphFillRegion
	edge core.CompressedEdge
}

// extract converts the final region-level matching into defect-level pairs,
// shattering matched blossoms recursively, and folds in the negative-weight
// correction.
func (d *Decoder) extract() (Result, error) {
	arena := d.fl.Arena()
	now := d.fl.Time()

	var res Result
	var weight int64
	var stack []workPair
	seen := make(map[*core.GraphFillRegion]struct{})
	var inconsistent *core.GraphFillRegion

	arena.IterLive(func(r *core.GraphFillRegion) {
		weight += r.Radius.Value(now)
		if r.BlossomParent != nil {
			return
		}
		if r.TreeNode != nil || !r.Match.Valid {
			inconsistent = r

			return
		}
		if _, done := seen[r]; done {
			return
		}
		seen[r] = struct{}{}
		if r.Match.Region != nil {
			seen[r.Match.Region] = struct{}{}
		}
		stack = append(stack, workPair{a: r, b: r.Match.Region, edge: r.Match.Edge})
	})
	if inconsistent != nil {
		return Result{}, fmt.Errorf("%w: region %d left unmatched", ErrNoPerfectMatching, inconsistent.ID)
	}
	res.Weight = weight / 2

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.a.IsBlossom() {
			entry, rest := shatterMatchedBlossom(p.a, p.edge.LocFrom)
			if entry == nil {
				return Result{}, fmt.Errorf("%w: match endpoint outside blossom %d",
					core.ErrInconsistentState, p.a.ID)
			}
			stack = append(stack, rest...)
			stack = append(stack, workPair{a: entry, b: p.b, edge: p.edge})

			continue
		}
		if p.b != nil && p.b.IsBlossom() {
			entry, rest := shatterMatchedBlossom(p.b, p.edge.LocTo)
			if entry == nil {
				return Result{}, fmt.Errorf("%w: match endpoint outside blossom %d",
					core.ErrInconsistentState, p.b.ID)
			}
			stack = append(stack, rest...)
			stack = append(stack, workPair{a: p.a, b: entry, edge: p.edge})

			continue
		}

		pair := MatchedPair{Defect1: p.edge.LocFrom.Index, Defect2: BoundaryDefect, Obs: p.edge.Obs}
		if p.edge.LocTo != nil {
			pair.Defect2 = p.edge.LocTo.Index
		}
		res.Pairs = append(res.Pairs, pair)
		res.ObservableMask ^= p.edge.Obs
	}

	res.ObservableMask ^= d.fl.Graph().NegativeWeightObservables
	sort.Slice(res.Pairs, func(i, j int) bool {
		if res.Pairs[i].Defect1 != res.Pairs[j].Defect1 {
			return res.Pairs[i].Defect1 < res.Pairs[j].Defect1
		}

		return res.Pairs[i].Defect2 < res.Pairs[j].Defect2
	})

	return res, nil
}

// shatterMatchedBlossom resolves a matched blossom for extraction: the child
// whose area contains the match endpoint inherits the external match, and
// the remaining even cycle pairs off consecutively. Returns the inheriting
// child and the internal pairs.
func shatterMatchedBlossom(blossom *core.GraphFillRegion, endpoint *core.DetectorNode) (*core.GraphFillRegion, []workPair) {
	entry := blossom.ChildOwning(endpoint)
	if entry == nil {
		return nil, nil
	}
	children := blossom.BlossomChildren
	n := len(children)
	iE := 0
	for i, ce := range children {
		if ce.Region == entry {
			iE = i

			break
		}
	}

	pairs := make([]workPair, 0, (n-1)/2)
	for k := 1; k < n; k += 2 {
		i := (iE + k) % n
		j := (iE + k + 1) % n
		pairs = append(pairs, workPair{
			a:    children[i].Region,
			b:    children[j].Region,
			edge: children[i].Edge,
		})
	}

	return entry, pairs
}
