package core

// RegionArena owns every GraphFillRegion of a decode session. Slots have
// stable indices; freeing a slot bumps its generation so any handle kept
// across a free is detectably stale. Everyone outside the arena borrows.
//
// The arena never shrinks: a session's peak region count is bounded by the
// defect count plus the blossoms formed, and slots are recycled through the
// free list between decodes.
type RegionArena struct {
	slots []*GraphFillRegion
	free  []int
}

// NewRegionArena returns an empty arena.
func NewRegionArena() *RegionArena {
	return &RegionArena{}
}

// Alloc returns a cleared region with a stable ID and current generation.
func (a *RegionArena) Alloc() *GraphFillRegion {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		r := a.slots[idx]
		gen := r.Gen
		*r = GraphFillRegion{ID: idx, Gen: gen}

		return r
	}
	r := &GraphFillRegion{ID: len(a.slots)}
	a.slots = append(a.slots, r)

	return r
}

// Free returns a region to the pool and bumps its generation. The caller
// must have detached the region from nodes, tree and queue first.
func (a *RegionArena) Free(r *GraphFillRegion) {
	idx, gen := r.ID, r.Gen+1
	*r = GraphFillRegion{ID: idx, Gen: gen}
	a.free = append(a.free, idx)
}

// IsLive reports whether the handle (region pointer + remembered generation)
// still refers to an allocated region.
func (a *RegionArena) IsLive(r *GraphFillRegion, gen uint64) bool {
	if r == nil || r.ID >= len(a.slots) || a.slots[r.ID] != r {
		return false
	}
	if r.Gen != gen {
		return false
	}
	for _, f := range a.free {
		if f == r.ID {
			return false
		}
	}

	return true
}

// NumLive returns the number of currently allocated regions.
func (a *RegionArena) NumLive() int { return len(a.slots) - len(a.free) }

// IterLive visits every allocated region in slot order.
func (a *RegionArena) IterLive(fn func(*GraphFillRegion)) {
	freed := make(map[int]struct{}, len(a.free))
	for _, f := range a.free {
		freed[f] = struct{}{}
	}
	for idx, r := range a.slots {
		if _, dead := freed[idx]; !dead {
			fn(r)
		}
	}
}

// Reset frees every live region at once, keeping the slots for reuse. The
// free list is rebuilt in descending slot order, so the next session is
// handed IDs 0, 1, 2, ... exactly as a fresh arena would hand them out.
func (a *RegionArena) Reset() {
	freed := make(map[int]struct{}, len(a.free))
	for _, f := range a.free {
		freed[f] = struct{}{}
	}
	for idx, r := range a.slots {
		if _, dead := freed[idx]; !dead {
			a.Free(r)
		}
	}
	a.free = a.free[:0]
	for idx := len(a.slots) - 1; idx >= 0; idx-- {
		a.free = append(a.free, idx)
	}
}
