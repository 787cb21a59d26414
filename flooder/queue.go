package flooder

import "github.com/katalvlaran/floodmatch/core"

// eventQueue is a binary min-heap of tentative events ordered by
// (Time, Seq). Seq is assigned at push time, so equal-time events pop in
// insertion order and decode runs are reproducible.
type eventQueue []*core.TentativeEvent

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].Time != q[j].Time {
		return q[i].Time < q[j].Time
	}

	return q[i].Seq < q[j].Seq
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) { *q = append(*q, x.(*core.TentativeEvent)) }

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old) - 1
	ev := old[n]
	old[n] = nil
	*q = old[:n]

	return ev
}
