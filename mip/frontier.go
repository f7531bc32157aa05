package mip

import (
	"container/heap"
	"math"
)

// entry is a frontier element: an arena handle with its ordering keys.
type entry struct {
	h     handle
	bound float64
	seq   uint64
}

// frontier is a container/heap priority queue whose order is fixed by the
// node-selection strategy:
//
//	BestBound    – smallest bound first, older node on ties;
//	DepthFirst   – largest seq first (stack);
//	BreadthFirst – smallest seq first (queue).
type frontier struct {
	sel   NodeSelection
	items []entry
}

func newFrontier(sel NodeSelection) *frontier {
	f := &frontier{sel: sel}
	heap.Init(f)

	return f
}

// Len returns the number of queued nodes.
func (f *frontier) Len() int { return len(f.items) }

// Less orders entries per strategy.
func (f *frontier) Less(i, j int) bool {
	a, b := f.items[i], f.items[j]
	switch f.sel {
	case DepthFirst:
		return a.seq > b.seq
	case BreadthFirst:
		return a.seq < b.seq
	default:
		if a.bound != b.bound {
			return a.bound < b.bound
		}

		return a.seq < b.seq
	}
}

// Swap swaps two entries.
func (f *frontier) Swap(i, j int) { f.items[i], f.items[j] = f.items[j], f.items[i] }

// Push is called by heap.Push; x must be an entry.
func (f *frontier) Push(x interface{}) { f.items = append(f.items, x.(entry)) }

// Pop is called by heap.Pop.
func (f *frontier) Pop() interface{} {
	old := f.items
	n := len(old)
	e := old[n-1]
	f.items = old[:n-1]

	return e
}

func (f *frontier) push(e entry) { heap.Push(f, e) }

func (f *frontier) pop() entry { return heap.Pop(f).(entry) }

// minBound returns the smallest bound in the frontier, +Inf when empty.
// O(1) for BestBound, O(len) otherwise.
func (f *frontier) minBound() float64 {
	if len(f.items) == 0 {
		return math.Inf(1)
	}
	if f.sel == BestBound {
		return f.items[0].bound
	}
	m := math.Inf(1)
	for _, e := range f.items {
		m = math.Min(m, e.bound)
	}

	return m
}
