package mip

import (
	"math"

	"github.com/katalvlaran/lvmip/lp"
	"github.com/katalvlaran/lvmip/model"
)

// handle indexes a node slot in the arena.
type handle int

// override is one branching decision: x_Var ∈ [Lower, Upper], with ±Inf
// leaving the respective side untouched.
type override struct {
	Var   int
	Lower float64
	Upper float64
}

// node is one subproblem. Its LP result is computed before the node is
// pushed and replaced only by the node's own cutting-plane round.
type node struct {
	id        int // creation ordinal, stable for logging
	parent    int // creation ordinal of the parent, −1 for the root
	depth     int
	overrides []override
	cuts      []model.Constraint
	lp        lp.Result
	bound     float64 // lp.Objective when feasible, +Inf otherwise
	seq       uint64  // push order
	cutDone   bool
}

// setLP caches res and derives the node bound.
func (nd *node) setLP(res lp.Result) {
	nd.lp = res
	if res.Feasible() {
		nd.bound = res.Objective
	} else {
		nd.bound = math.Inf(1)
	}
}

// child derives a subproblem carrying the parent's decisions and cuts plus o.
// Slices are clipped so siblings never share appends.
func (nd *node) child(id int, o override) node {
	ov := make([]override, len(nd.overrides), len(nd.overrides)+1)
	copy(ov, nd.overrides)

	return node{
		id:        id,
		parent:    nd.id,
		depth:     nd.depth + 1,
		overrides: append(ov, o),
		cuts:      nd.cuts[:len(nd.cuts):len(nd.cuts)],
	}
}

// nodeArena stores nodes by handle and recycles released slots.
type nodeArena struct {
	nodes []node
	free  []handle
	live  int
	peak  int
}

func (a *nodeArena) alloc(nd node) handle {
	var h handle
	if k := len(a.free); k > 0 {
		h = a.free[k-1]
		a.free = a.free[:k-1]
		a.nodes[h] = nd
	} else {
		h = handle(len(a.nodes))
		a.nodes = append(a.nodes, nd)
	}
	a.live++
	a.peak = max(a.peak, a.live)

	return h
}

func (a *nodeArena) get(h handle) *node { return &a.nodes[h] }

// release drops the node's data and makes the slot reusable.
func (a *nodeArena) release(h handle) {
	a.nodes[h] = node{}
	a.free = append(a.free, h)
	a.live--
}
