package mip

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/golang/glog"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvmip/cuts"
	"github.com/katalvlaran/lvmip/lp"
	"github.com/katalvlaran/lvmip/model"
)

// pruneRelTol absorbs LP round-off when comparing a node bound with the
// incumbent; the same tolerance decides whether a new incumbent is better.
const pruneRelTol = 1e-9

// engine holds the state of one solve. It is built per call and never shared.
type engine struct {
	// Problem data, minimization form.
	prob  *model.Problem
	sign  float64 // +1 minimize, −1 maximize
	obj   []float64
	base  []model.Constraint
	lower []float64
	upper []float64
	spec  model.IntegerSpec

	// Policy.
	opts        Options
	withCuts    bool
	families    []cuts.Family
	wantTableau bool

	// Search state.
	arena  nodeArena
	front  *frontier
	nextID int
	seq    uint64

	incumbent []float64
	incValue  float64
	bestBound float64

	// Budget.
	ctx      context.Context
	start    time.Time
	deadline time.Time

	stats Result
}

func newEngine(ctx context.Context, p *model.Problem, withCuts bool, opts Options) *engine {
	e := &engine{
		prob:      p,
		sign:      1,
		obj:       append([]float64(nil), p.Objective...),
		base:      p.Constraints,
		lower:     p.LowerBounds(),
		upper:     p.UpperBounds(),
		spec:      p.Integers,
		opts:      opts,
		withCuts:  withCuts,
		front:     newFrontier(opts.NodeSelection),
		incValue:  math.Inf(1),
		bestBound: math.Inf(-1),
		ctx:       ctx,
	}
	if p.Sense == model.Maximize {
		e.sign = -1
		floats.Scale(-1, e.obj)
	}
	if withCuts {
		e.stats.CutsByFamily = make(map[cuts.Family]int)
		if opts.MaxCuttingRounds > 0 {
			e.families = opts.families()
		}
		for _, f := range e.families {
			e.wantTableau = e.wantTableau || f.NeedsTableau()
		}
	}

	return e
}

// run executes Initializing and Searching, then assembles the Result.
func (e *engine) run() Result {
	e.start = time.Now()
	e.deadline = e.start.Add(e.opts.TimeLimit)

	// Initializing: root relaxation over the base constraints.
	root := node{id: e.newID(), parent: -1}
	res, err := e.solveLP(&root)
	if err != nil {
		e.oracleFailure(root.id, err)
		return e.finish(Infeasible)
	}
	root.setLP(res)
	switch res.Status {
	case lp.Infeasible:
		return e.finish(Infeasible)
	case lp.Unbounded:
		return e.finish(Unbounded)
	}
	e.logf("mip: root LP bound %g over %d rows, %d variables", e.sign*root.bound, len(e.base), len(e.obj))
	if e.withCuts {
		e.cutRound(&root)
		if !root.lp.Feasible() {
			return e.finish(Infeasible)
		}
		e.logf("mip: root bound after cuts %g (%d cuts)", e.sign*root.bound, len(root.cuts))
	}
	e.bestBound = root.bound
	e.push(root)

	// Searching.
	for e.front.Len() > 0 {
		if st, stop := e.checkpoint(); stop {
			return e.finish(st)
		}
		it := e.front.pop()
		e.stats.NodesExplored++
		nd := e.arena.get(it.h)
		if e.withCuts && !nd.cutDone {
			e.cutRound(nd)
		}
		e.trace(nd)

		switch {
		case e.haveIncumbent() && nd.bound >= e.incValue-e.pruneTol():
			// Pruned by bound.
		case !nd.lp.Feasible():
			// Pruned by infeasibility.
		case model.IsIntegerFeasible(nd.lp.X, e.spec, e.opts.IntegerTolerance):
			e.offer(nd)
		default:
			e.bestBound = math.Min(e.front.minBound(), nd.bound)
			if e.haveIncumbent() && relativeGap(e.incValue, e.bestBound) <= e.opts.RelativeGap {
				e.arena.release(it.h)
				return e.finish(Optimal)
			}
			e.branch(nd) // nd is invalid once children are allocated
		}
		e.arena.release(it.h)
	}

	if e.haveIncumbent() {
		e.bestBound = e.incValue
		return e.finish(Optimal)
	}

	return e.finish(Infeasible)
}

// checkpoint enforces the cooperative budget at the top of each iteration.
func (e *engine) checkpoint() (Status, bool) {
	if err := e.ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return TimeLimitReached, true
		}
		return Interrupted, true
	}
	if !time.Now().Before(e.deadline) {
		return TimeLimitReached, true
	}
	if e.stats.NodesExplored >= e.opts.MaxNodes {
		return NodeLimitReached, true
	}

	return Unknown, false
}

func (e *engine) newID() int {
	id := e.nextID
	e.nextID++

	return id
}

func (e *engine) haveIncumbent() bool { return e.incumbent != nil }

func (e *engine) pruneTol() float64 {
	return pruneRelTol * math.Max(1, math.Abs(e.incValue))
}

// push stores nd in the arena and queues it.
func (e *engine) push(nd node) {
	e.seq++
	nd.seq = e.seq
	h := e.arena.alloc(nd)
	e.front.push(entry{h: h, bound: nd.bound, seq: nd.seq})
}

// nodeBounds applies the node's branching decisions to the root bounds.
func (e *engine) nodeBounds(nd *node) (lower, upper []float64) {
	lower = append([]float64(nil), e.lower...)
	upper = append([]float64(nil), e.upper...)
	for _, o := range nd.overrides {
		lower[o.Var] = math.Max(lower[o.Var], o.Lower)
		upper[o.Var] = math.Min(upper[o.Var], o.Upper)
	}

	return lower, upper
}

// rows returns the base constraints followed by the node's cuts.
func (e *engine) rows(nd *node) []model.Constraint {
	if len(nd.cuts) == 0 {
		return e.base
	}
	out := make([]model.Constraint, 0, len(e.base)+len(nd.cuts))
	out = append(out, e.base...)

	return append(out, nd.cuts...)
}

// solveLP runs the oracle on the node's relaxation.
func (e *engine) solveLP(nd *node) (lp.Result, error) {
	lower, upper := e.nodeBounds(nd)
	e.stats.LPSolves++

	return e.opts.Oracle.Solve(lp.Problem{
		Objective:   e.obj,
		Constraints: e.rows(nd),
		Lower:       lower,
		Upper:       upper,
		WantTableau: e.wantTableau,
	})
}

// oracleFailure records a node-local LP failure.
func (e *engine) oracleFailure(id int, err error) {
	e.stats.OracleFailures++
	glog.Warningf("mip: node %d: LP oracle failure, node treated as infeasible: %v", id, err)
}

// branch splits nd on its most fractional variable into floor and ceiling
// children. Children whose relaxation is infeasible, or cannot be solved,
// are pruned here and never enter the frontier.
func (e *engine) branch(nd *node) {
	j, ok := model.SelectBranchingVariable(nd.lp.X, e.spec, e.opts.IntegerTolerance)
	if !ok {
		return
	}
	v := nd.lp.X[j]
	kids := [2]node{
		nd.child(e.newID(), override{Var: j, Lower: math.Inf(-1), Upper: math.Floor(v)}),
		nd.child(e.newID(), override{Var: j, Lower: math.Ceil(v), Upper: math.Inf(1)}),
	}
	if glog.V(2) {
		glog.Infof("mip: node %d branches on x%d = %g into %d (≤ %g) and %d (≥ %g)",
			nd.id, j, v, kids[0].id, math.Floor(v), kids[1].id, math.Ceil(v))
	}

	for i := range kids {
		res, err := e.solveLP(&kids[i])
		if err != nil {
			e.oracleFailure(kids[i].id, err)
			continue
		}
		kids[i].setLP(res)
		if !res.Feasible() {
			continue
		}
		e.push(kids[i])
	}
}

// offer makes the node's solution the incumbent when it is strictly better.
// Integer components are rounded and the value recomputed from them.
func (e *engine) offer(nd *node) {
	x := model.RoundIntegers(nd.lp.X, e.spec)
	for _, j := range e.spec.Integer {
		if x[j] == 0 {
			x[j] = 0 // drop the sign of −0
		}
	}
	v := floats.Dot(e.obj, x)
	if e.haveIncumbent() && v >= e.incValue-e.pruneTol() {
		return
	}
	e.incumbent, e.incValue = x, v
	e.stats.IncumbentUpdates++
	e.logf("mip: incumbent %g at node %d (%d explored)", e.sign*v, nd.id, e.stats.NodesExplored)

	if e.opts.IncumbentHook != nil {
		e.opts.IncumbentHook(Incumbent{
			Solution:       append([]float64(nil), x...),
			ObjectiveValue: e.prob.ObjectiveValue(x),
			Node:           nd.id,
			NodesExplored:  e.stats.NodesExplored,
		})
	}
}

// finish assembles the Result in the problem's own sense.
func (e *engine) finish(st Status) Result {
	r := e.stats
	r.Status = st
	r.PeakOpenNodes = e.arena.peak
	r.ElapsedTime = time.Since(e.start)

	bound := e.bestBound
	switch st {
	case Infeasible:
		bound = math.Inf(1)
	case Unbounded:
		bound = math.Inf(-1)
	case NodeLimitReached, TimeLimitReached, Interrupted:
		bound = e.front.minBound()
		if e.haveIncumbent() {
			bound = math.Min(bound, e.incValue)
		}
	}
	r.BestBound = e.sign * bound

	if e.haveIncumbent() {
		r.Solution = append([]float64(nil), e.incumbent...)
		r.ObjectiveValue = e.prob.ObjectiveValue(r.Solution)
		r.RelativeGap = relativeGap(e.incValue, bound)
	} else {
		r.ObjectiveValue = e.sign * math.Inf(1)
		r.RelativeGap = math.Inf(1)
	}

	e.logf("mip: %s after %d nodes (%d LP solves, %d cuts) in %v: objective %g, bound %g, gap %.3g",
		st, r.NodesExplored, r.LPSolves, r.CutsGenerated, r.ElapsedTime, r.ObjectiveValue, r.BestBound, r.RelativeGap)

	return r
}

// relativeGap is (inc − bound)/|inc|, or inc − bound when inc is exactly 0,
// clamped at 0.
func relativeGap(inc, bound float64) float64 {
	var g float64
	if inc == 0 {
		g = inc - bound
	} else {
		g = (inc - bound) / math.Abs(inc)
	}
	if g < 0 || math.IsNaN(g) {
		return 0
	}

	return g
}

func (e *engine) logf(format string, args ...interface{}) {
	if e.opts.Verbose {
		glog.InfoDepth(1, fmt.Sprintf(format, args...))
	}
}

// trace logs one popped node at -v=2 and dumps its relaxation at -v=3.
func (e *engine) trace(nd *node) {
	if !glog.V(2) {
		return
	}
	glog.Infof("mip: pop node %d (parent %d, depth %d) bound %g, %d cuts, frontier %d",
		nd.id, nd.parent, nd.depth, e.sign*nd.bound, len(nd.cuts), e.front.Len())
	if glog.V(3) {
		glog.Infof("mip: node %d relaxation:\n%s", nd.id, spew.Sdump(nd.lp.Status, nd.lp.X, nd.overrides))
	}
}
