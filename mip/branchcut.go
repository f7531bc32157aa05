package mip

import (
	"github.com/golang/glog"

	"github.com/katalvlaran/lvmip/cuts"
	"github.com/katalvlaran/lvmip/model"
)

// cutRound tightens nd's relaxation with up to MaxCuttingRounds separation
// rounds. A round runs the enabled families against the node's rows and LP
// point, appends the violated cuts to nd.cuts and re-solves. The loop stops
// early when no cut is found, the LP becomes integer feasible or infeasible,
// the node can already be pruned by the incumbent, or the oracle fails (the
// previous relaxation is kept; the cuts stay since they are valid).
//
// Cuts are node-local: children inherit them, siblings and ancestors never
// see them.
func (e *engine) cutRound(nd *node) {
	nd.cutDone = true
	if len(e.families) == 0 {
		return
	}

	var rounds int
	for rounds < e.opts.MaxCuttingRounds {
		if !nd.lp.Feasible() || model.IsIntegerFeasible(nd.lp.X, e.spec, e.opts.IntegerTolerance) {
			break
		}
		if e.haveIncumbent() && nd.bound >= e.incValue-e.pruneTol() {
			break
		}

		found := cuts.Separate(&cuts.Input{
			Rows:     e.rows(nd),
			Integers: e.spec,
			LP:       nd.lp,
			Config:   e.opts.Cuts,
		}, e.families)
		rounds++
		if len(found) == 0 {
			break
		}

		added := nd.cuts[:len(nd.cuts):len(nd.cuts)]
		for _, c := range found {
			added = append(added, c.Constraint)
			e.stats.CutsByFamily[c.Family]++
		}
		nd.cuts = added
		e.stats.CutsGenerated += len(found)
		if glog.V(2) {
			glog.Infof("mip: node %d round %d: %d cuts, bound %g", nd.id, rounds, len(found), e.sign*nd.bound)
		}

		res, err := e.solveLP(nd)
		if err != nil {
			e.oracleFailure(nd.id, err)
			break
		}
		nd.setLP(res)
	}

	e.stats.TotalCuttingRounds += rounds
	e.stats.CuttingRounds = max(e.stats.CuttingRounds, rounds)
}
