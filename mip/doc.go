// Package mip solves mixed-integer linear programs by LP-based
// branch-and-bound (Solve) and branch-and-cut (SolveBranchAndCut).
//
// Search (minimization internally; Maximize negates the objective and the
// reported ObjectiveValue and BestBound are converted back):
//
//  1. Initializing: solve the root relaxation. Infeasible, unbounded or
//     unsolvable roots terminate immediately. Branch-and-cut runs a cutting-plane round here.
//  2. Searching, one node per iteration after a cooperative budget check
//     (context, TimeLimit, MaxNodes):
//     a. pop a node per NodeSelection;
//     b. prune it when its bound is not below the incumbent;
//     c. prune it when its relaxation is infeasible;
//     d. when its LP point is integer feasible, offer it as incumbent;
//     e. otherwise recompute the global bound (frontier ∪ node) and stop with
//     Optimal once the relative gap is within RelativeGap;
//     f. branch on the most fractional variable into x ≤ ⌊v⌋ and x ≥ ⌈v⌉.
//     Children with infeasible (or unsolvable) relaxations are pruned at
//     creation and never enter the frontier.
//  3. An exhausted frontier ends Optimal (gap 0) with an incumbent, else
//     Infeasible.
//
// Nodes live in an arena addressed by handle; the frontier is a
// container/heap ordered by the selected strategy. All search state belongs
// to one call, so concurrent solves are independent.
//
// Oracle failures on a node, the root included, are logged (glog.Warningf),
// counted in Result.OracleFailures and the node is treated as infeasible. Progress is
// logged with WithVerbose; per-node traces are available at glog -v=2 and LP
// dumps at -v=3.
//
// Example:
//
//	p := &model.Problem{
//		Sense:       model.Maximize,
//		Objective:   []float64{3, 4, 5, 6},
//		Constraints: []model.Constraint{model.LE([]float64{5, 3, 4, 2}, 7)},
//		Integers:    model.IntegerSpec{Integer: []int{0, 1, 2, 3}, Binary: []int{0, 1, 2, 3}},
//	}
//	res, err := mip.SolveBranchAndCut(ctx, p, mip.WithCoverCuts(true))
package mip
