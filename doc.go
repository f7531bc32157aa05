// Package lvmip is a compact mixed-integer linear programming toolkit:
// LP-based branch-and-bound plus a branch-and-cut extension with Gomory,
// mixed-integer rounding and 0-1 cover cuts.
//
// 🚀 What is lvmip?
//
//	A pure-Go MILP core that brings together:
//		• Problem data: linear constraints, bounds, integer/binary sets, YAML files
//		• LP oracle: bounded-variable simplex on gonum with tableau recovery
//		• Tree search: best-bound, depth-first and breadth-first node selection
//		• Cutting planes: Gomory fractional, MIR, minimal 0-1 cover
//		• Budgets: node limit, time limit, relative gap, context cancellation
//
// ✨ Why choose lvmip?
//
//   - Small API – one Problem type, two entry points, functional options
//   - Deterministic – fixed tie-breaking in branching, selection and cuts
//   - Pluggable – any LP engine satisfying lp.Solver can replace the default
//   - Observable – glog progress, per-node traces at -v=2, incumbent hooks
//
// Packages:
//
//	model/    — Constraint, Bounds, IntegerSpec, Problem, validation, YAML loading
//	lp/       — LP oracle contract and the gonum-backed Simplex
//	cuts/     — cut families, separation, efficacy and deduplication
//	mip/      — branch-and-bound / branch-and-cut engine, options and results
//	examples/ — runnable programs (knapsack, production planning)
//
// Quick example (0-1 knapsack, capacity 7):
//
//	maximize   3x0 + 4x1 + 5x2 + 6x3
//	subject to 5x0 + 3x1 + 4x2 + 2x3 ≤ 7,  x ∈ {0,1}⁴
//
//	res, _ := mip.SolveBranchAndCut(ctx, p, mip.WithCoverCuts(true))
//	// res.ObjectiveValue == 11, res.Solution == [0 0 1 1]
//
//	go get github.com/katalvlaran/lvmip
package lvmip
