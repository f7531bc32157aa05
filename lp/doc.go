// Package lp defines the LP-oracle contract consumed by the mixed-integer
// engine and ships a pure-Go implementation on top of gonum.
//
// The contract (Solver) is deliberately small: given a linear objective, a set
// of linear constraints and per-variable bounds, return the verdict
// (Optimal / Infeasible / Unbounded), an optimal vertex, its objective value
// and, on request, the simplex tableau of that vertex. An error is reserved
// for oracle failures (ErrNumerical) and malformed input
// (ErrDimensionMismatch); infeasibility is a verdict, not an error.
//
// The default oracle, Simplex, delegates pivoting to
// gonum.org/v1/gonum/optimize/convex/lp and reconstructs the tableau with
// gonum/mat. Any other Solver (for example a HiGHS or GLPK binding) can be
// plugged into the engine instead.
//
// Standard-form columns are exported (Column) together with their affine
// expression in the original variables so that cut generators can derive an
// inequality on the tableau and translate it back (see Affine).
package lp
