// Package cuts implements the cutting-plane families used by the
// branch-and-cut engine:
//
//   - Gomory: fractional Gomory cuts read off the optimal simplex tableau,
//     Σ frac(a_j)·y_j ≥ frac(b̄) over the nonbasic columns of a row whose basic
//     variable is integral but takes a fractional value.
//   - MIR: mixed-integer rounding of a single constraint row rewritten over
//     nonnegative columns, scaled by the coefficient of an integer column.
//   - Cover: minimal-cover inequalities Σ_{i∈S} x_i ≤ |S| − 1 for rows whose
//     variables are all binary (negative weights are complemented).
//
// The set of families is closed (Family) and each one implements the same
// capability, Family.Generate. Separate runs an enabled subset, drops cuts
// that are not violated by the current LP point and removes duplicates.
//
// Validity: every emitted cut is satisfied by all integer-feasible points of
// the subproblem it was derived from. Gomory cuts use the node's bounds and
// are therefore local to the node's subtree; MIR and cover cuts depend only on
// a single row and the nonnegativity of its columns.
//
// Policy for ties and volume (deterministic):
//   - Cover: one cover per row per call, greedy by LP value (desc), weight
//     (desc), index (asc); reduced to a minimal cover by single-item removal,
//     trying the least attractive items first.
//   - MIR: one cut per row per call, the most violated over the candidate
//     scaling factors.
//   - Every family emits at most Config.MaxPerFamily cuts, most efficacious
//     first, ties by generation order.
package cuts
