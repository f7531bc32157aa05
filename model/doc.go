// Package model defines the data a mixed-integer linear program is made of:
// linear constraints in canonical form, variable bounds, the integer/binary
// index sets and the Problem that ties them together.
//
// Canonical form:
//
//	LessEq:  Coeffs·x − RHS ≤ 0
//	Equal:   Coeffs·x − RHS = 0
//
// A "≥" constraint is stored negated as LessEq (see GE). Every consumer of a
// Problem (the LP oracle, the cut generators, the branch-and-bound engine)
// sees only these two senses.
//
// The package also hosts the fractional-analysis helpers shared by the search
// engine and the cut generators:
//
//   - FractionalPart:          floor-based fractional part, frac(−0.4) = 0.6.
//   - IsIntegerFeasible:       integrality test within a tolerance.
//   - SelectBranchingVariable: most-fractional variable, lowest index on ties.
//
// Validation is strict and happens before any LP is solved: every violation
// is reported as an error wrapping ErrInvalidInput that names the offending
// constraint or index.
//
// Problems can be loaded from YAML files (see Load / LoadFile):
//
//	sense: maximize
//	objective: [3, 4, 5, 6]
//	constraints:
//	  - {name: cap, coeffs: [5, 3, 4, 2], op: "<=", rhs: 7}
//	integers: [0, 1, 2, 3]
//	binaries: [0, 1, 2, 3]
package model
