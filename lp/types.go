package lp

import (
	"errors"
	"math"

	"github.com/katalvlaran/lvmip/model"
)

// Sentinel errors.
var (
	// ErrNumerical marks an oracle failure that is not a verdict on the LP
	// (singular basis, cycling guard, rank-deficient equalities, …).
	// Callers treat the affected subproblem as unsolved, never as infeasible
	// evidence about the model.
	ErrNumerical = errors.New("lp: numerical failure")

	// ErrDimensionMismatch is returned when objective, constraints and bounds
	// disagree on the number of variables.
	ErrDimensionMismatch = errors.New("lp: dimension mismatch")
)

// Status is the verdict of an LP solve.
type Status int

const (
	// Optimal means X is an optimal vertex.
	Optimal Status = iota
	// Infeasible means no point satisfies constraints and bounds.
	Infeasible
	// Unbounded means the objective decreases without limit.
	Unbounded
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	default:
		return "unknown"
	}
}

// Solver is the LP oracle contract: minimize Objective·x subject to
// Constraints and Lower ≤ x ≤ Upper, over continuous x.
//
// Implementations must be deterministic for identical input and must
// populate Result.Tableau when Problem.WantTableau is set and a basis is
// available. A returned error means the oracle could not decide; it must wrap
// ErrNumerical (or ErrDimensionMismatch for malformed input).
type Solver interface {
	Solve(p Problem) (Result, error)
}

// Problem is one continuous relaxation handed to a Solver.
type Problem struct {
	Objective   []float64
	Constraints []model.Constraint
	Lower       []float64 // len == len(Objective); −Inf allowed
	Upper       []float64 // len == len(Objective); +Inf allowed
	WantTableau bool
}

// Result is the outcome of a successful (decided) LP solve.
// X, Columns and Tableau are only meaningful when Status == Optimal.
type Result struct {
	Status    Status
	X         []float64
	Objective float64

	// Columns describes the standard-form columns the oracle worked with;
	// ColumnValues holds their values at X. Cut generators use both to map
	// inequalities between the standard form and the original variables.
	Columns      []Column
	ColumnValues []float64

	// Tableau is nil unless requested and available.
	Tableau *Tableau
}

// Feasible reports Status == Optimal.
func (r Result) Feasible() bool { return r.Status == Optimal }

// ColumnKind classifies a standard-form column.
type ColumnKind int

const (
	// Structural is a shifted original variable: x = Offset + Sign·p, p ≥ 0.
	Structural ColumnKind = iota
	// FreePart is one half of a split free variable (x = p − q).
	// It has no affine expression in x.
	FreePart
	// Slack is the slack of an inequality constraint: s = RHS − a·x ≥ 0.
	Slack
	// BoundSlack is the slack of a finite upper bound: s = u − x ≥ 0.
	BoundSlack
)

// Term is a single coefficient on an original variable.
type Term struct {
	Var  int
	Coef float64
}

// Column is one nonnegative standard-form variable.
//
// For every kind but FreePart the column value equals Σ Terms + Const,
// an affine function of the original variables.
type Column struct {
	Kind   ColumnKind
	Var    int     // owning variable (Structural, FreePart, BoundSlack), else −1
	Row    int     // owning constraint (Slack), else −1
	Sign   float64 // Structural/FreePart: x contribution is Sign·value
	Offset float64 // Structural: x = Offset + Sign·value
	Terms  []Term
	Const  float64
}

// Affine reports whether the column has an expression in x.
func (c Column) Affine() bool { return c.Kind != FreePart }

// Value evaluates the column's affine expression at x.
// It returns NaN for FreePart columns.
func (c Column) Value(x []float64) float64 {
	if !c.Affine() {
		return math.NaN()
	}
	v := c.Const
	for _, t := range c.Terms {
		v += t.Coef * x[t.Var]
	}

	return v
}

// Tableau holds the rows of B⁻¹[A | b] for the basis of the returned vertex:
//
//	col[Basis[r]] + Σ_{k nonbasic} Rows[r][k]·col[k] = RHS[r]
//
// Column indices refer to Result.Columns. Each row is an equality implied by
// the standard form, hence satisfied by every feasible point.
type Tableau struct {
	Basis []int
	Rows  [][]float64
	RHS   []float64

	basic []bool
}

// IsBasic reports whether column k is in the basis.
func (t *Tableau) IsBasic(k int) bool {
	return k >= 0 && k < len(t.basic) && t.basic[k]
}

// Affine folds Σ alpha[k]·col[k] into coeffs·x + constant over n original
// variables. ok is false when a non-zero alpha touches a FreePart column.
func Affine(cols []Column, alpha []float64, n int) (coeffs []float64, constant float64, ok bool) {
	coeffs = make([]float64, n)
	for k, a := range alpha {
		if a == 0 {
			continue
		}
		c := cols[k]
		if !c.Affine() {
			return nil, 0, false
		}
		for _, t := range c.Terms {
			coeffs[t.Var] += a * t.Coef
		}
		constant += a * c.Const
	}

	return coeffs, constant, true
}
