// Simplex: the gonum-backed LP oracle.
//
// Simplex converts a bounded-variable LP into the standard form expected by
// gonum's convex/lp.Simplex
//
//	minimize c·z  subject to  A·z = b, z ≥ 0
//
// and maps the optimal vertex back to the original variables.
//
// Conversion (per original variable x_j with bounds [l, u]):
//   - l finite:           x = l + p              (+ row p + s = u − l when u finite)
//   - l = −Inf, u finite: x = u − p
//   - both infinite:      x = p − q              (FreePart columns)
//
// Per constraint a·x ≤ b a slack s = b − a·x is appended; equalities get none.
// Structurally empty rows and columns are resolved before calling gonum,
// which rejects them (ErrZeroRow / ErrZeroColumn), and dependent equalities
// are reduced to an independent subset (gonum needs full row rank).
//
// Complexity: dominated by gonum's dense simplex, O(iter·m·n) per solve.

package lp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	convex "gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/katalvlaran/lvmip/model"
)

const (
	// DefaultTol is the optimality tolerance handed to gonum.
	DefaultTol = 1e-10

	// feasTol absorbs bound conflicts and tiny negative values at the vertex.
	feasTol = 1e-9
)

// Simplex is the default Solver. The zero value is ready to use; it holds no
// mutable state and is safe for concurrent use.
type Simplex struct {
	// Tol overrides DefaultTol when positive.
	Tol float64
}

var _ Solver = Simplex{}

// standardForm is the converted problem plus the bookkeeping to map back.
type standardForm struct {
	n         int
	cols      []Column
	colsOf    [][]int   // per original variable: its column indices
	varOffset []float64 // x_j = varOffset[j] + Σ Sign·value over colsOf[j]
	cost      []float64 // per column
	rows      [][]float64
	rhs       []float64
}

// Solve implements Solver.
func (s Simplex) Solve(p Problem) (Result, error) {
	n := len(p.Objective)
	if n == 0 || len(p.Lower) != n || len(p.Upper) != n {
		return Result{}, fmt.Errorf("%w: objective %d, lower %d, upper %d",
			ErrDimensionMismatch, n, len(p.Lower), len(p.Upper))
	}
	for i, c := range p.Constraints {
		if len(c.Coeffs) != n {
			return Result{}, fmt.Errorf("%w: constraint %d has %d coefficients, want %d",
				ErrDimensionMismatch, i, len(c.Coeffs), n)
		}
	}

	lower := append([]float64(nil), p.Lower...)
	upper := append([]float64(nil), p.Upper...)
	for j := 0; j < n; j++ {
		if lower[j] > upper[j] {
			if lower[j]-upper[j] > feasTol {
				return Result{Status: Infeasible}, nil
			}
			upper[j] = lower[j]
		}
	}

	sf, infeasible := buildStandardForm(p, lower, upper)
	if infeasible {
		return Result{Status: Infeasible}, nil
	}

	tol := s.Tol
	if tol <= 0 {
		tol = DefaultTol
	}

	return sf.solve(p, lower, upper, tol)
}

// buildStandardForm performs the conversion described in the file comment.
// Linearly dependent equalities are dropped. infeasible is true when an empty
// equality row has a non-zero right-hand side or when dependent equalities
// contradict each other.
func buildStandardForm(p Problem, lower, upper []float64) (*standardForm, bool) {
	var (
		n  = len(p.Objective)
		sf = &standardForm{
			n:         n,
			colsOf:    make([][]int, n),
			varOffset: make([]float64, n),
		}
		j int
	)

	// Structural columns.
	for j = 0; j < n; j++ {
		l, u := lower[j], upper[j]
		switch {
		case !math.IsInf(l, -1):
			sf.addColumn(j, Column{Kind: Structural, Var: j, Row: -1, Sign: 1, Offset: l,
				Terms: []Term{{Var: j, Coef: 1}}, Const: -l}, p.Objective[j])
			sf.varOffset[j] = l
		case !math.IsInf(u, 1):
			sf.addColumn(j, Column{Kind: Structural, Var: j, Row: -1, Sign: -1, Offset: u,
				Terms: []Term{{Var: j, Coef: -1}}, Const: u}, -p.Objective[j])
			sf.varOffset[j] = u
		default:
			sf.addColumn(j, Column{Kind: FreePart, Var: j, Row: -1, Sign: 1}, p.Objective[j])
			sf.addColumn(j, Column{Kind: FreePart, Var: j, Row: -1, Sign: -1}, -p.Objective[j])
		}
	}

	// Row specifications first, dense rows once the column count is final.
	type rowSpec struct {
		coef  []float64 // over structural columns (len == current column count)
		rhs   float64
		slack int // column index of the slack, −1 for equalities
	}
	var (
		specs   []rowSpec
		nStruct = len(sf.cols)
	)
	for i, c := range p.Constraints {
		var (
			coef = make([]float64, nStruct)
			rhs  = c.RHS
			zero = true
		)
		for j = 0; j < n; j++ {
			a := c.Coeffs[j]
			if a == 0 {
				continue
			}
			rhs -= a * sf.varOffset[j]
			for _, k := range sf.colsOf[j] {
				coef[k] += a * sf.cols[k].Sign
				if coef[k] != 0 {
					zero = false
				}
			}
		}
		if c.Sense == model.Equal {
			if zero {
				if math.Abs(rhs) > feasTol {
					return nil, true
				}
				continue
			}
			specs = append(specs, rowSpec{coef: coef, rhs: rhs, slack: -1})
			continue
		}

		terms := make([]Term, 0, n)
		for j = 0; j < n; j++ {
			if c.Coeffs[j] != 0 {
				terms = append(terms, Term{Var: j, Coef: -c.Coeffs[j]})
			}
		}
		k := sf.addColumn(-1, Column{Kind: Slack, Var: -1, Row: i, Terms: terms, Const: c.RHS}, 0)
		specs = append(specs, rowSpec{coef: coef, rhs: rhs, slack: k})
	}

	// Finite upper bounds of lower-shifted variables.
	for j = 0; j < n; j++ {
		if math.IsInf(lower[j], -1) || math.IsInf(upper[j], 1) {
			continue
		}
		coef := make([]float64, nStruct)
		coef[sf.colsOf[j][0]] = 1
		k := sf.addColumn(-1, Column{Kind: BoundSlack, Var: j, Row: -1,
			Terms: []Term{{Var: j, Coef: -1}}, Const: upper[j]}, 0)
		specs = append(specs, rowSpec{coef: coef, rhs: upper[j] - lower[j], slack: k})
	}

	// Equality rows have no slack, so only they can be linearly dependent.
	var (
		eqRows [][]float64
		eqRHS  []float64
		eqAt   []int
	)
	for r, sp := range specs {
		if sp.slack < 0 {
			eqRows = append(eqRows, sp.coef)
			eqRHS = append(eqRHS, sp.rhs)
			eqAt = append(eqAt, r)
		}
	}
	if len(eqRows) > 1 {
		keep, ok := independentRows(eqRows, eqRHS)
		if !ok {
			return nil, true
		}
		drop := make([]bool, len(specs))
		for i, r := range eqAt {
			drop[r] = !keep[i]
		}
		kept := specs[:0]
		for r, sp := range specs {
			if !drop[r] {
				kept = append(kept, sp)
			}
		}
		specs = kept
	}

	total := len(sf.cols)
	sf.rows = make([][]float64, len(specs))
	sf.rhs = make([]float64, len(specs))
	for r, sp := range specs {
		row := make([]float64, total)
		copy(row, sp.coef)
		if sp.slack >= 0 {
			row[sp.slack] = 1
		}
		sf.rows[r] = row
		sf.rhs[r] = sp.rhs
	}

	return sf, false
}

// addColumn appends a column owned by variable j (j < 0 for slacks).
func (sf *standardForm) addColumn(j int, c Column, cost float64) int {
	k := len(sf.cols)
	sf.cols = append(sf.cols, c)
	sf.cost = append(sf.cost, cost)
	if j >= 0 {
		sf.colsOf[j] = append(sf.colsOf[j], k)
	}

	return k
}

// solve runs gonum on the non-empty part of the standard form and maps back.
func (sf *standardForm) solve(p Problem, lower, upper []float64, tol float64) (Result, error) {
	var (
		m         = len(sf.rows)
		total     = len(sf.cols)
		active    = make([]int, 0, total)
		unbounded bool
		k, r      int
	)
	for k = 0; k < total; k++ {
		empty := true
		for r = 0; r < m; r++ {
			if sf.rows[r][k] != 0 {
				empty = false
				break
			}
		}
		if !empty {
			active = append(active, k)
			continue
		}
		// An empty column stays at 0 unless it improves the objective, in which
		// case the LP is unbounded once the remaining rows prove feasible.
		if sf.cost[k] < 0 {
			unbounded = true
		}
	}

	values := make([]float64, total)
	var A *mat.Dense
	if m > 0 {
		nA := len(active)
		if m > nA {
			return Result{}, fmt.Errorf("%w: %d independent rows exceed %d columns", ErrNumerical, m, nA)
		}
		data := make([]float64, 0, m*nA)
		for r = 0; r < m; r++ {
			for _, k = range active {
				data = append(data, sf.rows[r][k])
			}
		}
		A = mat.NewDense(m, nA, data)
		c := make([]float64, nA)
		for i, k := range active {
			c[i] = sf.cost[k]
		}

		z, status, err := runGonum(c, A, sf.rhs, tol)
		if err != nil {
			return Result{}, err
		}
		if status != Optimal {
			res := Result{Status: status}
			if status == Unbounded {
				res.Objective = math.Inf(-1)
			}
			return res, nil
		}
		for i, k := range active {
			v := z[i]
			if v < 0 && v > -feasTol {
				v = 0
			}
			values[k] = v
		}
	}

	if unbounded {
		return Result{Status: Unbounded, Objective: math.Inf(-1)}, nil
	}

	x := make([]float64, sf.n)
	for j := 0; j < sf.n; j++ {
		v := sf.varOffset[j]
		for _, k = range sf.colsOf[j] {
			v += sf.cols[k].Sign * values[k]
		}
		// Snap onto bounds that were hit up to round-off.
		if v < lower[j] && lower[j]-v <= feasTol {
			v = lower[j]
		}
		if v > upper[j] && v-upper[j] <= feasTol {
			v = upper[j]
		}
		x[j] = v
	}

	res := Result{
		Status:       Optimal,
		X:            x,
		Objective:    floats.Dot(p.Objective, x),
		Columns:      sf.cols,
		ColumnValues: values,
	}
	if p.WantTableau && m > 0 {
		res.Tableau = buildTableau(A, sf.rhs, active, values, sf.cols)
	}

	return res, nil
}

// runGonum calls convex.Simplex, translating its verdicts and guarding
// against panics on inputs gonum considers malformed.
func runGonum(c []float64, A *mat.Dense, b []float64, tol float64) (z []float64, status Status, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			z, status, err = nil, Optimal, fmt.Errorf("%w: %v", ErrNumerical, rec)
		}
	}()

	_, z, err = convex.Simplex(c, A, b, tol, nil)
	switch {
	case err == nil:
		return z, Optimal, nil
	case errors.Is(err, convex.ErrInfeasible):
		return nil, Infeasible, nil
	case errors.Is(err, convex.ErrUnbounded):
		return nil, Unbounded, nil
	default:
		return nil, Optimal, fmt.Errorf("%w: %v", ErrNumerical, err)
	}
}
