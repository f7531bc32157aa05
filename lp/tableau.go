package lp

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// indepTol is the relative residual norm below which a candidate column is
	// considered dependent on the columns already in the basis.
	indepTol = 1e-8

	// maxCond rejects bases too ill-conditioned to yield trustworthy rows.
	maxCond = 1e10

	// zeroTol wipes round-off from tableau entries.
	zeroTol = 1e-11
)

// buildTableau reconstructs a basis for the vertex described by values and
// returns B⁻¹[A | b] over the full column space.
//
// gonum's Simplex returns only the primal vertex. Every column with a
// positive value must be basic; the basis is completed greedily (slacks
// first, then by index) with columns that keep it linearly independent.
// Because each tableau row is a linear combination of the rows of A·z = b,
// it is valid for every feasible point even when the completed basis is not
// the one the simplex terminated with (degenerate vertices).
//
// Returns nil when no well-conditioned basis can be formed.
func buildTableau(A *mat.Dense, b []float64, active []int, values []float64, cols []Column) *Tableau {
	m, nA := A.Dims()

	var (
		order   = make([]int, 0, nA)
		placed  = make([]bool, nA)
		i       int
		pos     []int
		k       int
		v       float64
		isSlack = func(c Column) bool { return c.Kind == Slack || c.Kind == BoundSlack }
	)
	// 1) Positive columns, largest value first.
	for i, k = range active {
		if values[k] > feasTol {
			pos = append(pos, i)
		}
	}
	sort.SliceStable(pos, func(a, b int) bool {
		va, vb := values[active[pos[a]]], values[active[pos[b]]]
		if va != vb {
			return va > vb
		}

		return pos[a] < pos[b]
	})
	for _, i = range pos {
		order = append(order, i)
		placed[i] = true
	}
	// 2) Slacks, 3) everything else.
	for i, k = range active {
		if !placed[i] && isSlack(cols[k]) {
			order = append(order, i)
			placed[i] = true
		}
	}
	for i = range active {
		if !placed[i] {
			order = append(order, i)
		}
	}

	// Greedy modified Gram–Schmidt selection.
	var (
		basis = make([]int, 0, m)
		q     = make([][]float64, 0, m)
		col   = make([]float64, m)
	)
	for _, i = range order {
		if len(basis) == m {
			break
		}
		mat.Col(col, i, A)
		w := append([]float64(nil), col...)
		for _, qv := range q {
			floats.AddScaled(w, -floats.Dot(qv, w), qv)
		}
		norm := floats.Norm(w, 2)
		if norm <= indepTol*max(1, floats.Norm(col, 2)) {
			continue
		}
		floats.Scale(1/norm, w)
		q = append(q, w)
		basis = append(basis, i)
	}
	if len(basis) < m {
		return nil
	}

	B := mat.NewDense(m, m, nil)
	for c, i := range basis {
		mat.Col(col, i, A)
		B.SetCol(c, col)
	}

	var (
		T    mat.Dense
		bbar mat.VecDense
		cond mat.Condition
	)
	if err := T.Solve(B, A); err != nil {
		if !errors.As(err, &cond) || float64(cond) > maxCond {
			return nil
		}
	}
	if err := bbar.SolveVec(B, mat.NewVecDense(m, append([]float64(nil), b...))); err != nil {
		if !errors.As(err, &cond) || float64(cond) > maxCond {
			return nil
		}
	}

	t := &Tableau{
		Basis: make([]int, m),
		Rows:  make([][]float64, m),
		RHS:   make([]float64, m),
		basic: make([]bool, len(cols)),
	}
	for r := 0; r < m; r++ {
		row := make([]float64, len(cols))
		for i, k = range active {
			v = T.At(r, i)
			if v < zeroTol && v > -zeroTol {
				v = 0
			}
			row[k] = v
		}
		t.Basis[r] = active[basis[r]]
		t.basic[t.Basis[r]] = true
		t.Rows[r] = row
		t.RHS[r] = bbar.AtVec(r)
	}
	// Exact identity on the basic columns.
	for r := 0; r < m; r++ {
		for _, bk := range t.Basis {
			t.Rows[r][bk] = 0
		}
		t.Rows[r][t.Basis[r]] = 1
	}

	return t
}
