package lp

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// consistTol is the relative residual on the right-hand side above which a
// dependent equality contradicts the rows it depends on.
const consistTol = 1e-7

// independentRows selects a maximal linearly independent subset of the
// equality rows a·z = b, in order. gonum's Simplex needs full row rank.
//
// Modified Gram–Schmidt runs on the augmented rows [a | b], with projections
// taken from the a part only. A row whose a part vanishes is a combination of
// the kept rows; its leftover b is then the mismatch between its right-hand
// side and that combination. ok is false when the mismatch is not round-off,
// i.e. the system has no solution.
//
// Complexity: O(m²·n) for m rows of length n.
func independentRows(rows [][]float64, rhs []float64) (keep []bool, ok bool) {
	var (
		qa = make([][]float64, 0, len(rows))
		qb = make([]float64, 0, len(rows))
	)
	keep = make([]bool, len(rows))
	for r, a := range rows {
		w := append([]float64(nil), a...)
		wb := rhs[r]
		for i, q := range qa {
			c := floats.Dot(q, w)
			floats.AddScaled(w, -c, q)
			wb -= c * qb[i]
		}
		norm := floats.Norm(w, 2)
		if norm <= indepTol*max(1, floats.Norm(a, 2)) {
			if math.Abs(wb) > consistTol*max(1, math.Abs(rhs[r])) {
				return nil, false
			}
			continue
		}
		floats.Scale(1/norm, w)
		qa = append(qa, w)
		qb = append(qb, wb/norm)
		keep[r] = true
	}

	return keep, true
}
