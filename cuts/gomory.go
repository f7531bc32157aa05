package cuts

import (
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvmip/lp"
	"github.com/katalvlaran/lvmip/model"
)

// gomory derives fractional Gomory cuts from the tableau rows
//
//	y_B + Σ_{k∉B} ā_k·y_k = b̄
//
// whose basic column y_B is integral on integer points and b̄ is fractional.
// When every nonbasic column with ā_k ≠ 0 is integral as well, the cut
//
//	Σ_{k∉B} frac(ā_k)·y_k ≥ frac(b̄)
//
// holds for all integer-feasible points. It is mapped back to x through the
// columns' affine expressions.
//
// Complexity: O(m·(N + n·t)) for m rows, N columns, t terms per column.
func gomory(in *Input) []scored {
	tab := in.LP.Tableau
	if tab == nil {
		return nil
	}

	var (
		cols     = in.LP.Columns
		n        = len(in.LP.X)
		integral = integralColumns(cols, in.intMask)
		minFrac  = in.Config.MinFraction
		found    []scored
	)
	for r, row := range tab.Rows {
		bk := tab.Basis[r]
		if !integral[bk] {
			continue
		}
		f0 := model.FractionalPart(tab.RHS[r])
		if f0 < minFrac || f0 > 1-minFrac {
			continue
		}

		alpha := make([]float64, len(cols))
		usable := true
		for k, a := range row {
			if a == 0 || tab.IsBasic(k) {
				continue
			}
			if !integral[k] {
				usable = false
				break
			}
			fk := model.FractionalPart(a)
			if fk < gomoryZero {
				continue
			}
			alpha[k] = fk
		}
		if !usable {
			continue
		}

		coeffs, constant, ok := lp.Affine(cols, alpha, n)
		if !ok {
			continue
		}
		// coeffs·x + constant ≥ f0  ⇔  −coeffs·x ≤ constant − f0
		floats.Scale(-1, coeffs)
		found = accept(found, model.LE(coeffs, constant-f0).Named("gomory"), in)
	}

	return found
}

// gomoryZero drops fractional parts indistinguishable from round-off.
// Fractions close to one are kept: rounding them to zero would weaken
// validity, keeping them only weakens the cut.
const gomoryZero = 1e-9

// integralColumns marks the columns that take integer values on every
// integer-feasible point: an affine expression with integer coefficients on
// integer variables only, plus an integer constant.
func integralColumns(cols []lp.Column, intMask []bool) []bool {
	out := make([]bool, len(cols))
	for k, c := range cols {
		if !c.Affine() || !isIntegral(c.Const) {
			continue
		}
		ok := true
		for _, t := range c.Terms {
			if t.Var < 0 || t.Var >= len(intMask) || !intMask[t.Var] || !isIntegral(t.Coef) {
				ok = false
				break
			}
		}
		out[k] = ok
	}

	return out
}
