package cuts

import (
	"math"
	"sort"

	"github.com/katalvlaran/lvmip/lp"
	"github.com/katalvlaran/lvmip/model"
)

// mirCoefTol treats smaller row coefficients as structural zeros.
const mirCoefTol = 1e-12

// mirMaxDeltas bounds the scaling factors tried per row.
const mirMaxDeltas = 8

// mir applies mixed-integer rounding to every row of the node.
//
// A row a·x ≤ b is rewritten over the nonnegative structural columns
// x_j = Offset_j + Sign_j·p_j as Σ c_j·p_j ≤ b' (c_j = a_j·Sign_j,
// b' = b − Σ a_j·Offset_j). Columns of integer variables with an integer
// offset are integer; the rest are continuous. For a scaling δ > 0 with
// f = frac(b'/δ) the MIR inequality
//
//	Σ_int (⌊c_j/δ⌋ + max(0, frac(c_j/δ) − f)/(1 − f))·p_j
//	  + Σ_{cont, c_j<0} (c_j/δ)/(1 − f)·p_j ≤ ⌊b'/δ⌋
//
// is valid. Equalities are rounded in both directions. Rows touching free
// variables are skipped. Per row the most efficacious δ is kept.
func mir(in *Input) []scored {
	var (
		cols  = in.LP.Columns
		n     = len(in.LP.X)
		colOf = make([]int, n)
		free  = make([]bool, n)
		found []scored
	)
	for j := range colOf {
		colOf[j] = -1
	}
	for k, c := range cols {
		switch c.Kind {
		case lp.Structural:
			colOf[c.Var] = k
		case lp.FreePart:
			free[c.Var] = true
		}
	}

	for _, row := range in.Rows {
		if len(row.Coeffs) != n {
			continue
		}
		found = mirRow(found, row.Coeffs, row.RHS, in, colOf, free)
		if row.Sense == model.Equal {
			neg := make([]float64, n)
			for j, a := range row.Coeffs {
				neg[j] = -a
			}
			found = mirRow(found, neg, -row.RHS, in, colOf, free)
		}
	}

	return found
}

// mirRow rounds a·x ≤ b and appends the best cut, if any.
func mirRow(found []scored, a []float64, b float64, in *Input, colOf []int, free []bool) []scored {
	var (
		cols    = in.LP.Columns
		n       = len(a)
		c       = make(map[int]float64, n) // column → coefficient
		keys    []int
		rhs     = b
		minFrac = in.Config.MinFraction
	)
	for j, aj := range a {
		if math.Abs(aj) <= mirCoefTol {
			continue
		}
		if free[j] || colOf[j] < 0 {
			return found
		}
		k := colOf[j]
		c[k] = aj * cols[k].Sign
		rhs -= aj * cols[k].Offset
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return found
	}
	sort.Ints(keys)

	integral := func(k int) bool {
		v := cols[k].Var

		return in.intMask[v] && isIntegral(cols[k].Offset)
	}

	// Candidate scalings: |c_k| of integer columns, positive LP value first.
	type cand struct {
		delta float64
		value float64
	}
	var cands []cand
	for _, k := range keys {
		if !integral(k) {
			continue
		}
		d := math.Abs(c[k])
		dup := false
		for _, e := range cands {
			if math.Abs(e.delta-d) <= mirCoefTol {
				dup = true
				break
			}
		}
		if !dup {
			cands = append(cands, cand{delta: d, value: in.LP.ColumnValues[k]})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].value > cands[j].value })
	if len(cands) > mirMaxDeltas {
		cands = cands[:mirMaxDeltas]
	}

	var (
		best     model.Constraint
		bestEff  float64
		haveBest bool
		alpha    = make([]float64, len(cols))
	)
	for _, cd := range cands {
		beta := rhs / cd.delta
		f := model.FractionalPart(beta)
		if f < minFrac || f > 1-minFrac {
			continue
		}
		for i := range alpha {
			alpha[i] = 0
		}
		for _, k := range keys {
			g := c[k] / cd.delta
			if integral(k) {
				alpha[k] = math.Floor(g) + math.Max(0, model.FractionalPart(g)-f)/(1-f)
			} else if g < 0 {
				alpha[k] = g / (1 - f)
			}
		}
		coeffs, constant, ok := lp.Affine(cols, alpha, n)
		if !ok {
			continue
		}
		cut := model.LE(coeffs, math.Floor(beta)-constant).Named("mir")
		if eff := Efficacy(cut, in.LP.X); eff > bestEff {
			best, bestEff, haveBest = cut, eff, true
		}
	}
	if !haveBest {
		return found
	}

	return accept(found, best, in)
}
