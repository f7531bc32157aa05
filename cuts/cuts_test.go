package cuts_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmip/cuts"
	"github.com/katalvlaran/lvmip/lp"
	"github.com/katalvlaran/lvmip/model"
)

const eps = 1e-7

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}

	return out
}

func solve(t *testing.T, p lp.Problem) lp.Result {
	t.Helper()
	p.WantTableau = true
	res, err := lp.Simplex{}.Solve(p)
	require.NoError(t, err)
	require.Equal(t, lp.Optimal, res.Status)

	return res
}

// knapsack is max 3x0 + 4x1 + 5x2 + 6x3 s.t. 5x0 + 3x1 + 4x2 + 2x3 ≤ 7,
// x binary, in minimisation form. LP optimum (0, 1, 0.5, 1).
func knapsack() ([]model.Constraint, lp.Problem, model.IntegerSpec) {
	rows := []model.Constraint{model.LE([]float64{5, 3, 4, 2}, 7).Named("cap")}
	p := lp.Problem{
		Objective:   []float64{-3, -4, -5, -6},
		Constraints: rows,
		Lower:       fill(4, 0),
		Upper:       fill(4, 1),
	}

	return rows, p, model.IntegerSpec{Integer: []int{0, 1, 2, 3}, Binary: []int{0, 1, 2, 3}}
}

// integerPoints enumerates the 0/1 points satisfying rows.
func integerPoints(rows []model.Constraint, n int) [][]float64 {
	var out [][]float64
	for mask := 0; mask < 1<<n; mask++ {
		x := make([]float64, n)
		for j := 0; j < n; j++ {
			if mask&(1<<j) != 0 {
				x[j] = 1
			}
		}
		ok := true
		for _, r := range rows {
			if !r.Satisfied(x, 1e-9) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, x)
		}
	}

	return out
}

func TestCover_Knapsack(t *testing.T) {
	rows, p, spec := knapsack()
	res := solve(t, p)
	require.InDeltaSlice(t, []float64{0, 1, 0.5, 1}, res.X, eps)

	got := cuts.Cover.Generate(&cuts.Input{Rows: rows, Integers: spec, LP: res})
	require.Len(t, got, 1)
	c := got[0]
	assert.Equal(t, cuts.Cover, c.Family)
	assert.Equal(t, []float64{0, 1, 1, 1}, c.Coeffs)
	assert.Equal(t, 2.0, c.RHS)
	assert.Equal(t, model.LessEq, c.Sense)
	assert.InDelta(t, 0.5, c.Violation(res.X), eps)

	weights := []float64{5, 3, 4, 2}
	assert.True(t, cuts.IsMinimalCover(weights, 7, []int{1, 2, 3}))
	assert.True(t, cuts.IsCover(weights, 7, []int{0, 1, 2}))
	assert.False(t, cuts.IsMinimalCover(weights, 7, []int{0, 1, 2}), "{0,2} already covers")
	assert.True(t, cuts.IsMinimalCover(weights, 7, []int{0, 2}))
	assert.False(t, cuts.IsCover(weights, 7, []int{1, 3}))
}

func TestCover_Complemented(t *testing.T) {
	// x0 + x1 − x2 ≤ 0 becomes x0 + x1 + x̃2 ≤ 1 with x̃2 = 1 − x2.
	rows := []model.Constraint{model.LE([]float64{1, 1, -1}, 0)}
	in := &cuts.Input{
		Rows:     rows,
		Integers: model.IntegerSpec{Integer: []int{0, 1, 2}, Binary: []int{0, 1, 2}},
		LP:       lp.Result{Status: lp.Optimal, X: []float64{0.5, 0.5, 0}},
	}
	got := cuts.Cover.Generate(in)
	require.Len(t, got, 1)
	assert.Equal(t, []float64{1, 0, -1}, got[0].Coeffs)
	assert.Equal(t, 0.0, got[0].RHS)

	for _, x := range integerPoints(rows, 3) {
		assert.True(t, got[0].Satisfied(x, 1e-9), "x=%v", x)
	}
}

func TestCover_SkipsNonBinaryRows(t *testing.T) {
	in := &cuts.Input{
		Rows:     []model.Constraint{model.LE([]float64{2, 2}, 3)},
		Integers: model.IntegerSpec{Integer: []int{0, 1}},
		LP:       lp.Result{Status: lp.Optimal, X: []float64{1.5, 0}},
	}
	assert.Empty(t, cuts.Cover.Generate(in))
}

func TestGomory_SingleRow(t *testing.T) {
	// min −x s.t. 2x ≤ 3, x integer: x* = 1.5, cut x ≤ 1.
	rows := []model.Constraint{model.LE([]float64{2}, 3)}
	res := solve(t, lp.Problem{
		Objective:   []float64{-1},
		Constraints: rows,
		Lower:       []float64{0},
		Upper:       []float64{math.Inf(1)},
	})
	require.NotNil(t, res.Tableau)

	got := cuts.Gomory.Generate(&cuts.Input{Rows: rows, Integers: model.IntegerSpec{Integer: []int{0}}, LP: res})
	require.Len(t, got, 1)
	assert.Equal(t, cuts.Gomory, got[0].Family)
	assert.InDeltaSlice(t, []float64{1}, got[0].Coeffs, eps)
	assert.InDelta(t, 1, got[0].RHS, eps)
}

func TestGomory_NeedsIntegralNonbasics(t *testing.T) {
	// y is continuous: the row of x mixes in a non-integral column.
	rows := []model.Constraint{model.LE([]float64{2, 1}, 3)}
	res := solve(t, lp.Problem{
		Objective:   []float64{-1, 0},
		Constraints: rows,
		Lower:       fill(2, 0),
		Upper:       fill(2, math.Inf(1)),
	})
	got := cuts.Gomory.Generate(&cuts.Input{Rows: rows, Integers: model.IntegerSpec{Integer: []int{0}}, LP: res})
	assert.Empty(t, got)
}

func TestGomory_WithoutTableau(t *testing.T) {
	rows, p, spec := knapsack()
	res := solve(t, p)
	res.Tableau = nil
	assert.Empty(t, cuts.Gomory.Generate(&cuts.Input{Rows: rows, Integers: spec, LP: res}))
}

func TestMIR_PureInteger(t *testing.T) {
	// 2x0 + 2x1 ≤ 3 rounds to x0 + x1 ≤ 1.
	rows := []model.Constraint{model.LE([]float64{2, 2}, 3)}
	res := solve(t, lp.Problem{
		Objective:   []float64{-1, -1},
		Constraints: rows,
		Lower:       fill(2, 0),
		Upper:       fill(2, math.Inf(1)),
	})
	got := cuts.MIR.Generate(&cuts.Input{Rows: rows, Integers: model.IntegerSpec{Integer: []int{0, 1}}, LP: res})
	require.Len(t, got, 1)
	assert.Equal(t, cuts.MIR, got[0].Family)
	assert.InDeltaSlice(t, []float64{1, 1}, got[0].Coeffs, eps)
	assert.InDelta(t, 1, got[0].RHS, eps)
}

func TestMIR_MixedRow(t *testing.T) {
	// x − y ≤ 0.5, x integer, y ≥ 0 continuous: MIR gives x − 2y ≤ 0.
	rows := []model.Constraint{model.LE([]float64{1, -1}, 0.5)}
	res := solve(t, lp.Problem{
		Objective:   []float64{-1, 2},
		Constraints: rows,
		Lower:       fill(2, 0),
		Upper:       []float64{3, math.Inf(1)},
	})
	require.InDeltaSlice(t, []float64{0.5, 0}, res.X, eps)

	got := cuts.MIR.Generate(&cuts.Input{Rows: rows, Integers: model.IntegerSpec{Integer: []int{0}}, LP: res})
	require.Len(t, got, 1)
	assert.InDeltaSlice(t, []float64{1, -2}, got[0].Coeffs, eps)
	assert.InDelta(t, 0, got[0].RHS, eps)

	// Valid on a grid of mixed-integer feasible points.
	for x := 0.0; x <= 3; x++ {
		for y := 0.0; y <= 4; y += 0.25 {
			pt := []float64{x, y}
			if rows[0].Satisfied(pt, 1e-12) {
				assert.True(t, got[0].Satisfied(pt, 1e-9), "x=%v y=%v", x, y)
			}
		}
	}
}

func TestMIR_SkipsFreeVariables(t *testing.T) {
	rows := []model.Constraint{model.LE([]float64{2, 1}, 3)}
	res := solve(t, lp.Problem{
		Objective:   []float64{-1, 1},
		Constraints: append(rows, model.GE([]float64{0, 1}, -1)),
		Lower:       []float64{0, math.Inf(-1)},
		Upper:       []float64{math.Inf(1), math.Inf(1)},
	})
	got := cuts.MIR.Generate(&cuts.Input{Rows: rows, Integers: model.IntegerSpec{Integer: []int{0}}, LP: res})
	assert.Empty(t, got)
}

func TestAllFamilies_ValidOnKnapsack(t *testing.T) {
	rows, p, spec := knapsack()
	res := solve(t, p)
	points := integerPoints(rows, 4)
	require.NotEmpty(t, points)

	in := &cuts.Input{Rows: rows, Integers: spec, LP: res}
	gomory := cuts.Gomory.Generate(in)
	assert.NotEmpty(t, gomory, "x2 = 0.5 is basic in an all-integral row")

	for _, c := range cuts.Separate(in, cuts.Families) {
		assert.Greater(t, c.Violation(res.X), 0.0, "%s cut %v must be violated", c.Family, c.Constraint)
		for _, x := range points {
			assert.True(t, c.Satisfied(x, 1e-7), "%s cut %v cuts off %v", c.Family, c.Constraint, x)
		}
	}
}

func TestSeparate_Dedup(t *testing.T) {
	rows := []model.Constraint{model.LE([]float64{2, 2}, 3)}
	res := solve(t, lp.Problem{
		Objective:   []float64{-1, -1},
		Constraints: rows,
		Lower:       fill(2, 0),
		Upper:       fill(2, math.Inf(1)),
	})
	spec := model.IntegerSpec{Integer: []int{0, 1}}

	first := cuts.Separate(&cuts.Input{Rows: rows, Integers: spec, LP: res}, []cuts.Family{cuts.MIR})
	require.Len(t, first, 1)

	// The same cut is not produced again once it is part of the rows.
	withCut := append(append([]model.Constraint(nil), rows...), first[0].Constraint)
	again := cuts.Separate(&cuts.Input{Rows: withCut, Integers: spec, LP: res}, []cuts.Family{cuts.MIR})
	for _, c := range again {
		assert.False(t, cuts.Duplicate(c.Constraint, first[0].Constraint))
	}
}

func TestDuplicate(t *testing.T) {
	a := model.LE([]float64{1, 1}, 1)
	assert.True(t, cuts.Duplicate(a, model.LE([]float64{2, 2}, 2)))
	assert.False(t, cuts.Duplicate(a, model.LE([]float64{1, 1}, 2)))
	assert.False(t, cuts.Duplicate(a, model.EQ([]float64{1, 1}, 1)))
	assert.False(t, cuts.Duplicate(a, model.LE([]float64{-1, -1}, -1)))
}

func TestEfficacy(t *testing.T) {
	c := model.LE([]float64{3, 4}, 5)
	assert.InDelta(t, 0.8, cuts.Efficacy(c, []float64{1, 1.5}), eps) // (9 − 5) / 5
	assert.Equal(t, 0.0, cuts.Efficacy(c, []float64{0, 0}))
	assert.True(t, math.IsInf(cuts.Efficacy(model.LE([]float64{0, 0}, -1), []float64{0, 0}), 1))
}

func TestGenerate_NonOptimalLP(t *testing.T) {
	rows, _, spec := knapsack()
	in := &cuts.Input{Rows: rows, Integers: spec, LP: lp.Result{Status: lp.Infeasible}}
	for _, f := range cuts.Families {
		assert.Empty(t, f.Generate(in), f.String())
	}
}
