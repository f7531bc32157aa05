package model_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmip/model"
)

func validProblem() *model.Problem {
	return &model.Problem{
		Objective: []float64{1, 2, 3},
		Constraints: []model.Constraint{
			model.LE([]float64{1, 1, 1}, 4),
			model.GE([]float64{1, 0, 2}, 1).Named("cover"),
			model.EQ([]float64{0, 1, -1}, 0),
		},
		Bounds:   model.Bounds{Upper: []float64{5, 5, 5}},
		Integers: model.IntegerSpec{Integer: []int{0, 2}, Binary: []int{2}},
	}
}

func TestValidate_Accepts(t *testing.T) {
	require.NoError(t, validProblem().Validate())
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]func(p *model.Problem){
		"empty objective":     func(p *model.Problem) { p.Objective = nil },
		"NaN objective":       func(p *model.Problem) { p.Objective[1] = math.NaN() },
		"short constraint":    func(p *model.Problem) { p.Constraints[0].Coeffs = []float64{1} },
		"infinite rhs":        func(p *model.Problem) { p.Constraints[2].RHS = math.Inf(1) },
		"unknown sense":       func(p *model.Problem) { p.Constraints[0].Sense = model.Sense(9) },
		"bounds length":       func(p *model.Problem) { p.Bounds.Lower = []float64{0} },
		"inverted bounds":     func(p *model.Problem) { p.Bounds.Lower = []float64{6, 0, 0} },
		"lower +Inf":          func(p *model.Problem) { p.Bounds.Lower = []float64{math.Inf(1), 0, 0} },
		"integer range":       func(p *model.Problem) { p.Integers.Integer = []int{0, 3} },
		"integer duplicate":   func(p *model.Problem) { p.Integers.Integer = []int{0, 0, 2} },
		"binary not integer":  func(p *model.Problem) { p.Integers.Binary = []int{1} },
		"binary out of range": func(p *model.Problem) { p.Integers.Binary = []int{-1} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := validProblem()
			mutate(p)
			err := p.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrInvalidInput)
		})
	}
}

func TestValidate_NamesTheConstraint(t *testing.T) {
	p := validProblem()
	p.Constraints[1].Coeffs = []float64{1}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `constraint 1 ("cover")`)
}

func TestEffectiveBounds(t *testing.T) {
	p := &model.Problem{
		Objective: []float64{1, 1},
		Bounds:    model.Bounds{Lower: []float64{-3, -2}},
		Integers:  model.IntegerSpec{Integer: []int{1}, Binary: []int{1}},
	}
	assert.Equal(t, []float64{-3, 0}, p.LowerBounds())
	up := p.UpperBounds()
	assert.True(t, math.IsInf(up[0], 1))
	assert.Equal(t, 1.0, up[1])
}

func TestConstraintHelpers(t *testing.T) {
	ge := model.GE([]float64{2, -1}, 3)
	assert.Equal(t, []float64{-2, 1}, ge.Coeffs)
	assert.Equal(t, -3.0, ge.RHS)
	assert.Equal(t, model.LessEq, ge.Sense)

	eq := model.EQ([]float64{1, 1}, 2)
	assert.Equal(t, 1.0, eq.Violation([]float64{2, 1}))
	assert.Equal(t, 1.0, eq.Violation([]float64{0, 1}))
	assert.True(t, eq.Satisfied([]float64{1, 1}, 0))

	le := model.LE([]float64{1, 1}, 2).Named("cap")
	assert.Zero(t, le.Violation([]float64{0, 0}))
	assert.Equal(t, "cap: 1x0 + 1x1 <= 2", le.String())
	assert.Equal(t, "-2x0 + 1x1 <= -3", ge.String())
	assert.True(t, model.LE([]float64{0, 0}, 1).IsZero())

	c := le.Clone()
	c.Coeffs[0] = 7
	assert.Equal(t, 1.0, le.Coeffs[0])
}

func TestFractionalPart(t *testing.T) {
	assert.InDelta(t, 0.6, model.FractionalPart(-0.4), 1e-12)
	assert.InDelta(t, 0.25, model.FractionalPart(2.25), 1e-12)
	assert.Zero(t, model.FractionalPart(3))
	assert.Zero(t, model.FractionalPart(-2))
	assert.Zero(t, model.FractionalPart(-1e-20), "one ulp below zero")
}

func TestIsIntegerFeasible(t *testing.T) {
	spec := model.IntegerSpec{Integer: []int{0, 1}, Binary: []int{1}}
	assert.True(t, model.IsIntegerFeasible([]float64{3, 1, 0.5}, spec, 1e-6))
	assert.True(t, model.IsIntegerFeasible([]float64{3.0000001, 0, 7.2}, spec, 1e-6))
	assert.False(t, model.IsIntegerFeasible([]float64{3.5, 1, 0}, spec, 1e-6))
	assert.False(t, model.IsIntegerFeasible([]float64{3, 2, 0}, spec, 1e-6), "binary out of {0,1}")
	assert.False(t, model.IsIntegerFeasible([]float64{3}, spec, 1e-6), "index beyond x")
}

func TestSelectBranchingVariable(t *testing.T) {
	spec := model.IntegerSpec{Integer: []int{0, 1, 2, 3}}

	idx, ok := model.SelectBranchingVariable([]float64{1.1, 2.4, 0.7, 5}, spec, 1e-6)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = model.SelectBranchingVariable([]float64{0.25, 0.75, 1.25, 0}, spec, 1e-6)
	require.True(t, ok)
	assert.Equal(t, 0, idx, "ties go to the lowest index")

	_, ok = model.SelectBranchingVariable([]float64{1, 2, 3, 4}, spec, 1e-6)
	assert.False(t, ok)

	rev := model.IntegerSpec{Integer: []int{3, 2}}
	idx, ok = model.SelectBranchingVariable([]float64{0, 0, 0.5, 0.5}, rev, 1e-6)
	require.True(t, ok)
	assert.Equal(t, 2, idx, "lowest index regardless of listing order")
}

func TestRoundIntegers(t *testing.T) {
	x := []float64{0.9999999, 2.4, 3.0000001}
	out := model.RoundIntegers(x, model.IntegerSpec{Integer: []int{0, 2}})
	assert.Equal(t, []float64{1, 2.4, 3}, out)
	assert.Equal(t, 0.9999999, x[0], "input untouched")
}

func TestMasks(t *testing.T) {
	spec := model.IntegerSpec{Integer: []int{0, 2}, Binary: []int{2}}
	assert.Equal(t, []bool{true, false, true}, spec.Mask(3))
	assert.Equal(t, []bool{false, false, true}, spec.BinaryMask(3))
}

const knapsackYAML = `
sense: maximize
objective: [3, 4, 5, 6]
constraints:
  - {name: cap, coeffs: [5, 3, 4, 2], op: "<=", rhs: 7}
  - {coeffs: [1, 1, 0, 0], op: ">=", rhs: 0}
integers: [0, 1]
binaries: [0, 1, 2, 3]
`

func TestLoad(t *testing.T) {
	p, err := model.Load(strings.NewReader(knapsackYAML))
	require.NoError(t, err)
	assert.Equal(t, model.Maximize, p.Sense)
	assert.Equal(t, []float64{3, 4, 5, 6}, p.Objective)
	require.Len(t, p.Constraints, 2)
	assert.Equal(t, "cap", p.Constraints[0].Name)
	assert.Equal(t, []float64{-1, -1, 0, 0}, p.Constraints[1].Coeffs)
	assert.Equal(t, []int{0, 1, 2, 3}, p.Integers.Integer, "binaries join the integer set")
	assert.Equal(t, []int{0, 1, 2, 3}, p.Integers.Binary)
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":   "objective: [1]\nfoo: 1\n",
		"unknown sense": "sense: sideways\nobjective: [1]\n",
		"unknown op":    "objective: [1]\nconstraints:\n  - {coeffs: [1], op: \"<\", rhs: 1}\n",
		"invalid":       "objective: [1, 2]\nconstraints:\n  - {coeffs: [1], rhs: 1}\n",
		"malformed":     "objective: [1\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := model.Load(strings.NewReader(doc))
			assert.ErrorIs(t, err, model.ErrInvalidInput)
		})
	}
}
