package cuts

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvmip/lp"
	"github.com/katalvlaran/lvmip/model"
)

// Family tags the provenance of a cut.
type Family int

const (
	// Gomory fractional cuts (tableau based).
	Gomory Family = iota
	// MIR is mixed-integer rounding.
	MIR
	// Cover is the 0-1 knapsack minimal-cover family.
	Cover
)

// Families lists every family in generation order.
var Families = []Family{Gomory, MIR, Cover}

// String implements fmt.Stringer.
func (f Family) String() string {
	switch f {
	case Gomory:
		return "gomory"
	case MIR:
		return "mir"
	case Cover:
		return "cover"
	default:
		return "unknown"
	}
}

// NeedsTableau reports whether the family reads the simplex tableau.
func (f Family) NeedsTableau() bool { return f == Gomory }

// Cut is a valid inequality with its provenance. Once stored it is treated
// exactly like any other constraint.
type Cut struct {
	model.Constraint
	Family Family
}

// Config holds the numeric policy shared by all families.
type Config struct {
	// MinFraction is how far from integrality a value must be to be cut on.
	MinFraction float64
	// MinEfficacy is the minimum violation / ‖a‖₂ for a cut to be emitted.
	MinEfficacy float64
	// MaxPerFamily caps the cuts one family emits per call (0 = unlimited).
	MaxPerFamily int
}

// Defaults.
const (
	DefaultMinFraction  = 1e-3
	DefaultMinEfficacy  = 1e-6
	DefaultMaxPerFamily = 50
)

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MinFraction:  DefaultMinFraction,
		MinEfficacy:  DefaultMinEfficacy,
		MaxPerFamily: DefaultMaxPerFamily,
	}
}

// Input is everything a generator may look at for one node.
type Input struct {
	// Rows are the constraints active at the node: base constraints first,
	// then inherited and node-local cuts.
	Rows []model.Constraint
	// Integers is the problem's integer specification.
	Integers model.IntegerSpec
	// LP is the node's optimal relaxation (Status == lp.Optimal). Gomory
	// additionally needs LP.Tableau.
	LP lp.Result
	// Config is the numeric policy; the zero value selects DefaultConfig.
	Config Config

	intMask []bool
	binMask []bool
}

func (in *Input) prepare() {
	n := len(in.LP.X)
	if in.intMask == nil {
		in.intMask = in.Integers.Mask(n)
		in.binMask = in.Integers.BinaryMask(n)
	}
	if in.Config == (Config{}) {
		in.Config = DefaultConfig()
	}
}

// Generate runs one family on in.
func (f Family) Generate(in *Input) []Cut {
	if in.LP.Status != lp.Optimal || len(in.LP.X) == 0 {
		return nil
	}
	in.prepare()

	var found []scored
	switch f {
	case Gomory:
		found = gomory(in)
	case MIR:
		found = mir(in)
	case Cover:
		found = cover(in)
	default:
		return nil
	}

	return finalize(found, f, in.Config.MaxPerFamily)
}

// Separate runs the given families in order and returns their cuts with
// duplicates (within the batch and against in.Rows) removed.
func Separate(in *Input, families []Family) []Cut {
	var out []Cut
	for _, f := range families {
		for _, c := range f.Generate(in) {
			if containsDuplicate(in.Rows, c.Constraint) || containsDuplicateCut(out, c.Constraint) {
				continue
			}
			out = append(out, c)
		}
	}

	return out
}

// scored is a candidate cut with its efficacy at the LP point.
type scored struct {
	c        model.Constraint
	efficacy float64
}

func finalize(found []scored, f Family, limit int) []Cut {
	sort.SliceStable(found, func(a, b int) bool { return found[a].efficacy > found[b].efficacy })
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	out := make([]Cut, len(found))
	for i, s := range found {
		out[i] = Cut{Constraint: s.c, Family: f}
	}

	return out
}

// Efficacy returns the Euclidean distance by which x violates c
// (violation / ‖a‖₂), +Inf for a violated constraint with all-zero
// coefficients, and 0 when x satisfies c.
func Efficacy(c model.Constraint, x []float64) float64 {
	v := c.Violation(x)
	if v <= 0 {
		return 0
	}
	norm := floats.Norm(c.Coeffs, 2)
	if norm == 0 {
		return math.Inf(1)
	}

	return v / norm
}

// accept evaluates a candidate and appends it when efficacious enough.
func accept(found []scored, c model.Constraint, in *Input) []scored {
	for _, a := range c.Coeffs {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return found
		}
	}
	if math.IsNaN(c.RHS) || math.IsInf(c.RHS, 0) {
		return found
	}
	e := Efficacy(c, in.LP.X)
	if e <= in.Config.MinEfficacy {
		return found
	}

	return append(found, scored{c: c, efficacy: e})
}

// Duplicate reports whether a and b describe the same half-space up to a
// positive scaling.
func Duplicate(a, b model.Constraint) bool {
	if a.Sense != b.Sense || len(a.Coeffs) != len(b.Coeffs) {
		return false
	}
	sa, sb := scaleOf(a), scaleOf(b)
	if sa == 0 || sb == 0 {
		return sa == sb && math.Abs(a.RHS-b.RHS) <= dupTol
	}
	for j := range a.Coeffs {
		if math.Abs(a.Coeffs[j]/sa-b.Coeffs[j]/sb) > dupTol {
			return false
		}
	}

	return math.Abs(a.RHS/sa-b.RHS/sb) <= dupTol
}

const dupTol = 1e-9

func scaleOf(c model.Constraint) float64 {
	return floats.Norm(c.Coeffs, math.Inf(1))
}

func containsDuplicate(rows []model.Constraint, c model.Constraint) bool {
	for _, r := range rows {
		if Duplicate(r, c) {
			return true
		}
	}

	return false
}

func containsDuplicateCut(cs []Cut, c model.Constraint) bool {
	for _, r := range cs {
		if Duplicate(r.Constraint, c) {
			return true
		}
	}

	return false
}

// isIntegral reports whether v is within tol of an integer.
func isIntegral(v float64) bool {
	return model.Deviation(v) <= integralTol
}

const integralTol = 1e-9
