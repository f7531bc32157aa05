package mip

import (
	"math"
	"time"

	"github.com/katalvlaran/lvmip/cuts"
	"github.com/katalvlaran/lvmip/lp"
)

// Defaults.
const (
	DefaultMaxNodes         = 1_000_000
	DefaultTimeLimit        = time.Hour
	DefaultRelativeGap      = 1e-4
	DefaultIntegerTolerance = 1e-6
	DefaultCuttingRounds    = 10
)

// Options configures a solve.
//
// NodeSelection    – frontier order (BestBound by default).
// MaxNodes         – nodes popped before NodeLimitReached.
// TimeLimit        – wall clock before TimeLimitReached; a context deadline also applies.
// RelativeGap      – stop once (incumbent − bound)/|incumbent| ≤ RelativeGap.
// IntegerTolerance – |x − round(x)| accepted as integral.
// Oracle           – LP solver used for every relaxation.
// Verbose          – progress lines through glog.Infof.
//
// Branch-and-cut only: MaxCuttingRounds bounds the separation rounds per
// node; GomoryCuts, MIRCuts and CoverCuts enable the families; Cuts holds
// their numeric policy.
type Options struct {
	NodeSelection    NodeSelection
	MaxNodes         int
	TimeLimit        time.Duration
	RelativeGap      float64
	IntegerTolerance float64
	Oracle           lp.Solver
	Verbose          bool

	MaxCuttingRounds int
	GomoryCuts       bool
	MIRCuts          bool
	CoverCuts        bool
	Cuts             cuts.Config

	IncumbentHook func(Incumbent)
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the documented defaults:
//
//   - NodeSelection:    BestBound
//   - MaxNodes:         1 000 000
//   - TimeLimit:        1h
//   - RelativeGap:      1e-4
//   - IntegerTolerance: 1e-6
//   - Oracle:           lp.Simplex{}
//   - MaxCuttingRounds: 10, Gomory on, MIR off, cover off
func DefaultOptions() Options {
	return Options{
		NodeSelection:    BestBound,
		MaxNodes:         DefaultMaxNodes,
		TimeLimit:        DefaultTimeLimit,
		RelativeGap:      DefaultRelativeGap,
		IntegerTolerance: DefaultIntegerTolerance,
		Oracle:           lp.Simplex{},
		MaxCuttingRounds: DefaultCuttingRounds,
		GomoryCuts:       true,
		Cuts:             cuts.DefaultConfig(),
	}
}

// WithNodeSelection sets the frontier order. Unknown values panic.
func WithNodeSelection(s NodeSelection) Option {
	return func(o *Options) {
		if s < BestBound || s > BreadthFirst {
			panic(ErrBadNodeSelection.Error())
		}
		o.NodeSelection = s
	}
}

// WithMaxNodes caps the number of explored nodes. n must be positive.
func WithMaxNodes(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			panic(ErrBadMaxNodes.Error())
		}
		o.MaxNodes = n
	}
}

// WithTimeLimit sets the wall-clock budget. d must be positive.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		if d <= 0 {
			panic(ErrBadTimeLimit.Error())
		}
		o.TimeLimit = d
	}
}

// WithRelativeGap sets the optimality gap tolerance; 0 demands a full proof.
func WithRelativeGap(g float64) Option {
	return func(o *Options) {
		if g < 0 || math.IsNaN(g) {
			panic(ErrBadRelativeGap.Error())
		}
		o.RelativeGap = g
	}
}

// WithIntegerTolerance sets the integrality tolerance, which must lie in (0, 0.5).
func WithIntegerTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0 && tol < 0.5) {
			panic(ErrBadIntegerTolerance.Error())
		}
		o.IntegerTolerance = tol
	}
}

// WithOracle replaces the LP solver.
func WithOracle(s lp.Solver) Option {
	return func(o *Options) {
		if s == nil {
			panic(ErrNilOracle.Error())
		}
		o.Oracle = s
	}
}

// WithVerbose enables progress logging.
func WithVerbose() Option {
	return func(o *Options) { o.Verbose = true }
}

// WithMaxCuttingRounds bounds the separation rounds per node; 0 disables cuts.
func WithMaxCuttingRounds(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadCuttingRounds.Error())
		}
		o.MaxCuttingRounds = n
	}
}

// WithGomoryCuts toggles Gomory fractional cuts (on by default).
func WithGomoryCuts(on bool) Option {
	return func(o *Options) { o.GomoryCuts = on }
}

// WithMIRCuts toggles mixed-integer rounding cuts.
func WithMIRCuts(on bool) Option {
	return func(o *Options) { o.MIRCuts = on }
}

// WithCoverCuts toggles knapsack cover cuts.
func WithCoverCuts(on bool) Option {
	return func(o *Options) { o.CoverCuts = on }
}

// WithCutConfig replaces the numeric policy of the cut generators.
func WithCutConfig(c cuts.Config) Option {
	return func(o *Options) { o.Cuts = c }
}

// WithIncumbentHook registers fn to observe every incumbent improvement.
// fn runs synchronously on the solving goroutine.
func WithIncumbentHook(fn func(Incumbent)) Option {
	return func(o *Options) { o.IncumbentHook = fn }
}

// families returns the enabled cut families in generation order.
func (o Options) families() []cuts.Family {
	var out []cuts.Family
	if o.GomoryCuts {
		out = append(out, cuts.Gomory)
	}
	if o.MIRCuts {
		out = append(out, cuts.MIR)
	}
	if o.CoverCuts {
		out = append(out, cuts.Cover)
	}

	return out
}
