package mip

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvmip/model"
)

// Solve runs branch-and-bound on p.
//
// Malformed input fails fast with an error wrapping ErrInvalidInput. Every
// other outcome, including infeasibility and exhausted budgets, is reported
// through Result.Status. An LP the oracle cannot solve, the root included,
// only drops that node (see Result.OracleFailures).
//
// ctx is checked cooperatively between nodes: cancellation ends the solve with
// Interrupted, an expired deadline with TimeLimitReached.
func Solve(ctx context.Context, p *model.Problem, opts ...Option) (Result, error) {
	return solve(ctx, p, false, opts)
}

// SolveBranchAndCut runs branch-and-cut on p: like Solve, plus a cutting-plane
// round on the root before it enters the frontier and on every node before
// its prune checks. Result.CutsGenerated, CuttingRounds, TotalCuttingRounds
// and CutsByFamily report the cut activity.
func SolveBranchAndCut(ctx context.Context, p *model.Problem, opts ...Option) (Result, error) {
	return solve(ctx, p, true, opts)
}

func solve(ctx context.Context, p *model.Problem, withCuts bool, opts []Option) (Result, error) {
	if p == nil {
		return Result{}, fmt.Errorf("%w: nil problem", ErrInvalidInput)
	}
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	return newEngine(ctx, p, withCuts, o).run(), nil
}
