package mip_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/lvmip/lp"
	"github.com/katalvlaran/lvmip/mip"
)

func TestDefaultOptions(t *testing.T) {
	o := mip.DefaultOptions()
	assert.Equal(t, mip.BestBound, o.NodeSelection)
	assert.Equal(t, 1_000_000, o.MaxNodes)
	assert.Equal(t, time.Hour, o.TimeLimit)
	assert.Equal(t, 1e-4, o.RelativeGap)
	assert.Equal(t, 1e-6, o.IntegerTolerance)
	assert.Equal(t, lp.Simplex{}, o.Oracle)
	assert.Equal(t, 10, o.MaxCuttingRounds)
	assert.True(t, o.GomoryCuts)
	assert.False(t, o.MIRCuts)
	assert.False(t, o.CoverCuts)
	assert.False(t, o.Verbose)
}

func TestOptionsApply(t *testing.T) {
	o := mip.DefaultOptions()
	for _, opt := range []mip.Option{
		mip.WithNodeSelection(mip.DepthFirst),
		mip.WithMaxNodes(10),
		mip.WithTimeLimit(time.Second),
		mip.WithRelativeGap(0),
		mip.WithIntegerTolerance(1e-3),
		mip.WithVerbose(),
		mip.WithMaxCuttingRounds(0),
		mip.WithGomoryCuts(false),
		mip.WithMIRCuts(true),
		mip.WithCoverCuts(true),
	} {
		opt(&o)
	}
	assert.Equal(t, mip.DepthFirst, o.NodeSelection)
	assert.Equal(t, 10, o.MaxNodes)
	assert.Equal(t, time.Second, o.TimeLimit)
	assert.Zero(t, o.RelativeGap)
	assert.Equal(t, 1e-3, o.IntegerTolerance)
	assert.True(t, o.Verbose)
	assert.Zero(t, o.MaxCuttingRounds)
	assert.False(t, o.GomoryCuts)
	assert.True(t, o.MIRCuts)
	assert.True(t, o.CoverCuts)
}

func TestOptionsPanicOnInvalidValues(t *testing.T) {
	o := mip.DefaultOptions()
	assert.PanicsWithValue(t, mip.ErrBadMaxNodes.Error(), func() { mip.WithMaxNodes(0)(&o) })
	assert.PanicsWithValue(t, mip.ErrBadTimeLimit.Error(), func() { mip.WithTimeLimit(-time.Second)(&o) })
	assert.PanicsWithValue(t, mip.ErrBadRelativeGap.Error(), func() { mip.WithRelativeGap(-1)(&o) })
	assert.PanicsWithValue(t, mip.ErrBadRelativeGap.Error(), func() { mip.WithRelativeGap(math.NaN())(&o) })
	assert.PanicsWithValue(t, mip.ErrBadIntegerTolerance.Error(), func() { mip.WithIntegerTolerance(0)(&o) })
	assert.PanicsWithValue(t, mip.ErrBadIntegerTolerance.Error(), func() { mip.WithIntegerTolerance(0.5)(&o) })
	assert.PanicsWithValue(t, mip.ErrBadCuttingRounds.Error(), func() { mip.WithMaxCuttingRounds(-1)(&o) })
	assert.PanicsWithValue(t, mip.ErrNilOracle.Error(), func() { mip.WithOracle(nil)(&o) })
	assert.PanicsWithValue(t, mip.ErrBadNodeSelection.Error(), func() { mip.WithNodeSelection(mip.NodeSelection(7))(&o) })
}

func TestStatusStrings(t *testing.T) {
	var zero mip.Result
	assert.Equal(t, mip.Unknown, zero.Status)
	assert.Equal(t, "Unknown", zero.Status.String())
	assert.Equal(t, "Optimal", mip.Optimal.String())
	assert.Equal(t, "Infeasible", mip.Infeasible.String())
	assert.Equal(t, "NodeLimitReached", mip.NodeLimitReached.String())
	assert.Equal(t, "TimeLimitReached", mip.TimeLimitReached.String())
	assert.Equal(t, "Unbounded", mip.Unbounded.String())
	assert.Equal(t, "Interrupted", mip.Interrupted.String())
	assert.Equal(t, "best-bound", mip.BestBound.String())
}
