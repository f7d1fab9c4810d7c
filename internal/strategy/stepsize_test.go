package strategy_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/descent-ml/descent/internal/linalg"
	"github.com/descent-ml/descent/internal/optimize"
	"github.com/descent-ml/descent/internal/strategy"
)

func stateAt(f optimize.Function[[]float64], x []float64) *optimize.State[[]float64] {
	value, grad := f.Calculate(x)
	return &optimize.State[[]float64]{
		X:             x,
		Value:         value,
		Grad:          grad,
		AdjustedValue: value,
		AdjustedGrad:  grad,
	}
}

func TestFixedStep(t *testing.T) {
	step, err := strategy.FixedStep(0.25).DetermineStepSize(nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.25, step)
}

func TestDecayingStep(t *testing.T) {
	ds := strategy.DecayingStep(2)

	s := &optimize.State[[]float64]{Iter: 0}
	step, err := ds.DetermineStepSize(s, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2.0, step)

	s.Iter = 3
	step, err = ds.DetermineStepSize(s, nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, step, 1e-12)
}

func TestBacktracking_SatisfiesArmijo(t *testing.T) {
	f := shiftedQuadratic([]float64{0, 0})
	s := stateAt(f, []float64{10, -4})
	dir := linalg.Scale(-1, s.Grad)

	b := strategy.Backtracking{}
	alpha, err := b.DetermineStepSize(s, f, dir)
	require.NoError(t, err)
	require.Greater(t, alpha, 0.0)

	trial, _ := f.Calculate(linalg.Axpy(alpha, dir, s.X))
	gd := linalg.Dot(s.Grad, dir)
	assert.LessOrEqual(t, trial, s.Value+1e-4*alpha*gd)
}

func TestBacktracking_RejectsAscentDirection(t *testing.T) {
	f := shiftedQuadratic([]float64{0, 0})
	s := stateAt(f, []float64{10, -4})

	b := strategy.Backtracking{}
	_, err := b.DetermineStepSize(s, f, linalg.Clone(s.Grad))

	var lse *optimize.LineSearchError
	require.ErrorAs(t, err, &lse)
	assert.Greater(t, lse.GradNorm, 0.0)
	assert.Greater(t, lse.DirNorm, 0.0)
}

func TestBacktracking_ExhaustsOnHostileObjective(t *testing.T) {
	// The gradient claims descent but every trial value is NaN, so the
	// search burns its budget and reports exhaustion.
	calls := 0
	f := optimize.Func[[]float64](func(x []float64) (float64, []float64) {
		calls++
		return math.NaN(), []float64{1}
	})
	s := &optimize.State[[]float64]{
		X:             []float64{1},
		Value:         5,
		Grad:          []float64{1},
		AdjustedValue: 5,
		AdjustedGrad:  []float64{1},
	}

	b := strategy.Backtracking{MaxEvals: 8}
	_, err := b.DetermineStepSize(s, f, []float64{-1})

	var lse *optimize.LineSearchError
	require.ErrorAs(t, err, &lse)
	assert.Equal(t, 8, calls)
}

func TestBacktracking_UnderflowReported(t *testing.T) {
	f := optimize.Func[[]float64](func(x []float64) (float64, []float64) {
		return math.NaN(), []float64{1}
	})
	s := &optimize.State[[]float64]{
		X:             []float64{1},
		Value:         5,
		Grad:          []float64{1},
		AdjustedValue: 5,
		AdjustedGrad:  []float64{1},
	}

	// A tiny initial step shrinks below MinStep before the budget runs out.
	b := strategy.Backtracking{InitialStep: 1e-11, MaxEvals: 30}
	_, err := b.DetermineStepSize(s, f, []float64{-1})
	require.ErrorIs(t, err, optimize.ErrStepSizeUnderflow)
}
