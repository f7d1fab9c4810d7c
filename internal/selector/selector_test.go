package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/descent-ml/descent/internal/linalg"
	"github.com/descent-ml/descent/internal/optimize"
	"github.com/descent-ml/descent/internal/selector"
)

// leastSquares is 0.5*||x - c||^2 with gradient x - c.
func leastSquares(c []float64) optimize.Function[[]float64] {
	return optimize.Func[[]float64](func(x []float64) (float64, []float64) {
		d := linalg.Axpy(-1, c, x)
		return 0.5 * linalg.Dot(d, d), d
	})
}

func TestBuild_RejectsInvalidConfigs(t *testing.T) {
	_, err := selector.Build(selector.Params{Regularization: -1, Tolerance: 1e-5, Alpha: 1})
	assert.Error(t, err)

	_, err = selector.Build(selector.Params{UseStochastic: true, Alpha: 0, Tolerance: 1e-5})
	assert.Error(t, err)

	_, err = selector.Build(selector.Params{Tolerance: 0})
	assert.Error(t, err)
}

func TestBuild_DeterministicL2(t *testing.T) {
	r, err := selector.Build(selector.Params{
		Regularization: 0.1,
		MaxIterations:  200,
		Tolerance:      1e-8,
	})
	require.NoError(t, err)

	// With an L2 penalty the minimum of 0.5||x-c||^2 + (0.1/2)||x||^2
	// shrinks toward the origin: x* = c/1.1.
	c := []float64{2.2, -1.1}
	x, err := r.Minimize(leastSquares(c), []float64{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, x[0], 1e-3)
	assert.InDelta(t, -1.0, x[1], 1e-3)
}

func TestBuild_DeterministicL1(t *testing.T) {
	r, err := selector.Build(selector.Params{
		Regularization: 0.5,
		MaxIterations:  200,
		Tolerance:      1e-8,
		UseL1:          true,
	})
	require.NoError(t, err)

	// Soft-thresholded solution: x* = (1.5, 0).
	c := []float64{2, 0.25}
	state, err := r.Run(leastSquares(c), []float64{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, state.X[0], 1e-3)
	assert.Zero(t, state.X[1])
}

func TestBuild_StochasticL2(t *testing.T) {
	r, err := selector.Build(selector.Params{
		Alpha:         1,
		MaxIterations: 500,
		Tolerance:     1e-8,
		UseStochastic: true,
	})
	require.NoError(t, err)

	c := []float64{1, -1}
	state, err := r.Run(leastSquares(c), []float64{3, 1})
	require.NoError(t, err)

	initial, _ := leastSquares(c).Calculate([]float64{3, 1})
	assert.Less(t, state.Value, initial/2, "adaptive-gradient run should make clear progress")
}

func TestBuild_StochasticL1Sparsifies(t *testing.T) {
	r, err := selector.Build(selector.Params{
		Regularization: 0.5,
		Alpha:          1,
		MaxIterations:  400,
		Tolerance:      1e-8,
		UseStochastic:  true,
		UseL1:          true,
	})
	require.NoError(t, err)

	state, err := r.Run(leastSquares([]float64{3, 0.1}), []float64{0, 0})
	require.NoError(t, err)
	assert.Zero(t, state.X[1], "truncated-gradient updates should keep the weak coordinate at zero")
	assert.Greater(t, state.X[0], 1.0)
}

func TestBuild_ReasonReported(t *testing.T) {
	r, err := selector.Build(selector.Params{
		MaxIterations: 200,
		Tolerance:     1e-8,
	})
	require.NoError(t, err)

	state, err := r.Run(leastSquares([]float64{1}), []float64{5})
	require.NoError(t, err)
	assert.Equal(t, optimize.GradientConverged, r.Reason(state))
}

func TestDefaultParams(t *testing.T) {
	p := selector.DefaultParams()
	assert.True(t, p.UseStochastic)
	assert.False(t, p.UseL1)
	assert.Equal(t, 512, p.BatchSize)
	assert.Equal(t, 1000, p.MaxIterations)
}
