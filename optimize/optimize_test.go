// Copyright 2025 The Descent Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optimize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/descent-ml/descent/linalg"
	"github.com/descent-ml/descent/optimize"
)

// The facade should be enough to configure and run an optimizer without
// touching internal packages.
func TestFacade_BuildAndMinimize(t *testing.T) {
	f := optimize.Func[[]float64](func(x []float64) (float64, []float64) {
		return linalg.Dot(x, x), linalg.Scale(2, x)
	})

	r, err := optimize.Build(optimize.OptParams{
		MaxIterations: 200,
		Tolerance:     1e-8,
	})
	require.NoError(t, err)

	x, err := r.Minimize(f, []float64{10, -3})
	require.NoError(t, err)
	assert.InDelta(t, 0, linalg.Norm(x), 1e-3)
}

func TestFacade_CustomEngine(t *testing.T) {
	f := optimize.Func[[]float64](func(x []float64) (float64, []float64) {
		return linalg.Dot(x, x), linalg.Scale(2, x)
	})

	m := &optimize.Minimizer[[]float64]{
		Space:     optimize.Dense(),
		Direction: optimize.SteepestDescent{},
		Step:      optimize.FixedStep(0.1),
		Applier:   optimize.AxpyStep{},
		History:   optimize.NoHistory{},
		Params:    optimize.DefaultParams(),
	}

	state, err := m.Run(f, []float64{4})
	require.NoError(t, err)
	assert.Equal(t, optimize.GradientConverged, m.Reason(state))
	assert.False(t, optimize.IsNumericalFailure(err))
}
