// Copyright 2025 The Descent Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optimize provides the public API of the Descent first-order
// optimization framework.
//
// # Overview
//
// This package contains:
//   - Minimizer: the generic iteration engine over any vector type
//   - Strategy interfaces for descent direction, step size and history
//   - Dense []float64 strategies: L-BFGS, OWL-QN, AdaGrad, steepest descent
//   - Build: configuration-driven optimizer selection
//
// # Basic Usage
//
//	import (
//	    "github.com/descent-ml/descent/linalg"
//	    "github.com/descent-ml/descent/optimize"
//	)
//
//	func main() {
//	    // f(x) = ||x||^2 with gradient 2x.
//	    f := optimize.Func[[]float64](func(x []float64) (float64, []float64) {
//	        return linalg.Dot(x, x), linalg.Scale(2, x)
//	    })
//
//	    r, _ := optimize.Build(optimize.OptParams{
//	        MaxIterations: 100,
//	        Tolerance:     1e-6,
//	        UseStochastic: false,
//	    })
//	    x, err := r.Minimize(f, []float64{10, -3})
//	    ...
//	}
//
// # Custom Engines
//
// The engine is generic over the vector type; supply the strategy bundle
// and a norm capability directly to run over any representation:
//
//	m := &optimize.Minimizer[[]float64]{
//	    Space:     optimize.Dense(),
//	    Direction: optimize.SteepestDescent{},
//	    Step:      optimize.FixedStep(0.1),
//	    Applier:   optimize.AxpyStep{},
//	    History:   optimize.NoHistory{},
//	    Params:    optimize.DefaultParams(),
//	}
//	for state, err := range m.Iterations(f, x0) {
//	    ...
//	}
//
// # Inspecting Termination
//
// Minimize returns the last reached point even when the run stopped on a
// numerical failure. Use Run and Reason to tell genuine convergence from
// failure-induced stopping:
//
//	state, err := m.Run(f, x0)
//	if state.SearchFailed {
//	    // degraded result
//	}
package optimize
