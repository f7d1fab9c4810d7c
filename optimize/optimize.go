// Copyright 2025 The Descent Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optimize

import (
	"github.com/descent-ml/descent/internal/linalg"
	"github.com/descent-ml/descent/internal/optimize"
	"github.com/descent-ml/descent/internal/selector"
	"github.com/descent-ml/descent/internal/strategy"
)

// Core engine types

// State is an immutable snapshot of optimization progress.
type State[T any] = optimize.State[T]

// Minimizer is the iteration engine wrapping pluggable strategies.
type Minimizer[T any] = optimize.Minimizer[T]

// Params configures the iteration engine.
type Params = optimize.Params

// DefaultParams returns the standard engine configuration.
func DefaultParams() Params { return optimize.DefaultParams() }

// ConvergenceReason explains why a run stopped.
type ConvergenceReason = optimize.ConvergenceReason

// Convergence reasons.
const (
	NotConverged         ConvergenceReason = optimize.NotConverged
	GradientConverged    ConvergenceReason = optimize.GradientConverged
	MaxIterationsReached ConvergenceReason = optimize.MaxIterationsReached
	ObjectiveStagnation  ConvergenceReason = optimize.ObjectiveStagnation
	SearchFailed         ConvergenceReason = optimize.SearchFailed
)

// Objective contracts

// Function is a differentiable objective over vector type T.
type Function[T any] = optimize.Function[T]

// Func adapts a plain function to the Function interface.
type Func[T any] = optimize.Func[T]

// StochasticFunc draws a fresh batch objective on every evaluation.
type StochasticFunc[T any] = optimize.StochasticFunc[T]

// Strategy contracts

// DirectionStrategy produces a search direction from the current state.
type DirectionStrategy[T any] = optimize.DirectionStrategy[T]

// StepStrategy picks a scalar step length for a direction.
type StepStrategy[T any] = optimize.StepStrategy[T]

// StepApplier computes the candidate point for a direction and step length.
type StepApplier[T any] = optimize.StepApplier[T]

// HistoryStrategy owns the optimizer-specific memory threaded through states.
type HistoryStrategy[T any] = optimize.HistoryStrategy[T]

// Adjuster folds a correction (e.g. a regularization penalty) into the
// value and gradient used for convergence decisions.
type Adjuster[T any] = optimize.Adjuster[T]

// AdjustFunc adapts a plain function to the Adjuster interface.
type AdjustFunc[T any] = optimize.AdjustFunc[T]

// Failure taxonomy

// Recognized numerical failures.
var (
	ErrDivergentGradient = optimize.ErrDivergentGradient
	ErrStepSizeUnderflow = optimize.ErrStepSizeUnderflow
)

// LineSearchError indicates a bounded line search found no acceptable step.
type LineSearchError = optimize.LineSearchError

// IsNumericalFailure reports whether err is a recognized, locally
// recoverable numerical failure.
func IsNumericalFailure(err error) bool { return optimize.IsNumericalFailure(err) }

// Dense strategies

// SteepestDescent chooses the negative adjusted gradient as direction.
type SteepestDescent = strategy.SteepestDescent

// AxpyStep applies the plain update x' = x + stepSize*dir.
type AxpyStep = strategy.AxpyStep

// NoHistory is the history strategy for optimizers with no memory.
type NoHistory = strategy.NoHistory

// FixedStep always returns the same step length.
type FixedStep = strategy.FixedStep

// DecayingStep returns eta/sqrt(iter+1).
type DecayingStep = strategy.DecayingStep

// Backtracking is an Armijo backtracking line search.
type Backtracking = strategy.Backtracking

// LBFGS is a limited-memory quasi-Newton descent strategy.
type LBFGS = strategy.LBFGS

// OWLQN is the orthant-wise L-BFGS variant for L1 regularization.
type OWLQN = strategy.OWLQN

// AdaGrad is an adaptive-gradient strategy for stochastic objectives.
type AdaGrad = strategy.AdaGrad

// L2Adjuster folds an L2 penalty into the adjusted value and gradient.
type L2Adjuster = strategy.L2Adjuster

// L1Pseudo folds an L1 penalty into the adjusted value and produces the
// orthant-wise pseudo-gradient.
type L1Pseudo = strategy.L1Pseudo

// WithL2 wraps f with a differentiable L2 penalty.
func WithL2(f Function[[]float64], lambda float64) Function[[]float64] {
	return strategy.WithL2(f, lambda)
}

// Configuration-driven selection

// OptParams is the configuration record driving optimizer selection.
type OptParams = selector.Params

// DefaultOptParams mirrors the framework's standard configuration.
func DefaultOptParams() OptParams { return selector.DefaultParams() }

// Runner is a configured optimizer ready to minimize dense objectives.
type Runner = selector.Runner

// Build selects and wires the optimizer for the configuration.
//
// Example:
//
//	r, err := optimize.Build(optimize.OptParams{
//	    Regularization: 0.1,
//	    MaxIterations:  200,
//	    Tolerance:      1e-5,
//	    UseL1:          true,
//	})
//	x, err := r.Minimize(f, x0)
func Build(p OptParams) (Runner, error) { return selector.Build(p) }

// Dense returns the Normed capability for []float64 vectors.
func Dense() linalg.Normed[[]float64] { return linalg.Dense{} }
