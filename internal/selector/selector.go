// Package selector maps a small configuration record onto a concrete
// optimizer: a strategy bundle wired into the generic iteration engine.
// Pure dispatch, no algorithmic content.
package selector

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/descent-ml/descent/internal/linalg"
	"github.com/descent-ml/descent/internal/optimize"
	"github.com/descent-ml/descent/internal/strategy"
)

// Params is the configuration record driving optimizer selection.
type Params struct {
	// BatchSize is carried for callers assembling stochastic objectives;
	// the selector itself does no batching.
	BatchSize int

	// Regularization is the penalty strength (L2 or L1 depending on UseL1).
	Regularization float64

	// Alpha is the base step size for stochastic optimizers.
	Alpha float64

	// MaxIterations caps the run; negative means unbounded.
	MaxIterations int

	// Tolerance is the relative gradient-norm tolerance.
	Tolerance float64

	// UseStochastic selects adaptive-gradient descent over quasi-Newton.
	UseStochastic bool

	// UseL1 selects the L1 penalty (orthant-wise or truncated-gradient
	// variants) over L2.
	UseL1 bool
}

// DefaultParams mirrors the framework's standard configuration.
func DefaultParams() Params {
	return Params{
		BatchSize:     512,
		Alpha:         0.5,
		MaxIterations: 1000,
		Tolerance:     1e-5,
		UseStochastic: true,
	}
}

// Runner is a configured optimizer ready to minimize dense objectives.
// *optimize.Minimizer[[]float64] satisfies the underlying behavior; Runner
// additionally folds in any objective wrapping the configuration requires.
type Runner interface {
	Minimize(f optimize.Function[[]float64], init []float64) ([]float64, error)
	Run(f optimize.Function[[]float64], init []float64) (optimize.State[[]float64], error)
	Reason(s optimize.State[[]float64]) optimize.ConvergenceReason
}

// runner pairs an engine with an objective wrapper (e.g. an L2 penalty
// folded into the objective before minimization).
type runner struct {
	m    *optimize.Minimizer[[]float64]
	wrap func(optimize.Function[[]float64]) optimize.Function[[]float64]
}

func (r runner) prepared(f optimize.Function[[]float64]) optimize.Function[[]float64] {
	if r.wrap == nil {
		return f
	}
	return r.wrap(f)
}

func (r runner) Minimize(f optimize.Function[[]float64], init []float64) ([]float64, error) {
	return r.m.Minimize(r.prepared(f), init)
}

func (r runner) Run(f optimize.Function[[]float64], init []float64) (optimize.State[[]float64], error) {
	return r.m.Run(r.prepared(f), init)
}

func (r runner) Reason(s optimize.State[[]float64]) optimize.ConvergenceReason {
	return r.m.Reason(s)
}

// Build selects the optimizer for the configuration:
//
//	deterministic + L2 -> L-BFGS on the L2-penalized objective
//	deterministic + L1 -> orthant-wise L-BFGS (OWL-QN)
//	stochastic    + L2 -> AdaGrad on the L2-penalized objective
//	stochastic    + L1 -> AdaGrad with truncated-gradient L1 updates
func Build(p Params) (Runner, error) {
	if p.Regularization < 0 {
		return nil, errors.Errorf("selector: regularization must be non-negative, got %g", p.Regularization)
	}
	if p.UseStochastic && p.Alpha <= 0 {
		return nil, errors.Errorf("selector: alpha must be positive for stochastic optimizers, got %g", p.Alpha)
	}
	if p.Tolerance <= 0 {
		return nil, errors.Errorf("selector: tolerance must be positive, got %g", p.Tolerance)
	}

	params := optimize.DefaultParams()
	params.MaxIter = p.MaxIterations
	params.Tolerance = p.Tolerance

	m := &optimize.Minimizer[[]float64]{
		Space:  linalg.Dense{},
		Params: params,
		Log:    logrus.WithField("component", "descent"),
	}

	switch {
	case !p.UseStochastic && !p.UseL1:
		lbfgs := strategy.LBFGS{}
		m.Direction = lbfgs
		m.History = lbfgs
		m.Step = strategy.Backtracking{}
		m.Applier = strategy.AxpyStep{}
		return runner{m: m, wrap: l2Wrap(p.Regularization)}, nil

	case !p.UseStochastic && p.UseL1:
		owlqn := strategy.OWLQN{Lambda: p.Regularization}
		m.Direction = owlqn
		m.History = owlqn
		m.Step = owlqn
		m.Applier = owlqn
		m.Adjust = strategy.L1Pseudo{Lambda: p.Regularization}
		return runner{m: m}, nil

	case p.UseStochastic && !p.UseL1:
		adagrad := strategy.AdaGrad{}
		m.Direction = adagrad
		m.History = adagrad
		m.Applier = adagrad
		m.Step = strategy.DecayingStep(p.Alpha)
		return runner{m: m, wrap: l2Wrap(p.Regularization)}, nil

	default:
		adagrad := strategy.AdaGrad{L1: p.Regularization}
		m.Direction = adagrad
		m.History = adagrad
		m.Applier = adagrad
		m.Step = strategy.DecayingStep(p.Alpha)
		m.Adjust = strategy.L1Pseudo{Lambda: p.Regularization}
		return runner{m: m}, nil
	}
}

func l2Wrap(lambda float64) func(optimize.Function[[]float64]) optimize.Function[[]float64] {
	if lambda == 0 {
		return nil
	}
	return func(f optimize.Function[[]float64]) optimize.Function[[]float64] {
		return strategy.WithL2(f, lambda)
	}
}
