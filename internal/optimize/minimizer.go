// Package optimize implements the iteration-control core of the Descent
// framework: a generic first-order minimization loop over an abstract
// vector type.
//
// The engine owns the convergence/failure state machine and nothing else.
// Descent directions, step lengths, history updates and regularization
// adjustments are supplied through narrow interfaces, so the same loop
// hosts deterministic quasi-Newton optimizers and stochastic
// adaptive-gradient optimizers unchanged.
//
// Example:
//
//	m := &optimize.Minimizer[[]float64]{
//	    Space:     linalg.Dense{},
//	    Direction: strategy.SteepestDescent{},
//	    Step:      strategy.FixedStep(0.1),
//	    Applier:   strategy.AxpyStep{},
//	    History:   strategy.NoHistory{},
//	    Params:    optimize.DefaultParams(),
//	}
//	x, err := m.Minimize(f, x0)
package optimize

import (
	"iter"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/descent-ml/descent/internal/linalg"
)

// gradNormFloor is the absolute floor for the gradient-norm convergence
// test, so a tiny |InitialAdjVal| cannot demand an unattainable tolerance.
const gradNormFloor = 1e-8

// Params configures the iteration engine.
type Params struct {
	// MaxIter caps the number of iterations. Negative means unbounded.
	MaxIter int

	// Tolerance is the relative gradient-norm tolerance: the run converges
	// once norm(AdjustedGrad) <= max(Tolerance*|InitialAdjVal|, 1e-8).
	Tolerance float64

	// ImprovementTol is the minimum relative improvement over the
	// stagnation window. A full window whose newest value exceeds
	// oldest*(1-ImprovementTol) counts as one stagnation episode.
	ImprovementTol float64

	// MinImprovementWindow is the stagnation window length. Zero or
	// negative disables stagnation tracking.
	MinImprovementWindow int

	// MaxImprovementFailures is the number of stagnation episodes after
	// which the run stops.
	MaxImprovementFailures int

	// DepthChargeSteps is the number of throwaway warm-up steps run from
	// the initial point purely to prime the History before real iteration
	// begins. Zero disables the warm-up.
	DepthChargeSteps int
}

// DefaultParams returns the standard engine configuration: unbounded
// iterations, 1e-6 relative tolerance, a 10-element stagnation window with
// 1e-4 improvement tolerance, and a single tolerated stagnation episode.
func DefaultParams() Params {
	return Params{
		MaxIter:                -1,
		Tolerance:              1e-6,
		ImprovementTol:         1e-4,
		MinImprovementWindow:   10,
		MaxImprovementFailures: 1,
	}
}

// ConvergenceReason explains why a run stopped.
type ConvergenceReason int

const (
	// NotConverged means the state does not satisfy any stopping rule.
	NotConverged ConvergenceReason = iota
	// GradientConverged means the adjusted gradient norm fell below the
	// scaled tolerance.
	GradientConverged
	// MaxIterationsReached means the iteration cap was hit.
	MaxIterationsReached
	// ObjectiveStagnation means the objective stopped improving for the
	// configured number of window episodes.
	ObjectiveStagnation
	// SearchFailed means two consecutive numerical failures exhausted the
	// recovery budget.
	SearchFailed
)

func (r ConvergenceReason) String() string {
	switch r {
	case GradientConverged:
		return "GradientConverged"
	case MaxIterationsReached:
		return "MaxIterationsReached"
	case ObjectiveStagnation:
		return "ObjectiveStagnation"
	case SearchFailed:
		return "SearchFailed"
	default:
		return "NotConverged"
	}
}

// Minimizer is the iteration engine. It runs the step/evaluate/adjust/record
// loop over the supplied strategies, applies the convergence tests, and
// recovers from recognized numerical failures.
//
// Space, Direction, Step, Applier and History must be non-nil. Adjust and
// Log are optional; a nil Adjust is the identity and a nil Log falls back
// to the logrus standard logger.
type Minimizer[T any] struct {
	Space     linalg.Normed[T]
	Direction DirectionStrategy[T]
	Step      StepStrategy[T]
	Applier   StepApplier[T]
	History   HistoryStrategy[T]
	Adjust    Adjuster[T]
	Params    Params
	Log       *logrus.Entry
}

// Iterations returns the lazy sequence of optimization states, starting
// with the evaluated initial point. The sequence is single-pass and
// self-terminating: it ends right after the first state satisfying a
// stopping rule (that state included).
//
// Recognized numerical failures are handled inside the loop and never
// surface as sequence errors; any other error ends the sequence with the
// last produced state and that error. The consumer may stop ranging at any
// time; no resources are held between pulls.
func (m *Minimizer[T]) Iterations(f Function[T], init T) iter.Seq2[State[T], error] {
	return func(yield func(State[T], error) bool) {
		log := m.logger()

		state, err := m.initialState(f, init)
		if err != nil {
			yield(State[T]{}, err)
			return
		}
		if !yield(state, nil) {
			return
		}
		if r := m.Reason(state); r != NotConverged {
			log.WithField("reason", r.String()).Debug("converged at initial point")
			return
		}

		// failedOnce tracks whether the last attempted step failed; a
		// second failure with no intervening success is terminal.
		failedOnce := false
		for {
			next, err := m.step(f, state)
			switch {
			case err == nil:
				failedOnce = false
				state = next
			case !IsNumericalFailure(err):
				yield(state, err)
				return
			case failedOnce:
				log.WithFields(logrus.Fields{
					"iter": state.Iter,
				}).WithError(err).Error("second consecutive numerical failure, giving up")
				state.SearchFailed = true
				yield(state, nil)
				return
			default:
				log.WithFields(logrus.Fields{
					"iter": state.Iter,
				}).WithError(err).Warn("numerical failure, resetting history")
				state.History = m.History.Initial(f, state.X)
				failedOnce = true
				continue
			}

			if !yield(state, nil) {
				return
			}
			if r := m.Reason(state); r != NotConverged {
				log.WithFields(logrus.Fields{
					"iter":     state.Iter,
					"value":    state.AdjustedValue,
					"gradNorm": m.Space.Norm(state.AdjustedGrad),
					"reason":   r.String(),
				}).Debug("converged")
				return
			}
		}
	}
}

// Run drains the iteration sequence and returns the terminal state.
// Callers should inspect the state (SearchFailed, Reason) to distinguish
// genuine convergence from failure-induced stopping.
func (m *Minimizer[T]) Run(f Function[T], init T) (State[T], error) {
	var last State[T]
	for s, err := range m.Iterations(f, init) {
		if err != nil {
			return last, err
		}
		last = s
	}
	return last, nil
}

// Minimize returns the point from the final produced state. The result may
// be a degraded, non-converged point if the run stopped on SearchFailed;
// use Run to inspect the terminal state.
func (m *Minimizer[T]) Minimize(f Function[T], init T) (T, error) {
	s, err := m.Run(f, init)
	return s.X, err
}

// Reason reports which stopping rule, if any, the state satisfies.
func (m *Minimizer[T]) Reason(s State[T]) ConvergenceReason {
	p := m.Params
	switch {
	case s.SearchFailed:
		return SearchFailed
	case p.MaxIter >= 0 && s.Iter >= p.MaxIter:
		return MaxIterationsReached
	case m.Space.Norm(s.AdjustedGrad) <= math.Max(p.Tolerance*math.Abs(s.InitialAdjVal), gradNormFloor):
		return GradientConverged
	case s.ImprovementFailures >= p.MaxImprovementFailures:
		return ObjectiveStagnation
	default:
		return NotConverged
	}
}

// initialState evaluates the objective at the starting point, optionally
// after the depth-charge warm-up, and assembles iteration 0.
func (m *Minimizer[T]) initialState(f Function[T], init T) (State[T], error) {
	history := m.History.Initial(f, init)

	value, grad := f.Calculate(init)
	adjValue, adjGrad := m.adjust(init, grad, value)
	state := State[T]{
		X:             init,
		Value:         value,
		Grad:          grad,
		AdjustedValue: adjValue,
		AdjustedGrad:  adjGrad,
		InitialAdjVal: adjValue,
		History:       history,
	}

	if m.Params.DepthChargeSteps > 0 {
		warmed, err := m.depthCharge(f, state)
		if err != nil {
			return State[T]{}, err
		}
		// Keep the warmed-up history, discard everything else the warm-up
		// trajectory produced.
		state.History = warmed
	}
	return state, nil
}

// depthCharge runs the configured number of throwaway steps from the
// initial state and returns only the accumulated history. A recognized
// numerical failure aborts the warm-up early, keeping the history gathered
// so far; any other error is fatal.
func (m *Minimizer[T]) depthCharge(f Function[T], initial State[T]) (any, error) {
	state := initial
	for i := 0; i < m.Params.DepthChargeSteps; i++ {
		next, err := m.step(f, state)
		if err != nil {
			if IsNumericalFailure(err) {
				m.logger().WithFields(logrus.Fields{
					"step": i,
				}).WithError(err).Warn("numerical failure during warm-up, keeping partial history")
				break
			}
			return nil, err
		}
		state = next
	}
	return state.History, nil
}

// step advances one iteration: direction, step length, candidate point,
// evaluation, adjustment, history update, stagnation bookkeeping.
func (m *Minimizer[T]) step(f Function[T], s State[T]) (State[T], error) {
	dir := m.Direction.ChooseDirection(&s)

	stepSize, err := m.Step.DetermineStepSize(&s, f, dir)
	if err != nil {
		return State[T]{}, err
	}
	if stepSize == 0 || math.IsNaN(stepSize) {
		return State[T]{}, ErrStepSizeUnderflow
	}

	x := m.Applier.TakeStep(&s, dir, stepSize)
	value, grad := f.Calculate(x)
	adjValue, adjGrad := m.adjust(x, grad, value)
	if !linalg.IsFinite(m.Space.Norm(adjGrad)) {
		return State[T]{}, ErrDivergentGradient
	}

	history := m.History.Update(x, grad, value, &s)
	window, failures := m.updateWindow(s.FVals, s.ImprovementFailures, adjValue)

	return State[T]{
		X:                   x,
		Value:               value,
		Grad:                grad,
		AdjustedValue:       adjValue,
		AdjustedGrad:        adjGrad,
		Iter:                s.Iter + 1,
		InitialAdjVal:       s.InitialAdjVal,
		History:             history,
		FVals:               window,
		ImprovementFailures: failures,
	}, nil
}

// updateWindow appends the new adjusted value to the stagnation window,
// evicting the oldest entry once over capacity, and runs the stagnation
// test. A stagnation episode clears the window and increments the failure
// count; any other step resets the count to 0.
//
// The test deliberately compares only the two ends of the window rather
// than a windowed average; changing it changes convergence behavior.
func (m *Minimizer[T]) updateWindow(prev []float64, failures int, adjValue float64) ([]float64, int) {
	p := m.Params
	if p.MinImprovementWindow <= 0 {
		return nil, 0
	}

	window := append(linalg.Clone(prev), adjValue)
	if len(window) > p.MinImprovementWindow {
		window = window[1:]
	}
	if len(window) >= p.MinImprovementWindow &&
		window[len(window)-1] > window[0]*(1-p.ImprovementTol) {
		return nil, failures + 1
	}
	return window, 0
}

func (m *Minimizer[T]) adjust(x T, grad T, value float64) (float64, T) {
	if m.Adjust == nil {
		return value, grad
	}
	return m.Adjust.Adjust(x, grad, value)
}

func (m *Minimizer[T]) logger() *logrus.Entry {
	if m.Log != nil {
		return m.Log
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
