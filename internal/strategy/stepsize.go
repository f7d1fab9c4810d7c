package strategy

import (
	"math"

	"github.com/descent-ml/descent/internal/linalg"
	"github.com/descent-ml/descent/internal/optimize"
)

// FixedStep always returns the same step length.
type FixedStep float64

// DetermineStepSize implements optimize.StepStrategy.
func (fs FixedStep) DetermineStepSize(*optimize.State[[]float64], optimize.Function[[]float64], []float64) (float64, error) {
	return float64(fs), nil
}

// DecayingStep returns eta/sqrt(iter+1), the standard schedule for
// stochastic subgradient methods.
type DecayingStep float64

// DetermineStepSize implements optimize.StepStrategy.
func (ds DecayingStep) DetermineStepSize(s *optimize.State[[]float64], _ optimize.Function[[]float64], _ []float64) (float64, error) {
	return float64(ds) / math.Sqrt(float64(s.Iter+1)), nil
}

// Backtracking is an Armijo backtracking line search: starting from
// InitialStep, the step shrinks geometrically until the sufficient-decrease
// condition
//
//	f(x + alpha*dir) <= f(x) + Decrease*alpha*<grad, dir>
//
// holds. The search is bounded: it reports ErrStepSizeUnderflow once the
// step falls below MinStep and a LineSearchError once MaxEvals trial
// evaluations are spent.
type Backtracking struct {
	InitialStep float64 // first trial step, default 1
	Shrink      float64 // geometric shrink factor, default 0.5
	Decrease    float64 // sufficient-decrease constant, default 1e-4
	MaxEvals    int     // trial evaluation budget, default 30
	MinStep     float64 // smallest usable step, default 1e-12
}

// DetermineStepSize implements optimize.StepStrategy.
func (b Backtracking) DetermineStepSize(s *optimize.State[[]float64], f optimize.Function[[]float64], dir []float64) (float64, error) {
	initial, shrink, decrease, maxEvals, minStep := b.defaults()

	gd := linalg.Dot(s.AdjustedGrad, dir)
	if gd >= 0 {
		// Not a descent direction; searching along it cannot succeed.
		return 0, &optimize.LineSearchError{
			GradNorm: linalg.Norm(s.AdjustedGrad),
			DirNorm:  linalg.Norm(dir),
		}
	}

	alpha := initial
	for i := 0; i < maxEvals; i++ {
		if alpha < minStep {
			return 0, optimize.ErrStepSizeUnderflow
		}
		value, _ := f.Calculate(linalg.Axpy(alpha, dir, s.X))
		if !math.IsNaN(value) && value <= s.Value+decrease*alpha*gd {
			return alpha, nil
		}
		alpha *= shrink
	}
	return 0, &optimize.LineSearchError{
		GradNorm: linalg.Norm(s.AdjustedGrad),
		DirNorm:  linalg.Norm(dir),
	}
}

func (b Backtracking) defaults() (initial, shrink, decrease float64, maxEvals int, minStep float64) {
	initial, shrink, decrease, maxEvals, minStep = b.InitialStep, b.Shrink, b.Decrease, b.MaxEvals, b.MinStep
	if initial == 0 {
		initial = 1
	}
	if shrink == 0 {
		shrink = 0.5
	}
	if decrease == 0 {
		decrease = 1e-4
	}
	if maxEvals == 0 {
		maxEvals = 30
	}
	if minStep == 0 {
		minStep = 1e-12
	}
	return
}
