package strategy

import (
	"math"

	"github.com/descent-ml/descent/internal/linalg"
	"github.com/descent-ml/descent/internal/optimize"
)

// OWLQN is the orthant-wise limited-memory quasi-Newton variant for
// L1-regularized objectives. It reuses the LBFGS correction-pair history
// but steers by the L1 pseudo-gradient: the two-loop direction is aligned
// against the pseudo-gradient, steps are projected back onto the current
// orthant, and the line search descends the L1-adjusted value.
//
// OWLQN provides direction, step size, step application and history in one
// strategy; register it for all four roles and pair it with an
// L1Pseudo{Lambda} adjuster so the engine's convergence tests see the
// penalized value and pseudo-gradient.
type OWLQN struct {
	LBFGS

	// Lambda is the L1 regularization strength.
	Lambda float64

	// Line-search knobs, zero values defaulting as in Backtracking.
	Shrink   float64
	Decrease float64
	MaxEvals int
	MinStep  float64
}

// ChooseDirection implements optimize.DirectionStrategy. The quasi-Newton
// direction is computed from the pseudo-gradient (the engine's adjusted
// gradient under L1Pseudo) and any component not descending with respect to
// it is zeroed.
func (o OWLQN) ChooseDirection(s *optimize.State[[]float64]) []float64 {
	h := s.History.(*lbfgsHistory)
	dir := h.applyInverseHessian(s.AdjustedGrad)
	for i, d := range dir {
		if d*s.AdjustedGrad[i] >= 0 {
			dir[i] = 0
		}
	}
	return dir
}

// TakeStep implements optimize.StepApplier with orthant projection: a
// coordinate that would cross zero is pinned at zero instead.
func (o OWLQN) TakeStep(s *optimize.State[[]float64], dir []float64, stepSize float64) []float64 {
	return projectedStep(s.X, dir, stepSize)
}

// DetermineStepSize implements optimize.StepStrategy with a backtracking
// search over the projected, L1-adjusted objective.
func (o OWLQN) DetermineStepSize(s *optimize.State[[]float64], f optimize.Function[[]float64], dir []float64) (float64, error) {
	shrink, decrease, maxEvals, minStep := o.Shrink, o.Decrease, o.MaxEvals, o.MinStep
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

	gd := linalg.Dot(s.AdjustedGrad, dir)
	if gd >= 0 {
		return 0, &optimize.LineSearchError{
			GradNorm: linalg.Norm(s.AdjustedGrad),
			DirNorm:  linalg.Norm(dir),
		}
	}

	// The very first step has no curvature information, so start small
	// relative to the direction instead of at unity.
	alpha := 1.0
	if h := s.History.(*lbfgsHistory); len(h.s) == 0 {
		if norm := linalg.Norm(dir); norm > 0 {
			alpha = math.Min(1, 1/norm)
		}
	}

	for i := 0; i < maxEvals; i++ {
		if alpha < minStep {
			return 0, optimize.ErrStepSizeUnderflow
		}
		trial := projectedStep(s.X, dir, alpha)
		value, _ := f.Calculate(trial)
		value += o.Lambda * linalg.Norm1(trial)
		if !math.IsNaN(value) && value <= s.AdjustedValue+decrease*alpha*gd {
			return alpha, nil
		}
		alpha *= shrink
	}
	return 0, &optimize.LineSearchError{
		GradNorm: linalg.Norm(s.AdjustedGrad),
		DirNorm:  linalg.Norm(dir),
	}
}

// projectedStep computes x + alpha*dir constrained to the orthant of x; a
// zero coordinate adopts the orthant the direction moves it into.
func projectedStep(x, dir []float64, alpha float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		orthant := sign(x[i])
		if orthant == 0 {
			orthant = sign(dir[i])
		}
		v := x[i] + alpha*dir[i]
		if sign(v) == orthant || v == 0 {
			out[i] = v
		}
	}
	return out
}
