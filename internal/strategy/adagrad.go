package strategy

import (
	"math"

	"github.com/descent-ml/descent/internal/linalg"
	"github.com/descent-ml/descent/internal/optimize"
)

// AdaGrad is an adaptive-gradient descent strategy for stochastic
// objectives. Its history accumulates the element-wise sum of squared raw
// gradients; each coordinate of the direction is the raw gradient scaled by
// 1/(sqrt(G_i)+Epsilon), so frequently-updated coordinates take smaller
// steps.
//
// With L1 > 0 the step applier soft-thresholds each coordinate (truncated
// gradient), driving small weights exactly to zero. Pair that mode with an
// L1Pseudo adjuster so convergence tests see the penalized objective; the
// penalty itself is applied by the truncation, not the direction.
//
// Register AdaGrad for direction, history and step application, and pair it
// with a DecayingStep schedule.
type AdaGrad struct {
	// Epsilon keeps the per-coordinate scaling finite, default 1e-8.
	Epsilon float64

	// L1 is the truncated-gradient regularization strength; zero disables
	// truncation.
	L1 float64
}

func (a AdaGrad) epsilon() float64 {
	if a.Epsilon == 0 {
		return 1e-8
	}
	return a.Epsilon
}

// adagradHistory is the accumulated element-wise sum of squared gradients.
type adagradHistory struct {
	sumSq []float64
}

// Initial implements optimize.HistoryStrategy. The accumulator is seeded
// with the squared gradient at the given point, so the very first direction
// is already sensibly scaled. The engine also calls this to reset the
// accumulator when recovering from a numerical failure.
func (a AdaGrad) Initial(f optimize.Function[[]float64], x []float64) any {
	_, grad := f.Calculate(x)
	sumSq := make([]float64, len(grad))
	for i, g := range grad {
		sumSq[i] = g * g
	}
	return &adagradHistory{sumSq: sumSq}
}

// Update implements optimize.HistoryStrategy, accumulating the squared raw
// gradient at the new point.
func (a AdaGrad) Update(_, newGrad []float64, _ float64, prev *optimize.State[[]float64]) any {
	old := prev.History.(*adagradHistory)
	sumSq := linalg.Clone(old.sumSq)
	for i, g := range newGrad {
		sumSq[i] += g * g
	}
	return &adagradHistory{sumSq: sumSq}
}

// ChooseDirection implements optimize.DirectionStrategy over the raw
// gradient; any regularization enters through the objective (L2) or the
// truncated step (L1), never twice.
func (a AdaGrad) ChooseDirection(s *optimize.State[[]float64]) []float64 {
	h := s.History.(*adagradHistory)
	eps := a.epsilon()
	dir := make([]float64, len(s.Grad))
	for i, g := range s.Grad {
		dir[i] = -g / (math.Sqrt(h.sumSq[i]) + eps)
	}
	return dir
}

// TakeStep implements optimize.StepApplier. Without L1 it is a plain axpy
// update; with L1 each coordinate is soft-thresholded by the same adaptive
// scaling used for the direction.
func (a AdaGrad) TakeStep(s *optimize.State[[]float64], dir []float64, stepSize float64) []float64 {
	if a.L1 == 0 {
		return linalg.Axpy(stepSize, dir, s.X)
	}
	h := s.History.(*adagradHistory)
	eps := a.epsilon()
	out := make([]float64, len(s.X))
	for i := range s.X {
		z := s.X[i] + stepSize*dir[i]
		out[i] = softThreshold(z, stepSize*a.L1/(math.Sqrt(h.sumSq[i])+eps))
	}
	return out
}
