// Package strategy provides concrete descent-direction, step-size and
// regularization strategies over dense []float64 vectors, for use with the
// generic iteration engine in internal/optimize.
//
// The engine stays generic over the vector type; everything here commits to
// dense vectors so the optimizer math can be written element-wise.
package strategy

import (
	"github.com/descent-ml/descent/internal/linalg"
	"github.com/descent-ml/descent/internal/optimize"
)

// SteepestDescent chooses the negative adjusted gradient as the search
// direction.
type SteepestDescent struct{}

// ChooseDirection implements optimize.DirectionStrategy.
func (SteepestDescent) ChooseDirection(s *optimize.State[[]float64]) []float64 {
	return linalg.Scale(-1, s.AdjustedGrad)
}

// AxpyStep applies the plain update x' = x + stepSize*dir.
type AxpyStep struct{}

// TakeStep implements optimize.StepApplier.
func (AxpyStep) TakeStep(s *optimize.State[[]float64], dir []float64, stepSize float64) []float64 {
	return linalg.Axpy(stepSize, dir, s.X)
}

// NoHistory is the history strategy for optimizers with no memory.
type NoHistory struct{}

// Initial implements optimize.HistoryStrategy.
func (NoHistory) Initial(optimize.Function[[]float64], []float64) any { return nil }

// Update implements optimize.HistoryStrategy.
func (NoHistory) Update([]float64, []float64, float64, *optimize.State[[]float64]) any {
	return nil
}
