package optimize

// DirectionStrategy produces a search direction from the current state.
// Concrete optimizers (quasi-Newton, adaptive-gradient, ...) implement this
// outside the core.
type DirectionStrategy[T any] interface {
	ChooseDirection(s *State[T]) T
}

// StepStrategy picks a scalar step length for the given direction.
//
// A recognized numerical failure (ErrStepSizeUnderflow, *LineSearchError)
// triggers the engine's recovery protocol; any other error aborts the run.
type StepStrategy[T any] interface {
	DetermineStepSize(s *State[T], f Function[T], dir T) (float64, error)
}

// StepApplier computes the candidate point for a direction and step length,
// typically x - stepSize*dir or a projected variant. All vector arithmetic
// in a step happens here, never in the engine itself.
type StepApplier[T any] interface {
	TakeStep(s *State[T], dir T, stepSize float64) T
}

// HistoryStrategy owns the optimizer-specific memory threaded through
// states. Initial builds a fresh history at a point (also used to reset
// history when recovering from a numerical failure); Update derives the
// next history from a completed step.
type HistoryStrategy[T any] interface {
	Initial(f Function[T], x T) any
	Update(newX, newGrad T, newValue float64, prev *State[T]) any
}

// Adjuster folds a correction into the raw objective value and gradient
// before they are used for convergence decisions, e.g. a regularization
// penalty not expressed in the objective itself. A nil Adjuster on the
// engine means identity.
type Adjuster[T any] interface {
	Adjust(x, grad T, value float64) (adjValue float64, adjGrad T)
}

// AdjustFunc adapts a plain function to the Adjuster interface.
type AdjustFunc[T any] func(x, grad T, value float64) (float64, T)

// Adjust implements Adjuster.
func (f AdjustFunc[T]) Adjust(x, grad T, value float64) (float64, T) {
	return f(x, grad, value)
}
