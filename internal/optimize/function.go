package optimize

// Function is a differentiable objective over vector type T.
//
// Calculate returns the objective value and gradient at x. Implementations
// may be stateful or non-deterministic: a stochastic objective is free to
// evaluate a different sampled mini-batch on every call, and the engine
// makes no determinism assumption.
type Function[T any] interface {
	Calculate(x T) (value float64, grad T)
}

// Func adapts a plain function to the Function interface.
type Func[T any] func(x T) (float64, T)

// Calculate implements Function.
func (f Func[T]) Calculate(x T) (float64, T) { return f(x) }

// StochasticFunc is a Function that draws a fresh batch objective on every
// evaluation. Draw is called once per Calculate, so consecutive evaluations
// may see different mini-batches.
//
// How batches are partitioned and sampled is the caller's concern; this
// adapter only threads the sampling through the Function contract.
type StochasticFunc[T any] struct {
	Draw func() Function[T]
}

// Calculate implements Function by evaluating a freshly drawn batch.
func (s StochasticFunc[T]) Calculate(x T) (float64, T) {
	return s.Draw().Calculate(x)
}
