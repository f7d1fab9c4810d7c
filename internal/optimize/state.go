package optimize

// State is an immutable snapshot of optimization progress. The engine
// produces a fresh State per iteration; a State is never mutated once
// yielded, and the stagnation window slice is copied on every update.
type State[T any] struct {
	// X is the current point.
	X T

	// Value and Grad are the raw objective value and gradient at X.
	Value float64
	Grad  T

	// AdjustedValue and AdjustedGrad are the value and gradient after the
	// pluggable adjustment (e.g. a regularization penalty). Convergence
	// tests use these instead of the raw value and gradient.
	AdjustedValue float64
	AdjustedGrad  T

	// Iter counts completed iterations. It only ever increases, except
	// that the depth-charge warm-up restarts it at 0 before the first
	// yielded state.
	Iter int

	// InitialAdjVal is the adjusted value at iteration 0, fixed for the
	// life of a run. Relative-tolerance convergence checks scale by it.
	InitialAdjVal float64

	// History is opaque strategy-owned memory (e.g. past gradients),
	// replaced wholesale each iteration or reset on failure recovery.
	History any

	// FVals is a sliding window of recent adjusted values used to detect
	// stagnation. Its length never exceeds the configured window size;
	// the oldest entry is evicted first.
	FVals []float64

	// ImprovementFailures counts stagnation episodes. It resets to 0 on
	// any step that does not trigger a stagnation episode.
	ImprovementFailures int

	// SearchFailed is the terminal failure flag. Once set no further
	// states are produced.
	SearchFailed bool
}
