package optimize

import (
	"errors"
	"fmt"
)

// Recognized numerical failures. These are locally recoverable by the
// iteration engine (one retry per successful-step streak); any other error
// is fatal and propagates to the caller unmodified.
var (
	// ErrDivergentGradient indicates the gradient picked up non-finite
	// values (NaN or overflow) after an update.
	ErrDivergentGradient = errors.New("optimize: gradient has non-finite values")

	// ErrStepSizeUnderflow indicates the step-size search reduced the step
	// below a usable magnitude without satisfying its acceptance criterion.
	ErrStepSizeUnderflow = errors.New("optimize: step size underflowed to zero")
)

// LineSearchError indicates a bounded line search failed to find an
// acceptable step. It carries the gradient and direction norms at the point
// of failure for diagnostics.
type LineSearchError struct {
	GradNorm float64
	DirNorm  float64
}

func (e *LineSearchError) Error() string {
	return fmt.Sprintf("optimize: line search failed to find an acceptable step (grad norm %g, direction norm %g)",
		e.GradNorm, e.DirNorm)
}

// IsNumericalFailure reports whether err is one of the recognized numerical
// failures the engine may recover from. Errors that wrap a recognized
// failure are recognized too.
func IsNumericalFailure(err error) bool {
	var lse *LineSearchError
	return errors.Is(err, ErrDivergentGradient) ||
		errors.Is(err, ErrStepSizeUnderflow) ||
		errors.As(err, &lse)
}
