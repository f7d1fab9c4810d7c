package optimize_test

import (
	stderrors "errors"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/descent-ml/descent/internal/optimize"
)

func TestIsNumericalFailure(t *testing.T) {
	assert.True(t, optimize.IsNumericalFailure(optimize.ErrDivergentGradient))
	assert.True(t, optimize.IsNumericalFailure(optimize.ErrStepSizeUnderflow))
	assert.True(t, optimize.IsNumericalFailure(&optimize.LineSearchError{GradNorm: 1, DirNorm: 2}))

	assert.False(t, optimize.IsNumericalFailure(nil))
	assert.False(t, optimize.IsNumericalFailure(stderrors.New("out of memory")))
}

func TestIsNumericalFailure_Wrapped(t *testing.T) {
	wrapped := errors.Wrap(optimize.ErrStepSizeUnderflow, "during line search")
	assert.True(t, optimize.IsNumericalFailure(wrapped))

	wrappedLS := errors.Wrap(&optimize.LineSearchError{GradNorm: 0.5, DirNorm: 1.5}, "iteration 7")
	assert.True(t, optimize.IsNumericalFailure(wrappedLS))
}

func TestLineSearchError_Message(t *testing.T) {
	err := &optimize.LineSearchError{GradNorm: 0.25, DirNorm: 4}
	assert.Contains(t, err.Error(), "0.25")
	assert.Contains(t, err.Error(), "4")
	assert.Contains(t, err.Error(), "line search")
}
