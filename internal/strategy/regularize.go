package strategy

import (
	"math"

	"github.com/descent-ml/descent/internal/linalg"
	"github.com/descent-ml/descent/internal/optimize"
)

// WithL2 wraps f with a differentiable L2 penalty, returning an objective
// computing f(x) + (lambda/2)*||x||^2 with the matching gradient. Because
// the penalty is smooth it folds straight into the objective instead of
// going through the adjustment hook.
func WithL2(f optimize.Function[[]float64], lambda float64) optimize.Function[[]float64] {
	if lambda == 0 {
		return f
	}
	return optimize.Func[[]float64](func(x []float64) (float64, []float64) {
		value, grad := f.Calculate(x)
		value += 0.5 * lambda * linalg.Dot(x, x)
		return value, linalg.Axpy(lambda, x, grad)
	})
}

// L2Adjuster folds an L2 penalty into the adjusted value and gradient used
// for convergence decisions, leaving the raw objective untouched.
type L2Adjuster struct {
	Lambda float64
}

// Adjust implements optimize.Adjuster.
func (a L2Adjuster) Adjust(x, grad []float64, value float64) (float64, []float64) {
	return value + 0.5*a.Lambda*linalg.Dot(x, x), linalg.Axpy(a.Lambda, x, grad)
}

// L1Pseudo folds an L1 penalty into the adjusted value and produces the
// orthant-wise pseudo-gradient: at nonzero coordinates the penalty
// subgradient is lambda*sign(x); at zero coordinates the pseudo-gradient is
// the smallest-magnitude element of the subdifferential, which is 0 when
// the raw gradient sits inside [-lambda, lambda].
type L1Pseudo struct {
	Lambda float64
}

// Adjust implements optimize.Adjuster.
func (a L1Pseudo) Adjust(x, grad []float64, value float64) (float64, []float64) {
	adj := make([]float64, len(grad))
	for i, g := range grad {
		switch {
		case x[i] > 0:
			adj[i] = g + a.Lambda
		case x[i] < 0:
			adj[i] = g - a.Lambda
		case g+a.Lambda < 0:
			adj[i] = g + a.Lambda
		case g-a.Lambda > 0:
			adj[i] = g - a.Lambda
		default:
			adj[i] = 0
		}
	}
	return value + a.Lambda*linalg.Norm1(x), adj
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func softThreshold(z, threshold float64) float64 {
	if math.Abs(z) <= threshold {
		return 0
	}
	return z - sign(z)*threshold
}
