package strategy

import (
	"github.com/descent-ml/descent/internal/linalg"
	"github.com/descent-ml/descent/internal/optimize"
)

// curvatureFloor rejects (s, y) pairs whose curvature s'y is too small to
// keep the inverse-Hessian approximation positive definite.
const curvatureFloor = 1e-10

// LBFGS is a limited-memory quasi-Newton descent strategy. Its history is a
// ring of the most recent (s, y) = (x_{k+1}-x_k, g_{k+1}-g_k) pairs; the
// search direction comes from the standard two-loop recursion with a
// gamma-scaled initial inverse Hessian.
//
// Pair LBFGS with a Backtracking step strategy and the AxpyStep applier.
type LBFGS struct {
	// Memory is the number of retained (s, y) pairs, default 10.
	Memory int
}

func (l LBFGS) memory() int {
	if l.Memory <= 0 {
		return 10
	}
	return l.Memory
}

// lbfgsHistory holds the retained correction pairs, newest last. Updates
// build a fresh history value; pair slices are never mutated in place.
type lbfgsHistory struct {
	memory int
	s, y   [][]float64
}

// Initial implements optimize.HistoryStrategy. It is also what the engine
// calls to reset the history after a numerical failure.
func (l LBFGS) Initial(optimize.Function[[]float64], []float64) any {
	return &lbfgsHistory{memory: l.memory()}
}

// Update implements optimize.HistoryStrategy, appending the newest
// correction pair and evicting the oldest once over capacity. Pairs failing
// the curvature condition are skipped.
func (l LBFGS) Update(newX, newGrad []float64, _ float64, prev *optimize.State[[]float64]) any {
	old := prev.History.(*lbfgsHistory)

	s := linalg.Axpy(-1, prev.X, newX)
	y := linalg.Axpy(-1, prev.Grad, newGrad)
	if linalg.Dot(s, y) < curvatureFloor {
		return old
	}

	next := &lbfgsHistory{
		memory: old.memory,
		s:      append(append([][]float64(nil), old.s...), s),
		y:      append(append([][]float64(nil), old.y...), y),
	}
	if len(next.s) > next.memory {
		next.s = next.s[1:]
		next.y = next.y[1:]
	}
	return next
}

// ChooseDirection implements optimize.DirectionStrategy via the two-loop
// recursion. With an empty history the direction degrades to steepest
// descent.
func (l LBFGS) ChooseDirection(s *optimize.State[[]float64]) []float64 {
	h := s.History.(*lbfgsHistory)
	return h.applyInverseHessian(s.AdjustedGrad)
}

// applyInverseHessian returns -H*g where H is the current limited-memory
// inverse-Hessian approximation.
func (h *lbfgsHistory) applyInverseHessian(grad []float64) []float64 {
	q := linalg.Clone(grad)
	n := len(h.s)
	if n == 0 {
		return linalg.Scale(-1, q)
	}

	alpha := make([]float64, n)
	rho := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		rho[i] = 1 / linalg.Dot(h.s[i], h.y[i])
		alpha[i] = rho[i] * linalg.Dot(h.s[i], q)
		q = linalg.Axpy(-alpha[i], h.y[i], q)
	}

	// Initial Hessian scaling gamma = s'y / y'y of the newest pair.
	gamma := linalg.Dot(h.s[n-1], h.y[n-1]) / linalg.Dot(h.y[n-1], h.y[n-1])
	r := linalg.Scale(gamma, q)

	for i := 0; i < n; i++ {
		beta := rho[i] * linalg.Dot(h.y[i], r)
		r = linalg.Axpy(alpha[i]-beta, h.s[i], r)
	}
	return linalg.Scale(-1, r)
}
