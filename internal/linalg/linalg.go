// Package linalg provides the vector-space capabilities the optimization
// core is parameterized over, plus dense []float64 helpers used by the
// concrete strategies.
//
// The core only ever asks for a norm; all other arithmetic happens inside
// the pluggable strategies. Keeping the capability this narrow is what lets
// the engine run over any vector representation.
package linalg

import "math"

// Normed supplies the single capability the iteration engine needs from a
// vector type: a norm for convergence tests and logging.
type Normed[T any] interface {
	Norm(v T) float64
}

// NormFunc adapts a plain function to the Normed capability.
type NormFunc[T any] func(v T) float64

// Norm implements Normed.
func (f NormFunc[T]) Norm(v T) float64 { return f(v) }

// Dense is the Normed capability for dense []float64 vectors.
//
// Example:
//
//	var space linalg.Dense
//	space.Norm([]float64{3, 4}) // 5
type Dense struct{}

// Norm returns the Euclidean norm of v.
func (Dense) Norm(v []float64) float64 { return Norm(v) }

// Norm returns the Euclidean (L2) norm of v.
func Norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Norm1 returns the L1 norm of v.
func Norm1(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += math.Abs(x)
	}
	return sum
}

// Dot returns the inner product of a and b. Panics if lengths differ.
func Dot(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("linalg: dimension mismatch")
	}
	var sum float64
	for i, x := range a {
		sum += x * b[i]
	}
	return sum
}

// Scale returns alpha*v as a fresh vector.
func Scale(alpha float64, v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = alpha * x
	}
	return out
}

// Axpy returns alpha*x + y as a fresh vector. Panics if lengths differ.
func Axpy(alpha float64, x, y []float64) []float64 {
	if len(x) != len(y) {
		panic("linalg: dimension mismatch")
	}
	out := make([]float64, len(y))
	for i := range y {
		out[i] = alpha*x[i] + y[i]
	}
	return out
}

// Clone returns a copy of v.
func Clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

// Zeros returns an n-dimensional zero vector.
func Zeros(n int) []float64 { return make([]float64, n) }

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
