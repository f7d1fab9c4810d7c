// Copyright 2025 The Descent Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linalg provides the public vector-space capability consumed by
// the optimization engine, plus dense []float64 helpers.
package linalg

import (
	"github.com/descent-ml/descent/internal/linalg"
)

// Normed supplies the single capability the engine needs from a vector
// type: a norm for convergence tests and logging.
type Normed[T any] = linalg.Normed[T]

// NormFunc adapts a plain function to the Normed capability.
type NormFunc[T any] = linalg.NormFunc[T]

// Dense is the Normed capability for dense []float64 vectors.
type Dense = linalg.Dense

// Norm returns the Euclidean (L2) norm of v.
func Norm(v []float64) float64 { return linalg.Norm(v) }

// Norm1 returns the L1 norm of v.
func Norm1(v []float64) float64 { return linalg.Norm1(v) }

// Dot returns the inner product of a and b.
func Dot(a, b []float64) float64 { return linalg.Dot(a, b) }

// Scale returns alpha*v as a fresh vector.
func Scale(alpha float64, v []float64) []float64 { return linalg.Scale(alpha, v) }

// Axpy returns alpha*x + y as a fresh vector.
func Axpy(alpha float64, x, y []float64) []float64 { return linalg.Axpy(alpha, x, y) }

// Clone returns a copy of v.
func Clone(v []float64) []float64 { return linalg.Clone(v) }

// Zeros returns an n-dimensional zero vector.
func Zeros(n int) []float64 { return linalg.Zeros(n) }
