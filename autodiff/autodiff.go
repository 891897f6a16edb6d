// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides automatic differentiation capabilities.
//
// This package implements reverse-mode automatic differentiation using a
// gradient tape. It wraps any backend to add autodiff capabilities.
//
// Example:
//
//	import (
//	    "github.com/born-ml/bijector/autodiff"
//	    "github.com/born-ml/bijector/backend/cpu"
//	    "github.com/born-ml/bijector/tensor"
//	)
//
//	func main() {
//	    x := tensor.Vector(cpu.New(), 0.5, 2)
//
//	    // d/dx sum(exp(x))
//	    grad, err := autodiff.Gradient(cpu.New(), x, func(x *tensor.Tensor) (*tensor.Tensor, error) {
//	        return x.Exp().Sum(), nil
//	    })
//	}
package autodiff

import (
	"github.com/born-ml/bijector/internal/autodiff"
	"github.com/born-ml/bijector/tensor"
)

// Backend is the autodiff-enabled backend.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// New creates a new autodiff backend wrapping the given backend.
// The backend and its tape must not be shared across goroutines.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// BackwardCapable interface for backends that support backpropagation.
type BackwardCapable = autodiff.BackwardCapable

// Backward seeds t with ones and returns the gradient of every recorded raw
// tensor.
func Backward(t *tensor.Tensor, backend BackwardCapable) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.Backward(t, backend)
}

// Gradient evaluates f on a copy of x recorded on a fresh autodiff backend
// over inner, and returns df/dx summed over f's output. f must compute only
// with its argument's backend.
func Gradient[B tensor.Backend](inner B, x *tensor.Tensor, f func(*tensor.Tensor) (*tensor.Tensor, error)) (*tensor.Tensor, error) {
	return autodiff.Gradient(inner, x, f)
}
