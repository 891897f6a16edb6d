// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/bijector/internal/tensor"
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3} is a batch of two 3-vectors. Shape{} is a scalar.
type Shape = tensor.Shape

// Tensor is a float64 tensor bound to a backend.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Vector(backend, 1, 2, 3)
//	y := x.Exp().Add(x) // element-wise
type Tensor = tensor.Tensor

// New binds raw to backend b.
func New(raw *RawTensor, b Backend) *Tensor {
	return tensor.New(raw, b)
}

// FromSlice copies data into a tensor of the given shape.
func FromSlice(data []float64, shape Shape, b Backend) (*Tensor, error) {
	return tensor.FromSlice(data, shape, b)
}

// MustFromSlice is FromSlice that panics on a length mismatch.
func MustFromSlice(data []float64, shape Shape, b Backend) *Tensor {
	return tensor.MustFromSlice(data, shape, b)
}

// Vector creates a 1-D tensor.
func Vector(b Backend, values ...float64) *Tensor {
	return tensor.Vector(b, values...)
}

// Scalar creates a 0-D tensor.
func Scalar(value float64, b Backend) *Tensor {
	return tensor.Scalar(value, b)
}

// Zeros creates a zero-filled tensor.
func Zeros(shape Shape, b Backend) *Tensor {
	return tensor.Zeros(shape, b)
}

// Full creates a tensor filled with value.
func Full(shape Shape, value float64, b Backend) *Tensor {
	return tensor.Full(shape, value, b)
}

// Cat concatenates tensors along dim. All tensors use the first one's backend.
func Cat(tensors []*Tensor, dim int) *Tensor {
	return tensor.Cat(tensors, dim)
}

// BroadcastShapes returns the broadcast shape of a and b, and whether a
// broadcast (rather than an exact match) was needed.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
