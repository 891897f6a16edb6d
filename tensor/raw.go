// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/bijector/internal/tensor"

// RawTensor is the backend-level representation: a shape, its row-major
// strides and the float64 buffer.
//
// Most users should use Tensor instead.
//
// Example:
//
//	raw, _ := tensor.RawFromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	clone := raw.Clone() // deep copy
type RawTensor = tensor.RawTensor

// NewRaw allocates a zero-filled raw tensor.
func NewRaw(shape Shape) (*RawTensor, error) {
	return tensor.NewRaw(shape)
}

// RawFromSlice copies data into a raw tensor of the given shape.
func RawFromSlice(data []float64, shape Shape) (*RawTensor, error) {
	return tensor.RawFromSlice(data, shape)
}
