// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor API of bijector.
//
// # Overview
//
// A Tensor is a dense, row-major float64 array bound to a Backend. Every
// operation dispatches to that backend, so the same code runs eagerly on the
// CPU backend or is recorded for differentiation on an autodiff backend.
//
//   - NumPy-style broadcasting for element-wise binary operations
//   - Last-axis reductions, cumulative sums, narrowing and concatenation
//   - Gather and IndexPut along an axis for packed layouts
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/bijector/backend/cpu"
//	    "github.com/born-ml/bijector/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Vector(backend, 0.2, 0.3, 0.5)
//	    y := x.Log().SumDim(-1, false)
//	}
//
// # Errors
//
// Shape mismatches are programming errors and panic with the name of the
// failing operation. Numeric domain problems follow IEEE 754: log of a
// negative value is NaN, log of zero is -Inf.
package tensor
