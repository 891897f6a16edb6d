// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Float64 storage
//   - NumPy-compatible broadcasting
//   - Parallel element-wise kernels for large tensors
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
//	    x := tensor.Vector(backend, -1, 0, 1)
//	    y := x.Sigmoid()
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation
// allocates its result and does not share mutable state.
package cpu
