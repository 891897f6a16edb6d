// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/bijector/internal/tensor"

// Backend defines the interface that all compute backends implement.
// Backends never mutate their inputs and always return fresh tensors.
//
// Implementations:
//   - backend/cpu: pure Go, parallel over large element-wise loops
//
// Decorator backends for additional functionality:
//   - autodiff: reverse-mode differentiation (wraps any backend)
type Backend = tensor.Backend
