// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides first-order optimizers over a tensor.
//
// # Overview
//
// This package contains:
//   - SGD: gradient descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// Optimizers minimise and update the parameter tensor in place.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/bijector/distribution"
//	    "github.com/born-ml/bijector/optim"
//	)
//
//	func main() {
//	    res, err := distribution.FindMAP(ctx, d, distribution.MAPOptions{
//	        Optimizer: optim.NewAdam(optim.AdamConfig{LR: 0.01}),
//	    })
//	}
package optim
