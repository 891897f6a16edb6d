// Package optim implements first-order optimizers over a single tensor.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Gradient descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Optimizers minimise. To maximise a log-density, step with the negated
// gradient.
//
// Example usage:
//
//	opt := optim.NewAdam(optim.AdamConfig{LR: 0.01})
//	for range steps {
//	    grad, _ := autodiff.Gradient(backend, y, loss)
//	    opt.Step(y, grad)
//	}
package optim

import (
	"fmt"

	"github.com/born-ml/bijector/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step updates param in place from grad, which must have param's shape.
	Step(param, grad *tensor.Tensor)

	// Reset clears accumulated state such as momentum buffers.
	Reset()

	// GetLR returns the current learning rate.
	GetLR() float64
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}

func checkShapes(name string, param, grad *tensor.Tensor) {
	if !param.Shape().Equal(grad.Shape()) {
		panic(fmt.Sprintf("%s: gradient shape %v does not match parameter %v", name, grad.Shape(), param.Shape()))
	}
}

// resize returns buf with n zeroed elements when its length differs from n.
func resize(buf []float64, n int) []float64 {
	if len(buf) == n {
		return buf
	}
	return make([]float64, n)
}

var (
	_ Optimizer = (*SGD)(nil)
	_ Optimizer = (*Adam)(nil)
)
