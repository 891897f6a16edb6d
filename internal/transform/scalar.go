package transform

import (
	"sync"

	"github.com/born-ml/bijector/internal/tensor"
)

// LogTransform maps (0,∞) to ℝ with log(x).
type LogTransform struct {
	named
	elementwise
}

var logOnce = sync.OnceValue(func() *LogTransform {
	return &LogTransform{named: named{name: "log", kind: KindLog}}
})

// Log returns the shared log transform.
func Log() *LogTransform { return logOnce() }

// Forward computes log(x).
func (t *LogTransform) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	return x.Log(), nil
}

// Backward computes exp(y).
func (t *LogTransform) Backward(y *tensor.Tensor) (*tensor.Tensor, error) {
	return y.Exp(), nil
}

// JacobianDet is log|d exp(y)/dy| = y.
func (t *LogTransform) JacobianDet(y *tensor.Tensor) (*tensor.Tensor, error) {
	return y, nil
}

// LogExpM1Transform maps (0,∞) to ℝ with the inverse of softplus.
type LogExpM1Transform struct {
	named
	elementwise
}

var logExpM1Once = sync.OnceValue(func() *LogExpM1Transform {
	return &LogExpM1Transform{named: named{name: "log_exp_m1", kind: KindLogExpM1}}
})

// LogExpM1 returns the shared softplus-inverse transform.
func LogExpM1() *LogExpM1Transform { return logExpM1Once() }

// Forward computes log(exp(x) - 1) as log(1 - exp(-x)) + x.
func (t *LogExpM1Transform) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	return x.Neg().Exp().RSubScalar(1).Log().Add(x), nil
}

// Backward computes softplus(y).
func (t *LogExpM1Transform) Backward(y *tensor.Tensor) (*tensor.Tensor, error) {
	return y.Softplus(), nil
}

// JacobianDet is log σ(y) = -softplus(-y).
func (t *LogExpM1Transform) JacobianDet(y *tensor.Tensor) (*tensor.Tensor, error) {
	return y.Neg().Softplus().Neg(), nil
}

// LogOddsTransform maps (0,1) to ℝ with logit(x).
type LogOddsTransform struct {
	named
	elementwise
}

var logOddsOnce = sync.OnceValue(func() *LogOddsTransform {
	return &LogOddsTransform{named: named{name: "logodds", kind: KindLogOdds}}
})

// LogOdds returns the shared logit transform.
func LogOdds() *LogOddsTransform { return logOddsOnce() }

// Forward computes logit(x) = log(x) - log1p(-x).
func (t *LogOddsTransform) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	return x.Log().Sub(x.Neg().Log1p()), nil
}

// Backward computes the logistic function σ(y).
func (t *LogOddsTransform) Backward(y *tensor.Tensor) (*tensor.Tensor, error) {
	return y.Sigmoid(), nil
}

// JacobianDet is log σ(y)σ(-y) = -softplus(-y) - softplus(y).
func (t *LogOddsTransform) JacobianDet(y *tensor.Tensor) (*tensor.Tensor, error) {
	return y.Neg().Softplus().Add(y.Softplus()).Neg(), nil
}

// CircularTransform wraps ℝ onto (-π, π].
type CircularTransform struct {
	named
	elementwise
}

var circularOnce = sync.OnceValue(func() *CircularTransform {
	return &CircularTransform{named: named{name: "circular", kind: KindCircular}}
})

// Circular returns the shared circular transform.
func Circular() *CircularTransform { return circularOnce() }

// Forward is the identity.
func (t *CircularTransform) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	return x, nil
}

// Backward wraps y to its principal angle atan2(sin y, cos y).
func (t *CircularTransform) Backward(y *tensor.Tensor) (*tensor.Tensor, error) {
	return y.Sin().Atan2(y.Cos()), nil
}

// JacobianDet is zero: wrapping is locally measure preserving.
func (t *CircularTransform) JacobianDet(y *tensor.Tensor) (*tensor.Tensor, error) {
	return tensor.Zeros(y.Shape(), y.Backend()), nil
}
