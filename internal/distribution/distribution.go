// Package distribution provides log-densities over tensors and the adapter
// that moves a distribution into unconstrained space through a transform.
//
// A Transformed distribution evaluates
//
//	logp(y) = base.LogP(t.Backward(y)) + t.JacobianDet(y)
//
// which is what gradient-based samplers need to explore a constrained support
// freely in ℝⁿ.
package distribution

import (
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/bijector/internal/tensor"
	"github.com/born-ml/bijector/internal/transform"
)

// ErrInvalidParameter is returned for parameters outside a distribution's domain.
var ErrInvalidParameter = errors.New("distribution: invalid parameter")

// Distribution is a log-density with a default point in its support.
type Distribution interface {
	// LogP returns the log-density at x. Element-wise densities keep x's
	// shape; multivariate ones reduce their event axis.
	LogP(x *tensor.Tensor) (*tensor.Tensor, error)

	// Default returns a representative point of the support.
	Default() *tensor.Tensor
}

// param coerces v and checks every element with ok.
func param(name string, v any, ok func(float64) bool) (*tensor.Tensor, error) {
	t, err := transform.AsTensor(v)
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}
	for _, x := range t.Data() {
		if !ok(x) {
			return nil, errors.Wrapf(ErrInvalidParameter, "%s = %v", name, x)
		}
	}
	return t, nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

func positive(x float64) bool { return x > 0 && !math.IsInf(x, 0) }

// eventShape broadcasts the parameter shapes with an explicit shape.
func eventShape(shape []int, params ...*tensor.Tensor) (tensor.Shape, error) {
	out := tensor.Shape(shape).Clone()
	for _, p := range params {
		var err error
		if out, _, err = tensor.BroadcastShapes(out, p.Shape()); err != nil {
			return nil, errors.Wrap(ErrInvalidParameter, err.Error())
		}
	}
	return out, nil
}

// on binds a parameter to x's backend.
func on(p, x *tensor.Tensor) *tensor.Tensor {
	return tensor.New(p.Raw(), x.Backend())
}

// supportMask returns 0 where inside(v) holds and -Inf elsewhere, on x's backend.
// The mask is a constant: no gradient flows through the support test.
func supportMask(x *tensor.Tensor, inside func(i int, v float64) bool) *tensor.Tensor {
	mask := tensor.Zeros(x.Shape(), x.Backend())
	for i, v := range x.Data() {
		if !inside(i, v) {
			mask.Data()[i] = math.Inf(-1)
		}
	}
	return mask
}

// broadcastTo expands p to shape on p's backend.
func broadcastTo(p *tensor.Tensor, shape tensor.Shape) *tensor.Tensor {
	return tensor.Zeros(shape, p.Backend()).Add(p)
}
