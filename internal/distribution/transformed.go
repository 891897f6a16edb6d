package distribution

import (
	"github.com/pkg/errors"

	"github.com/born-ml/bijector/internal/tensor"
	"github.com/born-ml/bijector/internal/transform"
)

// Transformed exposes a base distribution in the unconstrained space of a transform.
type Transformed struct {
	base      Distribution
	transform transform.Transform
	initial   *tensor.Tensor
}

// NewTransformed wraps base with t. The initial unconstrained value is
// t.Forward(base.Default()).
func NewTransformed(base Distribution, t transform.Transform) (*Transformed, error) {
	if base == nil || t == nil {
		return nil, errors.New("transformed: base distribution and transform are required")
	}
	initial, err := t.Forward(base.Default())
	if err != nil {
		return nil, errors.WithMessagef(err, "transformed: initial value through %s", t.Name())
	}
	return &Transformed{base: base, transform: t, initial: initial}, nil
}

// Base returns the wrapped distribution.
func (d *Transformed) Base() Distribution { return d.base }

// Transform returns the transform.
func (d *Transformed) Transform() transform.Transform { return d.transform }

// InitialValue returns the default point mapped to unconstrained space.
func (d *Transformed) InitialValue() *tensor.Tensor { return d.initial }

// Default is InitialValue, so a Transformed can itself be wrapped.
func (d *Transformed) Default() *tensor.Tensor { return d.initial }

// LogPNoJac evaluates the base density at Backward(x) without the Jacobian term.
func (d *Transformed) LogPNoJac(x *tensor.Tensor) (*tensor.Tensor, error) {
	v, err := d.transform.Backward(x)
	if err != nil {
		return nil, err
	}
	return d.base.LogP(v)
}

// LogP evaluates the density of x in unconstrained space.
//
// If the base density keeps an axis the Jacobian term has already reduced,
// that last axis is summed before the two are added.
func (d *Transformed) LogP(x *tensor.Tensor) (*tensor.Tensor, error) {
	logp, err := d.LogPNoJac(x)
	if err != nil {
		return nil, err
	}
	jac, err := d.transform.JacobianDet(x)
	if err != nil {
		return nil, err
	}
	if logp.NDim() > jac.NDim() {
		logp = logp.SumDim(-1, false)
	}
	return logp.Add(jac), nil
}
