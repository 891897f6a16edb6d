package transform

import (
	"github.com/pkg/errors"

	"github.com/born-ml/bijector/internal/autodiff"
	"github.com/born-ml/bijector/internal/tensor"
)

// elementwise marks transforms whose Jacobian is diagonal.
type elementwise struct{}

func (elementwise) isElementwise() {}

// IsElementwise reports whether t acts independently on every element.
func IsElementwise(t Transform) bool {
	_, ok := t.(interface{ isElementwise() })
	return ok
}

// ElementwiseJacobianDet computes log|∂Backward/∂y| for an element-wise t by
// reverse-mode differentiation of Σ t.Backward(y).
//
// The derivative is evaluated on a private tape, so the result is a constant
// on y's backend: it carries no gradient history back to y.
func ElementwiseJacobianDet(t Transform, y *tensor.Tensor) (*tensor.Tensor, error) {
	grad, err := autodiff.Gradient(eager, y, t.Backward)
	if err != nil {
		return nil, errors.Wrapf(err, "%s jacobian", t.Name())
	}
	det := grad.Abs().Log().Reshape(y.Shape()...)
	return tensor.New(det.Raw(), y.Backend()), nil
}
