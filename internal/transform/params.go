package transform

import (
	"github.com/pkg/errors"

	"github.com/born-ml/bijector/internal/backend/cpu"
	"github.com/born-ml/bijector/internal/tensor"
)

// eager holds construction-time parameters and runs the automatic Jacobian default.
var eager = cpu.New()

// AsTensor coerces a bound to a detached CPU tensor.
//
// Accepted values are float64, float32, int, []float64 and *tensor.Tensor.
// The result is a private copy, so later changes to v do not affect it.
func AsTensor(v any) (*tensor.Tensor, error) {
	switch v := v.(type) {
	case *tensor.Tensor:
		if v == nil {
			return nil, errors.Wrap(ErrBadArguments, "nil tensor")
		}
		return v.Detach(eager), nil
	case float64:
		return tensor.Scalar(v, eager), nil
	case float32:
		return tensor.Scalar(float64(v), eager), nil
	case int:
		return tensor.Scalar(float64(v), eager), nil
	case []float64:
		if len(v) == 0 {
			return nil, errors.Wrap(ErrBadArguments, "empty bound")
		}
		return tensor.Vector(eager, v...), nil
	default:
		return nil, errors.Wrapf(ErrBadArguments, "unsupported bound type %T", v)
	}
}

// bind returns the parameter p on like's backend.
// The buffer is shared: parameters are never written after construction.
func bind(p, like *tensor.Tensor) *tensor.Tensor {
	return tensor.New(p.Raw(), like.Backend())
}
