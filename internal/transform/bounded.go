package transform

import (
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/bijector/internal/tensor"
)

// IntervalTransform maps (a,b) to ℝ with log(x-a) - log(b-x).
type IntervalTransform struct {
	named
	elementwise
	a, b *tensor.Tensor
}

// NewInterval creates an interval transform. The bounds may be scalars or
// tensors broadcastable against the transformed values, with a < b everywhere.
func NewInterval(a, b any) (*IntervalTransform, error) {
	at, err := AsTensor(a)
	if err != nil {
		return nil, errors.WithMessage(err, "interval lower bound")
	}
	bt, err := AsTensor(b)
	if err != nil {
		return nil, errors.WithMessage(err, "interval upper bound")
	}
	if err := checkFinite("interval lower", at); err != nil {
		return nil, err
	}
	if err := checkFinite("interval upper", bt); err != nil {
		return nil, err
	}
	if _, _, err := tensor.BroadcastShapes(at.Shape(), bt.Shape()); err != nil {
		return nil, errors.Wrap(ErrBadArguments, err.Error())
	}
	for _, w := range bt.Sub(at).Data() {
		if !(w > 0) {
			return nil, errors.Wrapf(ErrBadArguments, "interval requires a < b, got a=%v b=%v", at.Data(), bt.Data())
		}
	}
	return &IntervalTransform{named: named{name: "interval", kind: KindInterval}, a: at, b: bt}, nil
}

// Bounds returns the lower and upper bounds.
func (t *IntervalTransform) Bounds() (a, b *tensor.Tensor) { return t.a, t.b }

// Forward computes log(x-a) - log(b-x).
func (t *IntervalTransform) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	a, b := bind(t.a, x), bind(t.b, x)
	return x.Sub(a).Log().Sub(b.Sub(x).Log()), nil
}

// Backward computes σ(y)·b + (1-σ(y))·a.
func (t *IntervalTransform) Backward(y *tensor.Tensor) (*tensor.Tensor, error) {
	a, b := bind(t.a, y), bind(t.b, y)
	s := y.Sigmoid()
	return s.Mul(b).Add(s.RSubScalar(1).Mul(a)), nil
}

// JacobianDet computes log(b-a) - 2·softplus(-y) - y.
func (t *IntervalTransform) JacobianDet(y *tensor.Tensor) (*tensor.Tensor, error) {
	a, b := bind(t.a, y), bind(t.b, y)
	return b.Sub(a).Log().Sub(y.Neg().Softplus().MulScalar(2)).Sub(y), nil
}

// LowerBoundTransform maps (a,∞) to ℝ with log(x-a).
type LowerBoundTransform struct {
	named
	elementwise
	a *tensor.Tensor
}

// NewLowerBound creates a lower-bound transform.
func NewLowerBound(a any) (*LowerBoundTransform, error) {
	at, err := AsTensor(a)
	if err != nil {
		return nil, errors.WithMessage(err, "lowerbound")
	}
	if err := checkFinite("lowerbound", at); err != nil {
		return nil, err
	}
	return &LowerBoundTransform{named: named{name: "lowerbound", kind: KindLowerBound}, a: at}, nil
}

// Bound returns the lower bound.
func (t *LowerBoundTransform) Bound() *tensor.Tensor { return t.a }

// Forward computes log(x-a).
func (t *LowerBoundTransform) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	return x.Sub(bind(t.a, x)).Log(), nil
}

// Backward computes exp(y) + a.
func (t *LowerBoundTransform) Backward(y *tensor.Tensor) (*tensor.Tensor, error) {
	return y.Exp().Add(bind(t.a, y)), nil
}

// JacobianDet is y.
func (t *LowerBoundTransform) JacobianDet(y *tensor.Tensor) (*tensor.Tensor, error) {
	return y, nil
}

// UpperBoundTransform maps (-∞,b) to ℝ with log(b-x).
type UpperBoundTransform struct {
	named
	elementwise
	b *tensor.Tensor
}

// NewUpperBound creates an upper-bound transform.
func NewUpperBound(b any) (*UpperBoundTransform, error) {
	bt, err := AsTensor(b)
	if err != nil {
		return nil, errors.WithMessage(err, "upperbound")
	}
	if err := checkFinite("upperbound", bt); err != nil {
		return nil, err
	}
	return &UpperBoundTransform{named: named{name: "upperbound", kind: KindUpperBound}, b: bt}, nil
}

// Bound returns the upper bound.
func (t *UpperBoundTransform) Bound() *tensor.Tensor { return t.b }

// Forward computes log(b-x).
func (t *UpperBoundTransform) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	return bind(t.b, x).Sub(x).Log(), nil
}

// Backward computes b - exp(y).
func (t *UpperBoundTransform) Backward(y *tensor.Tensor) (*tensor.Tensor, error) {
	return bind(t.b, y).Sub(y.Exp()), nil
}

// JacobianDet is y.
func (t *UpperBoundTransform) JacobianDet(y *tensor.Tensor) (*tensor.Tensor, error) {
	return y, nil
}

func checkFinite(name string, p *tensor.Tensor) error {
	for _, v := range p.Data() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrBadArguments, "%s bound must be finite, got %v", name, v)
		}
	}
	return nil
}
