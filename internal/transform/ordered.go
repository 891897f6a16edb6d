package transform

import (
	"sync"

	"github.com/born-ml/bijector/internal/tensor"
)

// OrderedTransform maps non-decreasing vectors on the last axis to ℝ^k.
//
//	y[0] = x[0]
//	y[i] = log(x[i] - x[i-1])   for i ≥ 1
type OrderedTransform struct {
	named
}

var orderedOnce = sync.OnceValue(func() *OrderedTransform {
	return &OrderedTransform{named: named{name: "ordered", kind: KindOrdered}}
})

// Ordered returns the shared ordered transform.
func Ordered() *OrderedTransform { return orderedOnce() }

// Forward keeps the first element and takes the log of successive gaps.
func (t *OrderedTransform) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	k, err := lastDim(t.name, "forward", x, 1)
	if err != nil {
		return nil, err
	}
	gaps := x.Narrow(-1, 1, k-1).Sub(x.Narrow(-1, 0, k-1)).Log()
	return tensor.Cat([]*tensor.Tensor{x.Narrow(-1, 0, 1), gaps}, -1), nil
}

// Backward rebuilds x as the cumulative sum of [y[0], exp(y[1:])].
func (t *OrderedTransform) Backward(y *tensor.Tensor) (*tensor.Tensor, error) {
	k, err := lastDim(t.name, "backward", y, 1)
	if err != nil {
		return nil, err
	}
	steps := tensor.Cat([]*tensor.Tensor{y.Narrow(-1, 0, 1), y.Narrow(-1, 1, k-1).Exp()}, -1)
	return steps.CumSum(-1), nil
}

// JacobianDet is Σ y[1:] along the last axis, one value per batch row.
func (t *OrderedTransform) JacobianDet(y *tensor.Tensor) (*tensor.Tensor, error) {
	k, err := lastDim(t.name, "jacobian", y, 1)
	if err != nil {
		return nil, err
	}
	return y.Narrow(-1, 1, k-1).SumDim(-1, false), nil
}
