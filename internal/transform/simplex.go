package transform

import (
	"math"
	"sync"

	"github.com/born-ml/bijector/internal/tensor"
)

// SumTo1Transform maps a k-simplex on the last axis to its first k-1 coordinates.
//
// Its JacobianDet is identically zero. That is not the exact log-Jacobian of
// the change of variables; callers relying on it must compensate themselves.
type SumTo1Transform struct {
	named
}

var sumTo1Once = sync.OnceValue(func() *SumTo1Transform {
	return &SumTo1Transform{named: named{name: "sumto1", kind: KindSumTo1}}
})

// SumTo1 returns the shared sum-to-one transform.
func SumTo1() *SumTo1Transform { return sumTo1Once() }

// Forward drops the last coordinate.
func (t *SumTo1Transform) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	k, err := lastDim(t.name, "forward", x, 1)
	if err != nil {
		return nil, err
	}
	return x.Narrow(-1, 0, k-1), nil
}

// Backward appends 1 - Σy as the last coordinate.
func (t *SumTo1Transform) Backward(y *tensor.Tensor) (*tensor.Tensor, error) {
	if _, err := lastDim(t.name, "backward", y, 0); err != nil {
		return nil, err
	}
	remaining := y.SumDim(-1, true).RSubScalar(1)
	return tensor.Cat([]*tensor.Tensor{y, remaining}, -1), nil
}

// JacobianDet returns zeros with the last axis reduced.
func (t *SumTo1Transform) JacobianDet(y *tensor.Tensor) (*tensor.Tensor, error) {
	if _, err := lastDim(t.name, "jacobian", y, 0); err != nil {
		return nil, err
	}
	return tensor.Zeros(batchShape(y.Shape()), y.Backend()), nil
}

// StickBreakingTransform maps a k-simplex on the last axis to ℝ^(k-1) with an
// isometric log-ratio:
//
//	y = log x[:k-1] - mean(log x)
//
// Backward is a max-shifted softmax of [y, -Σy].
type StickBreakingTransform struct {
	named
}

// NewStickBreaking creates a stick-breaking transform.
// WithEps is accepted for compatibility and ignored.
func NewStickBreaking(opts ...Option) *StickBreakingTransform {
	o := applyOptions(opts)
	if o.hasEps {
		getLogger().Warn("the eps argument of stickbreaking is deprecated and will not be used", "eps", o.eps)
	}
	return &StickBreakingTransform{named: named{name: "stickbreaking", kind: KindStickBreaking}}
}

var stickBreakingOnce = sync.OnceValue(func() *StickBreakingTransform {
	return NewStickBreaking()
})

// StickBreaking returns the shared stick-breaking transform.
func StickBreaking() *StickBreakingTransform { return stickBreakingOnce() }

// Forward computes log x[..., :k-1] minus the mean of log x along the last axis.
func (t *StickBreakingTransform) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	k, err := lastDim(t.name, "forward", x, 1)
	if err != nil {
		return nil, err
	}
	lx := x.Log()
	shift := lx.SumDim(-1, true).MulScalar(1 / float64(k))
	return lx.Narrow(-1, 0, k-1).Sub(shift), nil
}

// Backward computes softmax([y, -Σy]) along the last axis.
func (t *StickBreakingTransform) Backward(y *tensor.Tensor) (*tensor.Tensor, error) {
	if _, err := lastDim(t.name, "backward", y, 0); err != nil {
		return nil, err
	}
	z := tensor.Cat([]*tensor.Tensor{y, y.SumDim(-1, true).Neg()}, -1)
	ez := z.Sub(z.MaxDim(-1, true)).Exp()
	return ez.Div(ez.SumDim(-1, true)), nil
}

// JacobianDet computes, with n = k+1 for k = len(y) on the last axis,
//
//	log n + n·Σy - n·logsumexp([y + Σy, 0])
func (t *StickBreakingTransform) JacobianDet(y *tensor.Tensor) (*tensor.Tensor, error) {
	k, err := lastDim(t.name, "jacobian", y, 0)
	if err != nil {
		return nil, err
	}
	n := float64(k + 1)
	sy := y.SumDim(-1, true)
	r := tensor.Cat([]*tensor.Tensor{y.Add(sy), tensor.Zeros(sy.Shape(), y.Backend())}, -1)
	sr := r.LogSumExp(-1, true)
	d := sy.MulScalar(n).Sub(sr.MulScalar(n)).AddScalar(math.Log(n))
	return d.SumDim(-1, false), nil
}
