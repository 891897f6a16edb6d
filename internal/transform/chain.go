package transform

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/bijector/internal/tensor"
)

// Chain composes transforms. Forward applies them left to right, Backward
// inverts them right to left. The name is the children's names joined by "+".
type Chain struct {
	named
	transforms []Transform
}

// NewChain creates a chain of the given transforms.
func NewChain(transforms ...Transform) (*Chain, error) {
	if len(transforms) == 0 {
		return nil, ErrEmptyChain
	}
	names := make([]string, len(transforms))
	for i, t := range transforms {
		if t == nil {
			return nil, errors.Wrapf(ErrBadArguments, "chain: transform %d is nil", i)
		}
		names[i] = t.Name()
	}
	return &Chain{
		named:      named{name: strings.Join(names, "+"), kind: KindChain},
		transforms: append([]Transform(nil), transforms...),
	}, nil
}

// Transforms returns a copy of the children in forward order.
func (c *Chain) Transforms() []Transform {
	return append([]Transform(nil), c.transforms...)
}

// Forward feeds x through every child in order.
func (c *Chain) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	y := x
	for _, t := range c.transforms {
		var err error
		if y, err = t.Forward(y); err != nil {
			return nil, errors.WithMessagef(err, "chain %s", c.name)
		}
	}
	return y, nil
}

// Backward feeds y through every child's Backward in reverse order.
func (c *Chain) Backward(y *tensor.Tensor) (*tensor.Tensor, error) {
	x := y
	for i := len(c.transforms) - 1; i >= 0; i-- {
		var err error
		if x, err = c.transforms[i].Backward(x); err != nil {
			return nil, errors.WithMessagef(err, "chain %s", c.name)
		}
	}
	return x, nil
}

// JacobianDet accumulates the children's log-Jacobians along the backward path.
//
// Each child's det is evaluated on the value it receives during Backward.
// Children whose det keeps one more axis than the smallest det seen (rank of
// y included) are summed over their last axis before being added, so
// element-wise dets line up with dets that already reduced the last axis.
func (c *Chain) JacobianDet(y *tensor.Tensor) (*tensor.Tensor, error) {
	dets := make([]*tensor.Tensor, 0, len(c.transforms))
	minNDim := y.NDim()
	cur := y
	for i := len(c.transforms) - 1; i >= 0; i-- {
		t := c.transforms[i]
		det, err := t.JacobianDet(cur)
		if err != nil {
			return nil, errors.WithMessagef(err, "chain %s", c.name)
		}
		dets = append(dets, det)
		if cur, err = t.Backward(cur); err != nil {
			return nil, errors.WithMessagef(err, "chain %s", c.name)
		}
		minNDim = min(minNDim, det.NDim())
	}

	var total *tensor.Tensor
	for _, det := range dets {
		if det.NDim() > minNDim {
			det = det.SumDim(-1, false)
		}
		if total == nil {
			total = det
		} else {
			total = total.Add(det)
		}
	}
	return total, nil
}
