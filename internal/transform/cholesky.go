package transform

import (
	"github.com/pkg/errors"

	"github.com/born-ml/bijector/internal/tensor"
)

// CholeskyCovPackedTransform log-transforms the diagonal of a packed
// lower-triangular n×n matrix stored row by row on the last axis.
// Off-diagonal entries pass through unchanged.
type CholeskyCovPackedTransform struct {
	named
	n        int
	diagIdxs []int
}

// NewCholeskyCovPacked creates the transform for an n×n factor.
// The diagonal sits at packed positions cumsum(1..n) - 1, i.e. 0, 2, 5, 9, ...
func NewCholeskyCovPacked(n int) (*CholeskyCovPackedTransform, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrBadArguments, "cholesky-cov-packed requires n >= 1, got %d", n)
	}
	idx := make([]int, n)
	pos := 0
	for i := 0; i < n; i++ {
		pos += i + 1
		idx[i] = pos - 1
	}
	return &CholeskyCovPackedTransform{
		named:    named{name: "cholesky-cov-packed", kind: KindCholeskyCovPacked},
		n:        n,
		diagIdxs: idx,
	}, nil
}

// N returns the matrix dimension.
func (t *CholeskyCovPackedTransform) N() int { return t.n }

// DiagIndices returns a copy of the packed diagonal positions.
func (t *CholeskyCovPackedTransform) DiagIndices() []int {
	return append([]int(nil), t.diagIdxs...)
}

func (t *CholeskyCovPackedTransform) check(op string, v *tensor.Tensor) error {
	_, err := lastDim(t.name, op, v, t.diagIdxs[t.n-1]+1)
	return err
}

// Forward replaces the diagonal entries by their logarithm.
func (t *CholeskyCovPackedTransform) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	if err := t.check("forward", x); err != nil {
		return nil, err
	}
	return x.IndexPut(-1, t.diagIdxs, x.Gather(-1, t.diagIdxs).Log()), nil
}

// Backward replaces the diagonal entries by their exponential.
func (t *CholeskyCovPackedTransform) Backward(y *tensor.Tensor) (*tensor.Tensor, error) {
	if err := t.check("backward", y); err != nil {
		return nil, err
	}
	return y.IndexPut(-1, t.diagIdxs, y.Gather(-1, t.diagIdxs).Exp()), nil
}

// JacobianDet sums the diagonal entries of y along the last axis.
func (t *CholeskyCovPackedTransform) JacobianDet(y *tensor.Tensor) (*tensor.Tensor, error) {
	if err := t.check("jacobian", y); err != nil {
		return nil, err
	}
	return y.Gather(-1, t.diagIdxs).SumDim(-1, false), nil
}
