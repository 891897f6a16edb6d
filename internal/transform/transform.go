package transform

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/bijector/internal/tensor"
)

// Kind tags the closed set of transform variants.
type Kind int

// Transform kinds.
const (
	KindUnknown Kind = iota
	KindLog
	KindLogExpM1
	KindLogOdds
	KindInterval
	KindLowerBound
	KindUpperBound
	KindOrdered
	KindSumTo1
	KindStickBreaking
	KindCircular
	KindCholeskyCovPacked
	KindChain
)

var kindNames = [...]string{
	KindUnknown:           "unknown",
	KindLog:               "log",
	KindLogExpM1:          "log_exp_m1",
	KindLogOdds:           "logodds",
	KindInterval:          "interval",
	KindLowerBound:        "lowerbound",
	KindUpperBound:        "upperbound",
	KindOrdered:           "ordered",
	KindSumTo1:            "sumto1",
	KindStickBreaking:     "stickbreaking",
	KindCircular:          "circular",
	KindCholeskyCovPacked: "cholesky-cov-packed",
	KindChain:             "chain",
}

// String returns the registered name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Transform is a bijection between a constrained support and unconstrained space.
//
// Forward maps constrained values to unconstrained ones and Backward is its
// inverse. JacobianDet returns log|det ∂Backward/∂y| evaluated at the
// unconstrained point y, the value Backward consumes.
type Transform interface {
	fmt.Stringer

	// Name is the identifier used in chain names and diagnostics.
	Name() string
	Kind() Kind

	Forward(x *tensor.Tensor) (*tensor.Tensor, error)
	Backward(y *tensor.Tensor) (*tensor.Tensor, error)
	JacobianDet(y *tensor.Tensor) (*tensor.Tensor, error)
}

// named carries the identity every concrete transform shares.
type named struct {
	name string
	kind Kind
}

// Name returns the transform name.
func (n named) Name() string { return n.name }

// Kind returns the transform variant.
func (n named) Kind() Kind { return n.kind }

// String renders "<name> transform".
func (n named) String() string { return n.name + " transform" }

// Unimplemented can be embedded by a transform that only provides some of the
// operations. Every method returns an error wrapping ErrNotImplemented.
type Unimplemented struct{}

// Forward is not implemented.
func (Unimplemented) Forward(*tensor.Tensor) (*tensor.Tensor, error) {
	return nil, errors.Wrap(ErrNotImplemented, "Forward")
}

// Backward is not implemented.
func (Unimplemented) Backward(*tensor.Tensor) (*tensor.Tensor, error) {
	return nil, errors.Wrap(ErrNotImplemented, "Backward")
}

// JacobianDet is not implemented.
func (Unimplemented) JacobianDet(*tensor.Tensor) (*tensor.Tensor, error) {
	return nil, errors.Wrap(ErrNotImplemented, "JacobianDet")
}

// lastDim returns the size of t's last axis, or an error if t has rank 0
// or the axis is shorter than minSize.
func lastDim(name, op string, t *tensor.Tensor, minSize int) (int, error) {
	if t.NDim() == 0 {
		return 0, errors.Wrapf(ErrInvalidShape, "%s %s: input must have at least 1 dimension", name, op)
	}
	k := t.Shape()[t.NDim()-1]
	if k < minSize {
		return 0, errors.Wrapf(ErrInvalidShape, "%s %s: last axis has %d elements, need at least %d", name, op, k, minSize)
	}
	return k, nil
}

// batchShape returns shape without its last axis.
func batchShape(shape tensor.Shape) tensor.Shape {
	return shape[:len(shape)-1].Clone()
}

var (
	_ Transform = (*LogTransform)(nil)
	_ Transform = (*LogExpM1Transform)(nil)
	_ Transform = (*LogOddsTransform)(nil)
	_ Transform = (*IntervalTransform)(nil)
	_ Transform = (*LowerBoundTransform)(nil)
	_ Transform = (*UpperBoundTransform)(nil)
	_ Transform = (*OrderedTransform)(nil)
	_ Transform = (*SumTo1Transform)(nil)
	_ Transform = (*StickBreakingTransform)(nil)
	_ Transform = (*CircularTransform)(nil)
	_ Transform = (*CholeskyCovPackedTransform)(nil)
	_ Transform = (*Chain)(nil)
)
