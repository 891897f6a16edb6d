package ops

import (
	"math"

	"github.com/born-ml/bijector/internal/tensor"
)

// SinOp represents y = sin(x). Backward: grad * cos(x).
type SinOp struct{ record }

// NewSinOp creates a new SinOp.
func NewSinOp(input, output *tensor.RawTensor) *SinOp {
	return &SinOp{newRecord(output, input)}
}

// Backward computes input gradient for sin.
func (op *SinOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, backend.Cos(op.inputs[0]))}
}

// CosOp represents y = cos(x). Backward: -grad * sin(x).
type CosOp struct{ record }

// NewCosOp creates a new CosOp.
func NewCosOp(input, output *tensor.RawTensor) *CosOp {
	return &CosOp{newRecord(output, input)}
}

// Backward computes input gradient for cos.
func (op *CosOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Neg(backend.Mul(outputGrad, backend.Sin(op.inputs[0])))}
}

// Atan2Op represents y = atan2(a, b).
//
// Backward:
//   - dy/da = b / (a² + b²)
//   - dy/db = -a / (a² + b²)
type Atan2Op struct{ record }

// NewAtan2Op creates a new Atan2Op.
func NewAtan2Op(a, b, output *tensor.RawTensor) *Atan2Op {
	return &Atan2Op{newRecord(output, a, b)}
}

// Backward computes input gradients for atan2.
func (op *Atan2Op) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]
	denom := backend.Add(backend.Mul(a, a), backend.Mul(b, b))
	scaled := backend.Div(outputGrad, denom)
	return []*tensor.RawTensor{
		reduceBroadcast(backend.Mul(scaled, b), a.Shape(), backend),
		reduceBroadcast(backend.Neg(backend.Mul(scaled, a)), b.Shape(), backend),
	}
}

// AbsOp represents y = |x|. Backward: grad * sign(x), with sign(0) = 0.
type AbsOp struct{ record }

// NewAbsOp creates a new AbsOp.
func NewAbsOp(input, output *tensor.RawTensor) *AbsOp {
	return &AbsOp{newRecord(output, input)}
}

// Backward computes input gradient for abs.
func (op *AbsOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	sign := tensor.MustRaw("abs backward", x.Shape())
	dst := sign.Data()
	for i, v := range x.Data() {
		switch {
		case v > 0:
			dst[i] = 1
		case v < 0:
			dst[i] = -1
		case math.IsNaN(v):
			dst[i] = v
		}
	}
	return []*tensor.RawTensor{backend.Mul(outputGrad, sign)}
}
