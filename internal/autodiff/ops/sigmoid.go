package ops

import (
	"github.com/born-ml/bijector/internal/tensor"
)

// SigmoidOp represents the sigmoid activation operation: σ(x) = 1 / (1 + exp(-x)).
type SigmoidOp struct{ record }

// NewSigmoidOp creates a new sigmoid operation.
func NewSigmoidOp(input, output *tensor.RawTensor) *SigmoidOp {
	return &SigmoidOp{newRecord(output, input)}
}

// Backward computes the gradient for sigmoid.
//
// dσ/dx = σ(x)·(1-σ(x)) = σ(x)·σ(-x). Both factors are taken from the input:
// 1-σ(x) computed from the output rounds to 0 once σ(x) saturates at 1.
func (op *SigmoidOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	derivative := backend.Mul(op.output, backend.Sigmoid(backend.Neg(x)))
	return []*tensor.RawTensor{backend.Mul(outputGrad, derivative)}
}

// SoftplusOp represents y = log(1 + exp(x)).
//
// Backward: d/dx softplus(x) = σ(x).
type SoftplusOp struct{ record }

// NewSoftplusOp creates a new SoftplusOp.
func NewSoftplusOp(input, output *tensor.RawTensor) *SoftplusOp {
	return &SoftplusOp{newRecord(output, input)}
}

// Backward computes input gradient for softplus.
func (op *SoftplusOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, backend.Sigmoid(op.inputs[0]))}
}
