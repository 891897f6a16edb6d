package ops

import "github.com/born-ml/bijector/internal/tensor"

// SumOp represents a total reduction: y = Σx (scalar).
//
// Backward: grad_x = broadcast(grad_y, x.shape).
type SumOp struct{ record }

// NewSumOp creates a new SumOp.
func NewSumOp(x, output *tensor.RawTensor) *SumOp {
	return &SumOp{newRecord(output, x)}
}

// Backward broadcasts the scalar gradient to the input shape.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{broadcastTo(outputGrad, op.inputs[0].Shape(), backend)}
}

// SumDimOp represents a reduction sum operation along a dimension: output = sum(x, dim).
//
// Forward:
//
//	y = sum(x, dim, keepDim)
//
// Backward:
//
//	grad_x = broadcast(grad_y, x.shape)
//
// If keepDim=false, grad_y is first reshaped to the keepDim shape to match broadcasting requirements.
type SumDimOp struct {
	record
	dim     int
	keepDim bool
}

// NewSumDimOp creates a new SumDimOp.
func NewSumDimOp(x, output *tensor.RawTensor, dim int, keepDim bool) *SumDimOp {
	return &SumDimOp{record: newRecord(output, x), dim: dim, keepDim: keepDim}
}

// Backward computes input gradients for sum reduction.
//
// Since sum just accumulates values, each input element contributes 1.0 to the output,
// so the gradient is simply broadcast back.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	grad := outputGrad
	if !op.keepDim {
		grad = backend.Reshape(grad, keepDimShape(x.Shape(), op.dim))
	}
	return []*tensor.RawTensor{broadcastTo(grad, x.Shape(), backend)}
}

// CumSumOp represents the inclusive cumulative sum along dim.
//
// Backward: each input contributes to all later outputs, so
// grad_x[i] = Σ_{j≥i} grad_y[j] = total - cumsum(grad_y)[i] + grad_y[i].
type CumSumOp struct {
	record
	dim int
}

// NewCumSumOp creates a new CumSumOp.
func NewCumSumOp(x, output *tensor.RawTensor, dim int) *CumSumOp {
	return &CumSumOp{record: newRecord(output, x), dim: dim}
}

// Backward computes the reverse cumulative sum of the gradient.
func (op *CumSumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	total := backend.SumDim(outputGrad, op.dim, true)
	prefix := backend.CumSum(outputGrad, op.dim)
	return []*tensor.RawTensor{backend.Add(backend.Sub(total, prefix), outputGrad)}
}
