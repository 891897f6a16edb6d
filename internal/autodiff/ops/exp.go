package ops

import "github.com/born-ml/bijector/internal/tensor"

// ExpOp represents the exponential operation: y = exp(x).
//
// Backward pass:
//   - d(exp(x))/dx = exp(x) = y
//   - grad_input = grad_output * output
type ExpOp struct{ record }

// NewExpOp creates a new ExpOp.
func NewExpOp(input, output *tensor.RawTensor) *ExpOp {
	return &ExpOp{newRecord(output, input)}
}

// Backward computes input gradient for exp.
//
// Since d(exp(x))/dx = exp(x), and we already have exp(x) as output:
// grad_input = grad_output * output.
func (op *ExpOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, op.output)}
}

// LogOp represents the natural logarithm: y = ln(x).
//
// Backward: grad_input = grad_output / x.
type LogOp struct{ record }

// NewLogOp creates a new LogOp.
func NewLogOp(input, output *tensor.RawTensor) *LogOp {
	return &LogOp{newRecord(output, input)}
}

// Backward computes input gradient for log.
func (op *LogOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Div(outputGrad, op.inputs[0])}
}

// Log1pOp represents y = ln(1 + x).
//
// Backward: grad_input = grad_output / (1 + x).
type Log1pOp struct{ record }

// NewLog1pOp creates a new Log1pOp.
func NewLog1pOp(input, output *tensor.RawTensor) *Log1pOp {
	return &Log1pOp{newRecord(output, input)}
}

// Backward computes input gradient for log1p.
func (op *Log1pOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Div(outputGrad, backend.AddScalar(op.inputs[0], 1))}
}
