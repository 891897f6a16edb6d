// Package ops defines operation interfaces and implementations for automatic differentiation.
//
// Each operation implements the Operation interface, which provides:
//   - Forward pass: computed by the backend
//   - Backward pass: computes gradients for inputs given output gradient
//
// Supported operations:
//   - Arithmetic: Add, Sub, Mul, Div (broadcast-aware), Neg, AddScalar, MulScalar
//   - Math: Exp, Log, Log1p, Sigmoid, Softplus, Sin, Cos, Atan2, Abs
//   - Reductions and scans: Sum, SumDim, CumSum
//   - Shape: Reshape, Cat, Narrow, Gather, IndexPut
package ops

import "github.com/born-ml/bijector/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
// Each operation records its inputs and output during the forward pass,
// and computes input gradients during the backward pass.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input tensor.
	// A nil entry means no gradient flows to that input.
	//
	// Example for AddOp:
	//   inputs: [a, b]
	//   outputGrad: dL/d(a+b)
	//   returns: [dL/d(a+b), dL/d(a+b)] (gradient flows equally to both inputs)
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}

// record holds the tensors every operation keeps.
type record struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

func newRecord(output *tensor.RawTensor, inputs ...*tensor.RawTensor) record {
	return record{inputs: inputs, output: output}
}

// Inputs returns the input tensors.
func (r record) Inputs() []*tensor.RawTensor {
	return r.inputs
}

// Output returns the output tensor.
func (r record) Output() *tensor.RawTensor {
	return r.output
}
