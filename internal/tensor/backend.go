package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations and always
// return freshly allocated results.
//
// Implementations:
//   - backend/cpu: pure Go float64 kernels
//   - autodiff: decorator that records operations on a gradient tape
//
// Negative dims count from the end (-1 = last dimension).
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor
	// Atan2 computes atan2(a, b) element-wise.
	Atan2(a, b *RawTensor) *RawTensor

	// Scalar operations.
	AddScalar(x *RawTensor, scalar float64) *RawTensor
	MulScalar(x *RawTensor, scalar float64) *RawTensor

	// Element-wise math. Domain errors follow IEEE semantics (NaN/Inf) and never panic.
	Neg(x *RawTensor) *RawTensor
	Exp(x *RawTensor) *RawTensor
	Log(x *RawTensor) *RawTensor
	Log1p(x *RawTensor) *RawTensor
	// Sigmoid is the overflow-free logistic function.
	Sigmoid(x *RawTensor) *RawTensor
	// Softplus is the overflow-free log(1 + exp(x)).
	Softplus(x *RawTensor) *RawTensor
	Sin(x *RawTensor) *RawTensor
	Cos(x *RawTensor) *RawTensor
	Abs(x *RawTensor) *RawTensor

	// Sum reduces all elements to a scalar.
	Sum(x *RawTensor) *RawTensor
	// SumDim sums along a dimension.
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	// MaxDim takes the maximum along a dimension. It is not differentiable.
	MaxDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	// CumSum is the inclusive cumulative sum along a dimension.
	CumSum(x *RawTensor, dim int) *RawTensor

	// Reshape returns the same elements under a new shape.
	Reshape(x *RawTensor, newShape Shape) *RawTensor
	// Cat concatenates tensors along a dimension.
	Cat(tensors []*RawTensor, dim int) *RawTensor
	// Narrow slices x[..., start:start+length, ...] along dim.
	Narrow(x *RawTensor, dim, start, length int) *RawTensor
	// Gather selects the given positions along dim.
	Gather(x *RawTensor, dim int, index []int) *RawTensor
	// IndexPut returns a copy of x whose positions along dim are replaced by values.
	IndexPut(x *RawTensor, dim int, index []int, values *RawTensor) *RawTensor

	// Name returns the backend name (e.g., "CPU", "Autodiff(CPU)").
	Name() string
}
