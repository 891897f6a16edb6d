package tensor

import "math"

// Add performs element-wise addition with broadcasting.
//
// Example:
//
//	a := tensor.Full(Shape{3, 1}, 1, backend)
//	b := tensor.Full(Shape{3, 5}, 2, backend)
//	c := a.Add(b) // Shape: [3, 5] (broadcasted)
func (t *Tensor) Add(other *Tensor) *Tensor {
	return t.Like(t.backend.Add(t.raw, other.raw))
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor) Sub(other *Tensor) *Tensor {
	return t.Like(t.backend.Sub(t.raw, other.raw))
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor) Mul(other *Tensor) *Tensor {
	return t.Like(t.backend.Mul(t.raw, other.raw))
}

// Div performs element-wise division with broadcasting.
func (t *Tensor) Div(other *Tensor) *Tensor {
	return t.Like(t.backend.Div(t.raw, other.raw))
}

// Atan2 computes atan2(t, other) element-wise with broadcasting.
func (t *Tensor) Atan2(other *Tensor) *Tensor {
	return t.Like(t.backend.Atan2(t.raw, other.raw))
}

// AddScalar adds a constant to every element.
func (t *Tensor) AddScalar(s float64) *Tensor {
	return t.Like(t.backend.AddScalar(t.raw, s))
}

// MulScalar multiplies every element by a constant.
func (t *Tensor) MulScalar(s float64) *Tensor {
	return t.Like(t.backend.MulScalar(t.raw, s))
}

// RSubScalar computes s - t.
func (t *Tensor) RSubScalar(s float64) *Tensor {
	return t.Neg().AddScalar(s)
}

// Neg negates every element.
func (t *Tensor) Neg() *Tensor {
	return t.Like(t.backend.Neg(t.raw))
}

// Exp computes e^x element-wise.
func (t *Tensor) Exp() *Tensor {
	return t.Like(t.backend.Exp(t.raw))
}

// Log computes the natural logarithm element-wise.
func (t *Tensor) Log() *Tensor {
	return t.Like(t.backend.Log(t.raw))
}

// Log1p computes log(1 + x) element-wise.
func (t *Tensor) Log1p() *Tensor {
	return t.Like(t.backend.Log1p(t.raw))
}

// Sigmoid computes the logistic function element-wise.
func (t *Tensor) Sigmoid() *Tensor {
	return t.Like(t.backend.Sigmoid(t.raw))
}

// Softplus computes log(1 + e^x) element-wise without overflow.
func (t *Tensor) Softplus() *Tensor {
	return t.Like(t.backend.Softplus(t.raw))
}

// Sin computes the sine element-wise.
func (t *Tensor) Sin() *Tensor {
	return t.Like(t.backend.Sin(t.raw))
}

// Cos computes the cosine element-wise.
func (t *Tensor) Cos() *Tensor {
	return t.Like(t.backend.Cos(t.raw))
}

// Abs computes |x| element-wise.
func (t *Tensor) Abs() *Tensor {
	return t.Like(t.backend.Abs(t.raw))
}

// Sum reduces all elements to a scalar.
func (t *Tensor) Sum() *Tensor {
	return t.Like(t.backend.Sum(t.raw))
}

// SumDim sums along dim.
//
// Example:
//
//	x := tensor.Zeros(Shape{2, 3, 4}, backend)
//	y := x.SumDim(-1, true)  // shape: [2, 3, 1]
//	z := x.SumDim(-1, false) // shape: [2, 3]
func (t *Tensor) SumDim(dim int, keepDim bool) *Tensor {
	return t.Like(t.backend.SumDim(t.raw, dim, keepDim))
}

// MaxDim takes the maximum along dim. Gradients do not flow through it.
func (t *Tensor) MaxDim(dim int, keepDim bool) *Tensor {
	return t.Like(t.backend.MaxDim(t.raw, dim, keepDim))
}

// CumSum computes the inclusive cumulative sum along dim.
func (t *Tensor) CumSum(dim int) *Tensor {
	return t.Like(t.backend.CumSum(t.raw, dim))
}

// Reshape returns a tensor with the same data but different shape.
func (t *Tensor) Reshape(newShape ...int) *Tensor {
	return t.Like(t.backend.Reshape(t.raw, Shape(newShape)))
}

// Narrow returns t[..., start:start+length, ...] along dim.
func (t *Tensor) Narrow(dim, start, length int) *Tensor {
	return t.Like(t.backend.Narrow(t.raw, dim, start, length))
}

// Gather selects positions along dim.
func (t *Tensor) Gather(dim int, index []int) *Tensor {
	return t.Like(t.backend.Gather(t.raw, dim, index))
}

// IndexPut returns a copy of t with positions along dim replaced by values.
// values must have t's shape with dim resized to len(index).
func (t *Tensor) IndexPut(dim int, index []int, values *Tensor) *Tensor {
	return t.Like(t.backend.IndexPut(t.raw, dim, index, values.raw))
}

// Cat concatenates tensors along dim using the first tensor's backend.
// Panics if tensors is empty.
func Cat(tensors []*Tensor, dim int) *Tensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}
	raws := make([]*RawTensor, len(tensors))
	for i, t := range tensors {
		raws[i] = t.raw
	}
	return tensors[0].Like(tensors[0].backend.Cat(raws, dim))
}

// LogSumExp computes log(sum(exp(x), dim)) by shifting with the maximum.
//
// The shift is taken as a constant (non-finite maxima are replaced by 0),
// so the result stays differentiable on an autodiff backend.
func (t *Tensor) LogSumExp(dim int, keepDim bool) *Tensor {
	shift := t.MaxDim(dim, true)
	for i, v := range shift.Data() {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			shift.Data()[i] = 0
		}
	}

	res := t.Sub(shift).Exp().SumDim(dim, true).Log().Add(shift)
	if keepDim {
		return res
	}

	d := NormalizeDim(dim, t.NDim())
	out := make([]int, 0, t.NDim()-1)
	for i, n := range t.Shape() {
		if i != d {
			out = append(out, n)
		}
	}
	return res.Reshape(out...)
}
