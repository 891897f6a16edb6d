package cpu

import (
	"math"

	"github.com/born-ml/bijector/internal/tensor"
)

// Sum sums all elements into a scalar tensor.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := tensor.MustRaw("sum", tensor.Shape{})
	var sum float64
	for _, v := range x.Data() {
		sum += v
	}
	result.Data()[0] = sum
	return result
}

// SumDim sums tensor elements along the specified dimension.
//
// Parameters:
//   - dim: dimension to reduce (supports negative indexing: -1 = last dim)
//   - keepDim: if true, keep the reduced dimension with size 1; if false, remove it
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{2, 3, 4}, backend)
//	y := backend.SumDim(x.Raw(), -1, true)   // shape: [2, 3, 1]
//	z := backend.SumDim(x.Raw(), -1, false)  // shape: [2, 3]
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return reduceDim("sumdim", x, dim, keepDim, 0, func(acc, v float64) float64 { return acc + v })
}

// MaxDim takes the maximum along the specified dimension.
// Reducing an empty dimension yields -Inf.
func (cpu *CPUBackend) MaxDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return reduceDim("maxdim", x, dim, keepDim, math.Inf(-1), func(acc, v float64) float64 {
		if v > acc || math.IsNaN(v) {
			return v
		}
		return acc
	})
}

// reduceDim folds x along dim starting from init.
func reduceDim(op string, x *tensor.RawTensor, dim int, keepDim bool, init float64, f func(acc, v float64) float64) *tensor.RawTensor {
	shape := x.Shape()
	dim = normalizeDim(op, dim, len(shape))

	// Calculate output shape
	var outShape tensor.Shape
	if keepDim {
		outShape = shape.Clone()
		outShape[dim] = 1
	} else {
		outShape = make(tensor.Shape, 0, len(shape)-1)
		for i := range shape {
			if i != dim {
				outShape = append(outShape, shape[i])
			}
		}
	}

	result := tensor.MustRaw(op, outShape)
	src, dst := x.Data(), result.Data()
	outer, size, inner := shape.Split(dim)
	for o := 0; o < outer; o++ {
		for k := 0; k < inner; k++ {
			acc := init
			for i := 0; i < size; i++ {
				acc = f(acc, src[(o*size+i)*inner+k])
			}
			dst[o*inner+k] = acc
		}
	}
	return result
}

// CumSum computes the inclusive cumulative sum along dim.
//
// Example:
//
//	[1, 2, 3, 4] → [1, 3, 6, 10]
func (cpu *CPUBackend) CumSum(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	dim = normalizeDim("cumsum", dim, len(shape))

	result := tensor.MustRaw("cumsum", shape)
	src, dst := x.Data(), result.Data()
	outer, size, inner := shape.Split(dim)
	for o := 0; o < outer; o++ {
		for k := 0; k < inner; k++ {
			var acc float64
			for i := 0; i < size; i++ {
				idx := (o*size+i)*inner + k
				acc += src[idx]
				dst[idx] = acc
			}
		}
	}
	return result
}
