package cpu

import (
	"fmt"

	"github.com/born-ml/bijector/internal/tensor"
)

// normalizeDim resolves negative dims and panics with an op-prefixed message
// when dim is out of range.
func normalizeDim(op string, dim, ndim int) int {
	d := dim
	if d < 0 {
		d += ndim
	}
	if d < 0 || d >= ndim {
		panic(fmt.Sprintf("%s: dimension %d out of range for %dD tensor", op, dim, ndim))
	}
	return d
}

// Reshape copies x into a tensor of newShape.
// The element count must match.
func (cpu *CPUBackend) Reshape(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	view, err := x.View(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return view.Clone()
}

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same shape except along the concatenation dimension.
//
// Example:
//
//	a: [2, 3], b: [2, 1] → Cat([a, b], -1): [2, 4]
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	first := tensors[0].Shape()
	dim = normalizeDim("cat", dim, len(first))

	outShape := first.Clone()
	outShape[dim] = 0
	for i, t := range tensors {
		s := t.Shape()
		if len(s) != len(first) {
			panic(fmt.Sprintf("cat: tensor %d has %d dims, expected %d", i, len(s), len(first)))
		}
		for d := range s {
			if d != dim && s[d] != first[d] {
				panic(fmt.Sprintf("cat: tensor %d shape %v incompatible with %v along dim %d", i, s, first, d))
			}
		}
		outShape[dim] += s[dim]
	}

	result := tensor.MustRaw("cat", outShape)
	dst := result.Data()
	outer, total, inner := outShape.Split(dim)
	offset := 0
	for _, t := range tensors {
		src := t.Data()
		size := t.Shape()[dim]
		for o := 0; o < outer; o++ {
			copy(dst[(o*total+offset)*inner:(o*total+offset+size)*inner], src[o*size*inner:(o+1)*size*inner])
		}
		offset += size
	}
	return result
}

// Narrow returns x[..., start:start+length, ...] along dim as a new tensor.
func (cpu *CPUBackend) Narrow(x *tensor.RawTensor, dim, start, length int) *tensor.RawTensor {
	shape := x.Shape()
	dim = normalizeDim("narrow", dim, len(shape))
	if start < 0 || length < 0 || start+length > shape[dim] {
		panic(fmt.Sprintf("narrow: range [%d, %d) out of bounds for dimension %d (size %d)", start, start+length, dim, shape[dim]))
	}

	outShape := shape.Clone()
	outShape[dim] = length
	result := tensor.MustRaw("narrow", outShape)
	src, dst := x.Data(), result.Data()
	outer, size, inner := shape.Split(dim)
	for o := 0; o < outer; o++ {
		copy(dst[o*length*inner:(o+1)*length*inner], src[(o*size+start)*inner:(o*size+start+length)*inner])
	}
	return result
}

// Gather selects the positions index along dim.
//
// Example:
//
//	x: [a, b, c, d], Gather(x, -1, [0, 2]) → [a, c]
func (cpu *CPUBackend) Gather(x *tensor.RawTensor, dim int, index []int) *tensor.RawTensor {
	shape := x.Shape()
	dim = normalizeDim("gather", dim, len(shape))
	checkIndex("gather", index, shape[dim])

	outShape := shape.Clone()
	outShape[dim] = len(index)
	result := tensor.MustRaw("gather", outShape)
	src, dst := x.Data(), result.Data()
	outer, size, inner := shape.Split(dim)
	n := len(index)
	for o := 0; o < outer; o++ {
		for j, idx := range index {
			copy(dst[(o*n+j)*inner:(o*n+j+1)*inner], src[(o*size+idx)*inner:(o*size+idx+1)*inner])
		}
	}
	return result
}

// IndexPut returns a copy of x where the positions index along dim hold values.
// values has x's shape with dim resized to len(index).
func (cpu *CPUBackend) IndexPut(x *tensor.RawTensor, dim int, index []int, values *tensor.RawTensor) *tensor.RawTensor {
	shape := x.Shape()
	dim = normalizeDim("indexput", dim, len(shape))
	checkIndex("indexput", index, shape[dim])

	want := shape.Clone()
	want[dim] = len(index)
	if !values.Shape().Equal(want) {
		panic(fmt.Sprintf("indexput: values shape %v, expected %v", values.Shape(), want))
	}

	result := x.Clone()
	src, dst := values.Data(), result.Data()
	outer, size, inner := shape.Split(dim)
	n := len(index)
	for o := 0; o < outer; o++ {
		for j, idx := range index {
			copy(dst[(o*size+idx)*inner:(o*size+idx+1)*inner], src[(o*n+j)*inner:(o*n+j+1)*inner])
		}
	}
	return result
}

func checkIndex(op string, index []int, size int) {
	for _, idx := range index {
		if idx < 0 || idx >= size {
			panic(fmt.Sprintf("%s: index %d out of bounds for size %d", op, idx, size))
		}
	}
}
