package ops

import "github.com/born-ml/bijector/internal/tensor"

// ReshapeOp represents a reshape. Backward reshapes the gradient back.
type ReshapeOp struct{ record }

// NewReshapeOp creates a new ReshapeOp.
func NewReshapeOp(x, output *tensor.RawTensor) *ReshapeOp {
	return &ReshapeOp{newRecord(output, x)}
}

// Backward reshapes the gradient to the input shape.
func (op *ReshapeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Reshape(outputGrad, op.inputs[0].Shape())}
}

// CatOp represents concatenation along dim.
//
// Backward: each input receives the slice of the gradient it occupied.
type CatOp struct {
	record
	dim int
}

// NewCatOp creates a new CatOp.
func NewCatOp(inputs []*tensor.RawTensor, output *tensor.RawTensor, dim int) *CatOp {
	return &CatOp{record: newRecord(output, inputs...), dim: dim}
}

// Backward splits the gradient back into the input pieces.
func (op *CatOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	dim := tensor.NormalizeDim(op.dim, outputGrad.NDim())
	grads := make([]*tensor.RawTensor, len(op.inputs))
	offset := 0
	for i, in := range op.inputs {
		size := in.Shape()[dim]
		grads[i] = backend.Narrow(outputGrad, dim, offset, size)
		offset += size
	}
	return grads
}

// NarrowOp represents x[..., start:start+length, ...] along dim.
//
// Backward: the gradient is padded with zeros on both sides.
type NarrowOp struct {
	record
	dim, start int
}

// NewNarrowOp creates a new NarrowOp.
func NewNarrowOp(x, output *tensor.RawTensor, dim, start int) *NarrowOp {
	return &NarrowOp{record: newRecord(output, x), dim: dim, start: start}
}

// Backward pads the gradient back to the input shape.
func (op *NarrowOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	dim := tensor.NormalizeDim(op.dim, x.NDim())
	length := outputGrad.Shape()[dim]
	after := x.Shape()[dim] - op.start - length

	parts := make([]*tensor.RawTensor, 0, 3)
	if op.start > 0 {
		parts = append(parts, zerosAlong(x.Shape(), dim, op.start))
	}
	parts = append(parts, outputGrad)
	if after > 0 {
		parts = append(parts, zerosAlong(x.Shape(), dim, after))
	}
	if len(parts) == 1 {
		return []*tensor.RawTensor{outputGrad}
	}
	return []*tensor.RawTensor{backend.Cat(parts, dim)}
}

// GatherOp represents selecting positions index along dim.
//
// Backward: the gradient is scatter-added into zeros, so repeated
// indices accumulate.
type GatherOp struct {
	record
	dim   int
	index []int
}

// NewGatherOp creates a new GatherOp.
func NewGatherOp(x, output *tensor.RawTensor, dim int, index []int) *GatherOp {
	return &GatherOp{record: newRecord(output, x), dim: dim, index: append([]int(nil), index...)}
}

// Backward scatter-adds the gradient into the input shape.
func (op *GatherOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	dim := tensor.NormalizeDim(op.dim, x.NDim())
	outer, size, inner := x.Shape().Split(dim)
	k := len(op.index)

	grad := tensor.MustRaw("gather backward", x.Shape())
	dst, src := grad.Data(), outputGrad.Data()
	for o := 0; o < outer; o++ {
		for j, idx := range op.index {
			if idx < 0 {
				idx += size
			}
			for in := 0; in < inner; in++ {
				dst[(o*size+idx)*inner+in] += src[(o*k+j)*inner+in]
			}
		}
	}
	return []*tensor.RawTensor{grad}
}

// IndexPutOp represents replacing positions index along dim of x by values.
//
// Backward: replaced positions of x get no gradient; values receive the
// gradient at the positions they were written to.
type IndexPutOp struct {
	record
	dim   int
	index []int
}

// NewIndexPutOp creates a new IndexPutOp.
func NewIndexPutOp(x, values, output *tensor.RawTensor, dim int, index []int) *IndexPutOp {
	return &IndexPutOp{record: newRecord(output, x, values), dim: dim, index: append([]int(nil), index...)}
}

// Backward computes gradients for x and values.
func (op *IndexPutOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	values := op.inputs[1]
	gradX := backend.IndexPut(outputGrad, op.dim, op.index, tensor.MustRaw("index_put backward", values.Shape()))
	gradValues := backend.Gather(outputGrad, op.dim, op.index)
	return []*tensor.RawTensor{gradX, gradValues}
}

// zerosAlong returns zeros shaped like shape with dim set to n.
func zerosAlong(shape tensor.Shape, dim, n int) *tensor.RawTensor {
	s := shape.Clone()
	s[dim] = n
	return tensor.MustRaw("narrow backward", s)
}
