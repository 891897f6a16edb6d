// Package cpu implements the float64 CPU backend.
package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/bijector/internal/parallel"
	"github.com/born-ml/bijector/internal/tensor"
)

// CPUBackend implements tensor operations on CPU in pure Go.
// It holds no mutable state and is safe for concurrent use.
type CPUBackend struct {
	par parallel.Config
}

var _ tensor.Backend = (*CPUBackend)(nil)

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		par: parallel.DefaultConfig(),
	}
}

// NewWithConfig creates a CPU backend with an explicit parallelism config.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{par: cfg}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
// Division by zero yields ±Inf or NaN.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b, func(x, y float64) float64 { return x / y })
}

// Atan2 computes atan2(a, b) element-wise with broadcasting.
func (cpu *CPUBackend) Atan2(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("atan2", a, b, math.Atan2)
}

// binary applies f element-wise over the broadcast shape of a and b.
func (cpu *CPUBackend) binary(op string, a, b *tensor.RawTensor, f func(x, y float64) float64) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	result := tensor.MustRaw(op, outShape)
	dst, src1, src2 := result.Data(), a.Data(), b.Data()

	if !needsBroadcast {
		// Fast path: same shape
		parallel.ForRange(len(dst), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = f(src1[i], src2[i])
			}
		}, cpu.par)
		return result
	}

	ai, bi := newBroadcastIndex(a.Shape(), outShape), newBroadcastIndex(b.Shape(), outShape)
	parallel.ForRange(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = f(src1[ai.at(i)], src2[bi.at(i)])
		}
	}, cpu.par)
	return result
}

// broadcastIndex maps a flat offset in an output shape to the offset of the
// element it reads from a smaller, broadcast operand.
type broadcastIndex struct {
	outStrides []int
	inStrides  []int // 0 on padded and size-1 axes
}

func newBroadcastIndex(in, out tensor.Shape) broadcastIndex {
	inStrides := make([]int, len(out))
	offset := len(out) - len(in)
	strides := in.ComputeStrides()
	for i := range in {
		if in[i] != 1 {
			inStrides[offset+i] = strides[i]
		}
	}
	return broadcastIndex{outStrides: out.ComputeStrides(), inStrides: inStrides}
}

func (b broadcastIndex) at(flat int) int {
	idx := 0
	for d, s := range b.outStrides {
		idx += flat / s * b.inStrides[d]
		flat %= s
	}
	return idx
}
