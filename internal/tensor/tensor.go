// Package tensor provides the core float64 tensor types used by the
// bijector transforms.
package tensor

import (
	"fmt"
	"strings"
)

// Tensor is a RawTensor bound to the Backend that computes on it.
// Every method dispatches to that backend, so the same code runs eagerly
// on the CPU or records onto an autodiff tape.
//
// Example:
//
//	backend := cpu.New()
//	x, _ := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3}, backend)
//	y := x.Exp().Sum() // scalar
type Tensor struct {
	raw     *RawTensor
	backend Backend
}

// New creates a Tensor from a RawTensor and backend.
func New(raw *RawTensor, b Backend) *Tensor {
	return &Tensor{
		raw:     raw,
		backend: b,
	}
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.raw.Shape()
}

// NDim returns the number of dimensions (0 for a scalar).
func (t *Tensor) NDim() int {
	return t.raw.NDim()
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return t.raw.NumElements()
}

// Raw returns the underlying RawTensor.
// Used by backend implementations for low-level operations.
func (t *Tensor) Raw() *RawTensor {
	return t.raw
}

// Backend returns the computation backend.
func (t *Tensor) Backend() Backend {
	return t.backend
}

// Data returns the tensor's buffer (zero-copy).
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor) Data() []float64 {
	return t.raw.Data()
}

// Item returns the value of a single-element tensor.
// Panics if the tensor holds more than one element.
func (t *Tensor) Item() float64 {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("Item() only works for single-element tensors, got shape %v", t.Shape()))
	}
	return t.Data()[0]
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor) At(indices ...int) float64 {
	if len(indices) != t.NDim() {
		panic(fmt.Sprintf("expected %d indices, got %d", t.NDim(), len(indices)))
	}

	offset := 0
	strides := t.raw.Strides()
	for i, idx := range indices {
		if idx < 0 || idx >= t.Shape()[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, t.Shape()[i]))
		}
		offset += idx * strides[i]
	}

	return t.Data()[offset]
}

// String returns a human-readable representation of the tensor.
// Small tensors include their values.
func (t *Tensor) String() string {
	if t.NumElements() > 16 {
		return fmt.Sprintf("Tensor%v on %s", t.Shape(), t.backend.Name())
	}
	parts := make([]string, len(t.Data()))
	for i, v := range t.Data() {
		parts[i] = fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("Tensor%v[%s] on %s", t.Shape(), strings.Join(parts, " "), t.backend.Name())
}

// Clone creates a deep copy of the tensor on the same backend.
func (t *Tensor) Clone() *Tensor {
	return New(t.raw.Clone(), t.backend)
}

// Detach returns a copy of the values bound to another backend.
//
// Moving a value onto a fresh autodiff backend makes it a leaf of that
// backend's tape; moving it back onto the CPU drops all gradient tracking.
func (t *Tensor) Detach(b Backend) *Tensor {
	return New(t.raw.Clone(), b)
}

// Like creates a tensor with t's backend from a raw result.
func (t *Tensor) Like(raw *RawTensor) *Tensor {
	return New(raw, t.backend)
}
