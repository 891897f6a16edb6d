// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/bijector/backend/cpu"
	"github.com/born-ml/bijector/tensor"
)

// TestBackendInterface verifies that the CPU backend implements tensor.Backend.
func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = cpu.New()
}

func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3})
	require.NoError(t, err)
	assert.True(t, raw.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, 6, raw.NumElements())
	assert.Equal(t, []int{3, 1}, raw.Strides())

	clone := raw.Clone()
	clone.Data()[0] = 1
	assert.Zero(t, raw.Data()[0], "Clone must not share the buffer")

	_, err = tensor.RawFromSlice([]float64{1, 2, 3}, tensor.Shape{2, 2})
	assert.Error(t, err)
}

func TestTensorConstructors(t *testing.T) {
	backend := cpu.New()

	x := tensor.Vector(backend, 1, 2, 3)
	assert.Equal(t, tensor.Shape{3}, x.Shape())
	assert.Same(t, tensor.Backend(backend), x.Backend())

	s := tensor.Scalar(2.5, backend)
	assert.Equal(t, 0, s.NDim())
	assert.Equal(t, 2.5, s.Item())

	z := tensor.Zeros(tensor.Shape{2, 2}, backend)
	assert.Equal(t, []float64{0, 0, 0, 0}, z.Data())

	f := tensor.Full(tensor.Shape{2}, 7, backend)
	assert.Equal(t, []float64{7, 7}, f.Data())

	m, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	assert.Equal(t, 3.0, m.At(1, 0))

	assert.Panics(t, func() { tensor.MustFromSlice([]float64{1}, tensor.Shape{2}, backend) })
}

func TestTensorOps(t *testing.T) {
	backend := cpu.New()
	x := tensor.MustFromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	row := tensor.Vector(backend, 10, 20, 30)

	sum := x.Add(row)
	assert.Equal(t, []float64{11, 22, 33, 14, 25, 36}, sum.Data())

	assert.Equal(t, []float64{6, 15}, x.SumDim(-1, false).Data())
	assert.Equal(t, []float64{1, 3, 6, 4, 9, 15}, x.CumSum(-1).Data())
	assert.Equal(t, []float64{2, 3, 5, 6}, x.Narrow(-1, 1, 2).Data())

	cat := tensor.Cat([]*tensor.Tensor{x, row.Reshape(1, 3)}, 0)
	assert.Equal(t, tensor.Shape{3, 3}, cat.Shape())
}

func TestBroadcastShapes(t *testing.T) {
	out, broadcast, err := tensor.BroadcastShapes(tensor.Shape{2, 1}, tensor.Shape{3})
	require.NoError(t, err)
	assert.True(t, broadcast)
	assert.Equal(t, tensor.Shape{2, 3}, out)

	_, _, err = tensor.BroadcastShapes(tensor.Shape{2}, tensor.Shape{3})
	assert.Error(t, err)
}
