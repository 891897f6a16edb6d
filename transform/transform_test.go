// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package transform_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/bijector/backend/cpu"
	"github.com/born-ml/bijector/distribution"
	"github.com/born-ml/bijector/tensor"
	"github.com/born-ml/bijector/transform"
)

func TestPublicAPI_StickBreakingDirichlet(t *testing.T) {
	backend := cpu.New()

	sb, err := transform.Parse("stickbreaking")
	require.NoError(t, err)
	assert.Equal(t, transform.KindStickBreaking, sb.Kind())
	assert.Same(t, transform.StickBreaking(), sb)

	y := tensor.Vector(backend, 0.3, -1.2)
	x, err := sb.Backward(y)
	require.NoError(t, err)
	sum := 0.0
	for _, v := range x.Data() {
		assert.Greater(t, v, 0.0)
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-12)

	base, err := distribution.NewDirichlet([]float64{1, 1, 1})
	require.NoError(t, err)
	d, err := distribution.NewTransformed(base, sb)
	require.NoError(t, err)
	lp, err := d.LogP(y)
	require.NoError(t, err)
	jac, err := sb.JacobianDet(y)
	require.NoError(t, err)
	assert.InDelta(t, math.Ln2+jac.Item(), lp.Item(), 1e-12)
}

func TestPublicAPI_Errors(t *testing.T) {
	_, err := transform.Parse("interval(1)")
	assert.ErrorIs(t, err, transform.ErrBadArguments)

	_, err = transform.NewChain()
	assert.ErrorIs(t, err, transform.ErrEmptyChain)

	_, err = transform.Ordered().Backward(tensor.Scalar(1, cpu.New()))
	assert.ErrorIs(t, err, transform.ErrInvalidShape)
}
