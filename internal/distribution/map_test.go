package distribution

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/bijector/internal/autodiff"
	"github.com/born-ml/bijector/internal/optim"
	"github.com/born-ml/bijector/internal/tensor"
	"github.com/born-ml/bijector/internal/transform"
)

func TestFindMAP_ExponentialLog(t *testing.T) {
	base, err := NewExponential(2.0)
	require.NoError(t, err)
	d, err := NewTransformed(base, transform.Log())
	require.NoError(t, err)

	// logp(y) = log 2 - 2eʸ + y peaks at eʸ = 1/2.
	res, err := FindMAP(context.Background(), d, MAPOptions{
		Optimizer: optim.NewSGD(optim.SGDConfig{LR: 0.1}),
		GradTol:   1e-10,
	})
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, -math.Ln2, res.Unconstrained.Item(), 1e-9)
	assert.InDelta(t, 0.5, res.Value.Item(), 1e-9)
	assert.InDelta(t, -1, res.LogP, 1e-9)
}

func TestFindMAP_DirichletStickBreaking(t *testing.T) {
	base, err := NewDirichlet([]float64{2, 3, 4})
	require.NoError(t, err)
	d, err := NewTransformed(base, transform.StickBreaking())
	require.NoError(t, err)

	// With the simplex Jacobian the unconstrained optimum maps to the mean α/Σα.
	d.initial = d.initial.MulScalar(0)
	res, err := FindMAP(context.Background(), d, MAPOptions{
		Optimizer: optim.NewSGD(optim.SGDConfig{LR: 0.05}),
		MaxIter:   20000,
		GradTol:   1e-9,
	})
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDeltaSlice(t, []float64{2.0 / 9, 3.0 / 9, 4.0 / 9}, res.Value.Data(), 1e-8)
	assert.Positive(t, res.Iterations)
}

func TestFindMAP_LogOddsIncludesJacobian(t *testing.T) {
	base, err := NewNormal(0.2, 1.0)
	require.NoError(t, err)
	d, err := NewTransformed(base, transform.LogOdds())
	require.NoError(t, err)

	logp := func(y float64) float64 {
		lp, err := d.LogP(vec(y))
		require.NoError(t, err)
		return lp.Item()
	}

	y := vec(0.3)
	grad, err := autodiff.Gradient(backend, y, func(y *tensor.Tensor) (*tensor.Tensor, error) {
		return d.LogP(y)
	})
	require.NoError(t, err)
	const h = 1e-6
	assert.InDelta(t, (logp(0.3+h)-logp(0.3-h))/(2*h), grad.Item(), 1e-6)

	bestY, bestLP := 0.0, math.Inf(-1)
	for v := -3.0; v <= 3.0; v += 1e-4 {
		if lp := logp(v); lp > bestLP {
			bestY, bestLP = v, lp
		}
	}

	res, err := FindMAP(context.Background(), d, MAPOptions{
		Optimizer: optim.NewSGD(optim.SGDConfig{LR: 0.1}),
		GradTol:   1e-9,
	})
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDelta(t, bestY, res.Unconstrained.Item(), 2e-4)
	assert.InDelta(t, bestLP, res.LogP, 1e-7)
	// The base mode logit(0.2) is not the unconstrained optimum.
	assert.Greater(t, math.Abs(res.Unconstrained.Item()+math.Log(4)), 1.0)
}

func TestFindMAP_StopsAtMaxIter(t *testing.T) {
	base, err := NewNormal(10.0, 1.0)
	require.NoError(t, err)
	lower, err := transform.NewLowerBound(-5.0)
	require.NoError(t, err)
	d, err := NewTransformed(base, lower)
	require.NoError(t, err)

	// Start away from the optimum so the search cannot converge in 3 steps.
	d.initial = d.initial.AddScalar(1)
	res, err := FindMAP(context.Background(), d, MAPOptions{MaxIter: 3})
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, 3, res.Iterations)
}

func TestFindMAP_Cancelled(t *testing.T) {
	base, err := NewExponential(1.0)
	require.NoError(t, err)
	d, err := NewTransformed(base, transform.Log())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FindMAP(ctx, d, MAPOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
