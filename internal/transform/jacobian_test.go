package transform

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/bijector/internal/tensor"
)

// numericalJacobian returns ∂f_i/∂y_j by central differences.
func numericalJacobian(f func([]float64) []float64, y []float64, eps float64) [][]float64 {
	n := len(f(y))
	jac := make([][]float64, n)
	for i := range jac {
		jac[i] = make([]float64, len(y))
	}
	for j := range y {
		plus := append([]float64(nil), y...)
		minus := append([]float64(nil), y...)
		plus[j] += eps
		minus[j] -= eps
		fp, fm := f(plus), f(minus)
		for i := 0; i < n; i++ {
			jac[i][j] = (fp[i] - fm[i]) / (2 * eps)
		}
	}
	return jac
}

// logAbsDet computes log|det m| by Gaussian elimination with partial pivoting.
func logAbsDet(m [][]float64) float64 {
	n := len(m)
	a := make([][]float64, n)
	for i := range m {
		a[i] = append([]float64(nil), m[i]...)
	}
	var logDet float64
	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		a[col], a[pivot] = a[pivot], a[col]
		if a[col][col] == 0 {
			return math.Inf(-1)
		}
		logDet += math.Log(math.Abs(a[col][col]))
		for r := col + 1; r < n; r++ {
			f := a[r][col] / a[col][col]
			for c := col; c < n; c++ {
				a[r][c] -= f * a[col][c]
			}
		}
	}
	return logDet
}

// backwardFn adapts tr.Backward on a vector to a plain function, keeping the first keep outputs.
func backwardFn(t *testing.T, tr Transform, keep int) func([]float64) []float64 {
	return func(y []float64) []float64 {
		x, err := tr.Backward(vec(y...))
		require.NoError(t, err)
		return append([]float64(nil), x.Data()[:keep]...)
	}
}

func randomVector(r *rand.Rand, n int, scale float64) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = r.NormFloat64() * scale
	}
	return v
}

func TestStickBreaking_KnownValue(t *testing.T) {
	det, err := StickBreaking().JacobianDet(vec(0.3, -1.2, 0.7))
	require.NoError(t, err)
	assert.Equal(t, 0, det.NDim())
	assert.InDelta(t, -4.959372206, det.Item(), 1e-8)
}

func TestStickBreaking_JacobianMatchesFiniteDifferences(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for k := 1; k <= 5; k++ {
		y := randomVector(r, k, 1)
		jac := numericalJacobian(backwardFn(t, StickBreaking(), k), y, 1e-6)

		det, err := StickBreaking().JacobianDet(vec(y...))
		require.NoError(t, err)
		assert.InDelta(t, logAbsDet(jac), det.Item(), 1e-5, "k=%d y=%v", k, y)
	}
}

func TestStickBreaking_SimplexValidity(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for k := 1; k <= 8; k++ {
		y := randomVector(r, k, 3)
		x, err := StickBreaking().Backward(vec(y...))
		require.NoError(t, err)
		require.Equal(t, tensor.Shape{k + 1}, x.Shape())

		var sum float64
		for _, v := range x.Data() {
			assert.True(t, v > 0 && v < 1, "entry %v outside (0,1)", v)
			sum += v
		}
		assert.InDelta(t, 1, sum, 1e-12)

		back, err := StickBreaking().Forward(x)
		require.NoError(t, err)
		assert.InDeltaSlice(t, y, back.Data(), 1e-9)
	}
}

func TestStickBreaking_ExtremeInputs(t *testing.T) {
	x, err := StickBreaking().Backward(vec(800, -800))
	require.NoError(t, err)
	for _, v := range x.Data() {
		assert.False(t, math.IsNaN(v), "backward produced NaN")
	}

	det, err := StickBreaking().JacobianDet(vec(800, -800, 3))
	require.NoError(t, err)
	assert.False(t, math.IsNaN(det.Item()) || math.IsInf(det.Item(), 0))
}

func TestStickBreaking_Batched(t *testing.T) {
	rows := [][]float64{{0.3, -1.2, 0.7}, {2, 0.1, -0.5}}
	y := mat(append(append([]float64(nil), rows[0]...), rows[1]...), 2, 3)

	det, err := StickBreaking().JacobianDet(y)
	require.NoError(t, err)
	require.Equal(t, tensor.Shape{2}, det.Shape())

	x, err := StickBreaking().Backward(y)
	require.NoError(t, err)
	require.Equal(t, tensor.Shape{2, 4}, x.Shape())

	for i, row := range rows {
		want, err := StickBreaking().JacobianDet(vec(row...))
		require.NoError(t, err)
		assert.InDelta(t, want.Item(), det.Data()[i], 1e-12)

		wantX, err := StickBreaking().Backward(vec(row...))
		require.NoError(t, err)
		assert.InDeltaSlice(t, wantX.Data(), x.Data()[i*4:(i+1)*4], 1e-15)
	}
}

func TestOrdered_JacobianMatchesFiniteDifferences(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for k := 1; k <= 5; k++ {
		y := randomVector(r, k, 1)
		jac := numericalJacobian(backwardFn(t, Ordered(), k), y, 1e-6)

		det, err := Ordered().JacobianDet(vec(y...))
		require.NoError(t, err)
		assert.InDelta(t, logAbsDet(jac), det.Item(), 1e-6)
	}
}

func TestCholeskyCovPacked_JacobianMatchesFiniteDifferences(t *testing.T) {
	tr, err := NewCholeskyCovPacked(3)
	require.NoError(t, err)

	y := []float64{0.2, -1, 0.4, 0.3, 2, -0.7}
	jac := numericalJacobian(backwardFn(t, tr, len(y)), y, 1e-6)

	det, err := tr.JacobianDet(vec(y...))
	require.NoError(t, err)
	assert.InDelta(t, logAbsDet(jac), det.Item(), 1e-6)
}
