package distribution

import (
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/bijector/internal/tensor"
)

// Dirichlet is a distribution over the simplex on the last axis.
type Dirichlet struct {
	alpha *tensor.Tensor
	// logNorm is log Γ(Σα) - Σ log Γ(α), one value per batch row of alpha.
	logNorm *tensor.Tensor
}

// NewDirichlet creates a Dirichlet distribution with concentrations alpha > 0.
// alpha needs at least one dimension; its last axis is the simplex axis.
func NewDirichlet(alpha any) (*Dirichlet, error) {
	a, err := param("alpha", alpha, positive)
	if err != nil {
		return nil, err
	}
	if a.NDim() == 0 || a.Shape()[a.NDim()-1] < 2 {
		return nil, errors.Wrapf(ErrInvalidParameter, "dirichlet needs at least 2 categories, got shape %v", a.Shape())
	}

	shape := a.Shape()
	k := shape[len(shape)-1]
	rows := a.NumElements() / k
	norm := make([]float64, rows)
	for r := 0; r < rows; r++ {
		var sum, lgSum float64
		for _, v := range a.Data()[r*k : (r+1)*k] {
			lg, _ := math.Lgamma(v)
			lgSum += lg
			sum += v
		}
		lgTotal, _ := math.Lgamma(sum)
		norm[r] = lgTotal - lgSum
	}
	logNorm, err := tensor.FromSlice(norm, shape[:len(shape)-1].Clone(), a.Backend())
	if err != nil {
		return nil, errors.Wrap(err, "dirichlet normaliser")
	}
	return &Dirichlet{alpha: a, logNorm: logNorm}, nil
}

// LogP computes Σ (α-1)·log x + log Γ(Σα) - Σ log Γ(α), reducing the last axis.
// Points with a non-positive coordinate get -Inf.
func (d *Dirichlet) LogP(x *tensor.Tensor) (*tensor.Tensor, error) {
	if x.NDim() == 0 || x.Shape()[x.NDim()-1] != d.alpha.Shape()[d.alpha.NDim()-1] {
		return nil, errors.Errorf("dirichlet: value shape %v does not match alpha %v", x.Shape(), d.alpha.Shape())
	}
	mask := supportMask(x, func(_ int, v float64) bool { return v > 0 })
	weighted := on(d.alpha, x).AddScalar(-1).Mul(x.Log()).Add(mask)
	return weighted.SumDim(-1, false).Add(on(d.logNorm, x)), nil
}

// Default returns the mean α / Σα.
func (d *Dirichlet) Default() *tensor.Tensor {
	return d.alpha.Div(d.alpha.SumDim(-1, true))
}
