package distribution

import (
	"context"
	"math"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/born-ml/bijector/internal/autodiff"
	"github.com/born-ml/bijector/internal/backend/cpu"
	"github.com/born-ml/bijector/internal/optim"
	"github.com/born-ml/bijector/internal/tensor"
)

// MAPOptions controls FindMAP.
type MAPOptions struct {
	// Optimizer defaults to Adam with LR 0.05.
	Optimizer optim.Optimizer
	// MaxIter defaults to 5000.
	MaxIter int
	// GradTol stops once every gradient component is below it. Defaults to 1e-8.
	GradTol float64
	Logger  *log.Logger
}

// MAPResult is the outcome of FindMAP.
type MAPResult struct {
	// Unconstrained is the optimum in the transform's space.
	Unconstrained *tensor.Tensor
	// Value is Backward(Unconstrained), a point of the base support.
	Value      *tensor.Tensor
	LogP       float64
	Iterations int
	Converged  bool
}

// FindMAP maximises d.LogP by gradient ascent from d.InitialValue().
//
// The optimum is taken in unconstrained space, so it includes the Jacobian
// term and in general differs from the mode of the base distribution.
func FindMAP(ctx context.Context, d *Transformed, opts MAPOptions) (*MAPResult, error) {
	if opts.Optimizer == nil {
		opts.Optimizer = optim.NewAdam(optim.AdamConfig{LR: 0.05})
	}
	if opts.MaxIter <= 0 {
		opts.MaxIter = 5000
	}
	if opts.GradTol <= 0 {
		opts.GradTol = 1e-8
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	backend := cpu.New()
	objective := func(x *tensor.Tensor) (*tensor.Tensor, error) {
		lp, err := d.LogP(x)
		if err != nil {
			return nil, err
		}
		return lp.Sum(), nil
	}

	y := d.InitialValue().Detach(backend)
	res := &MAPResult{}
	for res.Iterations < opts.MaxIter {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		grad, err := autodiff.Gradient(backend, y, objective)
		if err != nil {
			return nil, errors.WithMessage(err, "find map")
		}

		worst := 0.0
		for _, g := range grad.Data() {
			if math.IsNaN(g) || math.IsInf(g, 0) {
				return nil, errors.Errorf("find map: non-finite gradient at iteration %d", res.Iterations)
			}
			worst = max(worst, math.Abs(g))
		}
		if worst < opts.GradTol {
			res.Converged = true
			break
		}

		opts.Optimizer.Step(y, grad.Neg())
		res.Iterations++
	}

	lp, err := objective(y)
	if err != nil {
		return nil, err
	}
	value, err := d.Transform().Backward(y)
	if err != nil {
		return nil, err
	}
	res.Unconstrained, res.Value, res.LogP = y, value, lp.Item()
	opts.Logger.Debug("map search finished", "transform", d.Transform().Name(),
		"iterations", res.Iterations, "converged", res.Converged, "logp", res.LogP)
	return res, nil
}
