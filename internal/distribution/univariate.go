package distribution

import (
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/bijector/internal/tensor"
)

var logSqrt2Pi = 0.5 * math.Log(2*math.Pi)

// Normal is an element-wise normal distribution 𝒩(μ, σ).
type Normal struct {
	mu, sigma *tensor.Tensor
	shape     tensor.Shape
}

// NewNormal creates a normal distribution. mu and sigma may be scalars or
// tensors; shape optionally fixes the event shape they broadcast to.
func NewNormal(mu, sigma any, shape ...int) (*Normal, error) {
	m, err := param("mu", mu, finite)
	if err != nil {
		return nil, err
	}
	s, err := param("sigma", sigma, positive)
	if err != nil {
		return nil, err
	}
	out, err := eventShape(shape, m, s)
	if err != nil {
		return nil, err
	}
	return &Normal{mu: m, sigma: s, shape: out}, nil
}

// LogP computes -((x-μ)/σ)²/2 - log σ - log √(2π).
func (d *Normal) LogP(x *tensor.Tensor) (*tensor.Tensor, error) {
	sigma := on(d.sigma, x)
	z := x.Sub(on(d.mu, x)).Div(sigma)
	return z.Mul(z).MulScalar(-0.5).Sub(sigma.Log()).AddScalar(-logSqrt2Pi), nil
}

// Default returns the mean.
func (d *Normal) Default() *tensor.Tensor {
	return broadcastTo(d.mu, d.shape)
}

// Exponential is an element-wise exponential distribution with rate λ.
type Exponential struct {
	lam   *tensor.Tensor
	shape tensor.Shape
}

// NewExponential creates an exponential distribution with rate lam > 0.
func NewExponential(lam any, shape ...int) (*Exponential, error) {
	l, err := param("lam", lam, positive)
	if err != nil {
		return nil, err
	}
	out, err := eventShape(shape, l)
	if err != nil {
		return nil, err
	}
	return &Exponential{lam: l, shape: out}, nil
}

// LogP computes log λ - λx on x ≥ 0 and -Inf elsewhere.
func (d *Exponential) LogP(x *tensor.Tensor) (*tensor.Tensor, error) {
	lam := on(d.lam, x)
	mask := supportMask(x, func(_ int, v float64) bool { return v >= 0 })
	return lam.Log().Sub(lam.Mul(x)).Add(mask), nil
}

// Default returns the median log(2)/λ.
func (d *Exponential) Default() *tensor.Tensor {
	return broadcastTo(tensor.Full(d.lam.Shape(), math.Ln2, d.lam.Backend()).Div(d.lam), d.shape)
}

// Uniform is an element-wise uniform distribution on [a, b].
type Uniform struct {
	lower, upper *tensor.Tensor
	shape        tensor.Shape
}

// NewUniform creates a uniform distribution with a < b.
func NewUniform(lower, upper any, shape ...int) (*Uniform, error) {
	a, err := param("lower", lower, finite)
	if err != nil {
		return nil, err
	}
	b, err := param("upper", upper, finite)
	if err != nil {
		return nil, err
	}
	out, err := eventShape(shape, a, b)
	if err != nil {
		return nil, err
	}
	width := broadcastTo(b.Sub(a), out)
	for _, w := range width.Data() {
		if !(w > 0) {
			return nil, errors.Wrapf(ErrInvalidParameter, "uniform requires lower < upper, got width %v", w)
		}
	}
	return &Uniform{lower: a, upper: b, shape: out}, nil
}

// LogP computes -log(b-a) on [a, b] and -Inf elsewhere.
func (d *Uniform) LogP(x *tensor.Tensor) (*tensor.Tensor, error) {
	a, b := on(d.lower, x), on(d.upper, x)
	lo := broadcastTo(d.lower, x.Shape()).Data()
	hi := broadcastTo(d.upper, x.Shape()).Data()
	mask := supportMask(x, func(i int, v float64) bool { return v >= lo[i] && v <= hi[i] })
	return b.Sub(a).Log().Neg().Add(mask), nil
}

// Default returns the midpoint (a+b)/2.
func (d *Uniform) Default() *tensor.Tensor {
	return broadcastTo(d.lower.Add(d.upper).MulScalar(0.5), d.shape)
}
