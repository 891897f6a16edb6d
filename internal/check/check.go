// Package check runs numeric diagnostics over transforms: round-trip accuracy,
// finiteness of the log-Jacobian and, for element-wise transforms, agreement
// between the closed-form determinant and the autodiff one.
package check

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/born-ml/bijector/internal/backend/cpu"
	"github.com/born-ml/bijector/internal/parallel"
	"github.com/born-ml/bijector/internal/tensor"
	"github.com/born-ml/bijector/internal/transform"
)

// Case is one transform to check, with the per-sample unconstrained shape.
type Case struct {
	Spec  string `yaml:"spec" json:"spec" koanf:"spec"`
	Shape []int  `yaml:"shape" json:"shape" koanf:"shape"`
}

// Options controls a diagnostics run.
type Options struct {
	Tolerance float64
	Samples   int
	Seed      uint64
	// Workers bounds concurrent cases. Zero or less uses every CPU.
	Workers int
	Backend tensor.Backend
	Logger  *log.Logger
}

// DefaultOptions returns the options used when a config leaves them unset.
func DefaultOptions() Options {
	return Options{Tolerance: 1e-6, Samples: 32, Seed: 1}
}

// Result is the outcome for one case.
type Result struct {
	Name             string   `yaml:"name" json:"name"`
	Spec             string   `yaml:"spec" json:"spec"`
	Shape            []int    `yaml:"shape" json:"shape"`
	Passed           bool     `yaml:"passed" json:"passed"`
	Elementwise      bool     `yaml:"elementwise" json:"elementwise"`
	MaxRoundTripErr  float64  `yaml:"max_round_trip_err" json:"max_round_trip_err"`
	MeanRoundTripErr float64  `yaml:"mean_round_trip_err" json:"mean_round_trip_err"`
	MaxJacobianErr   float64  `yaml:"max_jacobian_err,omitempty" json:"max_jacobian_err,omitempty"`
	Messages         []string `yaml:"messages,omitempty" json:"messages,omitempty"`
}

// Report collects the results of a run in case order.
type Report struct {
	RunID     string        `yaml:"run_id" json:"run_id"`
	Tolerance float64       `yaml:"tolerance" json:"tolerance"`
	Samples   int           `yaml:"samples" json:"samples"`
	Seed      uint64        `yaml:"seed" json:"seed"`
	Elapsed   time.Duration `yaml:"elapsed" json:"elapsed"`
	Results   []Result      `yaml:"results" json:"results"`
}

// Passed reports whether every case passed.
func (r *Report) Passed() bool {
	return r.Failed() == 0
}

// Failed returns the number of failing cases.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed {
			n++
		}
	}
	return n
}

// Run checks every case. All specs are parsed before any work starts, so a
// malformed spec fails the run as a whole. Cancelling ctx stops scheduling new
// cases and Run returns ctx.Err().
func Run(ctx context.Context, cases []Case, opts Options) (*Report, error) {
	if !(opts.Tolerance > 0) {
		return nil, errors.Errorf("check: tolerance must be positive, got %v", opts.Tolerance)
	}
	if opts.Samples <= 0 {
		return nil, errors.Errorf("check: samples must be positive, got %d", opts.Samples)
	}
	if opts.Backend == nil {
		opts.Backend = cpu.New()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	transforms := make([]transform.Transform, len(cases))
	for i, c := range cases {
		t, err := transform.Parse(c.Spec)
		if err != nil {
			return nil, errors.WithMessagef(err, "case %d", i)
		}
		transforms[i] = t
	}

	start := time.Now()
	results := make([]Result, len(cases))
	parallel.For(len(cases), func(i int) {
		if ctx.Err() != nil {
			return
		}
		results[i] = runCase(transforms[i], cases[i], uint64(i), opts)
		opts.Logger.Debug("checked", "transform", results[i].Name, "passed", results[i].Passed,
			"round_trip_err", results[i].MaxRoundTripErr)
	}, parallel.WithWorkers(opts.Workers))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Report{
		RunID:     uuid.NewString(),
		Tolerance: opts.Tolerance,
		Samples:   opts.Samples,
		Seed:      opts.Seed,
		Elapsed:   time.Since(start),
		Results:   results,
	}, nil
}

func runCase(t transform.Transform, c Case, stream uint64, opts Options) (res Result) {
	res = Result{
		Name:        t.Name(),
		Spec:        c.Spec,
		Shape:       c.Shape,
		Elementwise: transform.IsElementwise(t),
	}
	defer func() {
		if r := recover(); r != nil {
			res.Messages = append(res.Messages, fmt.Sprintf("panic: %v", r))
		}
		res.Passed = len(res.Messages) == 0
	}()

	y := samples(c.Shape, opts.Samples, opts.Seed, stream, opts.Backend)

	x, err := t.Backward(y)
	if err != nil {
		res.fail("backward: %v", err)
		return res
	}
	fx, err := t.Forward(x)
	if err != nil {
		res.fail("forward: %v", err)
		return res
	}
	again, err := t.Backward(fx)
	if err != nil {
		res.fail("backward of forward: %v", err)
		return res
	}
	res.MaxRoundTripErr, res.MeanRoundTripErr = relErrors(x.Data(), again.Data())
	if !(res.MaxRoundTripErr <= opts.Tolerance) {
		res.fail("round trip error %.3g exceeds tolerance %.3g", res.MaxRoundTripErr, opts.Tolerance)
	}

	jac, err := t.JacobianDet(y)
	if err != nil {
		res.fail("jacobian: %v", err)
		return res
	}
	for _, v := range jac.Data() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			res.fail("jacobian has non-finite value %v", v)
			break
		}
	}

	if res.Elementwise {
		ad, err := transform.ElementwiseJacobianDet(t, y)
		if err != nil {
			res.fail("autodiff jacobian: %v", err)
			return res
		}
		res.MaxJacobianErr, _ = relErrors(jac.Data(), ad.Data())
		if !(res.MaxJacobianErr <= opts.Tolerance) {
			res.fail("closed-form jacobian differs from autodiff by %.3g", res.MaxJacobianErr)
		}
	}
	return res
}

func (r *Result) fail(format string, args ...any) {
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

// samples draws n standard-normal points of the given shape, stacked on a
// leading axis. Each case uses its own PCG stream of seed.
func samples(shape []int, n int, seed, stream uint64, b tensor.Backend) *tensor.Tensor {
	full := append(tensor.Shape{n}, shape...)
	rng := rand.New(rand.NewPCG(seed, stream))
	data := make([]float64, full.NumElements())
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return tensor.MustFromSlice(data, full, b)
}

// relErrors returns the max and mean of |a-b| / (1+|a|). Mismatched lengths
// or non-finite values yield +Inf.
func relErrors(a, b []float64) (maxErr, meanErr float64) {
	if len(a) != len(b) {
		return math.Inf(1), math.Inf(1)
	}
	if len(a) == 0 {
		return 0, 0
	}
	errs := make(stats.Float64Data, len(a))
	for i := range a {
		d := math.Abs(a[i]-b[i]) / (1 + math.Abs(a[i]))
		if math.IsNaN(d) {
			d = math.Inf(1)
		}
		errs[i] = d
	}
	maxErr, _ = stats.Max(errs)
	meanErr, _ = stats.Mean(errs)
	return maxErr, meanErr
}
