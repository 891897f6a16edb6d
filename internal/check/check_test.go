package check

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/bijector/internal/transform"
)

func allCases() []Case {
	return []Case{
		{Spec: "log", Shape: []int{3}},
		{Spec: "log_exp_m1", Shape: []int{3}},
		{Spec: "logodds", Shape: []int{3}},
		{Spec: "interval(0, 1)", Shape: []int{3}},
		{Spec: "lowerbound(-2)", Shape: []int{2}},
		{Spec: "upperbound(5)", Shape: []int{2}},
		{Spec: "ordered", Shape: []int{5}},
		{Spec: "sumto1", Shape: []int{3}},
		{Spec: "stickbreaking", Shape: []int{4}},
		{Spec: "circular", Shape: []int{2}},
		{Spec: "cholesky-cov-packed(3)", Shape: []int{6}},
		{Spec: "lowerbound(-1)+ordered", Shape: []int{4}},
	}
}

func TestRun_AllTransformsPass(t *testing.T) {
	report, err := Run(context.Background(), allCases(), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, report.Results, len(allCases()))

	for _, res := range report.Results {
		assert.True(t, res.Passed, "%s: %v", res.Spec, res.Messages)
		assert.Empty(t, res.Messages, res.Spec)
	}
	assert.True(t, report.Passed())
	assert.Equal(t, 0, report.Failed())
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 32, report.Samples)
}

func TestRun_ResultsKeepCaseOrder(t *testing.T) {
	opts := DefaultOptions()
	opts.Workers = 4
	report, err := Run(context.Background(), allCases(), opts)
	require.NoError(t, err)
	for i, c := range allCases() {
		assert.Equal(t, c.Spec, report.Results[i].Spec)
	}
	assert.Equal(t, "lowerbound+ordered", report.Results[len(report.Results)-1].Name)
}

func TestRun_ElementwiseFlag(t *testing.T) {
	report, err := Run(context.Background(), []Case{
		{Spec: "log", Shape: []int{2}},
		{Spec: "stickbreaking", Shape: []int{2}},
	}, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, report.Results[0].Elementwise)
	assert.False(t, report.Results[1].Elementwise)
	assert.Zero(t, report.Results[1].MaxJacobianErr)
}

func TestRun_Deterministic(t *testing.T) {
	cases := []Case{{Spec: "stickbreaking", Shape: []int{5}}}
	a, err := Run(context.Background(), cases, DefaultOptions())
	require.NoError(t, err)
	b, err := Run(context.Background(), cases, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, a.Results[0].MaxRoundTripErr, b.Results[0].MaxRoundTripErr)
	assert.Equal(t, a.Results[0].MeanRoundTripErr, b.Results[0].MeanRoundTripErr)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRun_BadShapeFailsCase(t *testing.T) {
	report, err := Run(context.Background(), []Case{
		{Spec: "cholesky-cov-packed(3)", Shape: []int{4}},
		{Spec: "log", Shape: []int{1}},
	}, DefaultOptions())
	require.NoError(t, err)

	bad := report.Results[0]
	assert.False(t, bad.Passed)
	require.NotEmpty(t, bad.Messages)
	assert.True(t, strings.HasPrefix(bad.Messages[0], "backward:"), bad.Messages[0])
	assert.True(t, report.Results[1].Passed)
	assert.False(t, report.Passed())
	assert.Equal(t, 1, report.Failed())
}

func TestRun_UnknownSpec(t *testing.T) {
	_, err := Run(context.Background(), []Case{{Spec: "log"}, {Spec: "bogus"}}, DefaultOptions())
	assert.ErrorIs(t, err, transform.ErrUnknownTransform)
	assert.Contains(t, err.Error(), "case 1")
}

func TestRun_InvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Tolerance = 0
	_, err := Run(context.Background(), allCases(), opts)
	assert.Error(t, err)

	opts = DefaultOptions()
	opts.Samples = -1
	_, err = Run(context.Background(), allCases(), opts)
	assert.Error(t, err)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, allCases(), DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRelErrors(t *testing.T) {
	maxErr, meanErr := relErrors([]float64{0, 1, 3}, []float64{0, 1.5, 3})
	assert.InDelta(t, 0.25, maxErr, 1e-15)
	assert.InDelta(t, 0.25/3, meanErr, 1e-15)

	maxErr, _ = relErrors([]float64{1}, []float64{math.NaN()})
	assert.True(t, math.IsInf(maxErr, 1))

	maxErr, _ = relErrors([]float64{1, 2}, []float64{1})
	assert.True(t, math.IsInf(maxErr, 1))

	maxErr, meanErr = relErrors(nil, nil)
	assert.Zero(t, maxErr)
	assert.Zero(t, meanErr)
}

func TestReport_YAML(t *testing.T) {
	report, err := Run(context.Background(), []Case{{Spec: "log", Shape: []int{2}}}, DefaultOptions())
	require.NoError(t, err)

	out, err := yaml.Marshal(report)
	require.NoError(t, err)

	var decoded struct {
		RunID   string `yaml:"run_id"`
		Results []struct {
			Name   string `yaml:"name"`
			Passed bool   `yaml:"passed"`
		} `yaml:"results"`
	}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, report.RunID, decoded.RunID)
	require.Len(t, decoded.Results, 1)
	assert.Equal(t, "log", decoded.Results[0].Name)
	assert.True(t, decoded.Results[0].Passed)
}
