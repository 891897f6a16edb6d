package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/bijector/internal/check"
	"github.com/born-ml/bijector/internal/transform"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Cleanup(func() { transform.SetLogger(nil) })

	var out, errOut bytes.Buffer
	root := New(&out, &errOut).RootCommand()
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestList(t *testing.T) {
	out, _, err := execute(t, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, len(transform.Names()))
	assert.Contains(t, lines, "stickbreaking")
	assert.Contains(t, lines, "interval (arity 2)")
	assert.Contains(t, lines, "cholesky-cov-packed (arity 1)")
}

func TestEval(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"log forward", []string{"forward", "-t", "log", "--value", "[1, 1]"}, "[0,0]"},
		{"log backward scalar", []string{"backward", "-t", "log", "--value", "0"}, "1"},
		{"log jacdet", []string{"jacdet", "-t", "log", "--value", "[[0.5], [2]]"}, "[[0.5],[2]]"},
		{"yaml flow value", []string{"forward", "-t", "lowerbound(1)", "--value", "[2]"}, "[0]"},
		{"non finite", []string{"forward", "-t", "log", "--value", "[0, -1]"}, `["-Inf","NaN"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestEval_StickBreaking(t *testing.T) {
	out, _, err := execute(t, "backward", "--transform", "stickbreaking", "--value", "[0, 0]")
	require.NoError(t, err)
	got := decode(t, out).([]any)
	require.Len(t, got, 3)
	for _, v := range got {
		assert.InDelta(t, 1.0/3, v.(float64), 1e-12)
	}
}

func TestEval_IntervalJacobianBatch(t *testing.T) {
	out, _, err := execute(t, "jacdet", "-t", "interval(0,1)", "--value", "[[0], [0]]")
	require.NoError(t, err)
	rows := decode(t, out).([]any)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.InDelta(t, math.Log(0.25), row.([]any)[0].(float64), 1e-12)
	}
}

func TestEval_Errors(t *testing.T) {
	_, _, err := execute(t, "forward", "-t", "nope", "--value", "[1]")
	assert.ErrorIs(t, err, transform.ErrUnknownTransform)

	_, _, err = execute(t, "forward", "-t", "log", "--value", "[[1, 2], [3]]")
	assert.ErrorContains(t, err, "ragged")

	_, _, err = execute(t, "forward", "-t", "log", "--value", "[a]")
	assert.ErrorContains(t, err, "not a number")

	_, _, err = execute(t, "backward", "-t", "cholesky-cov-packed(3)", "--value", "[1, 2]")
	assert.ErrorIs(t, err, transform.ErrInvalidShape)

	_, _, err = execute(t, "forward", "-t", "log")
	assert.Error(t, err)
}

func TestParseValue(t *testing.T) {
	x, err := parseValue("[[1, 2.5, -3], [4, 5, 6]]")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, []int(x.Shape()))
	assert.Equal(t, []float64{1, 2.5, -3, 4, 5, 6}, x.Data())

	x, err = parseValue("7")
	require.NoError(t, err)
	assert.Equal(t, 0, x.NDim())
	assert.Equal(t, 7.0, x.Item())

	x, err = parseValue("[]")
	require.NoError(t, err)
	assert.Equal(t, []int{0}, []int(x.Shape()))
}

func TestCheck_Table(t *testing.T) {
	out, _, err := execute(t, "check", "-t", "stickbreaking", "--shape", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "stickbreaking")
	assert.Contains(t, out, iconSuccess)
	assert.Contains(t, out, "all 1 cases passed")
}

func TestCheck_JSON(t *testing.T) {
	out, _, err := execute(t, "check", "-t", "interval(-1,1)", "--shape", "2,2", "-o", "json")
	require.NoError(t, err)

	var report check.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].Passed)
	assert.Equal(t, []int{2, 2}, report.Results[0].Shape)
	assert.True(t, report.Results[0].Elementwise)
}

func TestCheck_ConfigCasesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bijector.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
check:
  samples: 4
  seed: 3
cases:
  - spec: ordered
    shape: [3]
  - spec: log+interval(-10, 10)
    shape: [2]
`), 0o600))

	out, _, err := execute(t, "--config", path, "check", "-o", "yaml")
	require.NoError(t, err)

	var report check.Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, 4, report.Samples)
	assert.Equal(t, uint64(3), report.Seed)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "ordered", report.Results[0].Name)
	assert.Equal(t, "log+interval", report.Results[1].Name)
}

func TestCheck_Failure(t *testing.T) {
	out, _, err := execute(t, "check", "-t", "cholesky-cov-packed(3)", "--shape", "4")
	assert.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, out, "1 of 1 cases failed")
}

func TestCheck_Errors(t *testing.T) {
	_, _, err := execute(t, "check")
	assert.ErrorContains(t, err, "no cases")

	_, _, err = execute(t, "check", "-t", "log", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")

	_, _, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "list")
	assert.Error(t, err)
}

func TestVerboseLogging(t *testing.T) {
	_, stderr, err := execute(t, "-v", "check", "-t", "log", "--shape", "1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "configuration loaded")
	assert.Contains(t, stderr, "Checked 1 cases")

	_, stderr, err = execute(t, "check", "-t", "log", "--shape", "1")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "configuration loaded")
}

func TestNewLogger_Formats(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel, "json").Info("hello", "k", 1)
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	newLogger(&buf, log.InfoLevel, "logfmt").Info("hello", "k", 1)
	assert.Contains(t, buf.String(), "msg=hello")

	buf.Reset()
	newLogger(&buf, log.WarnLevel, "text").Info("hidden")
	assert.Empty(t, buf.String())
}

func TestLoggerFromContext(t *testing.T) {
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))

	l := newLogger(&bytes.Buffer{}, log.InfoLevel, "text")
	assert.Same(t, l, loggerFromContext(withLogger(context.Background(), l)))
}
