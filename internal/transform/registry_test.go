package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames_Registered(t *testing.T) {
	assert.Equal(t, []string{
		"cholesky-cov-packed",
		"circular",
		"interval",
		"log",
		"log_exp_m1",
		"logodds",
		"lowerbound",
		"ordered",
		"stickbreaking",
		"sumto1",
		"upperbound",
	}, Names())
}

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		name string
		kind Kind
	}{
		{"log", "log", KindLog},
		{"  StickBreaking ", "stickbreaking", KindStickBreaking},
		{"interval(0, 1)", "interval", KindInterval},
		{"interval(-1e+3,1e+3)", "interval", KindInterval},
		{"cholesky-cov-packed(3)", "cholesky-cov-packed", KindCholeskyCovPacked},
		{"stickbreaking+interval(0,1)", "stickbreaking+interval", KindChain},
		{"ordered + lowerbound(-1) + log", "ordered+lowerbound+log", KindChain},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			tr, err := Parse(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.name, tr.Name())
			assert.Equal(t, tt.kind, tr.Kind())
		})
	}
}

func TestParse_Singleton(t *testing.T) {
	tr, err := Parse("ordered")
	require.NoError(t, err)
	assert.Same(t, Ordered(), tr)
}

func TestParse_Arguments(t *testing.T) {
	tr, err := Parse("interval(-1e+3, 2.5)")
	require.NoError(t, err)
	a, b := tr.(*IntervalTransform).Bounds()
	assert.Equal(t, -1000.0, a.Item())
	assert.Equal(t, 2.5, b.Item())

	tr, err = Parse("cholesky-cov-packed(3)")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 5}, tr.(*CholeskyCovPackedTransform).DiagIndices())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptyChain},
		{"log+", ErrEmptyChain},
		{"nope", ErrUnknownTransform},
		{"log+nope(1)", ErrUnknownTransform},
		{"interval(0)", ErrBadArguments},
		{"log(1)", ErrBadArguments},
		{"interval(0,x)", ErrBadArguments},
		{"interval(0,1", ErrBadArguments},
		{"interval(0,1))", ErrBadArguments},
		{"interval(1,0)", ErrBadArguments},
		{"cholesky-cov-packed(2.5)", ErrBadArguments},
		{"cholesky-cov-packed(0)", ErrBadArguments},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := Parse(tt.spec)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestArity(t *testing.T) {
	n, err := Arity("interval")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = Arity("missing")
	assert.ErrorIs(t, err, ErrUnknownTransform)
}
