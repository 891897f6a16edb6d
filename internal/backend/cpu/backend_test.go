package cpu

import (
	"math"
	"testing"

	"github.com/born-ml/bijector/internal/parallel"
	"github.com/born-ml/bijector/internal/tensor"
)

const epsilon = 1e-12

func raw(t *testing.T, data []float64, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.RawFromSlice(data, shape)
	if err != nil {
		t.Fatalf("Failed to create tensor: %v", err)
	}
	return r
}

func assertData(t *testing.T, got *tensor.RawTensor, shape tensor.Shape, want []float64) {
	t.Helper()
	if !got.Shape().Equal(shape) {
		t.Fatalf("Expected shape %v, got %v", shape, got.Shape())
	}
	for i, w := range want {
		if math.Abs(got.Data()[i]-w) > epsilon {
			t.Errorf("element %d = %v, expected %v", i, got.Data()[i], w)
		}
	}
}

func TestBinary_Broadcast(t *testing.T) {
	backend := New()

	tests := []struct {
		name  string
		op    func(a, b *tensor.RawTensor) *tensor.RawTensor
		a, b  *tensor.RawTensor
		shape tensor.Shape
		want  []float64
	}{
		{
			name:  "add same shape",
			op:    backend.Add,
			a:     raw(t, []float64{1, 2, 3}, tensor.Shape{3}),
			b:     raw(t, []float64{10, 20, 30}, tensor.Shape{3}),
			shape: tensor.Shape{3},
			want:  []float64{11, 22, 33},
		},
		{
			name:  "sub scalar broadcast",
			op:    backend.Sub,
			a:     raw(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2}),
			b:     raw(t, []float64{1}, tensor.Shape{}),
			shape: tensor.Shape{2, 2},
			want:  []float64{0, 1, 2, 3},
		},
		{
			name:  "mul column broadcast",
			op:    backend.Mul,
			a:     raw(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}),
			b:     raw(t, []float64{2, 10}, tensor.Shape{2, 1}),
			shape: tensor.Shape{2, 3},
			want:  []float64{2, 4, 6, 40, 50, 60},
		},
		{
			name:  "div row broadcast",
			op:    backend.Div,
			a:     raw(t, []float64{2, 4, 6, 8}, tensor.Shape{2, 2}),
			b:     raw(t, []float64{2, 4}, tensor.Shape{2}),
			shape: tensor.Shape{2, 2},
			want:  []float64{1, 1, 3, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertData(t, tt.op(tt.a, tt.b), tt.shape, tt.want)
		})
	}
}

func TestBinary_IncompatiblePanics(t *testing.T) {
	backend := New()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for incompatible shapes")
		}
	}()
	backend.Add(raw(t, []float64{1, 2, 3}, tensor.Shape{3}), raw(t, []float64{1, 2}, tensor.Shape{2}))
}

func TestBinary_ParallelMatchesSequential(t *testing.T) {
	n := 10000
	data := make([]float64, n)
	for i := range data {
		data[i] = float64(i) * 0.001
	}
	a := raw(t, data, tensor.Shape{n})
	b := raw(t, []float64{3}, tensor.Shape{1})

	par := NewWithConfig(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 16})
	seq := NewWithConfig(parallel.Sequential())

	got := par.Mul(par.Exp(a), b)
	want := seq.Mul(seq.Exp(a), b)
	assertData(t, got, tensor.Shape{n}, want.Data())
}

func TestAtan2(t *testing.T) {
	backend := New()
	y := raw(t, []float64{1, -1, 0}, tensor.Shape{3})
	x := raw(t, []float64{1, 1, -1}, tensor.Shape{3})
	assertData(t, backend.Atan2(y, x), tensor.Shape{3}, []float64{math.Pi / 4, -math.Pi / 4, math.Pi})
}

func TestCompileCheck(t *testing.T) {
	var b tensor.Backend = New()
	if b.Name() != "CPU" {
		t.Errorf("Name() = %s, want CPU", b.Name())
	}
}

func TestBroadcastIndex(t *testing.T) {
	// [3,1] read through [2,3,4]: the offset follows axis 1 only.
	bi := newBroadcastIndex(tensor.Shape{3, 1}, tensor.Shape{2, 3, 4})
	for flat := 0; flat < 24; flat++ {
		want := (flat / 4) % 3
		if got := bi.at(flat); got != want {
			t.Errorf("at(%d) = %d, want %d", flat, got, want)
		}
	}

	scalar := newBroadcastIndex(tensor.Shape{}, tensor.Shape{2, 2})
	for flat := 0; flat < 4; flat++ {
		if got := scalar.at(flat); got != 0 {
			t.Errorf("scalar at(%d) = %d, want 0", flat, got)
		}
	}
}
