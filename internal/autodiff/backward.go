package autodiff

import (
	"fmt"

	"github.com/born-ml/bijector/internal/tensor"
)

var _ tensor.Backend = (*AutodiffBackend[tensor.Backend])(nil)

// BackwardCapable is an interface for backends that support backward pass.
// AutodiffBackend implements this interface.
type BackwardCapable interface {
	tensor.Backend
	// GetTape returns the gradient tape for backward computation.
	GetTape() *GradientTape
}

// GetTape returns the gradient tape (implements BackwardCapable interface).
func (b *AutodiffBackend[B]) GetTape() *GradientTape {
	return b.tape
}

// Backward computes gradients of t, seeded with ones, using the backend's tape.
//
// Returns a map from RawTensor to its gradient.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	x := tensor.Full(tensor.Shape{2}, 1, backend)
//	y := x.Mul(x) // y = x²
//	gradients := autodiff.Backward(y, backend)
//	grad := gradients[x.Raw()] // Get gradient for x
func Backward(t *tensor.Tensor, backend BackwardCapable) map[*tensor.RawTensor]*tensor.RawTensor {
	tape := backend.GetTape()

	if tape.NumOps() == 0 {
		panic("backward: no operations recorded (did you forget to call Tape().StartRecording()?)")
	}

	outputGrad := tensor.FullRaw(t.Shape(), 1)
	return tape.Backward(t.Raw(), outputGrad, backend)
}

// Gradient returns d(Σ f(x))/dx evaluated on inner.
//
// f runs on a fresh AutodiffBackend, so concurrent calls never share a tape.
// For an element-wise f this is the diagonal of its Jacobian. The result
// is bound to inner and carries no gradient history.
func Gradient[B tensor.Backend](inner B, x *tensor.Tensor, f func(*tensor.Tensor) (*tensor.Tensor, error)) (*tensor.Tensor, error) {
	ad := New(inner)
	ad.Tape().StartRecording()

	leaf := x.Detach(ad)
	out, err := f(leaf)
	if err != nil {
		return nil, err
	}
	if out.Backend() != tensor.Backend(ad) {
		return nil, fmt.Errorf("gradient: result is not bound to the recording backend (%s)", out.Backend().Name())
	}
	ad.Tape().StopRecording()

	grads := ad.Tape().Backward(out.Raw(), tensor.FullRaw(out.Shape(), 1), inner)
	grad, ok := grads[leaf.Raw()]
	if !ok {
		return tensor.Zeros(x.Shape(), inner), nil
	}
	return tensor.New(grad, inner), nil
}
