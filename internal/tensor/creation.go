package tensor

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice(data []float64, shape Shape, b Backend) (*Tensor, error) {
	raw, err := RawFromSlice(data, shape)
	if err != nil {
		return nil, err
	}
	return New(raw, b), nil
}

// MustFromSlice is FromSlice for literals known to be well formed.
// Panics on a shape/length mismatch.
func MustFromSlice(data []float64, shape Shape, b Backend) *Tensor {
	t, err := FromSlice(data, shape, b)
	if err != nil {
		panic(err)
	}
	return t
}

// Vector creates a 1-D tensor holding values.
func Vector(b Backend, values ...float64) *Tensor {
	return MustFromSlice(values, Shape{len(values)}, b)
}

// Scalar creates a 0-D tensor.
func Scalar(value float64, b Backend) *Tensor {
	return New(FullRaw(Shape{}, value), b)
}

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	t := tensor.Zeros(tensor.Shape{3, 4}, backend)
func Zeros(shape Shape, b Backend) *Tensor {
	return New(MustRaw("zeros", shape), b)
}

// Full creates a tensor filled with a specific value.
func Full(shape Shape, value float64, b Backend) *Tensor {
	return New(FullRaw(shape, value), b)
}
