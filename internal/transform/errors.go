package transform

import "github.com/pkg/errors"

// Sentinel errors. Returned errors wrap these and can be matched with errors.Is.
var (
	// ErrNotImplemented is returned when a transform does not provide an operation.
	ErrNotImplemented = errors.New("transform: operation not implemented")

	// ErrUnknownTransform is returned by Parse and Lookup for unregistered names.
	ErrUnknownTransform = errors.New("transform: unknown transform")

	// ErrBadArguments indicates invalid construction arguments (arity, type or value).
	ErrBadArguments = errors.New("transform: bad arguments")

	// ErrEmptyChain is returned when a chain is built without children.
	ErrEmptyChain = errors.New("transform: chain requires at least one transform")

	// ErrInvalidShape indicates an input whose rank or last axis does not fit the transform.
	ErrInvalidShape = errors.New("transform: invalid input shape")
)
