// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package transform provides bijections between constrained supports and ℝⁿ.
//
// Each Transform maps a constrained value x to an unconstrained y with
// Forward, maps back with Backward, and reports log|det ∂Backward(y)/∂y| with
// JacobianDet. Transforms are immutable and safe for concurrent use.
//
// Example:
//
//	backend := cpu.New()
//	t, _ := transform.Parse("stickbreaking")
//	y := tensor.Vector(backend, 0.3, -1.2)
//	x, _ := t.Backward(y)      // a point on the 3-simplex
//	logdet, _ := t.JacobianDet(y)
package transform

import (
	"github.com/born-ml/bijector/internal/transform"
)

// Transform is a bijection with a log-Jacobian of its inverse.
type Transform = transform.Transform

// Kind identifies a transform family.
type Kind = transform.Kind

// Transform kinds.
const (
	KindUnknown           = transform.KindUnknown
	KindLog               = transform.KindLog
	KindLogExpM1          = transform.KindLogExpM1
	KindLogOdds           = transform.KindLogOdds
	KindInterval          = transform.KindInterval
	KindLowerBound        = transform.KindLowerBound
	KindUpperBound        = transform.KindUpperBound
	KindOrdered           = transform.KindOrdered
	KindSumTo1            = transform.KindSumTo1
	KindStickBreaking     = transform.KindStickBreaking
	KindCircular          = transform.KindCircular
	KindCholeskyCovPacked = transform.KindCholeskyCovPacked
	KindChain             = transform.KindChain
)

// Errors returned by transforms and the parser. Test with errors.Is.
var (
	ErrNotImplemented   = transform.ErrNotImplemented
	ErrUnknownTransform = transform.ErrUnknownTransform
	ErrBadArguments     = transform.ErrBadArguments
	ErrEmptyChain       = transform.ErrEmptyChain
	ErrInvalidShape     = transform.ErrInvalidShape
)

// Concrete transform types.
type (
	LogTransform               = transform.LogTransform
	LogExpM1Transform          = transform.LogExpM1Transform
	LogOddsTransform           = transform.LogOddsTransform
	CircularTransform          = transform.CircularTransform
	IntervalTransform          = transform.IntervalTransform
	LowerBoundTransform        = transform.LowerBoundTransform
	UpperBoundTransform        = transform.UpperBoundTransform
	OrderedTransform           = transform.OrderedTransform
	SumTo1Transform            = transform.SumTo1Transform
	StickBreakingTransform     = transform.StickBreakingTransform
	CholeskyCovPackedTransform = transform.CholeskyCovPackedTransform
	Chain                      = transform.Chain
)

// Unimplemented can be embedded to leave Forward, Backward or JacobianDet
// returning ErrNotImplemented.
type Unimplemented = transform.Unimplemented

// Option configures a transform at construction.
type Option = transform.Option

// Shared parameterless transforms.
var (
	Log           = transform.Log
	LogExpM1      = transform.LogExpM1
	LogOdds       = transform.LogOdds
	Circular      = transform.Circular
	Ordered       = transform.Ordered
	SumTo1        = transform.SumTo1
	StickBreaking = transform.StickBreaking
)

// Constructors.
var (
	NewInterval          = transform.NewInterval
	NewLowerBound        = transform.NewLowerBound
	NewUpperBound        = transform.NewUpperBound
	NewStickBreaking     = transform.NewStickBreaking
	NewCholeskyCovPacked = transform.NewCholeskyCovPacked
	NewChain             = transform.NewChain
)

// WithEps sets the legacy StickBreaking eps.
//
// Deprecated: the value is ignored. Passing it only logs a warning.
var WithEps = transform.WithEps

// Registry and helpers.
var (
	Parse                  = transform.Parse
	Lookup                 = transform.Lookup
	Names                  = transform.Names
	Arity                  = transform.Arity
	AsTensor               = transform.AsTensor
	IsElementwise          = transform.IsElementwise
	ElementwiseJacobianDet = transform.ElementwiseJacobianDet
	SetLogger              = transform.SetLogger
)
