// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package distribution provides reference log-densities and the adapter that
// evaluates a distribution in the unconstrained space of a transform.
//
// Example:
//
//	base, _ := distribution.NewExponential(2.0)
//	d, _ := distribution.NewTransformed(base, transform.Log())
//	logp, _ := d.LogP(d.InitialValue())
package distribution

import (
	"github.com/born-ml/bijector/internal/distribution"
)

// Distribution is a log-density with a default point in its support.
type Distribution = distribution.Distribution

// ErrInvalidParameter is returned for parameters outside a distribution's domain.
var ErrInvalidParameter = distribution.ErrInvalidParameter

type (
	Normal      = distribution.Normal
	Exponential = distribution.Exponential
	Uniform     = distribution.Uniform
	Dirichlet   = distribution.Dirichlet
	Transformed = distribution.Transformed

	MAPOptions = distribution.MAPOptions
	MAPResult  = distribution.MAPResult
)

var (
	NewNormal      = distribution.NewNormal
	NewExponential = distribution.NewExponential
	NewUniform     = distribution.NewUniform
	NewDirichlet   = distribution.NewDirichlet
	NewTransformed = distribution.NewTransformed

	// FindMAP maximises a Transformed log-density in unconstrained space.
	FindMAP = distribution.FindMAP
)
