// Package transform implements bijective maps between constrained supports
// and unconstrained real space.
//
// Every transform exposes three operations:
//
//	Forward(x)     constrained   -> unconstrained
//	Backward(y)    unconstrained -> constrained
//	JacobianDet(y) log|det ∂Backward/∂y|, evaluated at the unconstrained point
//
// Transforms are immutable and safe for concurrent use. Parameterless ones are
// shared singletons (Log(), Ordered(), StickBreaking(), ...). Parameterised
// ones are built with NewInterval, NewLowerBound, NewUpperBound and
// NewCholeskyCovPacked, and can be composed with NewChain or Parse:
//
//	t, _ := transform.Parse("stickbreaking+interval(0,1)")
//	y, _ := t.Forward(x)
//	x2, _ := t.Backward(y)
//	logJac, _ := t.JacobianDet(y)
//
// All operations accept leading batch dimensions. Simplex, ordered and packed
// Cholesky transforms act along the last axis.
//
// Operations run on whatever backend the input tensor is bound to. On an
// autodiff backend the computation is recorded and can be differentiated.
package transform
