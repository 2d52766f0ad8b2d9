// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package treetensor

import "github.com/born-ml/treetensor/internal/treetensor"

// Construction and factories.
var (
	Tensor      = treetensor.Tensor
	Clone       = treetensor.Clone
	Zeros       = treetensor.Zeros
	ZerosLike   = treetensor.ZerosLike
	Ones        = treetensor.Ones
	OnesLike    = treetensor.OnesLike
	Empty       = treetensor.Empty
	EmptyLike   = treetensor.EmptyLike
	Full        = treetensor.Full
	FullLike    = treetensor.FullLike
	Randn       = treetensor.Randn
	RandnLike   = treetensor.RandnLike
	Randint     = treetensor.Randint
	RandintLike = treetensor.RandintLike
)

// Reductions over every leaf.
var (
	All    = treetensor.All
	Any    = treetensor.Any
	Min    = treetensor.Min
	Max    = treetensor.Max
	Sum    = treetensor.Sum
	Equal  = treetensor.Equal
	Size   = treetensor.Size
	Nbytes = treetensor.Nbytes
)

// Element-wise comparisons.
var (
	Eq = treetensor.Eq
	Ne = treetensor.Ne
	Lt = treetensor.Lt
	Le = treetensor.Le
	Gt = treetensor.Gt
	Ge = treetensor.Ge
)

// Element-wise math. The Inplace variants overwrite their first argument.
var (
	Abs            = treetensor.Abs
	AbsInplace     = treetensor.AbsInplace
	Sign           = treetensor.Sign
	Neg            = treetensor.Neg
	NegInplace     = treetensor.NegInplace
	Round          = treetensor.Round
	RoundInplace   = treetensor.RoundInplace
	Floor          = treetensor.Floor
	FloorInplace   = treetensor.FloorInplace
	Ceil           = treetensor.Ceil
	CeilInplace    = treetensor.CeilInplace
	Sigmoid        = treetensor.Sigmoid
	SigmoidInplace = treetensor.SigmoidInplace
	Exp            = treetensor.Exp
	ExpInplace     = treetensor.ExpInplace
	Exp2           = treetensor.Exp2
	Exp2Inplace    = treetensor.Exp2Inplace
	Sqrt           = treetensor.Sqrt
	SqrtInplace    = treetensor.SqrtInplace
	Log            = treetensor.Log
	LogInplace     = treetensor.LogInplace
	Log2           = treetensor.Log2
	Log2Inplace    = treetensor.Log2Inplace
	Log10          = treetensor.Log10
	Log10Inplace   = treetensor.Log10Inplace
	Clamp          = treetensor.Clamp
	ClampInplace   = treetensor.ClampInplace
	Add            = treetensor.Add
	Sub            = treetensor.Sub
	Mul            = treetensor.Mul
	Div            = treetensor.Div
	Pow            = treetensor.Pow
)

// Linear algebra.
var (
	Dot    = treetensor.Dot
	Matmul = treetensor.Matmul
	MM     = treetensor.MM
)

// Queries returning object trees.
var (
	Shape  = treetensor.Shape
	ToList = treetensor.ToList
)
