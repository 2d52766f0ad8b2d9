// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/treetensor/internal/tensor"

// Backend defines the kernels tensor tree operations are lifted over.
// Every kernel reports failures as errors.
//
// Implementations:
//   - backend/cpu: Pure Go
//
// Example:
//
//	import (
//	    "github.com/born-ml/treetensor/tensor"
//	    "github.com/born-ml/treetensor/backend/cpu"
//	)
//
//	backend := cpu.New()
//	x, _ := tensor.FromLiteral([]any{1.0, 4.0}, tensor.DefaultTypes)
//	y, _ := backend.Unary(tensor.OpSqrt, x, false) // tensor([1., 2.])
type Backend = tensor.Backend

// UnaryOp names an element-wise unary function.
type UnaryOp = tensor.UnaryOp

// Unary operations.
const (
	OpAbs     UnaryOp = tensor.OpAbs
	OpNeg     UnaryOp = tensor.OpNeg
	OpSign    UnaryOp = tensor.OpSign
	OpRound   UnaryOp = tensor.OpRound
	OpFloor   UnaryOp = tensor.OpFloor
	OpCeil    UnaryOp = tensor.OpCeil
	OpSigmoid UnaryOp = tensor.OpSigmoid
	OpExp     UnaryOp = tensor.OpExp
	OpExp2    UnaryOp = tensor.OpExp2
	OpSqrt    UnaryOp = tensor.OpSqrt
	OpLog     UnaryOp = tensor.OpLog
	OpLog2    UnaryOp = tensor.OpLog2
	OpLog10   UnaryOp = tensor.OpLog10
)

// BinaryOp names an element-wise binary function.
type BinaryOp = tensor.BinaryOp

// Binary operations.
const (
	OpAdd     BinaryOp = tensor.OpAdd
	OpSub     BinaryOp = tensor.OpSub
	OpMul     BinaryOp = tensor.OpMul
	OpDiv     BinaryOp = tensor.OpDiv
	OpPow     BinaryOp = tensor.OpPow
	OpMinimum BinaryOp = tensor.OpMinimum
	OpMaximum BinaryOp = tensor.OpMaximum
	OpAnd     BinaryOp = tensor.OpAnd
	OpOr      BinaryOp = tensor.OpOr
)

// CompareOp names an element-wise comparison.
type CompareOp = tensor.CompareOp

// Comparison operations.
const (
	OpEq CompareOp = tensor.OpEq
	OpNe CompareOp = tensor.OpNe
	OpLt CompareOp = tensor.OpLt
	OpLe CompareOp = tensor.OpLe
	OpGt CompareOp = tensor.OpGt
	OpGe CompareOp = tensor.OpGe
)

// ReduceOp names a whole-tensor reduction.
type ReduceOp = tensor.ReduceOp

// Reductions.
const (
	ReduceAll ReduceOp = tensor.ReduceAll
	ReduceAny ReduceOp = tensor.ReduceAny
	ReduceSum ReduceOp = tensor.ReduceSum
	ReduceMin ReduceOp = tensor.ReduceMin
	ReduceMax ReduceOp = tensor.ReduceMax
)
