// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Generic kernels for float32, float64, int32, int64, uint8 and bool
//   - NumPy-compatible broadcasting and dtype promotion
//   - In-place variants of the unary kernels
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/treetensor/backend/cpu"
//	    "github.com/born-ml/treetensor/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x, _ := tensor.FromLiteral([]any{1.0, 2.0}, tensor.DefaultTypes)
//	    y, _ := backend.Binary(tensor.OpMul, x, x) // tensor([1., 4.])
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each kernel call is isolated
// and does not share mutable state.
package cpu
