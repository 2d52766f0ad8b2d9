// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/treetensor/internal/backend/cpu"
	"github.com/born-ml/treetensor/tensor"
)

// Backend represents the CPU backend implementation.
//
// CPU backend provides pure Go implementations of every kernel the tree
// operation catalog needs.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/treetensor/backend/cpu"
//	    "github.com/born-ml/treetensor/treetensor"
//	)
//
//	func main() {
//	    catalog := treetensor.NewCatalog(cpu.New())
//	    out, _ := catalog.Call("abs", map[string]any{"a": []any{-1, 2}})
//	}
func New() *Backend {
	return internalcpu.New()
}
