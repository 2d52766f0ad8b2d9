// Package serialization saves trees of tensors to the .born archive format and
// exchanges them with SafeTensors files.
//
// The .born format stores every leaf tensor of a tree together with its key
// path, so a tree read back has the same keys, key order, dtypes and shapes:
//
//	Format Structure:
//	  [4 bytes: Magic "BORN"]
//	  [4 bytes: Version (uint32 LE)]
//	  [4 bytes: Flags (uint32 LE)]
//	  [4 bytes: Reserved]
//	  [8 bytes: Header Size (uint64 LE)]
//	  [8 bytes: Data Size (uint64 LE)]
//	  [32 bytes: SHA-256 of the data section]
//	  [Header: JSON metadata]
//	  [Tensor data: raw bytes, 64-byte aligned]
//
// SafeTensors files are flat: leaves are named by their dotted path and
// nesting is rebuilt by splitting names on dots.
//
// Example usage:
//
//	// Save a tree
//	if err := serialization.SaveFile("params.born", params, nil); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load it back
//	params, header, err := serialization.LoadFile("params.born")
//	if err != nil {
//	    log.Fatal(err)
//	}
package serialization
