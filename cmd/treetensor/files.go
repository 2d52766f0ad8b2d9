package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/born-ml/treetensor/internal/literal"
	"github.com/born-ml/treetensor/internal/serialization"
	"github.com/born-ml/treetensor/internal/tree"
)

const (
	extBorn        = ".born"
	extSafeTensors = ".safetensors"
)

// load reads the file at path. Archives give their tree as stored; literal
// documents are converted to tensors with the catalog defaults, so a
// top-level list gives a single tensor.
func (a *app) load(path string) (any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case extBorn:
		root, header, err := serialization.LoadFile(path)
		if err != nil {
			return nil, err
		}
		a.log.WithFields(logrus.Fields{
			"path":    path,
			"tensors": len(header.Tensors),
			"version": header.Version,
		}).Debug("archive loaded")
		return root, nil

	case extSafeTensors:
		//nolint:gosec // G304: File path comes from user input, which is expected for loading
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		root, _, err := serialization.ReadSafeTensors(bufio.NewReader(f))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return root, nil

	default:
		doc, err := literal.ReadFile(path)
		if err != nil {
			return nil, err
		}
		v, err := a.catalog.Call("tensor", doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return v, nil
	}
}

// save writes v to path in the format named by its extension. Archives
// need a tree; YAML takes any value.
func (a *app) save(path string, v any) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return writeFile(path, func(w io.Writer) error {
			return literal.Encode(w, v)
		})
	}

	root, ok := v.(*tree.Node)
	if !ok {
		return fmt.Errorf("%s: cannot store %T, a tree is required", path, v)
	}
	metadata := map[string]string{"producer": "treetensor " + version}

	switch ext {
	case extBorn:
		return serialization.SaveFile(path, root, metadata)
	case extSafeTensors:
		return writeFile(path, func(w io.Writer) error {
			return serialization.WriteSafeTensors(w, root, metadata)
		})
	default:
		return fmt.Errorf("%s: unsupported output format %q (use .born, .safetensors, .yaml or .yml)", path, ext)
	}
}

// writeFile creates path and writes it through a buffered writer.
func writeFile(path string, write func(io.Writer) error) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for saving
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", closeErr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}
	return nil
}
