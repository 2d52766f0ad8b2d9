// Package main provides the treetensor CLI.
//
// Usage:
//
//	treetensor ops
//	treetensor apply <op> [file...] [--arg value...]
//	treetensor convert <in> <out>
//	treetensor version
//
// Trees are read from .yaml, .yml, .json, .toml, .born and .safetensors files.
package main

import (
	"os"
)

const version = "v0.1.0-dev"

// configFileName is looked up as treetensor.{yaml,json,toml} in the working
// directory and in $HOME/.config/treetensor.
const configFileName = "treetensor"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
