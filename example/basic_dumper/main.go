// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Example: Basic Dumper demonstrates dumping a struct through the
// representer.

package main

import (
	"fmt"

	"go.yaml.in/emit"
)

type Config struct {
	Name    string   `yaml:"name"`
	Version string   `yaml:"version"`
	Tags    []string `yaml:"tags,omitempty"`
	Ratio   float64  `yaml:"ratio"`
}

func main() {
	fmt.Println("Example: Basic Dumper - Single Document")

	cfg := Config{
		Name:    "service1",
		Version: "1.0.0",
		Tags:    []string{"prod"},
		Ratio:   0.25,
	}

	out, err := emit.Dump(&cfg)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Output:\n%s", out)

	out, err = emit.Dump(&cfg, emit.WithNumberFormat(emit.DecimalFormat))
	if err != nil {
		panic(err)
	}
	fmt.Printf("Decimal floats:\n%s", out)
}
