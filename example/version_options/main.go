// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"go.yaml.in/emit"
)

type Config struct {
	Name  string   `yaml:"name"`
	Items []string `yaml:"items"`
}

func main() {
	cfg := Config{
		Name:  "test",
		Items: []string{"apple", "banana", "cherry"},
	}
	docs := []any{cfg, "second"}

	fmt.Println("Example: %YAML directives and option presets")

	fmt.Println("=== WithVersion(1, 1) ===")
	out, _ := emit.DumpAll(docs, emit.WithVersion(1, 1))
	fmt.Print(string(out))

	fmt.Println("=== WithVersion(1, 2) ===")
	out, _ = emit.DumpAll(docs, emit.WithVersion(1, 2))
	fmt.Print(string(out))

	// A preset is an option made of other options.
	compact := emit.CombineOptions(
		emit.WithIndent(3),
		emit.WithSequenceStyle(emit.FlowStyle),
	)
	fmt.Println("=== compact preset ===")
	out, _ = emit.Dump(&cfg, compact)
	fmt.Print(string(out))

	fmt.Println("=== compact preset with WithSequenceStyle(BlockStyle) override ===")
	out, _ = emit.Dump(&cfg, compact, emit.WithSequenceStyle(emit.BlockStyle))
	fmt.Print(string(out))

	preset, err := emit.OptionsYAML("version: '1.2'\nexplicit-end: true\n")
	if err != nil {
		panic(err)
	}
	fmt.Println("=== preset from YAML ===")
	out, _ = emit.Dump(&cfg, preset)
	fmt.Print(string(out))

	if _, err := emit.Dump(&cfg, emit.WithVersion(2, 0)); err != nil {
		fmt.Println("\nUnsupported version:", err)
	}
}
