// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"

	"go.yaml.in/emit"
)

type Config struct {
	Name    string   `yaml:"name"`
	Version string   `yaml:"version"`
	Tags    []string `yaml:"tags,omitempty"`
}

func main() {
	fmt.Println("Example: Serializer - Multiple Documents")

	var buf bytes.Buffer
	s, err := emit.NewSerializerTo(&buf, emit.WithExplicitEnd())
	if err != nil {
		panic(err)
	}
	if err := s.Open(); err != nil {
		panic(err)
	}

	configs := []Config{
		{Name: "service1", Version: "1.0.0"},
		{Name: "service2", Version: "2.0.0", Tags: []string{"dev"}},
		{Name: "service3", Version: "3.0.0"},
	}

	for _, cfg := range configs {
		node, err := emit.Represent(&cfg)
		if err != nil {
			panic(err)
		}
		if err := s.Serialize(node); err != nil {
			panic(err)
		}
	}

	if err := s.Close(); err != nil {
		panic(err)
	}

	fmt.Printf("Output (%d documents):\n%s", s.Documents(), buf.String())
}
