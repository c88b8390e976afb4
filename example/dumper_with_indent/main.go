// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log"

	"go.yaml.in/emit"
)

type Service struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Ports       []int             `yaml:"ports,omitempty"`
	Labels      map[string]string `yaml:"labels,omitempty"`
}

func show(title string, v any, opts ...emit.Option) {
	out, err := emit.Dump(v, opts...)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("--- %s\n%s\n", title, out)
}

func main() {
	svc := Service{
		Name:        "gateway",
		Description: "Routes external traffic to the internal services and terminates TLS for every public hostname.",
		Ports:       []int{80, 443},
		Labels:      map[string]string{"tier": "edge", "team": "platform"},
	}

	for _, indent := range []int{2, 4, 8} {
		show(fmt.Sprintf("indent %d", indent), &svc, emit.WithIndent(indent))
	}

	// Long plain scalars fold at spaces once a line passes the width.
	show("width 40", &svc, emit.WithLineWidth(40))
	show("unlimited width", &svc, emit.WithLineWidth(emit.UnlimitedWidth))

	show("canonical", &svc, emit.WithCanonical())
}
