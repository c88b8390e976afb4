// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log"

	"go.yaml.in/emit"
)

func main() {
	fmt.Println("=== Building YAML Nodes Programmatically ===")

	environment := func(db string, debug bool) *emit.Node {
		return emit.NewMapping(
			emit.NewScalar("database"), emit.NewScalar(db),
			emit.NewScalar("debug"), emit.NewTaggedScalar("tag:yaml.org,2002:bool", fmt.Sprint(debug)),
		)
	}
	ports := emit.NewSequence(emit.NewTaggedScalar(emit.IntTag, "80"), emit.NewTaggedScalar(emit.IntTag, "443"))
	ports.Style = emit.FlowStyle

	root := emit.NewMapping(
		emit.NewScalar("production"), environment("prod.db", false),
		emit.NewScalar("development"), environment("dev.db", true),
		emit.NewScalar("ports"), ports,
		emit.NewScalar("owner"), &emit.Node{Kind: emit.ScalarNode, Tag: "!team", Value: "ops"},
	)

	out, err := emit.Serialize(root, emit.WithIndent(4), emit.WithExplicitStart())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Generated YAML with custom formatting:")
	fmt.Print(out)

	out, err = emit.Serialize(root, emit.WithSortKeys(), emit.WithMappingStyle(emit.FlowStyle))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Sorted flow mapping:")
	fmt.Print(out)

	fmt.Printf("Root has %d keys, production.debug = %s\n",
		root.Len(), root.Lookup(emit.NewScalar("production")).Lookup(emit.NewScalar("debug")).Value)
}
