// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Conversion of parsed yaml.v3 documents into emit node trees.

package main

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"go.yaml.in/emit"
)

// converter turns parsed nodes into emit nodes. Aliases are expanded in
// place; comments and anchors are dropped.
type converter struct {
	// keepFlow carries flow collections over from the input. Scalar
	// styles are always kept so quoted strings stay strings.
	keepFlow bool
	// active holds the aliased nodes being expanded, to stop recursion.
	active map[*yaml.Node]bool
}

func newConverter(keepFlow bool) *converter {
	return &converter{keepFlow: keepFlow, active: make(map[*yaml.Node]bool)}
}

func (c *converter) document(doc *yaml.Node) (*emit.Node, error) {
	if doc.Kind != yaml.DocumentNode {
		return c.node(doc)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	return c.node(doc.Content[0])
}

func (c *converter) node(n *yaml.Node) (*emit.Node, error) {
	out := &emit.Node{Value: n.Value}
	switch n.Kind {
	case yaml.AliasNode:
		if c.active[n.Alias] {
			return nil, fmt.Errorf("line %d: recursive alias *%s", n.Line, n.Value)
		}
		c.active[n.Alias] = true
		defer delete(c.active, n.Alias)
		return c.node(n.Alias)
	case yaml.ScalarNode:
		out.Kind = emit.ScalarNode
	case yaml.SequenceNode:
		out.Kind = emit.SequenceNode
	case yaml.MappingNode:
		out.Kind = emit.MappingNode
	default:
		return nil, fmt.Errorf("line %d: unexpected node kind %d", n.Line, n.Kind)
	}
	// The resolved tag travels with the node so the writer can tell a
	// number from a string that looks like one.
	out.Tag = n.Tag
	out.Style = style(n.Style)
	if out.Style == emit.FlowStyle && !c.keepFlow {
		out.Style = emit.AnyStyle
	}
	for _, child := range n.Content {
		converted, err := c.node(child)
		if err != nil {
			return nil, err
		}
		out.Content = append(out.Content, converted)
	}
	return out, nil
}

func style(s yaml.Style) emit.Style {
	switch {
	case s&yaml.DoubleQuotedStyle != 0:
		return emit.DoubleQuotedStyle
	case s&yaml.SingleQuotedStyle != 0:
		return emit.SingleQuotedStyle
	case s&yaml.LiteralStyle != 0:
		return emit.LiteralStyle
	case s&yaml.FoldedStyle != 0:
		return emit.FoldedStyle
	case s&yaml.FlowStyle != 0:
		return emit.FlowStyle
	}
	return emit.AnyStyle
}
