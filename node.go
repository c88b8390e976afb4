// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Node model: the value tree rendered by the serializer.

package emit

import (
	"strings"
)

// Kind identifies the type of a YAML node.
type Kind uint32

const (
	ScalarNode Kind = 1 << iota
	SequenceNode
	MappingNode
)

func (k Kind) String() string {
	switch k {
	case ScalarNode:
		return "scalar"
	case SequenceNode:
		return "sequence"
	case MappingNode:
		return "mapping"
	}
	return "unknown"
}

// Style controls the presentation of a YAML node.
//
// Scalars take one of the scalar styles and collections one of
// [BlockStyle] or [FlowStyle]. A style that does not apply to the node's
// kind is treated as [AnyStyle].
type Style uint32

const (
	AnyStyle   Style = 0
	PlainStyle Style = 1 << iota
	SingleQuotedStyle
	DoubleQuotedStyle
	LiteralStyle
	FoldedStyle
	BlockStyle
	FlowStyle
)

const (
	scalarStyles     = PlainStyle | SingleQuotedStyle | DoubleQuotedStyle | LiteralStyle | FoldedStyle
	collectionStyles = BlockStyle | FlowStyle
)

func (s Style) String() string {
	if s == AnyStyle {
		return "any"
	}
	var names []string
	for _, style := range []struct {
		style Style
		name  string
	}{
		{PlainStyle, "plain"},
		{SingleQuotedStyle, "single-quoted"},
		{DoubleQuotedStyle, "double-quoted"},
		{LiteralStyle, "literal"},
		{FoldedStyle, "folded"},
		{BlockStyle, "block"},
		{FlowStyle, "flow"},
	} {
		if s&style.style != 0 {
			names = append(names, style.name)
		}
	}
	if len(names) == 0 {
		return "unknown"
	}
	return strings.Join(names, "|")
}

// Node represents an element in the YAML document hierarchy.
//
// The serializer never modifies a node; callers may share subtrees
// between documents.
//
// Example:
//
//	mapping:
//	  name: Yams
//	  tags: [yaml, swift]
//
//	&Node{Kind: MappingNode, Content: []*Node{
//		{Kind: ScalarNode, Value: "name"},
//		{Kind: ScalarNode, Value: "Yams"},
//		{Kind: ScalarNode, Value: "tags"},
//		{Kind: SequenceNode, Style: FlowStyle, Content: []*Node{
//			{Kind: ScalarNode, Value: "yaml"},
//			{Kind: ScalarNode, Value: "swift"},
//		}},
//	}}
type Node struct {
	// Kind defines whether the node is a scalar, a sequence or a mapping.
	Kind Kind

	// Style allows customizing the appearance of the node in the tree.
	Style Style

	// Tag holds the YAML tag defining the data type for the value.
	// Both the short form (!!str) and the long form
	// (tag:yaml.org,2002:str) are accepted. When empty the tag is the
	// default one for the node's kind, see [ResolveTag].
	Tag string

	// Value holds the unescaped and unquoted representation of a scalar.
	Value string

	// Content holds the items of a sequence, or the keys and values of a
	// mapping in alternating order.
	Content []*Node
}

// NewScalar returns a plain string scalar without an explicit tag.
func NewScalar(value string) *Node {
	return &Node{Kind: ScalarNode, Value: value}
}

// NewTaggedScalar returns a scalar carrying the given tag.
func NewTaggedScalar(tag, value string) *Node {
	return &Node{Kind: ScalarNode, Tag: tag, Value: value}
}

// NewSequence returns a sequence holding items.
func NewSequence(items ...*Node) *Node {
	return &Node{Kind: SequenceNode, Content: items}
}

// NewMapping returns a mapping from alternating keys and values.
func NewMapping(pairs ...*Node) *Node {
	return &Node{Kind: MappingNode, Content: pairs}
}

// IsZero returns whether the node has all of its fields unset.
func (n *Node) IsZero() bool {
	return n.Kind == 0 && n.Style == 0 && n.Tag == "" && n.Value == "" && n.Content == nil
}

// Len returns the number of items of a sequence or entries of a mapping.
// Scalars have length zero.
func (n *Node) Len() int {
	switch n.Kind {
	case SequenceNode:
		return len(n.Content)
	case MappingNode:
		return len(n.Content) / 2
	}
	return 0
}

// Keys returns the keys of a mapping in insertion order.
func (n *Node) Keys() []*Node {
	if n.Kind != MappingNode {
		return nil
	}
	keys := make([]*Node, 0, n.Len())
	for i := 0; i+1 < len(n.Content); i += 2 {
		keys = append(keys, n.Content[i])
	}
	return keys
}

// Values returns the values of a mapping in insertion order, or the items
// of a sequence.
func (n *Node) Values() []*Node {
	switch n.Kind {
	case SequenceNode:
		return n.Content
	case MappingNode:
		values := make([]*Node, 0, n.Len())
		for i := 0; i+1 < len(n.Content); i += 2 {
			values = append(values, n.Content[i+1])
		}
		return values
	}
	return nil
}

// Lookup returns the value of the first mapping entry whose key is equal to
// key, or nil when there is none.
func (n *Node) Lookup(key *Node) *Node {
	if n.Kind != MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Equal(key) {
			return n.Content[i+1]
		}
	}
	return nil
}

// Equal reports whether n and other describe the same value: same kind,
// same resolved tag, same scalar content and equal children in the same
// order. Styles are ignored.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind || n.Value != other.Value || len(n.Content) != len(other.Content) {
		return false
	}
	if ResolveTag(n) != ResolveTag(other) {
		return false
	}
	for i := range n.Content {
		if !n.Content[i].Equal(other.Content[i]) {
			return false
		}
	}
	return true
}
