// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Style and tag resolution.
// Computes the effective tag, implicitness and presentation style of a node
// from its explicit annotations and the configured defaults, and the order
// in which mapping entries are emitted.

package emit

import (
	"sort"
	"strings"
)

const longTagPrefix = "tag:yaml.org,2002:"

// Tags of the YAML core schema, in long form.
const (
	NullTag      = longTagPrefix + "null"
	BoolTag      = longTagPrefix + "bool"
	StrTag       = longTagPrefix + "str"
	IntTag       = longTagPrefix + "int"
	FloatTag     = longTagPrefix + "float"
	TimestampTag = longTagPrefix + "timestamp"
	SeqTag       = longTagPrefix + "seq"
	MapTag       = longTagPrefix + "map"
	BinaryTag    = longTagPrefix + "binary"
	MergeTag     = longTagPrefix + "merge"
)

// longTag expands the !! shorthand.
func longTag(tag string) string {
	if strings.HasPrefix(tag, "!!") {
		return longTagPrefix + tag[2:]
	}
	return tag
}

// ShortTag abbreviates a core schema tag to its !! form. Other tags are
// returned unchanged.
func ShortTag(tag string) string {
	if strings.HasPrefix(tag, longTagPrefix) {
		return "!!" + tag[len(longTagPrefix):]
	}
	return tag
}

// defaultTag returns the core schema tag a node of kind k has when no tag
// is given.
func defaultTag(k Kind) string {
	switch k {
	case ScalarNode:
		return StrTag
	case SequenceNode:
		return SeqTag
	case MappingNode:
		return MapTag
	}
	return ""
}

// ResolveTag returns the effective tag of n: its explicit tag in long form,
// or the default tag for its kind. Nil and zero nodes resolve to the null
// tag.
func ResolveTag(n *Node) string {
	if n == nil || n.IsZero() {
		return NullTag
	}
	if n.Tag != "" {
		return longTag(n.Tag)
	}
	return defaultTag(n.Kind)
}

// IsImplicit reports whether the resolved tag of n is the default tag for
// its kind, and so need not be written out.
func IsImplicit(n *Node) bool {
	if n == nil {
		return false
	}
	tag := ResolveTag(n)
	return tag != "" && tag == defaultTag(n.Kind)
}

// ResolveStyle returns the concrete style n is emitted with.
//
// An explicit style compatible with the node's kind wins. Otherwise
// collections fall back to defaultStyle, then to [BlockStyle], and scalars
// to defaultStyle, then to [PlainStyle]. The result is never [AnyStyle].
// A nil node is written as a plain null.
func ResolveStyle(n *Node, defaultStyle Style) Style {
	if n == nil {
		return PlainStyle
	}
	allowed, fallback := scalarStyles, PlainStyle
	if n.Kind == SequenceNode || n.Kind == MappingNode {
		allowed, fallback = collectionStyles, BlockStyle
	}
	if style := pickStyle(n.Style & allowed); style != AnyStyle {
		return style
	}
	if style := pickStyle(defaultStyle & allowed); style != AnyStyle {
		return style
	}
	return fallback
}

// pickStyle reduces a style set to its lowest bit.
func pickStyle(s Style) Style {
	return s & -s
}

// sortedEntries returns the key/value index pairs of a mapping in emission
// order. With sortKeys the entries are stably sorted by key content, ties
// broken by resolved key tag.
func sortedEntries(n *Node, sortKeys bool) ([][2]int, error) {
	if len(n.Content)%2 != 0 {
		return nil, &NodeError{Problem: "mapping has a key without a value"}
	}
	entries := make([][2]int, 0, len(n.Content)/2)
	for i := 0; i < len(n.Content); i += 2 {
		entries = append(entries, [2]int{i, i + 1})
	}
	if !sortKeys {
		return entries, nil
	}
	for _, e := range entries {
		key := n.Content[e[0]]
		if key != nil && key.Kind != ScalarNode && !key.IsZero() {
			return nil, &NodeError{Problem: "cannot sort mapping with a " + key.Kind.String() + " key"}
		}
	}
	keyValue := func(key *Node) string {
		if key == nil {
			return ""
		}
		return key.Value
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := n.Content[entries[i][0]], n.Content[entries[j][0]]
		if av, bv := keyValue(a), keyValue(b); av != bv {
			return av < bv
		}
		return ResolveTag(a) < ResolveTag(b)
	})
	return entries, nil
}
