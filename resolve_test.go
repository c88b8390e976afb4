// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"testing"

	"go.yaml.in/emit/internal/testutil/assert"
)

func TestResolveTag(t *testing.T) {
	tests := []struct {
		node     *Node
		tag      string
		implicit bool
	}{
		{NewScalar("a"), StrTag, true},
		{NewTaggedScalar("!!str", "a"), StrTag, true},
		{NewTaggedScalar(StrTag, "a"), StrTag, true},
		{NewTaggedScalar("!!int", "1"), IntTag, false},
		{NewTaggedScalar("!custom", "a"), "!custom", false},
		{NewTaggedScalar("tag:example.com,2000:app", "a"), "tag:example.com,2000:app", false},
		{NewSequence(), SeqTag, true},
		{&Node{Kind: SequenceNode, Tag: "!!seq"}, SeqTag, true},
		{&Node{Kind: SequenceNode, Tag: "!!set"}, longTagPrefix + "set", false},
		{NewMapping(), MapTag, true},
		{&Node{Kind: MappingNode, Tag: "!!omap"}, longTagPrefix + "omap", false},
		{nil, NullTag, false},
		{&Node{}, NullTag, false},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.tag, ResolveTag(tt.node), "ResolveTag(%+v)", tt.node)
		assert.Equalf(t, tt.implicit, IsImplicit(tt.node), "IsImplicit(%+v)", tt.node)
		// Pure: repeated calls agree and the node is untouched.
		assert.Equal(t, ResolveTag(tt.node), ResolveTag(tt.node))
	}

	node := NewTaggedScalar("!!int", "1")
	ResolveTag(node)
	assert.Equal(t, "!!int", node.Tag)
}

func TestResolveStyle(t *testing.T) {
	tests := []struct {
		name  string
		node  *Node
		def   Style
		style Style
	}{
		{"scalar any", NewScalar("a"), AnyStyle, PlainStyle},
		{"scalar explicit", &Node{Kind: ScalarNode, Style: DoubleQuotedStyle}, AnyStyle, DoubleQuotedStyle},
		{"scalar collection style", &Node{Kind: ScalarNode, Style: FlowStyle}, AnyStyle, PlainStyle},
		{"scalar default", NewScalar("a"), LiteralStyle, LiteralStyle},
		{"scalar ignores collection default", NewScalar("a"), FlowStyle, PlainStyle},
		{"sequence any", NewSequence(), AnyStyle, BlockStyle},
		{"sequence default", NewSequence(), FlowStyle, FlowStyle},
		{"sequence explicit", &Node{Kind: SequenceNode, Style: BlockStyle}, FlowStyle, BlockStyle},
		{"sequence scalar style", &Node{Kind: SequenceNode, Style: LiteralStyle}, FlowStyle, FlowStyle},
		{"mapping any", NewMapping(), AnyStyle, BlockStyle},
		{"mapping explicit", &Node{Kind: MappingNode, Style: FlowStyle}, AnyStyle, FlowStyle},
		{"mapping scalar default", NewMapping(), PlainStyle, BlockStyle},
		{"combined bits", &Node{Kind: ScalarNode, Style: SingleQuotedStyle | FoldedStyle}, AnyStyle, SingleQuotedStyle},
		{"nil", nil, AnyStyle, PlainStyle},
		{"nil ignores default", nil, LiteralStyle, PlainStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.style, ResolveStyle(tt.node, tt.def))
		})
	}
}

func TestSortedEntries(t *testing.T) {
	node := NewMapping(
		NewScalar("b"), NewScalar("1"),
		NewScalar("a"), NewScalar("2"),
		NewScalar("c"), NewScalar("3"),
		NewScalar("a"), NewScalar("4"),
	)
	entries, err := sortedEntries(node, false)
	assert.NoError(t, err)
	assert.DeepEqual(t, [][2]int{{0, 1}, {2, 3}, {4, 5}, {6, 7}}, entries)

	entries, err = sortedEntries(node, true)
	assert.NoError(t, err)
	assert.DeepEqual(t, [][2]int{{2, 3}, {6, 7}, {0, 1}, {4, 5}}, entries)

	// A nil key sorts as the empty string.
	entries, err = sortedEntries(NewMapping(NewScalar("a"), NewScalar("1"), nil, NewScalar("2")), true)
	assert.NoError(t, err)
	assert.DeepEqual(t, [][2]int{{2, 3}, {0, 1}}, entries)
}

func TestSortedEntriesErrors(t *testing.T) {
	_, err := sortedEntries(NewMapping(NewScalar("a")), false)
	assert.ErrorMatches(t, `^yaml: invalid node: mapping has a key without a value$`, err)

	_, err = sortedEntries(NewMapping(NewSequence(), NewScalar("a")), false)
	assert.NoError(t, err)

	_, err = sortedEntries(NewMapping(NewSequence(), NewScalar("a")), true)
	assert.ErrorMatches(t, `cannot sort mapping with a sequence key`, err)
}

func TestShortAndLongTag(t *testing.T) {
	assert.Equal(t, StrTag, longTag("!!str"))
	assert.Equal(t, "!local", longTag("!local"))
	assert.Equal(t, "!!str", ShortTag(StrTag))
	assert.Equal(t, "!local", ShortTag("!local"))
}
