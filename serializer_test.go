// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-kit/log"

	"go.yaml.in/emit/internal/libyaml"
	"go.yaml.in/emit/internal/testutil/assert"
)

// recordingSink keeps every event and the last configuration it was given.
type recordingSink struct {
	events    []Event
	canonical bool
	indent    int
	width     int
	unicode   bool
	lineBreak libyaml.LineBreak
	applied   int

	failOn  EventType
	failErr error
}

func (r *recordingSink) Emit(event *Event) error {
	if r.failErr != nil && event.Type == r.failOn {
		return r.failErr
	}
	r.events = append(r.events, *event)
	return nil
}

func (r *recordingSink) SetCanonical(canonical bool) { r.canonical = canonical; r.applied++ }
func (r *recordingSink) SetIndent(indent int)        { r.indent = indent }
func (r *recordingSink) SetWidth(width int)          { r.width = width }
func (r *recordingSink) SetUnicode(unicode bool)     { r.unicode = unicode }

func (r *recordingSink) SetLineBreak(lineBreak libyaml.LineBreak) { r.lineBreak = lineBreak }

// describe renders events in a compact notation close to the one of the
// YAML test suite: "+MAP {}", "=VAL <tag> 'value", "-DOC ...".
func describe(events []Event) []string {
	var out []string
	for i := range events {
		e := &events[i]
		var s string
		switch e.Type {
		case StreamStartEvent:
			s = "+STR"
		case StreamEndEvent:
			s = "-STR"
		case DocumentStartEvent:
			s = "+DOC"
			if !e.Implicit {
				s += " ---"
			}
			if vd := e.GetVersionDirective(); vd != nil {
				s += fmt.Sprintf(" %%YAML %d.%d", vd.Major(), vd.Minor())
			}
		case DocumentEndEvent:
			s = "-DOC"
			if !e.Implicit {
				s += " ..."
			}
		case SequenceStartEvent:
			s = "+SEQ"
			if e.SequenceStyle() == libyaml.FLOW_SEQUENCE_STYLE {
				s += " []"
			}
			if !e.Implicit {
				s += " <" + string(e.Tag) + ">"
			}
		case SequenceEndEvent:
			s = "-SEQ"
		case MappingStartEvent:
			s = "+MAP"
			if e.MappingStyle() == libyaml.FLOW_MAPPING_STYLE {
				s += " {}"
			}
			if !e.Implicit {
				s += " <" + string(e.Tag) + ">"
			}
		case MappingEndEvent:
			s = "-MAP"
		case ScalarEvent:
			s = "=VAL"
			if !e.Implicit {
				s += " <" + string(e.Tag) + ">"
			}
			indicator := map[libyaml.ScalarStyle]string{
				libyaml.PLAIN_SCALAR_STYLE:         ":",
				libyaml.SINGLE_QUOTED_SCALAR_STYLE: "'",
				libyaml.DOUBLE_QUOTED_SCALAR_STYLE: `"`,
				libyaml.LITERAL_SCALAR_STYLE:       "|",
				libyaml.FOLDED_SCALAR_STYLE:        ">",
			}[e.ScalarStyle()]
			s += " " + indicator + string(e.Value)
		}
		out = append(out, s)
	}
	return out
}

// serializeEvents runs the whole protocol for nodes and returns the
// recorded events.
func serializeEvents(t *testing.T, nodes []*Node, opts ...Option) []string {
	t.Helper()
	sink := &recordingSink{}
	s, err := NewSerializerWithSink(sink, opts...)
	assert.NoError(t, err)
	assert.NoError(t, s.Open())
	for _, node := range nodes {
		assert.NoError(t, s.Serialize(node))
	}
	assert.NoError(t, s.Close())
	return describe(sink.events)
}

func document(events ...string) []string {
	out := []string{"+STR", "+DOC"}
	out = append(out, events...)
	return append(out, "-DOC", "-STR")
}

func TestSerializerProtocol(t *testing.T) {
	tests := []struct {
		name    string
		calls   func(s *Serializer) error
		problem string
		events  []string
	}{
		{
			name:    "open twice",
			calls:   func(s *Serializer) error { s.Open(); return s.Open() },
			problem: "already opened",
			events:  []string{"+STR"},
		},
		{
			name:    "open after close",
			calls:   func(s *Serializer) error { s.Open(); s.Close(); return s.Open() },
			problem: "already closed",
			events:  []string{"+STR", "-STR"},
		},
		{
			name:    "serialize before open",
			calls:   func(s *Serializer) error { return s.Serialize(NewScalar("a")) },
			problem: "not opened",
		},
		{
			name:    "serialize after close",
			calls:   func(s *Serializer) error { s.Open(); s.Close(); return s.Serialize(NewScalar("a")) },
			problem: "closed",
			events:  []string{"+STR", "-STR"},
		},
		{
			name:    "close before open",
			calls:   func(s *Serializer) error { return s.Close() },
			problem: "not opened",
		},
		{
			name:   "close twice",
			calls:  func(s *Serializer) error { s.Open(); s.Close(); return s.Close() },
			events: []string{"+STR", "-STR"},
		},
		{
			name: "many documents",
			calls: func(s *Serializer) error {
				s.Open()
				s.Serialize(NewScalar("a"))
				s.Serialize(NewScalar("b"))
				return s.Close()
			},
			events: []string{"+STR", "+DOC", "=VAL :a", "-DOC", "+DOC", "=VAL :b", "-DOC", "-STR"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			s, err := NewSerializerWithSink(sink)
			assert.NoError(t, err)
			err = tt.calls(s)
			if tt.problem == "" {
				assert.NoError(t, err)
			} else {
				var perr *ProtocolError
				assert.ErrorAs(t, err, &perr)
				assert.Equal(t, tt.problem, perr.Problem)
				assert.Equal(t, "yaml: serializer is "+tt.problem, err.Error())
			}
			assert.DeepEqual(t, tt.events, describe(sink.events))
		})
	}
}

func TestSerializeEvents(t *testing.T) {
	tests := []struct {
		name   string
		node   *Node
		opts   []Option
		events []string
	}{
		{
			name:   "plain scalar",
			node:   NewScalar("hello"),
			events: []string{"=VAL :hello"},
		},
		{
			name: "mapping with sequence",
			node: NewMapping(
				NewScalar("name"), NewScalar("Yams"),
				NewScalar("tags"), NewSequence(NewScalar("yaml"), NewScalar("swift")),
			),
			events: []string{"+MAP", "=VAL :name", "=VAL :Yams", "=VAL :tags", "+SEQ", "=VAL :yaml", "=VAL :swift", "-SEQ", "-MAP"},
		},
		{
			name:   "empty sequence",
			node:   NewSequence(),
			events: []string{"+SEQ", "-SEQ"},
		},
		{
			name:   "empty mapping",
			node:   NewMapping(),
			events: []string{"+MAP", "-MAP"},
		},
		{
			name:   "default scalar tag is implicit",
			node:   NewTaggedScalar("!!str", "x"),
			events: []string{"=VAL :x"},
		},
		{
			name:   "core schema tags are implicit",
			node:   NewSequence(NewTaggedScalar("!!int", "1"), NewTaggedScalar(BoolTag, "true"), NewTaggedScalar("!!null", "~")),
			events: []string{"+SEQ", "=VAL :1", "=VAL :true", "=VAL :~", "-SEQ"},
		},
		{
			name:   "custom scalar tag",
			node:   NewTaggedScalar("!custom", "x"),
			events: []string{"=VAL <!custom> :x"},
		},
		{
			name:   "binary tag",
			node:   NewTaggedScalar("!!binary", "aGVsbG8="),
			events: []string{"=VAL <tag:yaml.org,2002:binary> :aGVsbG8="},
		},
		{
			name:   "custom collection tags",
			node:   &Node{Kind: SequenceNode, Tag: "!!set", Content: []*Node{{Kind: MappingNode, Tag: "!point"}}},
			events: []string{"+SEQ <tag:yaml.org,2002:set>", "+MAP <!point>", "-MAP", "-SEQ"},
		},
		{
			name:   "explicit default collection tags",
			node:   &Node{Kind: SequenceNode, Tag: SeqTag, Content: []*Node{{Kind: MappingNode, Tag: "!!map"}}},
			events: []string{"+SEQ", "+MAP", "-MAP", "-SEQ"},
		},
		{
			name:   "nil node",
			node:   nil,
			events: []string{"=VAL :null"},
		},
		{
			name:   "nil mapping value",
			node:   NewMapping(NewScalar("a"), nil),
			events: []string{"+MAP", "=VAL :a", "=VAL :null", "-MAP"},
		},
		{
			name:   "collection key",
			node:   NewMapping(NewSequence(NewScalar("a")), NewScalar("b")),
			events: []string{"+MAP", "+SEQ", "=VAL :a", "-SEQ", "=VAL :b", "-MAP"},
		},
		{
			name:   "flow style",
			node:   &Node{Kind: MappingNode, Style: FlowStyle, Content: []*Node{NewScalar("a"), NewSequence()}},
			events: []string{"+MAP {}", "=VAL :a", "+SEQ", "-SEQ", "-MAP"},
		},
		{
			name:   "default collection styles",
			node:   NewMapping(NewScalar("a"), NewSequence(), NewScalar("b"), &Node{Kind: SequenceNode, Style: BlockStyle}),
			opts:   []Option{WithSequenceStyle(FlowStyle), WithMappingStyle(FlowStyle)},
			events: []string{"+MAP {}", "=VAL :a", "+SEQ []", "-SEQ", "=VAL :b", "+SEQ", "-SEQ", "-MAP"},
		},
		{
			name:   "scalar style on a collection is ignored",
			node:   &Node{Kind: SequenceNode, Style: DoubleQuotedStyle},
			opts:   []Option{WithSequenceStyle(FlowStyle)},
			events: []string{"+SEQ []", "-SEQ"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serializeEvents(t, []*Node{tt.node}, tt.opts...)
			assert.DeepEqual(t, document(tt.events...), got)
		})
	}
}

func TestSerializeScalarStyles(t *testing.T) {
	node := NewSequence(
		&Node{Kind: ScalarNode, Style: SingleQuotedStyle, Value: "a"},
		&Node{Kind: ScalarNode, Style: DoubleQuotedStyle, Value: "b"},
		&Node{Kind: ScalarNode, Style: LiteralStyle, Value: "c"},
		&Node{Kind: ScalarNode, Style: FoldedStyle, Value: "d"},
		&Node{Kind: ScalarNode, Style: FlowStyle, Value: "e"},
		&Node{Kind: ScalarNode, Tag: "!!int", Style: LiteralStyle, Value: "1"},
	)
	got := serializeEvents(t, []*Node{node})
	want := document("+SEQ", "=VAL 'a", `=VAL "b`, "=VAL |c", "=VAL >d", "=VAL :e", "=VAL |1", "-SEQ")
	assert.DeepEqual(t, want, got)
}

func TestSerializeDocumentMarkers(t *testing.T) {
	node := NewScalar("a")
	tests := []struct {
		name string
		opts []Option
		want []string
	}{
		{
			name: "implicit",
			want: []string{"+STR", "+DOC", "=VAL :a", "-DOC", "-STR"},
		},
		{
			name: "explicit start and end",
			opts: []Option{WithExplicitStart(), WithExplicitEnd()},
			want: []string{"+STR", "+DOC ---", "=VAL :a", "-DOC ...", "-STR"},
		},
		{
			name: "version directive",
			opts: []Option{WithVersion(1, 2)},
			want: []string{"+STR", "+DOC %YAML 1.2", "=VAL :a", "-DOC", "-STR"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.DeepEqual(t, tt.want, serializeEvents(t, []*Node{node}, tt.opts...))
		})
	}
}

func TestSerializeSortKeys(t *testing.T) {
	node := NewMapping(
		NewScalar("b"), NewScalar("2"),
		NewScalar("a"), NewScalar("1"),
		NewScalar("c"), NewScalar("3"),
	)

	got := serializeEvents(t, []*Node{node})
	assert.DeepEqual(t, document("+MAP", "=VAL :b", "=VAL :2", "=VAL :a", "=VAL :1", "=VAL :c", "=VAL :3", "-MAP"), got)

	got = serializeEvents(t, []*Node{node}, WithSortKeys())
	assert.DeepEqual(t, document("+MAP", "=VAL :a", "=VAL :1", "=VAL :b", "=VAL :2", "=VAL :c", "=VAL :3", "-MAP"), got)

	// The node itself keeps its insertion order.
	assert.Equal(t, "b", node.Content[0].Value)
}

func TestSerializeSortKeysTieBreak(t *testing.T) {
	node := NewMapping(
		NewScalar("1"), NewScalar("str"),
		NewTaggedScalar("!!int", "1"), NewScalar("int"),
		NewScalar("1"), NewScalar("str again"),
	)
	got := serializeEvents(t, []*Node{node}, WithSortKeys())
	want := document("+MAP", "=VAL :1", "=VAL :int", "=VAL :1", "=VAL :str", "=VAL :1", "=VAL :str again", "-MAP")
	assert.DeepEqual(t, want, got)
}

func TestSerializeNodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		node    *Node
		opts    []Option
		problem string
		events  []string
	}{
		{
			name:    "odd mapping",
			node:    NewSequence(NewScalar("x"), NewMapping(NewScalar("a"))),
			problem: "mapping has a key without a value",
			events:  []string{"+STR", "+DOC", "+SEQ", "=VAL :x"},
		},
		{
			name:    "unsortable key",
			node:    NewMapping(NewMapping(), NewScalar("a")),
			opts:    []Option{WithSortKeys()},
			problem: "cannot sort mapping with a mapping key",
			events:  []string{"+STR", "+DOC"},
		},
		{
			name:    "unknown kind",
			node:    &Node{Kind: 42, Value: "x"},
			problem: "unknown node kind 42",
			events:  []string{"+STR", "+DOC"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			s, err := NewSerializerWithSink(sink, tt.opts...)
			assert.NoError(t, err)
			assert.NoError(t, s.Open())
			err = s.Serialize(tt.node)
			var nerr *NodeError
			assert.ErrorAs(t, err, &nerr)
			assert.Equal(t, tt.problem, nerr.Problem)
			assert.DeepEqual(t, tt.events, describe(sink.events))
			assert.Equal(t, 0, s.Documents())
		})
	}
}

func TestSerializeSinkFailure(t *testing.T) {
	boom := errors.New("boom")
	sink := &recordingSink{failOn: ScalarEvent, failErr: boom}
	var logs bytes.Buffer
	s, err := NewSerializerWithSink(sink, WithLogger(log.NewLogfmtLogger(&logs)))
	assert.NoError(t, err)
	assert.NoError(t, s.Open())

	err = s.Serialize(NewSequence(NewScalar("a")))
	var eerr *EmissionError
	assert.ErrorAs(t, err, &eerr)
	assert.Equal(t, "scalar", eerr.Event)
	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, boom)
	assert.DeepEqual(t, []string{"+STR", "+DOC", "+SEQ"}, describe(sink.events))
	assert.True(t, strings.Contains(logs.String(), `level=warn msg="emission failed"`))

	var perr *ProtocolError
	assert.False(t, errors.As(err, &perr))
}

func TestNewSerializerWithNilSink(t *testing.T) {
	s, err := NewSerializerWithSink(nil)
	assert.ErrorMatches(t, `^yaml: nil event sink$`, err)
	assert.IsNil(t, s)

	_, err = NewSerializerWithSink(nil, WithIndent(4))
	assert.ErrorMatches(t, `nil event sink`, err)
}

func TestSerializerAppliesOptions(t *testing.T) {
	sink := &recordingSink{}
	s, err := NewSerializerWithSink(sink)
	assert.NoError(t, err)
	assert.Equal(t, 1, sink.applied)
	assert.Equal(t, 2, sink.indent)
	assert.Equal(t, 80, sink.width)
	assert.Equal(t, libyaml.LN_BREAK, sink.lineBreak)
	assert.False(t, sink.canonical)
	assert.False(t, sink.unicode)

	err = s.Configure(WithIndent(4), WithLineWidth(UnlimitedWidth), WithUnicode(), WithCanonical(), WithLineBreak(LineBreakCRLN))
	assert.NoError(t, err)
	assert.Equal(t, 2, sink.applied)
	assert.Equal(t, 4, sink.indent)
	assert.Equal(t, -1, sink.width)
	assert.Equal(t, libyaml.CRLN_BREAK, sink.lineBreak)
	assert.True(t, sink.canonical)
	assert.True(t, sink.unicode)

	o := s.Options()
	o.Indent = 0
	s.SetOptions(o)
	assert.Equal(t, 3, sink.applied)
	assert.Equal(t, 2, sink.indent)
	assert.Equal(t, 0, s.Options().Indent)
}

func TestSerializerConfigureErrorKeepsOptions(t *testing.T) {
	sink := &recordingSink{}
	s, err := NewSerializerWithSink(sink, WithIndent(3))
	assert.NoError(t, err)

	err = s.Configure(WithIndent(5), WithMappingStyle(PlainStyle))
	assert.ErrorMatches(t, "not a collection style", err)
	assert.Equal(t, 3, s.Options().Indent)
	assert.Equal(t, 3, sink.indent)
	assert.Equal(t, 1, sink.applied)
}

func TestSerializerOptionsSnapshot(t *testing.T) {
	s, err := NewSerializerWithSink(&recordingSink{}, WithVersion(1, 1))
	assert.NoError(t, err)
	o := s.Options()
	o.Version.Minor = 2
	assert.Equal(t, 1, s.Options().Version.Minor)
}

func TestSerializerOptionsChangeBetweenDocuments(t *testing.T) {
	sink := &recordingSink{}
	s, err := NewSerializerWithSink(sink)
	assert.NoError(t, err)
	assert.NoError(t, s.Open())
	assert.NoError(t, s.Serialize(NewScalar("a")))
	assert.NoError(t, s.Configure(WithExplicitStart()))
	assert.NoError(t, s.Serialize(NewScalar("b")))
	assert.NoError(t, s.Close())
	want := []string{"+STR", "+DOC", "=VAL :a", "-DOC", "+DOC ---", "=VAL :b", "-DOC", "-STR"}
	assert.DeepEqual(t, want, describe(sink.events))
	assert.Equal(t, 2, s.Documents())
}

func TestSerializerConstructorError(t *testing.T) {
	s, err := NewSerializerWithSink(&recordingSink{}, WithIndent(-1))
	assert.IsNil(t, s)
	assert.ErrorMatches(t, "negative number of spaces", err)
}

func TestSerializerLogging(t *testing.T) {
	var logs bytes.Buffer
	s, err := NewSerializerWithSink(&recordingSink{}, WithLogger(log.NewLogfmtLogger(&logs)))
	assert.NoError(t, err)
	assert.NoError(t, s.Open())
	assert.NoError(t, s.Serialize(NewScalar("a")))
	assert.NoError(t, s.Close())

	out := logs.String()
	for _, want := range []string{
		`level=debug msg="stream opened"`,
		`level=debug msg="document serialized" documents=1`,
		`level=debug msg="stream closed" documents=1`,
	} {
		assert.Truef(t, strings.Contains(out, want), "missing %q in %q", want, out)
	}
}
