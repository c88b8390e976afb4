// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Serialization engine: walks a node tree and feeds the event stream to an
// event sink, enforcing the Open -> Serialize* -> Close protocol.

package emit

import (
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"go.yaml.in/emit/internal/libyaml"
)

type (
	// Event is a single step of the emission event stream.
	// See internal/libyaml.Event.
	Event = libyaml.Event
	// EventType identifies an Event.
	// See internal/libyaml.EventType.
	EventType = libyaml.EventType
	// EventLineBreak is the line break setting handed to an EventSink.
	EventLineBreak = libyaml.LineBreak
)

// Re-export EventType constants
const (
	StreamStartEvent   = libyaml.STREAM_START_EVENT
	StreamEndEvent     = libyaml.STREAM_END_EVENT
	DocumentStartEvent = libyaml.DOCUMENT_START_EVENT
	DocumentEndEvent   = libyaml.DOCUMENT_END_EVENT
	ScalarEvent        = libyaml.SCALAR_EVENT
	SequenceStartEvent = libyaml.SEQUENCE_START_EVENT
	SequenceEndEvent   = libyaml.SEQUENCE_END_EVENT
	MappingStartEvent  = libyaml.MAPPING_START_EVENT
	MappingEndEvent    = libyaml.MAPPING_END_EVENT
)

// EventSink turns emission events into bytes.
//
// Emit receives the events in strict nested order: STREAM-START, then per
// document DOCUMENT-START, the node events and DOCUMENT-END, then
// STREAM-END. A sink may hold events back for lookahead, so an error can
// surface on a later call than the event that caused it. The setters are
// called whenever the serializer's options change.
type EventSink interface {
	Emit(event *Event) error
	SetCanonical(canonical bool)
	SetIndent(indent int)
	SetWidth(width int)
	SetUnicode(unicode bool)
	SetLineBreak(lineBreak EventLineBreak)
}

var _ EventSink = (*libyaml.Emitter)(nil)

type serializerState int

const (
	uninitialized serializerState = iota
	opened
	closed
)

// Serializer renders node trees as a YAML stream, one document per
// Serialize call.
//
// A Serializer is not safe for concurrent use. Discarding an opened
// Serializer without calling Close leaves the stream unterminated; that is
// not an error.
type Serializer struct {
	sink   EventSink
	out    []byte
	opts   Options
	logger log.Logger
	state  serializerState
	docs   int
}

// NewSerializer returns a Serializer writing to an in-memory buffer, read
// back with [Serializer.Bytes] or [Serializer.String].
func NewSerializer(opts ...Option) (*Serializer, error) {
	s := &Serializer{}
	emitter := libyaml.NewEmitter()
	emitter.SetOutputString(&s.out)
	return s.init(&emitter, opts)
}

// NewSerializerTo returns a Serializer writing to w. Output is written at
// every document end and at stream end.
func NewSerializerTo(w io.Writer, opts ...Option) (*Serializer, error) {
	s := &Serializer{}
	emitter := libyaml.NewEmitter()
	emitter.SetOutputWriter(w)
	return s.init(&emitter, opts)
}

// NewSerializerWithSink returns a Serializer feeding events to sink.
func NewSerializerWithSink(sink EventSink, opts ...Option) (*Serializer, error) {
	if sink == nil {
		return nil, errors.New("yaml: nil event sink")
	}
	return (&Serializer{}).init(sink, opts)
}

func (s *Serializer) init(sink EventSink, opts []Option) (*Serializer, error) {
	o, err := ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	s.sink = sink
	s.SetOptions(o)
	return s, nil
}

// Options returns a copy of the current configuration.
func (s *Serializer) Options() Options {
	o := s.opts
	if o.Version != nil {
		v := *o.Version
		o.Version = &v
	}
	return o
}

// SetOptions replaces the configuration and pushes it to the sink. It
// must not be called while a Serialize call is in progress.
func (s *Serializer) SetOptions(o Options) {
	s.opts = o
	s.logger = o.logger()
	applyOptions(s.sink, &s.opts)
}

// Configure applies opts on top of the current configuration. On error
// the configuration is left unchanged.
func (s *Serializer) Configure(opts ...Option) error {
	o := s.Options()
	if err := CombineOptions(opts...)(&o); err != nil {
		return err
	}
	s.SetOptions(o)
	return nil
}

// Documents returns the number of documents serialized so far.
func (s *Serializer) Documents() int {
	return s.docs
}

// Bytes returns the output accumulated by a Serializer created with
// [NewSerializer]. It is empty for other serializers.
func (s *Serializer) Bytes() []byte {
	return s.out
}

// String returns the output accumulated by a Serializer created with
// [NewSerializer].
func (s *Serializer) String() string {
	return string(s.out)
}

// Open starts the stream.
func (s *Serializer) Open() error {
	switch s.state {
	case opened:
		return &ProtocolError{Problem: "already opened"}
	case closed:
		return &ProtocolError{Problem: "already closed"}
	}
	if err := s.emit(libyaml.NewStreamStartEvent(libyaml.UTF8_ENCODING)); err != nil {
		return err
	}
	s.state = opened
	level.Debug(s.logger).Log("msg", "stream opened")
	return nil
}

// Serialize writes node as one document.
//
// On error the document is incomplete and the stream must not be used
// any further; bytes already written for it are leftovers.
func (s *Serializer) Serialize(node *Node) error {
	switch s.state {
	case uninitialized:
		return &ProtocolError{Problem: "not opened"}
	case closed:
		return &ProtocolError{Problem: "closed"}
	}
	o := s.opts
	if err := s.emit(libyaml.NewDocumentStartEvent(o.versionDirective(), !o.ExplicitStart)); err != nil {
		return err
	}
	if err := s.node(node, &o); err != nil {
		return err
	}
	if err := s.emit(libyaml.NewDocumentEndEvent(!o.ExplicitEnd)); err != nil {
		return err
	}
	s.docs++
	level.Debug(s.logger).Log("msg", "document serialized", "documents", s.docs)
	return nil
}

// Close ends the stream. Closing a closed Serializer does nothing.
func (s *Serializer) Close() error {
	switch s.state {
	case uninitialized:
		return &ProtocolError{Problem: "not opened"}
	case closed:
		return nil
	}
	if err := s.emit(libyaml.NewStreamEndEvent()); err != nil {
		return err
	}
	s.state = closed
	level.Debug(s.logger).Log("msg", "stream closed", "documents", s.docs)
	return nil
}

func (s *Serializer) emit(event libyaml.Event) error {
	if err := s.sink.Emit(&event); err != nil {
		level.Warn(s.logger).Log("msg", "emission failed", "event", event.Type, "err", err)
		return &EmissionError{Event: event.Type.String(), Err: err}
	}
	return nil
}

// node emits the events of the subtree rooted at n.
func (s *Serializer) node(n *Node, o *Options) error {
	if n == nil || n.IsZero() {
		return s.emit(libyaml.NewScalarEvent([]byte(NullTag), []byte("null"), true, true, libyaml.PLAIN_SCALAR_STYLE))
	}
	tag := ResolveTag(n)
	switch n.Kind {
	case ScalarNode:
		implicit := libyaml.IsCoreScalarTag(tag)
		style := scalarStyle(ResolveStyle(n, AnyStyle))
		return s.emit(libyaml.NewScalarEvent([]byte(tag), []byte(n.Value), implicit, implicit, style))

	case SequenceNode:
		style := libyaml.BLOCK_SEQUENCE_STYLE
		if ResolveStyle(n, o.SequenceStyle) == FlowStyle {
			style = libyaml.FLOW_SEQUENCE_STYLE
		}
		if err := s.emit(libyaml.NewSequenceStartEvent([]byte(tag), IsImplicit(n), style)); err != nil {
			return err
		}
		for _, item := range n.Content {
			if err := s.node(item, o); err != nil {
				return err
			}
		}
		return s.emit(libyaml.NewSequenceEndEvent())

	case MappingNode:
		entries, err := sortedEntries(n, o.SortKeys)
		if err != nil {
			return err
		}
		style := libyaml.BLOCK_MAPPING_STYLE
		if ResolveStyle(n, o.MappingStyle) == FlowStyle {
			style = libyaml.FLOW_MAPPING_STYLE
		}
		if err := s.emit(libyaml.NewMappingStartEvent([]byte(tag), IsImplicit(n), style)); err != nil {
			return err
		}
		for _, entry := range entries {
			if err := s.node(n.Content[entry[0]], o); err != nil {
				return err
			}
			if err := s.node(n.Content[entry[1]], o); err != nil {
				return err
			}
		}
		return s.emit(libyaml.NewMappingEndEvent())
	}
	return &NodeError{Problem: fmt.Sprintf("unknown node kind %d", uint32(n.Kind))}
}

func scalarStyle(style Style) libyaml.ScalarStyle {
	switch style {
	case SingleQuotedStyle:
		return libyaml.SINGLE_QUOTED_SCALAR_STYLE
	case DoubleQuotedStyle:
		return libyaml.DOUBLE_QUOTED_SCALAR_STYLE
	case LiteralStyle:
		return libyaml.LITERAL_SCALAR_STYLE
	case FoldedStyle:
		return libyaml.FOLDED_SCALAR_STYLE
	}
	return libyaml.PLAIN_SCALAR_STYLE
}
