// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Event listing for the yaml-emit tool.

package main

import (
	"fmt"
	"io"
	"strings"

	"go.yaml.in/emit"
	"go.yaml.in/emit/internal/libyaml"
)

// EventInfo represents the information about a serializer event for YAML
// encoding.
type EventInfo struct {
	Event    string  `yaml:"event"`
	Value    *string `yaml:"value,omitempty"`
	Tag      string  `yaml:"tag,omitempty"`
	Style    string  `yaml:"style,omitempty"`
	Version  string  `yaml:"version,omitempty"`
	Explicit bool    `yaml:"explicit,omitempty"`
}

var eventNames = map[emit.EventType]string{
	emit.StreamStartEvent:   "STREAM-START",
	emit.StreamEndEvent:     "STREAM-END",
	emit.DocumentStartEvent: "DOCUMENT-START",
	emit.DocumentEndEvent:   "DOCUMENT-END",
	emit.ScalarEvent:        "SCALAR",
	emit.SequenceStartEvent: "SEQUENCE-START",
	emit.SequenceEndEvent:   "SEQUENCE-END",
	emit.MappingStartEvent:  "MAPPING-START",
	emit.MappingEndEvent:    "MAPPING-END",
}

// eventRecorder is an event sink that keeps a description of every event
// instead of writing YAML.
type eventRecorder struct {
	events []EventInfo
}

var _ emit.EventSink = (*eventRecorder)(nil)

func (r *eventRecorder) Emit(event *emit.Event) error {
	info := EventInfo{Event: eventNames[event.Type]}
	switch event.Type {
	case emit.DocumentStartEvent:
		if v := event.GetVersionDirective(); v != nil {
			info.Version = fmt.Sprintf("%d.%d", v.Major(), v.Minor())
		}
		info.Explicit = !event.Implicit
	case emit.DocumentEndEvent:
		info.Explicit = !event.Implicit
	case emit.ScalarEvent:
		value := string(event.Value)
		info.Value = &value
		info.Style = strings.ToLower(event.ScalarStyle().String())
		if !event.Implicit {
			info.Tag = emit.ShortTag(string(event.Tag))
		}
	case emit.SequenceStartEvent:
		info.Style = "block"
		if event.SequenceStyle() == libyaml.FLOW_SEQUENCE_STYLE {
			info.Style = "flow"
		}
		if !event.Implicit {
			info.Tag = emit.ShortTag(string(event.Tag))
		}
	case emit.MappingStartEvent:
		info.Style = "block"
		if event.MappingStyle() == libyaml.FLOW_MAPPING_STYLE {
			info.Style = "flow"
		}
		if !event.Implicit {
			info.Tag = emit.ShortTag(string(event.Tag))
		}
	}
	r.events = append(r.events, info)
	return nil
}

func (r *eventRecorder) SetCanonical(bool)                {}
func (r *eventRecorder) SetIndent(int)                    {}
func (r *eventRecorder) SetWidth(int)                     {}
func (r *eventRecorder) SetUnicode(bool)                  {}
func (r *eventRecorder) SetLineBreak(emit.EventLineBreak) {}

// processEvents serializes docs into a recorder and writes the recorded
// events as a YAML sequence, one flow mapping per event unless long is
// set.
func processEvents(w io.Writer, docs []*emit.Node, long bool, opts []emit.Option) error {
	recorder := &eventRecorder{}
	s, err := emit.NewSerializerWithSink(recorder, opts...)
	if err != nil {
		return err
	}
	if err := s.Open(); err != nil {
		return err
	}
	for _, doc := range docs {
		if err := s.Serialize(doc); err != nil {
			return err
		}
	}
	if err := s.Close(); err != nil {
		return err
	}

	style := emit.FlowStyle
	if long {
		style = emit.BlockStyle
	}
	out, err := emit.Dump(recorder.events, emit.WithMappingStyle(style), emit.WithUnicode())
	if err != nil {
		return fmt.Errorf("failed to dump events: %w", err)
	}
	_, err = w.Write(out)
	return err
}
