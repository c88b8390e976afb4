// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Emitter construction and configuration, plus the event constructors fed
// to [Emitter.Emit].

package libyaml

import (
	"io"
)

// NewEmitter creates a new emitter object.
//
// Until [Emitter.SetWidth] is called the preferred line width is unlimited.
func NewEmitter() Emitter {
	return Emitter{
		buffer:    make([]byte, outputBufferSize),
		states:    make([]EmitterState, 0, initialStackSize),
		events:    make([]Event, 0, initialQueueSize),
		bestWidth: -1,
	}
}

// Delete resets the emitter to its zero value.
func (emitter *Emitter) Delete() {
	*emitter = Emitter{}
}

func appendToOutput(emitter *Emitter, buffer []byte) error {
	*emitter.outputBuffer = append(*emitter.outputBuffer, buffer...)
	return nil
}

func writeToOutput(emitter *Emitter, buffer []byte) error {
	_, err := emitter.outputWriter.Write(buffer)
	return err
}

func (emitter *Emitter) setOutput(handler WriteHandler) {
	if emitter.writeHandler != nil {
		panic("must set the output target only once")
	}
	emitter.writeHandler = handler
}

// SetOutputString makes the emitter append its output to *out.
func (emitter *Emitter) SetOutputString(out *[]byte) {
	emitter.setOutput(appendToOutput)
	emitter.outputBuffer = out
}

// SetOutputWriter makes the emitter write its output to w.
func (emitter *Emitter) SetOutputWriter(w io.Writer) {
	emitter.setOutput(writeToOutput)
	emitter.outputWriter = w
}

// SetEncoding sets the output encoding. It may be called once.
func (emitter *Emitter) SetEncoding(encoding Encoding) {
	if emitter.encoding != ANY_ENCODING {
		panic("must set the output encoding only once")
	}
	emitter.encoding = encoding
}

// SetCanonical sets the canonical output style.
func (emitter *Emitter) SetCanonical(canonical bool) {
	emitter.canonical = canonical
}

// SetIndent sets the indentation increment. Values outside 2..9 mean 2.
func (emitter *Emitter) SetIndent(indent int) {
	if indent < 2 || indent > 9 {
		indent = 2
	}
	emitter.BestIndent = indent
}

// SetWidth sets the preferred line width. A negative width means
// unlimited, and any width too narrow to hold two indentation levels
// (zero included) falls back to 80.
func (emitter *Emitter) SetWidth(width int) {
	switch {
	case width < 0:
		width = 1<<31 - 1
	case width <= emitter.BestIndent*2:
		width = 80
	}
	emitter.bestWidth = width
}

// SetUnicode sets if unescaped non-ASCII characters are allowed.
func (emitter *Emitter) SetUnicode(unicode bool) {
	emitter.unicode = unicode
}

// SetLineBreak sets the line break written at the end of each line.
// Unknown values mean LN_BREAK.
func (emitter *Emitter) SetLineBreak(lineBreak LineBreak) {
	switch lineBreak {
	case CR_BREAK, LN_BREAK, CRLN_BREAK:
		emitter.lineBreak = lineBreak
	default:
		emitter.lineBreak = LN_BREAK
	}
}

// NewStreamStartEvent creates a new STREAM-START event.
func NewStreamStartEvent(encoding Encoding) Event {
	return Event{Type: STREAM_START_EVENT, encoding: encoding}
}

// NewStreamEndEvent creates a new STREAM-END event.
func NewStreamEndEvent() Event {
	return Event{Type: STREAM_END_EVENT}
}

// NewDocumentStartEvent creates a new DOCUMENT-START event. A nil version
// writes no %YAML directive.
func NewDocumentStartEvent(version *VersionDirective, implicit bool) Event {
	return Event{
		Type:             DOCUMENT_START_EVENT,
		versionDirective: version,
		Implicit:         implicit,
	}
}

// NewDocumentEndEvent creates a new DOCUMENT-END event.
func NewDocumentEndEvent(implicit bool) Event {
	return Event{Type: DOCUMENT_END_EVENT, Implicit: implicit}
}

// NewScalarEvent creates a new SCALAR event. plainImplicit allows the tag
// to be omitted when the scalar is written plain, quotedImplicit when it
// is written in any other style.
func NewScalarEvent(tag, value []byte, plainImplicit, quotedImplicit bool, style ScalarStyle) Event {
	return Event{
		Type:           SCALAR_EVENT,
		Tag:            tag,
		Value:          value,
		Implicit:       plainImplicit,
		QuotedImplicit: quotedImplicit,
		Style:          Style(style),
	}
}

// NewSequenceStartEvent creates a new SEQUENCE-START event.
func NewSequenceStartEvent(tag []byte, implicit bool, style SequenceStyle) Event {
	return Event{Type: SEQUENCE_START_EVENT, Tag: tag, Implicit: implicit, Style: Style(style)}
}

// NewSequenceEndEvent creates a new SEQUENCE-END event.
func NewSequenceEndEvent() Event {
	return Event{Type: SEQUENCE_END_EVENT}
}

// NewMappingStartEvent creates a new MAPPING-START event.
func NewMappingStartEvent(tag []byte, implicit bool, style MappingStyle) Event {
	return Event{Type: MAPPING_START_EVENT, Tag: tag, Implicit: implicit, Style: Style(style)}
}

// NewMappingEndEvent creates a new MAPPING-END event.
func NewMappingEndEvent() Event {
	return Event{Type: MAPPING_END_EVENT}
}

// Delete resets the event to its zero value.
func (e *Event) Delete() {
	*e = Event{}
}
