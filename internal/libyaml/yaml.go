// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Core libyaml types and structures.
// Defines Emitter, Event and related constants for YAML emission.

package libyaml

import (
	"fmt"
	"io"
)

// VersionDirective holds the YAML version directive data.
type VersionDirective struct {
	major int8 // The major version number.
	minor int8 // The minor version number.
}

// NewVersionDirective returns a %YAML directive for major.minor.
func NewVersionDirective(major, minor int) *VersionDirective {
	return &VersionDirective{major: int8(major), minor: int8(minor)}
}

// Major returns the major version number.
func (v *VersionDirective) Major() int { return int(v.major) }

// Minor returns the minor version number.
func (v *VersionDirective) Minor() int { return int(v.minor) }

// TagDirective holds the YAML tag directive data.
type TagDirective struct {
	handle []byte // The tag handle.
	prefix []byte // The tag prefix.
}

type Encoding int

// The stream encoding.
const (
	// Let the emitter choose the encoding.
	ANY_ENCODING Encoding = iota

	UTF8_ENCODING // The default UTF-8 encoding.
)

type LineBreak int

// Line break types.
const (
	// Let the emitter choose the break type.
	ANY_BREAK LineBreak = iota

	CR_BREAK   // Use CR for line breaks (Mac style).
	LN_BREAK   // Use LN for line breaks (Unix style).
	CRLN_BREAK // Use CR LN for line breaks (DOS style).
)

type ErrorType int

// Many bad things could happen with the emitter.
const (
	// No error is produced.
	NO_ERROR ErrorType = iota

	WRITER_ERROR  // Cannot write to the output stream.
	EMITTER_ERROR // Cannot emit a YAML stream.
)

// Node Styles

type styleInt int8

// Style is the presentation style carried by an event. Its meaning depends
// on the event type; see [Event.ScalarStyle], [Event.SequenceStyle] and
// [Event.MappingStyle].
type Style styleInt

type ScalarStyle styleInt

// Scalar styles.
const (
	// Let the emitter choose the style.
	ANY_SCALAR_STYLE ScalarStyle = 0

	PLAIN_SCALAR_STYLE         ScalarStyle = 1 << iota // The plain scalar style.
	SINGLE_QUOTED_SCALAR_STYLE                         // The single-quoted scalar style.
	DOUBLE_QUOTED_SCALAR_STYLE                         // The double-quoted scalar style.
	LITERAL_SCALAR_STYLE                               // The literal scalar style.
	FOLDED_SCALAR_STYLE                                // The folded scalar style.
)

// String returns a string representation of a [ScalarStyle].
func (style ScalarStyle) String() string {
	switch style {
	case PLAIN_SCALAR_STYLE:
		return "Plain"
	case SINGLE_QUOTED_SCALAR_STYLE:
		return "Single"
	case DOUBLE_QUOTED_SCALAR_STYLE:
		return "Double"
	case LITERAL_SCALAR_STYLE:
		return "Literal"
	case FOLDED_SCALAR_STYLE:
		return "Folded"
	default:
		return ""
	}
}

type SequenceStyle styleInt

// Sequence styles.
const (
	// Let the emitter choose the style.
	ANY_SEQUENCE_STYLE SequenceStyle = iota

	BLOCK_SEQUENCE_STYLE // The block sequence style.
	FLOW_SEQUENCE_STYLE  // The flow sequence style.
)

type MappingStyle styleInt

// Mapping styles.
const (
	// Let the emitter choose the style.
	ANY_MAPPING_STYLE MappingStyle = iota

	BLOCK_MAPPING_STYLE // The block mapping style.
	FLOW_MAPPING_STYLE  // The flow mapping style.
)

// Events

type EventType int8

// Event types.
const (
	// An empty event.
	NO_EVENT EventType = iota

	STREAM_START_EVENT   // A STREAM-START event.
	STREAM_END_EVENT     // A STREAM-END event.
	DOCUMENT_START_EVENT // A DOCUMENT-START event.
	DOCUMENT_END_EVENT   // A DOCUMENT-END event.
	SCALAR_EVENT         // A SCALAR event.
	SEQUENCE_START_EVENT // A SEQUENCE-START event.
	SEQUENCE_END_EVENT   // A SEQUENCE-END event.
	MAPPING_START_EVENT  // A MAPPING-START event.
	MAPPING_END_EVENT    // A MAPPING-END event.
)

var eventStrings = []string{
	NO_EVENT:             "none",
	STREAM_START_EVENT:   "stream start",
	STREAM_END_EVENT:     "stream end",
	DOCUMENT_START_EVENT: "document start",
	DOCUMENT_END_EVENT:   "document end",
	SCALAR_EVENT:         "scalar",
	SEQUENCE_START_EVENT: "sequence start",
	SEQUENCE_END_EVENT:   "sequence end",
	MAPPING_START_EVENT:  "mapping start",
	MAPPING_END_EVENT:    "mapping end",
}

func (e EventType) String() string {
	if e < 0 || int(e) >= len(eventStrings) {
		return fmt.Sprintf("unknown event %d", e)
	}
	return eventStrings[e]
}

// Event holds information about an emitting event.
type Event struct {
	// The event type.
	Type EventType

	// The document encoding (for STREAM_START_EVENT).
	encoding Encoding

	// The version directive (for DOCUMENT_START_EVENT).
	versionDirective *VersionDirective

	// The Tag (for SCALAR_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT).
	Tag []byte

	// The scalar Value (for SCALAR_EVENT).
	Value []byte

	// Is the document start/end indicator Implicit, or the tag optional?
	// (for DOCUMENT_START_EVENT, DOCUMENT_END_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT, SCALAR_EVENT).
	Implicit bool

	// Is the tag optional for any non-plain style? (for SCALAR_EVENT).
	QuotedImplicit bool

	// The Style (for SCALAR_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT).
	Style Style
}

func (e *Event) ScalarStyle() ScalarStyle     { return ScalarStyle(e.Style) }
func (e *Event) SequenceStyle() SequenceStyle { return SequenceStyle(e.Style) }
func (e *Event) MappingStyle() MappingStyle   { return MappingStyle(e.Style) }

// GetEncoding returns the stream encoding (for STREAM_START_EVENT).
func (e *Event) GetEncoding() Encoding { return e.encoding }

// GetVersionDirective returns the version directive (for DOCUMENT_START_EVENT).
func (e *Event) GetVersionDirective() *VersionDirective { return e.versionDirective }

// Core schema tags.
const (
	NULL_TAG      = "tag:yaml.org,2002:null"
	BOOL_TAG      = "tag:yaml.org,2002:bool"
	STR_TAG       = "tag:yaml.org,2002:str"
	INT_TAG       = "tag:yaml.org,2002:int"
	FLOAT_TAG     = "tag:yaml.org,2002:float"
	TIMESTAMP_TAG = "tag:yaml.org,2002:timestamp"
	SEQ_TAG       = "tag:yaml.org,2002:seq"
	MAP_TAG       = "tag:yaml.org,2002:map"
	BINARY_TAG    = "tag:yaml.org,2002:binary"
	MERGE_TAG     = "tag:yaml.org,2002:merge"
)

// Emitter

// The emitter states.
type EmitterState int

const (
	// Expect STREAM-START.
	EMIT_STREAM_START_STATE EmitterState = iota

	EMIT_FIRST_DOCUMENT_START_STATE       // Expect the first DOCUMENT-START or STREAM-END.
	EMIT_DOCUMENT_START_STATE             // Expect DOCUMENT-START or STREAM-END.
	EMIT_DOCUMENT_CONTENT_STATE           // Expect the content of a document.
	EMIT_DOCUMENT_END_STATE               // Expect DOCUMENT-END.
	EMIT_FLOW_SEQUENCE_FIRST_ITEM_STATE   // Expect the first item of a flow sequence.
	EMIT_FLOW_SEQUENCE_ITEM_STATE         // Expect an item of a flow sequence.
	EMIT_FLOW_MAPPING_FIRST_KEY_STATE     // Expect the first key of a flow mapping.
	EMIT_FLOW_MAPPING_KEY_STATE           // Expect a key of a flow mapping.
	EMIT_FLOW_MAPPING_SIMPLE_VALUE_STATE  // Expect a value for a simple key of a flow mapping.
	EMIT_FLOW_MAPPING_VALUE_STATE         // Expect a value of a flow mapping.
	EMIT_BLOCK_SEQUENCE_FIRST_ITEM_STATE  // Expect the first item of a block sequence.
	EMIT_BLOCK_SEQUENCE_ITEM_STATE        // Expect an item of a block sequence.
	EMIT_BLOCK_MAPPING_FIRST_KEY_STATE    // Expect the first key of a block mapping.
	EMIT_BLOCK_MAPPING_KEY_STATE          // Expect the key of a block mapping.
	EMIT_BLOCK_MAPPING_SIMPLE_VALUE_STATE // Expect a value for a simple key of a block mapping.
	EMIT_BLOCK_MAPPING_VALUE_STATE        // Expect a value of a block mapping.
	EMIT_END_STATE                        // Expect nothing.
)

// The open-ended states of the output stream.
const (
	openEndedNone  = iota // The last node is closed.
	openEndedPlain        // A plain root scalar may continue on the next line.
	openEndedKeep         // A keep-chomped block scalar needs an explicit "...".
)

// WriteHandler is called to write output. It must write all the data it
// is given or return an error.
type WriteHandler func(emitter *Emitter, buffer []byte) error

// Emitter turns a stream of events into YAML text.
//
// All members are internal. Configure it with the Set* methods and feed it
// with [Emitter.Emit].
type Emitter struct {
	// The first failure. Once set, Emit returns it for every event.
	ErrorType ErrorType
	Problem   string
	writeErr  error

	// Output target: either an in-memory buffer or a writer.
	writeHandler WriteHandler
	outputBuffer *[]byte
	outputWriter io.Writer

	buffer    []byte // Pending output.
	bufferPos int    // Number of pending bytes in buffer.

	encoding Encoding

	// Formatting settings.
	canonical  bool
	BestIndent int
	bestWidth  int
	unicode    bool
	lineBreak  LineBreak

	state  EmitterState   // The current state.
	states []EmitterState // States to return to once a node is done.

	events     []Event // Events held back for lookahead.
	eventsHead int     // The first event not emitted yet.

	indents []int // Enclosing indentation levels.
	indent  int   // The current indentation level, -1 before the root.

	tagDirectives []TagDirective

	flowLevel int // Depth of nested flow collections.

	// Where the node being written sits.
	rootContext      bool
	sequenceContext  bool
	mappingContext   bool
	simpleKeyContext bool

	// Output position.
	line       int
	column     int
	whitespace bool // The last character was whitespace.
	indention  bool // Only indentation characters (' ', '-', '?', ':') on this line so far.
	spaceAbove bool // The previous line is empty.

	OpenEnded int // One of the openEnded* values.

	// Tag of the current event, split by the matching tag directive.
	tagData struct {
		handle []byte
		suffix []byte
	}

	// Analysis of the current scalar.
	scalarData struct {
		value               []byte
		multiline           bool
		flowPlainAllowed    bool
		blockPlainAllowed   bool
		singleQuotedAllowed bool
		blockAllowed        bool
		style               ScalarStyle
	}
}
